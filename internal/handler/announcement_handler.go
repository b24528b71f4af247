package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
	"github.com/noah-isme/sekolah-admin-api/internal/service"
	"github.com/noah-isme/sekolah-admin-api/internal/utils"
)

// AnnouncementHandler handles announcement endpoints.
type AnnouncementHandler struct {
	service service.AnnouncementService
	logger  zerolog.Logger
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service service.AnnouncementService, logger zerolog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		logger:  logger.With().Str("component", "announcement_handler").Logger(),
	}
}

// Register wires routes for announcements. Mutating routes pass
// through the elevated-role guard.
func (h *AnnouncementHandler) Register(router fiber.Router, elevated fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", elevated, h.create)
	router.Put("/:id", elevated, h.update)
	router.Delete("/:id", elevated, h.delete)
}

func (h *AnnouncementHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	campusID, ok := campusScope(c)
	if !ok {
		return utils.SendError(c, fiber.StatusForbidden, "campus assignment required")
	}

	filter := repository.AnnouncementFilter{
		Audience: filterQuery(c, "audience"),
		CampusID: campusID,
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list announcements")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list announcements")
	}
	return utils.SendSuccess(c, "announcements retrieved", result)
}

func (h *AnnouncementHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	result, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Announcement not found")
		}
		h.logger.Error().Err(err).Uint("announcement_id", id).Msg("failed to get announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get announcement")
	}
	return utils.SendSuccess(c, "announcement retrieved", result)
}

func (h *AnnouncementHandler) create(c *fiber.Ctx) error {
	var payload dto.AnnouncementCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Create(c.Context(), payload, userIDFromContext(c), campusIDFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendValidationError(c, err)
		}
		h.logger.Error().Err(err).Msg("failed to create announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create announcement")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "announcement created", result)
}

func (h *AnnouncementHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.AnnouncementUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Announcement not found")
		case errors.Is(err, service.ErrInvalidInput):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("announcement_id", id).Msg("failed to update announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update announcement")
	}
	return utils.SendSuccess(c, "announcement updated", result)
}

func (h *AnnouncementHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		h.logger.Error().Err(err).Uint("announcement_id", id).Msg("failed to delete announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete announcement")
	}
	return utils.SendSuccess(c, "announcement deleted", nil)
}
