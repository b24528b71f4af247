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

// AlertHandler handles alert endpoints.
type AlertHandler struct {
	service service.AlertService
	logger  zerolog.Logger
}

// NewAlertHandler constructs the handler.
func NewAlertHandler(service service.AlertService, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{
		service: service,
		logger:  logger.With().Str("component", "alert_handler").Logger(),
	}
}

// Register wires routes for alerts.
func (h *AlertHandler) Register(router fiber.Router, elevated fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", elevated, h.create)
	router.Put("/:id", elevated, h.update)
	router.Delete("/:id", elevated, h.delete)
}

func (h *AlertHandler) list(c *fiber.Ctx) error {
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

	filter := repository.AlertFilter{
		Severity: filterQuery(c, "severity"),
		CampusID: campusID,
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list alerts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list alerts")
	}
	return utils.SendSuccess(c, "alerts retrieved", result)
}

func (h *AlertHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	result, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Alert not found")
		}
		h.logger.Error().Err(err).Uint("alert_id", id).Msg("failed to get alert")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get alert")
	}
	return utils.SendSuccess(c, "alert retrieved", result)
}

func (h *AlertHandler) create(c *fiber.Ctx) error {
	var payload dto.AlertCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Create(c.Context(), payload, userIDFromContext(c), campusIDFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendValidationError(c, err)
		}
		h.logger.Error().Err(err).Msg("failed to create alert")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create alert")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "alert created", result)
}

func (h *AlertHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.AlertUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlertNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Alert not found")
		case errors.Is(err, service.ErrInvalidInput):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("alert_id", id).Msg("failed to update alert")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update alert")
	}
	return utils.SendSuccess(c, "alert updated", result)
}

func (h *AlertHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		h.logger.Error().Err(err).Uint("alert_id", id).Msg("failed to delete alert")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete alert")
	}
	return utils.SendSuccess(c, "alert deleted", nil)
}
