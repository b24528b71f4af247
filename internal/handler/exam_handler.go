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

// ExamHandler handles exam scheduling endpoints.
type ExamHandler struct {
	service service.ExamService
	logger  zerolog.Logger
}

// NewExamHandler constructs the handler.
func NewExamHandler(service service.ExamService, logger zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		service: service,
		logger:  logger.With().Str("component", "exam_handler").Logger(),
	}
}

// Register wires routes for exams.
func (h *ExamHandler) Register(router fiber.Router, elevated fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", elevated, h.create)
	router.Put("/:id", elevated, h.update)
	router.Delete("/:id", elevated, h.delete)
}

func (h *ExamHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	fromDate, err := parseQueryDate(c, "fromDate")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid fromDate")
	}
	toDate, err := parseQueryDate(c, "toDate")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid toDate")
	}

	campusID, ok := campusScope(c)
	if !ok {
		return utils.SendError(c, fiber.StatusForbidden, "campus assignment required")
	}

	filter := repository.ExamFilter{
		Search:   c.Query("q"),
		Class:    filterQuery(c, "className"),
		Section:  filterQuery(c, "section"),
		Status:   filterQuery(c, "status"),
		Subject:  filterQuery(c, "subject"),
		FromDate: fromDate,
		ToDate:   toDate,
		CampusID: campusID,
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list exams")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list exams")
	}
	return utils.SendSuccess(c, "exams retrieved", result)
}

func (h *ExamHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	result, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Exam not found")
		}
		h.logger.Error().Err(err).Uint("exam_id", id).Msg("failed to get exam")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get exam")
	}
	return utils.SendSuccess(c, "exam retrieved", result)
}

func (h *ExamHandler) create(c *fiber.Ctx) error {
	var payload dto.ExamCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Create(c.Context(), payload, campusIDFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendValidationError(c, err)
		}
		h.logger.Error().Err(err).Msg("failed to create exam")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create exam")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam created", result)
}

func (h *ExamHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.ExamUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Exam not found")
		case errors.Is(err, service.ErrInvalidInput):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("exam_id", id).Msg("failed to update exam")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update exam")
	}
	return utils.SendSuccess(c, "exam updated", result)
}

func (h *ExamHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		h.logger.Error().Err(err).Uint("exam_id", id).Msg("failed to delete exam")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete exam")
	}
	return utils.SendSuccess(c, "exam deleted", nil)
}
