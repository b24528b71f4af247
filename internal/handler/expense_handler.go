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

// ExpenseHandler handles expense endpoints, including the receipt upload.
type ExpenseHandler struct {
	service service.ExpenseService
	logger  zerolog.Logger
}

// NewExpenseHandler constructs the handler.
func NewExpenseHandler(service service.ExpenseService, logger zerolog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		service: service,
		logger:  logger.With().Str("component", "expense_handler").Logger(),
	}
}

// Register wires routes for expenses. The stats route is registered
// before the id routes so "stats" never parses as an id.
func (h *ExpenseHandler) Register(router fiber.Router, elevated fiber.Handler) {
	router.Get("", h.list)
	router.Get("/stats", h.stats)
	router.Get("/:id", h.get)
	router.Post("", elevated, h.create)
	router.Put("/:id", elevated, h.update)
	router.Delete("/:id", elevated, h.delete)
	router.Post("/:id/receipt", elevated, h.attachReceipt)
}

func (h *ExpenseHandler) list(c *fiber.Ctx) error {
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

	filter := repository.ExpenseFilter{
		Search:   c.Query("q"),
		Category: filterQuery(c, "category"),
		Vendor:   filterQuery(c, "vendor"),
		Status:   filterQuery(c, "status"),
		FromDate: fromDate,
		ToDate:   toDate,
		CampusID: campusID,
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.service.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list expenses")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list expenses")
	}
	return utils.SendSuccess(c, "expenses retrieved", result)
}

func (h *ExpenseHandler) stats(c *fiber.Ctx) error {
	campusID, ok := campusScope(c)
	if !ok {
		return utils.SendError(c, fiber.StatusForbidden, "campus assignment required")
	}

	result, err := h.service.Stats(c.Context(), campusID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute expense stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute expense stats")
	}
	return utils.SendSuccess(c, "expense stats retrieved", result)
}

func (h *ExpenseHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	result, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Expense not found")
		}
		h.logger.Error().Err(err).Uint("expense_id", id).Msg("failed to get expense")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get expense")
	}
	return utils.SendSuccess(c, "expense retrieved", result)
}

func (h *ExpenseHandler) create(c *fiber.Ctx) error {
	var payload dto.ExpenseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Create(c.Context(), payload, userIDFromContext(c), campusIDFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendValidationError(c, err)
		}
		h.logger.Error().Err(err).Msg("failed to create expense")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create expense")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "expense recorded", result)
}

func (h *ExpenseHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.ExpenseUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Expense not found")
		case errors.Is(err, service.ErrInvalidInput):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("expense_id", id).Msg("failed to update expense")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update expense")
	}
	return utils.SendSuccess(c, "expense updated", result)
}

func (h *ExpenseHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		h.logger.Error().Err(err).Uint("expense_id", id).Msg("failed to delete expense")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete expense")
	}
	return utils.SendSuccess(c, "expense deleted", nil)
}

func (h *ExpenseHandler) attachReceipt(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "receipt file is required")
	}

	result, err := h.service.AttachReceipt(c.Context(), id, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "Expense not found")
		case errors.Is(err, service.ErrReceiptTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrReceiptTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
		case errors.Is(err, service.ErrInvalidInput):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Uint("expense_id", id).Msg("failed to attach receipt")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to attach receipt")
	}
	return utils.SendSuccess(c, "receipt attached", result)
}
