package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-admin-api/internal/service"
	"github.com/noah-isme/sekolah-admin-api/internal/utils"
)

// DashboardHandler serves the aggregated admin dashboard endpoints.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires the dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/overview", h.overview)
	router.Get("/attendance-weekly", h.attendanceSeries)
	router.Get("/fees-monthly", h.feeSeries)
}

func (h *DashboardHandler) overview(c *fiber.Ctx) error {
	campusID, ok := campusScope(c)
	if !ok {
		return utils.SendError(c, fiber.StatusForbidden, "campus assignment required")
	}

	result, err := h.service.Overview(c.Context(), campusID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard overview")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard overview")
	}
	return utils.SendSuccess(c, "dashboard overview retrieved", result)
}

func (h *DashboardHandler) attendanceSeries(c *fiber.Ctx) error {
	campusID, ok := campusScope(c)
	if !ok {
		return utils.SendError(c, fiber.StatusForbidden, "campus assignment required")
	}

	result, err := h.service.AttendanceSeries(c.Context(), campusID, c.Query("range"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to build attendance series")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build attendance series")
	}
	return utils.SendSuccess(c, "attendance series retrieved", result)
}

func (h *DashboardHandler) feeSeries(c *fiber.Ctx) error {
	campusID, ok := campusScope(c)
	if !ok {
		return utils.SendError(c, fiber.StatusForbidden, "campus assignment required")
	}

	result, err := h.service.FeeSeries(c.Context(), campusID, c.Query("range"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to build fee series")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build fee series")
	}
	return utils.SendSuccess(c, "fee collection series retrieved", result)
}
