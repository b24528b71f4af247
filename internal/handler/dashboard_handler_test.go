package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/handler"
	"github.com/noah-isme/sekolah-admin-api/internal/service"
)

type mockDashboardService struct {
	lastCampusID *uint
	lastRange    string
	overview     dto.DashboardOverviewResponse
	attendance   dto.AttendanceSeriesResponse
	fees         dto.FeeSeriesResponse
	err          error
}

func (m *mockDashboardService) Overview(_ context.Context, campusID *uint) (dto.DashboardOverviewResponse, error) {
	m.lastCampusID = campusID
	if m.err != nil {
		return dto.DashboardOverviewResponse{}, m.err
	}
	return m.overview, nil
}

func (m *mockDashboardService) AttendanceSeries(_ context.Context, campusID *uint, rangeSelector string) (dto.AttendanceSeriesResponse, error) {
	m.lastCampusID = campusID
	m.lastRange = rangeSelector
	if m.err != nil {
		return dto.AttendanceSeriesResponse{}, m.err
	}
	return m.attendance, nil
}

func (m *mockDashboardService) FeeSeries(_ context.Context, campusID *uint, rangeSelector string) (dto.FeeSeriesResponse, error) {
	m.lastCampusID = campusID
	m.lastRange = rangeSelector
	if m.err != nil {
		return dto.FeeSeriesResponse{}, m.err
	}
	return m.fees, nil
}

func newDashboardApp(svc service.DashboardService, auth fiber.Handler) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/dashboard", auth)
	handler.NewDashboardHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestDashboardHandler_OverviewScopedToCampus(t *testing.T) {
	svc := &mockDashboardService{overview: dto.DashboardOverviewResponse{Students: 240}}
	app := newDashboardApp(svc, withLocals(1, "staff", campusOf(3)))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                          `json:"success"`
		Data    dto.DashboardOverviewResponse `json:"data"`
	}
	decodeEnvelope(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, int64(240), response.Data.Students)
	require.NotNil(t, svc.lastCampusID)
	require.Equal(t, uint(3), *svc.lastCampusID)
}

func TestDashboardHandler_OverviewUnassignedStaffForbidden(t *testing.T) {
	svc := &mockDashboardService{}
	app := newDashboardApp(svc, withLocals(1, "staff", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDashboardHandler_OverviewUnassignedAdminGlobal(t *testing.T) {
	svc := &mockDashboardService{}
	app := newDashboardApp(svc, withLocals(1, "admin", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, svc.lastCampusID)
}

func TestDashboardHandler_AttendanceSeriesRangePassthrough(t *testing.T) {
	svc := &mockDashboardService{attendance: dto.AttendanceSeriesResponse{Range: "1m"}}
	app := newDashboardApp(svc, withLocals(1, "admin", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/attendance-weekly?range=1m", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "1m", svc.lastRange)
}

func TestDashboardHandler_AttendanceSeriesInvalidRange(t *testing.T) {
	svc := &mockDashboardService{err: service.ErrInvalidInput}
	app := newDashboardApp(svc, withLocals(1, "admin", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/attendance-weekly?range=90d", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDashboardHandler_FeeSeries(t *testing.T) {
	svc := &mockDashboardService{fees: dto.FeeSeriesResponse{Range: "1y", Buckets: make([]dto.FeeBucket, 12)}}
	app := newDashboardApp(svc, withLocals(1, "admin", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/fees-monthly", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.FeeSeriesResponse `json:"data"`
	}
	decodeEnvelope(t, resp, &response)
	require.Len(t, response.Data.Buckets, 12)
}
