package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/handler"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
	"github.com/noah-isme/sekolah-admin-api/internal/service"
)

func decodeEnvelope(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// withLocals injects authenticated-user locals the way the JWT
// middleware would.
func withLocals(userID uint, role string, campusID *uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		if campusID != nil {
			c.Locals("campus_id", *campusID)
		}
		return c.Next()
	}
}

func allowAll(c *fiber.Ctx) error { return c.Next() }

func campusOf(id uint) *uint { return &id }

type mockAnnouncementService struct {
	lastFilter repository.AnnouncementFilter
	list       dto.AnnouncementListResponse
	single     dto.AnnouncementResponse
	err        error
}

func (m *mockAnnouncementService) List(_ context.Context, filter repository.AnnouncementFilter) (dto.AnnouncementListResponse, error) {
	m.lastFilter = filter
	if m.err != nil {
		return dto.AnnouncementListResponse{}, m.err
	}
	return m.list, nil
}

func (m *mockAnnouncementService) Get(_ context.Context, id uint) (dto.AnnouncementResponse, error) {
	if m.err != nil {
		return dto.AnnouncementResponse{}, m.err
	}
	return m.single, nil
}

func (m *mockAnnouncementService) Create(_ context.Context, req dto.AnnouncementCreateRequest, createdBy uint, campusID *uint) (dto.AnnouncementResponse, error) {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(req); err != nil {
		return dto.AnnouncementResponse{}, err
	}
	if m.err != nil {
		return dto.AnnouncementResponse{}, m.err
	}
	return m.single, nil
}

func (m *mockAnnouncementService) Update(_ context.Context, id uint, req dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error) {
	if m.err != nil {
		return dto.AnnouncementResponse{}, m.err
	}
	return m.single, nil
}

func (m *mockAnnouncementService) Delete(_ context.Context, id uint) error {
	return m.err
}

func newAnnouncementApp(svc service.AnnouncementService, auth fiber.Handler) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/announcements", auth)
	handler.NewAnnouncementHandler(svc, zerolog.New(io.Discard)).Register(group, allowAll)
	return app
}

func TestAnnouncementHandler_ListScopedToCampus(t *testing.T) {
	svc := &mockAnnouncementService{list: dto.AnnouncementListResponse{Items: []dto.AnnouncementResponse{{ID: 1, Title: "Sports day"}}}}
	app := newAnnouncementApp(svc, withLocals(4, "staff", campusOf(2)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/announcements?audience=all&page=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                         `json:"success"`
		Data    dto.AnnouncementListResponse `json:"data"`
		Message string                       `json:"message"`
	}
	decodeEnvelope(t, resp, &response)
	require.True(t, response.Success)
	require.Len(t, response.Data.Items, 1)

	require.NotNil(t, svc.lastFilter.CampusID)
	require.Equal(t, uint(2), *svc.lastFilter.CampusID)
	require.Empty(t, svc.lastFilter.Audience, `the "all" literal means unfiltered`)
}

func TestAnnouncementHandler_ListUnassignedStaffForbidden(t *testing.T) {
	svc := &mockAnnouncementService{}
	app := newAnnouncementApp(svc, withLocals(4, "staff", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/announcements", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAnnouncementHandler_ListUnassignedAdminGetsGlobalView(t *testing.T) {
	svc := &mockAnnouncementService{}
	app := newAnnouncementApp(svc, withLocals(1, "admin", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/announcements", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, svc.lastFilter.CampusID)
}

func TestAnnouncementHandler_GetNotFound(t *testing.T) {
	svc := &mockAnnouncementService{err: service.ErrAnnouncementNotFound}
	app := newAnnouncementApp(svc, withLocals(1, "admin", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/announcements/42", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeEnvelope(t, resp, &response)
	require.False(t, response.Success)
	require.Equal(t, "Announcement not found", response.Message)
}

func TestAnnouncementHandler_GetInvalidID(t *testing.T) {
	svc := &mockAnnouncementService{}
	app := newAnnouncementApp(svc, withLocals(1, "admin", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/announcements/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAnnouncementHandler_CreateValidationEnvelope(t *testing.T) {
	svc := &mockAnnouncementService{}
	app := newAnnouncementApp(svc, withLocals(1, "admin", nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/announcements", strings.NewReader(`{"message":"no title"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Errors  []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"errors"`
	}
	decodeEnvelope(t, resp, &response)
	require.False(t, response.Success)
	require.Equal(t, "validation failed", response.Message)
	require.NotEmpty(t, response.Errors)
}

func TestAnnouncementHandler_CreateSuccess(t *testing.T) {
	svc := &mockAnnouncementService{single: dto.AnnouncementResponse{ID: 7, Title: "Sports day"}}
	app := newAnnouncementApp(svc, withLocals(1, "admin", campusOf(3)))

	payload, err := json.Marshal(dto.AnnouncementCreateRequest{Title: "Sports day", Message: "Friday."})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/announcements", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAnnouncementHandler_DeleteIdempotent(t *testing.T) {
	svc := &mockAnnouncementService{}
	app := newAnnouncementApp(svc, withLocals(1, "admin", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/announcements/42", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "deleting a missing row still succeeds")
}
