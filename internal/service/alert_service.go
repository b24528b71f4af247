package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/models"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
)

// ErrAlertNotFound signals a lookup or mutation against a nonexistent alert.
var ErrAlertNotFound = errors.New("alert not found")

// AlertService exposes alert CRUD operations.
type AlertService interface {
	List(ctx context.Context, filter repository.AlertFilter) (dto.AlertListResponse, error)
	Get(ctx context.Context, id uint) (dto.AlertResponse, error)
	Create(ctx context.Context, req dto.AlertCreateRequest, createdBy uint, campusID *uint) (dto.AlertResponse, error)
	Update(ctx context.Context, id uint, req dto.AlertUpdateRequest) (dto.AlertResponse, error)
	Delete(ctx context.Context, id uint) error
}

type alertService struct {
	repo     repository.AlertRepository
	validate *validator.Validate
	logger   zerolog.Logger
	policy   *bluemonday.Policy
}

// NewAlertService constructs the alert service.
func NewAlertService(repo repository.AlertRepository, validate *validator.Validate, logger zerolog.Logger) AlertService {
	return &alertService{
		repo:     repo,
		validate: validate,
		logger:   logger.With().Str("component", "alert_service").Logger(),
		policy:   messagePolicy(),
	}
}

func validAlertSeverity(severity string) bool {
	switch severity {
	case models.AlertSeverityInfo, models.AlertSeverityWarning, models.AlertSeverityCritical:
		return true
	}
	return false
}

func (s *alertService) List(ctx context.Context, filter repository.AlertFilter) (dto.AlertListResponse, error) {
	filter.Page = maxInt(filter.Page, 1)
	filter.PageSize = clampPageSize(filter.PageSize)

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AlertListResponse{}, err
	}
	return dto.AlertListResponse{Items: dto.NewAlertResponseSlice(items)}, nil
}

func (s *alertService) Get(ctx context.Context, id uint) (dto.AlertResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AlertResponse{}, ErrAlertNotFound
		}
		return dto.AlertResponse{}, err
	}
	return dto.NewAlertResponse(item), nil
}

func (s *alertService) Create(ctx context.Context, req dto.AlertCreateRequest, createdBy uint, campusID *uint) (dto.AlertResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.AlertResponse{}, err
	}

	severity := req.Severity
	if severity == "" {
		severity = models.AlertSeverityInfo
	}

	item := models.Alert{
		Message:   s.policy.Sanitize(req.Message),
		Severity:  severity,
		CreatedBy: createdBy,
		CampusID:  campusID,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return dto.AlertResponse{}, err
	}

	s.logger.Info().Uint("alert_id", item.ID).Str("severity", item.Severity).Msg("alert raised")

	return dto.NewAlertResponse(item), nil
}

func (s *alertService) Update(ctx context.Context, id uint, req dto.AlertUpdateRequest) (dto.AlertResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AlertResponse{}, ErrAlertNotFound
		}
		return dto.AlertResponse{}, err
	}

	if message, ok := req.Message.Get(); ok {
		item.Message = s.policy.Sanitize(message)
	}
	if req.Severity.Set {
		severity, ok := req.Severity.Get()
		if !ok || severity == "" {
			item.Severity = models.AlertSeverityInfo
		} else if !validAlertSeverity(severity) {
			return dto.AlertResponse{}, fmt.Errorf("%w: severity must be one of info, warning, critical", ErrInvalidInput)
		} else {
			item.Severity = severity
		}
	}

	if err := s.repo.Save(ctx, &item); err != nil {
		return dto.AlertResponse{}, err
	}
	return dto.NewAlertResponse(item), nil
}

func (s *alertService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
