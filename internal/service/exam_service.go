package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/models"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
)

// ErrExamNotFound signals a lookup or mutation against a nonexistent exam.
var ErrExamNotFound = errors.New("exam not found")

// ExamService exposes exam scheduling operations.
type ExamService interface {
	List(ctx context.Context, filter repository.ExamFilter) (dto.ExamListResponse, error)
	Get(ctx context.Context, id uint) (dto.ExamResponse, error)
	Create(ctx context.Context, req dto.ExamCreateRequest, campusID *uint) (dto.ExamResponse, error)
	Update(ctx context.Context, id uint, req dto.ExamUpdateRequest) (dto.ExamResponse, error)
	Delete(ctx context.Context, id uint) error
}

type examService struct {
	repo     repository.ExamRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewExamService constructs the exam service.
func NewExamService(repo repository.ExamRepository, validate *validator.Validate, logger zerolog.Logger) ExamService {
	return &examService{
		repo:     repo,
		validate: validate,
		logger:   logger.With().Str("component", "exam_service").Logger(),
	}
}

func (s *examService) List(ctx context.Context, filter repository.ExamFilter) (dto.ExamListResponse, error) {
	filter.Page = maxInt(filter.Page, 1)
	filter.PageSize = clampPageSize(filter.PageSize)

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ExamListResponse{}, err
	}
	return dto.ExamListResponse{Items: dto.NewExamResponseSlice(items)}, nil
}

func (s *examService) Get(ctx context.Context, id uint) (dto.ExamResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}
	return dto.NewExamResponse(item), nil
}

func (s *examService) Create(ctx context.Context, req dto.ExamCreateRequest, campusID *uint) (dto.ExamResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.ExamResponse{}, err
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.ExamStatusPlanned
	}

	item := models.Exam{
		Title:         strings.TrimSpace(req.Title),
		ExamDate:      req.ExamDate,
		Class:         req.Class,
		Section:       req.Section,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        status,
		Classes:       req.Classes,
		Subject:       req.Subject,
		InvigilatorID: req.InvigilatorID,
		CampusID:      campusID,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return dto.ExamResponse{}, err
	}

	s.logger.Info().Uint("exam_id", item.ID).Str("status", item.Status).Msg("exam scheduled")

	return dto.NewExamResponse(item), nil
}

func (s *examService) Update(ctx context.Context, id uint, req dto.ExamUpdateRequest) (dto.ExamResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrExamNotFound
		}
		return dto.ExamResponse{}, err
	}

	if title, ok := req.Title.Get(); ok {
		item.Title = strings.TrimSpace(title)
	}
	applyOptionalTime(req.ExamDate, &item.ExamDate)
	applyOptionalTime(req.StartDate, &item.StartDate)
	applyOptionalTime(req.EndDate, &item.EndDate)
	applyOptionalString(req.Class, &item.Class)
	applyOptionalString(req.Section, &item.Section)
	applyOptionalString(req.Classes, &item.Classes)
	applyOptionalString(req.Subject, &item.Subject)
	if status, ok := req.Status.Get(); ok && strings.TrimSpace(status) != "" {
		item.Status = strings.TrimSpace(status)
	}
	if req.InvigilatorID.Set {
		if invigilator, ok := req.InvigilatorID.Get(); ok {
			item.InvigilatorID = &invigilator
		} else {
			item.InvigilatorID = nil
		}
	}

	if err := s.repo.Save(ctx, &item); err != nil {
		return dto.ExamResponse{}, err
	}
	return dto.NewExamResponse(item), nil
}

func (s *examService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
