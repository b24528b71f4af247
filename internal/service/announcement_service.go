package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/models"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
)

// ErrAnnouncementNotFound signals a lookup or mutation against a
// nonexistent announcement.
var ErrAnnouncementNotFound = errors.New("announcement not found")

// AnnouncementService exposes announcement CRUD operations.
type AnnouncementService interface {
	List(ctx context.Context, filter repository.AnnouncementFilter) (dto.AnnouncementListResponse, error)
	Get(ctx context.Context, id uint) (dto.AnnouncementResponse, error)
	Create(ctx context.Context, req dto.AnnouncementCreateRequest, createdBy uint, campusID *uint) (dto.AnnouncementResponse, error)
	Update(ctx context.Context, id uint, req dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id uint) error
}

type announcementService struct {
	repo     repository.AnnouncementRepository
	validate *validator.Validate
	logger   zerolog.Logger
	policy   *bluemonday.Policy
}

// NewAnnouncementService constructs the announcement service.
func NewAnnouncementService(repo repository.AnnouncementRepository, validate *validator.Validate, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		repo:     repo,
		validate: validate,
		logger:   logger.With().Str("component", "announcement_service").Logger(),
		policy:   messagePolicy(),
	}
}

// messagePolicy allows the small HTML subset staff use when formatting
// announcements and alerts.
func messagePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("p", "strong", "em", "a", "ul", "ol", "li", "br")
	policy.AllowAttrs("href", "title", "target").OnElements("a")
	return policy
}

func (s *announcementService) List(ctx context.Context, filter repository.AnnouncementFilter) (dto.AnnouncementListResponse, error) {
	filter.Page = maxInt(filter.Page, 1)
	filter.PageSize = clampPageSize(filter.PageSize)

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AnnouncementListResponse{}, err
	}
	return dto.AnnouncementListResponse{Items: dto.NewAnnouncementResponseSlice(items)}, nil
}

func (s *announcementService) Get(ctx context.Context, id uint) (dto.AnnouncementResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementResponse{}, err
	}
	return dto.NewAnnouncementResponse(item), nil
}

func (s *announcementService) Create(ctx context.Context, req dto.AnnouncementCreateRequest, createdBy uint, campusID *uint) (dto.AnnouncementResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	audience := strings.TrimSpace(req.Audience)
	if audience == "" {
		audience = models.AudienceAll
	}

	item := models.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Message:   s.policy.Sanitize(req.Message),
		Audience:  audience,
		CreatedBy: createdBy,
		CampusID:  campusID,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	s.logger.Info().Uint("announcement_id", item.ID).Str("audience", item.Audience).Msg("announcement published")

	return dto.NewAnnouncementResponse(item), nil
}

func (s *announcementService) Update(ctx context.Context, id uint, req dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementResponse{}, err
	}

	if title, ok := req.Title.Get(); ok {
		item.Title = strings.TrimSpace(title)
	}
	if message, ok := req.Message.Get(); ok {
		item.Message = s.policy.Sanitize(message)
	}
	if req.Audience.Set {
		if audience, ok := req.Audience.Get(); ok && strings.TrimSpace(audience) != "" {
			item.Audience = strings.TrimSpace(audience)
		} else {
			// explicit null resets the audience to the default
			item.Audience = models.AudienceAll
		}
	}

	if err := s.repo.Save(ctx, &item); err != nil {
		return dto.AnnouncementResponse{}, err
	}
	return dto.NewAnnouncementResponse(item), nil
}

func (s *announcementService) Delete(ctx context.Context, id uint) error {
	// delete is idempotent: removing a missing row is still a success
	return s.repo.Delete(ctx, id)
}
