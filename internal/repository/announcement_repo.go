package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

// AnnouncementFilter filters announcement list queries. Zero-valued
// fields are left out of the predicate entirely.
type AnnouncementFilter struct {
	Audience string
	CampusID *uint
	Page     int
	PageSize int
}

// AnnouncementRepository exposes persistence helpers for announcements.
type AnnouncementRepository interface {
	List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, error)
	GetByID(ctx context.Context, id uint) (models.Announcement, error)
	Create(ctx context.Context, item *models.Announcement) error
	Save(ctx context.Context, item *models.Announcement) error
	Delete(ctx context.Context, id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository constructs the repository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{})
	if filter.Audience != "" {
		query = query.Where("audience = ?", filter.Audience)
	}
	if filter.CampusID != nil {
		query = query.Where("campus_id = ?", *filter.CampusID)
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var items []models.Announcement
	if err := query.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id uint) (models.Announcement, error) {
	var item models.Announcement
	err := r.db.WithContext(ctx).First(&item, id).Error
	return item, err
}

func (r *announcementRepository) Create(ctx context.Context, item *models.Announcement) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *announcementRepository) Save(ctx context.Context, item *models.Announcement) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}
