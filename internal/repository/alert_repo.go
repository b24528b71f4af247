package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

// AlertFilter filters alert list queries.
type AlertFilter struct {
	Severity string
	CampusID *uint
	Page     int
	PageSize int
}

// AlertRepository exposes persistence helpers for alerts.
type AlertRepository interface {
	List(ctx context.Context, filter AlertFilter) ([]models.Alert, error)
	GetByID(ctx context.Context, id uint) (models.Alert, error)
	Create(ctx context.Context, item *models.Alert) error
	Save(ctx context.Context, item *models.Alert) error
	Delete(ctx context.Context, id uint) error
}

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository constructs the repository implementation.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) List(ctx context.Context, filter AlertFilter) ([]models.Alert, error) {
	query := r.db.WithContext(ctx).Model(&models.Alert{})
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.CampusID != nil {
		query = query.Where("campus_id = ?", *filter.CampusID)
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var items []models.Alert
	if err := query.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *alertRepository) GetByID(ctx context.Context, id uint) (models.Alert, error) {
	var item models.Alert
	err := r.db.WithContext(ctx).First(&item, id).Error
	return item, err
}

func (r *alertRepository) Create(ctx context.Context, item *models.Alert) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *alertRepository) Save(ctx context.Context, item *models.Alert) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *alertRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Alert{}, id).Error
}
