package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

// examOrder keeps list results stable for the UI: multi-day exams sort
// by their start date, single-day exams by their exam date.
const examOrder = "COALESCE(start_date, exam_date) DESC, id DESC"

// ExamFilter filters exam list queries. All present fields are
// combined with AND; absent fields are omitted from the predicate.
type ExamFilter struct {
	Search   string
	Class    string
	Section  string
	Status   string
	Subject  string
	FromDate *time.Time
	ToDate   *time.Time
	CampusID *uint
	Page     int
	PageSize int
}

// ExamRepository exposes persistence helpers for exams.
type ExamRepository interface {
	List(ctx context.Context, filter ExamFilter) ([]models.Exam, error)
	GetByID(ctx context.Context, id uint) (models.Exam, error)
	Create(ctx context.Context, item *models.Exam) error
	Save(ctx context.Context, item *models.Exam) error
	Delete(ctx context.Context, id uint) error
}

type examRepository struct {
	db *gorm.DB
}

// NewExamRepository constructs the repository implementation.
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) List(ctx context.Context, filter ExamFilter) ([]models.Exam, error) {
	query := applyExamFilter(r.db.WithContext(ctx).Model(&models.Exam{}), filter)
	query = paginate(query, filter.Page, filter.PageSize)

	var items []models.Exam
	if err := query.Order(examOrder).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func applyExamFilter(query *gorm.DB, filter ExamFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(classes) LIKE ?", pattern, pattern)
	}
	if filter.Class != "" {
		query = query.Where("class = ?", filter.Class)
	}
	if filter.Section != "" {
		query = query.Where("section = ?", filter.Section)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.FromDate != nil {
		query = query.Where("COALESCE(start_date, exam_date) >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("COALESCE(start_date, exam_date) <= ?", *filter.ToDate)
	}
	if filter.CampusID != nil {
		query = query.Where("campus_id = ?", *filter.CampusID)
	}
	return query
}

func (r *examRepository) GetByID(ctx context.Context, id uint) (models.Exam, error) {
	var item models.Exam
	err := r.db.WithContext(ctx).First(&item, id).Error
	return item, err
}

func (r *examRepository) Create(ctx context.Context, item *models.Exam) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *examRepository) Save(ctx context.Context, item *models.Exam) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *examRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Exam{}, id).Error
}
