package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

// ExpenseFilter filters expense list queries. Both the count and the
// page query are derived from this one predicate so they can never
// drift apart.
type ExpenseFilter struct {
	Search   string
	Category string
	Vendor   string
	Status   string
	FromDate *time.Time
	ToDate   *time.Time
	CampusID *uint
	Page     int
	PageSize int
}

// ExpenseStats aggregates expense amounts by lifecycle status.
type ExpenseStats struct {
	Total    float64
	Pending  int64
	Approved int64
	Paid     float64
}

// ExpenseRepository exposes persistence helpers for expenses.
type ExpenseRepository interface {
	List(ctx context.Context, filter ExpenseFilter) ([]models.Expense, int64, error)
	GetByID(ctx context.Context, id uint) (models.Expense, error)
	Create(ctx context.Context, item *models.Expense) error
	// UpdateAtomic runs mutate against the stored row inside one
	// transaction, closing the read-modify-write race between
	// concurrent writers.
	UpdateAtomic(ctx context.Context, id uint, mutate func(*models.Expense) error) (models.Expense, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context, campusID *uint) (ExpenseStats, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository constructs the repository implementation.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) List(ctx context.Context, filter ExpenseFilter) ([]models.Expense, int64, error) {
	query := applyExpenseFilter(r.db.WithContext(ctx).Model(&models.Expense{}), filter)

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var items []models.Expense
	if err := query.Order("date DESC, id DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func applyExpenseFilter(query *gorm.DB, filter ExpenseFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(description) LIKE ? OR LOWER(vendor) LIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Vendor != "" {
		query = query.Where("vendor = ?", filter.Vendor)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if filter.CampusID != nil {
		query = query.Where("campus_id = ?", *filter.CampusID)
	}
	return query
}

func (r *expenseRepository) GetByID(ctx context.Context, id uint) (models.Expense, error) {
	var item models.Expense
	err := r.db.WithContext(ctx).First(&item, id).Error
	return item, err
}

func (r *expenseRepository) Create(ctx context.Context, item *models.Expense) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// lockForUpdate adds SELECT ... FOR UPDATE where the dialect supports
// it. sqlite rejects the syntax; its single-writer transaction lock
// already serializes the read-modify-write.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *expenseRepository) UpdateAtomic(ctx context.Context, id uint, mutate func(*models.Expense) error) (models.Expense, error) {
	var item models.Expense
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&item, id).Error; err != nil {
			return err
		}
		if err := mutate(&item); err != nil {
			return err
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return models.Expense{}, err
	}
	return item, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Expense{}, id).Error
}

func (r *expenseRepository) Stats(ctx context.Context, campusID *uint) (ExpenseStats, error) {
	query := r.db.WithContext(ctx).Model(&models.Expense{})
	if campusID != nil {
		query = query.Where("campus_id = ?", *campusID)
	}

	var stats ExpenseStats
	err := query.
		Select(
			"COALESCE(SUM(amount), 0) AS total, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS approved, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS paid",
			models.ExpenseStatusPending,
			models.ExpenseStatusApproved,
			models.ExpenseStatusPaid,
		).
		Scan(&stats).Error
	return stats, err
}
