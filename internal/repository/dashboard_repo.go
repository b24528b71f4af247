package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

// AttendanceStatusRow is a per-day, per-status attendance aggregate
// used when bucketing series in application code.
type AttendanceStatusRow struct {
	Date   time.Time
	Status string
	Count  int64
}

// FeeInvoiceRow is a per-day, per-status invoice aggregate for the
// fee series.
type FeeInvoiceRow struct {
	Date    time.Time
	Status  string
	Total   float64
	Balance float64
}

type statusCountRow struct {
	Status string
	Count  int64
}

// DashboardRepository supplies the aggregates behind the admin
// dashboard. A nil campusID yields the unscoped global view; the
// caller is responsible for authorizing that.
type DashboardRepository interface {
	CountActiveStudents(ctx context.Context, campusID *uint) (int64, error)
	CountActiveTeachers(ctx context.Context, campusID *uint) (int64, error)
	CountActiveBuses(ctx context.Context, campusID *uint) (int64, error)
	StudentAttendanceBreakdown(ctx context.Context, campusID *uint, from, to time.Time) (map[string]int64, error)
	TeacherAttendanceBreakdown(ctx context.Context, campusID *uint, from, to time.Time) (map[string]int64, error)
	RecentAlerts(ctx context.Context, campusID *uint, limit int) ([]models.Alert, error)
	StudentAttendanceSince(ctx context.Context, campusID *uint, since time.Time) ([]AttendanceStatusRow, error)
	FeeInvoicesSince(ctx context.Context, campusID *uint, since time.Time) ([]FeeInvoiceRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository constructs the dashboard repository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func scopeCampus(query *gorm.DB, campusID *uint) *gorm.DB {
	if campusID != nil {
		query = query.Where("campus_id = ?", *campusID)
	}
	return query
}

func (r *dashboardRepository) CountActiveStudents(ctx context.Context, campusID *uint) (int64, error) {
	var count int64
	query := scopeCampus(r.db.WithContext(ctx).Model(&models.Student{}), campusID)
	err := query.Where("status = ?", models.RosterStatusActive).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActiveTeachers(ctx context.Context, campusID *uint) (int64, error) {
	var count int64
	query := scopeCampus(r.db.WithContext(ctx).Model(&models.Teacher{}), campusID)
	err := query.Where("status = ?", models.RosterStatusActive).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActiveBuses(ctx context.Context, campusID *uint) (int64, error) {
	var count int64
	query := scopeCampus(r.db.WithContext(ctx).Model(&models.Bus{}), campusID)
	err := query.Where("status = ?", models.RosterStatusActive).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) StudentAttendanceBreakdown(ctx context.Context, campusID *uint, from, to time.Time) (map[string]int64, error) {
	query := scopeCampus(r.db.WithContext(ctx).Model(&models.StudentAttendance{}), campusID)

	var rows []statusCountRow
	err := query.
		Select("status, COUNT(*) AS count").
		Where("date >= ? AND date < ?", from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return statusCounts(rows), nil
}

// TeacherAttendanceBreakdown groups teacher marks by status, folding
// absences remarked "leave" into the leave category.
func (r *dashboardRepository) TeacherAttendanceBreakdown(ctx context.Context, campusID *uint, from, to time.Time) (map[string]int64, error) {
	query := scopeCampus(r.db.WithContext(ctx).Model(&models.TeacherAttendance{}), campusID)

	var rows []statusCountRow
	err := query.
		Select(
			"CASE WHEN status = ? AND LOWER(COALESCE(remark, '')) = ? THEN ? ELSE status END AS status, COUNT(*) AS count",
			models.AttendanceStatusAbsent, models.AttendanceStatusLeave, models.AttendanceStatusLeave,
		).
		Where("date >= ? AND date < ?", from, to).
		Group("1").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return statusCounts(rows), nil
}

func statusCounts(rows []statusCountRow) map[string]int64 {
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] += row.Count
	}
	return counts
}

func (r *dashboardRepository) RecentAlerts(ctx context.Context, campusID *uint, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 5
	}
	query := scopeCampus(r.db.WithContext(ctx).Model(&models.Alert{}), campusID)

	var alerts []models.Alert
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}

// StudentAttendanceSince aggregates per day and status in SQL so the
// result is bounded by days x statuses, not by the number of marks.
func (r *dashboardRepository) StudentAttendanceSince(ctx context.Context, campusID *uint, since time.Time) ([]AttendanceStatusRow, error) {
	query := scopeCampus(r.db.WithContext(ctx).Model(&models.StudentAttendance{}), campusID)

	var rows []AttendanceStatusRow
	err := query.
		Select("date, status, COUNT(*) AS count").
		Where("date >= ?", since).
		Group("date, status").
		Scan(&rows).Error
	return rows, err
}

// FeeInvoicesSince aggregates per day and status in SQL. Totals and
// balances are summed per group so the monthly bucketing only folds a
// bounded row set.
func (r *dashboardRepository) FeeInvoicesSince(ctx context.Context, campusID *uint, since time.Time) ([]FeeInvoiceRow, error) {
	query := scopeCampus(r.db.WithContext(ctx).Model(&models.Invoice{}), campusID)

	var rows []FeeInvoiceRow
	err := query.
		Select("date, status, SUM(total) AS total, SUM(balance) AS balance").
		Where("user_type = ? AND invoice_type = ? AND date >= ?", models.InvoiceUserTypeStudent, models.InvoiceTypeFee, since).
		Group("date, status").
		Scan(&rows).Error
	return rows, err
}
