package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/models"
	"github.com/noah-isme/sekolah-admin-api/internal/observability"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
)

// Series range selectors.
const (
	RangeWeek  = "7d"
	RangeMonth = "1m"
	RangeYear  = "1y"
)

const recentAlertLimit = 5

// DashboardService aggregates campus metrics for the admin dashboard.
type DashboardService interface {
	Overview(ctx context.Context, campusID *uint) (dto.DashboardOverviewResponse, error)
	AttendanceSeries(ctx context.Context, campusID *uint, rangeSelector string) (dto.AttendanceSeriesResponse, error)
	FeeSeries(ctx context.Context, campusID *uint, rangeSelector string) (dto.FeeSeriesResponse, error)
}

type dashboardService struct {
	repo     repository.DashboardRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewDashboardService constructs the dashboard aggregator. cache may be
// nil to disable caching.
func NewDashboardService(repo repository.DashboardRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &dashboardService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/sekolah-admin-api/internal/service/dashboard"),
		now:      time.Now,
	}
}

func campusCacheKey(prefix string, campusID *uint) string {
	if campusID == nil {
		return prefix + ":global"
	}
	return fmt.Sprintf("%s:campus:%d", prefix, *campusID)
}

// Overview fans the six independent aggregate queries out concurrently
// and joins them. The first failing query aborts the whole operation;
// no partial result is ever returned.
func (s *dashboardService) Overview(ctx context.Context, campusID *uint) (dto.DashboardOverviewResponse, error) {
	cacheKey := campusCacheKey("dashboard:overview", campusID)
	ctx, span := s.tracer.Start(ctx, "dashboard.overview")
	span.SetAttributes(attribute.String("dashboard.cache_key", cacheKey))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.DashboardLatency().WithLabelValues("overview").Observe(time.Since(start).Seconds())
	}()

	if cached, ok := readCache[dto.DashboardOverviewResponse](ctx, s.cache, cacheKey, s.logger); ok {
		cached.CacheHit = true
		span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
		observability.DashboardRequests().WithLabelValues("overview", "hit").Inc()
		return cached, nil
	}

	dayStart := startOfDay(s.now())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var (
		students, teachers, buses          int64
		studentBreakdown, teacherBreakdown map[string]int64
		alerts                             []models.Alert
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = s.repo.CountActiveStudents(gctx, campusID)
		return err
	})
	g.Go(func() (err error) {
		teachers, err = s.repo.CountActiveTeachers(gctx, campusID)
		return err
	})
	g.Go(func() (err error) {
		buses, err = s.repo.CountActiveBuses(gctx, campusID)
		return err
	})
	g.Go(func() (err error) {
		studentBreakdown, err = s.repo.StudentAttendanceBreakdown(gctx, campusID, dayStart, dayEnd)
		return err
	})
	g.Go(func() (err error) {
		teacherBreakdown, err = s.repo.TeacherAttendanceBreakdown(gctx, campusID, dayStart, dayEnd)
		return err
	})
	g.Go(func() (err error) {
		alerts, err = s.repo.RecentAlerts(gctx, campusID, recentAlertLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate query failed")
		observability.DashboardRequests().WithLabelValues("overview", "error").Inc()
		return dto.DashboardOverviewResponse{}, err
	}

	response := dto.DashboardOverviewResponse{
		Students:          students,
		Teachers:          teachers,
		Buses:             buses,
		StudentAttendance: newAttendanceBreakdown(studentBreakdown),
		TeacherAttendance: newAttendanceBreakdown(teacherBreakdown),
		RecentAlerts:      dto.NewAlertResponseSlice(alerts),
		GeneratedAt:       s.now(),
	}

	writeCache(ctx, s.cache, cacheKey, response, s.cacheTTL, s.logger)
	observability.DashboardRequests().WithLabelValues("overview", "miss").Inc()

	return response, nil
}

func (s *dashboardService) AttendanceSeries(ctx context.Context, campusID *uint, rangeSelector string) (dto.AttendanceSeriesResponse, error) {
	rangeSelector, err := normalizeRange(rangeSelector, RangeWeek)
	if err != nil {
		return dto.AttendanceSeriesResponse{}, err
	}

	cacheKey := campusCacheKey("dashboard:attendance:"+rangeSelector, campusID)
	ctx, span := s.tracer.Start(ctx, "dashboard.attendance_series")
	span.SetAttributes(attribute.String("dashboard.range", rangeSelector))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.DashboardLatency().WithLabelValues("attendance_series").Observe(time.Since(start).Seconds())
	}()

	if cached, ok := readCache[dto.AttendanceSeriesResponse](ctx, s.cache, cacheKey, s.logger); ok {
		cached.CacheHit = true
		observability.DashboardRequests().WithLabelValues("attendance_series", "hit").Inc()
		return cached, nil
	}

	spine := bucketSpine(s.now(), rangeSelector)

	rows, err := s.repo.StudentAttendanceSince(ctx, campusID, spine.start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "attendance query failed")
		observability.DashboardRequests().WithLabelValues("attendance_series", "error").Inc()
		return dto.AttendanceSeriesResponse{}, err
	}

	present := map[string]int64{}
	total := map[string]int64{}
	for _, row := range rows {
		label := spine.label(row.Date)
		switch row.Status {
		case models.AttendanceStatusPresent:
			present[label] += row.Count
			total[label] += row.Count
		case models.AttendanceStatusAbsent, models.AttendanceStatusLate:
			total[label] += row.Count
		}
	}

	buckets := make([]dto.AttendanceBucket, 0, len(spine.labels))
	for _, label := range spine.labels {
		buckets = append(buckets, dto.AttendanceBucket{
			Bucket:  label,
			Present: present[label],
			Total:   total[label],
		})
	}

	response := dto.AttendanceSeriesResponse{Range: rangeSelector, Buckets: buckets}
	writeCache(ctx, s.cache, cacheKey, response, s.cacheTTL, s.logger)
	observability.DashboardRequests().WithLabelValues("attendance_series", "miss").Inc()

	return response, nil
}

func (s *dashboardService) FeeSeries(ctx context.Context, campusID *uint, rangeSelector string) (dto.FeeSeriesResponse, error) {
	rangeSelector, err := normalizeRange(rangeSelector, RangeYear)
	if err != nil {
		return dto.FeeSeriesResponse{}, err
	}

	cacheKey := campusCacheKey("dashboard:fees:"+rangeSelector, campusID)
	ctx, span := s.tracer.Start(ctx, "dashboard.fee_series")
	span.SetAttributes(attribute.String("dashboard.range", rangeSelector))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.DashboardLatency().WithLabelValues("fee_series").Observe(time.Since(start).Seconds())
	}()

	if cached, ok := readCache[dto.FeeSeriesResponse](ctx, s.cache, cacheKey, s.logger); ok {
		cached.CacheHit = true
		observability.DashboardRequests().WithLabelValues("fee_series", "hit").Inc()
		return cached, nil
	}

	spine := bucketSpine(s.now(), rangeSelector)

	rows, err := s.repo.FeeInvoicesSince(ctx, campusID, spine.start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invoice query failed")
		observability.DashboardRequests().WithLabelValues("fee_series", "error").Inc()
		return dto.FeeSeriesResponse{}, err
	}

	collected := map[string]float64{}
	pending := map[string]float64{}
	for _, row := range rows {
		label := spine.label(row.Date)
		if row.Status == models.InvoiceStatusPaid {
			collected[label] += row.Total
		} else {
			pending[label] += row.Balance
		}
	}

	buckets := make([]dto.FeeBucket, 0, len(spine.labels))
	for _, label := range spine.labels {
		buckets = append(buckets, dto.FeeBucket{
			Bucket:    label,
			Collected: collected[label],
			Pending:   pending[label],
		})
	}

	response := dto.FeeSeriesResponse{Range: rangeSelector, Buckets: buckets}
	writeCache(ctx, s.cache, cacheKey, response, s.cacheTTL, s.logger)
	observability.DashboardRequests().WithLabelValues("fee_series", "miss").Inc()

	return response, nil
}

func normalizeRange(selector, fallback string) (string, error) {
	if selector == "" {
		return fallback, nil
	}
	switch selector {
	case RangeWeek, RangeMonth, RangeYear:
		return selector, nil
	}
	return "", fmt.Errorf("%w: range must be one of 7d, 1m, 1y", ErrInvalidInput)
}

func newAttendanceBreakdown(counts map[string]int64) dto.AttendanceBreakdown {
	breakdown := dto.AttendanceBreakdown{
		Present: counts[models.AttendanceStatusPresent],
		Absent:  counts[models.AttendanceStatusAbsent],
		Late:    counts[models.AttendanceStatusLate],
		Leave:   counts[models.AttendanceStatusLeave],
	}
	breakdown.Marked = breakdown.Present + breakdown.Absent + breakdown.Late + breakdown.Leave
	return breakdown
}

func startOfDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// spine is a contiguous, gap-free sequence of bucket labels generated
// in application code so the zero-fill guarantee never depends on a
// storage engine's series functions.
type spine struct {
	start  time.Time
	labels []string
	label  func(time.Time) string
}

const (
	dayBucketLayout   = "2006-01-02"
	monthBucketLayout = "2006-01"
)

func bucketSpine(now time.Time, rangeSelector string) spine {
	switch rangeSelector {
	case RangeYear:
		first := startOfMonth(now).AddDate(0, -11, 0)
		labels := make([]string, 0, 12)
		for i := 0; i < 12; i++ {
			labels = append(labels, first.AddDate(0, i, 0).Format(monthBucketLayout))
		}
		return spine{
			start:  first,
			labels: labels,
			label:  func(t time.Time) string { return t.UTC().Format(monthBucketLayout) },
		}
	default:
		days := 7
		if rangeSelector == RangeMonth {
			days = 30
		}
		first := startOfDay(now).AddDate(0, 0, -(days - 1))
		labels := make([]string, 0, days)
		for i := 0; i < days; i++ {
			labels = append(labels, first.AddDate(0, 0, i).Format(dayBucketLayout))
		}
		return spine{
			start:  first,
			labels: labels,
			label:  func(t time.Time) string { return t.UTC().Format(dayBucketLayout) },
		}
	}
}

func readCache[T any](ctx context.Context, cache *redis.Client, key string, logger zerolog.Logger) (T, bool) {
	var zero T
	if cache == nil {
		return zero, false
	}
	cached, err := cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn().Err(err).Str("cache_key", key).Msg("failed to read dashboard cache")
		}
		return zero, false
	}
	var value T
	if err := json.Unmarshal([]byte(cached), &value); err != nil {
		return zero, false
	}
	return value, true
}

func writeCache[T any](ctx context.Context, cache *redis.Client, key string, value T, ttl time.Duration, logger zerolog.Logger) {
	if cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("cache_key", key).Msg("failed to store dashboard cache")
	}
}
