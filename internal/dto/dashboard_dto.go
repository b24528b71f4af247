package dto

import "time"

// AttendanceBreakdown groups one day's attendance marks by status.
// Marked is the sum of the four categories.
type AttendanceBreakdown struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
	Leave   int64 `json:"leave"`
	Marked  int64 `json:"marked"`
}

// DashboardOverviewResponse aggregates campus-wide totals for the
// admin dashboard. It is computed on demand and never stored.
type DashboardOverviewResponse struct {
	Students          int64               `json:"students"`
	Teachers          int64               `json:"teachers"`
	Buses             int64               `json:"buses"`
	StudentAttendance AttendanceBreakdown `json:"studentAttendance"`
	TeacherAttendance AttendanceBreakdown `json:"teacherAttendance"`
	RecentAlerts      []AlertResponse     `json:"recentAlerts"`
	GeneratedAt       time.Time           `json:"generatedAt"`
	CacheHit          bool                `json:"cacheHit,omitempty"`
}

// AttendanceBucket is one zero-filled point in an attendance series.
type AttendanceBucket struct {
	Bucket  string `json:"bucket"`
	Present int64  `json:"present"`
	Total   int64  `json:"total"`
}

// AttendanceSeriesResponse is a gap-free attendance time series.
type AttendanceSeriesResponse struct {
	Range    string             `json:"range"`
	Buckets  []AttendanceBucket `json:"buckets"`
	CacheHit bool               `json:"cacheHit,omitempty"`
}

// FeeBucket is one zero-filled point in a fee-collection series.
type FeeBucket struct {
	Bucket    string  `json:"bucket"`
	Collected float64 `json:"collected"`
	Pending   float64 `json:"pending"`
}

// FeeSeriesResponse is a gap-free fee-collection time series.
type FeeSeriesResponse struct {
	Range    string      `json:"range"`
	Buckets  []FeeBucket `json:"buckets"`
	CacheHit bool        `json:"cacheHit,omitempty"`
}
