package models

import "time"

// Alert severities.
const (
	AlertSeverityInfo     = "info"
	AlertSeverityWarning  = "warning"
	AlertSeverityCritical = "critical"
)

// Alert is a short-lived operational notice shown on the dashboard.
type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Severity  string    `gorm:"size:32;not null;default:info" json:"severity"`
	CreatedBy uint      `gorm:"index" json:"created_by"`
	CampusID  *uint     `gorm:"index" json:"campus_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
