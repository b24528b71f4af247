package models

import "time"

// AudienceAll is the default announcement audience.
const AudienceAll = "all"

// Announcement is a campus-wide message published by staff.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Audience  string    `gorm:"size:64;not null;default:all" json:"audience"`
	CreatedBy uint      `gorm:"index" json:"created_by"`
	CampusID  *uint     `gorm:"index" json:"campus_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
