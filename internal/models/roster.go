package models

import "time"

// Roster statuses.
const (
	RosterStatusActive   = "active"
	RosterStatusInactive = "inactive"
)

// Student represents an enrolled learner. Only the fields the dashboard
// needs are modelled; enrollment details live in a separate system.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Class     string    `gorm:"size:64" json:"class"`
	Section   string    `gorm:"size:64" json:"section"`
	Status    string    `gorm:"size:32;not null;default:active" json:"status"`
	CampusID  *uint     `gorm:"index" json:"campus_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Teacher represents a staff member who can invigilate exams.
type Teacher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Subject   string    `gorm:"size:128" json:"subject"`
	Status    string    `gorm:"size:32;not null;default:active" json:"status"`
	CampusID  *uint     `gorm:"index" json:"campus_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bus represents a transport vehicle assigned to a campus.
type Bus struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"size:64;not null" json:"number"`
	Route     string    `gorm:"size:255" json:"route"`
	Status    string    `gorm:"size:32;not null;default:active" json:"status"`
	CampusID  *uint     `gorm:"index" json:"campus_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
