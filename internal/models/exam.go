package models

import "time"

// ExamStatusPlanned is the status assigned to newly created exams.
const ExamStatusPlanned = "Planned"

// Exam represents a scheduled examination for one or more classes.
// InvigilatorID is a weak reference to a teacher and may be unset.
type Exam struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	ExamDate      *time.Time `json:"exam_date"`
	Class         string     `gorm:"size:64" json:"class"`
	Section       string     `gorm:"size:64" json:"section"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Status        string     `gorm:"size:64;not null;default:Planned" json:"status"`
	Classes       string     `gorm:"size:255" json:"classes"`
	Subject       string     `gorm:"size:128" json:"subject"`
	InvigilatorID *uint      `gorm:"index" json:"invigilator_id"`
	CampusID      *uint      `gorm:"index" json:"campus_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
