package dto

import (
	"time"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

// ExamCreateRequest is the payload for scheduling an exam.
type ExamCreateRequest struct {
	Title         string     `json:"title" validate:"required,max=255"`
	ExamDate      *time.Time `json:"examDate"`
	Class         string     `json:"class" validate:"omitempty,max=64"`
	Section       string     `json:"section" validate:"omitempty,max=64"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Status        string     `json:"status" validate:"omitempty,max=64"`
	Classes       string     `json:"classes" validate:"omitempty,max=255"`
	Subject       string     `json:"subject" validate:"omitempty,max=128"`
	InvigilatorID *uint      `json:"invigilatorId"`
}

// ExamUpdateRequest carries a partial update for an exam. An explicit
// null on a nullable field clears it.
type ExamUpdateRequest struct {
	Title         Optional[string]    `json:"title"`
	ExamDate      Optional[time.Time] `json:"examDate"`
	Class         Optional[string]    `json:"class"`
	Section       Optional[string]    `json:"section"`
	StartDate     Optional[time.Time] `json:"startDate"`
	EndDate       Optional[time.Time] `json:"endDate"`
	Status        Optional[string]    `json:"status"`
	Classes       Optional[string]    `json:"classes"`
	Subject       Optional[string]    `json:"subject"`
	InvigilatorID Optional[uint]      `json:"invigilatorId"`
}

// ExamResponse is the serialized representation of an exam.
type ExamResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	ExamDate      *time.Time `json:"examDate"`
	Class         string     `json:"class"`
	Section       string     `json:"section"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Status        string     `json:"status"`
	Classes       string     `json:"classes"`
	Subject       string     `json:"subject"`
	InvigilatorID *uint      `json:"invigilatorId"`
	CampusID      *uint      `json:"campusId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ExamListResponse wraps a page of exams.
type ExamListResponse struct {
	Items []ExamResponse `json:"items"`
}

// NewExamResponse converts a model into a DTO.
func NewExamResponse(e models.Exam) ExamResponse {
	return ExamResponse{
		ID:            e.ID,
		Title:         e.Title,
		ExamDate:      e.ExamDate,
		Class:         e.Class,
		Section:       e.Section,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		Status:        e.Status,
		Classes:       e.Classes,
		Subject:       e.Subject,
		InvigilatorID: e.InvigilatorID,
		CampusID:      e.CampusID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// NewExamResponseSlice converts a slice of models into DTOs.
func NewExamResponseSlice(items []models.Exam) []ExamResponse {
	out := make([]ExamResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewExamResponse(item))
	}
	return out
}
