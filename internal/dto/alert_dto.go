package dto

import (
	"time"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

// AlertCreateRequest is the payload for raising an alert.
type AlertCreateRequest struct {
	Message  string `json:"message" validate:"required"`
	Severity string `json:"severity" validate:"omitempty,oneof=info warning critical"`
}

// AlertUpdateRequest carries a partial update for an alert.
type AlertUpdateRequest struct {
	Message  Optional[string] `json:"message"`
	Severity Optional[string] `json:"severity"`
}

// AlertResponse is the serialized representation of an alert.
type AlertResponse struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedBy uint      `json:"createdBy"`
	CampusID  *uint     `json:"campusId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AlertListResponse wraps a page of alerts.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
}

// NewAlertResponse converts a model into a DTO.
func NewAlertResponse(a models.Alert) AlertResponse {
	return AlertResponse{
		ID:        a.ID,
		Message:   a.Message,
		Severity:  a.Severity,
		CreatedBy: a.CreatedBy,
		CampusID:  a.CampusID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// NewAlertResponseSlice converts a slice of models into DTOs.
func NewAlertResponseSlice(items []models.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewAlertResponse(item))
	}
	return out
}
