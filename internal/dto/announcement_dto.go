package dto

import (
	"time"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

// AnnouncementCreateRequest is the payload for publishing an announcement.
type AnnouncementCreateRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Message  string `json:"message" validate:"required"`
	Audience string `json:"audience" validate:"omitempty,max=64"`
}

// AnnouncementUpdateRequest carries a partial update. Absent fields keep
// their stored values.
type AnnouncementUpdateRequest struct {
	Title    Optional[string] `json:"title"`
	Message  Optional[string] `json:"message"`
	Audience Optional[string] `json:"audience"`
}

// AnnouncementResponse is the serialized representation of an announcement.
type AnnouncementResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Audience  string    `json:"audience"`
	CreatedBy uint      `json:"createdBy"`
	CampusID  *uint     `json:"campusId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AnnouncementListResponse wraps a page of announcements.
type AnnouncementListResponse struct {
	Items []AnnouncementResponse `json:"items"`
}

// NewAnnouncementResponse converts a model into a DTO.
func NewAnnouncementResponse(a models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		Audience:  a.Audience,
		CreatedBy: a.CreatedBy,
		CampusID:  a.CampusID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// NewAnnouncementResponseSlice converts a slice of models into DTOs.
func NewAnnouncementResponseSlice(items []models.Announcement) []AnnouncementResponse {
	out := make([]AnnouncementResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewAnnouncementResponse(item))
	}
	return out
}
