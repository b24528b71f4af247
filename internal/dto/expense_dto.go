package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

// ExpenseCreateRequest is the payload for recording an expense.
type ExpenseCreateRequest struct {
	Date        time.Time `json:"date" validate:"required"`
	Category    string    `json:"category" validate:"omitempty,max=128"`
	Vendor      string    `json:"vendor" validate:"omitempty,max=255"`
	Description string    `json:"description" validate:"omitempty"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Status      string    `json:"status" validate:"omitempty,oneof=Pending Approved Paid Rejected"`
	Receipt     string    `json:"receipt" validate:"omitempty,max=512"`
	Note        string    `json:"note"`
}

// ExpenseUpdateRequest carries a partial update for an expense.
type ExpenseUpdateRequest struct {
	Date        Optional[time.Time] `json:"date"`
	Category    Optional[string]    `json:"category"`
	Vendor      Optional[string]    `json:"vendor"`
	Description Optional[string]    `json:"description"`
	Amount      Optional[float64]   `json:"amount"`
	Status      Optional[string]    `json:"status"`
	Receipt     Optional[string]    `json:"receipt"`
	Note        Optional[string]    `json:"note"`
}

// ExpenseResponse is the serialized representation of an expense,
// including its audit log.
type ExpenseResponse struct {
	ID          uint                     `json:"id"`
	Date        time.Time                `json:"date"`
	Category    string                   `json:"category"`
	Vendor      string                   `json:"vendor"`
	Description string                   `json:"description"`
	Amount      float64                  `json:"amount"`
	Status      string                   `json:"status"`
	Receipt     string                   `json:"receipt"`
	Note        string                   `json:"note"`
	Logs        []models.ExpenseLogEntry `json:"logs"`
	CreatedBy   uint                     `json:"createdBy"`
	CampusID    *uint                    `json:"campusId"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// ExpenseListResponse wraps a page of expenses plus the total count for
// the same filters.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Total int64             `json:"total"`
}

// ExpenseStatsResponse summarises expense amounts by lifecycle status.
type ExpenseStatsResponse struct {
	Total    float64 `json:"total"`
	Pending  int64   `json:"pending"`
	Approved int64   `json:"approved"`
	Paid     float64 `json:"paid"`
}

// NewExpenseResponse converts a model into a DTO, decoding the stored
// audit log. A log column that fails to decode yields an empty list
// rather than an error; the stored row is still useful without it.
func NewExpenseResponse(e models.Expense) ExpenseResponse {
	var logs []models.ExpenseLogEntry
	if len(e.Logs) > 0 {
		if err := json.Unmarshal(e.Logs, &logs); err != nil {
			logs = nil
		}
	}
	if logs == nil {
		logs = []models.ExpenseLogEntry{}
	}
	return ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date,
		Category:    e.Category,
		Vendor:      e.Vendor,
		Description: e.Description,
		Amount:      e.Amount,
		Status:      e.Status,
		Receipt:     e.Receipt,
		Note:        e.Note,
		Logs:        logs,
		CreatedBy:   e.CreatedBy,
		CampusID:    e.CampusID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// NewExpenseResponseSlice converts a slice of models into DTOs.
func NewExpenseResponseSlice(items []models.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewExpenseResponse(item))
	}
	return out
}
