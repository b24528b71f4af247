package models

import (
	"time"

	"gorm.io/datatypes"
)

// Expense statuses.
const (
	ExpenseStatusPending  = "Pending"
	ExpenseStatusApproved = "Approved"
	ExpenseStatusPaid     = "Paid"
	ExpenseStatusRejected = "Rejected"
)

// ExpenseLogEvents that are not status names.
const (
	ExpenseEventCreated = "Created"
	ExpenseEventEdited  = "Edited"
	ExpenseEventReceipt = "Receipt attached"
)

// ExpenseLogEntry is a single audit-trail record attached to an expense.
type ExpenseLogEntry struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// Expense is a campus expenditure with a lifecycle status and an
// append-only audit log stored alongside the row.
type Expense struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Date        time.Time      `gorm:"not null" json:"date"`
	Category    string         `gorm:"size:128" json:"category"`
	Vendor      string         `gorm:"size:255" json:"vendor"`
	Description string         `gorm:"type:text" json:"description"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Status      string         `gorm:"size:32;not null;default:Pending" json:"status"`
	Receipt     string         `gorm:"size:512" json:"receipt"`
	Note        string         `gorm:"type:text" json:"note"`
	Logs        datatypes.JSON `gorm:"type:json" json:"logs"`
	CreatedBy   uint           `gorm:"index" json:"created_by"`
	CampusID    *uint          `gorm:"index" json:"campus_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ValidExpenseStatus reports whether s is one of the accepted statuses.
func ValidExpenseStatus(s string) bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusPaid, ExpenseStatusRejected:
		return true
	}
	return false
}
