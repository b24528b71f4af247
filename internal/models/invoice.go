package models

import "time"

// Invoice kinds used by the fee-collection series.
const (
	InvoiceUserTypeStudent = "student"
	InvoiceTypeFee         = "fee"
	InvoiceStatusPaid      = "paid"
)

// Invoice is a billing record. The dashboard only reads student fee
// invoices; other invoice kinds pass through untouched.
type Invoice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	UserType    string    `gorm:"size:32;not null" json:"user_type"`
	InvoiceType string    `gorm:"size:32;not null" json:"invoice_type"`
	Total       float64   `gorm:"not null" json:"total"`
	Balance     float64   `gorm:"not null" json:"balance"`
	Status      string    `gorm:"size:32;not null" json:"status"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	CampusID    *uint     `gorm:"index" json:"campus_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
