package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recurring expense frequencies
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// RecurringExpense is a template the scheduler turns into a real expense
// every time its next occurrence comes due.
type RecurringExpense struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID        uuid.UUID       `gorm:"type:uuid;index" json:"group_id"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid" json:"category_id,omitempty"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid" json:"created_by"`
	PaidBy         uuid.UUID       `gorm:"type:uuid" json:"paid_by"`
	Description    string          `gorm:"not null;size:255" json:"description"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency       string          `gorm:"default:VND;size:3" json:"currency"`
	SplitType      string          `gorm:"not null;size:20;default:equal" json:"split_type"`
	Frequency      string          `gorm:"not null;size:20" json:"frequency"` // daily, weekly, monthly, yearly
	NextOccurrence time.Time       `gorm:"index" json:"next_occurrence"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (r *RecurringExpense) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NextAfter advances an occurrence date by one period.
func (r *RecurringExpense) NextAfter(from time.Time) time.Time {
	switch r.Frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case FrequencyYearly:
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}

// Due reports whether the recurring expense should be materialized now.
func (r *RecurringExpense) Due(now time.Time) bool {
	return r.IsActive && !r.NextOccurrence.After(now)
}

type CreateRecurringExpenseRequest struct {
	GroupID     string          `json:"group_id" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	CategoryID  string          `json:"category_id"`
	PaidBy      string          `json:"paid_by"`
	Frequency   string          `json:"frequency" binding:"required,oneof=daily weekly monthly yearly"`
	StartDate   string          `json:"start_date"` // YYYY-MM-DD, defaults to today
}

type UpdateRecurringExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	IsActive    *bool           `json:"is_active"`
}
