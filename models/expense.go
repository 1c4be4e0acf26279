package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense statuses. Only approved expenses count toward balances.
const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusRejected = "rejected"
)

type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID       `gorm:"type:uuid;index" json:"group_id"`
	Group       Group           `gorm:"foreignKey:GroupID" json:"-"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid" json:"category_id,omitempty"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid" json:"created_by"`
	PaidBy      uuid.UUID       `gorm:"type:uuid" json:"paid_by"`
	Payer       User            `gorm:"foreignKey:PaidBy" json:"payer,omitempty"`
	Description string          `gorm:"not null;size:255" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency    string          `gorm:"default:VND;size:3" json:"currency"`
	SplitType   string          `gorm:"not null;size:20;default:equal" json:"split_type"` // equal, unequal, custom
	Status      string          `gorm:"not null;size:20;default:pending" json:"status"`   // pending, approved, rejected
	ApprovedBy  *uuid.UUID      `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt  *time.Time      `json:"approved_at,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	ExpenseDate time.Time       `gorm:"type:date;default:CURRENT_DATE" json:"expense_date"`
	Splits      []ExpenseSplit  `gorm:"foreignKey:ExpenseID" json:"splits,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type ExpenseSplit struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ExpenseID  uuid.UUID       `gorm:"type:uuid;index" json:"expense_id"`
	UserID     uuid.UUID       `gorm:"type:uuid" json:"user_id"`
	User       User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2)" json:"percentage"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (es *ExpenseSplit) BeforeCreate(tx *gorm.DB) error {
	if es.ID == uuid.Nil {
		es.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	CategoryID  string          `json:"category_id"`
	PaidBy      string          `json:"paid_by"`
	SplitType   string          `json:"split_type" binding:"required,oneof=equal unequal custom"`
	Notes       string          `json:"notes"`
	ExpenseDate string          `json:"expense_date"` // YYYY-MM-DD
	Splits      []SplitInput    `json:"splits"`       // required for unequal, custom
}

type SplitInput struct {
	UserID     string          `json:"user_id" binding:"required"`
	Percentage decimal.Decimal `json:"percentage"` // for unequal
	Amount     decimal.Decimal `json:"amount"`     // for custom
}

type UpdateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  string          `json:"category_id"`
	SplitType   string          `json:"split_type"`
	Notes       string          `json:"notes"`
	Splits      []SplitInput    `json:"splits"`
}

// Response
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	GroupID     uuid.UUID       `json:"group_id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	PaidBy      uuid.UUID       `json:"paid_by"`
	PayerName   string          `json:"payer_name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	SplitType   string          `json:"split_type"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	ExpenseDate time.Time       `json:"expense_date"`
	Splits      []SplitResponse `json:"splits"`
	CreatedAt   time.Time       `json:"created_at"`
}

type SplitResponse struct {
	UserID     uuid.UUID       `json:"user_id"`
	UserName   string          `json:"user_name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}
