package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment statuses. Only completed payments count toward balances.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment records a settlement transfer between two group members.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID       uuid.UUID       `gorm:"type:uuid;index" json:"group_id"`
	PayerID       uuid.UUID       `gorm:"type:uuid" json:"payer_id"`
	Payer         User            `gorm:"foreignKey:PayerID" json:"payer,omitempty"`
	PayeeID       uuid.UUID       `gorm:"type:uuid" json:"payee_id"`
	Payee         User            `gorm:"foreignKey:PayeeID" json:"payee,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency      string          `gorm:"default:VND;size:3" json:"currency"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method,omitempty"` // cash, bank_transfer, other
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	Status        string          `gorm:"not null;size:20;default:pending" json:"status"` // pending, completed, failed
	ApprovedBy    *uuid.UUID      `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	PaymentDate   time.Time       `json:"payment_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CreatePaymentRequest struct {
	GroupID       string          `json:"group_id" binding:"required"`
	PayeeID       string          `json:"payee_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}
