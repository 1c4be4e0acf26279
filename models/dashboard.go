package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats summarizes a user's activity across all their groups.
type DashboardStats struct {
	TotalGroups           int64           `json:"total_groups"`
	TotalExpenses         int64           `json:"total_expenses"`
	ExpensesCreated       int64           `json:"expenses_created"`
	TotalPaid             decimal.Decimal `json:"total_paid"`
	TotalOwed             decimal.Decimal `json:"total_owed"`
	PaymentsMade          int64           `json:"payments_made"`
	TotalPaymentsMade     decimal.Decimal `json:"total_payments_made"`
	PaymentsReceived      int64           `json:"payments_received"`
	TotalPaymentsReceived decimal.Decimal `json:"total_payments_received"`
	NetBalance            decimal.Decimal `json:"net_balance"`
}

// CategorySpending is the user's share of approved expenses in one category.
type CategorySpending struct {
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

// TrendPoint is the user's share of approved expenses on one day.
type TrendPoint struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}
