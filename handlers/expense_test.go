package handlers

import (
	"testing"

	"splitshare-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanEditExpense(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		isCreator bool
		isAdmin   bool
		want      bool
	}{
		{"creator edits pending", models.ExpenseStatusPending, true, false, true},
		{"creator cannot edit approved", models.ExpenseStatusApproved, true, false, false},
		{"creator cannot edit rejected", models.ExpenseStatusRejected, true, false, false},
		{"admin edits approved", models.ExpenseStatusApproved, false, true, true},
		{"admin edits rejected", models.ExpenseStatusRejected, false, true, true},
		{"admin edits pending", models.ExpenseStatusPending, false, true, true},
		{"outsider edits nothing", models.ExpenseStatusPending, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canEditExpense(tt.status, tt.isCreator, tt.isAdmin))
		})
	}
}

func TestChangesSplits(t *testing.T) {
	// Description or amount edits must keep the existing splits, so an edit
	// of a custom-split expense without split data stays valid.
	assert.False(t, changesSplits(models.UpdateExpenseRequest{Description: "dinner"}))
	assert.False(t, changesSplits(models.UpdateExpenseRequest{
		Description: "dinner",
		Amount:      decimal.RequireFromString("120.00"),
	}))

	assert.True(t, changesSplits(models.UpdateExpenseRequest{SplitType: "equal"}))
	assert.True(t, changesSplits(models.UpdateExpenseRequest{
		Splits: []models.SplitInput{{UserID: "u1", Percentage: decimal.NewFromInt(100)}},
	}))
}
