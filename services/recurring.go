package services

import (
	"log"
	"time"

	"splitshare-backend/database"
	"splitshare-backend/ledger"
	"splitshare-backend/models"

	"github.com/google/uuid"
)

// StartRecurringScheduler runs a background loop that materializes due
// recurring expenses. Created expenses go through the normal approval flow.
func StartRecurringScheduler(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		ProcessDueRecurringExpenses(time.Now())
		for now := range ticker.C {
			ProcessDueRecurringExpenses(now)
		}
	}()
	log.Printf("✅ Recurring expense scheduler started (every %s)", interval)
}

// ProcessDueRecurringExpenses creates a pending expense for every active
// recurring expense whose next occurrence has passed, then advances it.
func ProcessDueRecurringExpenses(now time.Time) {
	var due []models.RecurringExpense
	database.DB.Where("is_active = ? AND next_occurrence <= ?", true, now).Find(&due)

	for _, rec := range due {
		if err := materializeRecurringExpense(rec, now); err != nil {
			log.Printf("❌ Failed to materialize recurring expense %s: %v", rec.ID, err)
		}
	}
}

func materializeRecurringExpense(rec models.RecurringExpense, now time.Time) error {
	var members []models.GroupMember
	database.DB.Where("group_id = ?", rec.GroupID).Find(&members)

	memberIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.UserID)
	}

	shares, err := ledger.SplitExpense(rec.Amount, ledger.SplitEqual, memberIDs, nil)
	if err != nil {
		return err
	}

	expense := models.Expense{
		GroupID:     rec.GroupID,
		CategoryID:  rec.CategoryID,
		CreatedBy:   rec.CreatedBy,
		PaidBy:      rec.PaidBy,
		Description: rec.Description,
		Amount:      rec.Amount,
		Currency:    rec.Currency,
		SplitType:   rec.SplitType,
		Status:      models.ExpenseStatusPending,
		ExpenseDate: rec.NextOccurrence,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		return err
	}

	for _, share := range shares {
		database.DB.Create(&models.ExpenseSplit{
			ExpenseID:  expense.ID,
			UserID:     share.UserID,
			Amount:     share.Amount,
			Percentage: share.Percentage,
		})
	}

	database.DB.Create(&models.Activity{
		GroupID:     rec.GroupID,
		UserID:      rec.CreatedBy,
		Type:        "expense_added",
		ReferenceID: expense.ID,
		Description: "Recurring expense \"" + rec.Description + "\" was added",
	})

	// Advance past now so a long-stopped server doesn't flood the group.
	next := rec.NextOccurrence
	for !next.After(now) {
		next = rec.NextAfter(next)
	}
	return database.DB.Model(&rec).Update("next_occurrence", next).Error
}
