package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecurringExpenseNextAfter(t *testing.T) {
	from := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency string
		want      time.Time
	}{
		{FrequencyDaily, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{FrequencyWeekly, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)},
		// Jan 31 + 1 month normalizes to Mar 3 (Go's AddDate behavior)
		{FrequencyMonthly, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)},
		{FrequencyYearly, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			rec := RecurringExpense{Frequency: tt.frequency}
			assert.Equal(t, tt.want, rec.NextAfter(from))
		})
	}
}

func TestRecurringExpenseDue(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	active := RecurringExpense{IsActive: true, NextOccurrence: now.Add(-time.Hour)}
	assert.True(t, active.Due(now))

	exactlyNow := RecurringExpense{IsActive: true, NextOccurrence: now}
	assert.True(t, exactlyNow.Due(now))

	future := RecurringExpense{IsActive: true, NextOccurrence: now.Add(time.Hour)}
	assert.False(t, future.Due(now))

	inactive := RecurringExpense{IsActive: false, NextOccurrence: now.Add(-time.Hour)}
	assert.False(t, inactive.Due(now))
}
