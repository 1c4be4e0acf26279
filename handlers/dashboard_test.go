package handlers

import (
	"testing"

	"splitshare-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDashboardNetBalance(t *testing.T) {
	dec := decimal.RequireFromString

	// Fronted 300 for the group, own consumption 120, paid off 50 of debt,
	// received 80 in settlements.
	stats := models.DashboardStats{
		TotalPaid:             dec("300.00"),
		TotalOwed:             dec("120.00"),
		TotalPaymentsMade:     dec("50.00"),
		TotalPaymentsReceived: dec("80.00"),
	}
	assert.True(t, dashboardNetBalance(stats).Equal(dec("150.00")))

	// Pure consumer: owes their share, nothing fronted or settled.
	consumer := models.DashboardStats{TotalOwed: dec("45.50")}
	assert.True(t, dashboardNetBalance(consumer).Equal(dec("-45.50")))

	// Fully settled user nets to zero.
	settled := models.DashboardStats{
		TotalPaid:             dec("100.00"),
		TotalOwed:             dec("150.00"),
		TotalPaymentsMade:     dec("50.00"),
		TotalPaymentsReceived: dec("0.00"),
	}
	assert.True(t, dashboardNetBalance(settled).IsZero())
}
