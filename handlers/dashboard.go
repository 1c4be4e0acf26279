package handlers

import (
	"net/http"
	"time"

	"splitshare-backend/database"
	"splitshare-backend/models"
	"splitshare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GET /api/dashboard — headline statistics across all the user's groups
func GetDashboard(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var memberships []models.GroupMember
	database.DB.Where("user_id = ?", userID).Find(&memberships)

	var groupIDs []uuid.UUID
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
	}

	stats := models.DashboardStats{TotalGroups: int64(len(groupIDs))}

	if len(groupIDs) > 0 {
		database.DB.Model(&models.Expense{}).
			Where("group_id IN ? AND status = ?", groupIDs, models.ExpenseStatusApproved).
			Count(&stats.TotalExpenses)
	}

	database.DB.Model(&models.Expense{}).
		Where("created_by = ? AND status = ?", userID, models.ExpenseStatusApproved).
		Count(&stats.ExpensesCreated)

	stats.TotalPaid = sumDecimal(database.DB.Model(&models.Expense{}).
		Where("paid_by = ? AND status = ?", userID, models.ExpenseStatusApproved), "amount")

	stats.TotalOwed = sumDecimal(database.DB.Model(&models.ExpenseSplit{}).
		Joins("JOIN expenses ON expenses.id = expense_splits.expense_id").
		Where("expense_splits.user_id = ? AND expenses.status = ?", userID, models.ExpenseStatusApproved),
		"expense_splits.amount")

	database.DB.Model(&models.Payment{}).
		Where("payer_id = ? AND status = ?", userID, models.PaymentStatusCompleted).
		Count(&stats.PaymentsMade)
	stats.TotalPaymentsMade = sumDecimal(database.DB.Model(&models.Payment{}).
		Where("payer_id = ? AND status = ?", userID, models.PaymentStatusCompleted), "amount")

	database.DB.Model(&models.Payment{}).
		Where("payee_id = ? AND status = ?", userID, models.PaymentStatusCompleted).
		Count(&stats.PaymentsReceived)
	stats.TotalPaymentsReceived = sumDecimal(database.DB.Model(&models.Payment{}).
		Where("payee_id = ? AND status = ?", userID, models.PaymentStatusCompleted), "amount")

	stats.NetBalance = dashboardNetBalance(stats)

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

// GET /api/dashboard/expenses-by-category — user's spending grouped by category
func GetExpensesByCategory(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var rows []struct {
		CategoryID *uuid.UUID
		Total      decimal.Decimal
	}
	database.DB.Model(&models.ExpenseSplit{}).
		Select("expenses.category_id AS category_id, COALESCE(SUM(expense_splits.amount), 0) AS total").
		Joins("JOIN expenses ON expenses.id = expense_splits.expense_id").
		Where("expense_splits.user_id = ? AND expenses.status = ?", userID, models.ExpenseStatusApproved).
		Group("expenses.category_id").
		Scan(&rows)

	var spending []models.CategorySpending
	for _, row := range rows {
		name := "Uncategorized"
		if row.CategoryID != nil {
			var category models.Category
			if err := database.DB.First(&category, *row.CategoryID).Error; err == nil {
				name = category.Name
			}
		}
		spending = append(spending, models.CategorySpending{
			CategoryID:   row.CategoryID,
			CategoryName: name,
			Total:        row.Total,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", spending)
}

// GET /api/dashboard/expense-trend — user's share per day over the last 30 days
func GetExpenseTrend(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	since := time.Now().AddDate(0, 0, -30)

	var points []models.TrendPoint
	database.DB.Model(&models.ExpenseSplit{}).
		Select("DATE(expenses.expense_date) AS date, COALESCE(SUM(expense_splits.amount), 0) AS total").
		Joins("JOIN expenses ON expenses.id = expense_splits.expense_id").
		Where("expense_splits.user_id = ? AND expenses.status = ? AND expenses.expense_date >= ?",
			userID, models.ExpenseStatusApproved, since).
		Group("DATE(expenses.expense_date)").
		Order("date ASC").
		Scan(&points)

	utils.SuccessResponse(c, http.StatusOK, "", points)
}

// dashboardNetBalance nets what the user fronted and paid out against what
// they consumed and received.
func dashboardNetBalance(stats models.DashboardStats) decimal.Decimal {
	return stats.TotalPaid.
		Sub(stats.TotalOwed).
		Add(stats.TotalPaymentsMade).
		Sub(stats.TotalPaymentsReceived)
}

func sumDecimal(query *gorm.DB, column string) decimal.Decimal {
	var total decimal.Decimal
	query.Select("COALESCE(SUM(" + column + "), 0)").Scan(&total)
	return total
}
