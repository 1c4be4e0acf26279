package handlers

import (
	"net/http"
	"time"

	"splitshare-backend/database"
	"splitshare-backend/models"
	"splitshare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/recurring
func CreateRecurringExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	if !isMember(groupID, userID) {
		utils.Forbidden(c, "You are not a member of this group")
		return
	}

	if !req.Amount.IsPositive() {
		utils.BadRequest(c, "Amount must be greater than zero")
		return
	}

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil || !group.IsActive {
		utils.NotFound(c, "Group not found")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = group.Currency
	}
	if !utils.ValidCurrency(currency) {
		utils.BadRequest(c, "Unsupported currency: "+currency)
		return
	}

	paidBy := userID
	if req.PaidBy != "" {
		paidBy, err = uuid.Parse(req.PaidBy)
		if err != nil || !isMember(groupID, paidBy) {
			utils.BadRequest(c, "Payer must be a group member")
			return
		}
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		catID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			utils.BadRequest(c, "Invalid category ID")
			return
		}
		categoryID = &catID
	}

	start := time.Now()
	if req.StartDate != "" {
		if parsed, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			start = parsed
		}
	}

	recurring := models.RecurringExpense{
		GroupID:        groupID,
		CategoryID:     categoryID,
		CreatedBy:      userID,
		PaidBy:         paidBy,
		Description:    req.Description,
		Amount:         req.Amount,
		Currency:       currency,
		SplitType:      "equal",
		Frequency:      req.Frequency,
		NextOccurrence: start,
		IsActive:       true,
	}

	if err := database.DB.Create(&recurring).Error; err != nil {
		utils.InternalError(c, "Failed to create recurring expense")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Recurring expense created", recurring)
}

// GET /api/groups/:id/recurring
func GetGroupRecurringExpenses(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	if !isMember(groupID, userID) {
		utils.Forbidden(c, "You are not a member of this group")
		return
	}

	var recurring []models.RecurringExpense
	database.DB.Where("group_id = ?", groupID).Order("next_occurrence ASC").Find(&recurring)

	utils.SuccessResponse(c, http.StatusOK, "", recurring)
}

// PUT /api/recurring/:id
func UpdateRecurringExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	recurringID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid recurring expense ID")
		return
	}

	var recurring models.RecurringExpense
	if err := database.DB.First(&recurring, recurringID).Error; err != nil {
		utils.NotFound(c, "Recurring expense not found")
		return
	}

	if recurring.CreatedBy != userID && !isAdmin(recurring.GroupID, userID) {
		utils.Forbidden(c, "Only the creator or a group admin can edit a recurring expense")
		return
	}

	var req models.UpdateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Amount.IsPositive() {
		updates["amount"] = req.Amount
	}
	if req.Frequency != "" {
		switch req.Frequency {
		case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyYearly:
			updates["frequency"] = req.Frequency
		default:
			utils.BadRequest(c, "Invalid frequency: "+req.Frequency)
			return
		}
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	database.DB.Model(&recurring).Updates(updates)
	database.DB.First(&recurring, recurringID)

	utils.SuccessResponse(c, http.StatusOK, "Recurring expense updated", recurring)
}

// DELETE /api/recurring/:id
func DeleteRecurringExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	recurringID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid recurring expense ID")
		return
	}

	var recurring models.RecurringExpense
	if err := database.DB.First(&recurring, recurringID).Error; err != nil {
		utils.NotFound(c, "Recurring expense not found")
		return
	}

	if recurring.CreatedBy != userID && !isAdmin(recurring.GroupID, userID) {
		utils.Forbidden(c, "Only the creator or a group admin can delete a recurring expense")
		return
	}

	// Already materialized expenses are untouched
	database.DB.Delete(&recurring)

	utils.SuccessResponse(c, http.StatusOK, "Recurring expense deleted", nil)
}
