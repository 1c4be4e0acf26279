package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"splitshare-backend/database"
	"splitshare-backend/ledger"
	"splitshare-backend/models"
	"splitshare-backend/services"
	"splitshare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POST /api/groups/:id/expenses
func CreateExpense(c *gin.Context) {
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

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
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

	// Payer defaults to the creator and must be a group member
	paidBy := userID
	if req.PaidBy != "" {
		paidBy, err = uuid.Parse(req.PaidBy)
		if err != nil {
			utils.BadRequest(c, "Invalid paid_by user ID")
			return
		}
		if !isMember(groupID, paidBy) {
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
		var category models.Category
		if err := database.DB.First(&category, catID).Error; err != nil || !category.IsActive {
			utils.BadRequest(c, "Invalid category")
			return
		}
		categoryID = &catID
	}

	// Compute splits before touching the database
	shares, err := computeShares(groupID, req.Amount, req.SplitType, req.Splits)
	if err != nil {
		var splitErr *ledger.InvalidSplitError
		if errors.As(err, &splitErr) {
			utils.BadRequest(c, splitErr.Error())
		} else {
			utils.BadRequest(c, err.Error())
		}
		return
	}

	// Parse expense date
	expenseDate := time.Now()
	if req.ExpenseDate != "" {
		if parsed, err := time.Parse("2006-01-02", req.ExpenseDate); err == nil {
			expenseDate = parsed
		}
	}

	// Admins' expenses are approved immediately, everyone else needs approval
	status := models.ExpenseStatusPending
	var approvedBy *uuid.UUID
	var approvedAt *time.Time
	if isAdmin(groupID, userID) {
		status = models.ExpenseStatusApproved
		now := time.Now()
		approvedBy = &userID
		approvedAt = &now
	}

	expense := models.Expense{
		GroupID:     groupID,
		CategoryID:  categoryID,
		CreatedBy:   userID,
		PaidBy:      paidBy,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
		SplitType:   req.SplitType,
		Status:      status,
		ApprovedBy:  approvedBy,
		ApprovedAt:  approvedAt,
		Notes:       req.Notes,
		ExpenseDate: expenseDate,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		utils.InternalError(c, "Failed to create expense")
		return
	}

	splits := persistShares(expense.ID, shares)

	// Log activity
	var creator models.User
	database.DB.First(&creator, userID)

	database.DB.Create(&models.Activity{
		GroupID:     groupID,
		UserID:      userID,
		Type:        "expense_added",
		ReferenceID: expense.ID,
		Description: fmt.Sprintf("%s added \"%s\" (%s %s)", creator.Name, expense.Description, expense.Currency, expense.Amount.StringFixed(2)),
	})

	if status == models.ExpenseStatusApproved {
		invalidateBalanceCache(groupID)
	}

	var payer models.User
	database.DB.First(&payer, paidBy)
	go services.GetNotificationService().NotifyExpenseAdded(expense, splits, payer, group)

	response := buildExpenseResponse(expense.ID)
	utils.SuccessResponse(c, http.StatusCreated, "Expense added", response)
}

// GET /api/groups/:id/expenses
func GetGroupExpenses(c *gin.Context) {
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

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	query := database.DB.Where("group_id = ?", groupID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var expenses []models.Expense
	query.Order("expense_date DESC, created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&expenses)

	var responses []models.ExpenseResponse
	for _, e := range expenses {
		responses = append(responses, buildExpenseResponse(e.ID))
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/expenses/:id
func GetExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	if !isMember(expense.GroupID, userID) {
		utils.Forbidden(c, "You are not a member of this group")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", buildExpenseResponse(expenseID))
}

// PUT /api/expenses/:id
func UpdateExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	admin := isAdmin(expense.GroupID, userID)
	if expense.CreatedBy != userID && !admin {
		utils.Forbidden(c, "Only the creator or a group admin can edit an expense")
		return
	}
	if !canEditExpense(expense.Status, expense.CreatedBy == userID, admin) {
		utils.BadRequest(c, "Only pending expenses can be edited")
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	amount := expense.Amount
	if req.Amount.IsPositive() {
		amount = req.Amount
		updates["amount"] = req.Amount
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.CategoryID != "" {
		catID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			utils.BadRequest(c, "Invalid category ID")
			return
		}
		var category models.Category
		if err := database.DB.First(&category, catID).Error; err != nil || !category.IsActive {
			utils.BadRequest(c, "Invalid category")
			return
		}
		updates["category_id"] = catID
	}
	splitType := expense.SplitType
	if req.SplitType != "" {
		splitType = req.SplitType
		updates["split_type"] = req.SplitType
	}

	// Splits are regenerated wholesale, but only when the request actually
	// changes them. Computing before any write keeps the expense untouched
	// when the new split input is invalid.
	var shares []ledger.SplitShare
	if changesSplits(req) {
		var err error
		shares, err = computeShares(expense.GroupID, amount, splitType, req.Splits)
		if err != nil {
			var splitErr *ledger.InvalidSplitError
			if errors.As(err, &splitErr) {
				utils.BadRequest(c, splitErr.Error())
			} else {
				utils.BadRequest(c, err.Error())
			}
			return
		}
	}

	// Edits go back through approval unless an admin made them
	if admin {
		updates["status"] = models.ExpenseStatusApproved
		updates["approved_by"] = userID
		updates["approved_at"] = time.Now()
	} else {
		updates["status"] = models.ExpenseStatusPending
		updates["approved_by"] = nil
		updates["approved_at"] = nil
	}

	database.DB.Model(&expense).Updates(updates)
	database.DB.First(&expense, expenseID)

	if shares != nil {
		database.DB.Where("expense_id = ?", expenseID).Delete(&models.ExpenseSplit{})
		persistShares(expense.ID, shares)
	}

	// Log activity
	var editor models.User
	database.DB.First(&editor, userID)

	database.DB.Create(&models.Activity{
		GroupID:     expense.GroupID,
		UserID:      userID,
		Type:        "expense_updated",
		ReferenceID: expense.ID,
		Description: fmt.Sprintf("%s updated \"%s\"", editor.Name, expense.Description),
	})

	invalidateBalanceCache(expense.GroupID)

	response := buildExpenseResponse(expense.ID)
	utils.SuccessResponse(c, http.StatusOK, "Expense updated", response)
}

// DELETE /api/expenses/:id
func DeleteExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	if expense.CreatedBy != userID && !isAdmin(expense.GroupID, userID) {
		utils.Forbidden(c, "Only the creator or a group admin can delete an expense")
		return
	}

	// Log before deleting
	var deleter models.User
	database.DB.First(&deleter, userID)

	database.DB.Create(&models.Activity{
		GroupID:     expense.GroupID,
		UserID:      userID,
		Type:        "expense_deleted",
		Description: fmt.Sprintf("%s deleted \"%s\" (%s %s)", deleter.Name, expense.Description, expense.Currency, expense.Amount.StringFixed(2)),
	})

	// Splits are owned by the expense and go with it
	database.DB.Where("expense_id = ?", expenseID).Delete(&models.ExpenseSplit{})
	database.DB.Delete(&expense)

	invalidateBalanceCache(expense.GroupID)

	utils.SuccessResponse(c, http.StatusOK, "Expense deleted", nil)
}

// POST /api/expenses/:id/approve
func ApproveExpense(c *gin.Context) {
	decideExpense(c, models.ExpenseStatusApproved)
}

// POST /api/expenses/:id/reject
func RejectExpense(c *gin.Context) {
	decideExpense(c, models.ExpenseStatusRejected)
}

func decideExpense(c *gin.Context, status string) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	if !isAdmin(expense.GroupID, userID) {
		utils.Forbidden(c, "Only group admins can approve or reject expenses")
		return
	}

	if expense.Status != models.ExpenseStatusPending {
		utils.BadRequest(c, "Expense is not pending approval")
		return
	}

	database.DB.Model(&expense).Updates(map[string]interface{}{
		"status":      status,
		"approved_by": userID,
		"approved_at": time.Now(),
	})
	expense.Status = status

	verb := "approved"
	if status == models.ExpenseStatusRejected {
		verb = "rejected"
	}

	var admin models.User
	database.DB.First(&admin, userID)

	database.DB.Create(&models.Activity{
		GroupID:     expense.GroupID,
		UserID:      userID,
		Type:        "expense_" + verb,
		ReferenceID: expense.ID,
		Description: fmt.Sprintf("%s %s \"%s\"", admin.Name, verb, expense.Description),
	})

	if status == models.ExpenseStatusApproved {
		invalidateBalanceCache(expense.GroupID)
	}

	var creator models.User
	database.DB.First(&creator, expense.CreatedBy)
	var group models.Group
	database.DB.First(&group, expense.GroupID)
	go services.GetNotificationService().NotifyExpenseDecision(expense, creator, group)

	utils.SuccessResponse(c, http.StatusOK, "Expense "+verb, buildExpenseResponse(expense.ID))
}

// canEditExpense limits non-admin creators to expenses still awaiting
// approval; admins can edit any expense.
func canEditExpense(status string, isCreator, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return isCreator && status == models.ExpenseStatusPending
}

// changesSplits reports whether an edit touches the split configuration.
// Description-only or amount-only edits keep the existing splits.
func changesSplits(req models.UpdateExpenseRequest) bool {
	return req.SplitType != "" || len(req.Splits) > 0
}

// computeShares runs the split calculator for the requested policy. Equal
// splits go over the group's current membership; the other policies use the
// caller-provided split inputs.
func computeShares(groupID uuid.UUID, total decimal.Decimal, splitType string, inputs []models.SplitInput) ([]ledger.SplitShare, error) {
	if splitType == ledger.SplitEqual {
		var members []models.GroupMember
		database.DB.Where("group_id = ?", groupID).Find(&members)

		memberIDs := make([]uuid.UUID, 0, len(members))
		for _, m := range members {
			memberIDs = append(memberIDs, m.UserID)
		}
		return ledger.SplitExpense(total, ledger.SplitEqual, memberIDs, nil)
	}

	shareInputs := make([]ledger.ShareInput, 0, len(inputs))
	for _, in := range inputs {
		splitUserID, err := uuid.Parse(in.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID in splits: %s", in.UserID)
		}
		shareInputs = append(shareInputs, ledger.ShareInput{
			UserID:     splitUserID,
			Percentage: in.Percentage,
			Amount:     in.Amount,
		})
	}
	return ledger.SplitExpense(total, splitType, nil, shareInputs)
}

func persistShares(expenseID uuid.UUID, shares []ledger.SplitShare) []models.ExpenseSplit {
	splits := make([]models.ExpenseSplit, 0, len(shares))
	for _, share := range shares {
		split := models.ExpenseSplit{
			ExpenseID:  expenseID,
			UserID:     share.UserID,
			Amount:     share.Amount,
			Percentage: share.Percentage,
		}
		database.DB.Create(&split)
		splits = append(splits, split)
	}
	return splits
}

// Build expense response with payer name and split details
func buildExpenseResponse(expenseID uuid.UUID) models.ExpenseResponse {
	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		return models.ExpenseResponse{}
	}

	var payer models.User
	database.DB.First(&payer, expense.PaidBy)

	var dbSplits []models.ExpenseSplit
	database.DB.Where("expense_id = ?", expenseID).Find(&dbSplits)

	var splitResponses []models.SplitResponse
	for _, s := range dbSplits {
		var user models.User
		database.DB.First(&user, s.UserID)
		splitResponses = append(splitResponses, models.SplitResponse{
			UserID:     s.UserID,
			UserName:   user.Name,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		})
	}

	return models.ExpenseResponse{
		ID:          expense.ID,
		GroupID:     expense.GroupID,
		CategoryID:  expense.CategoryID,
		PaidBy:      expense.PaidBy,
		PayerName:   payer.Name,
		Description: expense.Description,
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		SplitType:   expense.SplitType,
		Status:      expense.Status,
		Notes:       expense.Notes,
		ExpenseDate: expense.ExpenseDate,
		Splits:      splitResponses,
		CreatedAt:   expense.CreatedAt,
	}
}
