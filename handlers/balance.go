package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"splitshare-backend/database"
	"splitshare-backend/ledger"
	"splitshare-backend/models"
	"splitshare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const balanceCacheTTL = 5 * time.Minute

// GET /api/groups/:id/balances
func GetGroupBalances(c *gin.Context) {
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

	// Serve from cache when possible
	if cached, ok := readCachedBalances(groupID); ok {
		utils.SuccessResponse(c, http.StatusOK, "", cached)
		return
	}

	var group models.Group
	database.DB.First(&group, groupID)

	expenses, payments := loadLedgerSnapshot(groupID)
	balances := ledger.CalculateBalances(expenses, payments)

	totalSpent := decimal.Zero
	for _, e := range expenses {
		if e.Status == ledger.ExpenseApproved {
			totalSpent = totalSpent.Add(e.Amount)
		}
	}

	summary := models.GroupBalanceSummary{
		GroupID:    groupID,
		GroupName:  group.Name,
		Currency:   group.Currency,
		Balances:   buildBalanceEntries(balances),
		TotalSpent: totalSpent,
	}

	writeCachedBalances(groupID, summary)

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// GET /api/groups/:id/settlements
func GetGroupSettlements(c *gin.Context) {
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

	expenses, payments := loadLedgerSnapshot(groupID)
	balances := ledger.CalculateBalances(expenses, payments)
	plan := ledger.OptimizeSettlements(balances)

	var suggestions []models.SettlementSuggestion
	for _, s := range plan {
		suggestions = append(suggestions, models.SettlementSuggestion{
			PayerID:   s.Payer,
			PayerName: userName(s.Payer),
			PayeeID:   s.Payee,
			PayeeName: userName(s.Payee),
			Amount:    s.Amount,
		})
	}

	summary := models.GroupSettlementSummary{
		GroupID:     groupID,
		Balances:    buildBalanceEntries(balances),
		Settlements: suggestions,
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// GET /api/groups/:id/debts — current user's position in the group
func GetUserDebts(c *gin.Context) {
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

	expenses, payments := loadLedgerSnapshot(groupID)
	balances := ledger.CalculateBalances(expenses, payments)
	plan := ledger.OptimizeSettlements(balances)
	view := ledger.UserDebts(userID, balances, plan)

	summary := models.UserDebtSummary{
		NetBalance: view.NetBalance,
		Owes:       buildDebtEntries(view.Owes),
		Owed:       buildDebtEntries(view.Owed),
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// GET /api/balances — net position per counterparty across all groups
func GetOverallBalances(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var memberships []models.GroupMember
	database.DB.Where("user_id = ?", userID).Find(&memberships)

	// Positive = they owe me, negative = I owe them
	friendBalances := make(map[uuid.UUID]decimal.Decimal)

	for _, m := range memberships {
		expenses, payments := loadLedgerSnapshot(m.GroupID)
		balances := ledger.CalculateBalances(expenses, payments)
		plan := ledger.OptimizeSettlements(balances)
		view := ledger.UserDebts(userID, balances, plan)

		for _, d := range view.Owes {
			friendBalances[d.UserID] = friendBalances[d.UserID].Sub(d.Amount)
		}
		for _, d := range view.Owed {
			friendBalances[d.UserID] = friendBalances[d.UserID].Add(d.Amount)
		}
	}

	var entries []models.BalanceEntry
	for friendID, amount := range friendBalances {
		if isDust(amount) {
			continue
		}
		entries = append(entries, models.BalanceEntry{
			UserID: friendID,
			Name:   userName(friendID),
			Amount: amount,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID.String() < entries[j].UserID.String()
	})

	utils.SuccessResponse(c, http.StatusOK, "", entries)
}

// loadLedgerSnapshot pulls the group's full expense and payment history into
// the calculator's input types. Status filtering happens inside the ledger.
func loadLedgerSnapshot(groupID uuid.UUID) ([]ledger.ExpenseEntry, []ledger.PaymentEntry) {
	var expenses []models.Expense
	database.DB.Where("group_id = ?", groupID).Find(&expenses)

	var entries []ledger.ExpenseEntry
	for _, e := range expenses {
		var splits []models.ExpenseSplit
		database.DB.Where("expense_id = ?", e.ID).Find(&splits)

		entry := ledger.ExpenseEntry{
			ID:     e.ID,
			PaidBy: e.PaidBy,
			Amount: e.Amount,
			Status: e.Status,
		}
		for _, s := range splits {
			entry.Splits = append(entry.Splits, ledger.SplitEntry{
				UserID: s.UserID,
				Amount: s.Amount,
			})
		}
		entries = append(entries, entry)
	}

	var payments []models.Payment
	database.DB.Where("group_id = ?", groupID).Find(&payments)

	var paymentEntries []ledger.PaymentEntry
	for _, p := range payments {
		paymentEntries = append(paymentEntries, ledger.PaymentEntry{
			Payer:  p.PayerID,
			Payee:  p.PayeeID,
			Amount: p.Amount,
			Status: p.Status,
		})
	}

	return entries, paymentEntries
}

func buildBalanceEntries(balances map[uuid.UUID]decimal.Decimal) []models.BalanceEntry {
	var entries []models.BalanceEntry
	for id, amount := range balances {
		entries = append(entries, models.BalanceEntry{
			UserID: id,
			Name:   userName(id),
			Amount: amount,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID.String() < entries[j].UserID.String()
	})
	return entries
}

func buildDebtEntries(items []ledger.DebtItem) []models.DebtEntry {
	var entries []models.DebtEntry
	for _, item := range items {
		entries = append(entries, models.DebtEntry{
			UserID: item.UserID,
			Name:   userName(item.UserID),
			Amount: item.Amount,
		})
	}
	return entries
}

// isDust reports sub-cent residue left over from per-group rounding after
// cross-group netting, using the same tolerance as the ledger.
func isDust(amount decimal.Decimal) bool {
	return amount.Abs().LessThanOrEqual(ledger.Tolerance)
}

func userName(id uuid.UUID) string {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return ""
	}
	return user.Name
}

// ============================================================
// Redis balance cache
// ============================================================

func balanceCacheKey(groupID uuid.UUID) string {
	return "balances:" + groupID.String()
}

func readCachedBalances(groupID uuid.UUID) (models.GroupBalanceSummary, bool) {
	var summary models.GroupBalanceSummary
	if database.Redis == nil {
		return summary, false
	}

	data, err := database.Redis.Get(context.Background(), balanceCacheKey(groupID)).Bytes()
	if err != nil {
		return summary, false
	}

	if err := json.Unmarshal(data, &summary); err != nil {
		return summary, false
	}
	return summary, true
}

func writeCachedBalances(groupID uuid.UUID, summary models.GroupBalanceSummary) {
	if database.Redis == nil {
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	database.Redis.Set(context.Background(), balanceCacheKey(groupID), data, balanceCacheTTL)
}

// invalidateBalanceCache drops the cached summary after anything that moves
// money: expense approval, edits, deletions, completed payments.
func invalidateBalanceCache(groupID uuid.UUID) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), balanceCacheKey(groupID))
}
