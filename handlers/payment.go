package handlers

import (
	"fmt"
	"net/http"
	"time"

	"splitshare-backend/database"
	"splitshare-backend/models"
	"splitshare-backend/services"
	"splitshare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/payments
func CreatePayment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	payeeID, err := uuid.Parse(req.PayeeID)
	if err != nil {
		utils.BadRequest(c, "Invalid payee ID")
		return
	}

	if !req.Amount.IsPositive() {
		utils.BadRequest(c, "Amount must be greater than zero")
		return
	}

	if payeeID == userID {
		utils.BadRequest(c, "You cannot record a payment to yourself")
		return
	}

	if !isMember(groupID, userID) || !isMember(groupID, payeeID) {
		utils.Forbidden(c, "Both payer and payee must be group members")
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

	payment := models.Payment{
		GroupID:       groupID,
		PayerID:       userID,
		PayeeID:       payeeID,
		Amount:        req.Amount,
		Currency:      currency,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Status:        models.PaymentStatusPending,
		PaymentDate:   time.Now(),
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		utils.InternalError(c, "Failed to record payment")
		return
	}

	var payer models.User
	database.DB.First(&payer, userID)
	var payee models.User
	database.DB.First(&payee, payeeID)

	database.DB.Create(&models.Activity{
		GroupID:     groupID,
		UserID:      userID,
		Type:        "payment_recorded",
		ReferenceID: payment.ID,
		Description: fmt.Sprintf("%s recorded a payment of %s %s to %s", payer.Name, currency, payment.Amount.StringFixed(2), payee.Name),
	})

	go services.GetNotificationService().NotifyPaymentRecorded(payment, payer, payee, group)

	utils.SuccessResponse(c, http.StatusCreated, "Payment recorded, waiting for confirmation", payment)
}

// GET /api/groups/:id/payments
func GetGroupPayments(c *gin.Context) {
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

	query := database.DB.Preload("Payer").Preload("Payee").Where("group_id = ?", groupID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	query.Order("payment_date DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&payments)

	utils.SuccessResponse(c, http.StatusOK, "", payments)
}

// GET /api/payments/:id
func GetPayment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID")
		return
	}

	var payment models.Payment
	if err := database.DB.Preload("Payer").Preload("Payee").First(&payment, paymentID).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	if !isMember(payment.GroupID, userID) {
		utils.Forbidden(c, "You are not a member of this group")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", payment)
}

// POST /api/payments/:id/confirm
func ConfirmPayment(c *gin.Context) {
	decidePayment(c, models.PaymentStatusCompleted)
}

// POST /api/payments/:id/reject
func RejectPayment(c *gin.Context) {
	decidePayment(c, models.PaymentStatusFailed)
}

// Only the payee or a group admin can confirm or reject a pending payment.
func decidePayment(c *gin.Context, status string) {
	userID := utils.GetCurrentUserID(c)
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID")
		return
	}

	var payment models.Payment
	if err := database.DB.First(&payment, paymentID).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	if payment.PayeeID != userID && !isAdmin(payment.GroupID, userID) {
		utils.Forbidden(c, "Only the payee or a group admin can confirm a payment")
		return
	}

	if payment.Status != models.PaymentStatusPending {
		utils.BadRequest(c, "Payment is not pending confirmation")
		return
	}

	database.DB.Model(&payment).Updates(map[string]interface{}{
		"status":      status,
		"approved_by": userID,
		"approved_at": time.Now(),
	})
	payment.Status = status

	verb := "confirmed"
	activityType := "payment_completed"
	if status == models.PaymentStatusFailed {
		verb = "rejected"
		activityType = "payment_rejected"
	}

	var decider models.User
	database.DB.First(&decider, userID)
	var payer models.User
	database.DB.First(&payer, payment.PayerID)
	var group models.Group
	database.DB.First(&group, payment.GroupID)

	database.DB.Create(&models.Activity{
		GroupID:     payment.GroupID,
		UserID:      userID,
		Type:        activityType,
		ReferenceID: payment.ID,
		Description: fmt.Sprintf("%s %s a payment of %s %s from %s", decider.Name, verb, payment.Currency, payment.Amount.StringFixed(2), payer.Name),
	})

	if status == models.PaymentStatusCompleted {
		invalidateBalanceCache(payment.GroupID)
		go services.GetNotificationService().NotifyPaymentCompleted(payment, payer, group)
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment "+verb, payment)
}

// DELETE /api/payments/:id
func DeletePayment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID")
		return
	}

	var payment models.Payment
	if err := database.DB.First(&payment, paymentID).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	if payment.PayerID != userID && !isAdmin(payment.GroupID, userID) {
		utils.Forbidden(c, "Only the payer or a group admin can delete a payment")
		return
	}

	// Completed payments are part of the balance history and stay put
	if payment.Status != models.PaymentStatusPending {
		utils.BadRequest(c, "Only pending payments can be deleted")
		return
	}

	database.DB.Delete(&payment)

	utils.SuccessResponse(c, http.StatusOK, "Payment deleted", nil)
}
