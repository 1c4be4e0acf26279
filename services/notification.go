package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"splitshare-backend/config"
	"splitshare-backend/database"
	"splitshare-backend/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"google.golang.org/api/option"
)

type NotificationService struct {
	messaging *messaging.Client
}

var notifService *NotificationService

// InitNotifications sets up the Firebase messaging client. Push is optional;
// without credentials only email notifications go out.
func InitNotifications() {
	notifService = &NotificationService{}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.AppConfig.FirebaseCredPath))
	if err != nil {
		log.Println("⚠️  Firebase not configured, push notifications disabled:", err)
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Println("⚠️  Firebase messaging unavailable:", err)
		return
	}

	notifService.messaging = client
	log.Println("✅ Firebase messaging initialized")
}

func GetNotificationService() *NotificationService {
	if notifService == nil {
		notifService = &NotificationService{}
	}
	return notifService
}

// ============================================================
// PUSH NOTIFICATIONS via Firebase Admin SDK
// ============================================================

func (ns *NotificationService) sendPush(fcmToken string, title string, body string, data map[string]string) {
	if ns.messaging == nil || fcmToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := ns.messaging.Send(context.Background(), msg); err != nil {
		log.Printf("❌ FCM send error: %v", err)
		return
	}
	log.Printf("✅ Push notification sent: %s", title)
}

// ============================================================
// EMAIL NOTIFICATIONS via SendGrid
// ============================================================

func (ns *NotificationService) sendEmail(toEmail string, toName string, subject string, htmlBody string) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Email sent to %s", toEmail)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

// ============================================================
// NOTIFICATION EVENTS
// ============================================================

// NotifyExpenseAdded sends push + email to all split participants
func (ns *NotificationService) NotifyExpenseAdded(expense models.Expense, splits []models.ExpenseSplit, payer models.User, group models.Group) {
	for _, split := range splits {
		if split.UserID == expense.PaidBy {
			continue // Don't notify the payer
		}

		var user models.User
		if err := database.DB.First(&user, split.UserID).Error; err != nil {
			continue
		}

		title := fmt.Sprintf("%s added an expense", payer.Name)
		body := fmt.Sprintf("You owe %s %s for \"%s\" in %s", expense.Currency, split.Amount.StringFixed(2), expense.Description, group.Name)

		ns.sendPush(user.FCMToken, title, body, map[string]string{
			"type":       "expense_added",
			"expense_id": expense.ID.String(),
			"group_id":   expense.GroupID.String(),
		})

		htmlBody := buildExpenseEmailHTML(payer.Name, user.Name, expense.Description, expense.Amount.StringFixed(2), split.Amount.StringFixed(2), expense.Currency, group.Name)
		ns.sendEmail(user.Email, user.Name, fmt.Sprintf("%s added \"%s\" in %s", payer.Name, expense.Description, group.Name), htmlBody)
	}
}

// NotifyExpenseDecision tells the expense creator it was approved or rejected
func (ns *NotificationService) NotifyExpenseDecision(expense models.Expense, creator models.User, group models.Group) {
	verb := "approved"
	if expense.Status == models.ExpenseStatusRejected {
		verb = "rejected"
	}

	title := fmt.Sprintf("Expense %s", verb)
	body := fmt.Sprintf("Your expense \"%s\" (%s %s) in %s was %s", expense.Description, expense.Currency, expense.Amount.StringFixed(2), group.Name, verb)

	ns.sendPush(creator.FCMToken, title, body, map[string]string{
		"type":       "expense_" + verb,
		"expense_id": expense.ID.String(),
		"group_id":   expense.GroupID.String(),
	})
}

// NotifyPaymentRecorded sends push + email to the payee
func (ns *NotificationService) NotifyPaymentRecorded(payment models.Payment, payer models.User, payee models.User, group models.Group) {
	title := fmt.Sprintf("%s recorded a payment", payer.Name)
	body := fmt.Sprintf("%s recorded a payment of %s %s to you in %s", payer.Name, payment.Currency, payment.Amount.StringFixed(2), group.Name)

	ns.sendPush(payee.FCMToken, title, body, map[string]string{
		"type":       "payment_recorded",
		"payment_id": payment.ID.String(),
		"group_id":   payment.GroupID.String(),
	})

	htmlBody := buildPaymentEmailHTML(payer.Name, payee.Name, payment.Currency, payment.Amount.StringFixed(2), group.Name)
	ns.sendEmail(payee.Email, payee.Name, fmt.Sprintf("%s settled up with you in %s", payer.Name, group.Name), htmlBody)
}

// NotifyPaymentCompleted tells the payer their payment was confirmed
func (ns *NotificationService) NotifyPaymentCompleted(payment models.Payment, payer models.User, group models.Group) {
	title := "Payment confirmed"
	body := fmt.Sprintf("Your payment of %s %s in %s was confirmed", payment.Currency, payment.Amount.StringFixed(2), group.Name)

	ns.sendPush(payer.FCMToken, title, body, map[string]string{
		"type":       "payment_completed",
		"payment_id": payment.ID.String(),
		"group_id":   payment.GroupID.String(),
	})
}

// NotifyMemberAdded sends push + email to the newly added member
func (ns *NotificationService) NotifyMemberAdded(group models.Group, adder models.User, newMember models.User) {
	title := fmt.Sprintf("You were added to \"%s\"", group.Name)
	body := fmt.Sprintf("%s added you to the group \"%s\"", adder.Name, group.Name)

	ns.sendPush(newMember.FCMToken, title, body, map[string]string{
		"type":     "member_added",
		"group_id": group.ID.String(),
	})

	htmlBody := buildMemberAddedEmailHTML(adder.Name, newMember.Name, group.Name)
	ns.sendEmail(newMember.Email, newMember.Name, title, htmlBody)
}

// NotifyInvitation sends email to non-registered users
func (ns *NotificationService) NotifyInvitation(email string, inviterName string, groupName string) {
	subject := fmt.Sprintf("%s invited you to join \"%s\" on %s", inviterName, groupName, config.AppConfig.AppName)
	htmlBody := buildInvitationEmailHTML(inviterName, groupName)
	ns.sendEmail(email, "", subject, htmlBody)
}

// ============================================================
// EMAIL TEMPLATES
// ============================================================

func buildExpenseEmailHTML(payerName, userName, description, totalAmount, owedAmount, currency, groupName string) string {
	tmpl := `
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">💰 New Expense Added</h2>
		<p>Hi <strong>{{.UserName}}</strong>,</p>
		<p><strong>{{.PayerName}}</strong> added a new expense in <strong>{{.GroupName}}</strong>:</p>
		<div style="background: #f8f9fa; border-radius: 8px; padding: 16px; margin: 16px 0;">
			<p style="margin: 4px 0; font-size: 18px;"><strong>{{.Description}}</strong></p>
			<p style="margin: 4px 0; color: #666;">Total: {{.Currency}} {{.TotalAmount}}</p>
			<p style="margin: 4px 0; color: #e53e3e; font-size: 18px;"><strong>Your share: {{.Currency}} {{.OwedAmount}}</strong></p>
		</div>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— {{.AppName}}</p>
	</div>
</body>
</html>`

	t, _ := template.New("expense").Parse(tmpl)
	var buf bytes.Buffer
	t.Execute(&buf, map[string]interface{}{
		"PayerName":   payerName,
		"UserName":    userName,
		"Description": description,
		"TotalAmount": totalAmount,
		"OwedAmount":  owedAmount,
		"Currency":    currency,
		"GroupName":   groupName,
		"AppName":     config.AppConfig.AppName,
	})
	return buf.String()
}

func buildPaymentEmailHTML(payerName, payeeName, currency, amount, groupName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">✅ Payment Recorded</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> recorded a payment of <strong>%s %s</strong> to you in <strong>%s</strong>.</p>
		<p>Confirm it in the app to update your balances.</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, payeeName, payerName, currency, amount, groupName, config.AppConfig.AppName)
}

func buildMemberAddedEmailHTML(adderName, memberName, groupName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">👋 You've been added to a group!</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> added you to the group <strong>"%s"</strong>.</p>
		<p>Open the app to start splitting expenses with your group!</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, memberName, adderName, groupName, config.AppConfig.AppName)
}

func buildInvitationEmailHTML(inviterName, groupName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">🎉 You're invited!</h2>
		<p><strong>%s</strong> invited you to join <strong>"%s"</strong> on %s.</p>
		<p>%s makes it easy to split expenses with friends, roommates, and groups.</p>
		<div style="margin: 24px 0;">
			<a href="%s" style="background: #1DB954; color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-weight: bold;">Join Now</a>
		</div>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, inviterName, groupName, config.AppConfig.AppName, config.AppConfig.AppName, config.AppConfig.AppURL, config.AppConfig.AppName)
}
