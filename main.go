package main

import (
	"log"
	"time"

	"splitshare-backend/config"
	"splitshare-backend/database"
	"splitshare-backend/handlers"
	"splitshare-backend/middleware"
	"splitshare-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Firebase + SendGrid
	services.InitNotifications()

	// Background materialization of recurring expenses
	services.StartRecurringScheduler(time.Hour)

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// ==========================================
	// API ROUTES (authenticated)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// User
		api.GET("/users/me", handlers.GetProfile)
		api.PUT("/users/me", handlers.UpdateProfile)
		api.PUT("/users/me/fcm-token", handlers.UpdateFCMToken)
		api.POST("/users/search", handlers.SearchUsers)

		// Groups
		api.POST("/groups", handlers.CreateGroup)
		api.GET("/groups", handlers.GetGroups)
		api.GET("/groups/:id", handlers.GetGroup)
		api.PUT("/groups/:id", handlers.UpdateGroup)
		api.POST("/groups/:id/members", handlers.AddMember)
		api.DELETE("/groups/:id/members/:uid", handlers.RemoveMember)
		api.POST("/groups/:id/invite", handlers.InviteToGroupHandler)

		// Expenses
		api.POST("/groups/:id/expenses", handlers.CreateExpense)
		api.GET("/groups/:id/expenses", handlers.GetGroupExpenses)
		api.GET("/expenses/:id", handlers.GetExpense)
		api.PUT("/expenses/:id", handlers.UpdateExpense)
		api.DELETE("/expenses/:id", handlers.DeleteExpense)
		api.POST("/expenses/:id/approve", handlers.ApproveExpense)
		api.POST("/expenses/:id/reject", handlers.RejectExpense)

		// Payments
		api.POST("/payments", handlers.CreatePayment)
		api.GET("/groups/:id/payments", handlers.GetGroupPayments)
		api.GET("/payments/:id", handlers.GetPayment)
		api.POST("/payments/:id/confirm", handlers.ConfirmPayment)
		api.POST("/payments/:id/reject", handlers.RejectPayment)
		api.DELETE("/payments/:id", handlers.DeletePayment)

		// Balances, settlements, debts
		api.GET("/groups/:id/balances", handlers.GetGroupBalances)
		api.GET("/balances", handlers.GetOverallBalances)
		api.GET("/groups/:id/settlements", handlers.GetGroupSettlements)
		api.GET("/groups/:id/debts", handlers.GetUserDebts)

		// Categories
		api.GET("/categories", handlers.GetCategories)
		api.POST("/categories", handlers.CreateCategory)
		api.PUT("/categories/:id", handlers.UpdateCategory)
		api.DELETE("/categories/:id", handlers.DeleteCategory)

		// Recurring expenses
		api.POST("/recurring", handlers.CreateRecurringExpense)
		api.GET("/groups/:id/recurring", handlers.GetGroupRecurringExpenses)
		api.PUT("/recurring/:id", handlers.UpdateRecurringExpense)
		api.DELETE("/recurring/:id", handlers.DeleteRecurringExpense)

		// Activity
		api.GET("/activity", handlers.GetActivity)
		api.GET("/groups/:id/activity", handlers.GetGroupActivity)

		// Dashboard
		api.GET("/dashboard", handlers.GetDashboard)
		api.GET("/dashboard/expenses-by-category", handlers.GetExpensesByCategory)
		api.GET("/dashboard/expense-trend", handlers.GetExpenseTrend)
	}

	// Start server
	port := config.AppConfig.Port
	log.Printf("🚀 %s server starting on port %s", config.AppConfig.AppName, port)

	addr := "0.0.0.0:" + port
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
