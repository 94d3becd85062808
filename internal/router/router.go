package router

import (
	"bizledger/internal/config"
	"bizledger/internal/handler"
	"bizledger/internal/ledger"
	"bizledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires every handler to the
// shared ledger service.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	svc := ledger.NewService(db)

	api := r.Group("/api")

	// register/login do not require a token
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer,
		cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	protected.GET("/me", handler.GetMe)

	accountHandler := handler.NewAccountHandler(svc)
	protected.POST("/accounts", accountHandler.Create)
	protected.GET("/accounts", accountHandler.List)
	protected.GET("/accounts/:id", accountHandler.Get)
	protected.PUT("/accounts/:id", accountHandler.Update)
	protected.DELETE("/accounts/:id", accountHandler.Delete)

	clientHandler := handler.NewClientHandler(svc)
	protected.POST("/clients", clientHandler.Create)
	protected.GET("/clients", clientHandler.List)
	protected.PUT("/clients/:id", clientHandler.Update)
	protected.DELETE("/clients/:id", clientHandler.Delete)

	employeeHandler := handler.NewEmployeeHandler(svc)
	protected.POST("/employees", employeeHandler.Create)
	protected.GET("/employees", employeeHandler.List)
	protected.PUT("/employees/:id", employeeHandler.Update)
	protected.DELETE("/employees/:id", employeeHandler.Delete)

	incomeHandler := handler.NewIncomeHandler(svc)
	protected.POST("/incomes", incomeHandler.Create)
	protected.GET("/incomes", incomeHandler.List)
	protected.GET("/incomes/:id", incomeHandler.Get)
	protected.PUT("/incomes/:id", incomeHandler.Update)
	protected.DELETE("/incomes/:id", incomeHandler.Delete)

	expenseHandler := handler.NewExpenseHandler(svc)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.GET("/expenses/:id", expenseHandler.Get)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(svc)
	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	payrollHandler := handler.NewPayrollHandler(svc)
	protected.POST("/payroll-payments", payrollHandler.Create)
	protected.GET("/payroll-payments", payrollHandler.List)
	protected.PUT("/payroll-payments/:id", payrollHandler.Update)
	protected.DELETE("/payroll-payments/:id", payrollHandler.Delete)

	adminPaymentHandler := handler.NewAdminPaymentHandler(svc)
	protected.POST("/admin-payments", adminPaymentHandler.Create)
	protected.GET("/admin-payments", adminPaymentHandler.List)
	protected.PUT("/admin-payments/:id", adminPaymentHandler.Update)
	protected.DELETE("/admin-payments/:id", adminPaymentHandler.Delete)

	reminderHandler := handler.NewReminderHandler(svc)
	protected.GET("/reminders", reminderHandler.List)
	protected.POST("/reminders/:id/resolve", reminderHandler.Resolve)
	protected.DELETE("/reminders/:id", reminderHandler.Delete)

	reportHandler := handler.NewReportHandler(svc, cfg.App.ReminderHorizonDays)
	protected.GET("/reports/payroll", reportHandler.Payroll)
	protected.GET("/reports/payroll/export", reportHandler.PayrollXLSX)
	protected.GET("/reports/dashboard", reportHandler.Dashboard)

	return r
}
