package handlers

import (
	"transport_manager/internal/auth"
	"transport_manager/internal/models"

	"github.com/gin-gonic/gin"
)

// Register mounts every API route on router.
func (h *APIHandler) Register(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.POST("/api/auth/login", h.Login)

	api := router.Group("/api")
	api.Use(h.tokens.Middleware())
	{
		registerCatalog(api, "/clients", h.svc.Clients)
		registerCatalog(api, "/suppliers", h.svc.Suppliers)
		registerCatalog(api, "/products", h.svc.Products)
		registerCatalog(api, "/vehicles", h.svc.Vehicles)
		registerCatalog(api, "/equipment", h.svc.Equipment)
		registerCatalog(api, "/employees", h.svc.Employees)

		users := api.Group("/users", auth.RequireRole(models.Admin))
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)

		api.GET("/orders", h.ListOrders)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:id", h.GetOrder)
		api.DELETE("/orders/:id", h.DeleteOrder)
		api.POST("/orders/:id/lines", h.AddLine)
		api.PUT("/orders/:id/lines/:line_id", h.UpdateLine)
		api.DELETE("/orders/:id/lines/:line_id", h.RemoveLine)
		api.POST("/orders/:id/deliver", h.MarkDelivered)
		api.GET("/orders/:id/payment", h.GetPayment)
		api.POST("/orders/:id/payment", h.RecordPayment)

		api.GET("/stock/lots", h.ListLots)
		api.POST("/stock/lots", h.CreateLot)
		api.GET("/stock/lots/:id", h.GetLot)

		api.GET("/supplier-orders", h.ListSupplierOrders)
		api.POST("/supplier-orders", h.CreateSupplierOrder)
		api.GET("/supplier-orders/:id", h.GetSupplierOrder)
		api.POST("/supplier-orders/:id/receive", h.ReceiveSupplierOrder)
		api.POST("/supplier-orders/:id/payments", h.PaySupplierOrder)
		api.GET("/debts", h.ListDebts)

		api.GET("/ledger", h.ListLedger)
		api.POST("/ledger", h.RecordLedger)
		api.GET("/ledger/summary", h.LedgerSummary)
		api.GET("/ledger/export", h.ExportLedger)

		api.GET("/rentals", h.ListRentals)
		api.POST("/rentals", h.StartRental)
		api.GET("/rentals/:id", h.GetRental)
		api.POST("/rentals/:id/close", h.CloseRental)

		api.GET("/fuel/deliveries", h.ListFuelDeliveries)
		api.POST("/fuel/deliveries", h.RecordFuelDelivery)
		api.POST("/fuel/usages", h.RecordFuelUsage)
		api.GET("/fuel/consumption", h.FuelConsumption)
		api.GET("/machine-expenses", h.ListMachineExpenses)
		api.POST("/machine-expenses", h.RecordMachineExpense)

		api.GET("/salaries", h.ListSalaries)
		api.POST("/salaries", h.PaySalary)

		api.GET("/driver-budgets", h.ListDriverBudgets)
		api.POST("/driver-budgets", h.AllocateDriverBudget)
		api.POST("/driver-budgets/:id/use", h.UseDriverBudget)
		api.POST("/driver-budgets/:id/settle", h.SettleDriverBudget)

		api.GET("/reports", h.ListReports)
		api.GET("/reports/export", h.ExportReports)
	}
}
