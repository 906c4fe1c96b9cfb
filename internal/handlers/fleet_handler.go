package handlers

import (
	"net/http"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (h *APIHandler) ListRentals(c *gin.Context) {
	equipmentID, err := queryID(c, "equipment_id")
	if err != nil {
		respondError(c, err)
		return
	}
	rentals, err := h.svc.Rentals.List(c.Request.Context(), equipmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rentals)
}

func (h *APIHandler) StartRental(c *gin.Context) {
	var input services.StartRentalInput
	if !bindJSON(c, &input, false) {
		return
	}
	rental, err := h.svc.Rentals.Start(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rental)
}

func (h *APIHandler) GetRental(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rental, err := h.svc.Rentals.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}

// CloseRental accepts an optional {"end_date": ...} body.
func (h *APIHandler) CloseRental(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		EndDate *time.Time `json:"end_date"`
	}
	if !bindJSON(c, &req, true) {
		return
	}
	rental, err := h.svc.Rentals.Close(c.Request.Context(), id, req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}

func (h *APIHandler) ListFuelDeliveries(c *gin.Context) {
	from, to, err := queryRange(c)
	if err != nil {
		respondError(c, err)
		return
	}
	deliveries, err := h.svc.Fleet.ListFuelDeliveries(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

func (h *APIHandler) RecordFuelDelivery(c *gin.Context) {
	var input services.FuelDeliveryInput
	if !bindJSON(c, &input, false) {
		return
	}
	delivery, err := h.svc.Fleet.RecordFuelDelivery(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, delivery)
}

func (h *APIHandler) RecordFuelUsage(c *gin.Context) {
	var input services.FuelUsageInput
	if !bindJSON(c, &input, false) {
		return
	}
	usage, err := h.svc.Fleet.RecordFuelUsage(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usage)
}

// machineRef reads machine_kind and machine_id from the query string.
func machineRef(c *gin.Context) (models.MachineRef, bool) {
	id, err := queryID(c, "machine_id")
	if err == nil && id == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "machine_id is required"})
		return nil, false
	}
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	ref, err := models.NewMachineRef(c.Query("machine_kind"), *id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return ref, true
}

func (h *APIHandler) FuelConsumption(c *gin.Context) {
	ref, ok := machineRef(c)
	if !ok {
		return
	}
	consumption, err := h.svc.Fleet.FuelConsumption(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, consumption)
}

func (h *APIHandler) ListMachineExpenses(c *gin.Context) {
	ref, ok := machineRef(c)
	if !ok {
		return
	}
	expenses, err := h.svc.Fleet.MachineExpenses(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *APIHandler) RecordMachineExpense(c *gin.Context) {
	var input services.MachineExpenseInput
	if !bindJSON(c, &input, false) {
		return
	}
	expense, err := h.svc.Fleet.RecordMachineExpense(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *APIHandler) ListSalaries(c *gin.Context) {
	employeeID, err := queryID(c, "employee_id")
	if err != nil {
		respondError(c, err)
		return
	}
	salaries, err := h.svc.Payroll.ListSalaries(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, salaries)
}

func (h *APIHandler) PaySalary(c *gin.Context) {
	var input services.SalaryInput
	if !bindJSON(c, &input, false) {
		return
	}
	salary, err := h.svc.Payroll.PaySalary(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, salary)
}

func (h *APIHandler) ListDriverBudgets(c *gin.Context) {
	driverID, err := queryID(c, "driver_id")
	if err != nil {
		respondError(c, err)
		return
	}
	budgets, err := h.svc.DriverBudgets.List(c.Request.Context(), driverID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

func (h *APIHandler) AllocateDriverBudget(c *gin.Context) {
	var input services.AllocateBudgetInput
	if !bindJSON(c, &input, false) {
		return
	}
	budget, err := h.svc.DriverBudgets.Allocate(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, budget)
}

func (h *APIHandler) UseDriverBudget(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		UsedAmount decimal.Decimal `json:"used_amount"`
	}
	if !bindJSON(c, &req, false) {
		return
	}
	budget, err := h.svc.DriverBudgets.MarkUsed(c.Request.Context(), id, req.UsedAmount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (h *APIHandler) SettleDriverBudget(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	budget, err := h.svc.DriverBudgets.Settle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}
