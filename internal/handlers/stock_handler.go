package handlers

import (
	"net/http"

	"transport_manager/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) ListLots(c *gin.Context) {
	productID, err := queryID(c, "product_id")
	if err != nil {
		respondError(c, err)
		return
	}
	lots, err := h.svc.Stock.ListLots(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

func (h *APIHandler) CreateLot(c *gin.Context) {
	var input services.CreateLotInput
	if !bindJSON(c, &input, false) {
		return
	}
	lot, err := h.svc.Stock.CreateLot(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lot)
}

func (h *APIHandler) GetLot(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	avail, err := h.svc.Stock.Availability(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

func (h *APIHandler) ListSupplierOrders(c *gin.Context) {
	supplierID, err := queryID(c, "supplier_id")
	if err != nil {
		respondError(c, err)
		return
	}
	orders, err := h.svc.SupplierOrders.List(c.Request.Context(), supplierID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *APIHandler) CreateSupplierOrder(c *gin.Context) {
	var input services.CreateSupplierOrderInput
	if !bindJSON(c, &input, false) {
		return
	}
	order, err := h.svc.SupplierOrders.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *APIHandler) GetSupplierOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.SupplierOrders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) ReceiveSupplierOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	lots, err := h.svc.SupplierOrders.Receive(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

func (h *APIHandler) PaySupplierOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input services.RecordPaymentInput
	if !bindJSON(c, &input, false) {
		return
	}
	order, err := h.svc.SupplierOrders.RecordPayment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) ListDebts(c *gin.Context) {
	debts, err := h.svc.SupplierOrders.ListDebts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, debts)
}
