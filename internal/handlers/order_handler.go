package handlers

import (
	"net/http"

	"transport_manager/internal/auth"
	"transport_manager/internal/repository"
	"transport_manager/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) ListOrders(c *gin.Context) {
	clientID, err := queryID(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	from, to, err := queryRange(c)
	if err != nil {
		respondError(c, err)
		return
	}
	orders, err := h.svc.Orders.ListOrders(c.Request.Context(), repository.OrderFilter{
		ClientID: clientID,
		From:     from,
		To:       to,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *APIHandler) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if !bindJSON(c, &input, false) {
		return
	}
	if claims := auth.ClaimsFrom(c); claims != nil {
		input.CreatedBy = &claims.UserID
	}
	order, err := h.svc.Orders.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *APIHandler) GetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) DeleteOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Orders.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deleted"})
}

func (h *APIHandler) MarkDelivered(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.svc.Orders.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) AddLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input services.LineInput
	if !bindJSON(c, &input, false) {
		return
	}
	order, err := h.svc.Orders.AddLine(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *APIHandler) UpdateLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	lineID, ok := paramID(c, "line_id")
	if !ok {
		return
	}
	var input services.LineInput
	if !bindJSON(c, &input, false) {
		return
	}
	order, err := h.svc.Orders.UpdateLine(c.Request.Context(), id, lineID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) RemoveLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	lineID, ok := paramID(c, "line_id")
	if !ok {
		return
	}
	order, err := h.svc.Orders.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) GetPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	payment, err := h.svc.Payments.GetPayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *APIHandler) RecordPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input services.RecordPaymentInput
	if !bindJSON(c, &input, false) {
		return
	}
	payment, err := h.svc.Payments.RecordPayment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
