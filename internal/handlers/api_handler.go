package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"transport_manager/internal/auth"
	"transport_manager/internal/models"
	"transport_manager/internal/repository"
	"transport_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	svc    *services.Services
	tokens *auth.TokenManager
}

func NewAPIHandler(svc *services.Services, tokens *auth.TokenManager) *APIHandler {
	return &APIHandler{svc: svc, tokens: tokens}
}

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, models.ErrUnknownOwnerKind),
		errors.Is(err, models.ErrInvalidDirection),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrUnknownMachineKind):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrOwnerNotFound):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrOrderPaid),
		errors.Is(err, services.ErrEquipmentBusy),
		errors.Is(err, services.ErrRentalClosed),
		errors.Is(err, services.ErrAlreadyReceived),
		errors.Is(err, models.ErrImmutable):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindJSON binds the body and answers 400 on failure. An empty body is
// accepted when optional is set.
func bindJSON(c *gin.Context, v any, optional bool) bool {
	err := c.ShouldBindJSON(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
	return false
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// queryID reads an optional numeric query parameter.
func queryID(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", services.ErrInvalidInput, name)
	}
	v := uint(id)
	return &v, nil
}

// queryTime reads an optional date (2006-01-02) or RFC 3339 timestamp.
// A bare date used as an upper bound covers the whole day.
func queryTime(c *gin.Context, name string, upper bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC 3339", services.ErrInvalidInput, name)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func queryRange(c *gin.Context) (from, to *time.Time, err error) {
	if from, err = queryTime(c, "from", false); err != nil {
		return nil, nil, err
	}
	if to, err = queryTime(c, "to", true); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func sendWorkbook(c *gin.Context, name string, data []byte, contentType string) {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
