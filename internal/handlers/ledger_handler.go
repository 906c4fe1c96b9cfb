package handlers

import (
	"fmt"
	"net/http"

	"transport_manager/internal/export"
	"transport_manager/internal/models"
	"transport_manager/internal/services"

	"github.com/gin-gonic/gin"
)

// ledgerFilter reads direction, owner_kind, owner_id, from and to.
func ledgerFilter(c *gin.Context) (models.LedgerFilter, error) {
	var f models.LedgerFilter
	if raw := c.Query("direction"); raw != "" {
		d, err := models.ParseDirection(raw)
		if err != nil {
			return f, err
		}
		f.Direction = &d
	}
	if raw := c.Query("owner_kind"); raw != "" {
		k, err := models.ParseOwnerKind(raw)
		if err != nil {
			return f, err
		}
		f.OwnerKind = &k
	}
	var err error
	if f.OwnerID, err = queryID(c, "owner_id"); err != nil {
		return f, err
	}
	if f.From, f.To, err = queryRange(c); err != nil {
		return f, err
	}
	return f, nil
}

func (h *APIHandler) ListLedger(c *gin.Context) {
	filter, err := ledgerFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	entries, err := h.svc.Ledger.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *APIHandler) RecordLedger(c *gin.Context) {
	var input services.RecordInput
	if !bindJSON(c, &input, false) {
		return
	}
	entry, err := h.svc.Ledger.Record(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *APIHandler) LedgerSummary(c *gin.Context) {
	filter, err := ledgerFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.svc.Ledger.Summary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *APIHandler) ExportLedger(c *gin.Context) {
	filter, err := ledgerFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	entries, err := h.svc.Ledger.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := export.Ledger(entries)
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, "ledger", data, export.ContentType)
}

func reportFilter(c *gin.Context) (models.ReportFilter, error) {
	var f models.ReportFilter
	if raw := c.Query("kind"); raw != "" {
		k, err := models.ParseReportKind(raw)
		if err != nil {
			return f, fmt.Errorf("%w: %v", services.ErrInvalidInput, err)
		}
		f.Kind = &k
	}
	var err error
	if f.SubjectID, err = queryID(c, "subject_id"); err != nil {
		return f, err
	}
	if f.From, f.To, err = queryRange(c); err != nil {
		return f, err
	}
	return f, nil
}

func (h *APIHandler) ListReports(c *gin.Context) {
	filter, err := reportFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	reports, err := h.svc.Reports.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *APIHandler) ExportReports(c *gin.Context) {
	filter, err := reportFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	reports, err := h.svc.Reports.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := export.Reports(reports)
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, "reports", data, export.ContentType)
}
