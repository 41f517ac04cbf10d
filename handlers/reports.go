package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kaganerp/kagan_backend/config"
	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/models/reports"
	"github.com/kaganerp/kagan_backend/utils"
)

func (h *Handler) SalesReport(c *gin.Context) {
	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		h.respondError(c, "SalesReport", err)
		return
	}
	var invoiceType *models.InvoiceType
	if s := c.Query("invoice_type"); s != "" {
		t := models.InvoiceType(s)
		if !t.IsValid() {
			h.respondError(c, "SalesReport", utils.NewValidationError("invalid invoice type: %s", s))
			return
		}
		invoiceType = &t
	}
	report, err := reports.GetSalesReport(c.Request.Context(), h.DB, fromDate, toDate, invoiceType)
	if err != nil {
		h.respondError(c, "SalesReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) CommissionReport(c *gin.Context) {
	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		h.respondError(c, "CommissionReport", err)
		return
	}
	var barberId *int
	if s := c.Query("barber_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			h.respondError(c, "CommissionReport", utils.NewValidationError("invalid barber id: %s", s))
			return
		}
		barberId = &id
	}
	report, err := reports.GetCommissionReport(c.Request.Context(), h.DB, fromDate, toDate, barberId)
	if err != nil {
		h.respondError(c, "CommissionReport", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commissions": report})
}

func (h *Handler) InventoryUsageReport(c *gin.Context) {
	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		h.respondError(c, "InventoryUsageReport", err)
		return
	}
	report, err := reports.GetInventoryUsageReport(c.Request.Context(), h.DB, fromDate, toDate)
	if err != nil {
		h.respondError(c, "InventoryUsageReport", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": report})
}

func (h *Handler) ProfitReport(c *gin.Context) {
	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		h.respondError(c, "ProfitReport", err)
		return
	}
	report, err := reports.GetProfitReport(c.Request.Context(), h.DB, fromDate, toDate)
	if err != nil {
		h.respondError(c, "ProfitReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) DashboardReport(c *gin.Context) {
	report, err := reports.GetDashboardReport(c.Request.Context(), h.DB, time.Now().UTC())
	if err != nil {
		h.respondError(c, "DashboardReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) ExportUsageReport(c *gin.Context) {
	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		h.respondError(c, "ExportUsageReport", err)
		return
	}
	f, err := reports.ExportUsageReportExcel(c.Request.Context(), h.DB, fromDate, toDate)
	if err != nil {
		h.respondError(c, "ExportUsageReport", err)
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=inventory-usage.xlsx")
	if err := f.Write(c.Writer); err != nil {
		config.LogError(h.Logger, "handlers", "ExportUsageReport", c.FullPath(), nil, err)
	}
}

func (h *Handler) ExportCommissionReport(c *gin.Context) {
	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		h.respondError(c, "ExportCommissionReport", err)
		return
	}
	f, err := reports.ExportCommissionReportExcel(c.Request.Context(), h.DB, fromDate, toDate)
	if err != nil {
		h.respondError(c, "ExportCommissionReport", err)
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=commission.xlsx")
	if err := f.Write(c.Writer); err != nil {
		config.LogError(h.Logger, "handlers", "ExportCommissionReport", c.FullPath(), nil, err)
	}
}
