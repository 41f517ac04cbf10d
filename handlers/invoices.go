package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/utils"
)

func (h *Handler) CreateInvoice(c *gin.Context) {
	var input models.NewInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	invoice, err := models.CreateInvoice(c.Request.Context(), h.DB, &input)
	if err != nil {
		h.respondError(c, "CreateInvoice", err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return
	}
	invoice, err := models.GetInvoice(c.Request.Context(), h.DB, id)
	if err != nil {
		h.respondError(c, "GetInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) ListInvoices(c *gin.Context) {
	var invoiceType *models.InvoiceType
	if s := c.Query("invoice_type"); s != "" {
		t := models.InvoiceType(s)
		if !t.IsValid() {
			h.respondError(c, "ListInvoices", utils.NewValidationError("invalid invoice type: %s", s))
			return
		}
		invoiceType = &t
	}
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	invoices, err := models.ListInvoices(c.Request.Context(), h.DB, invoiceType, skip, limit)
	if err != nil {
		h.respondError(c, "ListInvoices", err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}
