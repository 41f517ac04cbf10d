package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaganerp/kagan_backend/models"
)

func (h *Handler) CreateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := models.CreateCustomer(c.Request.Context(), h.DB, &input)
	if err != nil {
		h.respondError(c, "CreateCustomer", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	customer, err := models.GetCustomer(c.Request.Context(), h.DB, id)
	if err != nil {
		h.respondError(c, "GetCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := models.ListCustomers(c.Request.Context(), h.DB)
	if err != nil {
		h.respondError(c, "ListCustomers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) CreateExpense(c *gin.Context) {
	var input models.NewExpense
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expense, err := models.CreateExpense(c.Request.Context(), h.DB, &input)
	if err != nil {
		h.respondError(c, "CreateExpense", err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *Handler) ListExpenses(c *gin.Context) {
	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		h.respondError(c, "ListExpenses", err)
		return
	}
	expenses, err := models.ListExpenses(c.Request.Context(), h.DB, &fromDate, &toDate)
	if err != nil {
		h.respondError(c, "ListExpenses", err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}
