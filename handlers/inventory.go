package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
)

func (h *Handler) CreateInventoryItem(c *gin.Context) {
	var input models.NewInventoryItem
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := models.CreateInventoryItem(c.Request.Context(), h.DB, &input)
	if err != nil {
		h.respondError(c, "CreateInventoryItem", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetInventoryItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	item, err := models.GetInventoryItem(c.Request.Context(), h.DB, id)
	if err != nil {
		h.respondError(c, "GetInventoryItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	var input models.NewInventoryItem
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := models.UpdateInventoryItem(c.Request.Context(), h.DB, id, &input)
	if err != nil {
		h.respondError(c, "UpdateInventoryItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeactivateInventoryItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if err := models.DeactivateInventoryItem(c.Request.Context(), h.DB, id); err != nil {
		h.respondError(c, "DeactivateInventoryItem", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListInventoryItems(c *gin.Context) {
	inventoryType, err := inventoryTypeQuery(c)
	if err != nil {
		h.respondError(c, "ListInventoryItems", err)
		return
	}
	items, err := models.ListInventoryItems(c.Request.Context(), h.DB, inventoryType, c.Query("all") == "")
	if err != nil {
		h.respondError(c, "ListInventoryItems", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type stockChangeRequest struct {
	Qty       decimal.Decimal  `json:"qty" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Notes     string           `json:"notes"`
}

func (h *Handler) AddStock(c *gin.Context) {
	itemId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	var input stockChangeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	movement, err := models.AddStock(h.DB, c.Request.Context(), itemId, input.Qty, input.UnitPrice, input.Notes)
	if err != nil {
		h.respondError(c, "AddStock", err)
		return
	}
	c.JSON(http.StatusCreated, movement)
}

func (h *Handler) AdjustStock(c *gin.Context) {
	itemId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	var input stockChangeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	movement, err := models.AdjustStock(h.DB, c.Request.Context(), itemId, input.Qty, input.Notes)
	if err != nil {
		h.respondError(c, "AdjustStock", err)
		return
	}
	c.JSON(http.StatusCreated, movement)
}

func (h *Handler) ListStockMovements(c *gin.Context) {
	itemId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		h.respondError(c, "ListStockMovements", err)
		return
	}
	movements, err := models.ListStockMovements(c.Request.Context(), h.DB, itemId, &fromDate, &toDate)
	if err != nil {
		h.respondError(c, "ListStockMovements", err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

func (h *Handler) ListLowStock(c *gin.Context) {
	inventoryType, err := inventoryTypeQuery(c)
	if err != nil {
		h.respondError(c, "ListLowStock", err)
		return
	}
	items, err := models.ListLowStock(c.Request.Context(), h.DB, inventoryType)
	if err != nil {
		h.respondError(c, "ListLowStock", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) TotalInventoryValue(c *gin.Context) {
	inventoryType, err := inventoryTypeQuery(c)
	if err != nil {
		h.respondError(c, "TotalInventoryValue", err)
		return
	}
	total, err := models.TotalInventoryValue(c.Request.Context(), h.DB, inventoryType)
	if err != nil {
		h.respondError(c, "TotalInventoryValue", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_value": total})
}

func inventoryTypeQuery(c *gin.Context) (*models.InventoryType, error) {
	s := c.Query("inventory_type")
	if s == "" {
		return nil, nil
	}
	t := models.InventoryType(s)
	if !t.IsValid() {
		return nil, utils.NewValidationError("invalid inventory type: %s", s)
	}
	return &t, nil
}
