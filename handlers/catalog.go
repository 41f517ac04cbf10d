package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaganerp/kagan_backend/models"
)

func (h *Handler) CreateService(c *gin.Context) {
	var input models.NewService
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	service, err := models.CreateService(c.Request.Context(), h.DB, &input)
	if err != nil {
		h.respondError(c, "CreateService", err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := models.ListServices(c.Request.Context(), h.DB, c.Query("all") == "")
	if err != nil {
		h.respondError(c, "ListServices", err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := models.CreateProduct(c.Request.Context(), h.DB, &input)
	if err != nil {
		h.respondError(c, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := models.ListProducts(c.Request.Context(), h.DB, c.Query("all") == "")
	if err != nil {
		h.respondError(c, "ListProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) AddBOMItem(c *gin.Context) {
	serviceId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}
	var input models.NewCompositionEdge
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	edge, err := models.AddBOMItem(c.Request.Context(), h.DB, serviceId, &input)
	if err != nil {
		h.respondError(c, "AddBOMItem", err)
		return
	}
	c.JSON(http.StatusCreated, edge)
}

func (h *Handler) RemoveBOMItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("edgeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid edge id"})
		return
	}
	if err := models.RemoveBOMItem(c.Request.Context(), h.DB, id); err != nil {
		h.respondError(c, "RemoveBOMItem", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddRecipeItem(c *gin.Context) {
	productId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var input models.NewCompositionEdge
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	edge, err := models.AddRecipeItem(c.Request.Context(), h.DB, productId, &input)
	if err != nil {
		h.respondError(c, "AddRecipeItem", err)
		return
	}
	c.JSON(http.StatusCreated, edge)
}

func (h *Handler) RemoveRecipeItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("edgeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid edge id"})
		return
	}
	if err := models.RemoveRecipeItem(c.Request.Context(), h.DB, id); err != nil {
		h.respondError(c, "RemoveRecipeItem", err)
		return
	}
	c.Status(http.StatusNoContent)
}
