package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kaganerp/kagan_backend/config"
	"github.com/kaganerp/kagan_backend/handlers"
	"github.com/kaganerp/kagan_backend/middlewares"
	"github.com/kaganerp/kagan_backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultPort = "8080"

func main() {
	logger := config.NewLogger()

	db, err := config.ConnectDatabase("")
	if err != nil {
		logger.WithError(err).Fatal("failed to connect database")
	}
	if err := models.MigrateTable(db); err != nil {
		logger.WithError(err).Fatal("failed to migrate tables")
	}

	router := newRouter(db, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.WithFields(logrus.Fields{"port": port}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("forced shutdown")
	}
}

func newRouter(db *gorm.DB, logger *logrus.Logger) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerDecimalValidation()
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-Id", "X-Correlation-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middlewares.CorrelationMiddleware())

	h := handlers.New(db, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api", middlewares.ActorMiddleware(db))
	{
		api.POST("/invoices", h.CreateInvoice)
		api.GET("/invoices", h.ListInvoices)
		api.GET("/invoices/:id", h.GetInvoice)

		api.POST("/inventory/items", h.CreateInventoryItem)
		api.GET("/inventory/items", h.ListInventoryItems)
		api.GET("/inventory/items/:id", h.GetInventoryItem)
		api.PUT("/inventory/items/:id", h.UpdateInventoryItem)
		api.DELETE("/inventory/items/:id", h.DeactivateInventoryItem)
		api.POST("/inventory/items/:id/add", h.AddStock)
		api.POST("/inventory/items/:id/adjust", h.AdjustStock)
		api.GET("/inventory/items/:id/movements", h.ListStockMovements)
		api.GET("/inventory/low-stock", h.ListLowStock)
		api.GET("/inventory/value", h.TotalInventoryValue)

		api.POST("/services", h.CreateService)
		api.GET("/services", h.ListServices)
		api.POST("/services/:id/bom", h.AddBOMItem)
		api.DELETE("/services/:id/bom/:edgeId", h.RemoveBOMItem)
		api.POST("/products", h.CreateProduct)
		api.GET("/products", h.ListProducts)
		api.POST("/products/:id/recipe", h.AddRecipeItem)
		api.DELETE("/products/:id/recipe/:edgeId", h.RemoveRecipeItem)

		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings", h.ListBookings)
		api.GET("/bookings/:id", h.GetBooking)
		api.PUT("/bookings/:id/status", h.UpdateBookingStatus)

		api.POST("/customers", h.CreateCustomer)
		api.GET("/customers", h.ListCustomers)
		api.GET("/customers/:id", h.GetCustomer)

		api.POST("/expenses", h.CreateExpense)
		api.GET("/expenses", h.ListExpenses)

		api.GET("/reports/dashboard", h.DashboardReport)
		api.GET("/reports/sales", h.SalesReport)
		api.GET("/reports/commission", h.CommissionReport)
		api.GET("/reports/commission/export", h.ExportCommissionReport)
		api.GET("/reports/inventory-usage", h.InventoryUsageReport)
		api.GET("/reports/inventory-usage/export", h.ExportUsageReport)
		api.GET("/reports/profit", h.ProfitReport)
	}

	return router
}

// registerDecimalValidation teaches the binding validator to treat
// decimal.Decimal as its string value, so `binding:"required"` rejects a
// missing amount instead of comparing raw struct fields.
func registerDecimalValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			if d.IsZero() {
				return ""
			}
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
}
