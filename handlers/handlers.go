package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kaganerp/kagan_backend/config"
	"github.com/kaganerp/kagan_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler carries the shared dependencies for all route handlers. The
// database handle is explicit; there is no package-level connection.
type Handler struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func New(db *gorm.DB, logger *logrus.Logger) *Handler {
	return &Handler{DB: db, Logger: logger}
}

// respondError maps the core error taxonomy onto HTTP statuses. The
// message is passed through verbatim; the UI displays it as-is.
func (h *Handler) respondError(c *gin.Context, funcName string, err error) {
	var validationErr *utils.ValidationError
	var conflictErr *utils.ConflictError
	var stockErr *utils.InsufficientStockError

	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr), errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		config.LogError(h.Logger, "handlers", funcName, c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseDateRange reads from/to query params (RFC 3339 or YYYY-MM-DD).
// Missing bounds default to a wide-open range.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	fromDate := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Now().UTC().Add(24 * time.Hour)

	if s := c.Query("from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return fromDate, toDate, utils.NewValidationError("invalid from date: %s", s)
		}
		fromDate = t
	}
	if s := c.Query("to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return fromDate, toDate, utils.NewValidationError("invalid to date: %s", s)
		}
		toDate = t
	}
	return fromDate, toDate, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
