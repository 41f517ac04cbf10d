package middlewares

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/utils"
	"gorm.io/gorm"
)

// CorrelationMiddleware tags every request with a correlation id so log
// lines from one request can be stitched together.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.GetHeader("X-Correlation-Id")
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), correlationId)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Correlation-Id", correlationId)
		c.Next()
	}
}

// ActorMiddleware resolves the acting staff member from the X-User-Id
// header set by the authenticating front-end. Session/token mechanics are
// not this service's concern; it only needs a valid actor for
// created_by/barber attribution.
func ActorMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIdHeader := c.GetHeader("X-User-Id")
		userId, err := strconv.Atoi(userIdHeader)
		if err != nil || userId <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-User-Id header"})
			return
		}

		user, err := models.GetUser(c.Request.Context(), db, userId)
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown or inactive user"})
			return
		}

		ctx := utils.SetUserIdInContext(c.Request.Context(), user.ID)
		ctx = utils.SetUserNameInContext(ctx, user.FullName)
		ctx = utils.SetUserRoleInContext(ctx, string(user.Role))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
