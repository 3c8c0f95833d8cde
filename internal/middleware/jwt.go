package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-labs/uni-enroll-api/internal/service"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
	"github.com/campus-labs/uni-enroll-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid access token belonging to the
// active session. Tokens from a displaced or ended session are rejected even
// when their signature still verifies.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		current := authService.Sessions().Current()
		if current == nil || current.Token != parts[1] {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "session is no longer active"))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
