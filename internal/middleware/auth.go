package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sgh-fet-agent/pkg/errors"
	"github.com/noah-isme/sgh-fet-agent/pkg/response"
)

// ServiceAuth validates the shared bearer token used by the upstream backend
// for service-to-service calls. An empty configured token disables the check
// (local development).
func ServiceAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		provided, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || provided == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing service token"))
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid service token"))
			c.Abort()
			return
		}

		c.Next()
	}
}
