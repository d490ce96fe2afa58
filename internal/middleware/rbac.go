package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/response"
)

// RequireRole checks that the JWT carries one of the allowed roles. Must run
// after RequireJWT.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortError(c, http.StatusUnauthorized, response.MsgNoToken)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		response.AbortError(c, http.StatusForbidden, response.MsgForbidden)
	}
}
