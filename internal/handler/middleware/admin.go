package middleware

import (
	"github.com/gin-gonic/gin"

	jwtpkg "steward/socialhub/pkg/jwt"
	"steward/socialhub/pkg/response"
)

// AdminAuth admits only service tokens whose subject is in the allow list.
// An empty list admits nobody. Must be used after JWTAuth.
func AdminAuth(subjects []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		allowed[s] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsVal, exists := c.Get(ContextKeyServiceClaims)
		if !exists {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}
		claims, ok := claimsVal.(*jwtpkg.Claims)
		if !ok {
			response.Unauthorized(c, "invalid claims")
			c.Abort()
			return
		}

		if _, isAdmin := allowed[claims.Subject]; !isAdmin {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
