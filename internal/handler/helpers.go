package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"steward/socialhub/internal/handler/middleware"
	"steward/socialhub/internal/repository"
	jwtpkg "steward/socialhub/pkg/jwt"
	"steward/socialhub/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func getSubjectFromContext(c *gin.Context) (string, error) {
	claimsVal, exists := c.Get(middleware.ContextKeyServiceClaims)
	if !exists {
		return "", ErrNoClaims
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	if !ok || claims.Subject == "" {
		return "", ErrNoClaims
	}
	return claims.Subject, nil
}

// respondUnexpected answers errors no handler maps explicitly. A failing
// durable backend is 503 so callers can retry; anything else is 500.
func respondUnexpected(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	if errors.Is(err, repository.ErrPersistence) {
		response.ServiceUnavailable(c, "storage unavailable")
		return
	}
	response.InternalError(c, message)
}
