package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// ContextUserIDKey is the gin context key under which the guard stores the
// verified user ID for downstream handlers.
const ContextUserIDKey = "auth.user_id"

// requireToken gates protected routes. It reads the token from the request
// header, verifies it, and aborts with 401 before the handler runs when the
// token is missing, malformed, expired, or carries a bad signature. The
// response body is the same in every failure case.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(common.AccessTokenHeaderName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := s.issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
