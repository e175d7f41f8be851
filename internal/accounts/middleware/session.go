package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
	"github.com/deck-app/deck-account-backend/internal/api/http/respond"
)

const (
	CtxSubjectUID = "subject_uid"
	CtxClaims     = "session_claims"
)

// TokenVerifier verifies a bearer token and returns the subject claims.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (*domain.SessionClaims, error)
}

// Session validates the Authorization bearer token once per request and
// stores the subject UID and claims in the context for the handlers.
func Session(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				respond.Envelope{Success: false, Message: "missing authorization token"})
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				respond.Envelope{Success: false, Message: domain.ErrInvalidToken.Error()})
			return
		}

		c.Set(CtxSubjectUID, claims.UID)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// SubjectUID returns the verified caller UID set by Session.
func SubjectUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxSubjectUID))
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}
