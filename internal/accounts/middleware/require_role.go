package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
	"github.com/deck-app/deck-account-backend/internal/api/http/respond"
)

// RoleReader resolves a subject's role from the profile store.
type RoleReader interface {
	GetRole(ctx context.Context, uid string) (string, error)
}

// RequireRole gates a route group on the caller's own role. It runs after
// Session, resolves the role once, and rejects with 403 before the handler
// executes when the role does not match.
func RequireRole(roles RoleReader, required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := SubjectUID(c)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				respond.Envelope{Success: false, Message: "missing authorization token"})
			return
		}

		role, err := roles.GetRole(c.Request.Context(), uid)
		if err != nil {
			respond.Abort(c, err)
			return
		}

		if role != required {
			respond.Abort(c, domain.ErrForbidden)
			return
		}

		c.Next()
	}
}
