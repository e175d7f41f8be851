package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deck-app/deck-account-backend/internal/api/http/respond"
)

// VerifyToken verifies a Firebase ID token from the request body and
// returns the decoded claims together with the provider account record.
func (h *Handler) VerifyToken(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "Token is required")
		return
	}
	if req.Token == "" {
		respond.BadRequest(c, "Token is required")
		return
	}

	session, err := h.authService.ResolveSession(c.Request.Context(), req.Token)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verifiedToken": gin.H{
			"success": true,
			"uid":     session.Claims.UID,
		},
		"userDetails": session.Identity,
	})
}

// ChangePassword asks the provider for a password-reset link.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		respond.BadRequest(c, "Email is required")
		return
	}

	link, err := h.authService.SendPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, link)
}
