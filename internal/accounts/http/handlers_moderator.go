package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deck-app/deck-account-backend/internal/api/http/respond"
)

type userIDRequest struct {
	UserID string `json:"userId"`
}

// DisableUser soft-disables a provider account. The profile document is
// left untouched so the user stays visible in listings.
func (h *Handler) DisableUser(c *gin.Context) {
	var req userIDRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		respond.BadRequest(c, "userId is required")
		return
	}

	if err := h.accountService.SetEnabled(c.Request.Context(), req.UserID, false); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Successfully disabled user.")
}

// EnableUser re-enables a previously disabled provider account.
func (h *Handler) EnableUser(c *gin.Context) {
	var req userIDRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		respond.BadRequest(c, "userId is required")
		return
	}

	if err := h.accountService.SetEnabled(c.Request.Context(), req.UserID, true); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Successfully enabled user.")
}

// GetUsers lists every profile document.
func (h *Handler) GetUsers(c *gin.Context) {
	profiles, err := h.accountService.ListProfiles(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, profiles)
}

type uidRequest struct {
	UID string `json:"uid"`
}

// GetUserAuth returns another subject's provider account record. This is
// the one endpoint that returns the raw record instead of the envelope.
func (h *Handler) GetUserAuth(c *gin.Context) {
	var req uidRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UID == "" {
		respond.BadRequest(c, "uid is required")
		return
	}

	identity, err := h.accountService.GetIdentity(c.Request.Context(), req.UID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, identity)
}

// GetUserProfile returns another subject's profile document.
func (h *Handler) GetUserProfile(c *gin.Context) {
	var req uidRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UID == "" {
		respond.BadRequest(c, "uid is required")
		return
	}

	profile, err := h.accountService.GetProfile(c.Request.Context(), req.UID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, profile)
}
