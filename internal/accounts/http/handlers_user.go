package http

import (
	"github.com/gin-gonic/gin"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
	"github.com/deck-app/deck-account-backend/internal/accounts/middleware"
	"github.com/deck-app/deck-account-backend/internal/api/http/respond"
)

// CreateAccount writes the profile document for a freshly signed-up
// subject. The provider account itself is created by the upstream signup
// step; this endpoint only adds the application-side record and then syncs
// the display name back to the provider.
func (h *Handler) CreateAccount(c *gin.Context) {
	var req struct {
		UID   string `json:"uid"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	if req.UID == "" || req.Email == "" {
		respond.BadRequest(c, "uid and email are required")
		return
	}

	_, err := h.accountService.Register(c.Request.Context(), req.UID, req.Email, req.Name)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Successfully created user!")
}

// UpdateProfile applies a partial update to a profile document. The target
// defaults to the caller's own account; moderators may pass an explicit uid
// to edit another account, and only moderators may change roles.
func (h *Handler) UpdateProfile(c *gin.Context) {
	callerUID := middleware.SubjectUID(c)

	var req struct {
		UID         string               `json:"uid"`
		UserDetails domain.ProfileUpdate `json:"userDetails"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "invalid request body")
		return
	}
	if req.UserDetails.IsZero() {
		respond.BadRequest(c, "no fields to update")
		return
	}

	targetUID := req.UID
	if targetUID == "" {
		targetUID = callerUID
	}

	if targetUID != callerUID || req.UserDetails.Role != nil {
		role, err := h.accountService.GetRole(c.Request.Context(), callerUID)
		if err != nil || role != domain.RoleModerator {
			respond.Error(c, domain.ErrForbidden)
			return
		}
	}

	if err := h.accountService.UpdateProfile(c.Request.Context(), targetUID, req.UserDetails); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Successfully updated user!")
}
