package http

import "github.com/gin-gonic/gin"

// Register mounts the open auth/account routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/verify-token", h.VerifyToken)
	rg.POST("/create-account", h.CreateAccount)
	rg.POST("/change-pass", h.ChangePassword)
}

// RegisterSession mounts routes that require a verified session.
func (h *Handler) RegisterSession(rg *gin.RouterGroup) {
	rg.PUT("/update-profile", h.UpdateProfile)
}

// RegisterModerator mounts the moderator-only routes. The caller must wire
// the session and role-gate middleware on the group.
func (h *Handler) RegisterModerator(rg *gin.RouterGroup) {
	rg.POST("/disable-user", h.DisableUser)
	rg.POST("/enable-user", h.EnableUser)
	rg.GET("/get-users", h.GetUsers)
	rg.POST("/get-user/auth", h.GetUserAuth)
	rg.POST("/get-user/firestore", h.GetUserProfile)
}
