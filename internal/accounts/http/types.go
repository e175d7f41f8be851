package http

import "github.com/deck-app/deck-account-backend/internal/accounts/service"

type Handler struct {
	authService    *service.AuthService
	accountService *service.AccountService
}

func New(authService *service.AuthService, accountService *service.AccountService) *Handler {
	return &Handler{
		authService:    authService,
		accountService: accountService,
	}
}
