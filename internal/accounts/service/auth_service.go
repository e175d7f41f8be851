package service

import (
	"context"
	"errors"
	"strings"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
)

// IdentityProvider is the slice of the identity gateway the services use.
type IdentityProvider interface {
	VerifyToken(ctx context.Context, idToken string) (*domain.SessionClaims, error)
	GetByID(ctx context.Context, uid string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Update(ctx context.Context, uid string, upd domain.IdentityUpdate) (*domain.Identity, error)
	SetDisabled(ctx context.Context, uid string, disabled bool) error
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// Session is the outcome of resolving a bearer token: the verified claims
// plus the provider account they belong to.
type Session struct {
	Claims   *domain.SessionClaims `json:"claims"`
	Identity *domain.Identity      `json:"identity"`
}

// AuthService composes token verification with identity lookup.
type AuthService struct {
	identity IdentityProvider
}

func NewAuthService(identity IdentityProvider) *AuthService {
	return &AuthService{identity: identity}
}

// VerifyToken checks the bearer token with the provider. An empty token is
// a client error detected before any provider call.
func (s *AuthService) VerifyToken(ctx context.Context, idToken string) (*domain.SessionClaims, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, domain.ErrTokenMissing
	}
	return s.identity.VerifyToken(ctx, idToken)
}

// ResolveSession verifies the token and fetches the provider record for its
// subject. A valid token whose subject has no provider record surfaces as
// ErrIdentityNotFound, distinct from a rejected token.
func (s *AuthService) ResolveSession(ctx context.Context, idToken string) (*Session, error) {
	claims, err := s.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	identity, err := s.identity.GetByID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}

	return &Session{Claims: claims, Identity: identity}, nil
}

// SendPasswordReset asks the provider for a reset link for the email.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", domain.ErrIdentityNotFound
	}
	return s.identity.PasswordResetLink(ctx, email)
}
