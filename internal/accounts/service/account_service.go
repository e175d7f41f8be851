package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
)

// ProfileStore is the slice of the profile gateway the services use.
type ProfileStore interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, uid string) (*domain.Profile, error)
	Update(ctx context.Context, uid string, upd domain.ProfileUpdate) error
	Delete(ctx context.Context, uid string) error
	List(ctx context.Context) ([]domain.Profile, error)
}

// AccountService keeps the provider account and the profile document in
// sync. The two stores are independently owned; writes against them are
// never transactional.
type AccountService struct {
	identity IdentityProvider
	profiles ProfileStore
}

func NewAccountService(identity IdentityProvider, profiles ProfileStore) *AccountService {
	return &AccountService{identity: identity, profiles: profiles}
}

// Register creates the profile document for an already-signed-up subject,
// then syncs the display name back to the provider as a second independent
// step. When the profile write succeeds but the provider update fails, the
// created profile is returned alongside ErrIdentitySyncFailed so callers
// can surface the partial failure distinctly.
func (s *AccountService) Register(ctx context.Context, uid, email, name string) (*domain.Profile, error) {
	if strings.TrimSpace(uid) == "" || strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("uid and email are required")
	}

	profile := domain.NewProfile(uid, email, name)
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	if name != "" {
		if _, err := s.identity.Update(ctx, uid, domain.IdentityUpdate{DisplayName: &name}); err != nil {
			return profile, fmt.Errorf("%w: %v", domain.ErrIdentitySyncFailed, err)
		}
	}

	return profile, nil
}

// GetRole reads the subject's role from the profile document.
func (s *AccountService) GetRole(ctx context.Context, uid string) (string, error) {
	profile, err := s.profiles.GetByUserID(ctx, uid)
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

// GetProfile reads the subject's profile document.
func (s *AccountService) GetProfile(ctx context.Context, uid string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, uid)
}

// GetIdentity reads the subject's provider record.
func (s *AccountService) GetIdentity(ctx context.Context, uid string) (*domain.Identity, error) {
	return s.identity.GetByID(ctx, uid)
}

// ListProfiles returns every profile document. An empty store is reported
// as ErrNoProfiles, never as an empty success.
func (s *AccountService) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}

// UpdateProfile applies a partial update to the profile document only.
func (s *AccountService) UpdateProfile(ctx context.Context, uid string, upd domain.ProfileUpdate) error {
	return s.profiles.Update(ctx, uid, upd)
}

// UpdateIdentity applies a partial update to the provider account only.
func (s *AccountService) UpdateIdentity(ctx context.Context, uid string, upd domain.IdentityUpdate) error {
	_, err := s.identity.Update(ctx, uid, upd)
	return err
}

// SetEnabled toggles the provider account's disabled flag. The profile
// document is deliberately untouched: disabled users stay visible in
// profile listings.
func (s *AccountService) SetEnabled(ctx context.Context, uid string, enabled bool) error {
	return s.identity.SetDisabled(ctx, uid, !enabled)
}
