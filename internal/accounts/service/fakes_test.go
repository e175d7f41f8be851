package service

import (
	"context"
	"sort"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
)

// fakeIdentityProvider is an in-memory stand-in for Firebase Auth. Tokens
// map directly to UIDs; a disabled identity's tokens stop verifying, the
// same way the provider revokes them.
type fakeIdentityProvider struct {
	identities  map[string]*domain.Identity
	tokens      map[string]string
	verifyCalls int
	updateErr   error
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{
		identities: make(map[string]*domain.Identity),
		tokens:     make(map[string]string),
	}
}

func (f *fakeIdentityProvider) add(identity *domain.Identity, token string) {
	f.identities[identity.UID] = identity
	if token != "" {
		f.tokens[token] = identity.UID
	}
}

func (f *fakeIdentityProvider) VerifyToken(_ context.Context, idToken string) (*domain.SessionClaims, error) {
	f.verifyCalls++
	uid, ok := f.tokens[idToken]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	if identity, ok := f.identities[uid]; ok && identity.Disabled {
		return nil, domain.ErrInvalidToken
	}
	return &domain.SessionClaims{UID: uid, Claims: map[string]any{"uid": uid}}, nil
}

func (f *fakeIdentityProvider) GetByID(_ context.Context, uid string) (*domain.Identity, error) {
	identity, ok := f.identities[uid]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	cp := *identity
	return &cp, nil
}

func (f *fakeIdentityProvider) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, identity := range f.identities {
		if identity.Email == email {
			cp := *identity
			return &cp, nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (f *fakeIdentityProvider) Update(_ context.Context, uid string, upd domain.IdentityUpdate) (*domain.Identity, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	identity, ok := f.identities[uid]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	if upd.DisplayName != nil {
		identity.DisplayName = *upd.DisplayName
	}
	if upd.PhotoURL != nil {
		identity.PhotoURL = *upd.PhotoURL
	}
	if upd.Email != nil {
		identity.Email = *upd.Email
	}
	if upd.Disabled != nil {
		identity.Disabled = *upd.Disabled
	}
	cp := *identity
	return &cp, nil
}

func (f *fakeIdentityProvider) SetDisabled(_ context.Context, uid string, disabled bool) error {
	identity, ok := f.identities[uid]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	identity.Disabled = disabled
	return nil
}

func (f *fakeIdentityProvider) PasswordResetLink(_ context.Context, email string) (string, error) {
	if _, err := f.GetByEmail(context.Background(), email); err != nil {
		return "", err
	}
	return "https://reset.example/" + email, nil
}

// fakeProfileStore is an in-memory stand-in for the Firestore profile
// collection, keyed by UID like the real one.
type fakeProfileStore struct {
	profiles map[string]*domain.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*domain.Profile)}
}

func (f *fakeProfileStore) Create(_ context.Context, profile *domain.Profile) error {
	if _, ok := f.profiles[profile.UserID]; ok {
		return domain.ErrProfileExists
	}
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, uid string) (*domain.Profile, error) {
	profile, ok := f.profiles[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *profile
	return &cp, nil
}

func (f *fakeProfileStore) Update(_ context.Context, uid string, upd domain.ProfileUpdate) error {
	profile, ok := f.profiles[uid]
	if !ok {
		return domain.ErrProfileNotFound
	}
	if upd.Name != nil {
		profile.Name = *upd.Name
	}
	if upd.Role != nil {
		profile.Role = *upd.Role
	}
	if upd.CoverPhoto != nil {
		profile.CoverPhoto = *upd.CoverPhoto
	}
	if upd.FCMToken != nil {
		profile.FCMToken = *upd.FCMToken
	}
	return nil
}

func (f *fakeProfileStore) Delete(_ context.Context, uid string) error {
	delete(f.profiles, uid)
	return nil
}

func (f *fakeProfileStore) List(_ context.Context) ([]domain.Profile, error) {
	if len(f.profiles) == 0 {
		return nil, domain.ErrNoProfiles
	}
	out := make([]domain.Profile, 0, len(f.profiles))
	for _, profile := range f.profiles {
		out = append(out, *profile)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
