package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
)

func newAccountFixture() (*fakeIdentityProvider, *fakeProfileStore, *AccountService) {
	provider := newFakeIdentityProvider()
	profiles := newFakeProfileStore()
	return provider, profiles, NewAccountService(provider, profiles)
}

func TestRegister(t *testing.T) {
	t.Run("creates profile with student defaults", func(t *testing.T) {
		provider, _, svc := newAccountFixture()
		provider.add(&domain.Identity{UID: "uid-1", Email: "a@example.com"}, "")

		_, err := svc.Register(context.Background(), "uid-1", "a@example.com", "Alice")
		require.NoError(t, err)

		profile, err := svc.GetProfile(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", profile.UserID)
		assert.Equal(t, domain.RoleStudent, profile.Role)
		assert.Equal(t, "", profile.CoverPhoto)
		assert.Equal(t, "", profile.FCMToken)
	})

	t.Run("syncs display name to the identity provider", func(t *testing.T) {
		provider, _, svc := newAccountFixture()
		provider.add(&domain.Identity{UID: "uid-1", Email: "a@example.com"}, "")

		_, err := svc.Register(context.Background(), "uid-1", "a@example.com", "Alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice", provider.identities["uid-1"].DisplayName)
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		provider, _, svc := newAccountFixture()
		provider.add(&domain.Identity{UID: "uid-1", Email: "a@example.com"}, "")

		_, err := svc.Register(context.Background(), "uid-1", "a@example.com", "Alice")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "uid-1", "a@example.com", "Alice")
		assert.ErrorIs(t, err, domain.ErrProfileExists)
	})

	t.Run("identity sync failure is a distinct partial failure", func(t *testing.T) {
		provider, profiles, svc := newAccountFixture()
		provider.updateErr = errors.New("provider down")

		profile, err := svc.Register(context.Background(), "uid-1", "a@example.com", "Alice")
		assert.ErrorIs(t, err, domain.ErrIdentitySyncFailed)

		// The profile write went through; the sweep can finish the rest.
		require.NotNil(t, profile)
		_, err = profiles.GetByUserID(context.Background(), "uid-1")
		assert.NoError(t, err)
	})

	t.Run("missing uid or email is rejected", func(t *testing.T) {
		_, _, svc := newAccountFixture()

		_, err := svc.Register(context.Background(), "", "a@example.com", "Alice")
		assert.Error(t, err)

		_, err = svc.Register(context.Background(), "uid-1", "", "Alice")
		assert.Error(t, err)
	})
}

func TestGetRole(t *testing.T) {
	_, profiles, svc := newAccountFixture()
	require.NoError(t, profiles.Create(context.Background(),
		&domain.Profile{UserID: "mod-1", Role: domain.RoleModerator}))

	role, err := svc.GetRole(context.Background(), "mod-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleModerator, role)

	_, err = svc.GetRole(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestListProfiles(t *testing.T) {
	t.Run("empty store is a not-found failure, not an empty success", func(t *testing.T) {
		_, _, svc := newAccountFixture()

		profiles, err := svc.ListProfiles(context.Background())
		assert.ErrorIs(t, err, domain.ErrNoProfiles)
		assert.Nil(t, profiles)
	})

	t.Run("returns profiles ordered by user id", func(t *testing.T) {
		_, store, svc := newAccountFixture()
		require.NoError(t, store.Create(context.Background(), domain.NewProfile("uid-b", "b@example.com", "B")))
		require.NoError(t, store.Create(context.Background(), domain.NewProfile("uid-a", "a@example.com", "A")))

		profiles, err := svc.ListProfiles(context.Background())
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "uid-a", profiles[0].UserID)
		assert.Equal(t, "uid-b", profiles[1].UserID)
	})
}

func TestUpdateProfile(t *testing.T) {
	_, store, svc := newAccountFixture()
	require.NoError(t, store.Create(context.Background(), domain.NewProfile("uid-1", "a@example.com", "Alice")))

	cover := "https://cdn.example/cover.png"
	fcm := "push-token-1"
	err := svc.UpdateProfile(context.Background(), "uid-1", domain.ProfileUpdate{
		CoverPhoto: &cover,
		FCMToken:   &fcm,
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, cover, profile.CoverPhoto)
	assert.Equal(t, fcm, profile.FCMToken)
	// Untouched fields keep their values.
	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, domain.RoleStudent, profile.Role)
}

func TestSetEnabled(t *testing.T) {
	provider, store, svc := newAccountFixture()
	authSvc := NewAuthService(provider)
	provider.add(&domain.Identity{UID: "uid-1", Email: "a@example.com"}, "token-1")
	require.NoError(t, store.Create(context.Background(), domain.NewProfile("uid-1", "a@example.com", "Alice")))

	require.NoError(t, svc.SetEnabled(context.Background(), "uid-1", false))

	t.Run("disabled subject's token stops verifying", func(t *testing.T) {
		_, err := authSvc.ResolveSession(context.Background(), "token-1")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("profile is untouched by disablement", func(t *testing.T) {
		profile, err := svc.GetProfile(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", profile.Name)
	})

	t.Run("re-enabling restores verification", func(t *testing.T) {
		require.NoError(t, svc.SetEnabled(context.Background(), "uid-1", true))
		session, err := authSvc.ResolveSession(context.Background(), "token-1")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", session.Claims.UID)
	})
}

func TestUpdateIdentity(t *testing.T) {
	provider, _, svc := newAccountFixture()
	provider.add(&domain.Identity{UID: "uid-1", Email: "a@example.com"}, "")

	photo := "https://cdn.example/me.png"
	err := svc.UpdateIdentity(context.Background(), "uid-1", domain.IdentityUpdate{PhotoURL: &photo})
	require.NoError(t, err)
	assert.Equal(t, photo, provider.identities["uid-1"].PhotoURL)

	err = svc.UpdateIdentity(context.Background(), "missing", domain.IdentityUpdate{PhotoURL: &photo})
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}
