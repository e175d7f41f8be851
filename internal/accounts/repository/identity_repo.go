package repository

import (
	"context"
	"fmt"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
)

// firebaseAuth is the slice of the Firebase Auth client the repository uses.
// *fbauth.Client satisfies it.
type firebaseAuth interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	GetUser(ctx context.Context, uid string) (*fbauth.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*fbauth.UserRecord, error)
	CreateUser(ctx context.Context, user *fbauth.UserToCreate) (*fbauth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *fbauth.UserToUpdate) (*fbauth.UserRecord, error)
	Users(ctx context.Context, nextPageToken string) *fbauth.UserIterator
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// IdentityRepository wraps Firebase Authentication with typed operations.
// Provider errors are normalized to domain sentinels so callers never see
// provider-internal detail.
type IdentityRepository struct {
	client firebaseAuth
}

func NewIdentityRepository(client firebaseAuth) *IdentityRepository {
	return &IdentityRepository{client: client}
}

// VerifyToken validates a bearer ID token against the provider and extracts
// the subject claims. Signature verification is entirely the provider's job;
// the token is never inspected here.
func (r *IdentityRepository) VerifyToken(ctx context.Context, idToken string) (*domain.SessionClaims, error) {
	decoded, err := r.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.SessionClaims{
		UID:    decoded.UID,
		Claims: decoded.Claims,
	}, nil
}

// GetByID retrieves the provider account record by UID.
func (r *IdentityRepository) GetByID(ctx context.Context, uid string) (*domain.Identity, error) {
	record, err := r.client.GetUser(ctx, uid)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", uid, err)
	}

	return toIdentity(record), nil
}

// GetByEmail retrieves the provider account record by email.
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	record, err := r.client.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return toIdentity(record), nil
}

// Create registers a new provider account. The password is write-only and
// never read back.
func (r *IdentityRepository) Create(ctx context.Context, in domain.NewIdentity) (*domain.Identity, error) {
	params := (&fbauth.UserToCreate{}).Email(in.Email)
	if in.Password != "" {
		params = params.Password(in.Password)
	}
	if in.DisplayName != "" {
		params = params.DisplayName(in.DisplayName)
	}
	if in.PhotoURL != "" {
		params = params.PhotoURL(in.PhotoURL)
	}

	record, err := r.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return toIdentity(record), nil
}

// Update applies a partial update to the provider account. Nil fields are
// left untouched.
func (r *IdentityRepository) Update(ctx context.Context, uid string, upd domain.IdentityUpdate) (*domain.Identity, error) {
	if upd.IsZero() {
		return r.GetByID(ctx, uid)
	}

	params := &fbauth.UserToUpdate{}
	if upd.DisplayName != nil {
		params = params.DisplayName(*upd.DisplayName)
	}
	if upd.PhotoURL != nil {
		params = params.PhotoURL(*upd.PhotoURL)
	}
	if upd.Email != nil {
		params = params.Email(*upd.Email)
	}
	if upd.Password != nil {
		params = params.Password(*upd.Password)
	}
	if upd.Disabled != nil {
		params = params.Disabled(*upd.Disabled)
	}

	record, err := r.client.UpdateUser(ctx, uid, params)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, domain.ErrIdentityNotFound
		}
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("update user %q: %w", uid, err)
	}

	return toIdentity(record), nil
}

// SetDisabled toggles the account's disabled flag. Accounts are never hard
// deleted; disabling revokes access while preserving history.
func (r *IdentityRepository) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	_, err := r.client.UpdateUser(ctx, uid, (&fbauth.UserToUpdate{}).Disabled(disabled))
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return domain.ErrIdentityNotFound
		}
		return fmt.Errorf("set disabled %q: %w", uid, err)
	}
	return nil
}

// List returns one page of provider accounts plus the token for the next
// page. An empty next token means the listing is exhausted.
func (r *IdentityRepository) List(ctx context.Context, pageToken string, pageSize int) ([]domain.Identity, string, error) {
	it := r.client.Users(ctx, pageToken)

	var records []*fbauth.ExportedUserRecord
	pager := iterator.NewPager(it, pageSize, pageToken)
	nextToken, err := pager.NextPage(&records)
	if err != nil {
		return nil, "", fmt.Errorf("list users: %w", err)
	}

	identities := make([]domain.Identity, 0, len(records))
	for _, rec := range records {
		identities = append(identities, *toIdentity(rec.UserRecord))
	}
	return identities, nextToken, nil
}

// PasswordResetLink asks the provider to mint a password-reset link for the
// given email.
func (r *IdentityRepository) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := r.client.PasswordResetLink(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return "", domain.ErrIdentityNotFound
		}
		return "", fmt.Errorf("password reset link: %w", err)
	}
	return link, nil
}

func toIdentity(record *fbauth.UserRecord) *domain.Identity {
	id := &domain.Identity{
		UID:      record.UID,
		Disabled: record.Disabled,
	}
	if record.UserInfo != nil {
		id.Email = record.Email
		id.DisplayName = record.DisplayName
		id.PhotoURL = record.PhotoURL
	}
	if meta := record.UserMetadata; meta != nil {
		if meta.CreationTimestamp > 0 {
			id.CreatedAt = time.UnixMilli(meta.CreationTimestamp).UTC()
		}
		if meta.LastLogInTimestamp > 0 {
			t := time.UnixMilli(meta.LastLogInTimestamp).UTC()
			id.LastLoginAt = &t
		}
	}
	return id
}
