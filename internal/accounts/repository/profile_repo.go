package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
)

const profileCollection = "users"

// ProfileRepository stores profile documents in Firestore. The document ID
// is the provider UID; user_id inside the document must always match it.
type ProfileRepository struct {
	client *firestore.Client
}

func NewProfileRepository(client *firestore.Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

func (r *ProfileRepository) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection(profileCollection).Doc(uid)
}

// Create writes a new profile document keyed by the profile's UserID.
// A second create for the same subject fails with ErrProfileExists.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == "" {
		return fmt.Errorf("profile user_id is required")
	}

	_, err := r.doc(profile.UserID).Create(ctx, profile)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("create profile %q: %w", profile.UserID, err)
	}
	return nil
}

// GetByUserID reads the profile document for the given subject.
func (r *ProfileRepository) GetByUserID(ctx context.Context, uid string) (*domain.Profile, error) {
	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile %q: %w", uid, err)
	}

	var profile domain.Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", uid, err)
	}
	return &profile, nil
}

// Update applies a partial update to the profile document. Only the fields
// set on upd are touched; user_id and email are immutable here.
func (r *ProfileRepository) Update(ctx context.Context, uid string, upd domain.ProfileUpdate) error {
	if upd.IsZero() {
		return nil
	}

	var updates []firestore.Update
	if upd.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *upd.Name})
	}
	if upd.Role != nil {
		updates = append(updates, firestore.Update{Path: "role", Value: *upd.Role})
	}
	if upd.CoverPhoto != nil {
		updates = append(updates, firestore.Update{Path: "cover_photo", Value: *upd.CoverPhoto})
	}
	if upd.FCMToken != nil {
		updates = append(updates, firestore.Update{Path: "fcm_token", Value: *upd.FCMToken})
	}

	_, err := r.doc(uid).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("update profile %q: %w", uid, err)
	}
	return nil
}

// Delete removes the profile document. Missing documents are not an error.
func (r *ProfileRepository) Delete(ctx context.Context, uid string) error {
	if _, err := r.doc(uid).Delete(ctx); err != nil {
		return fmt.Errorf("delete profile %q: %w", uid, err)
	}
	return nil
}

// List returns all profile documents ordered by document ID. An empty
// collection yields ErrNoProfiles rather than an empty slice.
func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	it := r.client.Collection(profileCollection).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	defer it.Stop()

	var profiles []domain.Profile
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}

		var profile domain.Profile
		if err := snap.DataTo(&profile); err != nil {
			return nil, fmt.Errorf("decode profile %q: %w", snap.Ref.ID, err)
		}
		profiles = append(profiles, profile)
	}

	if len(profiles) == 0 {
		return nil, domain.ErrNoProfiles
	}
	return profiles, nil
}
