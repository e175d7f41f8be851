package domain

import "time"

// Roles stored in the profile document. New accounts default to student.
const (
	RoleStudent   = "student"
	RoleModerator = "moderator"
)

// Profile is the application-owned account document stored in Firestore.
// The document ID is always the provider UID, and UserID must match it.
type Profile struct {
	UserID     string `json:"user_id" firestore:"user_id"`
	Email      string `json:"email" firestore:"email"`
	Name       string `json:"name" firestore:"name"`
	Role       string `json:"role" firestore:"role"`
	CoverPhoto string `json:"cover_photo" firestore:"cover_photo"`
	FCMToken   string `json:"fcm_token" firestore:"fcm_token"`
}

// NewProfile builds a profile with the creation defaults.
func NewProfile(uid, email, name string) *Profile {
	return &Profile{
		UserID:     uid,
		Email:      email,
		Name:       name,
		Role:       RoleStudent,
		CoverPhoto: "",
		FCMToken:   "",
	}
}

// Identity is the subset of the provider's account record the backend uses.
type Identity struct {
	UID         string     `json:"uid"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name,omitempty"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	Disabled    bool       `json:"disabled"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// SessionClaims is the result of a successful token verification.
// It lives for a single request and is never persisted.
type SessionClaims struct {
	UID    string         `json:"uid"`
	Claims map[string]any `json:"claims,omitempty"`
}

// NewIdentity holds the fields needed to create a provider account.
type NewIdentity struct {
	Email       string
	Password    string
	DisplayName string
	PhotoURL    string
}

// IdentityUpdate is a partial update of the provider account. Nil fields
// are left untouched.
type IdentityUpdate struct {
	DisplayName *string
	PhotoURL    *string
	Email       *string
	Password    *string
	Disabled    *bool
}

// IsZero reports whether the update carries no changes.
func (u IdentityUpdate) IsZero() bool {
	return u.DisplayName == nil && u.PhotoURL == nil && u.Email == nil &&
		u.Password == nil && u.Disabled == nil
}

// ProfileUpdate is a partial update of the profile document. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name       *string `json:"name,omitempty"`
	Role       *string `json:"role,omitempty"`
	CoverPhoto *string `json:"cover_photo,omitempty"`
	FCMToken   *string `json:"fcm_token,omitempty"`
}

// IsZero reports whether the update carries no changes.
func (u ProfileUpdate) IsZero() bool {
	return u.Name == nil && u.Role == nil && u.CoverPhoto == nil && u.FCMToken == nil
}
