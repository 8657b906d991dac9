package models

import "time"

// UserProfile represents the authenticated account as returned by the server.
// It is an immutable snapshot: the session service replaces it wholesale after
// a refresh and shallow-merges partial profile updates into a copy.
type UserProfile struct {
	// ID is the server-side unique identifier of the user.
	ID string `json:"id"`

	// Name is the display name of the user. Non-sensitive, shown in UI.
	Name string `json:"name"`

	// Email is the unique login identifier of the user.
	Email string `json:"email"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Merge returns a copy of the profile with every non-empty field of partial
// applied on top. Fields absent from partial are preserved, which is the
// contract for PATCH /users/me responses.
func (u UserProfile) Merge(partial UserProfile) UserProfile {
	merged := u
	if partial.ID != "" {
		merged.ID = partial.ID
	}
	if partial.Name != "" {
		merged.Name = partial.Name
	}
	if partial.Email != "" {
		merged.Email = partial.Email
	}
	if !partial.CreatedAt.IsZero() {
		merged.CreatedAt = partial.CreatedAt
	}
	return merged
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the payload for PATCH /users/me.
// Nil fields are omitted from the request body and left untouched on the
// server (partial update support).
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ChangePasswordRequest is the payload for PATCH /users/me/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
