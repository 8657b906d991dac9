// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-note-keeper backend.
//
// The primary abstraction is [ServerAdapter], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) that authenticates with the backend's session
// cookie: the cookie set on login/register is held in the client's cookie jar
// and attached to every subsequent request.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrNotFound] for 404). The full
// normalized failure, including the server's field-level validation list, is
// available to callers via [errors.As] on *[models.APIError].
package adapter

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the note
// backend. Implementations are responsible for serialisation, session cookie
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// Register creates a new account via POST /auth/register. On success the
	// backend sets the session cookie and returns the created profile.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserProfile, error)

	// Login authenticates via POST /auth/login. On success the backend sets
	// the session cookie and returns the authenticated profile.
	Login(ctx context.Context, req models.LoginRequest) (models.UserProfile, error)

	// Logout terminates the server-side session via POST /auth/logout.
	Logout(ctx context.Context) error

	// CurrentUser probes GET /users/me. Returns [ErrUnauthorized] (wrapped)
	// when no valid session cookie is held.
	CurrentUser(ctx context.Context) (models.UserProfile, error)

	// UpdateProfile sends a partial profile change via PATCH /users/me and
	// returns the (possibly partial) updated profile.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserProfile, error)

	// ChangePassword rotates the account password via PATCH /users/me/password.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// ListNotes fetches the note summaries via GET /notes.
	ListNotes(ctx context.Context) ([]models.Note, error)

	// GetNote fetches a single note via GET /notes/:id. For a protected note
	// the description is withheld and NeedsPassword is set.
	GetNote(ctx context.Context, noteID string) (models.Note, error)

	// CreateNote creates a note via POST /notes.
	CreateNote(ctx context.Context, req models.CreateNoteRequest) (models.Note, error)

	// UpdateNote applies a partial change via PATCH /notes/:id.
	UpdateNote(ctx context.Context, noteID string, req models.UpdateNoteRequest) (models.Note, error)

	// DeleteNote removes a note via DELETE /notes/:id.
	DeleteNote(ctx context.Context, noteID string) error

	// UnlockNote submits the note password via POST /notes/:id/unlock and
	// returns the full representation with the description populated.
	UnlockNote(ctx context.Context, noteID, password string) (models.Note, error)

	// ListVersions fetches the newest-first version history via
	// GET /notes/:id/versions.
	ListVersions(ctx context.Context, noteID string) ([]models.NoteVersion, error)

	// RevertNote reverts a note to versionID via POST /notes/:id/revert and
	// returns the post-revert representation.
	RevertNote(ctx context.Context, noteID, versionID string) (models.Note, error)

	// CookieJar exposes the jar holding the session cookie so that other
	// transports (the realtime channel) can authenticate with the same
	// session.
	CookieJar() http.CookieJar
}
