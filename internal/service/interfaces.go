package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
)

// SessionStatus describes what the client currently knows about the
// server-side session.
type SessionStatus int

const (
	// SessionUnknown is the initial state: the bootstrap probe has not
	// finished yet and the client cannot tell whether a session exists.
	SessionUnknown SessionStatus = iota
	// SessionAuthenticated means a server session exists and the user
	// profile in the snapshot is valid.
	SessionAuthenticated
	// SessionUnauthenticated means no server session exists.
	SessionUnauthenticated
)

// SessionSnapshot is an immutable copy of the session state handed to
// observers and Snapshot callers. Err carries the last auth operation
// failure, cleared by the next successful operation or ClearError.
type SessionSnapshot struct {
	Status SessionStatus
	User   models.UserProfile
	Err    error
}

// Authenticated reports whether the snapshot carries a live session.
func (s SessionSnapshot) Authenticated() bool {
	return s.Status == SessionAuthenticated
}

// SessionService defines the client-side contract for the authentication
// lifecycle. Implementations own the session state machine and notify
// subscribers on every transition.
type SessionService interface {
	// Bootstrap probes the server for an existing session. It moves the
	// state from SessionUnknown to SessionAuthenticated when a session
	// cookie is still valid, or to SessionUnauthenticated otherwise.
	// A failed probe is never surfaced as an error to the user.
	Bootstrap(ctx context.Context)

	// Register creates a new account and, on success, enters the
	// authenticated state with the returned profile.
	Register(ctx context.Context, req models.RegisterRequest) error

	// Login authenticates against the server and, on success, enters the
	// authenticated state with the returned profile.
	Login(ctx context.Context, req models.LoginRequest) error

	// Logout terminates the server session and enters the unauthenticated
	// state. The local state is cleared even when the server call fails.
	Logout(ctx context.Context) error

	// UpdateProfile sends a partial profile update and merges the returned
	// fields into the current profile.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserProfile, error)

	// ChangePassword changes the account password. The session survives
	// a successful change.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// Refresh re-fetches the current profile from the server and replaces
	// the stored one wholesale. A 401 response drops the session to
	// SessionUnauthenticated.
	Refresh(ctx context.Context) error

	// ClearError removes the stored auth error without touching the rest
	// of the state.
	ClearError()

	// Snapshot returns a copy of the current session state.
	Snapshot() SessionSnapshot

	// Subscribe registers an observer called after every state transition
	// with the new snapshot. The returned function unsubscribes it.
	// Observers are called synchronously; they must not call back into
	// the service.
	Subscribe(fn func(SessionSnapshot)) (unsubscribe func())
}

// NotesService defines the client-side contract for note CRUD and
// unlocking protected notes.
type NotesService interface {
	// List returns all notes visible to the current user. Protected notes
	// arrive locked, with their description withheld by the server.
	List(ctx context.Context) ([]models.Note, error)

	// Get returns a single note by ID.
	Get(ctx context.Context, noteID string) (models.Note, error)

	// Create creates a note. When req.IsProtected is true a non-blank
	// password is required; the check is performed before the server call.
	Create(ctx context.Context, req models.CreateNoteRequest) (models.Note, error)

	// Update applies a partial update to a note.
	Update(ctx context.Context, noteID string, req models.UpdateNoteRequest) (models.Note, error)

	// Delete removes a note.
	Delete(ctx context.Context, noteID string) error

	// Unlock submits the note password and returns the full note with its
	// description revealed. A blank password is rejected locally without
	// a server round trip.
	Unlock(ctx context.Context, noteID, password string) (models.Note, error)
}

// VersionsService defines the client-side contract for a note's version
// history.
type VersionsService interface {
	// List returns the note's versions, newest first, as provided by the
	// server.
	List(ctx context.Context, noteID string) ([]models.NoteVersion, error)

	// Diff compares a version against its predecessor in the listing and
	// reports which fields changed. The oldest version diffs against
	// nothing and reports no changes.
	Diff(versions []models.NoteVersion, index int) models.VersionDiff

	// Revert restores the note to the given version. Reverting to the
	// version marked current is a local no-op and returns the note
	// unchanged without a server call.
	Revert(ctx context.Context, noteID string, versions []models.NoteVersion, versionID string) (models.Note, bool, error)
}

// ChangeEmitter publishes a local note mutation to other connected
// clients. Implementations must be fire-and-forget: publishing never
// blocks or fails the mutation that triggered it.
type ChangeEmitter interface {
	EmitNoteChange(event models.NotificationEvent)
}

// SessionRefreshJob defines the contract for a background worker that
// periodically re-fetches the profile to keep the session cookie warm
// and detect server-side expiry.
type SessionRefreshJob interface {
	// Start launches the background goroutine. It refreshes every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
