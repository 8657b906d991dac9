package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.Handler) ServerAdapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.Nop()
	a, err := NewHTTPServerAdapter(
		config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: 5 * time.Second},
		config.ClientApp{Environment: "development"},
		log,
	)
	require.NoError(t, err)

	return a
}

// ── NewHTTPServerAdapter ────────────────────────────────────────────────────

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
	}{
		{name: "empty address", address: ""},
		{name: "blank address", address: "   "},
		{name: "scheme only", address: "http://"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewHTTPServerAdapter(
				config.ClientAdapter{HTTPAddress: test.address, RequestTimeout: time.Second},
				config.ClientApp{},
				logger.Nop(),
			)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeBaseURL_AddsSchemeAndTrimsSlash(t *testing.T) {
	got, err := normalizeBaseURL("localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)
}

// ── auth operations ─────────────────────────────────────────────────────────

func TestHTTPServerAdapter_Register(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ivan", req.Name)
		assert.Equal(t, "ivan@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.UserProfile{ID: "u-1", Name: req.Name, Email: req.Email})
	})

	a := newTestAdapter(t, handler)
	user, err := a.Register(context.Background(), models.RegisterRequest{Name: "Ivan", Email: "ivan@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "Ivan", user.Name)
}

func TestHTTPServerAdapter_Login_SessionCookiePersists(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(models.UserProfile{ID: "u-1", Email: "ivan@example.com"})
		case "/users/me":
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value != "abc123" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(models.ErrorResponse{Error: "not authenticated"})
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(models.UserProfile{ID: "u-1", Email: "ivan@example.com"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	a := newTestAdapter(t, handler)

	_, err := a.Login(context.Background(), models.LoginRequest{Email: "ivan@example.com", Password: "secret"})
	require.NoError(t, err)

	user, err := a.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
}

func TestHTTPServerAdapter_Login_InvalidCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "invalid credentials"})
	})

	a := newTestAdapter(t, handler)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "ivan@example.com", Password: "wrong"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestHTTPServerAdapter_Logout(t *testing.T) {
	var called bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	a := newTestAdapter(t, handler)
	err := a.Logout(context.Background())

	require.NoError(t, err)
	assert.True(t, called)
}

func TestHTTPServerAdapter_ChangePassword_FieldErrors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/users/me/password", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Error: "validation failed",
			Errors: []models.FieldError{
				{Path: "newPassword", Msg: "password is too short"},
			},
		})
	})

	a := newTestAdapter(t, handler)
	err := a.ChangePassword(context.Background(), models.ChangePasswordRequest{OldPassword: "old", NewPassword: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "password is too short", apiErr.FieldMessage("newPassword"))
}

// ── note operations ─────────────────────────────────────────────────────────

func TestHTTPServerAdapter_ListNotes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/notes", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Note{
			{ID: "n-1", Title: "first"},
			{ID: "n-2", Title: "second", IsProtected: true, NeedsPassword: true},
		})
	})

	a := newTestAdapter(t, handler)
	notes, err := a.ListNotes(context.Background())

	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "n-1", notes[0].ID)
	assert.True(t, notes[1].Locked())
}

func TestHTTPServerAdapter_GetNote_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "note not found"})
	})

	a := newTestAdapter(t, handler)
	_, err := a.GetNote(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPServerAdapter_CreateNote(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/notes", r.URL.Path)

		var req models.CreateNoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "shopping", req.Title)
		assert.True(t, req.IsProtected)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Note{ID: "n-3", Title: req.Title, IsProtected: true, NeedsPassword: true})
	})

	a := newTestAdapter(t, handler)
	note, err := a.CreateNote(context.Background(), models.CreateNoteRequest{
		Title:       "shopping",
		Description: "milk",
		IsProtected: true,
		Password:    "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "n-3", note.ID)
}

func TestHTTPServerAdapter_UpdateNote_PartialBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/notes/n-1", r.URL.Path)

		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Contains(t, raw, "title")
		assert.NotContains(t, raw, "description")
		assert.NotContains(t, raw, "isProtected")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Note{ID: "n-1", Title: "renamed"})
	})

	a := newTestAdapter(t, handler)
	title := "renamed"
	note, err := a.UpdateNote(context.Background(), "n-1", models.UpdateNoteRequest{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "renamed", note.Title)
}

func TestHTTPServerAdapter_DeleteNote(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/notes/n-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	a := newTestAdapter(t, handler)
	assert.NoError(t, a.DeleteNote(context.Background(), "n-1"))
}

func TestHTTPServerAdapter_UnlockNote(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notes/n-2/unlock", r.URL.Path)

		var req models.UnlockNoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		if req.Password != "secret" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "wrong password"})
			return
		}
		json.NewEncoder(w).Encode(models.Note{ID: "n-2", Title: "second", Description: "hidden text", IsProtected: true, NeedsPassword: false})
	})

	a := newTestAdapter(t, handler)

	note, err := a.UnlockNote(context.Background(), "n-2", "secret")
	require.NoError(t, err)
	assert.Equal(t, "hidden text", note.Description)
	assert.False(t, note.Locked())

	_, err = a.UnlockNote(context.Background(), "n-2", "wrong")
	assert.ErrorIs(t, err, ErrForbidden)
}

// ── version operations ──────────────────────────────────────────────────────

func TestHTTPServerAdapter_ListVersions_PreservesOrder(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notes/n-1/versions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.NoteVersion{
			{ID: "v-3", Title: "newest", IsCurrent: true},
			{ID: "v-2", Title: "middle"},
			{ID: "v-1", Title: "oldest"},
		})
	})

	a := newTestAdapter(t, handler)
	versions, err := a.ListVersions(context.Background(), "n-1")

	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "v-3", versions[0].ID)
	assert.True(t, versions[0].IsCurrent)
	assert.Equal(t, "v-1", versions[2].ID)
}

func TestHTTPServerAdapter_RevertNote(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/notes/n-1/revert", r.URL.Path)

		var req models.RevertNoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "v-1", req.VersionID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Note{ID: "n-1", Title: "oldest"})
	})

	a := newTestAdapter(t, handler)
	note, err := a.RevertNote(context.Background(), "n-1", "v-1")

	require.NoError(t, err)
	assert.Equal(t, "oldest", note.Title)
}

// ── error mapping ───────────────────────────────────────────────────────────

func TestMapHTTPError_NonJSONBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	})

	a := newTestAdapter(t, handler)
	_, err := a.ListNotes(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadGateway)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestMapHTTPError_EmptyBodyFallsBackToStatusText(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	a := newTestAdapter(t, handler)
	_, err := a.ListNotes(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestHTTPServerAdapter_NetworkError(t *testing.T) {
	a, err := NewHTTPServerAdapter(
		config.ClientAdapter{HTTPAddress: "http://127.0.0.1:1", RequestTimeout: 200 * time.Millisecond},
		config.ClientApp{},
		logger.Nop(),
	)
	require.NoError(t, err)

	_, err = a.ListNotes(context.Background())
	assert.Error(t, err)
}

func TestHTTPServerAdapter_CookieJarIsShared(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// Канал реального времени аутентифицируется тем же cookie jar.
	assert.NotNil(t, a.CookieJar())
}
