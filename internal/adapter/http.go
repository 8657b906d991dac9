package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	debug  bool
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL, request
// timeout, and a cookie jar for the backend's session cookie.
//
// When appCfg is not the production profile, every failed request is logged
// with method, URL, and request body for diagnostics. The logging never runs
// in production and never alters the returned error.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Content-Type", "application/json")

	return &httpServerAdapter{client: client, debug: !appCfg.Production(), logger: logger}, nil
}

// CookieJar implements [ServerAdapter].
func (h *httpServerAdapter) CookieJar() http.CookieJar {
	return h.client.GetClient().Jar
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Register implements [ServerAdapter].
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.UserProfile, error) {
	var user models.UserProfile

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&user).
		Post("/auth/register")
	if err != nil {
		return models.UserProfile{}, h.fail(http.MethodPost, "/auth/register", req, fmt.Errorf("register request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, h.fail(http.MethodPost, "/auth/register", req, err)
	}

	return user, nil
}

// Login implements [ServerAdapter]. On success the backend's session cookie is
// captured by the client's cookie jar and sent with all subsequent requests.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.UserProfile, error) {
	var user models.UserProfile

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&user).
		Post("/auth/login")
	if err != nil {
		return models.UserProfile{}, h.fail(http.MethodPost, "/auth/login", nil, fmt.Errorf("login request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, h.fail(http.MethodPost, "/auth/login", nil, err)
	}

	return user, nil
}

// Logout implements [ServerAdapter].
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/auth/logout")
	if err != nil {
		return h.fail(http.MethodPost, "/auth/logout", nil, fmt.Errorf("logout request: %w", err))
	}

	return h.failOnMapped(http.MethodPost, "/auth/logout", nil, resp)
}

// CurrentUser implements [ServerAdapter]. A 401 here is the normal signal
// that no server-side session exists; it is still returned as an error so
// the caller decides how to treat it.
func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.UserProfile, error) {
	var user models.UserProfile

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&user).
		Get("/users/me")
	if err != nil {
		return models.UserProfile{}, h.fail(http.MethodGet, "/users/me", nil, fmt.Errorf("current user request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, h.fail(http.MethodGet, "/users/me", nil, err)
	}

	return user, nil
}

// UpdateProfile implements [ServerAdapter].
func (h *httpServerAdapter) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserProfile, error) {
	var user models.UserProfile

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&user).
		Patch("/users/me")
	if err != nil {
		return models.UserProfile{}, h.fail(http.MethodPatch, "/users/me", req, fmt.Errorf("update profile request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserProfile{}, h.fail(http.MethodPatch, "/users/me", req, err)
	}

	return user, nil
}

// ChangePassword implements [ServerAdapter]. The request body is never logged.
func (h *httpServerAdapter) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		Patch("/users/me/password")
	if err != nil {
		return h.fail(http.MethodPatch, "/users/me/password", nil, fmt.Errorf("change password request: %w", err))
	}

	return h.failOnMapped(http.MethodPatch, "/users/me/password", nil, resp)
}

// ListNotes implements [ServerAdapter].
func (h *httpServerAdapter) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&notes).
		Get("/notes")
	if err != nil {
		return nil, h.fail(http.MethodGet, "/notes", nil, fmt.Errorf("list notes request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, h.fail(http.MethodGet, "/notes", nil, err)
	}

	return notes, nil
}

// GetNote implements [ServerAdapter].
func (h *httpServerAdapter) GetNote(ctx context.Context, noteID string) (models.Note, error) {
	var note models.Note
	path := "/notes/" + url.PathEscape(noteID)

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&note).
		Get(path)
	if err != nil {
		return models.Note{}, h.fail(http.MethodGet, path, nil, fmt.Errorf("get note request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, h.fail(http.MethodGet, path, nil, err)
	}

	return note, nil
}

// CreateNote implements [ServerAdapter].
func (h *httpServerAdapter) CreateNote(ctx context.Context, req models.CreateNoteRequest) (models.Note, error) {
	var note models.Note

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&note).
		Post("/notes")
	if err != nil {
		return models.Note{}, h.fail(http.MethodPost, "/notes", req, fmt.Errorf("create note request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, h.fail(http.MethodPost, "/notes", req, err)
	}

	return note, nil
}

// UpdateNote implements [ServerAdapter].
func (h *httpServerAdapter) UpdateNote(ctx context.Context, noteID string, req models.UpdateNoteRequest) (models.Note, error) {
	var note models.Note
	path := "/notes/" + url.PathEscape(noteID)

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&note).
		Patch(path)
	if err != nil {
		return models.Note{}, h.fail(http.MethodPatch, path, req, fmt.Errorf("update note request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, h.fail(http.MethodPatch, path, req, err)
	}

	return note, nil
}

// DeleteNote implements [ServerAdapter].
func (h *httpServerAdapter) DeleteNote(ctx context.Context, noteID string) error {
	path := "/notes/" + url.PathEscape(noteID)

	resp, err := h.client.R().
		SetContext(ctx).
		Delete(path)
	if err != nil {
		return h.fail(http.MethodDelete, path, nil, fmt.Errorf("delete note request: %w", err))
	}

	return h.failOnMapped(http.MethodDelete, path, nil, resp)
}

// UnlockNote implements [ServerAdapter]. The password is never logged.
func (h *httpServerAdapter) UnlockNote(ctx context.Context, noteID, password string) (models.Note, error) {
	var note models.Note
	path := "/notes/" + url.PathEscape(noteID) + "/unlock"

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.UnlockNoteRequest{Password: password}).
		SetResult(&note).
		Post(path)
	if err != nil {
		return models.Note{}, h.fail(http.MethodPost, path, nil, fmt.Errorf("unlock note request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, h.fail(http.MethodPost, path, nil, err)
	}

	return note, nil
}

// ListVersions implements [ServerAdapter]. The backend returns versions
// newest-first; the order is preserved.
func (h *httpServerAdapter) ListVersions(ctx context.Context, noteID string) ([]models.NoteVersion, error) {
	var versions []models.NoteVersion
	path := "/notes/" + url.PathEscape(noteID) + "/versions"

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&versions).
		Get(path)
	if err != nil {
		return nil, h.fail(http.MethodGet, path, nil, fmt.Errorf("list versions request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, h.fail(http.MethodGet, path, nil, err)
	}

	return versions, nil
}

// RevertNote implements [ServerAdapter].
func (h *httpServerAdapter) RevertNote(ctx context.Context, noteID, versionID string) (models.Note, error) {
	var note models.Note
	path := "/notes/" + url.PathEscape(noteID) + "/revert"
	req := models.RevertNoteRequest{VersionID: versionID}

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&note).
		Post(path)
	if err != nil {
		return models.Note{}, h.fail(http.MethodPost, path, req, fmt.Errorf("revert note request: %w", err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, h.fail(http.MethodPost, path, req, err)
	}

	return note, nil
}

// fail passes err through unchanged, emitting a development-only diagnostic
// with the request that caused it. Bodies carrying credentials must be passed
// as nil by the caller.
func (h *httpServerAdapter) fail(method, url string, body any, err error) error {
	if h.debug && h.logger != nil {
		h.logger.Debug().
			Str("method", method).
			Str("url", url).
			Interface("body", body).
			Err(err).
			Msg("api request failed")
	}
	return err
}

func (h *httpServerAdapter) failOnMapped(method, url string, body any, resp *resty.Response) error {
	if err := mapHTTPError(resp); err != nil {
		return h.fail(method, url, body, err)
	}
	return nil
}
