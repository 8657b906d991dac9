// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

type sessionService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	mu        sync.Mutex
	status    SessionStatus
	user      models.UserProfile
	err       error
	observers map[int]func(SessionSnapshot)
	nextSub   int
}

func NewSessionService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) SessionService {
	return &sessionService{
		adapter:   serverAdapter,
		logger:    logger,
		status:    SessionUnknown,
		observers: make(map[int]func(SessionSnapshot)),
	}
}

// Bootstrap implements SessionService. Any probe failure, network or 401,
// resolves to the unauthenticated state without recording an error: an
// expired cookie on startup is the normal case, not a failure.
func (s *sessionService) Bootstrap(ctx context.Context) {
	user, err := s.adapter.CurrentUser(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("session bootstrap probe failed")
		s.transition(func() {
			s.status = SessionUnauthenticated
			s.user = models.UserProfile{}
			s.err = nil
		})
		return
	}

	s.transition(func() {
		s.status = SessionAuthenticated
		s.user = user
		s.err = nil
	})
}

// Register implements SessionService.
func (s *sessionService) Register(ctx context.Context, req models.RegisterRequest) error {
	user, err := s.adapter.Register(ctx, req)
	if err != nil {
		mapped := mapAdapterError(err)
		s.setError(mapped)
		return mapped
	}

	s.transition(func() {
		s.status = SessionAuthenticated
		s.user = user
		s.err = nil
	})

	return nil
}

// Login implements SessionService. A 401 from the login endpoint means the
// credentials were wrong, not that a session expired.
func (s *sessionService) Login(ctx context.Context, req models.LoginRequest) error {
	user, err := s.adapter.Login(ctx, req)
	if err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrBadRequest) {
			mapped = ErrInvalidCredentials
		}
		s.setError(mapped)
		return mapped
	}

	s.transition(func() {
		s.status = SessionAuthenticated
		s.user = user
		s.err = nil
	})

	return nil
}

// Logout implements SessionService. A failed server logout keeps the local
// session: the cookie is still live, so dropping the user locally would only
// desynchronize the client. An already-expired session counts as logged out.
func (s *sessionService) Logout(ctx context.Context) error {
	err := s.adapter.Logout(ctx)
	if err != nil {
		mapped := mapAdapterError(err)
		if !errors.Is(mapped, ErrSessionExpired) {
			s.logger.Warn().Err(err).Msg("server logout failed")
			s.setError(mapped)
			return mapped
		}
	}

	s.transition(func() {
		s.status = SessionUnauthenticated
		s.user = models.UserProfile{}
		s.err = nil
	})

	return nil
}

// UpdateProfile implements SessionService. Only the fields present in the
// server response replace their local counterparts.
func (s *sessionService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserProfile, error) {
	updated, err := s.adapter.UpdateProfile(ctx, req)
	if err != nil {
		mapped := mapAdapterError(err)
		if !s.maybeExpire(mapped) {
			s.setError(mapped)
		}
		return models.UserProfile{}, mapped
	}

	var merged models.UserProfile
	s.transition(func() {
		s.user.Merge(updated)
		s.err = nil
		merged = s.user
	})

	return merged, nil
}

// ChangePassword implements SessionService.
func (s *sessionService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := s.adapter.ChangePassword(ctx, req); err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(err, adapter.ErrForbidden) {
			mapped = ErrInvalidCredentials
		}
		if !s.maybeExpire(mapped) {
			s.setError(mapped)
		}
		return mapped
	}

	s.transition(func() {
		s.err = nil
	})

	return nil
}

// Refresh implements SessionService. Unlike UpdateProfile this replaces the
// stored profile wholesale so fields removed on the server disappear locally
// too.
func (s *sessionService) Refresh(ctx context.Context) error {
	user, err := s.adapter.CurrentUser(ctx)
	if err != nil {
		mapped := mapAdapterError(err)
		s.maybeExpire(mapped)
		return mapped
	}

	s.transition(func() {
		s.status = SessionAuthenticated
		s.user = user
	})

	return nil
}

// ClearError implements SessionService.
func (s *sessionService) ClearError() {
	s.transition(func() {
		s.err = nil
	})
}

// Snapshot implements SessionService.
func (s *sessionService) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{Status: s.status, User: s.user, Err: s.err}
}

// Subscribe implements SessionService.
func (s *sessionService) Subscribe(fn func(SessionSnapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// transition applies mutate under the lock and notifies observers with the
// resulting snapshot. Observers run outside the lock so they can read
// Snapshot without deadlocking.
func (s *sessionService) transition(mutate func()) {
	s.mu.Lock()
	mutate()
	snap := SessionSnapshot{Status: s.status, User: s.user, Err: s.err}
	observers := make([]func(SessionSnapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (s *sessionService) setError(err error) {
	s.transition(func() {
		s.err = err
	})
}

// maybeExpire drops the session when an authenticated call came back 401.
// Reports whether the session was expired so callers can record other
// failures themselves.
func (s *sessionService) maybeExpire(mapped error) bool {
	if !errors.Is(mapped, ErrSessionExpired) {
		return false
	}

	s.transition(func() {
		s.status = SessionUnauthenticated
		s.user = models.UserProfile{}
		s.err = mapped
	})

	return true
}
