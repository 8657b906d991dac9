// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/models"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return ErrSessionExpired

	case errors.Is(err, adapter.ErrForbidden):
		return ErrNoteAccessDenied

	case errors.Is(err, adapter.ErrNotFound):
		return ErrNoteNotFound

	case errors.Is(err, adapter.ErrConflict):
		return ErrEmailTaken

	case errors.Is(err, adapter.ErrBadGateway):
		return ErrServerUnavailable
	}

	return err
}

// UserMessage extracts the text that should be shown to the user for err.
// Server-supplied messages win over local sentinel text; transport failures
// fall back to the error's own message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *models.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return err.Error()
}
