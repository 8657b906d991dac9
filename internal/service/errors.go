package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionExpired     = errors.New("session expired, please log in again")
	ErrEmailTaken         = errors.New("account with this email already exists")

	ErrNoteNotFound      = errors.New("note not found")
	ErrWrongNotePassword = errors.New("wrong note password")
	ErrEmptyNotePassword = errors.New("note password must not be empty")
	ErrNoteAccessDenied  = errors.New("no access to this note")

	ErrVersionNotFound = errors.New("version not found")

	ErrServerUnavailable = errors.New("server is unavailable, try again later")
)
