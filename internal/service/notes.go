// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/models"
)

type notesService struct {
	adapter adapter.ServerAdapter
	session SessionService
	emitter ChangeEmitter
}

// NewNotesService creates the notes service. emitter may be nil; mutations
// then go unannounced to other clients.
func NewNotesService(serverAdapter adapter.ServerAdapter, session SessionService, emitter ChangeEmitter) NotesService {
	return &notesService{adapter: serverAdapter, session: session, emitter: emitter}
}

// List implements NotesService.
func (n *notesService) List(ctx context.Context) ([]models.Note, error) {
	notes, err := n.adapter.ListNotes(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return notes, nil
}

// Get implements NotesService.
func (n *notesService) Get(ctx context.Context, noteID string) (models.Note, error) {
	note, err := n.adapter.GetNote(ctx, noteID)
	if err != nil {
		return models.Note{}, mapAdapterError(err)
	}
	return note, nil
}

// Create implements NotesService.
func (n *notesService) Create(ctx context.Context, req models.CreateNoteRequest) (models.Note, error) {
	if req.IsProtected && strings.TrimSpace(req.Password) == "" {
		return models.Note{}, ErrEmptyNotePassword
	}
	if !req.IsProtected {
		req.Password = ""
	}

	note, err := n.adapter.CreateNote(ctx, req)
	if err != nil {
		return models.Note{}, mapAdapterError(err)
	}

	n.emit(models.ActionCreate, note.ID, note.Title)

	return note, nil
}

// Update implements NotesService.
func (n *notesService) Update(ctx context.Context, noteID string, req models.UpdateNoteRequest) (models.Note, error) {
	if req.IsProtected != nil && *req.IsProtected && req.Password != nil && strings.TrimSpace(*req.Password) == "" {
		return models.Note{}, ErrEmptyNotePassword
	}

	note, err := n.adapter.UpdateNote(ctx, noteID, req)
	if err != nil {
		return models.Note{}, mapAdapterError(err)
	}

	n.emit(models.ActionUpdate, note.ID, note.Title)

	return note, nil
}

// Delete implements NotesService. The event carries the title so other
// clients can name the note that no longer exists.
func (n *notesService) Delete(ctx context.Context, noteID string) error {
	// Best effort: a missing title only degrades the notification text.
	note, _ := n.adapter.GetNote(ctx, noteID)
	title := note.Title

	if err := n.adapter.DeleteNote(ctx, noteID); err != nil {
		return mapAdapterError(err)
	}

	n.emit(models.ActionDelete, noteID, title)

	return nil
}

// Unlock implements NotesService. Blank passwords are rejected locally: the
// server would reject them anyway, and skipping the round trip keeps the
// failure instant.
func (n *notesService) Unlock(ctx context.Context, noteID, password string) (models.Note, error) {
	if strings.TrimSpace(password) == "" {
		return models.Note{}, ErrEmptyNotePassword
	}

	note, err := n.adapter.UnlockNote(ctx, noteID, password)
	if err != nil {
		if errors.Is(err, adapter.ErrForbidden) || errors.Is(err, adapter.ErrBadRequest) {
			return models.Note{}, ErrWrongNotePassword
		}
		return models.Note{}, mapAdapterError(err)
	}

	return note, nil
}

func (n *notesService) emit(action models.NoteAction, noteID, title string) {
	if n.emitter == nil {
		return
	}

	var userID string
	if n.session != nil {
		userID = n.session.Snapshot().User.ID
	}

	n.emitter.EmitNoteChange(models.NotificationEvent{
		Action: action,
		NoteID: noteID,
		UserID: userID,
		Title:  title,
	})
}
