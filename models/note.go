// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// NoteOwner identifies the account that owns a note. Present on shared
// listings; absent when the server omits owner expansion.
type NoteOwner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Note represents a single note as returned by the server.
//
// For a protected note whose content has not been unlocked in this view
// session, the server withholds Description and sets NeedsPassword. A
// successful unlock returns a full representation with Description populated
// and NeedsPassword cleared. The unlocked state lives only in the loaded
// instance: a re-fetch re-locks the note.
type Note struct {
	// ID is the server-side unique identifier of the note.
	ID string `json:"id"`

	// Title is the note heading. Always present, even on locked notes.
	Title string `json:"title"`

	// Description is the note body. Empty on a locked protected note.
	Description string `json:"description"`

	// IsProtected reports whether the note requires a password to reveal
	// its content.
	IsProtected bool `json:"isProtected"`

	// NeedsPassword is true only while IsProtected and the content has not
	// been unlocked in this view session.
	NeedsPassword bool `json:"needsPassword"`

	// Owner is the account the note belongs to, when the server expands it.
	Owner *NoteOwner `json:"owner,omitempty"`

	// CreatedAt is the timestamp when the note was created.
	CreatedAt time.Time `json:"createdAt,omitzero"`

	// UpdatedAt is the timestamp of the last modification (including revert).
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Locked reports whether the note content is currently withheld and an
// unlock is required before Description can be shown.
func (n Note) Locked() bool {
	return n.IsProtected && n.NeedsPassword
}

// CreateNoteRequest is the payload for POST /notes. Password is sent only
// when the note is created as protected.
type CreateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsProtected bool   `json:"isProtected"`
	Password    string `json:"password,omitempty"`
}

// UpdateNoteRequest is the payload for PATCH /notes/:id.
// Nil fields are omitted and left untouched on the server.
type UpdateNoteRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsProtected *bool   `json:"isProtected,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// UnlockNoteRequest is the payload for POST /notes/:id/unlock.
type UnlockNoteRequest struct {
	Password string `json:"password"`
}
