// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// NoteAction names a note mutation broadcast over the realtime channel.
type NoteAction string

// Known note actions. Any other value renders as a generic notification.
const (
	ActionCreate NoteAction = "create"
	ActionUpdate NoteAction = "update"
	ActionDelete NoteAction = "delete"
	ActionRevert NoteAction = "revert"
)

// NotificationEvent is the wire shape of both the inbound "notification"
// event and the outbound "noteChange" event on the realtime channel.
// Transient: it drives a toast and is never persisted.
type NotificationEvent struct {
	// Action is the mutation that happened to the note.
	Action NoteAction `json:"action"`

	// NoteID identifies the affected note.
	NoteID string `json:"noteId"`

	// UserID identifies the originator. Receivers suppress events whose
	// UserID equals their own session user id.
	UserID string `json:"userId"`

	// Title is the note heading at the time of the mutation, used for the
	// toast text.
	Title string `json:"title"`
}
