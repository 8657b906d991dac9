package tui

import (
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
)

type bootstrapDoneMsg struct {
	snap service.SessionSnapshot
}

type authDoneMsg struct {
	err error
}

type logoutDoneMsg struct{}

type notesLoadedMsg struct {
	gen   int
	notes []models.Note
	err   error
}

type noteLoadedMsg struct {
	gen  int
	note models.Note
	err  error
}

type noteSavedMsg struct {
	note models.Note
	err  error
}

type noteDeletedMsg struct {
	err error
}

type unlockDoneMsg struct {
	note models.Note
	err  error
}

type versionsLoadedMsg struct {
	gen      int
	versions []models.NoteVersion
	err      error
}

type revertDoneMsg struct {
	note     models.Note
	reverted bool
	err      error
}

type profileSavedMsg struct {
	user models.UserProfile
	err  error
}

type passwordChangedMsg struct {
	err error
}

// toastMsg carries a transient status line. It is produced both by local
// actions and by the realtime channel via [TUI.PushToast].
type toastMsg struct {
	text string
}

type clearToastMsg struct{}

type copiedMsg struct{}
