package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

type ClientServices struct {
	SessionService  SessionService
	NotesService    NotesService
	VersionsService VersionsService
	RefreshJob      SessionRefreshJob
}

func NewClientServices(serverAdapter adapter.ServerAdapter, emitter ChangeEmitter, logger *logger.Logger) *ClientServices {
	sessionSvc := NewSessionService(serverAdapter, logger)
	notesSvc := NewNotesService(serverAdapter, sessionSvc, emitter)
	versionsSvc := NewVersionsService(serverAdapter, sessionSvc, emitter)

	return &ClientServices{
		SessionService:  sessionSvc,
		NotesService:    notesSvc,
		VersionsService: versionsSvc,
		RefreshJob:      NewSessionRefreshJob(sessionSvc),
	}
}
