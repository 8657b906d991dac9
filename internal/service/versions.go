package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/models"
)

type versionsService struct {
	adapter adapter.ServerAdapter
	session SessionService
	emitter ChangeEmitter
}

func NewVersionsService(serverAdapter adapter.ServerAdapter, session SessionService, emitter ChangeEmitter) VersionsService {
	return &versionsService{adapter: serverAdapter, session: session, emitter: emitter}
}

// List implements VersionsService.
func (v *versionsService) List(ctx context.Context, noteID string) ([]models.NoteVersion, error) {
	versions, err := v.adapter.ListVersions(ctx, noteID)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return versions, nil
}

// Diff implements VersionsService. Versions are ordered newest first, so the
// predecessor of versions[i] is versions[i+1]. The last element has no
// predecessor and yields an empty diff.
func (v *versionsService) Diff(versions []models.NoteVersion, index int) models.VersionDiff {
	if index < 0 || index >= len(versions)-1 {
		return models.VersionDiff{}
	}

	cur, prev := versions[index], versions[index+1]
	return models.VersionDiff{
		TitleChanged:       cur.Title != prev.Title,
		DescriptionChanged: cur.Description != prev.Description,
	}
}

// Revert implements VersionsService. The bool result reports whether the
// server was actually asked to revert: restoring the version that is already
// current changes nothing and is resolved locally.
func (v *versionsService) Revert(ctx context.Context, noteID string, versions []models.NoteVersion, versionID string) (models.Note, bool, error) {
	for _, ver := range versions {
		if ver.ID == versionID && ver.IsCurrent {
			return models.Note{
				ID:          noteID,
				Title:       ver.Title,
				Description: ver.Description,
			}, false, nil
		}
	}

	note, err := v.adapter.RevertNote(ctx, noteID, versionID)
	if err != nil {
		return models.Note{}, false, mapAdapterError(err)
	}

	v.emit(models.ActionRevert, note.ID, note.Title)

	return note, true, nil
}

func (v *versionsService) emit(action models.NoteAction, noteID, title string) {
	if v.emitter == nil {
		return
	}

	var userID string
	if v.session != nil {
		userID = v.session.Snapshot().User.ID
	}

	v.emitter.EmitNoteChange(models.NotificationEvent{
		Action: action,
		NoteID: noteID,
		UserID: userID,
		Title:  title,
	})
}
