package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingEmitter — ручная заглушка ChangeEmitter: mock-пакет не может
// импортировать этот пакет из-за цикла, поэтому события просто записываются
type recordingEmitter struct {
	events []models.NotificationEvent
}

func (r *recordingEmitter) EmitNoteChange(event models.NotificationEvent) {
	r.events = append(r.events, event)
}

// newTestNotesSvc — хелпер для создания notesService с моками и залогиненным
// пользователем u-1
func newTestNotesSvc(t *testing.T, ctrl *gomock.Controller) (*notesService, *mock.MockServerAdapter, *recordingEmitter) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	emitter := &recordingEmitter{}

	session := NewSessionService(mockAdapter, logger.Nop())
	mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.UserProfile{ID: "u-1"}, nil)
	require.NoError(t, session.Login(context.Background(), models.LoginRequest{Email: "ivan@example.com", Password: "secret"}))

	svc := NewNotesService(mockAdapter, session, emitter).(*notesService)
	return svc, mockAdapter, emitter
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestNotesService_Create_EmitsChangeWithOwnUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, emitter := newTestNotesSvc(t, ctrl)
	ctx := context.Background()

	req := models.CreateNoteRequest{Title: "shopping", Description: "milk"}
	created := models.Note{ID: "n-1", Title: "shopping", Description: "milk"}

	mockAdapter.EXPECT().CreateNote(ctx, req).Return(created, nil)

	note, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created, note)
	assert.Equal(t, []models.NotificationEvent{{
		Action: models.ActionCreate,
		NoteID: "n-1",
		UserID: "u-1",
		Title:  "shopping",
	}}, emitter.events)
}

func TestNotesService_Create_ProtectedRequiresPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestNotesSvc(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
	}{
		{name: "empty password", password: ""},
		{name: "whitespace password", password: "   "},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Сетевого вызова быть не должно: адаптер без EXPECT
			_, err := svc.Create(ctx, models.CreateNoteRequest{
				Title:       "secret note",
				IsProtected: true,
				Password:    test.password,
			})
			assert.ErrorIs(t, err, ErrEmptyNotePassword)
		})
	}
}

func TestNotesService_Create_UnprotectedDropsStrayPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, emitter := newTestNotesSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().CreateNote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.CreateNoteRequest) (models.Note, error) {
			assert.Empty(t, req.Password)
			return models.Note{ID: "n-1", Title: req.Title}, nil
		},
	)

	_, err := svc.Create(ctx, models.CreateNoteRequest{Title: "plain", Password: "leftover"})
	require.NoError(t, err)
	assert.Len(t, emitter.events, 1)
}

// ── Update / Delete ──────────────────────────────────────────────────────────

func TestNotesService_Update_EmitsChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, emitter := newTestNotesSvc(t, ctrl)
	ctx := context.Background()

	title := "renamed"
	req := models.UpdateNoteRequest{Title: &title}
	updated := models.Note{ID: "n-1", Title: "renamed"}

	mockAdapter.EXPECT().UpdateNote(ctx, "n-1", req).Return(updated, nil)

	note, err := svc.Update(ctx, "n-1", req)
	require.NoError(t, err)
	assert.Equal(t, updated, note)
	assert.Equal(t, []models.NotificationEvent{{
		Action: models.ActionUpdate,
		NoteID: "n-1",
		UserID: "u-1",
		Title:  "renamed",
	}}, emitter.events)
}

func TestNotesService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestNotesSvc(t, ctrl)
	ctx := context.Background()

	title := "renamed"
	mockAdapter.EXPECT().UpdateNote(ctx, "missing", gomock.Any()).
		Return(models.Note{}, adapter.ErrNotFound)

	_, err := svc.Update(ctx, "missing", models.UpdateNoteRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNotesService_Delete_EmitsChangeWithTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, emitter := newTestNotesSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().GetNote(ctx, "n-1").Return(models.Note{ID: "n-1", Title: "shopping"}, nil),
		mockAdapter.EXPECT().DeleteNote(ctx, "n-1").Return(nil),
	)

	require.NoError(t, svc.Delete(ctx, "n-1"))
	assert.Equal(t, []models.NotificationEvent{{
		Action: models.ActionDelete,
		NoteID: "n-1",
		UserID: "u-1",
		Title:  "shopping",
	}}, emitter.events)
}

func TestNotesService_Delete_FailureDoesNotEmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, emitter := newTestNotesSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().GetNote(ctx, "n-1").Return(models.Note{ID: "n-1", Title: "shopping"}, nil)
	mockAdapter.EXPECT().DeleteNote(ctx, "n-1").Return(adapter.ErrForbidden)

	err := svc.Delete(ctx, "n-1")
	assert.ErrorIs(t, err, ErrNoteAccessDenied)
	assert.Empty(t, emitter.events)
}

// ── Unlock ───────────────────────────────────────────────────────────────────

func TestNotesService_Unlock_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestNotesSvc(t, ctrl)
	ctx := context.Background()

	unlocked := models.Note{ID: "n-2", Title: "secret", Description: "hidden", IsProtected: true, NeedsPassword: false}
	mockAdapter.EXPECT().UnlockNote(ctx, "n-2", "secret").Return(unlocked, nil)

	note, err := svc.Unlock(ctx, "n-2", "secret")
	require.NoError(t, err)
	assert.Equal(t, "hidden", note.Description)
	assert.False(t, note.Locked())
}

func TestNotesService_Unlock_BlankPasswordRejectedLocally(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestNotesSvc(t, ctrl)

	for _, password := range []string{"", "   ", "\t"} {
		_, err := svc.Unlock(context.Background(), "n-2", password)
		assert.ErrorIs(t, err, ErrEmptyNotePassword)
	}
}

func TestNotesService_Unlock_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestNotesSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().UnlockNote(ctx, "n-2", "wrong").
		Return(models.Note{}, adapter.ErrForbidden)

	_, err := svc.Unlock(ctx, "n-2", "wrong")
	assert.ErrorIs(t, err, ErrWrongNotePassword)
}

// ── без эмиттера ─────────────────────────────────────────────────────────────

func TestNotesService_NilEmitterIsSafe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewNotesService(mockAdapter, nil, nil)
	ctx := context.Background()

	mockAdapter.EXPECT().CreateNote(ctx, gomock.Any()).Return(models.Note{ID: "n-1"}, nil)

	_, err := svc.Create(ctx, models.CreateNoteRequest{Title: "plain"})
	assert.NoError(t, err)
}
