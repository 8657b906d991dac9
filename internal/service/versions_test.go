package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testVersions() []models.NoteVersion {
	return []models.NoteVersion{
		{ID: "v-3", Title: "final", Description: "done", IsCurrent: true},
		{ID: "v-2", Title: "draft", Description: "done"},
		{ID: "v-1", Title: "draft", Description: "wip"},
	}
}

// ── Diff ─────────────────────────────────────────────────────────────────────

func TestVersionsService_Diff(t *testing.T) {
	svc := NewVersionsService(nil, nil, nil).(*versionsService)
	versions := testVersions()

	tests := []struct {
		name  string
		index int
		want  models.VersionDiff
	}{
		{name: "title changed against predecessor", index: 0, want: models.VersionDiff{TitleChanged: true}},
		{name: "description changed against predecessor", index: 1, want: models.VersionDiff{DescriptionChanged: true}},
		{name: "oldest version has no predecessor", index: 2, want: models.VersionDiff{}},
		{name: "index out of range", index: 5, want: models.VersionDiff{}},
		{name: "negative index", index: -1, want: models.VersionDiff{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, svc.Diff(versions, test.index))
		})
	}
}

func TestVersionsService_Diff_EmptyDiffMeansNoChanges(t *testing.T) {
	svc := NewVersionsService(nil, nil, nil).(*versionsService)

	diff := svc.Diff(testVersions(), 2)
	assert.True(t, diff.Empty())
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestVersionsService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewVersionsService(mockAdapter, nil, nil)
	ctx := context.Background()

	mockAdapter.EXPECT().ListVersions(ctx, "n-1").Return(testVersions(), nil)

	versions, err := svc.List(ctx, "n-1")
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.True(t, versions[0].IsCurrent)
}

func TestVersionsService_List_NoteNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewVersionsService(mockAdapter, nil, nil)

	mockAdapter.EXPECT().ListVersions(gomock.Any(), "missing").Return(nil, adapter.ErrNotFound)

	_, err := svc.List(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

// ── Revert ───────────────────────────────────────────────────────────────────

func TestVersionsService_Revert_CallsServerAndEmits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	emitter := &recordingEmitter{}
	svc := NewVersionsService(mockAdapter, nil, emitter)
	ctx := context.Background()

	reverted := models.Note{ID: "n-1", Title: "draft", Description: "wip"}

	mockAdapter.EXPECT().RevertNote(ctx, "n-1", "v-1").Return(reverted, nil)

	note, called, err := svc.Revert(ctx, "n-1", testVersions(), "v-1")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, reverted, note)
	assert.Equal(t, []models.NotificationEvent{{
		Action: models.ActionRevert,
		NoteID: "n-1",
		Title:  "draft",
	}}, emitter.events)
}

func TestVersionsService_Revert_CurrentVersionIsLocalNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Адаптер без EXPECT: ни запроса, ни уведомления быть не должно
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	emitter := &recordingEmitter{}
	svc := NewVersionsService(mockAdapter, nil, emitter)

	note, called, err := svc.Revert(context.Background(), "n-1", testVersions(), "v-3")
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, "final", note.Title)
	assert.Equal(t, "done", note.Description)
	assert.Empty(t, emitter.events)
}

func TestVersionsService_Revert_UnknownVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewVersionsService(mockAdapter, nil, nil)
	ctx := context.Background()

	mockAdapter.EXPECT().RevertNote(ctx, "n-1", "v-99").
		Return(models.Note{}, adapter.ErrNotFound)

	_, _, err := svc.Revert(ctx, "n-1", testVersions(), "v-99")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}
