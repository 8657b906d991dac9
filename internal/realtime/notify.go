package realtime

import (
	"fmt"

	"github.com/MKhiriev/go-note-keeper/models"
)

// toastTemplates maps a note action to the toast text shown to other users.
// The note title is substituted into the %s verb.
var toastTemplates = map[models.NoteAction]string{
	models.ActionCreate: `Создана заметка "%s"`,
	models.ActionUpdate: `Изменена заметка "%s"`,
	models.ActionDelete: `Удалена заметка "%s"`,
	models.ActionRevert: `Восстановлена заметка "%s"`,
}

const toastFallback = "Заметки изменились"

// Toast is a short transient message derived from a notification event.
type Toast struct {
	Text string
}

// Decide turns an inbound notification into a toast, or reports that no
// toast should be shown. Events authored by currentUserID are suppressed:
// the author already sees the result of their own change.
func Decide(event models.NotificationEvent, currentUserID string) (Toast, bool) {
	if event.UserID != "" && event.UserID == currentUserID {
		return Toast{}, false
	}

	template, ok := toastTemplates[event.Action]
	if !ok {
		return Toast{Text: toastFallback}, true
	}

	return Toast{Text: fmt.Sprintf(template, event.Title)}, true
}
