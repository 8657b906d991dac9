package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/charmbracelet/bubbles/spinner"
)

// listModel holds the state of the notes list screen. gen is a generation
// counter: every reload bumps it, and responses tagged with an older value
// are dropped so a slow request can never overwrite a newer one.
type listModel struct {
	notes   []models.Note
	idx     int
	loading bool
	gen     int
	spinner spinner.Model
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{spinner: s, loading: true}
}

func (m listModel) current() (models.Note, bool) {
	if len(m.notes) == 0 || m.idx < 0 || m.idx >= len(m.notes) {
		return models.Note{}, false
	}
	return m.notes[m.idx], true
}

func noteIcon(note models.Note) string {
	if note.Locked() {
		return "[🔒]"
	}
	if note.IsProtected {
		return "[🔓]"
	}
	return "[  ]"
}

func (m listModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Загрузка...\n")
		return renderPage("ЗАМЕТКИ", strings.TrimRight(b.String(), "\n"), "")
	}

	if len(m.notes) == 0 {
		b.WriteString("Заметок нет\n")
	} else {
		b.WriteString("     │ Название                 │ Изменена\n")
		b.WriteString("─────┼──────────────────────────┼──────────────────\n")
		for i, note := range m.notes {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf(
				"%s %s│ %-24s │ %s\n",
				cursor,
				noteIcon(note),
				fitText(note.Title, 24),
				formatTime(note.UpdatedAt),
			))
		}
	}

	return renderPage(
		"ЗАМЕТКИ",
		strings.TrimRight(b.String(), "\n"),
		"n: новая │ enter: открыть │ e: изм. │ d: удалить │ h: история │ r: обновить │ p: профиль │ l: выход из акк.",
	)
}
