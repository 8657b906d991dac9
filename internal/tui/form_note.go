package tui

import (
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

// formNoteModel holds the state of the create/edit note form. The same form
// serves both flows; editing pre-fills the fields from the existing note.
// The password field only matters while the protection checkbox is on.
type formNoteModel struct {
	editing    bool
	noteID     string
	title      textinput.Model
	body       textarea.Model
	protected  bool
	password   textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

const (
	formFocusTitle = iota
	formFocusBody
	formFocusProtected
	formFocusPassword
	formFocusCount
)

func newFormNoteModel(note *models.Note) formNoteModel {
	title := textinput.New()
	title.Placeholder = "название"
	title.CharLimit = 256
	title.Width = 40
	title.Focus()

	body := textarea.New()
	body.Placeholder = "текст заметки"
	body.SetWidth(54)
	body.SetHeight(6)

	password := textinput.New()
	password.Placeholder = "пароль заметки"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	m := formNoteModel{title: title, body: body, password: password}
	if note != nil {
		m.editing = true
		m.noteID = note.ID
		m.title.SetValue(note.Title)
		m.body.SetValue(note.Description)
		m.protected = note.IsProtected
	}
	return m
}

func (m formNoteModel) checkbox() string {
	if m.protected {
		return "[x]"
	}
	return "[ ]"
}

func (m formNoteModel) View() string {
	var b strings.Builder

	b.WriteString("Название  │ [" + m.title.View() + "]\n\n")
	b.WriteString("Текст:\n")
	b.WriteString(m.body.View() + "\n\n")
	b.WriteString("Защита    │ " + m.checkbox() + " пароль на заметку (пробел: переключить)\n")
	if m.protected {
		b.WriteString("Пароль    │ [" + m.password.View() + "]\n")
	}

	if m.submitting {
		b.WriteString("\n[Сохранение...]\n")
	} else {
		b.WriteString("\n[ctrl+s: сохранить]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: " + m.errMsg + "\n")
	}

	title := "НОВАЯ ЗАМЕТКА"
	if m.editing {
		title = "ИЗМЕНЕНИЕ ЗАМЕТКИ"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "tab: след. поле │ ctrl+s: сохранить │ esc: отмена")
}
