package tui

import (
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
)

type profileSection int

const (
	profileSectionInfo profileSection = iota
	profileSectionPassword
)

// profileModel holds the state of the profile screen: editable name/email
// plus a password change sub-form with old, new, and repeated password.
type profileModel struct {
	user       models.UserProfile
	section    profileSection
	inputs     []textinput.Model
	passwords  []textinput.Model
	focus      int
	submitting bool
	status     string
	errMsg     string
}

func newProfileModel(user models.UserProfile) profileModel {
	name := textinput.New()
	name.Placeholder = "имя"
	name.CharLimit = 128
	name.Width = 40
	name.SetValue(user.Name)
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 256
	email.Width = 40
	email.SetValue(user.Email)

	old := textinput.New()
	old.Placeholder = "текущий пароль"
	old.CharLimit = 256
	old.Width = 40
	old.EchoMode = textinput.EchoPassword
	old.EchoCharacter = '*'

	newPass := textinput.New()
	newPass.Placeholder = "новый пароль"
	newPass.CharLimit = 256
	newPass.Width = 40
	newPass.EchoMode = textinput.EchoPassword
	newPass.EchoCharacter = '*'

	repeat := textinput.New()
	repeat.Placeholder = "повтор нового пароля"
	repeat.CharLimit = 256
	repeat.Width = 40
	repeat.EchoMode = textinput.EchoPassword
	repeat.EchoCharacter = '*'

	return profileModel{
		user:      user,
		inputs:    []textinput.Model{name, email},
		passwords: []textinput.Model{old, newPass, repeat},
	}
}

func (m profileModel) View() string {
	var b strings.Builder

	b.WriteString("[ ПРОФИЛЬ ]\n")
	b.WriteString("Имя       │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("Email     │ [" + m.inputs[1].View() + "]\n")
	b.WriteString("Создан    │ " + formatTime(m.user.CreatedAt) + "\n\n")

	b.WriteString("[ СМЕНА ПАРОЛЯ ]\n")
	b.WriteString("Текущий   │ [" + m.passwords[0].View() + "]\n")
	b.WriteString("Новый     │ [" + m.passwords[1].View() + "]\n")
	b.WriteString("Повтор    │ [" + m.passwords[2].View() + "]\n")

	if m.submitting {
		b.WriteString("\n[Сохранение...]\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: " + m.errMsg + "\n")
	}

	return renderPage(
		"ПРОФИЛЬ",
		strings.TrimRight(b.String(), "\n"),
		"tab: след. поле │ enter: сохранить раздел │ esc: назад",
	)
}
