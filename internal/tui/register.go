package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// registerModel holds the state of the registration screen. The password is
// typed twice; the match check happens locally before the server call.
type registerModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newRegisterModel() registerModel {
	name := textinput.New()
	name.Placeholder = "имя"
	name.CharLimit = 128
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 256
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "пароль"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	repeat := textinput.New()
	repeat.Placeholder = "повтор пароля"
	repeat.CharLimit = 256
	repeat.Width = 40
	repeat.EchoMode = textinput.EchoPassword
	repeat.EchoCharacter = '*'

	return registerModel{inputs: []textinput.Model{name, email, password, repeat}}
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString("Поле      │ Значение\n")
	b.WriteString("──────────┼──────────────────────────────────────────\n")
	b.WriteString("Имя       │ [" + m.inputs[0].View() + "]\n")
	b.WriteString("Email     │ [" + m.inputs[1].View() + "]\n")
	b.WriteString("Пароль    │ [" + m.inputs[2].View() + "]\n")
	b.WriteString("Повтор    │ [" + m.inputs[3].View() + "]\n")

	if m.submitting {
		b.WriteString("\n[Зарегистрироваться...]\n")
	} else {
		b.WriteString("\n[Зарегистрироваться]\n")
	}

	return renderPage("РЕГИСТРАЦИЯ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}
