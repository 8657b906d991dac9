// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
)

// detailModel holds the state of the note detail screen. Opening a note
// always re-fetches it by id: the list carries summaries, and a protected
// note arrives locked with the description hidden behind a password prompt
// until the server confirms the note password. The unlocked state lives
// only on this screen; leaving it and coming back locks the note again.
// gen is a generation counter so a slow fetch for a previously opened note
// can never overwrite the one on screen.
type detailModel struct {
	note      models.Note
	loading   bool
	gen       int
	unlocking bool
	password  textinput.Model
	status    string
	errMsg    string
}

func newDetailModel(note models.Note) detailModel {
	password := textinput.New()
	password.Placeholder = "пароль заметки"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	if note.Locked() {
		password.Focus()
	}

	return detailModel{note: note, password: password}
}

func (m detailModel) View() string {
	if m.loading {
		return renderPage("ЗАМЕТКА", titleStyle.Render(m.note.Title)+"\n\nЗагрузка...", "esc: назад")
	}
	if m.note.Locked() {
		return m.viewLocked()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.note.Title))
	b.WriteString("\n\n")
	b.WriteString(orDash(m.note.Description))
	b.WriteString("\n\n")
	if m.note.Owner != nil && m.note.Owner.Name != "" {
		b.WriteString("Автор     : " + m.note.Owner.Name + "\n")
	}
	b.WriteString("Создана   : " + formatTime(m.note.CreatedAt) + "\n")
	b.WriteString("Изменена  : " + formatTime(m.note.UpdatedAt) + "\n")

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage(
		"ЗАМЕТКА",
		strings.TrimRight(b.String(), "\n"),
		"e: изменить │ d: удалить │ c: копировать текст │ h: история │ esc: назад",
	)
}

func (m detailModel) viewLocked() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.note.Title))
	b.WriteString("\n\n")
	b.WriteString("Заметка защищена паролем 🔒\n\n")
	b.WriteString("Пароль  │ [" + m.password.View() + "]\n")

	if m.unlocking {
		b.WriteString("\n[Проверка...]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: " + m.errMsg + "\n")
	}

	return renderPage("ЗАМЕТКА", strings.TrimRight(b.String(), "\n"), "enter: открыть │ esc: назад")
}
