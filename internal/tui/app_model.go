// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type screen int

const (
	screenLoading screen = iota
	screenWelcome
	screenLogin
	screenRegister
	screenList
	screenDetail
	screenForm
	screenVersions
	screenProfile
)

type appModel struct {
	ctx      context.Context
	services *service.ClientServices

	currentScreen screen

	welcome  welcomeModel
	login    loginModel
	register registerModel
	list     listModel
	detail   detailModel
	form     formNoteModel
	versions versionsModel
	profile  profileModel

	user  models.UserProfile
	toast string

	showError    bool
	errorOverlay errorOverlayModel
	showConfirm  bool
	confirm      confirmModel

	pendingDelete string
	pendingRevert string
	editAfterLoad bool

	err error
}

func newAppModel(ctx context.Context, services *service.ClientServices) appModel {
	return appModel{
		ctx:           ctx,
		services:      services,
		currentScreen: screenLoading,
		welcome:       newWelcomeModel(),
		login:         newLoginModel(),
		register:      newRegisterModel(),
		list:          newListModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.cmdBootstrap()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bootstrapDoneMsg:
		if msg.snap.Authenticated() {
			m.user = msg.snap.User
			m.currentScreen = screenList
			m.list = newListModel()
			m.list.gen++
			return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadNotes(m.list.gen))
		}
		m.currentScreen = screenWelcome
		return m, nil

	case authDoneMsg:
		m.login.submitting = false
		m.register.submitting = false
		if msg.err != nil {
			m.showErrorf(service.UserMessage(msg.err))
			return m, nil
		}
		m.user = m.services.SessionService.Snapshot().User
		m.currentScreen = screenList
		m.list = newListModel()
		m.list.gen++
		return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadNotes(m.list.gen))

	case logoutDoneMsg:
		m.user = models.UserProfile{}
		m.welcome = newWelcomeModel()
		m.login = newLoginModel()
		m.register = newRegisterModel()
		m.currentScreen = screenWelcome
		return m, nil

	case notesLoadedMsg:
		if msg.gen != m.list.gen {
			return m, nil
		}
		m.list.loading = false
		if msg.err != nil {
			return m.handleOpError(msg.err)
		}
		m.list.notes = msg.notes
		if m.list.idx >= len(m.list.notes) {
			m.list.idx = len(m.list.notes) - 1
		}
		if m.list.idx < 0 {
			m.list.idx = 0
		}
		return m, nil

	case noteLoadedMsg:
		if msg.gen != m.detail.gen {
			return m, nil
		}
		m.detail.loading = false
		if msg.err != nil {
			m.editAfterLoad = false
			return m.handleOpError(msg.err)
		}
		if m.editAfterLoad && !msg.note.Locked() {
			m.editAfterLoad = false
			note := msg.note
			m.form = newFormNoteModel(&note)
			m.currentScreen = screenForm
			return m, nil
		}
		// A locked note must be unlocked before it can be edited.
		m.editAfterLoad = false
		gen := m.detail.gen
		m.detail = newDetailModel(msg.note)
		m.detail.gen = gen
		return m, nil

	case noteSavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrEmptyNotePassword) {
				m.form.errMsg = service.UserMessage(msg.err)
				return m, nil
			}
			return m.handleOpError(msg.err)
		}
		m.currentScreen = screenList
		m.toast = "Заметка сохранена"
		return m, tea.Batch(m.reloadNotes(), cmdClearToast())

	case noteDeletedMsg:
		m.pendingDelete = ""
		if msg.err != nil {
			return m.handleOpError(msg.err)
		}
		m.currentScreen = screenList
		m.toast = "Заметка удалена"
		return m, tea.Batch(m.reloadNotes(), cmdClearToast())

	case unlockDoneMsg:
		m.detail.unlocking = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrWrongNotePassword) || errors.Is(msg.err, service.ErrEmptyNotePassword) {
				m.detail.errMsg = service.UserMessage(msg.err)
				m.detail.password.SetValue("")
				return m, nil
			}
			return m.handleOpError(msg.err)
		}
		m.detail.note = msg.note
		m.detail.errMsg = ""
		return m, nil

	case versionsLoadedMsg:
		if msg.gen != m.versions.gen {
			return m, nil
		}
		m.versions.loading = false
		if msg.err != nil {
			return m.handleOpError(msg.err)
		}
		m.versions.versions = msg.versions
		m.versions.diffs = make([]models.VersionDiff, len(msg.versions))
		for i := range msg.versions {
			m.versions.diffs[i] = m.services.VersionsService.Diff(msg.versions, i)
		}
		return m, nil

	case revertDoneMsg:
		m.pendingRevert = ""
		if msg.err != nil {
			return m.handleOpError(msg.err)
		}
		if !msg.reverted {
			m.versions.status = "Уже текущая версия"
			return m, nil
		}
		gen := m.detail.gen + 1
		m.detail = newDetailModel(msg.note)
		m.detail.gen = gen
		m.currentScreen = screenDetail
		m.toast = "Заметка восстановлена"
		return m, tea.Batch(m.reloadNotes(), cmdClearToast())

	case profileSavedMsg:
		m.profile.submitting = false
		if msg.err != nil {
			return m.handleOpError(msg.err)
		}
		m.user = msg.user
		m.profile.user = msg.user
		m.profile.status = "Профиль обновлён"
		m.profile.errMsg = ""
		return m, nil

	case passwordChangedMsg:
		m.profile.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrInvalidCredentials) {
				m.profile.errMsg = "Текущий пароль неверен"
				return m, nil
			}
			return m.handleOpError(msg.err)
		}
		for i := range m.profile.passwords {
			m.profile.passwords[i].SetValue("")
		}
		m.profile.status = "Пароль изменён"
		m.profile.errMsg = ""
		return m, nil

	case toastMsg:
		m.toast = msg.text
		return m, cmdClearToast()

	case clearToastMsg:
		m.toast = ""
		m.detail.status = ""
		m.versions.status = ""
		return m, nil

	case copiedMsg:
		m.toast = "Скопировано"
		return m, cmdClearToast()

	case spinner.TickMsg:
		if m.list.loading {
			var cmd tea.Cmd
			m.list.spinner, cmd = m.list.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.err = ErrUserQuit
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			return m.updateConfirm(msg)
		}
	}

	switch m.currentScreen {
	case screenLoading:
		return m, nil
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenVersions:
		return m.updateVersions(msg)
	case screenProfile:
		return m.updateProfile(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenLoading:
		body = "Подключение...\n"
	case screenWelcome:
		body = m.welcome.View()
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenList:
		body = m.list.View()
	case screenDetail:
		body = m.detail.View()
	case screenForm:
		body = m.form.View()
	case screenVersions:
		body = m.versions.View()
	case screenProfile:
		body = m.profile.View()
	}

	if m.toast != "" {
		body += "\n\n" + toastStyle.Render("● "+m.toast)
	}
	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// handleOpError routes an operation failure either to the blocking error
// overlay or, on session expiry, back to the welcome screen.
func (m appModel) handleOpError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, service.ErrSessionExpired) {
		m.user = models.UserProfile{}
		m.welcome = newWelcomeModel()
		m.welcome.status = "Сессия истекла, войдите снова"
		m.login = newLoginModel()
		m.register = newRegisterModel()
		m.currentScreen = screenWelcome
		return m, nil
	}

	m.showErrorf(service.UserMessage(err))
	return m, nil
}

func (m *appModel) reloadNotes() tea.Cmd {
	m.list.loading = true
	m.list.gen++
	return tea.Batch(m.list.spinner.Tick, m.cmdLoadNotes(m.list.gen))
}

// ── screen updates ───────────────────────────────────────────────────────────

func (m appModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.showConfirm = false
		if m.pendingDelete != "" {
			noteID := m.pendingDelete
			return m, m.cmdDelete(noteID)
		}
		if m.pendingRevert != "" {
			return m, m.cmdRevert(m.versions.noteID, m.versions.versions, m.pendingRevert)
		}
		return m, nil
	case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
		m.showConfirm = false
		m.pendingDelete = ""
		m.pendingRevert = ""
	}
	return m, nil
}

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.welcome.idx == 0 {
			m.login = newLoginModel()
			m.currentScreen = screenLogin
		} else {
			m.register = newRegisterModel()
			m.currentScreen = screenRegister
		}
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login.focus = cycleFocus(m.login.inputs, m.login.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login.focus = cycleFocus(m.login.inputs, m.login.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			email := strings.TrimSpace(m.login.inputs[0].Value())
			pass := m.login.inputs[1].Value()
			if email == "" || pass == "" {
				m.showErrorf("Email и пароль обязательны")
				return m, nil
			}
			m.login.submitting = true
			return m, m.cmdLogin(models.LoginRequest{Email: email, Password: pass})
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.register.focus = cycleFocus(m.register.inputs, m.register.focus, 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register.focus = cycleFocus(m.register.inputs, m.register.focus, -1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting {
				return m, nil
			}
			name := strings.TrimSpace(m.register.inputs[0].Value())
			email := strings.TrimSpace(m.register.inputs[1].Value())
			pass := m.register.inputs[2].Value()
			repeat := m.register.inputs[3].Value()
			if name == "" || email == "" || pass == "" {
				m.showErrorf("Имя, email и пароль обязательны")
				return m, nil
			}
			if pass != repeat {
				m.showErrorf("Пароли не совпадают")
				return m, nil
			}
			m.register.submitting = true
			return m, m.cmdRegister(models.RegisterRequest{Name: name, Email: email, Password: pass})
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.notes)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		note, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.editAfterLoad = false
		return m.openDetail(note)
	case key.Matches(keyMsg, keys.newNote):
		m.form = newFormNoteModel(nil)
		m.currentScreen = screenForm
	case key.Matches(keyMsg, keys.edit):
		note, ok := m.list.current()
		if !ok {
			return m, nil
		}
		// The list carries summaries; fetch the full note before the form.
		m.editAfterLoad = true
		return m.openDetail(note)
	case key.Matches(keyMsg, keys.delete):
		note, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = "Удалить \"" + note.Title + "\"?"
		m.pendingDelete = note.ID
	case key.Matches(keyMsg, keys.history):
		note, ok := m.list.current()
		if !ok {
			return m, nil
		}
		return m.openVersions(note.ID)
	case key.Matches(keyMsg, keys.refresh):
		return m, m.reloadNotes()
	case key.Matches(keyMsg, keys.profile):
		m.profile = newProfileModel(m.user)
		m.currentScreen = screenProfile
	case key.Matches(keyMsg, keys.logout):
		return m, m.cmdLogout()
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

// openDetail switches to the detail screen and re-fetches the note by id:
// list entries are summaries, and a fresh fetch is what re-locks a
// protected note.
func (m appModel) openDetail(summary models.Note) (tea.Model, tea.Cmd) {
	gen := m.detail.gen + 1
	m.detail = newDetailModel(summary)
	m.detail.gen = gen
	m.detail.loading = true
	m.currentScreen = screenDetail
	return m, m.cmdGetNote(summary.ID, gen)
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.detail.loading {
		if key.Matches(keyMsg, keys.esc) {
			m.editAfterLoad = false
			m.currentScreen = screenList
		}
		return m, nil
	}

	if m.detail.note.Locked() {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.detail.unlocking {
				return m, nil
			}
			password := m.detail.password.Value()
			if strings.TrimSpace(password) == "" {
				m.detail.errMsg = "Введите пароль"
				return m, nil
			}
			m.detail.unlocking = true
			m.detail.errMsg = ""
			return m, m.cmdUnlock(m.detail.note.ID, password)
		}

		var cmd tea.Cmd
		m.detail.password, cmd = m.detail.password.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
	case key.Matches(keyMsg, keys.edit):
		note := m.detail.note
		m.form = newFormNoteModel(&note)
		m.currentScreen = screenForm
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.confirm.message = "Удалить \"" + m.detail.note.Title + "\"?"
		m.pendingDelete = m.detail.note.ID
	case key.Matches(keyMsg, keys.copy):
		if m.detail.note.Description == "" {
			m.detail.status = "Нечего копировать"
			return m, cmdClearToast()
		}
		return m, cmdCopyToClipboard(m.detail.note.Description)
	case key.Matches(keyMsg, keys.history):
		return m.openVersions(m.detail.note.ID)
	}

	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.formFocusMove(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.formFocusMove(-1)
			return m, nil
		}

		switch keyMsg.String() {
		case " ":
			if m.form.focus == formFocusProtected {
				m.form.protected = !m.form.protected
				return m, nil
			}
		case "ctrl+s":
			return m.submitForm()
		}
	}

	return m.routeFormInput(msg)
}

func (m appModel) routeFormInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.form.focus {
	case formFocusTitle:
		m.form.title, cmd = m.form.title.Update(msg)
	case formFocusBody:
		m.form.body, cmd = m.form.body.Update(msg)
	case formFocusPassword:
		m.form.password, cmd = m.form.password.Update(msg)
	}
	return m, cmd
}

// formFocusMove shifts the form focus, skipping the password field while
// protection is off.
func (m *appModel) formFocusMove(delta int) {
	m.form.title.Blur()
	m.form.body.Blur()
	m.form.password.Blur()

	for {
		m.form.focus = (m.form.focus + delta + formFocusCount) % formFocusCount
		if m.form.focus != formFocusPassword || m.form.protected {
			break
		}
	}

	switch m.form.focus {
	case formFocusTitle:
		m.form.title.Focus()
	case formFocusBody:
		m.form.body.Focus()
	case formFocusPassword:
		m.form.password.Focus()
	}
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}

	title := strings.TrimSpace(m.form.title.Value())
	if title == "" {
		m.form.errMsg = "Название обязательно"
		return m, nil
	}
	if m.form.protected && strings.TrimSpace(m.form.password.Value()) == "" && !m.form.editing {
		m.form.errMsg = "Для защищённой заметки нужен пароль"
		return m, nil
	}

	m.form.errMsg = ""
	m.form.submitting = true

	description := m.form.body.Value()
	if m.form.editing {
		req := models.UpdateNoteRequest{
			Title:       &title,
			Description: &description,
			IsProtected: &m.form.protected,
		}
		if m.form.protected {
			if password := m.form.password.Value(); strings.TrimSpace(password) != "" {
				req.Password = &password
			}
		}
		return m, m.cmdUpdate(m.form.noteID, req)
	}

	req := models.CreateNoteRequest{
		Title:       title,
		Description: description,
		IsProtected: m.form.protected,
		Password:    m.form.password.Value(),
	}
	return m, m.cmdCreate(req)
}

func (m appModel) openVersions(noteID string) (tea.Model, tea.Cmd) {
	m.versions = newVersionsModel(noteID)
	m.versions.gen++
	m.currentScreen = screenVersions
	return m, m.cmdLoadVersions(noteID, m.versions.gen)
}

func (m appModel) updateVersions(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenList
	case key.Matches(keyMsg, keys.up):
		if m.versions.idx > 0 {
			m.versions.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.versions.idx < len(m.versions.versions)-1 {
			m.versions.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		version, ok := m.versions.current()
		if !ok {
			return m, nil
		}
		if version.IsCurrent {
			m.versions.status = "Уже текущая версия"
			return m, cmdClearToast()
		}
		m.showConfirm = true
		m.confirm.message = fmt.Sprintf("Восстановить версию от %s?", formatTime(version.CreatedAt))
		m.pendingRevert = version.ID
	}

	return m, nil
}

func (m appModel) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.profileFocusMove(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.profileFocusMove(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.profile.submitting {
				return m, nil
			}
			if m.profile.section == profileSectionInfo {
				return m.submitProfileInfo()
			}
			return m.submitPasswordChange()
		}
	}

	var cmd tea.Cmd
	if m.profile.section == profileSectionInfo {
		m.profile.inputs[m.profile.focus], cmd = m.profile.inputs[m.profile.focus].Update(msg)
	} else {
		m.profile.passwords[m.profile.focus], cmd = m.profile.passwords[m.profile.focus].Update(msg)
	}
	return m, cmd
}

// profileFocusMove walks through the info inputs first, then the password
// inputs, switching the active section at the boundary.
func (m *appModel) profileFocusMove(delta int) {
	for i := range m.profile.inputs {
		m.profile.inputs[i].Blur()
	}
	for i := range m.profile.passwords {
		m.profile.passwords[i].Blur()
	}

	total := len(m.profile.inputs) + len(m.profile.passwords)
	pos := m.profile.focus
	if m.profile.section == profileSectionPassword {
		pos += len(m.profile.inputs)
	}
	pos = (pos + delta + total) % total

	if pos < len(m.profile.inputs) {
		m.profile.section = profileSectionInfo
		m.profile.focus = pos
		m.profile.inputs[pos].Focus()
	} else {
		m.profile.section = profileSectionPassword
		m.profile.focus = pos - len(m.profile.inputs)
		m.profile.passwords[m.profile.focus].Focus()
	}
}

func (m appModel) submitProfileInfo() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.profile.inputs[0].Value())
	email := strings.TrimSpace(m.profile.inputs[1].Value())
	if name == "" || email == "" {
		m.profile.errMsg = "Имя и email обязательны"
		return m, nil
	}

	req := models.UpdateProfileRequest{}
	if name != m.user.Name {
		req.Name = &name
	}
	if email != m.user.Email {
		req.Email = &email
	}
	if req.Name == nil && req.Email == nil {
		m.profile.status = "Нет изменений"
		return m, nil
	}

	m.profile.errMsg = ""
	m.profile.submitting = true
	return m, m.cmdSaveProfile(req)
}

func (m appModel) submitPasswordChange() (tea.Model, tea.Cmd) {
	old := m.profile.passwords[0].Value()
	newPass := m.profile.passwords[1].Value()
	repeat := m.profile.passwords[2].Value()

	if old == "" || newPass == "" {
		m.profile.errMsg = "Заполните оба пароля"
		return m, nil
	}
	if newPass != repeat {
		m.profile.errMsg = "Новые пароли не совпадают"
		return m, nil
	}

	m.profile.errMsg = ""
	m.profile.submitting = true
	return m, m.cmdChangePassword(models.ChangePasswordRequest{OldPassword: old, NewPassword: newPass})
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m appModel) cmdBootstrap() tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService
	return func() tea.Msg {
		session.Bootstrap(ctx)
		return bootstrapDoneMsg{snap: session.Snapshot()}
	}
}

func (m appModel) cmdLogin(req models.LoginRequest) tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService
	return func() tea.Msg {
		return authDoneMsg{err: session.Login(ctx, req)}
	}
}

func (m appModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService
	return func() tea.Msg {
		return authDoneMsg{err: session.Register(ctx, req)}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService
	return func() tea.Msg {
		_ = session.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func (m appModel) cmdLoadNotes(gen int) tea.Cmd {
	ctx := m.ctx
	notes := m.services.NotesService
	return func() tea.Msg {
		loaded, err := notes.List(ctx)
		return notesLoadedMsg{gen: gen, notes: loaded, err: err}
	}
}

func (m appModel) cmdGetNote(noteID string, gen int) tea.Cmd {
	ctx := m.ctx
	notes := m.services.NotesService
	return func() tea.Msg {
		note, err := notes.Get(ctx, noteID)
		return noteLoadedMsg{gen: gen, note: note, err: err}
	}
}

func (m appModel) cmdCreate(req models.CreateNoteRequest) tea.Cmd {
	ctx := m.ctx
	notes := m.services.NotesService
	return func() tea.Msg {
		note, err := notes.Create(ctx, req)
		return noteSavedMsg{note: note, err: err}
	}
}

func (m appModel) cmdUpdate(noteID string, req models.UpdateNoteRequest) tea.Cmd {
	ctx := m.ctx
	notes := m.services.NotesService
	return func() tea.Msg {
		note, err := notes.Update(ctx, noteID, req)
		return noteSavedMsg{note: note, err: err}
	}
}

func (m appModel) cmdDelete(noteID string) tea.Cmd {
	ctx := m.ctx
	notes := m.services.NotesService
	return func() tea.Msg {
		return noteDeletedMsg{err: notes.Delete(ctx, noteID)}
	}
}

func (m appModel) cmdUnlock(noteID, password string) tea.Cmd {
	ctx := m.ctx
	notes := m.services.NotesService
	return func() tea.Msg {
		note, err := notes.Unlock(ctx, noteID, password)
		return unlockDoneMsg{note: note, err: err}
	}
}

func (m appModel) cmdLoadVersions(noteID string, gen int) tea.Cmd {
	ctx := m.ctx
	versions := m.services.VersionsService
	return func() tea.Msg {
		loaded, err := versions.List(ctx, noteID)
		return versionsLoadedMsg{gen: gen, versions: loaded, err: err}
	}
}

func (m appModel) cmdRevert(noteID string, versions []models.NoteVersion, versionID string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.VersionsService
	return func() tea.Msg {
		note, reverted, err := svc.Revert(ctx, noteID, versions, versionID)
		return revertDoneMsg{note: note, reverted: reverted, err: err}
	}
}

func (m appModel) cmdSaveProfile(req models.UpdateProfileRequest) tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService
	return func() tea.Msg {
		user, err := session.UpdateProfile(ctx, req)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m appModel) cmdChangePassword(req models.ChangePasswordRequest) tea.Cmd {
	ctx := m.ctx
	session := m.services.SessionService
	return func() tea.Msg {
		return passwordChangedMsg{err: session.ChangePassword(ctx, req)}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return toastMsg{text: "Ошибка копирования: " + err.Error()}
		}
		return copiedMsg{}
	}
}

func cmdClearToast() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

// cycleFocus moves focus between text inputs, wrapping at both ends.
func cycleFocus(inputs []textinput.Model, focus, delta int) int {
	inputs[focus].Blur()
	focus = (focus + delta + len(inputs)) % len(inputs)
	inputs[focus].Focus()
	return focus
}
