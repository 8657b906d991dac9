// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal interface of the note keeper client.
// A single bubbletea program drives every screen; the session state decides
// which screen is shown.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services *service.ClientServices
	logger   *logger.Logger

	mu      sync.Mutex
	program *tea.Program
}

func New(services *service.ClientServices, logger *logger.Logger) *TUI {
	return &TUI{services: services, logger: logger}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	program := tea.NewProgram(
		newAppModel(ctx, t.services),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	t.mu.Lock()
	t.program = program
	t.mu.Unlock()

	final, err := program.Run()

	t.mu.Lock()
	t.program = nil
	t.mu.Unlock()

	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("terminal ui: %w", err)
	}

	if m, ok := final.(appModel); ok && m.err != nil {
		t.logger.Debug().Err(m.err).Msg("tui finished")
	}

	return nil
}

// PushToast shows a transient notification line. Safe to call from any
// goroutine; a no-op while the program is not running.
func (t *TUI) PushToast(text string) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(toastMsg{text: text})
	}
}
