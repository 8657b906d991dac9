// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
)

// versionsModel holds the state of the version history screen. Versions come
// from the server newest first; each entry is annotated with what changed
// relative to its predecessor.
type versionsModel struct {
	noteID   string
	versions []models.NoteVersion
	diffs    []models.VersionDiff
	idx      int
	loading  bool
	gen      int
	status   string
}

func newVersionsModel(noteID string) versionsModel {
	return versionsModel{noteID: noteID, loading: true}
}

func (m versionsModel) current() (models.NoteVersion, bool) {
	if len(m.versions) == 0 || m.idx < 0 || m.idx >= len(m.versions) {
		return models.NoteVersion{}, false
	}
	return m.versions[m.idx], true
}

func diffLabel(diff models.VersionDiff) string {
	switch {
	case diff.TitleChanged && diff.DescriptionChanged:
		return "название, текст"
	case diff.TitleChanged:
		return "название"
	case diff.DescriptionChanged:
		return "текст"
	default:
		return "-"
	}
}

func (m versionsModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Загрузка истории...\n")
		return renderPage("ИСТОРИЯ ВЕРСИЙ", strings.TrimRight(b.String(), "\n"), "esc: назад")
	}

	if len(m.versions) == 0 {
		b.WriteString("История пуста\n")
	} else {
		b.WriteString("     │ Название                 │ Изменено         │ Дата\n")
		b.WriteString("─────┼──────────────────────────┼──────────────────┼──────────────────\n")
		for i, version := range m.versions {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			marker := "   "
			if version.IsCurrent {
				marker = "(т)"
			}

			changed := "-"
			if i < len(m.diffs) {
				changed = diffLabel(m.diffs[i])
			}

			b.WriteString(fmt.Sprintf(
				"%s %s │ %-24s │ %-16s │ %s\n",
				cursor,
				marker,
				fitText(version.Title, 24),
				fitText(changed, 16),
				formatTime(version.CreatedAt),
			))
		}
		b.WriteString("\n(т) — текущая версия\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage(
		"ИСТОРИЯ ВЕРСИЙ",
		strings.TrimRight(b.String(), "\n"),
		"enter: восстановить │ ↑/↓: навигация │ esc: назад",
	)
}
