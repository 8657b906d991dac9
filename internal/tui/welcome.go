package tui

type welcomeModel struct {
	items  []string
	idx    int
	status string
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{items: []string{"Войти", "Зарегистрироваться"}}
}

func (m welcomeModel) View() string {
	out := "GoNoteKeeper\n\nВыберите действие:\n\n"
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		out += cursor + item + "\n"
	}
	if m.status != "" {
		out += "\n" + m.status + "\n"
	}
	out += "\nq выход"
	return out
}
