package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marco/popcorn/internal/state"
	"github.com/marco/popcorn/internal/watched"
)

func (m *Model) View() string {
	nav := m.navBar()

	left := m.box(focusResults, m.showResults, m.resultsView())
	right := m.box(m.rightFocus(), m.showRight, m.rightView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, nav, body, m.statusBar())
}

func (m *Model) navBar() string {
	logo := LogoStyle.Render("🍿 usePopcorn")
	found := fmt.Sprintf("Found %d results", len(m.app.Search.Movies()))

	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		logo, "  ", m.input.View(), "  ", TitleStyle.Render(found))
	return NavStyle.Width(m.width).Render(bar)
}

func (m *Model) rightFocus() focus {
	if m.app.Panel() == state.PanelDetail {
		return focusDetail
	}
	return focusWatched
}

func (m *Model) box(f focus, open bool, content string) string {
	style := BoxStyle
	if m.focus == f {
		style = FocusedBoxStyle
	}
	if m.width > 0 {
		style = style.Width(m.panelWidth() - 2)
	}

	toggle := "[–]"
	if !open {
		toggle = "[+]"
		return style.Render(MutedStyle.Render(toggle))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, MutedStyle.Render(toggle), content))
}

func (m *Model) resultsView() string {
	switch {
	case m.app.Search.Loading():
		return m.loader()
	case m.app.Search.ErrorMessage() != "":
		return errorView(m.app.Search.ErrorMessage())
	case len(m.app.Search.Movies()) == 0:
		return MutedStyle.Render("Search for a movie to get started")
	default:
		return m.results.View()
	}
}

func (m *Model) rightView() string {
	if m.app.Panel() == state.PanelDetail {
		return m.detailView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, summaryView(m.app.Watched.Summary()), "", m.watchedListView())
}

func (m *Model) watchedListView() string {
	if m.app.Watched.Len() == 0 {
		return MutedStyle.Render("Rate a movie to add it here")
	}
	return m.watchedList.View()
}

func (m *Model) detailView() string {
	sel := m.app.Selection
	switch sel.Phase() {
	case state.DetailLoading:
		return m.loader()
	case state.DetailError:
		return errorView(sel.ErrorMessage())
	}

	d := sel.Detail()
	var b strings.Builder

	b.WriteString(TitleStyle.Render(d.Title) + "\n")
	b.WriteString(MutedStyle.Render(fmt.Sprintf("%s · %s", d.Released, d.Runtime)) + "\n")
	b.WriteString(MutedStyle.Render(d.Genre) + "\n")
	b.WriteString(fmt.Sprintf("%s %s IMDb rating\n\n", StarStyle.Render("⭐"), d.ImdbRating))

	if e, rated := m.app.SelectedWatched(); rated {
		b.WriteString(fmt.Sprintf("You rated this movie %s %s\n", formatRating(e.UserRating), StarStyle.Render("⭐")))
	} else {
		b.WriteString(m.starRating() + "\n")
		if m.rating > 0 {
			b.WriteString(TitleStyle.Render("[a] + Add to list") + "\n")
		}
	}

	b.WriteString("\n" + PlotStyle.Render(d.Plot) + "\n")
	b.WriteString(fmt.Sprintf("Starring %s\n", d.Actors))
	b.WriteString(fmt.Sprintf("Directed by %s", d.Director))

	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.panelWidth() - 6).Render(b.String())
	}
	return b.String()
}

func (m *Model) starRating() string {
	top := m.app.MaxRating()
	stars := strings.Repeat("★", m.rating) + strings.Repeat("☆", top-m.rating)
	label := ""
	if m.rating > 0 {
		label = fmt.Sprintf(" %d", m.rating)
	}
	return StarStyle.Render(stars) + label
}

func summaryView(s watched.Summary) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("MOVIES YOU WATCHED"),
		fmt.Sprintf("#️⃣ %d movies  ⭐️ %.2f  🌟 %.2f  ⏳ %.0f min",
			s.Count, s.AvgImdbRating, s.AvgUserRating, s.AvgRuntime),
	)
}

func (m *Model) loader() string {
	return m.spinner.View() + " Loading..."
}

func errorView(msg string) string {
	return ErrorStyle.Render("⛔️ " + msg)
}

func (m *Model) statusBar() string {
	if m.status != "" {
		return HelpStyle.Render(ErrorStyle.Render("✗ " + m.status))
	}

	var commands []string
	switch m.focus {
	case focusSearch:
		commands = []string{"Type to search", "Enter/↓: results", "Tab: next panel", "Ctrl+C: quit"}
	case focusResults:
		commands = []string{"↑↓: navigate", "Enter: details", "/: search", "[ ]: collapse", "Ctrl+C: quit"}
	case focusDetail:
		commands = []string{fmt.Sprintf("1-%d/+/-: rate", m.app.MaxRating()), "a: add to list", "Esc: back", "Ctrl+C: quit"}
	case focusWatched:
		commands = []string{"↑↓: navigate", "d: remove", "/: search", "[ ]: collapse", "Ctrl+C: quit"}
	}
	return HelpStyle.Render(strings.Join(commands, " • "))
}
