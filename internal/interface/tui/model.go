package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"jumpstat/internal/core/aggregate"
)

type viewMode int

const (
	tagsView viewMode = iota
	sessionsView
)

const chromeHeight = 5 // header + summary + filter/blank + footer

// Model is an interactive browser over one dataset: its tag counts
// and its sessions.
type Model struct {
	ds     *aggregate.Dataset
	mode   viewMode
	width  int
	height int
	status string
	ready  bool

	// Tags view
	list list.Model

	// Sessions view
	sessions []sessionRow
	filtered []sessionRow
	filter   textinput.Model
	cursor   int
}

// NewModel builds the browser for an already loaded dataset.
func NewModel(ds *aggregate.Dataset) Model {
	filter := textinput.New()
	filter.Placeholder = "filter (free text, project:, after:, before:)"
	filter.CharLimit = 120

	sessions := buildSessionRows(ds)

	return Model{
		ds:       ds,
		mode:     tagsView,
		sessions: sessions,
		filtered: sessions,
		filter:   filter,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.list = createTagList(m.ds, msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.list.SetSize(msg.Width, msg.Height-chromeHeight)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.ready {
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case tagsView:
			return m.updateTags(msg)
		case sessionsView:
			return m.updateSessions(msg)
		}
	}

	return m, nil
}

func (m Model) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the list own keys while its filter prompt is active
	if m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "tab":
			m.mode = sessionsView
			return m, nil

		case "enter", "c":
			if selected, ok := m.list.SelectedItem().(tagItem); ok {
				m.status = copyToClipboard(selected.name)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSessions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filter.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.filtered = filterSessions(m.sessions, m.filter.Value())
		if m.cursor >= len(m.filtered) {
			m.cursor = 0
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		m.mode = tagsView
		return m, nil

	case "/":
		m.filter.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", "c":
		if m.cursor < len(m.filtered) {
			m.status = copyToClipboard(m.filtered[m.cursor].name)
		}
		return m, nil
	}

	return m, nil
}

func copyToClipboard(text string) string {
	if err := clipboard.WriteAll(text); err != nil {
		return "copy failed: " + err.Error()
	}
	return fmt.Sprintf("copied %q", text)
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render("DATACO-" + m.ds.ID)
	summary := summaryStyle.Render(fmt.Sprintf("%s files | %s sessions | %s events | %d tags",
		humanize.Comma(int64(len(m.ds.Files))),
		humanize.Comma(int64(len(m.ds.SessionNames))),
		humanize.Comma(int64(m.ds.EventCount)),
		len(m.ds.TagCounts)))

	var body, hint string
	switch m.mode {
	case tagsView:
		body = m.list.View()
		hint = "tab sessions | / filter | enter/c copy tag | q quit"
	case sessionsView:
		body = m.filter.View() + "\n" +
			renderSessions(m.filtered, m.cursor, m.height-chromeHeight-1)
		hint = "tab tags | / filter | enter/c copy session | q quit"
	}

	footer := helpStyle.Render(hint)
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "  " + footer
	}

	return header + "\n" + summary + "\n" + body + "\n" + footer
}
