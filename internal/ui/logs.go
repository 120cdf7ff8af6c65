package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tubeclone/internal/logtail"
)

// logState holds the Logs screen: the last tail of the client log file.
type logState struct {
	entries  []logtail.Entry
	err      error
	follow   bool
	loaded   bool
	viewport viewport.Model
}

func newLogState() logState {
	return logState{follow: true, viewport: viewport.New(0, 0)}
}

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

func (m Model) logPath() string {
	if m.config == nil {
		return ""
	}
	return m.config.LogPath()
}

func (m Model) refreshLogs() tea.Cmd {
	path := m.logPath()
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.Tail(path, LogBufferLimit)
		return logsMsg{entries: entries, err: err}
	}
}

func (m *Model) handleLogs(msg logsMsg) {
	m.logs.loaded = true
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.entries = msg.entries
	}
	m.updateLogViewport()
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logs.viewport.GotoBottom()
		}
		return m, nil
	case key.Matches(msg, m.keys.Recheck):
		return m, m.refreshLogs()
	case key.Matches(msg, m.keys.Down):
		m.logs.follow = false
		m.logs.viewport.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logs.follow = false
		m.logs.viewport.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logs.follow = false
		m.logs.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logs.follow = false
		m.logs.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.Top):
		m.logs.follow = false
		m.logs.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logs.viewport.GotoBottom()
	}
	return m, nil
}

func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	// Box height is the content area minus the status line; the inner
	// height drops the two borders.
	m.logs.viewport.Width = max(m.width-4, 10)
	m.logs.viewport.Height = max(m.contentHeight()-3, 1)
	m.logs.viewport.SetContent(m.renderLogContent(m.logs.viewport.Width))
	if m.logs.follow {
		m.logs.viewport.GotoBottom()
	}
}

func (m Model) renderLogContent(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)

	switch {
	case m.logs.err != nil:
		return bg.FillLine(bg.Render("Cannot read log: "+m.logs.err.Error(), styles.DangerText), width)
	case len(m.logs.entries) == 0:
		return bg.FillLine(bg.Render("No log entries", styles.MutedText), width)
	}

	lines := make([]string, 0, len(m.logs.entries))
	for _, e := range m.logs.entries {
		lines = append(lines, bg.FillLine(m.formatLogEntry(e, width, styles, bg), width))
	}
	return strings.Join(lines, "\n")
}

// formatLogEntry renders "15:04:05 LEVEL message key=value ...".
func (m Model) formatLogEntry(e logtail.Entry, width int, styles Styles, bg BgStyle) string {
	if e.Level == "" && e.Time.IsZero() {
		return bg.Render(truncate(e.Raw, width), styles.Text)
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(bg.Render(e.Time.Local().Format("15:04:05"), styles.FaintText))
		b.WriteString(bg.Space())
	}
	level := strings.ToUpper(e.Level)
	b.WriteString(bg.Render(padRight(level, 5), levelStyle(level, styles).Bold(true)))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(e.Message, styles.Text))

	var fields []string
	for _, f := range e.Fields {
		if f.Key == "service" {
			continue
		}
		fields = append(fields, f.Key+"="+f.Value)
	}
	if len(fields) > 0 {
		used := lipgloss.Width(b.String())
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(truncate(strings.Join(fields, " "), max(width-used-1, 4)), styles.MutedText))
	}
	return b.String()
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR", "FATAL", "PANIC":
		return styles.DangerText
	case "DEBUG", "TRACE":
		return styles.InfoText
	default:
		return styles.Text
	}
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	title := "Client Log"
	box := m.renderTitledBox(title, m.logs.viewport.View(), m.width, m.contentHeight()-1, true)

	follow := "off"
	if m.logs.follow {
		follow = "on"
	}
	status := fmt.Sprintf("%s  %d entries  auto-tail %s", truncateMiddle(m.logPath(), 60), len(m.logs.entries), follow)
	if !m.logs.loaded {
		status = "Loading " + m.logPath()
	}
	return box + "\n" + bg.FillLine(bg.Render(status, styles.FaintText), m.width)
}
