package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tubeclone/internal/probe"
)

func (m Model) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Recheck):
		if m.monitor == nil {
			return m, nil
		}
		m.monitor.Trigger()
		m.health.State = probe.Probing
		return m, m.setStatus("Checking backend...")
	case key.Matches(msg, m.keys.AutoConnect):
		m.prefs.AutoConnect = !m.prefs.AutoConnect
		m.savePrefs()
		return m, m.setStatus(fmt.Sprintf("Auto-connect %s", onOff(m.prefs.AutoConnect)))
	case key.Matches(msg, m.keys.TryBackend):
		return m, m.retryFeed()
	}
	return m, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// backendStatusLine is the passive banner text for the last probe.
func (m Model) backendStatusLine() (string, bool) {
	switch {
	case !m.health.HasResult:
		return "Checking backend status...", false
	case m.health.Connected():
		return "Backend server is running", true
	default:
		return "Backend server is not running. Using demo data", false
	}
}

func (m Model) renderSetup() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.panelBg(true))
	width := m.width - 4

	var lines []string
	add := func(s string) { lines = append(lines, bg.FillLine(s, width)) }

	text, ok := m.backendStatusLine()
	statusStyle := styles.DangerText
	if ok {
		statusStyle = styles.SuccessText
	} else if !m.health.HasResult {
		statusStyle = styles.WarningText
	}
	status := bg.Render("●", statusStyle) + bg.Space() + bg.Render(text, statusStyle)
	if m.health.State == probe.Probing {
		status += bg.Spaces(2) + m.spinner.View()
	}
	add(status)

	if m.health.HasResult {
		last := m.health.Last
		var detail []string
		if last.Version != "" {
			detail = append(detail, "version "+last.Version)
		}
		if !last.CheckedAt.IsZero() {
			detail = append(detail, "checked "+last.CheckedAt.Format("15:04:05"))
		}
		if last.Latency > 0 {
			detail = append(detail, last.Latency.Round(time.Millisecond).String())
		}
		if !last.Healthy() && last.Reason != "" {
			detail = append(detail, last.Reason)
		}
		if len(detail) > 0 {
			add(bg.Spaces(2) + bg.Render(truncate(strings.Join(detail, " · "), width-2), styles.MutedText))
		}
		if m.health.IsOffline() {
			add(bg.Spaces(2) + bg.Render(fmt.Sprintf("%d checks failed in a row", m.health.ConsecutiveFailures), styles.WarningText))
		}
	}
	add("")

	apiBase := "http://127.0.0.1:5328"
	if m.config != nil {
		apiBase = m.config.APIBase
	}
	steps := []struct{ title, command string }{
		{"Start the demo API server", "tubeclone-api -addr " + hostPort(apiBase)},
		{"Check that it answers", "curl " + strings.TrimRight(apiBase, "/") + "/api/health"},
		{"Switch the feed to live data", "press b on the home feed (or here)"},
	}
	add(bg.Render("Backend setup", styles.Text.Bold(true)))
	for i, step := range steps {
		add(bg.Render(fmt.Sprintf("%d.", i+1), styles.AccentText) + bg.Space() + bg.Render(step.title, styles.Text))
		add(bg.Spaces(3) + bg.Render(step.command, styles.InfoText))
	}
	add("")
	add(bg.Render("Without the server everything keeps working on demo data.", styles.MutedText))
	add("")
	add(bg.Render("Auto-connect on start:", styles.MutedText) + bg.Space() + bg.Render(onOff(m.prefs.AutoConnect), styles.AccentText))
	if m.config != nil {
		add(bg.Render("Health checks every", styles.MutedText) + bg.Space() + bg.Render(m.config.HealthInterval.String(), styles.Text))
		add(bg.Render("Log file", styles.MutedText) + bg.Space() + bg.Render(truncateMiddle(m.config.LogPath(), width-10), styles.Text))
	}

	return m.renderTitledBox("Setup", strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}

// hostPort strips the scheme from a base URL for the server's -addr flag.
func hostPort(base string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(base, "http://"), "https://")
	return strings.TrimRight(s, "/")
}
