package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tubeclone/internal/backend"
	"github.com/five82/tubeclone/internal/probe"
	"github.com/five82/tubeclone/internal/reconcile"
)

const unavailableBanner = "Backend not available. Make sure the API server is running"

// activeMode returns the mode and label of the reconciler behind the
// current screen. Screens without one report the feed.
func (m Model) activeMode() (reconcile.Mode, string) {
	if m.screen == ScreenWatch && m.watch.rec != nil {
		return m.watch.view.Mode, m.watch.view.Label()
	}
	return m.feed.view.Mode, m.feed.view.Label()
}

// renderHeader renders the top status bar: logo, screen, data mode, passive
// backend status and any transient message.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	mode, label := m.activeMode()
	parts := []string{
		bg.Render("▶ tubeclone", styles.Logo),
		bg.Render(m.screen.String(), styles.Text.Bold(true)),
		styles.ModeStyle(mode.String()).Render(label),
	}

	switch {
	case !m.health.HasResult:
		parts = append(parts, bg.Render("API …", styles.FaintText))
	case m.health.Connected():
		api := "● API"
		if !compact && m.health.Last.Version != "" {
			api += " v" + m.health.Last.Version
		}
		parts = append(parts, bg.Render(api, styles.SuccessText))
	default:
		parts = append(parts, bg.Render("● API "+classifyConnectionError(m.health.Last), styles.DangerText))
	}

	if m.statusMsg != "" {
		parts = append(parts, bg.Render(truncate(m.statusMsg, 50), styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// classifyConnectionError returns a short label for a failed probe.
func classifyConnectionError(out probe.Outcome) string {
	if out.Healthy() {
		return ""
	}
	reason := strings.ToLower(out.Reason)
	switch out.Kind {
	case backend.KindTransport:
		switch {
		case strings.Contains(reason, "connection refused"):
			return "OFFLINE"
		case strings.Contains(reason, "no such host"):
			return "HOST NOT FOUND"
		case strings.Contains(reason, "timeout"), strings.Contains(reason, "deadline exceeded"):
			return "TIMEOUT"
		}
		return "UNREACHABLE"
	case backend.KindProtocolMismatch:
		return "BAD RESPONSE"
	case backend.KindShapeMismatch:
		return "BAD DATA"
	}
	return "ERROR"
}

// renderModeBanner returns the lines shown above a reconciled view: a
// spinner while probing and the advisory banner in Error. Local and Remote
// need no banner.
func (m Model) renderModeBanner(mode reconcile.Mode, reason string, width int) []string {
	styles := m.theme.Styles()
	switch mode {
	case reconcile.Probing:
		bg := NewBgStyle(m.theme.Surface)
		return []string{bg.FillLine(m.spinner.View()+bg.Space()+bg.Render("Connecting to backend...", styles.InfoText), width)}
	case reconcile.Error:
		bg := NewBgStyle(m.theme.Surface)
		lines := []string{bg.FillLine(bg.Render("⚠ "+unavailableBanner, styles.DangerText), width)}
		if reason != "" {
			lines = append(lines, bg.FillLine(bg.Spaces(2)+bg.Render(truncate(reason, max(width-4, 10)), styles.MutedText), width))
		}
		return lines
	}
	return nil
}

// renderCommandBar renders the key hints for the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	mode, _ := m.activeMode()
	sourceCmd := cmd{"b", "Try backend"}
	if mode == reconcile.Remote {
		sourceCmd = cmd{"d", "Demo data"}
	}

	switch m.screen {
	case ScreenWatch:
		if m.watch.composing {
			commands = []cmd{{"enter", "Post"}, {"esc", "Cancel"}}
		} else {
			commands = []cmd{sourceCmd, {"c", "Comment"}, {"j/k", "Up next"}, {"enter", "Play next"}, {"ctrl+d/u", "Scroll"}, {"esc", "Back"}}
		}
	case ScreenUpload:
		commands = []cmd{{"tab", "Next field"}, {"ctrl+s", "Submit"}, {"esc", "Cancel"}}
	case ScreenSetup:
		commands = []cmd{{"r", "Check now"}, {"b", "Try backend"}, {"a", "Auto-connect"}, {"esc", "Home"}}
	case ScreenLogs:
		follow := "Pause"
		if !m.logs.follow {
			follow = "Follow"
		}
		commands = []cmd{{"Space", follow}, {"j/k", "Scroll"}, {"r", "Reload"}, {"esc", "Home"}}
	default:
		if m.feed.searching {
			commands = []cmd{{"enter", "Search"}, {"esc", "Cancel"}}
		} else {
			commands = []cmd{sourceCmd, {"/", "Search"}, {"enter", "Watch"}, {"j/k", "Navigate"}, {"u", "Upload"}, {"s", "Setup"}, {"l", "Logs"}}
			if m.feed.view.Query != "" {
				commands = append(commands, cmd{"x", "Clear"})
			}
		}
	}
	commands = append(commands, cmd{"?", "More"})

	colon := lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Surface)).Render(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments, bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}
