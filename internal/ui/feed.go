package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tubeclone/internal/catalog"
	"github.com/five82/tubeclone/internal/reconcile"
)

const feedView = "feed"

// feedState is the home page: the feed reconciler, its last snapshot and
// the search box.
type feedState struct {
	rec       *reconcile.Reconciler[catalog.Video]
	view      reconcile.Snapshot[catalog.Video]
	search    textinput.Model
	searching bool
	selected  int
}

func newFeedState(rec *reconcile.Reconciler[catalog.Video]) feedState {
	return feedState{
		rec:    rec,
		view:   rec.Snapshot(),
		search: newTextInput("Search videos...", 100),
	}
}

func (m Model) newFeedReconciler() *reconcile.Reconciler[catalog.Video] {
	var fetch reconcile.FetchFunc[catalog.Video]
	if m.api != nil {
		api := m.api
		fetch = func(ctx context.Context) ([]catalog.Video, error) {
			return api.Videos(ctx, "")
		}
	}
	return reconcile.New(catalog.DemoFeed(), m.prober, fetch, m.reconcileOptions(feedView))
}

func (f *feedState) refresh() {
	f.view = f.rec.Snapshot()
	f.clamp()
}

func (f *feedState) clamp() {
	n := len(f.view.Items)
	if f.selected >= n {
		f.selected = n - 1
	}
	if f.selected < 0 {
		f.selected = 0
	}
}

func (f feedState) selectedVideo() (catalog.Video, bool) {
	if f.selected < 0 || f.selected >= len(f.view.Items) {
		return catalog.Video{}, false
	}
	return f.view.Items[f.selected], true
}

// retryFeed moves the feed to Probing on the update loop and returns the
// command that probes and fetches.
func (m *Model) retryFeed() tea.Cmd {
	token := m.feed.rec.Begin()
	m.feed.refresh()
	return retryCmd(m.ctx, m.feed.rec, token, feedView)
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.feed.view.Items)
	switch {
	case key.Matches(msg, m.keys.TryBackend):
		return m, m.retryFeed()
	case key.Matches(msg, m.keys.SwitchToDemo):
		if m.feed.rec.SwitchToDemo() {
			m.feed.refresh()
			return m, m.setStatus("Switched to demo data")
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.feed.searching = true
		m.feed.search.SetValue(m.feed.view.Query)
		m.feed.search.CursorEnd()
		return m, m.feed.search.Focus()
	case key.Matches(msg, m.keys.ClearSearch):
		m.applySearch("")
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.feed.selected < n-1 {
			m.feed.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.feed.selected > 0 {
			m.feed.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.feed.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.feed.selected = max(n-1, 0)
	case key.Matches(msg, m.keys.Open):
		if v, ok := m.feed.selectedVideo(); ok {
			return m.openWatch(catalog.DemoVideo(v.ID), m.feed.view.Source == reconcile.SourceRemote)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.feed.searching = false
		m.feed.search.Blur()
		m.applySearch(m.feed.search.Value())
		return m, nil
	case tea.KeyEsc:
		m.feed.searching = false
		m.feed.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.feed.search, cmd = m.feed.search.Update(msg)
	return m, cmd
}

// applySearch filters the feed. A blank query clears the filter.
func (m *Model) applySearch(query string) {
	query = strings.TrimSpace(query)
	m.feed.view = m.feed.rec.Search(query)
	m.feed.search.SetValue(query)
	m.feed.selected = 0
	m.feed.clamp()
}

func (m Model) renderHome() string {
	height := m.contentHeight()
	bannerLines := m.renderModeBanner(m.feed.view.Mode, m.feed.view.Reason, m.width)

	title := fmt.Sprintf("Videos (%d/%d)", len(m.feed.view.Items), m.feed.view.Total)
	if q := m.feed.view.Query; q != "" {
		title = fmt.Sprintf("Results for %q (%d)", q, len(m.feed.view.Items))
	}
	listHeight := height - len(bannerLines)
	if m.feed.searching {
		listHeight--
	}

	var parts []string
	parts = append(parts, bannerLines...)
	if m.feed.searching {
		bg := NewBgStyle(m.theme.Surface)
		parts = append(parts, bg.FillLine(m.feed.search.View(), m.width))
	}
	body := m.renderFeedList(m.width-2, listHeight-2)
	parts = append(parts, m.renderTitledBox(title, body, m.width, listHeight, !m.feed.searching))
	return strings.Join(parts, "\n")
}

func (m Model) renderFeedList(width, height int) string {
	styles := m.theme.Styles()
	bgColor := m.panelBg(!m.feed.searching)
	bg := NewBgStyle(bgColor)
	items := m.feed.view.Items

	if len(items) == 0 {
		msg := "No videos available"
		if q := m.feed.view.Query; q != "" {
			msg = fmt.Sprintf("No videos found for %q", q)
		}
		return lipgloss.Place(width, max(height, 1), lipgloss.Center, lipgloss.Center,
			bg.Render(msg, styles.MutedText),
			lipgloss.WithWhitespaceBackground(lipgloss.Color(bgColor)))
	}

	// Each video takes two lines; keep the selection visible.
	perPage := max(height/2, 1)
	start := 0
	if m.feed.selected >= perPage {
		start = m.feed.selected - perPage + 1
	}
	end := min(start+perPage, len(items))

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		first, second := m.formatVideoRow(items[i], width, i == m.feed.selected, bgColor)
		lines = append(lines, first, second)
	}
	return strings.Join(lines, "\n")
}

// formatVideoRow renders "Title  duration" over "channel · views · age".
func (m Model) formatVideoRow(v catalog.Video, width int, selected bool, bgColor string) (string, string) {
	styles := m.theme.Styles()
	titleStyle, metaStyle, durStyle := styles.Text.Bold(true), styles.MutedText, styles.FaintText
	if selected {
		bgColor = m.theme.SelectionBg
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		titleStyle, metaStyle, durStyle = sel.Bold(true), sel, sel
	}
	bg := NewBgStyle(bgColor)

	duration := v.Duration
	titleWidth := max(width-len(duration)-4, 10)
	first := bg.Render(" "+padRight(truncate(v.Title, titleWidth), titleWidth), titleStyle) +
		bg.Spaces(2) + bg.Render(duration, durStyle)

	meta := []string{v.Channel.Name}
	if v.Views != "" {
		meta = append(meta, v.Views+" views")
	}
	if v.UploadDate != "" {
		meta = append(meta, v.UploadDate)
	}
	second := bg.Spaces(1) + bg.Render(truncate(strings.Join(meta, " · "), width-2), metaStyle)

	return bg.FillLine(first, width), bg.FillLine(second, width)
}
