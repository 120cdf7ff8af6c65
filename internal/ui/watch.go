package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tubeclone/internal/catalog"
	"github.com/five82/tubeclone/internal/reconcile"
)

const watchView = "watch"

// watchState is one visit to a watch page. A new reconciler and comment
// thread are created per visit and the reconciler is closed on leave.
type watchState struct {
	videoID   string
	rec       *reconcile.Reconciler[catalog.Video]
	view      reconcile.Snapshot[catalog.Video]
	thread    *reconcile.Thread
	comment   textinput.Model
	composing bool
	viewport  viewport.Model
	upNext    int
}

func (w *watchState) refresh() {
	w.view = w.rec.Snapshot()
}

// video is the record the page currently shows.
func (w watchState) video() catalog.Video {
	if len(w.view.Items) > 0 {
		return w.view.Items[0]
	}
	return catalog.DemoVideo(w.videoID)
}

// openWatch shows the watch page for seed.ID with seed as its local record.
// When fetch is set the page immediately tries the remote API.
func (m Model) openWatch(seed catalog.Video, fetch bool) (tea.Model, tea.Cmd) {
	m.closeWatch()

	id := seed.ID
	var fetchFn reconcile.FetchFunc[catalog.Video]
	if m.api != nil {
		api := m.api
		fetchFn = func(ctx context.Context) ([]catalog.Video, error) {
			v, err := api.Video(ctx, id)
			if err != nil {
				return nil, err
			}
			return []catalog.Video{v}, nil
		}
	}

	m.watch = watchState{
		videoID:  id,
		rec:      reconcile.New([]catalog.Video{seed}, m.prober, fetchFn, m.reconcileOptions(watchView)),
		thread:   reconcile.NewThread(catalog.DemoComments(id)),
		comment:  newTextInput("Add a comment...", 500),
		viewport: viewport.New(0, 0),
	}
	m.watch.refresh()
	m.screen = ScreenWatch
	m.resize()
	m.log.Debug().Str("video", id).Bool("fetch", fetch).Msg("open watch page")

	if fetch {
		return m, m.retryWatch()
	}
	return m, nil
}

func (m *Model) retryWatch() tea.Cmd {
	if m.watch.rec == nil {
		return nil
	}
	token := m.watch.rec.Begin()
	m.watch.refresh()
	return retryCmd(m.ctx, m.watch.rec, token, watchView)
}

func (m *Model) closeWatch() {
	if m.watch.rec != nil {
		m.watch.rec.Close()
	}
	m.watch = watchState{}
}

// upNextVideos is the current feed projection without the video on screen.
func (m Model) upNextVideos() []catalog.Video {
	return catalog.Without(m.feed.view.Items, m.watch.videoID)
}

func (m Model) handleWatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next := m.upNextVideos()
	switch {
	case key.Matches(msg, m.keys.TryBackend):
		return m, m.retryWatch()
	case key.Matches(msg, m.keys.SwitchToDemo):
		if m.watch.rec.SwitchToDemo() {
			m.watch.refresh()
			m.updateWatchViewport()
			return m, m.setStatus("Switched to demo data")
		}
		return m, nil
	case key.Matches(msg, m.keys.Comment):
		m.watch.composing = true
		m.updateWatchViewport()
		return m, m.watch.comment.Focus()
	case key.Matches(msg, m.keys.Down):
		if m.watch.upNext < len(next)-1 {
			m.watch.upNext++
		}
	case key.Matches(msg, m.keys.Up):
		if m.watch.upNext > 0 {
			m.watch.upNext--
		}
	case key.Matches(msg, m.keys.HalfPageDown):
		m.watch.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.watch.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.Open):
		if m.watch.upNext < len(next) {
			v := next[m.watch.upNext]
			return m.openWatch(catalog.DemoVideo(v.ID), m.feed.view.Source == reconcile.SourceRemote)
		}
	}
	return m, nil
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		c, ok := m.watch.thread.Submit(m.watch.comment.Value())
		if !ok {
			return m, m.setStatus("Comment cannot be empty")
		}
		m.log.Debug().Str("video", m.watch.videoID).Str("comment", c.ID).Msg("comment added")
		m.watch.comment.Reset()
		m.watch.comment.Blur()
		m.watch.composing = false
		m.updateWatchViewport()
		m.watch.viewport.GotoTop()
		return m, nil
	case tea.KeyEsc:
		m.watch.comment.Blur()
		m.watch.composing = false
		m.updateWatchViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.watch.comment, cmd = m.watch.comment.Update(msg)
	return m, cmd
}

// watchLayout splits the content area into the main column and the up next
// panel. sideWidth is zero on narrow terminals.
func (m Model) watchLayout() (mainWidth, sideWidth int) {
	if m.width >= LayoutSidePanelWidth {
		sideWidth = m.width * 32 / 100
	}
	return m.width - sideWidth, sideWidth
}

func (m *Model) updateWatchViewport() {
	if m.watch.rec == nil || !m.ready {
		return
	}
	mainWidth, _ := m.watchLayout()
	banner := len(m.renderModeBanner(m.watch.view.Mode, m.watch.view.Reason, mainWidth))
	height := m.contentHeight() - banner - 2
	if m.watch.composing {
		height--
	}
	m.watch.viewport.Width = max(mainWidth-4, 10)
	m.watch.viewport.Height = max(height, 1)
	m.watch.viewport.SetContent(m.renderWatchBody(m.watch.viewport.Width))
}

func (m Model) renderWatch() string {
	if m.watch.rec == nil {
		return ""
	}
	mainWidth, sideWidth := m.watchLayout()
	height := m.contentHeight()
	banner := m.renderModeBanner(m.watch.view.Mode, m.watch.view.Reason, mainWidth)

	mainParts := append([]string(nil), banner...)
	boxHeight := height - len(banner)
	if m.watch.composing {
		bg := NewBgStyle(m.theme.Surface)
		mainParts = append(mainParts, bg.FillLine(m.watch.comment.View(), mainWidth))
		boxHeight--
	}
	title := truncate(m.watch.video().Title, max(mainWidth-10, 10))
	mainParts = append(mainParts, m.renderTitledBox(title, m.watch.viewport.View(), mainWidth, boxHeight, !m.watch.composing))
	main := strings.Join(mainParts, "\n")

	if sideWidth == 0 {
		return main
	}
	side := m.renderTitledBox("Up next", m.renderUpNext(sideWidth-2, height-2), sideWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, main, side)
}

// renderWatchBody renders the scrollable part of the watch page: details,
// description and comments.
func (m Model) renderWatchBody(width int) string {
	styles := m.theme.Styles()
	bgColor := m.panelBg(!m.watch.composing)
	bg := NewBgStyle(bgColor)
	v := m.watch.video()

	var lines []string
	add := func(s string) { lines = append(lines, bg.FillLine(s, width)) }

	channel := bg.Render(v.Channel.Name, styles.AccentText.Bold(true))
	if v.Channel.Subscribers != "" {
		channel += bg.Spaces(2) + bg.Render(v.Channel.Subscribers+" subscribers", styles.MutedText)
	}
	add(channel)

	var stats []string
	if v.Views != "" {
		stats = append(stats, v.Views+" views")
	}
	if v.UploadDate != "" {
		stats = append(stats, v.UploadDate)
	}
	if v.Duration != "" {
		stats = append(stats, v.Duration)
	}
	if len(stats) > 0 {
		add(bg.Render(strings.Join(stats, " · "), styles.MutedText))
	}
	if v.HasMedia() {
		add(bg.Render("media", styles.FaintText) + bg.Space() + bg.Render(truncateMiddle(v.VideoURL, width-8), styles.InfoText))
	} else {
		add(bg.Render("No media available for this video", styles.WarningText))
	}
	add("")

	for _, line := range wrapText(v.Description, width) {
		add(bg.Render(line, styles.Text))
	}
	add("")

	comments := m.watch.thread.Comments()
	add(bg.Render(plural(len(comments), "comment"), styles.Text.Bold(true)) +
		bg.Spaces(2) + bg.Render("c to add one", styles.FaintText))
	for _, c := range comments {
		add("")
		header := bg.Render(c.Author, styles.AccentText) + bg.Spaces(2) + bg.Render(c.Timestamp, styles.FaintText)
		if c.Likes > 0 {
			header += bg.Spaces(2) + bg.Render(fmt.Sprintf("%d likes", c.Likes), styles.MutedText)
		}
		add(header)
		for _, line := range wrapText(c.Content, width-2) {
			add(bg.Spaces(2) + bg.Render(line, styles.Text))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderUpNext(width, height int) string {
	styles := m.theme.Styles()
	bgColor := m.panelBg(false)
	bg := NewBgStyle(bgColor)
	next := m.upNextVideos()
	if len(next) == 0 {
		return bg.FillLine(bg.Render("Nothing else to watch", styles.MutedText), width)
	}

	perPage := max(height/2, 1)
	start := 0
	if m.watch.upNext >= perPage {
		start = m.watch.upNext - perPage + 1
	}
	end := min(start+perPage, len(next))
	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		first, second := m.formatVideoRow(next[i], width, i == m.watch.upNext, bgColor)
		lines = append(lines, first, second)
	}
	return strings.Join(lines, "\n")
}
