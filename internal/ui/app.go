package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/tubeclone/internal/catalog"
	"github.com/five82/tubeclone/internal/config"
	"github.com/five82/tubeclone/internal/prefs"
	"github.com/five82/tubeclone/internal/reconcile"
	"github.com/five82/tubeclone/internal/state"
)

// Screen is the page currently shown.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenWatch
	ScreenUpload
	ScreenSetup
	ScreenLogs
)

func (s Screen) String() string {
	switch s {
	case ScreenWatch:
		return "Watch"
	case ScreenUpload:
		return "Upload"
	case ScreenSetup:
		return "Setup"
	case ScreenLogs:
		return "Logs"
	default:
		return "Home"
	}
}

// VideoSource is the remote API as seen by the feed and watch pages.
// *backend.Client implements it.
type VideoSource interface {
	Videos(ctx context.Context, search string) ([]catalog.Video, error)
	Video(ctx context.Context, id string) (catalog.Video, error)
}

// HealthTrigger requests an immediate passive health check.
// *probe.Monitor implements it.
type HealthTrigger interface {
	Trigger()
}

// Options configures the UI.
type Options struct {
	Context context.Context
	API     VideoSource
	Uploads reconcile.Creator
	Prober  reconcile.Prober
	Store   *state.Store
	Monitor HealthTrigger
	Config  *config.Config
	Logger  *zerolog.Logger

	// AfterFunc schedules the Error to Local fallback. Nil uses
	// time.AfterFunc.
	AfterFunc reconcile.AfterFunc

	ThemeName   string
	PrefsPath   string
	AutoConnect bool
	Tick        time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	api       VideoSource
	uploads   reconcile.Creator
	prober    reconcile.Prober
	store     *state.Store
	monitor   HealthTrigger
	config    *config.Config
	log       zerolog.Logger
	afterFunc reconcile.AfterFunc
	errorHold time.Duration
	prefsPath string
	prefs     prefs.Prefs
	tick      time.Duration

	keys    keyMap
	theme   Theme
	screen  Screen
	width   int
	height  int
	ready   bool
	spinner spinner.Model

	showHelp bool

	// Passive health status from the monitor.
	health state.Snapshot

	feed  feedState
	watch watchState
	form  uploadForm
	logs  logState

	statusMsg string
	statusSeq int
}

// New creates a new Bubble Tea model with the home feed in Demo Mode.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	m := Model{
		ctx:       ctx,
		api:       opts.API,
		uploads:   opts.Uploads,
		prober:    opts.Prober,
		store:     opts.Store,
		monitor:   opts.Monitor,
		config:    opts.Config,
		log:       log,
		afterFunc: opts.AfterFunc,
		prefsPath: prefsPath,
		prefs:     prefs.Prefs{Theme: themeName, AutoConnect: opts.AutoConnect},
		tick:      tick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		screen:    ScreenHome,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if opts.Config != nil {
		m.errorHold = opts.Config.ErrorHold
	}
	m.feed = newFeedState(m.newFeedReconciler())
	m.form = newUploadForm()
	m.logs = newLogState()
	return m
}

func (m Model) reconcileOptions(name string) reconcile.Options {
	return reconcile.Options{
		Name:      name,
		ErrorHold: m.errorHold,
		AfterFunc: m.afterFunc,
		Logger:    &m.log,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.tick),
		m.spinner.Tick,
	}
	if m.prefs.AutoConnect {
		cmds = append(cmds, m.retryFeed())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reconciledMsg:
		m.refreshViews()
		return m, nil

	case uploadResultMsg:
		return m.handleUploadResult(msg)

	case logsMsg:
		m.handleLogs(msg)
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.screen {
	case ScreenWatch:
		return m.renderWatch()
	case ScreenUpload:
		return m.renderUpload()
	case ScreenSetup:
		return m.renderSetup()
	case ScreenLogs:
		return m.renderLogs()
	default:
		return m.renderHome()
	}
}

// contentHeight is the space below the header and command bar.
func (m Model) contentHeight() int {
	return max(m.height-2, 3)
}

// typing reports whether a text field owns the keyboard.
func (m Model) typing() bool {
	switch m.screen {
	case ScreenHome:
		return m.feed.searching
	case ScreenWatch:
		return m.watch.composing
	case ScreenUpload:
		return true
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		m.closeWatch()
		return m, tea.Quit
	}
	if m.typing() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.closeWatch()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.ScreenHome):
		return m.showScreen(ScreenHome)
	case key.Matches(msg, m.keys.ScreenUpload):
		return m.showScreen(ScreenUpload)
	case key.Matches(msg, m.keys.ScreenSetup):
		return m.showScreen(ScreenSetup)
	case key.Matches(msg, m.keys.ScreenLogs):
		return m.showScreen(ScreenLogs)
	case key.Matches(msg, m.keys.Back):
		if m.screen != ScreenHome {
			return m.showScreen(ScreenHome)
		}
		return m, nil
	}

	switch m.screen {
	case ScreenWatch:
		return m.handleWatchKey(msg)
	case ScreenSetup:
		return m.handleSetupKey(msg)
	case ScreenLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleHomeKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenWatch:
		return m.handleCommentKey(msg)
	case ScreenUpload:
		return m.handleUploadKey(msg)
	default:
		return m.handleSearchKey(msg)
	}
}

// updateFocusedInput forwards non-key messages such as cursor blinks to the
// text field that has focus.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.screen == ScreenHome && m.feed.searching:
		m.feed.search, cmd = m.feed.search.Update(msg)
	case m.screen == ScreenWatch && m.watch.composing:
		m.watch.comment, cmd = m.watch.comment.Update(msg)
	case m.screen == ScreenUpload:
		m.form.fields[m.form.focus], cmd = m.form.fields[m.form.focus].Update(msg)
	}
	return cmd
}

// showScreen switches pages. Leaving the watch page closes its reconciler.
func (m Model) showScreen(s Screen) (tea.Model, tea.Cmd) {
	if m.screen == ScreenWatch && s != ScreenWatch {
		m.closeWatch()
	}
	m.screen = s
	m.resize()
	switch s {
	case ScreenLogs:
		return m, m.refreshLogs()
	case ScreenUpload:
		return m, m.form.focusField(m.form.focus)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.store != nil {
		m.health = m.store.Snapshot()
	}
	m.refreshViews()

	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.screen == ScreenLogs && m.logs.follow {
		cmds = append(cmds, m.refreshLogs())
	}
	return m, tea.Batch(cmds...)
}

// refreshViews re-reads reconciler snapshots. The error fallback timer
// changes state off the update loop, so ticks pick that up too.
func (m *Model) refreshViews() {
	m.feed.refresh()
	if m.watch.rec != nil {
		m.watch.refresh()
		m.updateWatchViewport()
	}
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	m.feed.clamp()
	m.updateWatchViewport()
	m.updateLogViewport()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("save preferences")
	}
}

// setStatus shows a transient message and schedules its removal.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusSeq++
	m.statusMsg = text
	seq := m.statusSeq
	return tea.Tick(StatusMessageTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "> "
	return ti
}

// Messages

type tickMsg time.Time

// reconciledMsg reports that a retry command has applied (or dropped) its
// result.
type reconciledMsg struct {
	view    string
	applied bool
}

type clearStatusMsg struct{ seq int }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// retryCmd runs the blocking half of a retry. Begin has already been called
// on the update loop, so the view shows Probing before any I/O starts.
func retryCmd[R catalog.Record](ctx context.Context, rec *reconcile.Reconciler[R], token uint64, view string) tea.Cmd {
	return func() tea.Msg {
		items, err := rec.Load(ctx)
		applied := rec.Complete(token, items, err)
		return reconciledMsg{view: view, applied: applied}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.closeWatch()
		fm.feed.rec.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
