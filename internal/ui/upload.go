package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tubeclone/internal/backend"
	"github.com/five82/tubeclone/internal/catalog"
	"github.com/five82/tubeclone/internal/reconcile"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldVideoURL
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Video URL"}

// uploadForm collects the fields of a new video. Only one submission may be
// in flight at a time.
type uploadForm struct {
	fields     [fieldCount]textinput.Model
	focus      int
	submitting bool
	err        string
}

func newUploadForm() uploadForm {
	var f uploadForm
	f.fields[fieldTitle] = newTextInput("Enter video title", 100)
	f.fields[fieldDescription] = newTextInput("Describe your video", 1000)
	f.fields[fieldVideoURL] = newTextInput("https://example.com/video.mp4", 500)
	return f
}

func (f *uploadForm) focusField(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.fields {
		if j != f.focus {
			f.fields[j].Blur()
		}
	}
	return f.fields[f.focus].Focus()
}

func (f uploadForm) values() reconcile.UploadFields {
	return reconcile.UploadFields{
		Title:       f.fields[fieldTitle].Value(),
		Description: f.fields[fieldDescription].Value(),
		VideoURL:    f.fields[fieldVideoURL].Value(),
	}
}

func (f *uploadForm) reset() {
	for i := range f.fields {
		f.fields[i].Reset()
	}
	f.err = ""
	f.submitting = false
}

type uploadResultMsg struct {
	video catalog.Video
	err   error
}

func submitUploadCmd(ctx context.Context, creator reconcile.Creator, fields reconcile.UploadFields) tea.Cmd {
	return func() tea.Msg {
		v, err := reconcile.SubmitUpload(ctx, creator, fields)
		return uploadResultMsg{video: v, err: err}
	}
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.fields[m.form.focus].Blur()
		return m.showScreen(ScreenHome)
	case "tab", "down":
		return m, m.form.focusField(m.form.focus + 1)
	case "shift+tab", "up":
		return m, m.form.focusField(m.form.focus - 1)
	case "enter":
		if m.form.focus < fieldVideoURL {
			return m, m.form.focusField(m.form.focus + 1)
		}
		return m.submitUpload()
	case "ctrl+s":
		return m.submitUpload()
	}
	var cmd tea.Cmd
	m.form.fields[m.form.focus], cmd = m.form.fields[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitUpload() (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	fields := m.form.values()
	if err := fields.Validate(); err != nil {
		m.form.err = describeUploadError(err)
		return m, nil
	}
	m.form.submitting = true
	m.form.err = ""
	return m, submitUploadCmd(m.ctx, m.uploads, fields)
}

func (m Model) handleUploadResult(msg uploadResultMsg) (tea.Model, tea.Cmd) {
	m.form.submitting = false
	if msg.err != nil {
		m.form.err = describeUploadError(msg.err)
		m.log.Warn().Err(msg.err).Str("kind", string(backend.KindOf(msg.err))).Msg("upload failed")
		return m, nil
	}
	m.log.Info().Str("id", msg.video.ID).Str("title", msg.video.Title).Msg("video uploaded")
	m.form.reset()
	m.form.fields[m.form.focus].Blur()
	m.form.focus = fieldTitle

	next, cmd := m.openWatch(msg.video, true)
	nm := next.(Model)
	status := nm.setStatus("Video uploaded successfully")
	return nm, tea.Batch(cmd, status)
}

// describeUploadError turns validation and transport failures into one line
// for the form.
func describeUploadError(err error) string {
	var problems []string
	for _, target := range []error{reconcile.ErrTitleRequired, reconcile.ErrVideoURLRequired, reconcile.ErrVideoURLInvalid} {
		if errors.Is(err, target) {
			problems = append(problems, target.Error())
		}
	}
	if len(problems) > 0 {
		s := strings.Join(problems, "; ")
		return strings.ToUpper(s[:1]) + s[1:]
	}
	var se *backend.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return "Upload failed: " + se.Message
	}
	if backend.KindOf(err) == backend.KindTransport {
		return "Upload failed: backend not available. Make sure the API server is running"
	}
	return "Upload failed: " + err.Error()
}

func (m Model) renderUpload() string {
	styles := m.theme.Styles()
	bgColor := m.panelBg(true)
	bg := NewBgStyle(bgColor)
	width := m.width - 4

	var lines []string
	add := func(s string) { lines = append(lines, bg.FillLine(s, width)) }

	add(bg.Render("Share a video with the backend. Uploads need the API server.", styles.MutedText))
	add("")
	for i := range m.form.fields {
		label := fieldLabels[i]
		if i != fieldDescription {
			label += " *"
		}
		style := styles.MutedText
		if i == m.form.focus {
			style = styles.AccentText.Bold(true)
		}
		add(bg.Render(label, style))
		add(m.form.fields[i].View())
		add("")
	}

	switch {
	case m.form.submitting:
		add(m.spinner.View() + bg.Space() + bg.Render("Uploading...", styles.InfoText))
	case m.form.err != "":
		add(bg.Render(truncate(m.form.err, width), styles.DangerText))
	default:
		add(bg.Render("enter next field / submit   ctrl+s submit   esc cancel", styles.FaintText))
	}

	return m.renderTitledBox("Upload Video", strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}
