package cli

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/boxdeform/pkg/scene"
	"github.com/matzehuels/boxdeform/pkg/session"
)

// Canvas size used until the terminal reports its own.
const (
	defaultCanvasCols = 64
	defaultCanvasRows = 20
	maxReports        = 3
)

var (
	styleStatus = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("236")).Padding(0, 1)
	styleHelp   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SessionModel - Interactive box deform session
// =============================================================================

// reportLog collects the reports of a session. It is shared between copies
// of the model, which bubbletea passes by value.
type reportLog struct {
	items []session.Report
}

func (l *reportLog) add(r session.Report) { l.items = append(l.items, r) }

func (l *reportLog) last(n int) []session.Report {
	if len(l.items) <= n {
		return l.items
	}
	return l.items[len(l.items)-n:]
}

// SessionModel is the bubbletea model driving one session. Keys go to the
// session first; keys it passes through go to the scene's cage editor.
type SessionModel struct {
	ctx     context.Context
	sess    *session.Session
	scene   *scene.Scene
	editor  *scene.CageEditor
	reports *reportLog

	cols, rows int

	// Outcome is the final outcome once the session has ended.
	Outcome session.Outcome
	// Interrupted is set when the user left with ctrl+c.
	Interrupted bool
}

// NewSessionModel creates a model for sess running on s. The controller that
// started sess should deliver its reports to the returned model's Report
// method.
func NewSessionModel(ctx context.Context, sess *session.Session, s *scene.Scene) SessionModel {
	return SessionModel{
		ctx:     ctx,
		sess:    sess,
		scene:   s,
		editor:  scene.NewCageEditor(s),
		reports: &reportLog{},
		cols:    defaultCanvasCols,
		rows:    defaultCanvasRows,
		Outcome: session.OutcomeRunning,
	}
}

// Report records a session report for display.
func (m SessionModel) Report(r session.Report) { m.reports.add(r) }

// Reports returns every report received so far.
func (m SessionModel) Reports() []session.Report { return m.reports.items }

func (m SessionModel) Init() tea.Cmd {
	return nil
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.key(msg.String())
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, 8)
		m.rows = max(msg.Height-8, 4)
	}
	return m, nil
}

func (m SessionModel) key(k string) (tea.Model, tea.Cmd) {
	if k == "ctrl+c" {
		m.sess.Interrupt()
		m.Interrupted = true
		return m, tea.Quit
	}
	ev, err := session.ParseEvent(k)
	if err != nil {
		return m, nil
	}
	if out := dispatch(m.ctx, m.sess, m.editor, ev); out.Done() {
		m.Outcome = out
		return m, tea.Quit
	}
	return m, nil
}

func (m SessionModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(string(m.sess.Target())))
	b.WriteString("\n")
	b.WriteString(styleStatus.Render(m.sess.Status()))
	b.WriteString("\n")

	cv, err := drawScene(m.scene, m.editor.Cage(), m.editor, m.cols, m.rows)
	if err != nil {
		b.WriteString(StyleWarning.Render(err.Error()))
	} else {
		b.WriteString(styleCanvas.Render(cv.String()))
	}
	b.WriteString("\n")

	for _, r := range m.reports.last(maxReports) {
		b.WriteString(renderReport(r))
		b.WriteString("\n")
	}
	b.WriteString(styleHelp.Render("arrows move points  [ ] select point  ctrl+c interrupt"))

	return b.String()
}
