// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tfctl/tdiff/internal/config"
	"github.com/tfctl/tdiff/internal/debounce"
	"github.com/tfctl/tdiff/internal/diff"
	"github.com/tfctl/tdiff/internal/output"
)

// LiveOptions configures the live editor.
type LiveOptions struct {
	Left        string
	Right       string
	LeftTitle   string
	RightTitle  string
	Mode        Mode
	Granularity diff.Granularity
	// Delay is the quiet period after a keystroke before the diff is
	// recomputed. Zero selects debounce.DefaultDelay.
	Delay time.Duration
}

// Live runs the full screen editor until the user quits. It returns opts
// updated with the final text of both editors and the mode and granularity
// the session ended in.
func Live(opts LiveOptions) (LiveOptions, error) {
	p := tea.NewProgram(newLiveModel(opts), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return opts, err
	}

	return m.(liveModel).final(opts), nil
}

// final copies the editor text, mode and granularity of m into opts.
func (m liveModel) final(opts LiveOptions) LiveOptions {
	opts.Left = m.editors[0].Value()
	opts.Right = m.editors[1].Value()
	opts.Mode = m.mode
	opts.Granularity = m.granularity
	return opts
}

// recomputeMsg is delivered once the debounce delay after an edit has passed.
// Only the tick carrying the newest sequence number triggers a recompute.
type recomputeMsg struct{ seq int }

// resultMsg carries a recomputed diff. Results for an older sequence number
// are dropped.
type resultMsg struct {
	seq    int
	result Result
}

type liveStyles struct {
	title     lipgloss.Style
	box       lipgloss.Style
	focused   lipgloss.Style
	added     lipgloss.Style
	removed   lipgloss.Style
	modified  lipgloss.Style
	status    lipgloss.Style
	separator string
}

type liveModel struct {
	editors     [2]textarea.Model
	titles      [2]string
	focus       int
	mode        Mode
	granularity diff.Granularity
	delay       time.Duration
	seq         int
	result      Result
	offset      int
	width       int
	height      int
	styles      liveStyles
}

func newLiveModel(opts LiveOptions) liveModel {
	delay := opts.Delay
	if delay <= 0 {
		delay = debounce.DefaultDelay
	}

	m := liveModel{
		titles:      [2]string{opts.LeftTitle, opts.RightTitle},
		mode:        opts.Mode,
		granularity: opts.Granularity,
		delay:       delay,
		width:       100, //nolint:mnd
		height:      30,  //nolint:mnd
		styles:      newLiveStyles(),
	}

	for i, text := range []string{opts.Left, opts.Right} {
		ta := textarea.New()
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.MaxHeight = 0
		ta.Placeholder = []string{"left document", "right document"}[i]
		ta.SetValue(text)
		m.editors[i] = ta
		if m.titles[i] == "" {
			m.titles[i] = []string{"left", "right"}[i]
		}
	}
	m.editors[0].Focus()

	m.result = Documents(opts.Left, opts.Right, m.mode, m.granularity)
	m.resize()

	return m
}

// newLiveStyles builds the editor styles. Colors come from the same config
// keys as the text output.
func newLiveStyles() liveStyles {
	pick := func(key string, fallback lipgloss.AdaptiveColor) lipgloss.TerminalColor {
		if c, err := config.GetString(key); err == nil {
			return lipgloss.Color(c)
		}
		return fallback
	}

	title := pick("colors.title", lipgloss.AdaptiveColor{Light: "#b08800", Dark: "#f6be00"})
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

	return liveStyles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(title),
		box:       box,
		focused:   box.BorderForeground(title),
		added:     lipgloss.NewStyle().Foreground(pick("colors.added", lipgloss.AdaptiveColor{Light: "#116329", Dark: "#3fb950"})),
		removed:   lipgloss.NewStyle().Foreground(pick("colors.removed", lipgloss.AdaptiveColor{Light: "#a40e26", Dark: "#f85149"})),
		modified:  lipgloss.NewStyle().Foreground(pick("colors.modified", lipgloss.AdaptiveColor{Light: "#0088a0", Dark: "#00c8f0"})),
		status:    lipgloss.NewStyle().Faint(true),
		separator: " │ ",
	}
}

func (m liveModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case recomputeMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		left, right := m.editors[0].Value(), m.editors[1].Value()
		mode, g, seq := m.mode, m.granularity, m.seq
		return m, func() tea.Msg {
			return resultMsg{seq: seq, result: Documents(left, right, mode, g)}
		}

	case resultMsg:
		if msg.seq == m.seq {
			m.result = msg.result
			m.clampOffset()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.editors[m.focus].Blur()
			m.focus = 1 - m.focus
			return m, m.editors[m.focus].Focus()
		case "ctrl+t":
			m.mode = 1 - m.mode
			m.recomputeNow()
			return m, nil
		case "ctrl+g":
			m.granularity = (m.granularity + 1) % 3 //nolint:mnd
			m.recomputeNow()
			return m, nil
		case "pgdown":
			m.offset += m.paneHeight()
			m.clampOffset()
			return m, nil
		case "pgup":
			m.offset -= m.paneHeight()
			m.clampOffset()
			return m, nil
		}
	}

	before := m.editors[m.focus].Value()
	var cmd tea.Cmd
	m.editors[m.focus], cmd = m.editors[m.focus].Update(msg)

	if m.editors[m.focus].Value() == before {
		return m, cmd
	}

	// Every edit supersedes the pending recompute.
	m.seq++
	seq := m.seq
	tick := tea.Tick(m.delay, func(time.Time) tea.Msg { return recomputeMsg{seq: seq} })
	return m, tea.Batch(cmd, tick)
}

// recomputeNow rebuilds the diff synchronously and invalidates pending ticks.
func (m *liveModel) recomputeNow() {
	m.seq++
	m.result = Documents(m.editors[0].Value(), m.editors[1].Value(), m.mode, m.granularity)
	m.clampOffset()
}

func (m *liveModel) resize() {
	// Two bordered editors side by side on top, the diff pane and a status
	// line below.
	w := max(m.width/2-2, 10)     //nolint:mnd
	h := max((m.height-3)/2-3, 3) //nolint:mnd
	for i := range m.editors {
		m.editors[i].SetWidth(w)
		m.editors[i].SetHeight(h)
	}
	m.clampOffset()
}

func (m liveModel) paneHeight() int {
	return max(m.height-(m.editors[0].Height()+3)-1, 1) //nolint:mnd
}

func (m *liveModel) clampOffset() {
	limit := max(len(m.diffLines())-m.paneHeight(), 0)
	m.offset = min(max(m.offset, 0), limit)
}

func (m liveModel) View() string {
	boxes := make([]string, len(m.editors))
	for i, ed := range m.editors {
		style := m.styles.box
		if i == m.focus {
			style = m.styles.focused
		}
		boxes[i] = style.Render(m.styles.title.Render(m.titles[i]) + "\n" + ed.View())
	}

	lines := m.diffLines()
	end := min(m.offset+m.paneHeight(), len(lines))
	pane := strings.Join(lines[min(m.offset, end):end], "\n")

	unit := "lines"
	if m.mode == UnifiedMode {
		unit = m.granularity.String()
	}
	status := fmt.Sprintf("%s · %s · tab focus · ctrl+t view · ctrl+g granularity · pgup/pgdn scroll · esc quit",
		m.mode, output.StatsLine(m.result.Stats(), unit))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		pane,
		m.styles.status.Render(runewidth.Truncate(status, m.width, "…")))
}

// diffLines renders the current result as display lines fitted to the
// window width.
func (m liveModel) diffLines() []string {
	var lines []string

	if m.result.Split != nil {
		rows := m.result.Split.Rows
		numw := len(strconv.Itoa(len(rows)))
		cellw := max((m.width-numw-2*runewidth.StringWidth(m.styles.separator))/2, 1) //nolint:mnd

		for _, row := range rows {
			left, right := output.Cells(row)
			line := fmt.Sprintf("%*d", numw, row.Number) + m.styles.separator +
				runewidth.FillRight(fit(left, cellw), cellw) + m.styles.separator +
				fit(right, cellw)

			switch row.Type {
			case diff.RowAdded:
				line = m.styles.added.Render(line)
			case diff.RowRemoved:
				line = m.styles.removed.Render(line)
			case diff.RowModified:
				line = m.styles.modified.Render(line)
			}
			lines = append(lines, line)
		}
		return lines
	}

	if m.result.Unified == nil {
		return lines
	}

	v := m.result.Unified
	if v.Granularity == diff.Lines {
		for _, e := range v.Edits {
			line := fit(e.Op.Prefix()+e.Text, m.width)
			switch e.Op {
			case diff.Added:
				line = m.styles.added.Render(line)
			case diff.Removed:
				line = m.styles.removed.Render(line)
			}
			lines = append(lines, line)
		}
		return lines
	}

	for _, line := range strings.Split(output.Markup(v.Runs), "\n") {
		lines = append(lines, fit(line, m.width))
	}
	return lines
}

// fit expands tabs and truncates s to width display cells.
func fit(s string, width int) string {
	return runewidth.Truncate(strings.ReplaceAll(s, "\t", "    "), width, "…")
}
