package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/abortcalc/internal/engine"
	"github.com/san-kum/abortcalc/internal/margin"
	"github.com/san-kum/abortcalc/internal/sweep"
)

const (
	barWidth     = 24
	chartWidth   = 48
	chartHeight  = 6
	chartSamples = 60
)

// Model drives an engine from keyboard events and renders its snapshots.
type Model struct {
	eng       *engine.Engine
	initial   engine.State
	cursor    margin.Quantity
	editing   bool
	editBuf   string
	status    string
	statusErr bool
	showChart bool
	theme     Theme
	width     int
}

// NewModel returns a model for e. The engine's current snapshot is what the
// "reset" key returns to.
func NewModel(e *engine.Engine) Model {
	return Model{
		eng:       e,
		initial:   e.Current(),
		cursor:    margin.Angle,
		showChart: true,
		theme:     ThemeCyberpunk,
		width:     80,
	}
}

// WithTheme returns m rendered with t.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	return m
}

// Run starts the full-screen calculator on e.
func Run(e *engine.Engine, theme Theme) error {
	_, err := tea.NewProgram(NewModel(e).WithTheme(theme), tea.WithAltScreen()).Run()
	return err
}

// State returns the snapshot currently rendered.
func (m Model) State() engine.State { return m.eng.Current() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg), nil
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > margin.Angle {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < margin.Radius {
			m.cursor++
		}
	case "left", "h":
		m = m.nudge(-1)
	case "right", "l":
		m = m.nudge(1)
	case "H":
		m = m.nudge(-10)
	case "L":
		m = m.nudge(10)
	case "enter":
		if m.cursor == m.State().Output() {
			m = m.fail(fmt.Errorf("%s is computed", m.cursor.Symbol()))
			break
		}
		m.editing, m.editBuf = true, ""
		m.status = ""
	case "o", " ":
		m = m.selectOutput(m.cursor)
	case "1", "2", "3", "4", "5":
		m = m.selectOutput(margin.All[key[0]-'1'])
	case "r":
		m.eng.Reset(m.initial)
		m = m.ok("reset")
	case "t":
		m.theme = nextTheme(m.theme)
		m = m.ok("theme " + m.theme.Name)
	case "c":
		m.showChart = !m.showChart
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) Model {
	switch key := msg.String(); key {
	case "enter":
		m.editing = false
		v, err := strconv.ParseFloat(strings.TrimSpace(m.editBuf), 64)
		m.editBuf = ""
		if err != nil {
			return m.fail(errors.New("invalid number"))
		}
		return m.setInput(m.cursor, v)
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(key) == 1 && strings.ContainsAny(key, "0123456789.+-eE") {
			m.editBuf += key
		}
	}
	return m
}

// nudge moves the cursor quantity by steps slider increments, snapped to the
// slider grid.
func (m Model) nudge(steps int) Model {
	st := m.State()
	if m.cursor == st.Output() {
		return m.fail(fmt.Errorf("%s is computed", m.cursor.Symbol()))
	}
	rng := st.Record(m.cursor).Range
	v := st.Value(m.cursor)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = rng.Start
	}
	n := math.Round((v-rng.Start)/rng.Step) + float64(steps)
	return m.setInput(m.cursor, rng.Start+n*rng.Step)
}

// setInput clamps v to the slider range before handing it to the engine.
func (m Model) setInput(q margin.Quantity, v float64) Model {
	v = m.State().Record(q).Range.Clamp(v)
	if _, err := m.eng.SetInput(q, v); err != nil {
		return m.fail(err)
	}
	m.status = ""
	return m
}

func (m Model) selectOutput(q margin.Quantity) Model {
	if _, err := m.eng.SetOutputTarget(q); err != nil {
		return m.fail(err)
	}
	return m.ok("output " + q.Symbol())
}

func (m Model) ok(s string) Model {
	m.status, m.statusErr = s, false
	return m
}

func (m Model) fail(err error) Model {
	m.status, m.statusErr = err.Error(), true
	return m
}

func (m Model) View() string {
	st := m.State()
	s := newStyles(m.theme)
	var b strings.Builder

	b.WriteString("\n  " + s.title.Render("LATERAL ABORT MARGIN") + "\n")
	b.WriteString("  " + s.subtitle.Render("horizontal time safety margin") + "\n")
	b.WriteString("  " + s.separator(40) + "\n\n")

	b.WriteString("  " + s.hint.Render("output "))
	for i, q := range margin.All {
		radio := fmt.Sprintf("( ) %s", q.Symbol())
		style := s.radioOff
		if q == st.Output() {
			radio, style = fmt.Sprintf("(•) %s", q.Symbol()), s.radioOn
		}
		b.WriteString(style.Render(radio))
		if i < margin.Count-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n\n")

	for _, q := range margin.All {
		b.WriteString(m.viewRow(s, st, q) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.editing:
		b.WriteString("  " + s.key.Render(m.cursor.Symbol()+" = ") + s.value.UnsetWidth().Render(m.editBuf+"_") + "\n")
	case m.status != "" && m.statusErr:
		b.WriteString("  " + s.errStatus.Render(m.status) + "\n")
	case m.status != "":
		b.WriteString("  " + s.status.Render(m.status) + "\n")
	default:
		b.WriteString("\n")
	}

	if m.showChart {
		b.WriteString(m.viewChart(s, st))
	}

	b.WriteString("\n  " + hint(s, "j/k", "select") + hint(s, "h/l", "adjust") + hint(s, "enter", "type") +
		hint(s, "o/1-5", "output") + hint(s, "c", "chart") + hint(s, "t", "theme") + hint(s, "r", "reset") + hint(s, "q", "quit") + "\n")
	return b.String()
}

func (m Model) viewRow(s styles, st engine.State, q margin.Quantity) string {
	rec := st.Record(q)
	locked := q == st.Output()

	pointer := "  "
	if q == m.cursor {
		pointer = s.cursor.Render("▸ ")
	}
	units := rec.Units
	if q == margin.Speed {
		units += " ground"
	}
	row := fmt.Sprintf("%s%s %s %s %s",
		pointer,
		s.label.Render(q.Symbol()),
		s.sliderBar(rec.Range.Fraction(rec.Value), barWidth, locked),
		s.value.Render(engine.FormatValue(rec.Value)),
		s.units.Render(units),
	)
	if locked {
		row += "  " + s.computed.Render("= computed")
	}
	return row
}

func (m Model) viewChart(s styles, st engine.State) string {
	if m.cursor == st.Output() {
		return "\n  " + s.hint.Render(fmt.Sprintf("select an input to chart %s against it", st.Output().Symbol())) + "\n"
	}
	res, err := sweep.Run(st, m.cursor, chartSamples)
	if err != nil {
		return "\n  " + s.errStatus.Render(err.Error()) + "\n"
	}
	vals, _ := res.Outputs()
	if len(vals) < 2 {
		return "\n  " + s.hint.Render("no finite values across the range") + "\n"
	}
	caption := fmt.Sprintf("%s (%s) vs %s", res.Output.Symbol(), res.Output.Units(), res.Free.Symbol())
	graph := asciigraph.Plot(vals,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Offset(2),
		asciigraph.Caption(caption),
	)
	return s.chart.Render(graph) + "\n"
}

func hint(s styles, key, desc string) string {
	return s.key.Render(key) + s.hint.Render(" "+desc+"  ")
}
