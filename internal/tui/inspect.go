// Package tui is an interactive inspector for transcribed trajectory
// problems: tweak the problem parameters, re-evaluate the guess and watch
// where the residuals go.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/trajopt/internal/metrics"
	"github.com/san-kum/trajopt/internal/problem"
	"github.com/san-kum/trajopt/internal/transcribe"
	"github.com/san-kum/trajopt/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	paramFriction = iota
	paramFinalTime
	paramIntervals
	numParams
)

var paramNames = [numParams]string{"friction", "final time", "intervals"}

type model struct {
	def   problem.Definition
	tr    *transcribe.Transcriber
	setup *problem.Setup
	z     []float64

	eval    *transcribe.Evaluation
	evalErr error
	fdWorst float64
	fdRun   bool

	cursor int
	width  int
	height int
}

// NewInspector builds the interactive model for one problem definition.
func NewInspector(def problem.Definition) (tea.Model, error) {
	m := model{def: def, width: 80, height: 24}
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

// Run starts the inspector and blocks until the user quits.
func Run(def problem.Definition) error {
	m, err := NewInspector(def)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *model) rebuild() error {
	tr, setup, err := m.def.Build()
	if err != nil {
		return err
	}
	m.tr = tr
	m.setup = setup
	m.z = setup.Guess
	m.reevaluate()
	return nil
}

func (m *model) reevaluate() {
	m.fdRun = false
	m.eval, m.evalErr = m.tr.Evaluate(m.z)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor + numParams - 1) % numParams
	case "down", "j":
		m.cursor = (m.cursor + 1) % numParams
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "r":
		m.def.TfGuess = 0
		if err := m.rebuild(); err != nil {
			m.evalErr = err
		}
	case "c":
		worst, err := transcribe.VerifyJacobian(m.tr, m.z)
		if err != nil {
			m.evalErr = err
		} else {
			m.fdWorst = worst
			m.fdRun = true
		}
	}
	return m, nil
}

func (m *model) adjust(dir int) {
	switch m.cursor {
	case paramFriction:
		next := m.def.Friction + 0.02*float64(dir)
		if next < 0 {
			next = 0
		}
		m.def.Friction = next
		if err := m.rebuild(); err != nil {
			m.evalErr = err
		}
	case paramFinalTime:
		l := m.tr.Layout()
		next := m.z[l.ColTf()] + 0.1*float64(dir)
		if next <= m.def.T0 {
			return
		}
		m.z[l.ColTf()] = next
		m.reevaluate()
	case paramIntervals:
		next := m.def.N + 5*dir
		if next < 5 {
			return
		}
		m.def.N = next
		if err := m.rebuild(); err != nil {
			m.evalErr = err
		}
	}
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(cyan.Render("trajopt inspector"))
	sb.WriteString(dim.Render("  ↑/↓ select  ←/→ adjust  c fd-check  r reset  q quit"))
	sb.WriteString("\n\n")

	l := m.tr.Layout()
	values := [numParams]string{
		fmt.Sprintf("%.3f", m.def.Friction),
		fmt.Sprintf("%.3f", m.z[l.ColTf()]),
		fmt.Sprintf("%d", m.def.N),
	}
	for i := 0; i < numParams; i++ {
		marker := "  "
		style := white
		if i == m.cursor {
			marker = "> "
			style = yellow
		}
		sb.WriteString(style.Render(fmt.Sprintf("%s%-12s %s", marker, paramNames[i], values[i])))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.evalErr != nil {
		sb.WriteString(red.Render("evaluation failed: " + m.evalErr.Error()))
		sb.WriteString("\n")
		return sb.String()
	}

	violation := metrics.NewViolation(m.setup.FLow, m.setup.FUpp)
	violation.Observe(m.eval)
	dynNorm := metrics.NewDynamicsNorm(l)
	dynNorm.Observe(m.eval)

	sb.WriteString(white.Render(fmt.Sprintf("max violation  %.3e    dynamics norm  %.3e    nnz  %d",
		violation.Value(), dynNorm.Value(), len(m.eval.G))))
	sb.WriteString("\n")
	if m.fdRun {
		style := green
		if m.fdWorst > 1e-6 {
			style = red
		}
		sb.WriteString(style.Render(fmt.Sprintf("fd mismatch    %.3e", m.fdWorst)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	plotWidth := m.width - 12
	if plotWidth < 30 {
		plotWidth = 30
	}
	sb.WriteString(viz.ResidualProfile(m.eval.F, plotWidth, 8))
	sb.WriteString("\n\n")

	if vars, err := transcribe.SplitVars(m.z, m.def.N); err == nil {
		sb.WriteString(viz.Descent(vars.Y, plotWidth, 6))
		sb.WriteString("\n")
	}

	return sb.String()
}
