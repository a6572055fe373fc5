package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"formulang/internal/ast"
	"formulang/internal/diagfmt"
	"formulang/internal/driver"
)

const entryName = "<repl>"

var (
	entryTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	entryOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	entryErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	entryDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	entryAccept = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// EntryModel is an interactive formula prompt. Every keystroke re-parses
// the input; Enter accepts a formula without errors.
type EntryModel struct {
	ctx      context.Context
	cfg      driver.Config
	input    textinput.Model
	result   *driver.ParseResult
	err      error
	accepted []string
	width    int
	quitting bool
}

// NewEntryModel returns the model used by the repl command.
func NewEntryModel(ctx context.Context, cfg driver.Config) *EntryModel {
	ti := textinput.New()
	ti.Placeholder = "RSI(14) < 30 and close > EMA(50)"
	ti.Prompt = "ƒ> "
	ti.CharLimit = 4096
	ti.Focus()
	m := &EntryModel{ctx: ctx, cfg: cfg, input: ti, width: 80}
	m.reparse()
	return m
}

// Accepted returns the formulas confirmed with Enter, in order.
func (m *EntryModel) Accepted() []string { return m.accepted }

func (m *EntryModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.accept()
			return m, nil
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.Width = msg.Width - 6
		}
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.reparse()
	}
	return m, cmd
}

func (m *EntryModel) reparse() {
	m.result, m.err = driver.ParseSource(m.ctx, entryName, m.input.Value(), m.cfg)
}

func (m *EntryModel) valid() bool {
	return m.err == nil && m.result != nil && !m.result.Bag.HasErrors() && len(m.result.Program.Stmts) > 0
}

func (m *EntryModel) accept() {
	if !m.valid() {
		return
	}
	m.accepted = append(m.accepted, ast.Format(m.result.Program))
	m.input.Reset()
	m.reparse()
}

func (m *EntryModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(entryTitle.Render("formulang: enter a formula (Enter accepts, Esc quits)"))
	b.WriteString("\n\n")
	for _, f := range m.accepted {
		b.WriteString(entryAccept.Render("  ✓ " + truncate(f, m.width-4)))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(entryErr.Render(m.err.Error()))
	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(entryDim.Render("(empty)"))
	case m.result.Bag.Len() > 0:
		var diags strings.Builder
		diagfmt.Pretty(&diags, m.result.Bag, m.result.FileSet, diagfmt.PrettyOpts{ShowNotes: true})
		b.WriteString(entryErr.Render(strings.TrimRight(diags.String(), "\n")))
	default:
		b.WriteString(entryOK.Render("ok "))
		b.WriteString(entryDim.Render(truncate(ast.Sexpr(m.result.Program), m.width-4)))
	}
	b.WriteString("\n")
	return b.String()
}
