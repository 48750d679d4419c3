package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"jstyper/internal/diag"
	"jstyper/internal/ir"
	"jstyper/internal/names"
	"jstyper/internal/script"
	"jstyper/internal/typer"
)

var replCmd = &cobra.Command{
	Use:   "repl [flags] <script.json>",
	Short: "Step through an operation script interactively, watching types settle",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().String("env", "", "path to a TOML environment config (defaults to canonical primitives, no builtins)")
}

func runRepl(cmd *cobra.Command, args []string) error {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	envPath, err := cmd.Flags().GetString("env")
	if err != nil {
		return err
	}

	in := names.New()
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	environment, err := loadEnvironment(envPath, in, rep)
	if err != nil {
		printDiagnostics(cmd, bag.Items())
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	prog, err := script.Decode(f, in, rep)
	f.Close()
	if err != nil {
		printDiagnostics(cmd, bag.Items())
		return err
	}

	t := typer.New(environment, in)
	model := newReplModel(prog, t, in)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, err = program.Run()
	return err
}

type replModel struct {
	prog  *script.Program
	t     *typer.Typer
	in    *names.Interner
	vars  []ir.VarID
	seen  map[ir.VarID]bool
	index int
	crash string
	width int
	bar   progress.Model
}

func newReplModel(prog *script.Program, t *typer.Typer, in *names.Interner) *replModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return &replModel{prog: prog, t: t, in: in, seen: make(map[ir.VarID]bool), width: 80, bar: bar}
}

func (m *replModel) Init() tea.Cmd { return nil }

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		m.bar = updated.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n", "enter", " ":
			m.step()
			return m, m.setPercent()
		case "N":
			for m.index < len(m.prog.Steps) && m.crash == "" {
				m.step()
			}
			return m, m.setPercent()
		}
	}
	return m, nil
}

func (m *replModel) setPercent() tea.Cmd {
	if len(m.prog.Steps) == 0 {
		return nil
	}
	return m.bar.SetPercent(float64(m.index) / float64(len(m.prog.Steps)))
}

// step executes exactly one decoded instruction and records any variable
// it touches, so the view only ever lists variables seen so far.
func (m *replModel) step() {
	if m.crash != "" || m.index >= len(m.prog.Steps) {
		return
	}
	s := m.prog.Steps[m.index]
	m.index++

	func() {
		defer func() {
			if r := recover(); r != nil {
				m.crash = fmt.Sprintf("%v", r)
			}
		}()
		switch {
		case s.EnterBlock != nil:
			m.t.EnterBlock(s.EnterBlock.Kind, s.EnterBlock.Meta)
		case s.LeaveBlock:
			m.t.LeaveBlock()
		case s.Op != nil:
			m.t.Analyze(s.Op.Op, s.Op.Inputs, s.Op.Outputs)
			for _, v := range s.Op.Outputs {
				if !m.seen[v] {
					m.seen[v] = true
					m.vars = append(m.vars, v)
				}
			}
		}
	}()
}

func (m *replModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	header := fmt.Sprintf("step %d/%d", m.index, len(m.prog.Steps))
	if m.index >= len(m.prog.Steps) && m.crash == "" {
		header += " (done)"
	}
	b.WriteString(title.Render(header))
	b.WriteString("\n\n")

	sorted := append([]ir.VarID(nil), m.vars...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	nameWidth := 8
	for _, v := range sorted {
		name := fmt.Sprintf("v%d", v)
		if runewidth.StringWidth(name) > nameWidth {
			nameWidth = runewidth.StringWidth(name)
		}
	}
	for _, v := range sorted {
		ty := m.t.TypeOf(v)
		fmt.Fprintf(&b, "%-*s %s\n", nameWidth, fmt.Sprintf("v%d", v), ty.Render(m.in))
	}
	if len(sorted) == 0 {
		b.WriteString(dim.Render("(no variables assigned yet)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.bar.View())
	b.WriteString("\n")
	if m.crash != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("panic: " + m.crash))
		b.WriteString("\n")
	}
	b.WriteString(dim.Render("n/enter: step  N: run to end  q: quit"))
	b.WriteString("\n")
	return b.String()
}
