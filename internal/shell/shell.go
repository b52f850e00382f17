// Package shell implements the interactive prompt and the batch and script
// runners around the statement executor.
package shell

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/app"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/shell/theme"
)

const (
	promptFresh        = "> "
	promptContinuation = "-> "
)

// Messages for async statement execution.
type statementDoneMsg struct {
	result *app.Result
	err    error
}

// Model is the bubbletea model of the interactive shell.
type Model struct {
	ctx     context.Context
	exec    Executor
	history *History
	banner  string

	input    textinput.Model
	acc      Accumulator
	running  bool
	cancel   context.CancelFunc
	quitting bool
}

// NewModel creates the shell model.
func NewModel(ctx context.Context, exec Executor, history *History, banner string) Model {
	ti := textinput.New()
	ti.Prompt = promptFresh
	ti.PromptStyle = theme.StylePrompt
	ti.Placeholder = "SELECT ... ;"
	ti.Focus()

	return Model{
		ctx:     ctx,
		exec:    exec,
		history: history,
		banner:  banner,
		input:   ti,
	}
}

// Init prints the banner and starts the cursor blink.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.banner != "" {
		cmds = append(cmds, tea.Println(theme.StyleTitle.Render(m.banner)))
	}
	return tea.Batch(cmds...)
}

// Update handles key input and statement results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - len(promptContinuation) - 1
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.running {
				m.cancel()
				return m, nil
			}
			if m.acc.Pending() || m.input.Value() != "" {
				m.acc.Reset()
				m.input.Reset()
				m.input.Prompt = promptFresh
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case "ctrl+d":
			if !m.running && m.input.Value() == "" {
				m.quitting = true
				return m, tea.Quit
			}
		}

		// Input is blocked while a statement runs.
		if m.running {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			m.input.SetValue(m.history.Prev(m.input.Value()))
			m.input.CursorEnd()
			return m, nil
		case tea.KeyDown:
			m.input.SetValue(m.history.Next())
			m.input.CursorEnd()
			return m, nil
		}

	case statementDoneMsg:
		m.running = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		if msg.err != nil {
			return m, tea.Println(theme.StyleError.Render("Error: " + msg.err.Error()))
		}
		return m, tea.Println(formatResult(msg.result))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	echo := tea.Println(m.input.Prompt + line)
	m.input.Reset()
	m.history.Add(line)

	if IsQuit(line) {
		m.quitting = true
		return m, tea.Sequence(echo, tea.Quit)
	}

	if !m.acc.Pending() && strings.TrimSpace(line) == tablesCommand {
		return m.start(echo, func(ctx context.Context) (*app.Result, error) {
			return m.exec.ListTables(ctx)
		})
	}

	stmt, ok := m.acc.Add(line)
	if !ok {
		if m.acc.Pending() {
			m.input.Prompt = promptContinuation
		}
		return m, echo
	}
	m.input.Prompt = promptFresh
	return m.start(echo, func(ctx context.Context) (*app.Result, error) {
		return m.exec.Execute(ctx, stmt)
	})
}

// start runs fn in a command with a cancelable context.
func (m Model) start(echo tea.Cmd, fn func(context.Context) (*app.Result, error)) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(m.ctx)
	m.running = true
	m.cancel = cancel
	run := func() tea.Msg {
		res, err := fn(ctx)
		return statementDoneMsg{result: res, err: err}
	}
	return m, tea.Sequence(echo, run)
}

// View renders the prompt line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.running {
		return theme.StyleMuted.Render("executing... (ctrl+c to cancel)")
	}
	return m.input.View()
}

func formatResult(res *app.Result) string {
	summary := theme.StyleSuccess.Render(res.Summary())
	if res.Update {
		return summary
	}
	return res.Output + "\n" + summary
}

// Run starts the interactive shell and blocks until the user quits. The
// history is saved on exit.
func Run(ctx context.Context, exec Executor, historyPath, banner string) error {
	history := LoadHistory(historyPath)
	p := tea.NewProgram(NewModel(ctx, exec, history, banner), tea.WithContext(ctx))
	_, err := p.Run()
	if serr := history.Save(); err == nil {
		err = serr
	}
	return err
}
