package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

const tuiKeyHelp = `Keys
  :            focus the command bar (↑/↓ browse history, ctrl+n/ctrl+p cycle completions)
  enter        open the selected project
  tab 1-5      switch project tabs
  /            filter tasks or documents
  f            cycle the task priority filter
  a            add to the current tab
  e x          edit or delete the project
  esc          back
  q ctrl+c     quit

Commands run in the context of the open project, so "gantt" or
"task list" need no PROJECT argument.`

// execute dispatches one command-bar line. Built-ins are handled here;
// everything else runs through the cobra tree with output captured.
func (c *commandBar) execute(line string) tea.Cmd {
	parts, err := splitShellArgs(line)
	if err != nil {
		return outputCmd(shellError(err))
	}
	if len(parts) == 0 {
		return nil
	}

	switch strings.ToLower(parts[0]) {
	case "quit", "exit":
		return func() tea.Msg { return quitMsg{} }
	case "clear":
		return nil
	case "tui":
		return outputCmd(formatter.Dim("Already in the TUI."))
	case "help":
		if len(parts) == 1 {
			help := captureCobraOutput(c.state.App, []string{"--help"}, c.state.ActiveProjectID)
			return outputCmd(tuiKeyHelp + "\n\n" + help)
		}
	case "open":
		return c.open(parts[1:])
	}

	app, active := c.state.App, c.state.ActiveProjectID
	return func() tea.Msg {
		return actionDoneMsg{output: captureCobraOutput(app, parts, active)}
	}
}

func (c *commandBar) open(args []string) tea.Cmd {
	if len(args) == 0 {
		return outputCmd(formatter.StyleYellow.Render("Usage: open PROJECT"))
	}
	state := c.state
	ref := strings.Join(args, " ")
	return func() tea.Msg {
		p, err := state.App.Projects.Resolve(context.Background(), ref)
		if err != nil {
			return cmdOutputMsg{output: shellError(err)}
		}
		return pushViewMsg{view: newDetailView(state, p)}
	}
}

// captureCobraOutput runs args through a fresh command tree and returns
// what it printed. The active project becomes the default PROJECT.
func captureCobraOutput(app *App, args []string, activeProjectID string) string {
	scoped := *app
	scoped.ActiveProject = activeProjectID
	scoped.Interactive = false

	var buf bytes.Buffer
	root := NewRootCmd(&scoped)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	root.SilenceErrors = true

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
		buf.WriteString(shellError(err))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// splitShellArgs splits a command line into words, honouring single and
// double quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var (
		parts   []string
		cur     strings.Builder
		started bool

		inSingle, inDouble, escaped bool
	)
	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		started = false
	}

	for _, r := range input {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inSingle:
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
		case inDouble:
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
		default:
			switch r {
			case '\\':
				escaped = true
			case '\'':
				inSingle = true
			case '"':
				inDouble = true
			case ' ', '\t', '\n', '\r':
				if started {
					flush()
				}
				continue
			default:
				cur.WriteRune(r)
			}
		}
		started = true
	}

	if escaped {
		return nil, errors.New("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if started {
		flush()
	}
	return parts, nil
}
