package cli

import (
	"sort"
	"strings"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// builtinCommands are handled by the command bar itself rather than cobra.
var builtinCommands = []string{"open", "help", "clear", "quit", "exit"}

// commandBar is the text input at the bottom of the TUI. It keeps an
// in-memory history and offers completions for command names.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history    []string
	historyIdx int

	// commands maps each top-level cobra command to its subcommands.
	commands map[string][]string
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	return commandBar{
		input:    ti,
		state:    state,
		commands: commandTree(NewRootCmd(state.App)),
	}
}

// commandTree lists the visible commands of root and their subcommands.
func commandTree(root *cobra.Command) map[string][]string {
	tree := make(map[string][]string)
	for _, c := range root.Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		var subs []string
		for _, s := range c.Commands() {
			if !s.Hidden {
				subs = append(subs, s.Name())
			}
		}
		tree[c.Name()] = subs
	}
	return tree
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
	c.input.Reset()
	c.input.SetSuggestions(nil)
}

func (c *commandBar) Focused() bool {
	return c.focused
}

func (c *commandBar) SetWidth(w int) {
	c.input.Width = max(w-len(c.promptPlain())-1, 10)
}

// Update handles a key while the bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(c.input.Value())
		c.Blur()
		if line == "" {
			return nil
		}
		c.addHistory(line)
		return c.execute(line)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey forwards cursor blinks and similar messages.
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	if !c.focused {
		return c.prompt() + formatter.Dim("press : to type a command")
	}
	return c.prompt() + c.input.View()
}

func (c *commandBar) prompt() string {
	p := formatter.StylePurple.Render("planboard")
	if c.state.ActiveProjectName != "" {
		p += " " + formatter.Dim("(") + formatter.StyleGreen.Render(c.state.ActiveProjectName) + formatter.Dim(")")
	}
	return p + " " + formatter.Dim("❯") + " "
}

func (c *commandBar) promptPlain() string {
	if c.state.ActiveProjectName == "" {
		return "planboard ❯ "
	}
	return "planboard (" + c.state.ActiveProjectName + ") ❯ "
}

func (c *commandBar) addHistory(line string) {
	if n := len(c.history); n == 0 || c.history[n-1] != line {
		c.history = append(c.history, line)
	}
	c.historyIdx = len(c.history)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
		return
	}
	c.historyIdx = len(c.history)
	c.input.SetValue("")
}

// updateSuggestions offers whole-line completions, since textinput matches
// suggestions against the full value.
func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	parts := strings.Fields(text)
	trailing := strings.HasSuffix(text, " ")

	switch {
	case text == "":
		c.input.SetSuggestions(nil)

	case len(parts) == 1 && !trailing:
		c.input.SetSuggestions(filterSuggestions(c.topLevelNames(), parts[0]))

	case len(parts) == 1 || (len(parts) == 2 && !trailing):
		prefix := ""
		if len(parts) == 2 {
			prefix = parts[1]
		}
		var pool []string
		name := strings.ToLower(parts[0])
		if name == "open" {
			pool = c.projectNames()
		} else {
			pool = c.commands[name]
		}
		var lines []string
		for _, s := range filterSuggestions(pool, prefix) {
			lines = append(lines, parts[0]+" "+s)
		}
		c.input.SetSuggestions(lines)

	default:
		c.input.SetSuggestions(nil)
	}
}

func (c *commandBar) topLevelNames() []string {
	names := append([]string(nil), builtinCommands...)
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *commandBar) projectNames() []string {
	var names []string
	for _, p := range c.state.Projects {
		names = append(names, p.DisplayID())
	}
	return names
}

// filterSuggestions returns items from pool that start with prefix,
// ignoring case.
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var out []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			out = append(out, s)
		}
	}
	return out
}
