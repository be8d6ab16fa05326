package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation and output messages handled by appModel.Update.

type pushViewMsg struct {
	view View
}

type popViewMsg struct{}

// cmdOutputMsg carries command output to show in the content area until
// the next key press.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg pops the wizard view, then runs nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// actionDoneMsg reports the result of a command or mutation. The output is
// shown and every view reloads.
type actionDoneMsg struct {
	output string
}

// refreshViewMsg is broadcast to all views after a mutation.
type refreshViewMsg struct{}

type quitMsg struct{}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refreshViews() tea.Msg {
	return refreshViewMsg{}
}

func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

func wizardCompleteOutput(s string) tea.Msg {
	return wizardCompleteMsg{nextCmd: outputCmd(s)}
}
