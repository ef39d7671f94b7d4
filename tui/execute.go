package tui

import (
	"bytes"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var suggestions = []string{"help", "status", "layers", "profiles"}

type HelpModel struct {
	ti termInfo
}

func (m *HelpModel) Init() tea.Cmd {
	return nil
}

func (m *HelpModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m *HelpModel) View() string {
	var buffer bytes.Buffer
	buffer.WriteString("Commands help\n")
	buffer.WriteString("-- status     active profile, map and bindings\n")
	buffer.WriteString("-- layers     unreachable maps and dangling map targets\n")
	buffer.WriteString("-- profiles   configured profiles\n")
	return buffer.String()
}

func NewHelpModel(ti termInfo) *HelpModel {
	return &HelpModel{ti: ti}
}

type ErrorReplyModel struct {
	ti  termInfo
	err error
}

func (m *ErrorReplyModel) Init() tea.Cmd {
	return nil
}

func (m *ErrorReplyModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m *ErrorReplyModel) View() string {
	return m.ti.renderer.NewStyle().Foreground(lipgloss.ANSIColor(9)).Render(fmt.Sprintf("Error: %s\n", m.err.Error()))
}

func NewErrorReplyModel(ti termInfo, err error) *ErrorReplyModel {
	return &ErrorReplyModel{ti: ti, err: err}
}

func (m model) execute_command(cmd string) Model {
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return nil
	}
	switch tokens[0] {
	case "help":
		return NewHelpModel(m.ti)
	case "status":
		return NewStatusModel(m.ti, m.source)
	case "layers":
		return NewLayersModel(m.ti, m.source)
	case "profiles":
		return NewProfilesModel(m.ti, m.source)
	}
	return NewErrorReplyModel(m.ti, fmt.Errorf("unknown command %q", tokens[0]))
}
