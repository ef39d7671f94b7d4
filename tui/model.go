package tui

import (
	"bytes"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish/bubbletea"
)

type Model interface {
	Init() tea.Cmd
	Update(tea.Msg) (Model, tea.Cmd)
	View() string
}

type termInfo struct {
	term     string
	width    int
	height   int
	renderer *lipgloss.Renderer
}

func teaHandler(source Source) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := s.Pty()
		ti := termInfo{
			term:     pty.Term,
			width:    pty.Window.Width,
			height:   pty.Window.Height,
			renderer: bubbletea.MakeRenderer(s),
		}
		log.Printf("Terminal %s Color profile %s", pty.Term, ti.renderer.ColorProfile().Name())
		return newModel(ti, source), []tea.ProgramOption{tea.WithAltScreen()}
	}
}

type model struct {
	ti        termInfo
	source    Source
	keys      keymap
	help      help.Model
	textInput textinput.Model
	submodel  Model
}

func newModel(ti termInfo, source Source) model {
	m := model{
		ti:        ti,
		source:    source,
		keys:      GetKeymap(),
		help:      help.New(),
		textInput: textinput.New(),
	}
	m.textInput.Prompt = "Command> "
	m.textInput.Placeholder = "<write command here>"
	m.textInput.Focus()
	m.textInput.CharLimit = 128
	m.textInput.Width = 64
	m.textInput.ShowSuggestions = true
	m.textInput.SetSuggestions(suggestions)

	m.textInput.PromptStyle = ti.renderer.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(32))
	m.textInput.PlaceholderStyle = ti.renderer.NewStyle().Foreground(lipgloss.ANSIColor(8))
	m.textInput.TextStyle = ti.renderer.NewStyle()

	m.submodel = NewStatusModel(ti, source)
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.submodel.Init())
}

func (m model) open(sub Model) (tea.Model, tea.Cmd) {
	m.submodel = sub
	if sub == nil {
		return m, nil
	}
	return m, sub.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ti.height = msg.Height
		m.ti.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.status):
			return m.open(NewStatusModel(m.ti, m.source))
		case key.Matches(msg, m.keys.layers):
			return m.open(NewLayersModel(m.ti, m.source))
		case key.Matches(msg, m.keys.close):
			if m.submodel == nil {
				return m, tea.Quit
			}
			m.submodel = nil
			return m, nil
		case msg.Type == tea.KeyEnter:
			sub := m.execute_command(m.textInput.Value())
			m.textInput.SetValue("")
			if sub != nil {
				return m.open(sub)
			}
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)
	if m.submodel != nil {
		m.submodel, cmd = m.submodel.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	var buffer bytes.Buffer
	buffer.WriteString(m.textInput.View())
	buffer.WriteString("\n\n")
	if m.submodel != nil {
		buffer.WriteString(m.submodel.View())
		buffer.WriteString("\n")
	}
	buffer.WriteString(m.help.View(m.keys))
	return buffer.String()
}
