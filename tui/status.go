package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"golang.org/x/exp/slices"
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/profile"
	"leguru.net/keybindd/utils"
)

const (
	colKeyCode    = "key"
	colKeyActions = "actions"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second*1, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// StatusModel shows the session of the device and the bindings of its active map.
type StatusModel struct {
	ti     termInfo
	source Source
	status binding.Status
	table  table.Model
}

func (m *StatusModel) makeColumns() []table.Column {
	return []table.Column{
		table.NewColumn(colKeyCode, "Key", 6),
		table.NewColumn(colKeyActions, "Actions", 64),
	}
}

func fmtAction(a profile.Action) string {
	return fmt.Sprintf("%s:%s", a.Type, a.Value)
}

func bindingRows(bindings map[string][]profile.Action) []table.Row {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		if aerr != nil || berr != nil {
			return strings.Compare(a, b)
		}
		return ai - bi
	})

	rows := make([]table.Row, 0, len(keys))
	for _, k := range keys {
		parts := make([]string, 0, len(bindings[k]))
		for _, a := range bindings[k] {
			parts = append(parts, fmtAction(a))
		}
		rows = append(rows, table.NewRow(table.RowData{
			colKeyCode:    k,
			colKeyActions: strings.Join(parts, ", "),
		}))
	}
	return rows
}

func (m *StatusModel) refresh() {
	m.status = m.source.Status()
	m.table = m.table.WithRows(bindingRows(m.status.Binding))
}

func (m *StatusModel) Init() tea.Cmd {
	return tickCmd()
}

func (m *StatusModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)
	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)

	if _, ok := msg.(tickMsg); ok {
		m.refresh()
		cmds = append(cmds, tickCmd())
	}
	return m, tea.Batch(cmds...)
}

func fmtOptionalKey(code *int) string {
	if code == nil {
		return "-"
	}
	return utils.FmtKeyCode(*code)
}

func (m *StatusModel) View() string {
	s := m.status
	label := m.ti.renderer.NewStyle().Bold(true)
	macro := "off"
	if s.MacroMode {
		macro = "recording to " + fmtOptionalKey(s.MacroKey)
	}
	view := lipgloss.JoinVertical(
		lipgloss.Left,
		label.Render("Profile: ")+fmt.Sprintf("%s (%d)", s.ProfileName, s.ProfileID),
		label.Render("Map:     ")+s.MapName,
		label.Render("Shift:   ")+fmtOptionalKey(s.ShiftKey),
		label.Render("Macro:   ")+macro,
		label.Render("Pressed: ")+utils.FmtKeyList(s.Pressed),
		m.table.View(),
	)
	return m.ti.renderer.NewStyle().MarginLeft(1).Render(view)
}

func NewStatusModel(ti termInfo, source Source) *StatusModel {
	model := StatusModel{ti: ti, source: source}
	_style := ti.renderer.NewStyle().Align(lipgloss.Left)
	model.table = table.New(model.makeColumns()).BorderRounded().WithBaseStyle(_style).WithPageSize(20).Focused(true)
	model.refresh()
	return &model
}
