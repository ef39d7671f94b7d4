package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"leguru.net/keybindd/profile"
)

const (
	colLayerProfile = "profile"
	colLayerDefault = "default"
	colLayerIssue   = "issue"
	colProfileID    = "id"
	colProfileName  = "name"
)

type LayersModel struct {
	ti    termInfo
	table table.Model
}

func layerRows(reports []profile.LayerReport) []table.Row {
	rows := []table.Row{}
	for _, r := range reports {
		issues := []string{}
		for _, name := range r.Unreachable {
			issues = append(issues, "unreachable map "+name)
		}
		for _, d := range r.Dangling {
			issues = append(issues, "key "+d.Key+" in "+d.Map+" targets missing map "+d.Target)
		}
		if len(issues) == 0 {
			issues = append(issues, "ok")
		}
		rows = append(rows, table.NewRow(table.RowData{
			colLayerProfile: r.Profile,
			colLayerDefault: r.DefaultMap,
			colLayerIssue:   strings.Join(issues, "; "),
		}))
	}
	return rows
}

func (m *LayersModel) Init() tea.Cmd {
	return nil
}

func (m *LayersModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *LayersModel) View() string {
	return m.ti.renderer.NewStyle().MarginLeft(1).Render(m.table.View())
}

func NewLayersModel(ti termInfo, source Source) *LayersModel {
	cols := []table.Column{
		table.NewColumn(colLayerProfile, "Profile", 16),
		table.NewColumn(colLayerDefault, "Default map", 16),
		table.NewColumn(colLayerIssue, "Issues", 60),
	}
	_style := ti.renderer.NewStyle().Align(lipgloss.Left)
	_table := table.New(cols).WithRows(layerRows(source.LayerReports())).BorderRounded().WithBaseStyle(_style).WithPageSize(20).Focused(true)
	return &LayersModel{ti: ti, table: _table}
}

type ProfilesModel struct {
	ti    termInfo
	table table.Model
}

func (m *ProfilesModel) Init() tea.Cmd {
	return nil
}

func (m *ProfilesModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ProfilesModel) View() string {
	return m.ti.renderer.NewStyle().MarginLeft(1).Render(m.table.View())
}

func NewProfilesModel(ti termInfo, source Source) *ProfilesModel {
	cols := []table.Column{
		table.NewColumn(colProfileID, "Id", 4),
		table.NewColumn(colProfileName, "Name", 24),
		table.NewColumn(colLayerDefault, "Default map", 16),
	}
	rows := []table.Row{}
	for _, p := range source.ListProfiles() {
		rows = append(rows, table.NewRow(table.RowData{
			colProfileID:    int(p.ID),
			colProfileName:  p.Name,
			colLayerDefault: p.DefaultMap,
		}))
	}
	_style := ti.renderer.NewStyle().Align(lipgloss.Left)
	_table := table.New(cols).WithRows(rows).BorderRounded().WithBaseStyle(_style).WithPageSize(20).SortByAsc(colProfileID).Focused(true)
	return &ProfilesModel{ti: ti, table: _table}
}
