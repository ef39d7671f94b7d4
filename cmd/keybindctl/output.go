package main

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/exp/slices"
	"leguru.net/keybindd/profile"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func profilesTable(profiles []profile.ProfileInfo, active profile.ID) string {
	t := newTable("", "Id", "Name", "Default map")
	for _, p := range profiles {
		mark := ""
		if p.ID == active {
			mark = "*"
		}
		t.Row(mark, p.ID.String(), p.Name, p.DefaultMap)
	}
	return t.String()
}

func actionsTable(actions []profile.Action) string {
	t := newTable("Pos", "Type", "Value")
	for i, a := range actions {
		t.Row(strconv.Itoa(i), string(a.Type), a.Value)
	}
	return t.String()
}

func bindingsTable(bindings map[string][]profile.Action) string {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ai, _ := strconv.Atoi(a)
		bi, _ := strconv.Atoi(b)
		return ai - bi
	})
	t := newTable("Key", "Actions")
	for _, k := range keys {
		parts := make([]string, 0, len(bindings[k]))
		for _, a := range bindings[k] {
			parts = append(parts, string(a.Type)+":"+a.Value)
		}
		t.Row(k, strings.Join(parts, ", "))
	}
	return t.String()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
