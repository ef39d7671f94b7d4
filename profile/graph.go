package profile

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

type layerNode struct {
	id   int64
	name string
}

func (n layerNode) ID() int64 {
	return n.id
}

// LayerGraph is the directed graph of map switches inside one profile: an edge
// A -> B exists when a map or shift action bound in A targets B.
type LayerGraph struct {
	*simple.DirectedGraph
	profile *Profile
	byName  map[string]layerNode
}

// DanglingTarget is a map or shift action naming a map the profile does not have.
type DanglingTarget struct {
	Map    string `json:"map"`
	Key    string `json:"key"`
	Target string `json:"target"`
}

type LayerReport struct {
	Profile     string           `json:"profile"`
	DefaultMap  string           `json:"default_map"`
	Unreachable []string         `json:"unreachable"`
	Dangling    []DanglingTarget `json:"dangling"`
}

func NewLayerGraph(p *Profile) *LayerGraph {
	g := &LayerGraph{DirectedGraph: simple.NewDirectedGraph(), profile: p, byName: map[string]layerNode{}}
	for i, name := range p.MapNames() {
		n := layerNode{id: int64(i), name: name}
		g.byName[name] = n
		g.AddNode(n)
	}
	for _, name := range p.MapNames() {
		from := g.byName[name]
		for _, actions := range p.Maps[name].Binding {
			for _, a := range actions {
				if a.Type != ActionMap && a.Type != ActionShift {
					continue
				}
				to, ok := g.byName[a.Value]
				if !ok || to.id == from.id {
					continue
				}
				g.SetEdge(g.NewEdge(from, to))
			}
		}
	}
	return g
}

// Reachable returns the maps reachable from the default map, including it.
func (g *LayerGraph) Reachable() []string {
	start, ok := g.byName[g.profile.DefaultMap]
	if !ok {
		return nil
	}
	var names []string
	bfs := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			names = append(names, n.(layerNode).name)
		},
	}
	bfs.Walk(g, start, nil)
	slices.Sort(names)
	return names
}

func (g *LayerGraph) Report() LayerReport {
	report := LayerReport{
		Profile:     g.profile.Name,
		DefaultMap:  g.profile.DefaultMap,
		Unreachable: []string{},
		Dangling:    []DanglingTarget{},
	}
	reachable := g.Reachable()
	for _, name := range g.profile.MapNames() {
		if !slices.Contains(reachable, name) {
			report.Unreachable = append(report.Unreachable, name)
		}
	}
	for _, name := range g.profile.MapNames() {
		m := g.profile.Maps[name]
		keys := make([]string, 0, len(m.Binding))
		for key := range m.Binding {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			for _, a := range m.Binding[key] {
				if a.Type != ActionMap && a.Type != ActionShift {
					continue
				}
				if _, ok := g.byName[a.Value]; !ok {
					report.Dangling = append(report.Dangling, DanglingTarget{Map: name, Key: key, Target: a.Value})
				}
			}
		}
	}
	return report
}

// LayerReports analyses every profile in the store.
func (s *Store) LayerReports() []LayerReport {
	profiles := s.Profiles()
	reports := make([]LayerReport, 0, len(profiles))
	for i := range profiles {
		reports = append(reports, NewLayerGraph(&profiles[i]).Report())
	}
	return reports
}
