package graphs_go

import (
	"fmt"

	"github.com/mohamedthameursassi/trainroute/models"
)

// Edge is a directed route between two stations weighted by its trip duration.
type Edge struct {
	From         *models.Station
	To           *models.Station
	TripDuration float64
}

// Graph is a directed weighted graph of stations. Vertices are compared by
// pointer, so two stations sharing a name are still distinct vertices.
type Graph struct {
	stations []*models.Station
	members  map[*models.Station]struct{}
	edges    map[*models.Station][]Edge
	count    int
}

func NewGraph() *Graph {
	return &Graph{
		members: make(map[*models.Station]struct{}),
		edges:   make(map[*models.Station][]Edge),
	}
}

// AddStation adds s as a vertex. Adding the same pointer twice is a no-op.
func (g *Graph) AddStation(s *models.Station) {
	if s == nil {
		return
	}
	if _, ok := g.members[s]; ok {
		return
	}
	g.members[s] = struct{}{}
	g.stations = append(g.stations, s)
}

// AddEdge appends a directed edge. Parallel edges are kept.
func (g *Graph) AddEdge(from, to *models.Station, tripDuration float64) error {
	if !g.HasStation(from) {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, from)
	}
	if !g.HasStation(to) {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, to)
	}
	g.edges[from] = append(g.edges[from], Edge{From: from, To: to, TripDuration: tripDuration})
	g.count++
	return nil
}

func (g *Graph) HasStation(s *models.Station) bool {
	if s == nil {
		return false
	}
	_, ok := g.members[s]
	return ok
}

// Stations returns the vertices in insertion order.
func (g *Graph) Stations() []*models.Station {
	return append([]*models.Station(nil), g.stations...)
}

// EdgesFrom returns the outgoing edges of s.
func (g *Graph) EdgesFrom(s *models.Station) []Edge {
	return g.edges[s]
}

func (g *Graph) StationCount() int { return len(g.stations) }
func (g *Graph) EdgeCount() int    { return g.count }
