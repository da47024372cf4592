package graphs_go

import (
	"sort"

	"github.com/mohamedthameursassi/trainroute/models"
)

// StationIndex maps a station name to its Station. A nil index marks a
// network whose load failed; an empty one means no stations were configured.
type StationIndex map[string]*models.Station

// Network is the read-only result of loading a network file.
type Network struct {
	Graph    *Graph
	Stations StationIndex
}

func newEmptyNetwork() *Network {
	return &Network{Graph: NewGraph(), Stations: StationIndex{}}
}

// Loaded reports whether the station index is usable.
func (n *Network) Loaded() bool {
	return n != nil && n.Graph != nil && n.Stations != nil
}

func (n *Network) Lookup(name string) (*models.Station, bool) {
	if n == nil {
		return nil, false
	}
	s, ok := n.Stations[name]
	return s, ok
}

// Names returns the indexed station names sorted alphabetically.
func (n *Network) Names() []string {
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.Stations))
	for name := range n.Stations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (n *Network) invalidate() {
	n.Stations = nil
}
