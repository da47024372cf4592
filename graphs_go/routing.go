package graphs_go

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/mohamedthameursassi/trainroute/models"
)

// Trip is the cheapest way found from Origin to Destination. Path is empty
// and Duration is +Inf when Destination cannot be reached.
type Trip struct {
	Origin      *models.Station
	Destination *models.Station
	Duration    float64
	Path        []*models.Station
}

func (t Trip) Reachable() bool {
	return !math.IsInf(t.Duration, 1)
}

// ShortestDuration returns the minimum total trip duration from origin to
// destination, or +Inf when no directed path exists.
func (g *Graph) ShortestDuration(origin, destination *models.Station) (float64, error) {
	trip, err := g.ShortestTrip(origin, destination)
	if err != nil {
		return 0, err
	}
	return trip.Duration, nil
}

// ShortestTrip runs Dijkstra from origin and stops as soon as destination is
// settled. Edge weights are assumed to be non-negative.
func (g *Graph) ShortestTrip(origin, destination *models.Station) (Trip, error) {
	if !g.HasStation(origin) {
		return Trip{}, fmt.Errorf("%w: origin %s", ErrUnknownVertex, origin)
	}
	if !g.HasStation(destination) {
		return Trip{}, fmt.Errorf("%w: destination %s", ErrUnknownVertex, destination)
	}

	trip := Trip{Origin: origin, Destination: destination, Duration: math.Inf(1)}
	if origin == destination {
		trip.Duration = 0
		trip.Path = []*models.Station{origin}
		return trip, nil
	}

	dist := map[*models.Station]float64{origin: 0}
	cameFrom := make(map[*models.Station]*models.Station)
	closed := make(map[*models.Station]bool)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{station: origin, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.station
		if closed[current] {
			continue
		}
		closed[current] = true
		if math.IsInf(dist[current], 1) {
			break
		}

		if current == destination {
			trip.Duration = dist[current]
			trip.Path = reconstructPath(cameFrom, current)
			return trip, nil
		}

		for _, e := range g.edges[current] {
			if closed[e.To] {
				continue
			}
			tentative := dist[current] + e.TripDuration
			if old, ok := dist[e.To]; !ok || tentative < old {
				dist[e.To] = tentative
				cameFrom[e.To] = current
				heap.Push(pq, &pqItem{station: e.To, priority: tentative})
			}
		}
	}

	return trip, nil
}

func reconstructPath(cameFrom map[*models.Station]*models.Station, current *models.Station) []*models.Station {
	var path []*models.Station
	for {
		path = append([]*models.Station{current}, path...)
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
	}
	return path
}

type pqItem struct {
	station  *models.Station
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}
