// Package exporter copies a loaded train network into a Neo4j database, one
// :Station node per station name and one :ROUTE relationship per route.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mohamedthameursassi/trainroute/graphs_go"
)

const (
	defaultBatchSize = 500

	mergeStationsCypher = `UNWIND $stations AS station
MERGE (s:Station {name: station.name})`

	createRoutesCypher = `UNWIND $routes AS route
MATCH (a:Station {name: route.origin})
MATCH (b:Station {name: route.destination})
CREATE (a)-[:ROUTE {duration: route.duration}]->(b)`
)

var ErrNetworkNotLoaded = errors.New("cannot export a network that failed to load")

type Summary struct {
	Stations int
	Routes   int
}

type NetworkExporter struct {
	client    Client
	logger    *slog.Logger
	batchSize int
}

func NewNetworkExporter(client Client, logger *slog.Logger) *NetworkExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &NetworkExporter{
		client:    client,
		logger:    logger,
		batchSize: defaultBatchSize,
	}
}

// Export writes the network. Stations that share a name collapse into one
// node; every route, parallel ones included, becomes its own relationship.
func (e *NetworkExporter) Export(ctx context.Context, network *graphs_go.Network) (Summary, error) {
	if !network.Loaded() {
		return Summary{}, ErrNetworkNotLoaded
	}

	var summary Summary

	seen := make(map[string]struct{})
	var stations []map[string]any
	var routes []map[string]any
	for _, s := range network.Graph.Stations() {
		if _, ok := seen[s.Name]; !ok {
			seen[s.Name] = struct{}{}
			stations = append(stations, map[string]any{"name": s.Name})
		}
		for _, edge := range network.Graph.EdgesFrom(s) {
			routes = append(routes, map[string]any{
				"origin":      edge.From.Name,
				"destination": edge.To.Name,
				"duration":    edge.TripDuration,
			})
		}
	}

	for _, batch := range chunk(stations, e.batchSize) {
		if _, err := e.client.ExecuteWrite(ctx, mergeStationsCypher, map[string]any{"stations": batch}); err != nil {
			return summary, fmt.Errorf("export stations: %w", err)
		}
		summary.Stations += len(batch)
	}
	for _, batch := range chunk(routes, e.batchSize) {
		if _, err := e.client.ExecuteWrite(ctx, createRoutesCypher, map[string]any{"routes": batch}); err != nil {
			return summary, fmt.Errorf("export routes: %w", err)
		}
		summary.Routes += len(batch)
	}

	e.logger.Info("network exported to neo4j", "stations", summary.Stations, "routes", summary.Routes)
	return summary, nil
}

func chunk(items []map[string]any, size int) [][]map[string]any {
	var out [][]map[string]any
	for size < len(items) {
		out = append(out, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
