package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mohamedthameursassi/trainroute/graphs_go"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parse(t *testing.T, text string) *graphs_go.Network {
	t.Helper()
	network, _ := graphs_go.NewLoader(quietLogger()).Parse(strings.NewReader(text))
	return network
}

func TestExportWritesStationsAndRoutes(t *testing.T) {
	client := NewMemoryClient()
	exp := NewNetworkExporter(client, quietLogger())

	network := parse(t, "A, B, A, C\nA B 3\nA B 2\nB C 1.5\n")
	summary, err := exp.Export(context.Background(), network)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if summary.Stations != 3 {
		t.Errorf("expected 3 unique stations, got %d", summary.Stations)
	}
	if summary.Routes != 3 {
		t.Errorf("expected 3 routes including the parallel one, got %d", summary.Routes)
	}

	calls := client.WriteCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 batched writes, got %d", len(calls))
	}
	if calls[0].Query != mergeStationsCypher || calls[1].Query != createRoutesCypher {
		t.Error("expected stations to be merged before routes are created")
	}
	routes := calls[1].Params["routes"].([]map[string]any)
	if routes[0]["origin"] != "B" || routes[0]["destination"] != "C" || routes[0]["duration"] != 1.5 {
		t.Errorf("unexpected route payload %v", routes[0])
	}
}

func TestExportBatches(t *testing.T) {
	var header []string
	for i := 0; i < 5; i++ {
		header = append(header, fmt.Sprintf("S%d", i))
	}
	client := NewMemoryClient()
	exp := NewNetworkExporter(client, quietLogger())
	exp.batchSize = 2

	summary, err := exp.Export(context.Background(), parse(t, strings.Join(header, ",")+"\n"))
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if summary.Stations != 5 || len(client.WriteCalls()) != 3 {
		t.Errorf("expected 5 stations in 3 batches, got %d in %d", summary.Stations, len(client.WriteCalls()))
	}
}

func TestExportRefusesInvalidNetwork(t *testing.T) {
	client := NewMemoryClient()
	_, err := NewNetworkExporter(client, quietLogger()).Export(context.Background(), parse(t, ""))
	if !errors.Is(err, ErrNetworkNotLoaded) {
		t.Fatalf("expected ErrNetworkNotLoaded, got %v", err)
	}
	if len(client.WriteCalls()) != 0 {
		t.Error("nothing should be written for an invalid network")
	}
}

func TestExportPropagatesClientError(t *testing.T) {
	boom := errors.New("boom")
	client := NewMemoryClient().WithError(boom)

	_, err := NewNetworkExporter(client, quietLogger()).Export(context.Background(), parse(t, "A,B\nA B 1\n"))
	if !errors.Is(err, boom) {
		t.Errorf("expected client error, got %v", err)
	}
}

func TestNewNeo4jClientRequiresURI(t *testing.T) {
	if _, err := NewNeo4jClient(context.Background(), Options{}); !errors.Is(err, ErrMissingURI) {
		t.Errorf("expected ErrMissingURI, got %v", err)
	}
}
