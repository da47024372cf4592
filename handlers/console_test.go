package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mohamedthameursassi/trainroute/graphs_go"
	"github.com/mohamedthameursassi/trainroute/services"
)

const sampleMap = "A, B, C, D\nA B 3\nA D 1\nB A 1\nB D 3\nC B 7\n"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, text string) *services.RoutingService {
	t.Helper()
	network, _ := graphs_go.NewLoader(quietLogger()).Parse(strings.NewReader(text))
	return services.NewRoutingService(network, quietLogger(), services.Options{CacheSize: 16})
}

func runSession(t *testing.T, svc *services.RoutingService, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := NewConsoleSession(svc, strings.NewReader(input), &out, quietLogger()).Run(context.Background())
	return out.String(), err
}

func TestConsoleSessionAnswersQueries(t *testing.T) {
	out, err := runSession(t, newService(t, sampleMap), "A D\nC D\nA C\nA Z\nA\nEXIT\nA B\n")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	expected := []string{
		welcomeMessage,
		"A to D takes 1.0 minutes.",
		"C to D takes 9.0 minutes.",
		"There is no route between A and C",
		"The specified route doesn't exist. [A, Z]",
		usageMessage,
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "A to B takes") {
		t.Error("session kept reading after exit")
	}
	if got := strings.Count(out, inputPrompt); got != 6 {
		t.Errorf("expected 6 prompts, got %d", got)
	}
}

func TestConsoleSessionEndsOnEOF(t *testing.T) {
	out, err := runSession(t, newService(t, sampleMap), "B D")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out, "B to D takes 2.0 minutes.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConsoleSessionRefusesInvalidNetwork(t *testing.T) {
	tests := []struct {
		name string
		svc  *services.RoutingService
		want string
	}{
		{"load failed", newService(t, "A, B\nA B x\n"), "There are no stations registered."},
		{"no stations", services.NewRoutingService(mustLoad(t, ""), quietLogger(), services.Options{}), "Check input file."},
		{"no network", services.NewRoutingService(nil, quietLogger(), services.Options{}), "There is no train network registered."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runSession(t, tt.svc, "A B\n")
			if !errors.Is(err, ErrNetworkNotSetUp) {
				t.Fatalf("expected ErrNetworkNotSetUp, got %v", err)
			}
			if !strings.Contains(out, tt.want) || !strings.Contains(out, "The train network is not set up. Exiting...") {
				t.Errorf("unexpected output:\n%s", out)
			}
			if strings.Contains(out, inputPrompt) {
				t.Error("session should not prompt for input")
			}
		})
	}
}

func TestConsoleSessionStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewConsoleSession(newService(t, sampleMap), strings.NewReader("A D\n"), &out, quietLogger()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func mustLoad(t *testing.T, path string) *graphs_go.Network {
	t.Helper()
	network, err := graphs_go.NewLoader(quietLogger()).Load(path)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", path, err)
	}
	return network
}

func TestConsoleSessionSurvivesVeryLongLine(t *testing.T) {
	long := strings.Repeat("A", 200*1024) + " D"
	out, err := runSession(t, newService(t, sampleMap), long+"\n"+strings.Repeat("B ", 100*1024)+"\nA D\n")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out, "The specified route doesn't exist.") {
		t.Errorf("expected the long station name to be reported as unknown")
	}
	if !strings.Contains(out, usageMessage) {
		t.Errorf("expected the long token list to get the usage hint")
	}
	if !strings.Contains(out, "A to D takes 1.0 minutes.") {
		t.Errorf("expected the session to keep answering after long lines")
	}
}
