package graphs_go

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mohamedthameursassi/trainroute/models"
)

const (
	stationSeparator = ","
	maxLineSize      = 1024 * 1024
)

// Loader builds a Network from the text format:
//
//	A, B, C, D
//	A B 3
//	B D 3.5
//
// The first line lists the stations, every following line is a directed
// route "origin destination duration".
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the network file at path. An empty path yields an empty but
// valid network. On failure the returned network is never nil: its graph
// keeps whatever was added before the failing line and its station index is
// nil.
func (l *Loader) Load(path string) (*Network, error) {
	if path == "" {
		l.logger.Info("no network file configured, starting with an empty network")
		return newEmptyNetwork(), nil
	}

	l.logger.Info("loading network", "path", path)

	file, err := os.Open(path)
	if err != nil {
		network := newEmptyNetwork()
		network.invalidate()
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: [%s]", ErrSourceNotFound, path)
		} else {
			err = fmt.Errorf("could not open network file: %w", err)
		}
		l.logger.Error("network load failed", "path", path, "error", err)
		return network, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			l.logger.Warn("network file did not close correctly", "path", path, "error", cerr)
		}
	}()

	return l.Parse(file)
}

// Parse reads a network description from r.
func (l *Loader) Parse(r io.Reader) (*Network, error) {
	network := newEmptyNetwork()
	if err := l.populate(network, r); err != nil {
		network.invalidate()
		l.logger.Error("invalid file content format", "error", err)
		return network, err
	}

	l.logger.Info("network loaded",
		"stations", network.Graph.StationCount(),
		"routes", network.Graph.EdgeCount())
	return network, nil
}

func (l *Loader) populate(network *Network, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("could not read network file: %w", err)
		}
		return ErrEmptyFile
	}

	header := strings.TrimPrefix(scanner.Text(), "\ufeff")
	for _, token := range strings.Split(header, stationSeparator) {
		name := strings.TrimSpace(token)
		if name == "" {
			l.logger.Debug("skipping blank station name in header")
			continue
		}
		station := models.NewStation(name)
		network.Graph.AddStation(station)
		if _, dup := network.Stations[name]; dup {
			l.logger.Warn("duplicate station name in header, keeping the last one", "station", name)
		}
		network.Stations[name] = station
	}

	// Blank lines are only tolerated at the end of the file.
	lineNo, firstBlank := 1, 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			if firstBlank == 0 {
				firstBlank = lineNo
			}
			continue
		}
		if firstBlank != 0 {
			return &LineError{Line: firstBlank, Err: ErrMalformedRouteLine}
		}
		if err := l.addRoute(network, text); err != nil {
			return &LineError{Line: lineNo, Text: text, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read network file: %w", err)
	}
	return nil
}

func (l *Loader) addRoute(network *Network, line string) error {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return ErrMalformedRouteLine
	}

	origin, okOrigin := network.Stations[parts[0]]
	destination, okDestination := network.Stations[parts[1]]
	if !okOrigin || !okDestination {
		return fmt.Errorf("%w [%s, %s]", ErrUnknownStation, parts[0], parts[1])
	}

	duration, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || math.IsNaN(duration) {
		return fmt.Errorf("%w: %q", ErrInvalidWeight, parts[2])
	}
	if duration < 0 {
		l.logger.Warn("negative trip duration accepted", "origin", parts[0], "destination", parts[1], "duration", duration)
	}

	return network.Graph.AddEdge(origin, destination, duration)
}
