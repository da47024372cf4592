package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mohamedthameursassi/trainroute/config"
	"github.com/mohamedthameursassi/trainroute/logging"
	"github.com/mohamedthameursassi/trainroute/preprocessing"
)

func main() {
	var dir string
	var out string
	flag.StringVar(&dir, "dir", "data/gtfs", "Path to GTFS directory containing stops.txt and stop_times.txt")
	flag.StringVar(&out, "out", config.DefaultSourceFile, "Path to write the generated train network file")
	flag.Parse()

	logger := logging.New(config.Default().Logging, os.Stderr)

	logger.Info("loading gtfs feed", "dir", dir)
	idx, err := preprocessing.LoadGTFS(dir)
	if err != nil {
		fatal(logger, "failed to load GTFS", err)
	}

	tm, err := preprocessing.BuildTrainMap(idx)
	if err != nil {
		fatal(logger, "failed to build train map", err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		fatal(logger, "failed to ensure output dir", err)
	}
	f, err := os.Create(out)
	if err != nil {
		fatal(logger, "failed to create output file", err)
	}
	if _, err := tm.WriteTo(f); err != nil {
		f.Close()
		fatal(logger, "failed to write train map", err)
	}
	if err := f.Close(); err != nil {
		fatal(logger, "failed to close output file", err)
	}

	logger.Info("train map written", "path", out, "stations", len(tm.Stations), "routes", len(tm.Routes))
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
