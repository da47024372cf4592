// Package preprocessing turns a GTFS feed into the plain text network format
// read by graphs_go.Loader.
package preprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

type GTFSStop struct {
	ID   string
	Name string
}

type GTFSStopTime struct {
	TripID       string
	StopID       string
	StopSequence int
	ArrivalSec   int
	DepartureSec int
	hasArrival   bool
	hasDeparture bool
}

type GTFSIndex struct {
	StopsByID       map[string]GTFSStop
	StopTimesByTrip map[string][]GTFSStopTime // sorted by StopSequence asc
}

// LoadGTFS builds a minimal in-memory index from a GTFS directory.
// Required files: stops.txt, stop_times.txt
func LoadGTFS(dir string) (*GTFSIndex, error) {
	idx := &GTFSIndex{
		StopsByID:       make(map[string]GTFSStop),
		StopTimesByTrip: make(map[string][]GTFSStopTime),
	}

	if err := readCSV(filepath.Join(dir, "stops.txt"), func(get func(string) string) error {
		s := GTFSStop{ID: get("stop_id"), Name: get("stop_name")}
		if s.ID != "" {
			idx.StopsByID[s.ID] = s
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := readCSV(filepath.Join(dir, "stop_times.txt"), func(get func(string) string) error {
		tripID := get("trip_id")
		stopID := get("stop_id")
		if tripID == "" || stopID == "" {
			return nil
		}
		seq, err := strconv.Atoi(strings.TrimSpace(get("stop_sequence")))
		if err != nil {
			return fmt.Errorf("trip %s: invalid stop_sequence %q", tripID, get("stop_sequence"))
		}
		st := GTFSStopTime{TripID: tripID, StopID: stopID, StopSequence: seq}
		if v := strings.TrimSpace(get("arrival_time")); v != "" {
			if st.ArrivalSec, err = parseGTFSTime(v); err != nil {
				return err
			}
			st.hasArrival = true
		}
		if v := strings.TrimSpace(get("departure_time")); v != "" {
			if st.DepartureSec, err = parseGTFSTime(v); err != nil {
				return err
			}
			st.hasDeparture = true
		}
		idx.StopTimesByTrip[tripID] = append(idx.StopTimesByTrip[tripID], st)
		return nil
	}); err != nil {
		return nil, err
	}

	for tripID := range idx.StopTimesByTrip {
		st := idx.StopTimesByTrip[tripID]
		sort.Slice(st, func(i, j int) bool { return st[i].StopSequence < st[j].StopSequence })
	}
	return idx, nil
}

func readCSV(path string, row func(get func(string) string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read %s header: %w", filepath.Base(path), err)
	}
	h := headerIndex(header)

	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s row: %w", filepath.Base(path), err)
		}
		get := func(k string) string {
			i, ok := h[k]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		if err := row(get); err != nil {
			return err
		}
	}
}

func headerIndex(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, k := range hdr {
		m[strings.TrimPrefix(strings.TrimSpace(k), "\ufeff")] = i
	}
	return m
}

// parseGTFSTime converts "HH:MM:SS" into seconds since service-day start.
// Hours may exceed 23 for trips running past midnight.
func parseGTFSTime(v string) (int, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid GTFS time %q", v)
	}
	var total int
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid GTFS time %q", v)
		}
		total = total*60 + n
	}
	return total, nil
}
