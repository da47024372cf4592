package preprocessing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var ErrNoStops = errors.New("gtfs feed has no stops")

// Route is the fastest observed hop between two consecutive stops of a trip.
type Route struct {
	Origin      string
	Destination string
	Minutes     float64
}

// TrainMap is a network in the shape graphs_go.Loader expects.
type TrainMap struct {
	Stations []string
	Routes   []Route
}

// StationToken makes a stop id usable as a single header/route token:
// whitespace and commas become underscores.
func StationToken(stopID string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(stopID))
}

// BuildTrainMap keeps, for each ordered pair of consecutive stops, the
// shortest departure-to-arrival time seen across all trips. Hops missing
// either time, or going back in time, are skipped.
func BuildTrainMap(idx *GTFSIndex) (*TrainMap, error) {
	if idx == nil || len(idx.StopsByID) == 0 {
		return nil, ErrNoStops
	}

	type pair struct{ from, to string }
	best := make(map[pair]int)

	for _, stops := range idx.StopTimesByTrip {
		for i := 0; i+1 < len(stops); i++ {
			cur, next := stops[i], stops[i+1]
			if !cur.hasDeparture || !next.hasArrival || cur.StopID == next.StopID {
				continue
			}
			if _, ok := idx.StopsByID[cur.StopID]; !ok {
				continue
			}
			if _, ok := idx.StopsByID[next.StopID]; !ok {
				continue
			}
			secs := next.ArrivalSec - cur.DepartureSec
			if secs < 0 {
				continue
			}
			k := pair{StationToken(cur.StopID), StationToken(next.StopID)}
			if prev, ok := best[k]; !ok || secs < prev {
				best[k] = secs
			}
		}
	}

	seen := make(map[string]struct{}, len(idx.StopsByID))
	tm := &TrainMap{}
	for id := range idx.StopsByID {
		tok := StationToken(id)
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		tm.Stations = append(tm.Stations, tok)
	}
	sort.Strings(tm.Stations)

	for k, secs := range best {
		tm.Routes = append(tm.Routes, Route{Origin: k.from, Destination: k.to, Minutes: float64(secs) / 60})
	}
	sort.Slice(tm.Routes, func(i, j int) bool {
		if tm.Routes[i].Origin != tm.Routes[j].Origin {
			return tm.Routes[i].Origin < tm.Routes[j].Origin
		}
		return tm.Routes[i].Destination < tm.Routes[j].Destination
	})
	return tm, nil
}

// WriteTo writes the header line followed by one "origin destination minutes"
// line per route.
func (tm *TrainMap) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	c, err := bw.WriteString(strings.Join(tm.Stations, ", ") + "\n")
	n += int64(c)
	if err != nil {
		return n, err
	}
	for _, r := range tm.Routes {
		c, err = fmt.Fprintf(bw, "%s %s %s\n", r.Origin, r.Destination, strconv.FormatFloat(r.Minutes, 'f', -1, 64))
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
