package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bluele/gcache"
	"github.com/mohamedthameursassi/trainroute/graphs_go"
	"github.com/mohamedthameursassi/trainroute/models"
)

var (
	ErrNetworkNotLoaded = errors.New("there is no train network registered")
	ErrNetworkInvalid   = errors.New("the train network failed to load")
	ErrNoStations       = errors.New("there are no stations registered")
	ErrStationNotFound  = errors.New("the specified route doesn't exist")
)

type Options struct {
	// CacheSize bounds the number of memoised trip results. Zero disables caching.
	CacheSize int
}

// RoutingService answers trip queries against a network loaded once at startup.
type RoutingService struct {
	network *graphs_go.Network
	cache   gcache.Cache
	logger  *slog.Logger
}

func NewRoutingService(network *graphs_go.Network, logger *slog.Logger, opts Options) *RoutingService {
	if logger == nil {
		logger = slog.Default()
	}
	rs := &RoutingService{
		network: network,
		logger:  logger,
	}
	if opts.CacheSize > 0 {
		rs.cache = gcache.New(opts.CacheSize).LRU().Build()
	}
	return rs
}

// CheckNetwork reports why queries cannot be served, or nil when they can.
func (rs *RoutingService) CheckNetwork() error {
	if rs.network == nil || rs.network.Graph == nil {
		return ErrNetworkNotLoaded
	}
	if !rs.network.Loaded() {
		return ErrNetworkInvalid
	}
	if len(rs.network.Stations) == 0 {
		return ErrNoStations
	}
	return nil
}

func (rs *RoutingService) LookupStation(name string) (*models.Station, bool) {
	return rs.network.Lookup(name)
}

func (rs *RoutingService) Stations() []string {
	return rs.network.Names()
}

// TripDuration computes the shortest trip between two station names. An
// unreachable destination is not an error: the result has Reachable false.
func (rs *RoutingService) TripDuration(ctx context.Context, origin, destination string) (models.TripResult, error) {
	if err := ctx.Err(); err != nil {
		return models.TripResult{}, err
	}
	if err := rs.CheckNetwork(); err != nil {
		return models.TripResult{}, err
	}

	key := origin + "\x00" + destination
	if rs.cache != nil {
		if cached, err := rs.cache.Get(key); err == nil {
			rs.logger.Debug("trip served from cache", "origin", origin, "destination", destination)
			return cached.(models.TripResult).Clone(), nil
		}
	}

	from, okFrom := rs.LookupStation(origin)
	to, okTo := rs.LookupStation(destination)
	if !okFrom || !okTo {
		return models.TripResult{}, fmt.Errorf("%w. [%s, %s]", ErrStationNotFound, origin, destination)
	}

	trip, err := rs.network.Graph.ShortestTrip(from, to)
	if err != nil {
		return models.TripResult{}, fmt.Errorf("shortest trip %s -> %s: %w", origin, destination, err)
	}

	result := models.TripResult{
		Origin:      from.Name,
		Destination: to.Name,
		Duration:    trip.Duration,
		Reachable:   trip.Reachable(),
	}
	for _, s := range trip.Path {
		result.Path = append(result.Path, s.Name)
	}

	rs.logger.Debug("trip computed",
		"origin", origin,
		"destination", destination,
		"duration", trip.Duration,
		"reachable", result.Reachable)

	if rs.cache != nil {
		if err := rs.cache.Set(key, result.Clone()); err != nil {
			rs.logger.Warn("could not cache trip result", "error", err)
		}
	}
	return result, nil
}
