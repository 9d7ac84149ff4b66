package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"voltfinder/backend/services/stations-service/internal/cache"
	"voltfinder/backend/services/stations-service/internal/catalog"
	"voltfinder/backend/services/stations-service/internal/filter"
	"voltfinder/backend/services/stations-service/internal/models"
	"voltfinder/backend/services/stations-service/internal/rank"
)

const defaultFetchTimeout = 10 * time.Second

// Options control the per-request, non-cacheable stages of a discovery
// query: compatibility annotation and sort order. Neither participates in
// the cache key.
type Options struct {
	// Vehicle, when set, annotates every station with IsCompatible.
	Vehicle *models.EvVehicle
	// CompatibleOnly drops incompatible stations; requires Vehicle.
	CompatibleOnly bool
	// Sort defaults to distance.
	Sort rank.Order
}

// Discovery runs the station discovery pipeline: cache lookup, deduplicated
// catalog fetch under a timeout, filter re-application, compatibility
// annotation and ranking.
type Discovery struct {
	source  catalog.Catalog
	store   cache.Cache
	group   singleflight.Group
	timeout time.Duration
	logger  *zap.Logger
}

// NewDiscovery builds the pipeline. fetchTimeout bounds a single catalog
// call; zero selects the default.
func NewDiscovery(source catalog.Catalog, store cache.Cache, fetchTimeout time.Duration, logger *zap.Logger) *Discovery {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Discovery{
		source:  source,
		store:   store,
		timeout: fetchTimeout,
		logger:  logger,
	}
}

// FindNearby returns the ranked, filtered stations around the query origin.
// A source failure is always surfaced as an error; an empty slice means "no
// stations matched", never a swallowed failure.
func (d *Discovery) FindNearby(ctx context.Context, q catalog.Query, opts Options) ([]models.ChargingStation, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := cache.Key(q)

	stations, ok := d.store.Get(ctx, key)
	if !ok {
		fetched, err := d.fetch(ctx, key, q)
		if err != nil {
			return nil, err
		}
		stations = fetched
	} else {
		d.logger.Debug("station cache hit", zap.String("key", key))
	}

	// cached entries are shared across requests; annotate and sort a copy
	out := make([]models.ChargingStation, len(stations))
	copy(out, stations)

	if opts.Vehicle != nil {
		filter.Annotate(out, *opts.Vehicle)
		if opts.CompatibleOnly {
			out = filter.CompatibleOnly(out, *opts.Vehicle)
		}
	}

	rank.Sort(out, opts.Sort)
	return out, nil
}

// fetch performs the catalog call behind a single-flight group so that
// concurrent identical queries share one upstream request. The filters are
// re-applied here regardless of how lax the source was with its hints.
func (d *Discovery) fetch(ctx context.Context, key string, q catalog.Query) ([]models.ChargingStation, error) {
	result, err, shared := d.group.Do(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		candidates, err := d.source.Nearby(fetchCtx, q)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: fetch timed out after %s", catalog.ErrSourceUnavailable, d.timeout)
			}
			return nil, err
		}

		matched := filter.Apply(candidates, q.Filters)
		d.store.Set(ctx, key, matched)

		d.logger.Debug("station catalog fetch",
			zap.String("key", key),
			zap.Int("candidates", len(candidates)),
			zap.Int("matched", len(matched)),
		)
		return matched, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		d.logger.Debug("station fetch deduplicated", zap.String("key", key))
	}
	return result.([]models.ChargingStation), nil
}

// StationByID resolves one station directly from the catalog. Detail lookup
// is independent of the discovery cache.
func (d *Discovery) StationByID(ctx context.Context, id string) (*models.ChargingStation, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	station, err := d.source.StationByID(fetchCtx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: fetch timed out after %s", catalog.ErrSourceUnavailable, d.timeout)
		}
		return nil, err
	}
	return station, nil
}
