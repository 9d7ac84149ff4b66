package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"

	"voltfinder/backend/services/stations-service/internal/geo"
	"voltfinder/backend/services/stations-service/internal/models"
)

// Error taxonomy shared by every catalog implementation.
var (
	// ErrInvalidQuery marks caller errors: out-of-range coordinates or a
	// non-positive radius.
	ErrInvalidQuery = errors.New("catalog: invalid query")
	// ErrSourceUnavailable marks directory/network failures; safe for the
	// caller to retry with backoff.
	ErrSourceUnavailable = errors.New("catalog: source unavailable")
	// ErrStationNotFound marks an unknown station id.
	ErrStationNotFound = errors.New("catalog: station not found")
)

// Query describes a nearby-stations request. Filters are hints: a source MAY
// use them to reduce transfer volume but is not required to apply them
// exactly — the discovery pipeline re-applies every filter downstream.
type Query struct {
	Origin      geo.Point
	RadiusMiles float64
	Filters     models.FilterSettings
}

// Validate rejects non-finite or out-of-range coordinates and radii that are
// not finite positive numbers. NaN compares false against every bound, so the
// finiteness checks cannot be folded into the range comparisons.
func (q Query) Validate() error {
	if math.IsNaN(q.Origin.Latitude) || q.Origin.Latitude < -90 || q.Origin.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidQuery, q.Origin.Latitude)
	}
	if math.IsNaN(q.Origin.Longitude) || q.Origin.Longitude < -180 || q.Origin.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidQuery, q.Origin.Longitude)
	}
	if math.IsNaN(q.RadiusMiles) || math.IsInf(q.RadiusMiles, 0) || q.RadiusMiles <= 0 {
		return fmt.Errorf("%w: radius must be a finite positive number, got %v", ErrInvalidQuery, q.RadiusMiles)
	}
	return nil
}

// Catalog is the source of truth for station records around an origin. Two
// implementations exist: the seeded SyntheticCatalog for development and
// tests, and the OpenChargeMapCatalog for production.
type Catalog interface {
	// Nearby returns candidate stations within the query radius, each with
	// DistanceMiles populated relative to the origin.
	Nearby(ctx context.Context, q Query) ([]models.ChargingStation, error)
	// StationByID returns one station or ErrStationNotFound.
	StationByID(ctx context.Context, id string) (*models.ChargingStation, error)
}
