// Package cache memoizes discovery results for a short window so identical
// queries do not hit the station directory repeatedly.
package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"voltfinder/backend/services/stations-service/internal/catalog"
	"voltfinder/backend/services/stations-service/internal/models"
)

// Cache stores station lists keyed by a canonical query signature. A cache
// is an optimization only: implementations degrade failures into misses and
// never fail a discovery query.
type Cache interface {
	Get(ctx context.Context, key string) ([]models.ChargingStation, bool)
	Set(ctx context.Context, key string, stations []models.ChargingStation)
}

// coordinates are keyed at 6 decimal places (~0.1 m), exact enough to never
// conflate distinct queries while keeping the key space printable
const coordPrecision = 6

// Key returns the canonical cache key for a discovery query. Filter slices
// are semantically sets, so each is sorted before serialization; logically
// identical queries share an entry regardless of the order the caller
// supplied the lists in.
func Key(q catalog.Query) string {
	connectors := make([]string, len(q.Filters.ConnectorTypes))
	for i, c := range q.Filters.ConnectorTypes {
		connectors[i] = string(c)
	}
	sort.Strings(connectors)

	statuses := make([]string, len(q.Filters.AvailabilityStatuses))
	for i, s := range q.Filters.AvailabilityStatuses {
		statuses[i] = string(s)
	}
	sort.Strings(statuses)

	networks := append([]string(nil), q.Filters.Networks...)
	sort.Strings(networks)

	minPower := "-"
	if q.Filters.MinPowerKw != nil {
		minPower = strconv.Itoa(*q.Filters.MinPowerKw)
	}

	parts := []string{
		strconv.FormatFloat(q.Origin.Latitude, 'f', coordPrecision, 64),
		strconv.FormatFloat(q.Origin.Longitude, 'f', coordPrecision, 64),
		strconv.FormatFloat(q.RadiusMiles, 'f', 2, 64),
		strings.Join(connectors, ","),
		strings.Join(statuses, ","),
		minPower,
		strings.Join(networks, ","),
	}
	return "stations:q:" + strings.Join(parts, "|")
}
