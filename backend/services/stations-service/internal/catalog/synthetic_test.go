package catalog

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"voltfinder/backend/services/stations-service/internal/geo"
	"voltfinder/backend/services/stations-service/internal/models"
)

var testOrigin = geo.Point{Latitude: 37.7749, Longitude: -122.4194}

func fixedClock() func() time.Time {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func newSeededCatalog(seed int64) *SyntheticCatalog {
	c := NewSyntheticCatalog(seed)
	c.now = fixedClock()
	return c
}

func TestSyntheticNearbyDeterministic(t *testing.T) {
	q := Query{Origin: testOrigin, RadiusMiles: 15}

	first, err := newSeededCatalog(42).Nearby(context.Background(), q)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	second, err := newSeededCatalog(42).Nearby(context.Background(), q)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("same seed and clock must reproduce identical stations")
	}
}

func TestSyntheticNearbyInvariants(t *testing.T) {
	q := Query{Origin: testOrigin, RadiusMiles: 20}

	stations, err := newSeededCatalog(7).Nearby(context.Background(), q)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	// no hints in the query, so every generated station is emitted
	if len(stations) < 5 || len(stations) > 10 {
		t.Fatalf("expected 5-10 stations, got %d", len(stations))
	}

	for _, st := range stations {
		if st.ID == "" {
			t.Fatal("station id must be set")
		}
		if len(st.ConnectorTypes) == 0 {
			t.Fatalf("station %s has no connectors", st.ID)
		}
		if st.PowerKw <= 0 {
			t.Fatalf("station %s has non-positive power %d", st.ID, st.PowerKw)
		}
		if !st.Status.Valid() {
			t.Fatalf("station %s has unknown status %q", st.ID, st.Status)
		}
		if st.DistanceMiles < 0 || st.DistanceMiles > q.RadiusMiles*maxRadiusShare {
			t.Fatalf("station %s distance %.3f outside [0, %.3f]", st.ID, st.DistanceMiles, q.RadiusMiles*maxRadiusShare)
		}
		// the reported distance must agree with the generated coordinate
		measured := geo.DistanceMiles(testOrigin, geo.Point{Latitude: st.Latitude, Longitude: st.Longitude})
		if measured > q.RadiusMiles {
			t.Fatalf("station %s measured %.3f miles away, beyond the %0.f mile radius", st.ID, measured, q.RadiusMiles)
		}
	}
}

func TestSyntheticNearbyAppliesHints(t *testing.T) {
	minPower := 50
	q := Query{
		Origin:      testOrigin,
		RadiusMiles: 15,
		Filters: models.FilterSettings{
			AvailabilityStatuses: []models.StationStatus{models.StatusAvailable},
			MinPowerKw:           &minPower,
		},
	}

	stations, err := newSeededCatalog(99).Nearby(context.Background(), q)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	for _, st := range stations {
		if st.Status != models.StatusAvailable {
			t.Fatalf("hint filtering leaked status %q", st.Status)
		}
		if st.PowerKw < minPower {
			t.Fatalf("hint filtering leaked power %d", st.PowerKw)
		}
	}
}

func TestSyntheticNearbyRejectsInvalidQueries(t *testing.T) {
	cases := []Query{
		{Origin: geo.Point{Latitude: 91, Longitude: 0}, RadiusMiles: 10},
		{Origin: geo.Point{Latitude: 0, Longitude: -181}, RadiusMiles: 10},
		{Origin: testOrigin, RadiusMiles: 0},
		{Origin: testOrigin, RadiusMiles: -5},
		{Origin: geo.Point{Latitude: math.NaN(), Longitude: 0}, RadiusMiles: 10},
		{Origin: geo.Point{Latitude: 0, Longitude: math.NaN()}, RadiusMiles: 10},
		{Origin: testOrigin, RadiusMiles: math.NaN()},
		{Origin: testOrigin, RadiusMiles: math.Inf(1)},
	}
	c := newSeededCatalog(1)
	for i, q := range cases {
		if _, err := c.Nearby(context.Background(), q); !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("case %d: expected ErrInvalidQuery, got %v", i, err)
		}
	}
}

func TestSyntheticStationByID(t *testing.T) {
	c := newSeededCatalog(5)

	if _, err := c.StationByID(context.Background(), "bogus-id"); !errors.Is(err, ErrStationNotFound) {
		t.Fatalf("expected ErrStationNotFound, got %v", err)
	}

	first, err := c.StationByID(context.Background(), "st_3_1717243200000")
	if err != nil {
		t.Fatalf("station by id: %v", err)
	}
	second, err := c.StationByID(context.Background(), "st_3_1717243200000")
	if err != nil {
		t.Fatalf("station by id: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("detail lookup must be stable for the same id")
	}
	if first.ID != "st_3_1717243200000" {
		t.Fatalf("detail lookup changed the id: %s", first.ID)
	}
	if len(first.ConnectorTypes) == 0 || first.PowerKw <= 0 {
		t.Fatalf("detail station violates invariants: %+v", first)
	}
}
