package cache

import (
	"context"
	"testing"
	"time"

	"voltfinder/backend/services/stations-service/internal/catalog"
	"voltfinder/backend/services/stations-service/internal/geo"
	"voltfinder/backend/services/stations-service/internal/models"
)

func query(connectors []models.ConnectorType, statuses []models.StationStatus, networks []string) catalog.Query {
	return catalog.Query{
		Origin:      geo.Point{Latitude: 37.7749, Longitude: -122.4194},
		RadiusMiles: 15,
		Filters: models.FilterSettings{
			ConnectorTypes:       connectors,
			AvailabilityStatuses: statuses,
			Networks:             networks,
		},
	}
}

func TestKeyIsOrderInsensitive(t *testing.T) {
	a := query(
		[]models.ConnectorType{models.ConnectorCCS1, models.ConnectorTesla},
		[]models.StationStatus{models.StatusAvailable, models.StatusBusy},
		[]string{"EVgo", "Blink"},
	)
	b := query(
		[]models.ConnectorType{models.ConnectorTesla, models.ConnectorCCS1},
		[]models.StationStatus{models.StatusBusy, models.StatusAvailable},
		[]string{"Blink", "EVgo"},
	)

	if Key(a) != Key(b) {
		t.Fatalf("reordered filter lists must share a key:\n%s\n%s", Key(a), Key(b))
	}
}

func TestKeySeparatesDistinctQueries(t *testing.T) {
	base := query(nil, nil, nil)

	narrowed := base
	minPower := 50
	narrowed.Filters.MinPowerKw = &minPower
	if Key(base) == Key(narrowed) {
		t.Fatal("minPower must be part of the key")
	}

	moved := base
	moved.Origin.Latitude += 0.001
	if Key(base) == Key(moved) {
		t.Fatal("origin must be part of the key")
	}

	wider := base
	wider.RadiusMiles = 25
	if Key(base) == Key(wider) {
		t.Fatal("radius must be part of the key")
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(5*time.Minute, 16)
	c.now = func() time.Time { return now }

	stations := []models.ChargingStation{{ID: "st_1"}}
	c.Set(context.Background(), "k", stations)

	// one second before expiry: hit
	now = now.Add(5*time.Minute - time.Second)
	got, ok := c.Get(context.Background(), "k")
	if !ok || len(got) != 1 || got[0].ID != "st_1" {
		t.Fatalf("expected fresh hit, got ok=%v %+v", ok, got)
	}

	// at expiry: miss, entry dropped
	now = now.Add(2 * time.Second)
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestMemoryCacheOverwriteRefreshes(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute, 16)
	c.now = func() time.Time { return now }

	c.Set(context.Background(), "k", []models.ChargingStation{{ID: "old"}})
	now = now.Add(50 * time.Second)
	c.Set(context.Background(), "k", []models.ChargingStation{{ID: "new"}})

	now = now.Add(30 * time.Second)
	got, ok := c.Get(context.Background(), "k")
	if !ok || got[0].ID != "new" {
		t.Fatalf("expected refreshed entry, got ok=%v %+v", ok, got)
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	c := NewMemoryCache(time.Hour, 2)

	c.Set(context.Background(), "a", []models.ChargingStation{{ID: "a"}})
	c.Set(context.Background(), "b", []models.ChargingStation{{ID: "b"}})

	// touch "a" so "b" becomes least recently used
	if _, ok := c.Get(context.Background(), "a"); !ok {
		t.Fatal("expected hit for a")
	}

	c.Set(context.Background(), "c", []models.ChargingStation{{ID: "c"}})

	if _, ok := c.Get(context.Background(), "b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get(context.Background(), "a"); !ok {
		t.Fatal("expected a to survive eviction")
	}
	if _, ok := c.Get(context.Background(), "c"); !ok {
		t.Fatal("expected c to be present")
	}
}
