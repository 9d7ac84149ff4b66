package rank

import (
	"testing"

	"voltfinder/backend/services/stations-service/internal/models"
)

func TestParseOrder(t *testing.T) {
	if order, ok := ParseOrder(""); !ok || order != ByDistance {
		t.Fatalf("empty value should default to distance, got %q ok=%v", order, ok)
	}
	for _, raw := range []string{"distance", "power", "availability"} {
		if _, ok := ParseOrder(raw); !ok {
			t.Fatalf("%q should parse", raw)
		}
	}
	if _, ok := ParseOrder("nearest"); ok {
		t.Fatal("unknown order should be rejected")
	}
}

func TestSortByDistance(t *testing.T) {
	stations := []models.ChargingStation{
		{ID: "far", DistanceMiles: 9.5},
		{ID: "near", DistanceMiles: 0.8},
		{ID: "absent"}, // zero distance sorts first, by convention
		{ID: "mid", DistanceMiles: 4.2},
	}

	Sort(stations, ByDistance)

	want := []string{"absent", "near", "mid", "far"}
	for i, id := range want {
		if stations[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, stations[i].ID)
		}
	}
}

func TestSortByPowerNonIncreasing(t *testing.T) {
	stations := []models.ChargingStation{
		{ID: "a", PowerKw: 50},
		{ID: "b", PowerKw: 350},
		{ID: "c", PowerKw: 150},
		{ID: "d", PowerKw: 150},
	}

	Sort(stations, ByPower)

	for i := 1; i < len(stations); i++ {
		if stations[i].PowerKw > stations[i-1].PowerKw {
			t.Fatalf("power not non-increasing at %d: %+v", i, stations)
		}
	}
	// equal-power stations keep emission order
	if stations[1].ID != "c" || stations[2].ID != "d" {
		t.Fatalf("tie order not preserved: %+v", stations)
	}
}

func TestSortByAvailabilityGroups(t *testing.T) {
	stations := []models.ChargingStation{
		{ID: "off1", Status: models.StatusOffline},
		{ID: "avail1", Status: models.StatusAvailable},
		{ID: "busy1", Status: models.StatusBusy},
		{ID: "avail2", Status: models.StatusAvailable},
		{ID: "off2", Status: models.StatusOffline},
	}

	Sort(stations, ByAvailability)

	want := []string{"avail1", "avail2", "busy1", "off1", "off2"}
	for i, id := range want {
		if stations[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s (%+v)", i, id, stations[i].ID, stations)
		}
	}
}
