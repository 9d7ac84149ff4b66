package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"voltfinder/backend/services/stations-service/internal/catalog"
	"voltfinder/backend/services/stations-service/internal/models"
	"voltfinder/backend/services/stations-service/internal/repository"
	"voltfinder/backend/services/stations-service/internal/service"
)

type fakeFinder struct {
	lastQuery catalog.Query
	lastOpts  service.Options
	stations  []models.ChargingStation
	detail    *models.ChargingStation
	err       error
}

func (f *fakeFinder) FindNearby(ctx context.Context, q catalog.Query, opts service.Options) ([]models.ChargingStation, error) {
	f.lastQuery = q
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.stations, nil
}

func (f *fakeFinder) StationByID(ctx context.Context, id string) (*models.ChargingStation, error) {
	if f.detail != nil && f.detail.ID == id {
		return f.detail, nil
	}
	return nil, catalog.ErrStationNotFound
}

type fakeVehicleGetter struct {
	vehicle *models.EvVehicle
}

func (f *fakeVehicleGetter) GetByID(ctx context.Context, id, ownerID int64) (*models.EvVehicle, error) {
	if f.vehicle != nil && f.vehicle.ID == id && f.vehicle.OwnerID == ownerID {
		return f.vehicle, nil
	}
	return nil, repository.ErrVehicleNotFound
}

func doStations(t *testing.T, finder *fakeFinder, vehicles VehicleGetter, target string) *httptest.ResponseRecorder {
	t.Helper()
	if vehicles == nil {
		vehicles = &fakeVehicleGetter{}
	}
	handler := NewStationsHandler(finder, vehicles, 1)
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStationsHandlerDefaults(t *testing.T) {
	finder := &fakeFinder{stations: []models.ChargingStation{{ID: "st_1"}}}

	rec := doStations(t, finder, nil, "/api/stations?lat=37.7749&long=-122.4194")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if finder.lastQuery.RadiusMiles != 15 {
		t.Fatalf("expected default 15 mile radius, got %v", finder.lastQuery.RadiusMiles)
	}
	wantStatuses := []models.StationStatus{models.StatusAvailable, models.StatusBusy}
	if len(finder.lastQuery.Filters.AvailabilityStatuses) != len(wantStatuses) {
		t.Fatalf("expected default statuses %v, got %v", wantStatuses, finder.lastQuery.Filters.AvailabilityStatuses)
	}
	if finder.lastQuery.Filters.MinPowerKw != nil {
		t.Fatal("minPower must be unset by default")
	}

	var body []models.ChargingStation
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a station array: %v", err)
	}
	if len(body) != 1 || body[0].ID != "st_1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestStationsHandlerParsesFilters(t *testing.T) {
	finder := &fakeFinder{}

	rec := doStations(t, finder, nil,
		"/api/stations?lat=37.7&long=-122.4&distance=25&connectors=CCS1,Tesla&statuses=Available&minPower=150&networks=EVgo,Blink&sort=power")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	filters := finder.lastQuery.Filters
	if len(filters.ConnectorTypes) != 2 || filters.ConnectorTypes[0] != models.ConnectorCCS1 {
		t.Fatalf("connectors not parsed: %+v", filters.ConnectorTypes)
	}
	if len(filters.AvailabilityStatuses) != 1 || filters.AvailabilityStatuses[0] != models.StatusAvailable {
		t.Fatalf("statuses not parsed: %+v", filters.AvailabilityStatuses)
	}
	if filters.MinPowerKw == nil || *filters.MinPowerKw != 150 {
		t.Fatalf("minPower not parsed: %+v", filters.MinPowerKw)
	}
	if len(filters.Networks) != 2 {
		t.Fatalf("networks not parsed: %+v", filters.Networks)
	}
	if finder.lastOpts.Sort != "power" {
		t.Fatalf("sort not parsed: %q", finder.lastOpts.Sort)
	}
	if finder.lastQuery.RadiusMiles != 25 {
		t.Fatalf("distance not parsed: %v", finder.lastQuery.RadiusMiles)
	}
}

func TestStationsHandlerRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"missing lat":       "/api/stations?long=-122.4",
		"missing long":      "/api/stations?lat=37.7",
		"bad lat":           "/api/stations?lat=north&long=-122.4",
		"NaN lat":           "/api/stations?lat=NaN&long=-122.4",
		"NaN long":          "/api/stations?lat=37.7&long=NaN",
		"infinite lat":      "/api/stations?lat=%2BInf&long=-122.4",
		"NaN distance":      "/api/stations?lat=37.7&long=-122.4&distance=NaN",
		"infinite distance": "/api/stations?lat=37.7&long=-122.4&distance=Inf",
		"unknown connector": "/api/stations?lat=37.7&long=-122.4&connectors=MagSafe",
		"unknown status":    "/api/stations?lat=37.7&long=-122.4&statuses=Sleeping",
		"unknown network":   "/api/stations?lat=37.7&long=-122.4&networks=AcmeCharge",
		"bad minPower":      "/api/stations?lat=37.7&long=-122.4&minPower=fast",
		"unknown sort":      "/api/stations?lat=37.7&long=-122.4&sort=nearest",
		"compat no vehicle": "/api/stations?lat=37.7&long=-122.4&compatibleOnly=true",
	}
	for name, target := range cases {
		finder := &fakeFinder{}
		if rec := doStations(t, finder, nil, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestStationsHandlerErrorMapping(t *testing.T) {
	invalid := &fakeFinder{err: catalog.ErrInvalidQuery}
	if rec := doStations(t, invalid, nil, "/api/stations?lat=37.7&long=-122.4"); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid query: expected 400, got %d", rec.Code)
	}

	down := &fakeFinder{err: catalog.ErrSourceUnavailable}
	if rec := doStations(t, down, nil, "/api/stations?lat=37.7&long=-122.4"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("source failure: expected 500, got %d", rec.Code)
	}
}

func TestStationsHandlerVehicleLookup(t *testing.T) {
	finder := &fakeFinder{}
	vehicles := &fakeVehicleGetter{vehicle: &models.EvVehicle{
		ID: 7, OwnerID: 1,
		ConnectorTypes: []models.ConnectorType{models.ConnectorNACS},
	}}

	rec := doStations(t, finder, vehicles, "/api/stations?lat=37.7&long=-122.4&vehicleId=7&compatibleOnly=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if finder.lastOpts.Vehicle == nil || finder.lastOpts.Vehicle.ID != 7 {
		t.Fatalf("vehicle not threaded into options: %+v", finder.lastOpts)
	}
	if !finder.lastOpts.CompatibleOnly {
		t.Fatal("compatibleOnly not threaded into options")
	}

	if rec := doStations(t, finder, vehicles, "/api/stations?lat=37.7&long=-122.4&vehicleId=99"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown vehicle: expected 404, got %d", rec.Code)
	}
}

func TestStationByIDHandler(t *testing.T) {
	detail := &models.ChargingStation{ID: "st_9", Name: "Harbor Hub"}
	finder := &fakeFinder{detail: detail}
	handler := NewStationByIDHandler(finder)

	req := httptest.NewRequest(http.MethodGet, "/api/stations/st_9", nil)
	req.SetPathValue("id", "st_9")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got models.ChargingStation
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got.Name != "Harbor Hub" {
		t.Fatalf("unexpected body: %s (%v)", rec.Body.String(), err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/stations/missing", nil)
	req.SetPathValue("id", "missing")
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
