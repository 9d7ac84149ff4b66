package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"voltfinder/backend/services/stations-service/internal/catalog"
	"voltfinder/backend/services/stations-service/internal/geo"
	"voltfinder/backend/services/stations-service/internal/models"
	"voltfinder/backend/services/stations-service/internal/rank"
	"voltfinder/backend/services/stations-service/internal/service"
)

const defaultRadiusMiles = 15

// StationFinder is the discovery pipeline surface the handlers need.
type StationFinder interface {
	FindNearby(ctx context.Context, q catalog.Query, opts service.Options) ([]models.ChargingStation, error)
	StationByID(ctx context.Context, id string) (*models.ChargingStation, error)
}

// VehicleGetter resolves a vehicle for compatibility annotation.
type VehicleGetter interface {
	GetByID(ctx context.Context, id, ownerID int64) (*models.EvVehicle, error)
}

// NewStationsHandler returns GET /api/stations handler. ownerID scopes the
// optional vehicleId lookup.
func NewStationsHandler(finder StationFinder, vehicles VehicleGetter, ownerID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, opts, err := parseStationsQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if vehicleID := r.URL.Query().Get("vehicleId"); vehicleID != "" {
			id, err := strconv.ParseInt(vehicleID, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid vehicleId")
				return
			}
			vehicle, err := vehicles.GetByID(r.Context(), id, ownerID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			opts.Vehicle = vehicle
		} else if opts.CompatibleOnly {
			writeError(w, http.StatusBadRequest, "compatibleOnly requires vehicleId")
			return
		}

		stations, err := finder.FindNearby(r.Context(), q, opts)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stations)
	}
}

// NewStationByIDHandler returns GET /api/stations/{id} handler.
func NewStationByIDHandler(finder StationFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		station, err := finder.StationByID(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, station)
	}
}

func parseStationsQuery(r *http.Request) (catalog.Query, service.Options, error) {
	params := r.URL.Query()
	var q catalog.Query
	var opts service.Options

	lat, err := requiredFloat(params.Get("lat"), "lat")
	if err != nil {
		return q, opts, err
	}
	long, err := requiredFloat(params.Get("long"), "long")
	if err != nil {
		return q, opts, err
	}
	q.Origin = geo.Point{Latitude: lat, Longitude: long}

	q.RadiusMiles = defaultRadiusMiles
	if raw := params.Get("distance"); raw != "" {
		q.RadiusMiles, err = strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(q.RadiusMiles) || math.IsInf(q.RadiusMiles, 0) {
			return q, opts, fmt.Errorf("invalid distance %q", raw)
		}
	}

	for _, raw := range splitCSV(params.Get("connectors")) {
		connector := models.ConnectorType(raw)
		if !connector.Valid() {
			return q, opts, fmt.Errorf("unknown connector type %q", raw)
		}
		q.Filters.ConnectorTypes = append(q.Filters.ConnectorTypes, connector)
	}

	statusesRaw := params.Get("statuses")
	if statusesRaw == "" {
		statusesRaw = "Available,Busy"
	}
	for _, raw := range splitCSV(statusesRaw) {
		status := models.StationStatus(raw)
		if !status.Valid() {
			return q, opts, fmt.Errorf("unknown status %q", raw)
		}
		q.Filters.AvailabilityStatuses = append(q.Filters.AvailabilityStatuses, status)
	}

	if raw := params.Get("minPower"); raw != "" {
		minPower, err := strconv.Atoi(raw)
		if err != nil || minPower < 0 {
			return q, opts, fmt.Errorf("invalid minPower %q", raw)
		}
		q.Filters.MinPowerKw = &minPower
	}

	for _, raw := range splitCSV(params.Get("networks")) {
		if !models.ValidNetwork(raw) {
			return q, opts, fmt.Errorf("unknown network %q", raw)
		}
		q.Filters.Networks = append(q.Filters.Networks, raw)
	}

	order, ok := rank.ParseOrder(params.Get("sort"))
	if !ok {
		return q, opts, fmt.Errorf("unknown sort %q", params.Get("sort"))
	}
	opts.Sort = order

	if raw := params.Get("compatibleOnly"); raw != "" {
		if opts.CompatibleOnly, err = strconv.ParseBool(raw); err != nil {
			return q, opts, fmt.Errorf("invalid compatibleOnly %q", raw)
		}
	}

	return q, opts, nil
}

func requiredFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %s", name)
	}
	// ParseFloat accepts "NaN" and "Inf" spellings, which are never valid
	// coordinates
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return value, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
