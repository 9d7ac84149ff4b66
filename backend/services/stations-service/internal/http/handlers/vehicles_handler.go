package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"voltfinder/backend/services/stations-service/internal/models"
	"voltfinder/backend/services/stations-service/internal/repository"
)

// VehicleStore is the repository surface the vehicle handlers need.
type VehicleStore interface {
	Create(ctx context.Context, vehicle *models.EvVehicle) error
	Update(ctx context.Context, vehicle *models.EvVehicle) error
	ListByOwner(ctx context.Context, ownerID int64) ([]models.EvVehicle, error)
}

// NewVehiclesListHandler returns GET /api/vehicles handler.
func NewVehiclesListHandler(store VehicleStore, ownerID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicles, err := store.ListByOwner(r.Context(), ownerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch vehicles")
			return
		}
		writeJSON(w, http.StatusOK, vehicles)
	}
}

// NewVehiclesCreateHandler returns POST /api/vehicles handler. A payload
// carrying an id updates the existing vehicle instead of inserting.
func NewVehiclesCreateHandler(store VehicleStore, ownerID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var vehicle models.EvVehicle
		if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(vehicle.Name) == "" {
			writeError(w, http.StatusBadRequest, "vehicle name is required")
			return
		}
		for _, connector := range vehicle.ConnectorTypes {
			if !connector.Valid() {
				writeError(w, http.StatusBadRequest, "unknown connector type "+string(connector))
				return
			}
		}

		vehicle.OwnerID = ownerID
		if vehicle.ID > 0 {
			if err := store.Update(r.Context(), &vehicle); err != nil {
				if errors.Is(err, repository.ErrVehicleNotFound) {
					writeError(w, http.StatusNotFound, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, "failed to save vehicle")
				return
			}
			writeJSON(w, http.StatusOK, vehicle)
			return
		}
		if err := store.Create(r.Context(), &vehicle); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save vehicle")
			return
		}
		writeJSON(w, http.StatusCreated, vehicle)
	}
}
