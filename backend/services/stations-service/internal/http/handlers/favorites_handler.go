package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"voltfinder/backend/services/stations-service/internal/models"
	"voltfinder/backend/services/stations-service/internal/repository"
)

// FavoriteStore is the repository surface the favorites handlers need.
type FavoriteStore interface {
	Create(ctx context.Context, location *models.SavedLocation) error
	ListByOwner(ctx context.Context, ownerID int64) ([]models.SavedLocation, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

// NewFavoritesListHandler returns GET /api/favorites handler.
func NewFavoritesListHandler(store FavoriteStore, ownerID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations, err := store.ListByOwner(r.Context(), ownerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch favorites")
			return
		}
		writeJSON(w, http.StatusOK, locations)
	}
}

// NewFavoriteCreateHandler returns POST /api/favorites handler.
func NewFavoriteCreateHandler(store FavoriteStore, ownerID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var location models.SavedLocation
		if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(location.StationID) == "" {
			writeError(w, http.StatusBadRequest, "stationId is required")
			return
		}
		if strings.TrimSpace(location.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		location.OwnerID = ownerID
		if err := store.Create(r.Context(), &location); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save favorite")
			return
		}
		writeJSON(w, http.StatusCreated, location)
	}
}

// NewFavoriteDeleteHandler returns DELETE /api/favorites/{id} handler.
func NewFavoriteDeleteHandler(store FavoriteStore, ownerID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid favorite id")
			return
		}
		if err := store.Delete(r.Context(), id, ownerID); err != nil {
			if errors.Is(err, repository.ErrSavedLocationNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to delete favorite")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
