package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"voltfinder/backend/services/stations-service/internal/models"
)

// ErrSavedLocationNotFound represents missing saved location rows.
var ErrSavedLocationNotFound = errors.New("saved location not found")

// SavedLocationRepository handles CRUD for the saved_locations table.
type SavedLocationRepository struct {
	db *sql.DB
}

// NewSavedLocationRepository returns repository instance.
func NewSavedLocationRepository(db *sql.DB) *SavedLocationRepository {
	return &SavedLocationRepository{db: db}
}

// Create inserts a favorited station snapshot for the owner.
func (r *SavedLocationRepository) Create(ctx context.Context, location *models.SavedLocation) error {
	connectors, err := json.Marshal(location.ConnectorTypes)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO saved_locations (owner_id, station_id, name, latitude, longitude, connector_types, network)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		location.OwnerID, location.StationID, location.Name,
		location.Latitude, location.Longitude, connectors, location.Network,
	).Scan(&location.ID, &location.CreatedAt)
}

// ListByOwner returns the owner's saved locations, newest first.
func (r *SavedLocationRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.SavedLocation, error) {
	const query = `
		SELECT id, owner_id, station_id, name, latitude, longitude, connector_types, network, created_at
		FROM saved_locations
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]models.SavedLocation, 0)
	for rows.Next() {
		var location models.SavedLocation
		var connectors []byte
		if err := rows.Scan(
			&location.ID, &location.OwnerID, &location.StationID, &location.Name,
			&location.Latitude, &location.Longitude, &connectors, &location.Network,
			&location.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(connectors) > 0 {
			if err := json.Unmarshal(connectors, &location.ConnectorTypes); err != nil {
				return nil, err
			}
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

// Delete removes a saved location owned by the given owner.
func (r *SavedLocationRepository) Delete(ctx context.Context, id, ownerID int64) error {
	const query = `DELETE FROM saved_locations WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSavedLocationNotFound
	}
	return nil
}
