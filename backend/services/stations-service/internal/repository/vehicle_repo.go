package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"voltfinder/backend/services/stations-service/internal/models"
)

// ErrVehicleNotFound represents missing vehicle rows.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleRepository handles CRUD for the ev_vehicles table.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository returns repository instance.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create inserts a new vehicle for the owner.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.EvVehicle) error {
	connectors, err := json.Marshal(vehicle.ConnectorTypes)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO ev_vehicles (owner_id, name, make, model, year, connector_types, max_charging_rate_kw, battery_capacity_kwh)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		vehicle.OwnerID, vehicle.Name, vehicle.Make, vehicle.Model, vehicle.Year,
		connectors, vehicle.MaxChargingRateKw, vehicle.BatteryCapacityKwh,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
}

// Update rewrites a vehicle owned by the given owner.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.EvVehicle) error {
	connectors, err := json.Marshal(vehicle.ConnectorTypes)
	if err != nil {
		return err
	}
	const query = `
		UPDATE ev_vehicles
		SET name = $1, make = $2, model = $3, year = $4, connector_types = $5,
		    max_charging_rate_kw = $6, battery_capacity_kwh = $7, updated_at = NOW()
		WHERE id = $8 AND owner_id = $9
		RETURNING updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		vehicle.Name, vehicle.Make, vehicle.Model, vehicle.Year, connectors,
		vehicle.MaxChargingRateKw, vehicle.BatteryCapacityKwh,
		vehicle.ID, vehicle.OwnerID,
	).Scan(&vehicle.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrVehicleNotFound
	}
	return err
}

// GetByID fetches one vehicle owned by the given owner.
func (r *VehicleRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.EvVehicle, error) {
	const query = `
		SELECT id, owner_id, name, make, model, year, connector_types, max_charging_rate_kw, battery_capacity_kwh, created_at, updated_at
		FROM ev_vehicles
		WHERE id = $1 AND owner_id = $2
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, id, ownerID)
	vehicle, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// ListByOwner returns the owner's vehicles, oldest first.
func (r *VehicleRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.EvVehicle, error) {
	const query = `
		SELECT id, owner_id, name, make, model, year, connector_types, max_charging_rate_kw, battery_capacity_kwh, created_at, updated_at
		FROM ev_vehicles
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]models.EvVehicle, 0)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *vehicle)
	}
	return vehicles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*models.EvVehicle, error) {
	var vehicle models.EvVehicle
	var connectors []byte
	if err := row.Scan(
		&vehicle.ID, &vehicle.OwnerID, &vehicle.Name, &vehicle.Make, &vehicle.Model, &vehicle.Year,
		&connectors, &vehicle.MaxChargingRateKw, &vehicle.BatteryCapacityKwh,
		&vehicle.CreatedAt, &vehicle.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(connectors) > 0 {
		if err := json.Unmarshal(connectors, &vehicle.ConnectorTypes); err != nil {
			return nil, err
		}
	}
	return &vehicle, nil
}
