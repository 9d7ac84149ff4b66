package models

import "time"

// EvVehicle is a user's electric vehicle. Its connector set drives
// per-station compatibility; it never affects which stations are fetched.
type EvVehicle struct {
	ID                 int64           `db:"id" json:"id"`
	OwnerID            int64           `db:"owner_id" json:"ownerId"`
	Name               string          `db:"name" json:"name"`
	Make               string          `db:"make" json:"make"`
	Model              string          `db:"model" json:"model"`
	Year               int             `db:"year" json:"year,omitempty"`
	ConnectorTypes     []ConnectorType `db:"connector_types" json:"connectorTypes"`
	MaxChargingRateKw  int             `db:"max_charging_rate_kw" json:"maxChargingRate,omitempty"`
	BatteryCapacityKwh int             `db:"battery_capacity_kwh" json:"batteryCapacity,omitempty"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updatedAt"`
}
