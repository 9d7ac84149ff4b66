package models

import "time"

// SavedLocation is a favorited station. Station ids from the directory are
// not guaranteed stable across queries, so the row snapshots the coordinate
// and connector set it was saved with.
type SavedLocation struct {
	ID             int64           `db:"id" json:"id"`
	OwnerID        int64           `db:"owner_id" json:"ownerId"`
	StationID      string          `db:"station_id" json:"stationId"`
	Name           string          `db:"name" json:"name"`
	Latitude       float64         `db:"latitude" json:"latitude"`
	Longitude      float64         `db:"longitude" json:"longitude"`
	ConnectorTypes []ConnectorType `db:"connector_types" json:"connectorTypes"`
	Network        string          `db:"network" json:"network,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
}
