package models

// FilterSettings narrows a discovery result set. An empty slice means "no
// filtering" for that dimension, not "match nothing"; a nil MinPowerKw means
// no minimum. This wildcard convention is load-bearing across the whole
// pipeline.
type FilterSettings struct {
	ConnectorTypes       []ConnectorType `json:"connectorTypes"`
	AvailabilityStatuses []StationStatus `json:"availabilityStatuses"`
	MinPowerKw           *int            `json:"minPowerOutput"`
	Networks             []string        `json:"networks"`
}
