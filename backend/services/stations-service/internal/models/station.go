package models

// ConnectorType is a physical charging-plug standard.
type ConnectorType string

// Supported connector standards.
const (
	ConnectorCCS1    ConnectorType = "CCS1"
	ConnectorCCS2    ConnectorType = "CCS2"
	ConnectorType1   ConnectorType = "Type1"
	ConnectorType2   ConnectorType = "Type2"
	ConnectorCHAdeMO ConnectorType = "CHAdeMO"
	ConnectorTesla   ConnectorType = "Tesla"
	ConnectorNACS    ConnectorType = "NACS"
	ConnectorGBT     ConnectorType = "GB/T"
)

// AllConnectorTypes lists every supported connector standard.
var AllConnectorTypes = []ConnectorType{
	ConnectorCCS1,
	ConnectorCCS2,
	ConnectorType1,
	ConnectorType2,
	ConnectorCHAdeMO,
	ConnectorTesla,
	ConnectorNACS,
	ConnectorGBT,
}

// Valid reports whether c is a known connector standard.
func (c ConnectorType) Valid() bool {
	for _, known := range AllConnectorTypes {
		if c == known {
			return true
		}
	}
	return false
}

// StationStatus is the availability state of a charging station.
type StationStatus string

// Station availability states.
const (
	StatusAvailable StationStatus = "Available"
	StatusBusy      StationStatus = "Busy"
	StatusOffline   StationStatus = "Offline"
)

// AllStationStatuses lists every availability state.
var AllStationStatuses = []StationStatus{StatusAvailable, StatusBusy, StatusOffline}

// Valid reports whether s is a known availability state.
func (s StationStatus) Valid() bool {
	for _, known := range AllStationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// NetworkOther groups operators outside the known enumeration.
const NetworkOther = "Other"

// KnownNetworks is the fixed enumeration of charging operators.
var KnownNetworks = []string{
	"Tesla Supercharger",
	"ChargePoint",
	"EVgo",
	"Electrify America",
	"IONITY",
	"Blink",
	NetworkOther,
}

// ValidNetwork reports whether name is in the known operator enumeration.
func ValidNetwork(name string) bool {
	for _, known := range KnownNetworks {
		if name == known {
			return true
		}
	}
	return false
}

// ChargingStation is a single charger location produced by a catalog query.
// Values are immutable once returned; DistanceMiles and IsCompatible are
// derived per request and never persisted.
type ChargingStation struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	ConnectorTypes []ConnectorType `json:"connectorTypes"`
	PowerKw        int             `json:"powerKw"`
	Status         StationStatus   `json:"status"`
	Network        string          `json:"network"`
	OpeningHours   string          `json:"openingHours"`
	DistanceMiles  float64         `json:"distance"`
	IsCompatible   *bool           `json:"isCompatible,omitempty"`
}
