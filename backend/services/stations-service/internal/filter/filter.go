// Package filter applies the discovery predicates to candidate stations.
// Every predicate follows the empty-set-means-wildcard convention: an empty
// filter slice disables that dimension entirely.
package filter

import "voltfinder/backend/services/stations-service/internal/models"

// MatchesConnector reports whether the station offers at least one of the
// accepted connector standards. An empty accepted set matches everything.
func MatchesConnector(station models.ChargingStation, accepted []models.ConnectorType) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, have := range station.ConnectorTypes {
		for _, want := range accepted {
			if have == want {
				return true
			}
		}
	}
	return false
}

// MatchesStatus reports whether the station's availability is in the
// accepted set. An empty accepted set matches everything.
func MatchesStatus(station models.ChargingStation, accepted []models.StationStatus) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, want := range accepted {
		if station.Status == want {
			return true
		}
	}
	return false
}

// MatchesPower reports whether the station meets the minimum rated output.
// A nil minimum matches everything.
func MatchesPower(station models.ChargingStation, minPowerKw *int) bool {
	if minPowerKw == nil {
		return true
	}
	return station.PowerKw >= *minPowerKw
}

// MatchesNetwork reports whether the station's operator is in the accepted
// set. An empty accepted set matches everything.
func MatchesNetwork(station models.ChargingStation, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, want := range accepted {
		if station.Network == want {
			return true
		}
	}
	return false
}

// Matches reports whether the station passes all four filter predicates.
// Vehicle compatibility is deliberately not part of this conjunction; it is
// an explicit, separately requested step.
func Matches(station models.ChargingStation, settings models.FilterSettings) bool {
	return MatchesConnector(station, settings.ConnectorTypes) &&
		MatchesStatus(station, settings.AvailabilityStatuses) &&
		MatchesPower(station, settings.MinPowerKw) &&
		MatchesNetwork(station, settings.Networks)
}

// Apply returns the stations passing all four predicates, preserving input
// order.
func Apply(stations []models.ChargingStation, settings models.FilterSettings) []models.ChargingStation {
	out := make([]models.ChargingStation, 0, len(stations))
	for _, station := range stations {
		if Matches(station, settings) {
			out = append(out, station)
		}
	}
	return out
}

// IsCompatible reports whether the station and vehicle share at least one
// connector standard.
func IsCompatible(station models.ChargingStation, vehicle models.EvVehicle) bool {
	for _, have := range station.ConnectorTypes {
		for _, want := range vehicle.ConnectorTypes {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Annotate sets IsCompatible on every station relative to the vehicle.
func Annotate(stations []models.ChargingStation, vehicle models.EvVehicle) {
	for i := range stations {
		compatible := IsCompatible(stations[i], vehicle)
		stations[i].IsCompatible = &compatible
	}
}

// CompatibleOnly returns the stations sharing a connector standard with the
// vehicle, preserving input order.
func CompatibleOnly(stations []models.ChargingStation, vehicle models.EvVehicle) []models.ChargingStation {
	out := make([]models.ChargingStation, 0, len(stations))
	for _, station := range stations {
		if IsCompatible(station, vehicle) {
			out = append(out, station)
		}
	}
	return out
}
