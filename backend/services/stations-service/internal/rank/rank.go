// Package rank orders filtered station lists by a single sort key.
package rank

import (
	"sort"

	"voltfinder/backend/services/stations-service/internal/models"
)

// Order selects the sort key for a station list.
type Order string

// Supported sort orders.
const (
	ByDistance     Order = "distance"
	ByPower        Order = "power"
	ByAvailability Order = "availability"
)

// ParseOrder maps a query-string value to an Order. An empty value selects
// the distance default.
func ParseOrder(raw string) (Order, bool) {
	switch Order(raw) {
	case "":
		return ByDistance, true
	case ByDistance, ByPower, ByAvailability:
		return Order(raw), true
	default:
		return "", false
	}
}

var statusPriority = map[models.StationStatus]int{
	models.StatusAvailable: 0,
	models.StatusBusy:      1,
	models.StatusOffline:   2,
}

// Sort orders stations in place. Distance sorts ascending (an absent
// distance is the zero value and sorts first), power descending,
// availability by Available < Busy < Offline. The sort is stable: ties keep
// catalog emission order.
func Sort(stations []models.ChargingStation, order Order) {
	switch order {
	case ByPower:
		sort.SliceStable(stations, func(i, j int) bool {
			return stations[i].PowerKw > stations[j].PowerKw
		})
	case ByAvailability:
		sort.SliceStable(stations, func(i, j int) bool {
			return statusPriority[stations[i].Status] < statusPriority[stations[j].Status]
		})
	default:
		sort.SliceStable(stations, func(i, j int) bool {
			return stations[i].DistanceMiles < stations[j].DistanceMiles
		})
	}
}
