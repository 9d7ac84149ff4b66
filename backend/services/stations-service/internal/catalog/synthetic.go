package catalog

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"voltfinder/backend/services/stations-service/internal/filter"
	"voltfinder/backend/services/stations-service/internal/geo"
	"voltfinder/backend/services/stations-service/internal/models"
)

// candidate distance is capped at 80% of the requested radius, so the outer
// band of the radius is never populated by synthetic data
const maxRadiusShare = 0.8

const syntheticIDPrefix = "st_"

var stationNames = []string{
	"Tesla Supercharger",
	"ChargePoint Station",
	"EVgo Fast Charging",
	"Electrify America",
	"IONITY High Power Charging",
	"Blink Charging Station",
	"GreenWay Charging Hub",
	"Shell Recharge",
	"EV Connect",
	"City Power Station",
}

var openingHoursOptions = []string{
	"Open 24/7",
	"Open 6 AM - 11 PM",
	"Open 8 AM - 10 PM",
	"Open 7 AM - 9 PM",
	"Open 9 AM - 8 PM",
}

var powerOptions = []int{50, 75, 100, 150, 250, 350}

// SyntheticCatalog fabricates 5-10 stations per call by sampling random
// bearings and distances around the query origin. All randomness flows from
// the constructor seed, so identical call sequences reproduce identical
// results. Station ids embed a timestamp and are not stable across calls.
type SyntheticCatalog struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewSyntheticCatalog returns a generator seeded for reproducibility.
func NewSyntheticCatalog(seed int64) *SyntheticCatalog {
	return &SyntheticCatalog{
		rnd:   rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(uint64(seed)),
		now:   time.Now,
	}
}

// Nearby synthesizes candidate stations with the query's filter hints
// pre-applied, mirroring a directory that narrows results server-side.
func (c *SyntheticCatalog) Nearby(ctx context.Context, q Query) ([]models.ChargingStation, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	count := 5 + c.rnd.Intn(6)
	stamp := c.now().UnixMilli()

	stations := make([]models.ChargingStation, 0, count)
	for i := 0; i < count; i++ {
		bearing := c.rnd.Float64() * 2 * math.Pi
		distance := c.rnd.Float64() * q.RadiusMiles * maxRadiusShare
		position := geo.DestinationPoint(q.Origin, bearing, distance)

		station := models.ChargingStation{
			ID:             fmt.Sprintf("%s%d_%d", syntheticIDPrefix, i, stamp),
			Name:           stationNames[c.rnd.Intn(len(stationNames))],
			Address:        fmt.Sprintf("%s, %s", c.faker.Street(), c.faker.City()),
			Latitude:       position.Latitude,
			Longitude:      position.Longitude,
			ConnectorTypes: pickConnectors(c.rnd),
			PowerKw:        powerOptions[c.rnd.Intn(len(powerOptions))],
			Status:         models.AllStationStatuses[c.rnd.Intn(len(models.AllStationStatuses))],
			Network:        models.KnownNetworks[c.rnd.Intn(len(models.KnownNetworks))],
			OpeningHours:   openingHoursOptions[c.rnd.Intn(len(openingHoursOptions))],
			DistanceMiles:  distance,
		}

		if filter.Matches(station, q.Filters) {
			stations = append(stations, station)
		}
	}

	return stations, nil
}

// StationByID derives a stable station from the id itself, so repeated
// detail lookups for the same id agree. Lookup is independent of the
// discovery cache.
func (c *SyntheticCatalog) StationByID(ctx context.Context, id string) (*models.ChargingStation, error) {
	if !strings.HasPrefix(id, syntheticIDPrefix) {
		return nil, fmt.Errorf("%w: %s", ErrStationNotFound, id)
	}

	h := fnv.New64a()
	h.Write([]byte(id))
	seed := h.Sum64()
	rnd := rand.New(rand.NewSource(int64(seed)))
	faker := gofakeit.New(seed)

	station := models.ChargingStation{
		ID:             id,
		Name:           stationNames[rnd.Intn(len(stationNames))],
		Address:        fmt.Sprintf("%s, %s", faker.Street(), faker.City()),
		Latitude:       32 + rnd.Float64()*16,
		Longitude:      -124 + rnd.Float64()*50,
		ConnectorTypes: pickConnectors(rnd),
		PowerKw:        powerOptions[rnd.Intn(len(powerOptions))],
		Status:         models.AllStationStatuses[rnd.Intn(len(models.AllStationStatuses))],
		Network:        models.KnownNetworks[rnd.Intn(len(models.KnownNetworks))],
		OpeningHours:   openingHoursOptions[rnd.Intn(len(openingHoursOptions))],
	}
	return &station, nil
}

// pickConnectors samples 1-3 distinct connector standards.
func pickConnectors(rnd *rand.Rand) []models.ConnectorType {
	want := 1 + rnd.Intn(3)
	picked := make([]models.ConnectorType, 0, want)
	for len(picked) < want {
		candidate := models.AllConnectorTypes[rnd.Intn(len(models.AllConnectorTypes))]
		duplicate := false
		for _, existing := range picked {
			if existing == candidate {
				duplicate = true
				break
			}
		}
		if !duplicate {
			picked = append(picked, candidate)
		}
	}
	return picked
}
