package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"voltfinder/backend/services/stations-service/internal/geo"
	"voltfinder/backend/services/stations-service/internal/models"
)

// HTTPDoer defines the http.Client interface subset used by the client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

const defaultOCMBaseURL = "https://api.openchargemap.io/v3"

// OpenChargeMapCatalog queries the Open Charge Map directory. Results are
// mapped into the internal station model; directory-side filtering is
// best-effort and the discovery pipeline re-applies every filter.
type OpenChargeMapCatalog struct {
	baseURL    string
	apiKey     string
	maxResults int
	client     HTTPDoer
}

// NewOpenChargeMapCatalog builds the directory client.
func NewOpenChargeMapCatalog(baseURL, apiKey string, client HTTPDoer) *OpenChargeMapCatalog {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOCMBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &OpenChargeMapCatalog{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		maxResults: 50,
		client:     client,
	}
}

// Nearby fetches stations around the origin.
func (c *OpenChargeMapCatalog) Nearby(ctx context.Context, q Query) ([]models.ChargingStation, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("output", "json")
	params.Set("latitude", strconv.FormatFloat(q.Origin.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(q.Origin.Longitude, 'f', -1, 64))
	params.Set("distance", strconv.FormatFloat(q.RadiusMiles, 'f', -1, 64))
	params.Set("distanceunit", "Miles")
	params.Set("maxresults", strconv.Itoa(c.maxResults))
	if q.Filters.MinPowerKw != nil {
		// hint only; re-checked downstream
		params.Set("minpowerkw", strconv.Itoa(*q.Filters.MinPowerKw))
	}

	pois, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	stations := make([]models.ChargingStation, 0, len(pois))
	for _, poi := range pois {
		stations = append(stations, poi.toStation(q.Origin))
	}
	return stations, nil
}

// StationByID fetches one station by its directory id.
func (c *OpenChargeMapCatalog) StationByID(ctx context.Context, id string) (*models.ChargingStation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrStationNotFound)
	}

	params := url.Values{}
	params.Set("output", "json")
	params.Set("chargepointid", id)
	params.Set("maxresults", "1")

	pois, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(pois) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStationNotFound, id)
	}

	station := pois[0].toStation(geo.Point{})
	station.DistanceMiles = 0
	return &station, nil
}

func (c *OpenChargeMapCatalog) fetch(ctx context.Context, params url.Values) ([]ocmPOI, error) {
	endpoint := fmt.Sprintf("%s/poi?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: directory returned status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var pois []ocmPOI
	if err := json.NewDecoder(resp.Body).Decode(&pois); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSourceUnavailable, err)
	}
	return pois, nil
}

// Open Charge Map wire types, reduced to the fields the mapping consumes.

type ocmPOI struct {
	ID           int64            `json:"ID"`
	AddressInfo  ocmAddressInfo   `json:"AddressInfo"`
	Connections  []ocmConnection  `json:"Connections"`
	StatusType   *ocmStatusType   `json:"StatusType"`
	OperatorInfo *ocmOperatorInfo `json:"OperatorInfo"`
}

type ocmAddressInfo struct {
	Title          string  `json:"Title"`
	AddressLine1   string  `json:"AddressLine1"`
	Town           string  `json:"Town"`
	Latitude       float64 `json:"Latitude"`
	Longitude      float64 `json:"Longitude"`
	AccessComments string  `json:"AccessComments"`
	Distance       float64 `json:"Distance"`
}

type ocmConnection struct {
	ConnectionType *ocmConnectionType `json:"ConnectionType"`
	PowerKW        float64            `json:"PowerKW"`
}

type ocmConnectionType struct {
	Title string `json:"Title"`
}

type ocmStatusType struct {
	IsOperational *bool `json:"IsOperational"`
}

type ocmOperatorInfo struct {
	Title string `json:"Title"`
}

func (p ocmPOI) toStation(origin geo.Point) models.ChargingStation {
	position := geo.Point{Latitude: p.AddressInfo.Latitude, Longitude: p.AddressInfo.Longitude}

	distance := p.AddressInfo.Distance
	if distance == 0 && (origin != geo.Point{}) {
		distance = geo.DistanceMiles(origin, position)
	}

	address := p.AddressInfo.AddressLine1
	if p.AddressInfo.Town != "" {
		address = strings.TrimPrefix(address+", "+p.AddressInfo.Town, ", ")
	}

	hours := p.AddressInfo.AccessComments
	if hours == "" {
		hours = "Unknown"
	}

	connectors, power := mapConnections(p.Connections)

	return models.ChargingStation{
		ID:             strconv.FormatInt(p.ID, 10),
		Name:           p.AddressInfo.Title,
		Address:        address,
		Latitude:       position.Latitude,
		Longitude:      position.Longitude,
		ConnectorTypes: connectors,
		PowerKw:        power,
		Status:         mapStatus(p.StatusType),
		Network:        mapNetwork(p.OperatorInfo),
		OpeningHours:   hours,
		DistanceMiles:  distance,
	}
}

func mapConnections(connections []ocmConnection) ([]models.ConnectorType, int) {
	seen := map[models.ConnectorType]bool{}
	var connectors []models.ConnectorType
	maxPower := 0

	for _, conn := range connections {
		if kw := int(conn.PowerKW); kw > maxPower {
			maxPower = kw
		}
		if conn.ConnectionType == nil {
			continue
		}
		if mapped, ok := mapConnectorTitle(conn.ConnectionType.Title); ok && !seen[mapped] {
			seen[mapped] = true
			connectors = append(connectors, mapped)
		}
	}

	if len(connectors) == 0 {
		connectors = []models.ConnectorType{models.ConnectorType2}
	}
	if maxPower <= 0 {
		maxPower = 50
	}
	return connectors, maxPower
}

func mapConnectorTitle(title string) (models.ConnectorType, bool) {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "ccs (type 1)"):
		return models.ConnectorCCS1, true
	case strings.Contains(lower, "ccs (type 2)"):
		return models.ConnectorCCS2, true
	case strings.Contains(lower, "chademo"):
		return models.ConnectorCHAdeMO, true
	case strings.Contains(lower, "nacs"):
		return models.ConnectorNACS, true
	case strings.Contains(lower, "tesla"):
		return models.ConnectorTesla, true
	case strings.Contains(lower, "gb/t") || strings.Contains(lower, "gb-t"):
		return models.ConnectorGBT, true
	case strings.Contains(lower, "j1772") || strings.Contains(lower, "type 1"):
		return models.ConnectorType1, true
	case strings.Contains(lower, "mennekes") || strings.Contains(lower, "type 2"):
		return models.ConnectorType2, true
	default:
		return "", false
	}
}

func mapStatus(status *ocmStatusType) models.StationStatus {
	if status == nil || status.IsOperational == nil {
		return models.StatusAvailable
	}
	if *status.IsOperational {
		return models.StatusAvailable
	}
	return models.StatusOffline
}

func mapNetwork(operator *ocmOperatorInfo) string {
	if operator == nil || strings.TrimSpace(operator.Title) == "" {
		return models.NetworkOther
	}
	for _, known := range models.KnownNetworks {
		if strings.EqualFold(operator.Title, known) {
			return known
		}
	}
	return models.NetworkOther
}
