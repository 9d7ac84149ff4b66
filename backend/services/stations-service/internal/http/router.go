package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	Stations       http.HandlerFunc
	StationByID    http.HandlerFunc
	VehiclesList   http.HandlerFunc
	VehiclesCreate http.HandlerFunc
	FavoritesList  http.HandlerFunc
	FavoriteCreate http.HandlerFunc
	FavoriteDelete http.HandlerFunc
	Health         http.HandlerFunc
}

// NewRouter registers endpoints. Favorites are additionally exposed under
// /api/saved-locations for clients that use the older path.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Stations != nil {
		mux.Handle("GET /api/stations", routes.Stations)
	}
	if routes.StationByID != nil {
		mux.Handle("GET /api/stations/{id}", routes.StationByID)
	}
	if routes.VehiclesList != nil {
		mux.Handle("GET /api/vehicles", routes.VehiclesList)
	}
	if routes.VehiclesCreate != nil {
		mux.Handle("POST /api/vehicles", routes.VehiclesCreate)
	}
	if routes.FavoritesList != nil {
		mux.Handle("GET /api/favorites", routes.FavoritesList)
		mux.Handle("GET /api/saved-locations", routes.FavoritesList)
	}
	if routes.FavoriteCreate != nil {
		mux.Handle("POST /api/favorites", routes.FavoriteCreate)
		mux.Handle("POST /api/saved-locations", routes.FavoriteCreate)
	}
	if routes.FavoriteDelete != nil {
		mux.Handle("DELETE /api/favorites/{id}", routes.FavoriteDelete)
		mux.Handle("DELETE /api/saved-locations/{id}", routes.FavoriteDelete)
	}
	if routes.Health != nil {
		mux.Handle("GET /health", routes.Health)
	}
	return mux
}
