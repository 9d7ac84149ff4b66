package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libredis "voltfinder/backend/libs/redis"
	"voltfinder/backend/services/stations-service/internal/cache"
	"voltfinder/backend/services/stations-service/internal/catalog"
	"voltfinder/backend/services/stations-service/internal/config"
	"voltfinder/backend/services/stations-service/internal/db"
	httpserver "voltfinder/backend/services/stations-service/internal/http"
	"voltfinder/backend/services/stations-service/internal/http/handlers"
	"voltfinder/backend/services/stations-service/internal/http/middleware"
	"voltfinder/backend/services/stations-service/internal/repository"
	"voltfinder/backend/services/stations-service/internal/service"
)

// App wires stations-service dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Migrate(migrateCtx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	// Redis is optional; without it the service falls back to the in-process
	// cache.
	var redisClient *redis.Client
	var store cache.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err = libredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		store = cache.NewRedisCache(redisClient, cfg.CacheTTL(), logger)
	} else {
		store = cache.NewMemoryCache(cfg.CacheTTL(), cfg.Cache.MaxEntries)
	}

	var source catalog.Catalog
	switch cfg.Catalog.Provider {
	case config.ProviderOpenChargeMap:
		source = catalog.NewOpenChargeMapCatalog(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, nil)
	default:
		seed := cfg.Catalog.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		source = catalog.NewSyntheticCatalog(seed)
	}

	discovery := service.NewDiscovery(source, store, cfg.CatalogTimeout(), logger)
	vehicleRepo := repository.NewVehicleRepository(sqlDB)
	favoriteRepo := repository.NewSavedLocationRepository(sqlDB)

	ownerID := cfg.Tenant.DefaultOwnerID
	routes := httpserver.Routes{
		Stations:       handlers.NewStationsHandler(discovery, vehicleRepo, ownerID),
		StationByID:    handlers.NewStationByIDHandler(discovery),
		VehiclesList:   handlers.NewVehiclesListHandler(vehicleRepo, ownerID),
		VehiclesCreate: handlers.NewVehiclesCreateHandler(vehicleRepo, ownerID),
		FavoritesList:  handlers.NewFavoritesListHandler(favoriteRepo, ownerID),
		FavoriteCreate: handlers.NewFavoriteCreateHandler(favoriteRepo, ownerID),
		FavoriteDelete: handlers.NewFavoriteDeleteHandler(favoriteRepo, ownerID),
		Health:         handlers.NewHealthHandler(),
	}

	router := middleware.RequestLogging(logger, httpserver.NewRouter(routes))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
