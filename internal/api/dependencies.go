package api

import (
	"os"

	"evlanka/ampere/internal/common"
	"evlanka/ampere/internal/db"
	"evlanka/ampere/internal/db/repositories"
	"evlanka/ampere/internal/logging"
	"evlanka/ampere/internal/providers"
	"evlanka/ampere/internal/services"
)

type Repositories struct {
	Stations  *repositories.StationRepository
	Favorites *repositories.FavoritesRepositoryGORM
}

type Services struct {
	Cache     common.CacheInterface
	Resolver  *services.StationResolverService
	Favorites *services.FavoritesService
	Search    *services.SearchService
	Geocoder  *providers.NominatimProvider
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

func InitDependencies() (*Dependencies, error) {

	repos := &Repositories{
		Stations:  repositories.NewStationRepository(db.DB),
		Favorites: repositories.NewFavoritesRepositoryGORM(db.PgDB),
	}

	// Prefer Redis for the favorites fallback cache when configured; fall back
	// to the in-memory cache for single-instance setups.
	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis unavailable, using in-memory cache", "error", err.Error())
			cacheSvc = common.NewCacheService(60000, 600)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(60000, 600)
	}

	geocoder := providers.NewNominatimProvider()
	resolverSvc := services.NewStationResolverService(repos.Stations)

	svcs := &Services{
		Cache:     cacheSvc,
		Resolver:  resolverSvc,
		Favorites: services.NewFavoritesService(repos.Favorites, cacheSvc),
		Search:    services.NewSearchService(geocoder, resolverSvc),
		Geocoder:  geocoder,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil

}
