package routes

import (
	"evlanka/ampere/internal/api"
	"evlanka/ampere/internal/metrics"
	"evlanka/ampere/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, deps *api.Dependencies) {

	r.Route("/api/v1", func(v1 chi.Router) {

		// Station lookup is a public read path; failures there already degrade
		// to empty lists, so no auth gate in front of it.
		v1.Get("/stations/near", api.NearbyStationsHandler(deps.Services.Resolver, metricsReg))

		// Geocode-backed routes sit behind the per-IP rate limit because the
		// upstream provider enforces its own.
		v1.Group(func(geocoded chi.Router) {
			geocoded.Use(middleware.RateLimitMiddleware)
			geocoded.Get("/stations/search", api.SearchStationsHandler(deps.Services.Search, metricsReg))
			geocoded.Get("/geocode", api.GeocodeHandler(deps.Services.Geocoder, metricsReg))
		})

		// Favorites require a signed-in session
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware())
			authed.Get("/favorites", api.ListFavoritesHandler(deps.Services.Favorites))
			authed.Post("/favorites", api.AddFavoriteHandler(deps.Services.Favorites, metricsReg))
			authed.Delete("/favorites/{station_id}", api.RemoveFavoriteHandler(deps.Services.Favorites, metricsReg))
		})
	})
}
