package api

import (
	"encoding/json"
	"net/http"

	"evlanka/ampere/internal/auth"
	"evlanka/ampere/internal/metrics"
	"evlanka/ampere/internal/models/dtos"
	"evlanka/ampere/internal/models/dtos/responses"
	"evlanka/ampere/internal/services"

	"github.com/go-chi/chi/v5"
)

func currentUserEmail(r *http.Request) string {
	return auth.GetSession(r.Context()).ResolveEmail()
}

// ListFavoritesHandler handles GET /api/v1/favorites
func ListFavoritesHandler(favSvc *services.FavoritesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		favorites := favSvc.List(r.Context(), currentUserEmail(r))

		respondWithSuccess(w, http.StatusOK, &responses.FavoritesResponse{
			Favorites: favorites,
			Count:     len(favorites),
		})
	}
}

// AddFavoriteHandler handles POST /api/v1/favorites
//
// The body is the full enriched station snapshot; it is stored denormalized so
// the favorites list survives the station table being unreachable. A session
// with no resolvable email is a silent no-op, mirroring the synchronizer's
// identity contract.
func AddFavoriteHandler(favSvc *services.FavoritesService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var station dtos.Station
		if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
			respondWithError(w, http.StatusBadRequest, "request body must be a station snapshot")
			return
		}

		if station.ID == "" {
			respondWithError(w, http.StatusBadRequest, "station id is required")
			return
		}

		email := currentUserEmail(r)
		favSvc.AddFavorite(r.Context(), email, station)
		metricsReg.FavoritesOpsTotal.WithLabelValues("add").Inc()

		favorites := favSvc.List(r.Context(), email)
		respondWithSuccess(w, http.StatusCreated, &responses.FavoritesResponse{
			Favorites: favorites,
			Count:     len(favorites),
		})
	}
}

// RemoveFavoriteHandler handles DELETE /api/v1/favorites/{station_id}
func RemoveFavoriteHandler(favSvc *services.FavoritesService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		stationID := chi.URLParam(r, "station_id")
		if stationID == "" {
			respondWithError(w, http.StatusBadRequest, "station_id is required")
			return
		}

		email := currentUserEmail(r)
		favSvc.RemoveFavorite(r.Context(), email, stationID)
		metricsReg.FavoritesOpsTotal.WithLabelValues("remove").Inc()

		favorites := favSvc.List(r.Context(), email)
		respondWithSuccess(w, http.StatusOK, &responses.FavoritesResponse{
			Favorites: favorites,
			Count:     len(favorites),
		})
	}
}
