package api

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"evlanka/ampere/internal/constants"
	"evlanka/ampere/internal/metrics"
	"evlanka/ampere/internal/models/dtos"
	"evlanka/ampere/internal/models/dtos/responses"
	"evlanka/ampere/internal/providers"
	"evlanka/ampere/internal/services"
)

// NearbyStationsHandler handles GET /api/v1/stations/near?lat=&lon=&radius=
//
// Returns every station within the radius, sorted ascending by distance from
// the reference point. Backend failures surface as an empty list, matching the
// map display's degrade-to-empty contract.
func NearbyStationsHandler(resolver *services.StationResolverService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			respondWithError(w, http.StatusBadRequest, "lat and lon query parameters are required")
			return
		}

		radius := constants.DefaultRadiusKm
		if qs := r.URL.Query().Get("radius"); qs != "" {
			parsed, err := strconv.ParseFloat(qs, 64)
			if err != nil || parsed <= 0 {
				respondWithError(w, http.StatusBadRequest, "radius must be a positive number")
				return
			}
			radius = parsed
		}

		ref := dtos.Location{Latitude: lat, Longitude: lon}
		stations := resolver.ResolveNear(r.Context(), ref, radius)

		sort.Slice(stations, func(i, j int) bool {
			di, dj := 0.0, 0.0
			if stations[i].Distance != nil {
				di = *stations[i].Distance
			}
			if stations[j].Distance != nil {
				dj = *stations[j].Distance
			}
			return di < dj
		})

		metricsReg.StationsResolvedTotal.WithLabelValues("near").Inc()

		respondWithSuccess(w, http.StatusOK, &responses.StationListResponse{
			Stations: stations,
			Count:    len(stations),
			RadiusKm: radius,
		})
	}
}

// SearchStationsHandler handles GET /api/v1/stations/search?q=
//
// Geocodes the query, recenters on the best hit, and returns all stations
// ranked by distance from it.
func SearchStationsHandler(searchSvc *services.SearchService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query().Get("q")

		result, err := searchSvc.SearchByAddress(r.Context(), query)
		if err != nil {
			var provErr *providers.ProviderError

			switch {
			case errors.Is(err, services.ErrQueryTooShort):
				respondWithError(w, http.StatusBadRequest, "query must be at least 2 characters")
			case errors.Is(err, services.ErrSuperseded):
				// A newer search owns the screen; this response has no audience.
				respondWithSuccess(w, http.StatusOK, &responses.StationListResponse{Stations: []dtos.Station{}})
			case errors.As(err, &provErr) && provErr.Code == constants.ErrCodeNoResults:
				metricsReg.GeocodeLookupsTotal.WithLabelValues("no_results").Inc()
				respondWithSuccess(w, http.StatusOK, &responses.StationListResponse{Stations: []dtos.Station{}})
			default:
				metricsReg.GeocodeLookupsTotal.WithLabelValues("error").Inc()
				respondWithError(w, http.StatusBadGateway, "address search is temporarily unavailable")
			}
			return
		}

		metricsReg.GeocodeLookupsTotal.WithLabelValues("ok").Inc()
		metricsReg.StationsResolvedTotal.WithLabelValues("search").Inc()

		respondWithSuccess(w, http.StatusOK, &responses.StationListResponse{
			Stations: result.Stations,
			Count:    len(result.Stations),
			Address:  result.Address,
		})
	}
}
