package api

import (
	"errors"
	"net/http"
	"strings"

	"evlanka/ampere/internal/constants"
	"evlanka/ampere/internal/metrics"
	"evlanka/ampere/internal/models/dtos/responses"
	"evlanka/ampere/internal/providers"
)

// GeocodeHandler handles GET /api/v1/geocode?q=
//
// Raw passthrough to the geocoding provider for clients driving their own
// result pickers. Rate limited at the route level; the upstream service is a
// shared public resource.
func GeocodeHandler(geocoder providers.Geocoder, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if len(query) < 2 {
			respondWithError(w, http.StatusBadRequest, "query must be at least 2 characters")
			return
		}

		results, err := geocoder.Search(r.Context(), query)
		if err != nil {
			var provErr *providers.ProviderError
			if errors.As(err, &provErr) && provErr.Code == constants.ErrCodeRateLimited {
				metricsReg.GeocodeLookupsTotal.WithLabelValues("rate_limited").Inc()
				respondWithError(w, http.StatusTooManyRequests, provErr.Message)
				return
			}

			metricsReg.GeocodeLookupsTotal.WithLabelValues("error").Inc()
			respondWithError(w, http.StatusBadGateway, "geocoding is temporarily unavailable")
			return
		}

		metricsReg.GeocodeLookupsTotal.WithLabelValues("ok").Inc()
		respondWithSuccess(w, http.StatusOK, &responses.GeocodeResponse{Results: results})
	}
}
