package responses

import "evlanka/ampere/internal/models/dtos"

// StationListResponse is the payload for the station lookup endpoints.
type StationListResponse struct {
	Stations []dtos.Station `json:"stations"`
	Count    int            `json:"count"`
	RadiusKm float64        `json:"radius_km,omitempty"`
	// Address echoes the geocoded display name on the search endpoint.
	Address string `json:"address,omitempty"`
}

// FavoritesResponse is the payload for the favorites endpoints.
type FavoritesResponse struct {
	Favorites []dtos.Station `json:"favorites"`
	Count     int            `json:"count"`
}

// GeocodeResponse is the payload for the raw geocode passthrough endpoint.
type GeocodeResponse struct {
	Results []dtos.GeocodeResult `json:"results"`
}
