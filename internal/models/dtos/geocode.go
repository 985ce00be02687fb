package dtos

// GeocodeResult is one hit from the Nominatim search endpoint. Lat/Lon arrive as
// strings on the wire.
type GeocodeResult struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
}
