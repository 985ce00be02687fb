package dtos

// Location is a WGS84 coordinate pair in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Station is the enriched, client-ready representation of a charging station.
// Distance is only set when a reference location was supplied to the resolver.
type Station struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Available      bool     `json:"available"`
	ConnectorTypes []string `json:"connectorTypes"`
	ConnectorCount int      `json:"connectorCount"`
	Distance       *float64 `json:"distance,omitempty"`
	Image          string   `json:"image,omitempty"`
}
