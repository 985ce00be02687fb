package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixFavorites CachePrefix = "favorites_"
)

const (
	// Radii at or above this value disable distance filtering.
	UnlimitedRadiusKm = 500.0

	// Default search radius for the /stations/near endpoint.
	DefaultRadiusKm = 10.0

	EarthRadiusKm = 6371.0

	// Nominatim country restriction (ISO 3166-1 alpha-2).
	DefaultCountryCode = "lk"
)
