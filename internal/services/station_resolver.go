package services

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"evlanka/ampere/internal/constants"
	"evlanka/ampere/internal/logging"
	"evlanka/ampere/internal/models/dtos"
	"evlanka/ampere/internal/models/entities"

	"golang.org/x/sync/singleflight"
)

// StationSource provides raw charging station rows.
type StationSource interface {
	ListAll(ctx context.Context) ([]entities.ChargingStation, error)
}

// StationResolverService turns a location query into a ranked, enriched list of
// charging stations. Remote failures degrade to an empty list: a map with no
// pins beats an error dialog on this read path.
type StationResolverService struct {
	repo  StationSource
	group singleflight.Group
}

func NewStationResolverService(repo StationSource) *StationResolverService {
	return &StationResolverService{repo: repo}
}

// ResolveNear fetches all stations, enriches them with distance from ref, and
// filters by radius. Radii at or above the unlimited sentinel disable the
// filter. The result is unsorted; callers that care about order sort it.
func (svc *StationResolverService) ResolveNear(ctx context.Context, ref dtos.Location, radiusKm float64) []dtos.Station {
	rows, err := svc.listStations(ctx)
	if err != nil {
		logging.Error("Failed to fetch charging stations, degrading to empty",
			"error", err.Error(),
		)
		return []dtos.Station{}
	}

	if len(rows) == 0 {
		logging.Warn("No charging stations found in store")
		return []dtos.Station{}
	}

	stations := make([]dtos.Station, 0, len(rows))
	for _, row := range rows {
		stations = append(stations, EnrichStation(row, &ref))
	}

	if radiusKm < constants.UnlimitedRadiusKm {
		filtered := stations[:0]
		for _, s := range stations {
			if distanceOrZero(s) <= radiusKm {
				filtered = append(filtered, s)
			}
		}
		stations = filtered
	}

	return stations
}

// ResolveByAddress returns every known station ranked by distance from ref.
// The address text only travels along for display echoing; filtering stations
// by the searched text was never part of the product behavior.
func (svc *StationResolverService) ResolveByAddress(ctx context.Context, addressText string, ref dtos.Location) []dtos.Station {
	_ = addressText

	stations := svc.ResolveNear(ctx, ref, constants.UnlimitedRadiusKm)

	sort.Slice(stations, func(i, j int) bool {
		return distanceOrZero(stations[i]) < distanceOrZero(stations[j])
	})

	return stations
}

// listStations collapses concurrent fetches into a single DB round trip.
func (svc *StationResolverService) listStations(ctx context.Context) ([]entities.ChargingStation, error) {
	v, err, _ := svc.group.Do("charging_stations", func() (interface{}, error) {
		return svc.repo.ListAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]entities.ChargingStation), nil
}

func distanceOrZero(s dtos.Station) float64 {
	if s.Distance == nil {
		return 0
	}
	return *s.Distance
}

// Haversine returns the great-circle distance in kilometers between two
// coordinates. Symmetric, zero for identical points, no ellipsoidal correction.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return constants.EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// connectorCounts maps known site names to their installed connector counts.
// Ordered so overlapping names resolve deterministically.
// TODO: move these counts onto the charging_stations table once the schema
// grows a connector_count column; substring matching on names is fragile.
var connectorCounts = []struct {
	name  string
	count int
}{
	{"darley road", 2},
	{"battaramulla", 1},
	{"kottawa", 3},
	{"athurugiriya", 3},
	{"kohuwala", 6},
	{"attidiya", 5},
	{"bellanthota", 5},
	{"kurana", 1},
	{"miriswatta", 2},
	{"ja-ela", 3},
	{"minuwangoda", 3},
	{"kalutara", 1},
	{"peradeniya", 2},
	{"kandy", 2},
}

// stationImages maps town names to display image keys.
var stationImages = []string{
	"Colombo",
	"Battaramulla",
	"Athurugiriya",
	"Kohuwala",
	"Bellanthota",
	"Negombo",
	"Gampaha",
	"Minuwangoda",
	"Kalutara",
	"Peradeniya",
}

var digitsPattern = regexp.MustCompile(`(\d+)`)

// EnrichStation converts a raw row into the client-ready Station. Distance is
// only attached when a reference location is supplied.
func EnrichStation(row entities.ChargingStation, ref *dtos.Location) dtos.Station {
	station := dtos.Station{
		ID:             strconv.Itoa(row.ID),
		Name:           row.Name,
		Address:        row.Address,
		Latitude:       row.Latitude,
		Longitude:      row.Longitude,
		Available:      parseAvailability(row.Status),
		ConnectorTypes: parseConnectorTypes(row.ChargerType),
		ConnectorCount: parseConnectorCount(row.Name, row.ChargerType),
		Image:          stationImage(row.Name, row.Address),
	}

	if ref != nil {
		d := Haversine(ref.Latitude, ref.Longitude, row.Latitude, row.Longitude)
		station.Distance = &d
	}

	return station
}

func parseAvailability(status string) bool {
	s := strings.ToLower(status)
	return s == "available" || s == "active"
}

// parseConnectorTypes extracts connector types from the free-text descriptor.
// Priority order CCS2, CHAdeMO, Type 2; unknown descriptors get the common
// DC fast-charging pair.
func parseConnectorTypes(chargerType string) []string {
	if chargerType == "" {
		return []string{"CCS2", "CHAdeMO"}
	}

	var types []string
	if strings.Contains(chargerType, "CCS2") || strings.Contains(chargerType, "CCS") {
		types = append(types, "CCS2")
	}
	if strings.Contains(chargerType, "CHAdeMO") {
		types = append(types, "CHAdeMO")
	}
	if strings.Contains(chargerType, "Type 2") {
		types = append(types, "Type 2")
	}

	if len(types) == 0 {
		return []string{"CCS2", "CHAdeMO"}
	}
	return types
}

// parseConnectorCount resolves the connector count by site name lookup, then by
// the first run of digits in the descriptor, then defaults to 1.
func parseConnectorCount(name string, chargerType string) int {
	nameLower := strings.ToLower(name)

	for _, entry := range connectorCounts {
		if strings.Contains(nameLower, entry.name) {
			return entry.count
		}
	}

	if m := digitsPattern.FindString(chargerType); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}

	return 1
}

// stationImage matches name or address against known town names. No match
// means no image.
func stationImage(name string, address string) string {
	nameLower := strings.ToLower(name)
	addressLower := strings.ToLower(address)

	for _, town := range stationImages {
		townLower := strings.ToLower(town)
		if strings.Contains(nameLower, townLower) || strings.Contains(addressLower, townLower) {
			return town
		}
	}
	return ""
}
