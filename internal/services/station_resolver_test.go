package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"evlanka/ampere/internal/models/dtos"
	"evlanka/ampere/internal/models/entities"
)

// Mock StationSource
type mockStationSource struct {
	listAllFunc func(ctx context.Context) ([]entities.ChargingStation, error)
}

func (m *mockStationSource) ListAll(ctx context.Context) ([]entities.ChargingStation, error) {
	return m.listAllFunc(ctx)
}

var colombo = dtos.Location{Latitude: 6.9271, Longitude: 79.8612}

func testRows() []entities.ChargingStation {
	return []entities.ChargingStation{
		{
			ID:          1,
			Name:        "Kohuwala DC Fast Charger",
			Address:     "Dutugemunu Street, Kohuwala",
			Operator:    "Keells",
			ChargerType: "CCS2, CHAdeMO",
			Latitude:    6.9344,
			Longitude:   79.8428,
			Status:      "Active",
		},
		{
			ID:          2,
			Name:        "Kandy City Centre Charger",
			Address:     "Dalada Veediya, Kandy",
			Operator:    "Keells",
			ChargerType: "Type 2",
			Latitude:    7.2906,
			Longitude:   80.6337,
			Status:      "Offline",
		},
		{
			ID:          3,
			Name:        "Peradeniya Charger",
			Address:     "Galaha Road, Peradeniya",
			Operator:    "CEB",
			ChargerType: "4 guns",
			Latitude:    7.2712,
			Longitude:   80.5937,
			Status:      "available",
		},
	}
}

func newTestResolver(rows []entities.ChargingStation, err error) *StationResolverService {
	return NewStationResolverService(&mockStationSource{
		listAllFunc: func(ctx context.Context) ([]entities.ChargingStation, error) {
			return rows, err
		},
	})
}

func TestHaversine_IdenticalPointsAreZero(t *testing.T) {
	if d := Haversine(6.9271, 79.8612, 6.9271, 79.8612); d != 0 {
		t.Errorf("Expected 0, got %f", d)
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Haversine(6.9271, 79.8612, 7.2906, 80.6337)
	b := Haversine(7.2906, 80.6337, 6.9271, 79.8612)

	if math.Abs(a-b) > 1e-9 {
		t.Errorf("Expected symmetric distances, got %f and %f", a, b)
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Colombo to the Kohuwala charger is roughly 2.1 km
	d := Haversine(6.9271, 79.8612, 6.9344, 79.8428)

	if d < 2.0 || d > 2.3 {
		t.Errorf("Expected ~2.1 km, got %f", d)
	}
}

func TestResolveNear_RadiusFilters(t *testing.T) {
	svc := newTestResolver(testRows(), nil)

	stations := svc.ResolveNear(context.Background(), colombo, 10)

	if len(stations) != 1 {
		t.Fatalf("Expected 1 station within 10 km, got %d", len(stations))
	}
	if stations[0].ID != "1" {
		t.Errorf("Expected station 1, got %s", stations[0].ID)
	}
}

func TestResolveNear_TightRadiusExcludes(t *testing.T) {
	svc := newTestResolver(testRows(), nil)

	stations := svc.ResolveNear(context.Background(), colombo, 1)

	if len(stations) != 0 {
		t.Errorf("Expected no stations within 1 km, got %d", len(stations))
	}
}

func TestResolveNear_UnlimitedSentinelReturnsAll(t *testing.T) {
	svc := newTestResolver(testRows(), nil)

	stations := svc.ResolveNear(context.Background(), colombo, 500)

	if len(stations) != 3 {
		t.Errorf("Expected all 3 stations at the unlimited sentinel, got %d", len(stations))
	}
}

func TestResolveNear_FetchErrorDegradesToEmpty(t *testing.T) {
	svc := newTestResolver(nil, errors.New("connection refused"))

	stations := svc.ResolveNear(context.Background(), colombo, 10)

	if stations == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(stations) != 0 {
		t.Errorf("Expected empty result on fetch error, got %d stations", len(stations))
	}
}

func TestResolveNear_DistancePopulated(t *testing.T) {
	svc := newTestResolver(testRows(), nil)

	stations := svc.ResolveNear(context.Background(), colombo, 10)

	if stations[0].Distance == nil {
		t.Fatal("Expected distance to be set when a reference location is supplied")
	}
	if *stations[0].Distance < 2.0 || *stations[0].Distance > 2.3 {
		t.Errorf("Expected ~2.1 km, got %f", *stations[0].Distance)
	}
}

func TestResolveByAddress_SortsAscendingByDistance(t *testing.T) {
	svc := newTestResolver(testRows(), nil)

	stations := svc.ResolveByAddress(context.Background(), "anywhere", colombo)

	if len(stations) != 3 {
		t.Fatalf("Expected all 3 stations, got %d", len(stations))
	}

	for i := 1; i < len(stations); i++ {
		if *stations[i-1].Distance > *stations[i].Distance {
			t.Errorf("Stations not sorted by distance at index %d", i)
		}
	}

	if stations[0].ID != "1" {
		t.Errorf("Expected Kohuwala closest to Colombo, got station %s", stations[0].ID)
	}
}

func TestEnrichStation_ColomboScenario(t *testing.T) {
	row := testRows()[0]

	station := EnrichStation(row, &colombo)

	if station.ID != "1" {
		t.Errorf("Expected ID 1, got %s", station.ID)
	}
	if !station.Available {
		t.Error("Expected status Active to mean available")
	}
	if len(station.ConnectorTypes) != 2 || station.ConnectorTypes[0] != "CCS2" || station.ConnectorTypes[1] != "CHAdeMO" {
		t.Errorf("Expected [CCS2 CHAdeMO], got %v", station.ConnectorTypes)
	}
	if station.ConnectorCount != 6 {
		t.Errorf("Expected 6 connectors for Kohuwala, got %d", station.ConnectorCount)
	}
	if station.Image != "Kohuwala" {
		t.Errorf("Expected Kohuwala image key, got %q", station.Image)
	}
}

func TestEnrichStation_AvailabilityCases(t *testing.T) {
	cases := []struct {
		status    string
		available bool
	}{
		{"Active", true},
		{"ACTIVE", true},
		{"available", true},
		{"Available", true},
		{"Offline", false},
		{"maintenance", false},
		{"", false},
	}

	for _, tc := range cases {
		station := EnrichStation(entities.ChargingStation{Status: tc.status}, nil)
		if station.Available != tc.available {
			t.Errorf("status %q: expected available=%v", tc.status, tc.available)
		}
	}
}

func TestEnrichStation_ConnectorTypeFallback(t *testing.T) {
	station := EnrichStation(entities.ChargingStation{ChargerType: "22kW AC wallbox"}, nil)

	if len(station.ConnectorTypes) != 2 || station.ConnectorTypes[0] != "CCS2" || station.ConnectorTypes[1] != "CHAdeMO" {
		t.Errorf("Expected fallback [CCS2 CHAdeMO], got %v", station.ConnectorTypes)
	}
}

func TestEnrichStation_Type2Descriptor(t *testing.T) {
	station := EnrichStation(entities.ChargingStation{ChargerType: "Type 2 AC"}, nil)

	if len(station.ConnectorTypes) != 1 || station.ConnectorTypes[0] != "Type 2" {
		t.Errorf("Expected [Type 2], got %v", station.ConnectorTypes)
	}
}

func TestEnrichStation_ConnectorCountFromDescriptorDigits(t *testing.T) {
	station := EnrichStation(entities.ChargingStation{
		Name:        "Unknown Site",
		ChargerType: "4 guns",
	}, nil)

	if station.ConnectorCount != 4 {
		t.Errorf("Expected 4 connectors from descriptor digits, got %d", station.ConnectorCount)
	}
}

func TestEnrichStation_ConnectorCountDefault(t *testing.T) {
	station := EnrichStation(entities.ChargingStation{
		Name:        "Unknown Site",
		ChargerType: "fast DC",
	}, nil)

	if station.ConnectorCount != 1 {
		t.Errorf("Expected default connector count 1, got %d", station.ConnectorCount)
	}
}

func TestEnrichStation_NoReferenceNoDistance(t *testing.T) {
	station := EnrichStation(testRows()[0], nil)

	if station.Distance != nil {
		t.Errorf("Expected no distance without a reference location, got %f", *station.Distance)
	}
}

func TestEnrichStation_ImageFromAddress(t *testing.T) {
	station := EnrichStation(entities.ChargingStation{
		Name:    "Supercentre Charger",
		Address: "High Level Road, Gampaha",
	}, nil)

	if station.Image != "Gampaha" {
		t.Errorf("Expected Gampaha image key from address match, got %q", station.Image)
	}
}

func TestEnrichStation_NoImageMatch(t *testing.T) {
	station := EnrichStation(entities.ChargingStation{
		Name:    "Jaffna Charger",
		Address: "Hospital Road, Jaffna",
	}, nil)

	if station.Image != "" {
		t.Errorf("Expected no image key, got %q", station.Image)
	}
}
