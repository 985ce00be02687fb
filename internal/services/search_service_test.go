package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"evlanka/ampere/internal/models/dtos"
)

// Mock LocationResolver
type mockLocationResolver struct {
	resolveFunc func(ctx context.Context, query string) (*dtos.Location, string, error)
}

func (m *mockLocationResolver) ResolveLocation(ctx context.Context, query string) (*dtos.Location, string, error) {
	return m.resolveFunc(ctx, query)
}

func fixedGeocoder(loc dtos.Location, display string) *mockLocationResolver {
	return &mockLocationResolver{
		resolveFunc: func(ctx context.Context, query string) (*dtos.Location, string, error) {
			return &loc, display, nil
		},
	}
}

func TestSearchByAddress_ReturnsRankedStations(t *testing.T) {
	resolver := newTestResolver(testRows(), nil)
	geo := fixedGeocoder(colombo, "Colombo, Sri Lanka")
	svc := NewSearchService(geo, resolver)

	result, err := svc.SearchByAddress(context.Background(), "Colombo")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Address != "Colombo, Sri Lanka" {
		t.Errorf("Expected geocoded display name, got %q", result.Address)
	}

	if len(result.Stations) != 3 {
		t.Fatalf("Expected all stations regardless of radius, got %d", len(result.Stations))
	}

	for i := 1; i < len(result.Stations); i++ {
		if *result.Stations[i-1].Distance > *result.Stations[i].Distance {
			t.Errorf("Stations not sorted by distance at index %d", i)
		}
	}
}

func TestSearchByAddress_QueryTooShort(t *testing.T) {
	svc := NewSearchService(fixedGeocoder(colombo, ""), newTestResolver(nil, nil))

	if _, err := svc.SearchByAddress(context.Background(), " a "); !errors.Is(err, ErrQueryTooShort) {
		t.Errorf("Expected ErrQueryTooShort, got %v", err)
	}
}

func TestSearchByAddress_GeocodeErrorPropagates(t *testing.T) {
	geo := &mockLocationResolver{
		resolveFunc: func(ctx context.Context, query string) (*dtos.Location, string, error) {
			return nil, "", errors.New("geocoder unreachable")
		},
	}
	svc := NewSearchService(geo, newTestResolver(testRows(), nil))

	if _, err := svc.SearchByAddress(context.Background(), "Colombo"); err == nil {
		t.Error("Expected geocode error to propagate")
	}
}

func TestSearchByAddress_StaleResponseDiscarded(t *testing.T) {
	firstEntered := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	geo := &mockLocationResolver{
		resolveFunc: func(ctx context.Context, query string) (*dtos.Location, string, error) {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()

			if first {
				close(firstEntered)
				<-release
			}
			return &colombo, "Colombo, Sri Lanka", nil
		},
	}
	svc := NewSearchService(geo, newTestResolver(testRows(), nil))

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.SearchByAddress(context.Background(), "Colombo old")
	}()

	// Issue a newer search while the first is stuck in the geocoder
	<-firstEntered
	if _, err := svc.SearchByAddress(context.Background(), "Colombo new"); err != nil {
		t.Fatalf("Newer search failed: %v", err)
	}

	close(release)
	wg.Wait()

	if !errors.Is(firstErr, ErrSuperseded) {
		t.Errorf("Expected ErrSuperseded for the stale search, got %v", firstErr)
	}
}

func TestSearchDebounced_OnlyLastQueryFires(t *testing.T) {
	var mu sync.Mutex
	var queries []string

	geo := &mockLocationResolver{
		resolveFunc: func(ctx context.Context, query string) (*dtos.Location, string, error) {
			mu.Lock()
			queries = append(queries, query)
			mu.Unlock()
			return &colombo, "Colombo, Sri Lanka", nil
		},
	}
	svc := NewSearchService(geo, newTestResolver(testRows(), nil))
	svc.window = 20 * time.Millisecond

	delivered := make(chan *SearchResult, 1)
	deliver := func(result *SearchResult, err error) {
		if err == nil {
			delivered <- result
		}
	}

	svc.SearchDebounced(context.Background(), "Col", deliver)
	svc.SearchDebounced(context.Background(), "Colo", deliver)
	svc.SearchDebounced(context.Background(), "Colombo", deliver)

	select {
	case result := <-delivered:
		if result.Query != "Colombo" {
			t.Errorf("Expected only the settled query to fire, got %q", result.Query)
		}
	case <-time.After(time.Second):
		t.Fatal("Debounced search never delivered")
	}

	// Earlier keystrokes must not have reached the geocoder
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 1 {
		t.Errorf("Expected exactly 1 geocoder call, got %d (%v)", len(queries), queries)
	}
}

func TestSearchDebounced_ShortQueryCancelsPending(t *testing.T) {
	fired := make(chan struct{}, 1)
	geo := &mockLocationResolver{
		resolveFunc: func(ctx context.Context, query string) (*dtos.Location, string, error) {
			fired <- struct{}{}
			return &colombo, "", nil
		},
	}
	svc := NewSearchService(geo, newTestResolver(testRows(), nil))
	svc.window = 20 * time.Millisecond

	svc.SearchDebounced(context.Background(), "Colombo", func(*SearchResult, error) {})
	svc.SearchDebounced(context.Background(), "C", func(*SearchResult, error) {})

	select {
	case <-fired:
		t.Error("Expected the pending search to be cancelled by the short query")
	case <-time.After(80 * time.Millisecond):
	}
}
