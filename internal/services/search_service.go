package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"evlanka/ampere/internal/logging"
	"evlanka/ampere/internal/models/dtos"
)

// ErrSuperseded marks a search whose response arrived after a newer search was
// issued. Its result must be discarded, never rendered.
var ErrSuperseded = errors.New("search superseded by a newer request")

// ErrQueryTooShort gates near-empty input before it reaches the geocoder.
var ErrQueryTooShort = errors.New("search query below minimum length")

const (
	defaultDebounceWindow = 500 * time.Millisecond
	minQueryLength        = 2
)

// LocationResolver geocodes a free-text query into a coordinate plus a display name.
type LocationResolver interface {
	ResolveLocation(ctx context.Context, query string) (*dtos.Location, string, error)
}

// SearchResult is a settled address search: the geocoded point and the full
// station list ranked by distance from it.
type SearchResult struct {
	Query    string         `json:"query"`
	Address  string         `json:"address"`
	Location dtos.Location  `json:"location"`
	Stations []dtos.Station `json:"stations"`
}

// SearchService orchestrates address search: geocode the query, recenter, and
// rank all stations by distance from the hit.
//
// Every search takes a monotonically increasing token; a response whose token
// is no longer the latest is discarded, so rapid repeat searches cannot
// overwrite newer state with a stale answer. SearchDebounced adds the
// keystroke-level debounce gate in front of the same path.
type SearchService struct {
	geo      LocationResolver
	resolver *StationResolverService

	window time.Duration
	seq    atomic.Uint64

	mu    sync.Mutex
	timer *time.Timer
}

func NewSearchService(geo LocationResolver, resolver *StationResolverService) *SearchService {
	return &SearchService{
		geo:      geo,
		resolver: resolver,
		window:   defaultDebounceWindow,
	}
}

// SearchByAddress runs one search immediately. Returns ErrSuperseded when a
// newer search was issued while this one was in flight.
func (svc *SearchService) SearchByAddress(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return nil, ErrQueryTooShort
	}

	token := svc.seq.Add(1)

	loc, displayName, err := svc.geo.ResolveLocation(ctx, query)
	if err != nil {
		return nil, err
	}

	stations := svc.resolver.ResolveByAddress(ctx, query, *loc)

	if token != svc.seq.Load() {
		logging.Debug("Dropping stale search response", "query", query)
		return nil, ErrSuperseded
	}

	return &SearchResult{
		Query:    query,
		Address:  displayName,
		Location: *loc,
		Stations: stations,
	}, nil
}

// SearchDebounced schedules a search after the debounce window, cancelling any
// still-pending one. deliver runs on the timer goroutine with the outcome;
// superseded responses are dropped silently. A too-short query cancels the
// pending search without delivering.
func (svc *SearchService) SearchDebounced(ctx context.Context, query string, deliver func(*SearchResult, error)) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.timer != nil {
		svc.timer.Stop()
		svc.timer = nil
	}

	if len(strings.TrimSpace(query)) < minQueryLength {
		return
	}

	svc.timer = time.AfterFunc(svc.window, func() {
		result, err := svc.SearchByAddress(ctx, query)
		if errors.Is(err, ErrSuperseded) {
			return
		}
		deliver(result, err)
	})
}
