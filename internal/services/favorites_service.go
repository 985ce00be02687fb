package services

import (
	"context"
	"encoding/json"
	"sync"

	"evlanka/ampere/internal/common"
	"evlanka/ampere/internal/constants"
	"evlanka/ampere/internal/logging"
	"evlanka/ampere/internal/models/dtos"
	gormModels "evlanka/ampere/internal/models/gorm"
)

// FavoritesStore is the remote persistence backing the synchronizer.
type FavoritesStore interface {
	ListByUserEmail(ctx context.Context, userEmail string) ([]gormModels.Favorite, error)
	Insert(ctx context.Context, userEmail string, stationID string, stationData string) error
	Delete(ctx context.Context, userEmail string, stationID string) error
}

type sessionState int

const (
	stateUnloaded sessionState = iota
	stateLoading
	stateReady
)

// favoritesSession carries one user's favorites state. Its mutex serializes
// that user's operations, including the initial remote load, so a slow load
// for one user never stalls another's.
type favoritesSession struct {
	mu       sync.Mutex
	state    sessionState
	stations []dtos.Station
}

// FavoritesService keeps the authoritative in-memory favorites list per user
// and converges a remote store and a local cache with it.
//
// Mutations apply to memory first, then attempt remote persistence; on remote
// failure the full in-memory list is mirrored to the local cache under a
// user-scoped key. Remote errors never surface to callers. The cache is a
// durable fallback, not a second source of truth: a later successful remote
// load replaces memory wholesale, so cache-only writes from an offline session
// are not replayed against the remote store.
type FavoritesService struct {
	repo  FavoritesStore
	cache common.CacheInterface

	mu       sync.Mutex
	sessions map[string]*favoritesSession
}

func NewFavoritesService(repo FavoritesStore, cache common.CacheInterface) *FavoritesService {
	return &FavoritesService{
		repo:     repo,
		cache:    cache,
		sessions: make(map[string]*favoritesSession),
	}
}

// session returns the user's session, creating it unloaded on first touch.
// Only the map access happens under the service lock; all I/O runs under the
// per-session lock.
func (svc *FavoritesService) session(userEmail string) *favoritesSession {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	session, ok := svc.sessions[userEmail]
	if !ok {
		session = &favoritesSession{}
		svc.sessions[userEmail] = session
	}
	return session
}

// Load pulls the user's favorites from the remote store, falling back to the
// local cache when the remote read fails. Safe to call repeatedly; the session
// only loads once until Reset.
func (svc *FavoritesService) Load(ctx context.Context, userEmail string) {
	if userEmail == "" {
		return
	}

	session := svc.session(userEmail)
	session.mu.Lock()
	defer session.mu.Unlock()
	svc.ensureLoaded(ctx, userEmail, session)
}

// List returns the current in-memory favorites for the user, loading first if
// needed. An unresolved identity always yields an empty list.
func (svc *FavoritesService) List(ctx context.Context, userEmail string) []dtos.Station {
	if userEmail == "" {
		return []dtos.Station{}
	}

	session := svc.session(userEmail)
	session.mu.Lock()
	defer session.mu.Unlock()

	svc.ensureLoaded(ctx, userEmail, session)
	out := make([]dtos.Station, len(session.stations))
	copy(out, session.stations)
	return out
}

// AddFavorite marks a station for the user. Idempotent: adding a station that
// is already marked changes nothing. The in-memory list updates before any
// persistence is attempted.
func (svc *FavoritesService) AddFavorite(ctx context.Context, userEmail string, station dtos.Station) {
	if userEmail == "" {
		return
	}

	session := svc.session(userEmail)
	session.mu.Lock()
	defer session.mu.Unlock()

	svc.ensureLoaded(ctx, userEmail, session)

	for _, s := range session.stations {
		if s.ID == station.ID {
			return
		}
	}

	session.stations = append(session.stations, station)

	data, err := json.Marshal(station)
	if err != nil {
		logging.Error("Failed to marshal station snapshot", "station_id", station.ID, "error", err.Error())
		svc.writeLocal(userEmail, session.stations)
		return
	}

	if err := svc.repo.Insert(ctx, userEmail, station.ID, string(data)); err != nil {
		logging.Warn("Remote favorite insert failed, mirroring to local cache",
			"user_email", userEmail,
			"station_id", station.ID,
			"error", err.Error(),
		)
		svc.writeLocal(userEmail, session.stations)
	}
}

// RemoveFavorite unmarks a station. The in-memory list is untouched when the
// id is absent, but the remote delete always goes out: this session's memory
// may be stale against a favorite added from another device, and skipping the
// delete would let that row resurface on the next load.
func (svc *FavoritesService) RemoveFavorite(ctx context.Context, userEmail string, stationID string) {
	if userEmail == "" {
		return
	}

	session := svc.session(userEmail)
	session.mu.Lock()
	defer session.mu.Unlock()

	svc.ensureLoaded(ctx, userEmail, session)

	updated := make([]dtos.Station, 0, len(session.stations))
	for _, s := range session.stations {
		if s.ID == stationID {
			continue
		}
		updated = append(updated, s)
	}
	session.stations = updated

	if err := svc.repo.Delete(ctx, userEmail, stationID); err != nil {
		logging.Warn("Remote favorite delete failed, mirroring to local cache",
			"user_email", userEmail,
			"station_id", stationID,
			"error", err.Error(),
		)
		svc.writeLocal(userEmail, session.stations)
	}
}

// IsFavorite reports membership against the current in-memory list. No I/O.
func (svc *FavoritesService) IsFavorite(userEmail string, stationID string) bool {
	if userEmail == "" {
		return false
	}

	svc.mu.Lock()
	session, ok := svc.sessions[userEmail]
	svc.mu.Unlock()
	if !ok {
		return false
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	for _, s := range session.stations {
		if s.ID == stationID {
			return true
		}
	}
	return false
}

// Reset drops the user's session, as on logout. The next operation reloads.
func (svc *FavoritesService) Reset(userEmail string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.sessions, userEmail)
}

// ensureLoaded loads the session on first touch. Callers must hold session.mu.
func (svc *FavoritesService) ensureLoaded(ctx context.Context, userEmail string, session *favoritesSession) {
	if session.state == stateReady {
		return
	}
	session.state = stateLoading

	rows, err := svc.repo.ListByUserEmail(ctx, userEmail)
	if err != nil {
		logging.Warn("Remote favorites load failed, falling back to local cache",
			"user_email", userEmail,
			"error", err.Error(),
		)
		session.stations = svc.readLocal(userEmail)
		session.state = stateReady
		return
	}

	stations := make([]dtos.Station, 0, len(rows))
	for _, row := range rows {
		var station dtos.Station
		if err := json.Unmarshal([]byte(row.StationData), &station); err != nil {
			logging.Warn("Skipping favorite with unreadable snapshot",
				"user_email", userEmail,
				"station_id", row.StationID,
			)
			continue
		}
		stations = append(stations, station)
	}

	session.stations = stations
	session.state = stateReady
}

func cacheKey(userEmail string) string {
	return string(constants.CachePrefixFavorites) + userEmail
}

// writeLocal mirrors the in-memory list to the local cache. The snapshot is a
// durability fallback, so it never expires. Callers must hold the session lock.
func (svc *FavoritesService) writeLocal(userEmail string, stations []dtos.Station) {
	data, err := json.Marshal(stations)
	if err != nil {
		logging.Error("Failed to marshal favorites for local cache", "user_email", userEmail, "error", err.Error())
		return
	}
	svc.cache.Set(cacheKey(userEmail), string(data), common.NoExpiration)
}

// readLocal reads the cached list; absent or corrupt entries yield an empty list.
func (svc *FavoritesService) readLocal(userEmail string) []dtos.Station {
	val, found := svc.cache.Get(cacheKey(userEmail))
	if !found {
		return []dtos.Station{}
	}

	raw, ok := val.(string)
	if !ok {
		logging.Warn("Local favorites cache holds unexpected type", "user_email", userEmail)
		return []dtos.Station{}
	}

	var stations []dtos.Station
	if err := json.Unmarshal([]byte(raw), &stations); err != nil {
		logging.Warn("Local favorites cache is corrupt, treating as empty",
			"user_email", userEmail,
			"error", err.Error(),
		)
		return []dtos.Station{}
	}
	return stations
}
