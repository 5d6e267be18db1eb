// Package session holds the in-process session state: the current principal,
// its resolved role, and the loading flag readers use to tell "unknown" apart
// from "unauthenticated".
package session

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/core/domain"
)

// Snapshot is the session state exposed to readers. It is replaced wholesale
// on every auth event, never mutated field by field.
type Snapshot struct {
	Principal *domain.User `json:"principal,omitempty"`
	Token     string       `json:"token,omitempty"`
	Loading   bool         `json:"loading"`
}

// Cache persists the latest snapshot across restarts. Load returns
// (nil, nil) when no snapshot is stored.
type Cache interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

const eventBuffer = 16

// Store owns the session snapshot. Session-change events are consumed by a
// single goroutine (Run), so each event is resolved to a complete principal
// before the snapshot swaps; readers never observe a half-merged state.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot

	events    chan string
	resolver  *RoleResolver
	cache     Cache
	jwtSecret string
	log       zerolog.Logger
}

// NewStore creates a Store in the loading state. cache may be nil.
func NewStore(resolver *RoleResolver, cache Cache, jwtSecret string, log zerolog.Logger) *Store {
	return &Store{
		snap:      Snapshot{Loading: true},
		events:    make(chan string, eventBuffer),
		resolver:  resolver,
		cache:     cache,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// Current returns a copy of the snapshot. While Loading is true the session
// is unknown: callers must not treat it as unauthenticated or non-admin.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snap
	if snap.Principal != nil {
		principal := *snap.Principal
		snap.Principal = &principal
	}
	return snap
}

// Notify queues a session-change event. An empty token means logout. The
// call never blocks: when the buffer is full the event is dropped and a
// later event will supersede it anyway.
func (s *Store) Notify(token string) {
	select {
	case s.events <- token:
	default:
		s.log.Warn().Msg("session event buffer full, dropping event")
	}
}

// Run bootstraps from the persisted snapshot and then consumes session
// events until ctx is cancelled. It is the single consumer of the stream.
func (s *Store) Run(ctx context.Context) {
	s.bootstrap(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case token := <-s.events:
			s.apply(ctx, token)
		}
	}
}

// bootstrap restores the previous session, then re-resolves its role so a
// stale cached role cannot outlive a profile change. A failed cache read is
// treated as no session; there is no retry.
func (s *Store) bootstrap(ctx context.Context) {
	if s.cache == nil {
		s.apply(ctx, "")
		return
	}

	cached, err := s.cache.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session cache read failed, starting unauthenticated")
		s.apply(ctx, "")
		return
	}
	if cached == nil || cached.Token == "" {
		s.apply(ctx, "")
		return
	}
	s.apply(ctx, cached.Token)
}

// apply resolves one event into a complete snapshot and swaps it in. The
// write-back to the cache is best-effort and never blocks the state change.
func (s *Store) apply(ctx context.Context, token string) {
	next := Snapshot{}
	if token != "" {
		id, email, err := s.identity(token)
		if err != nil {
			s.log.Warn().Err(err).Msg("rejecting session event with invalid token")
		} else {
			next.Principal = s.resolver.Resolve(ctx, id, email)
			next.Token = token
		}
	}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Save(ctx, &next); err != nil {
			s.log.Warn().Err(err).Msg("failed to persist session snapshot")
		}
	}
}

// identity verifies the token signature and extracts the identity claims.
// Role is never read from the token.
func (s *Store) identity(token string) (id, email string, err error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", "", err
	}
	if !parsed.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	id, _ = claims["uid"].(string)
	email, _ = claims["email"].(string)
	return id, email, nil
}
