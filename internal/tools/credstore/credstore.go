package credstore

import (
	"context"
	"sync"
)

// Fixed storage keys. The pair is always written and cleared together.
const (
	accessTokenKey  = "accessToken"
	refreshTokenKey = "refreshToken"
)

type Engine interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
}

type EventType string

const (
	EventLogin  EventType = "login"
	EventLogout EventType = "logout"
)

type Event struct {
	Type EventType
}

// Store holds one session's token pair and broadcasts authentication
// state transitions to subscribers. It replaces ambient global token
// state: every consumer gets a Store injected.
type Store struct {
	engine      Engine
	subscribers []chan Event
	sync.Mutex
}

func New(engine Engine) *Store {
	return &Store{
		engine:      engine,
		subscribers: []chan Event{},
	}
}

func (s *Store) AccessToken(ctx context.Context) string {
	value, err := s.engine.Get(ctx, accessTokenKey)
	if err != nil {
		return ""
	}

	return value
}

func (s *Store) RefreshToken(ctx context.Context) string {
	value, err := s.engine.Get(ctx, refreshTokenKey)
	if err != nil {
		return ""
	}

	return value
}

// SetTokens persists both tokens. A transition from signed-out to
// signed-in broadcasts a login event; a token rotation while already
// authenticated stays silent.
func (s *Store) SetTokens(ctx context.Context, accessToken string, refreshToken string) error {
	if accessToken == "" {
		return nil
	}

	wasAuthenticated := s.IsAuthenticated(ctx)

	if err := s.engine.Set(ctx, accessTokenKey, accessToken); err != nil {
		return err
	}

	if refreshToken != "" {
		if err := s.engine.Set(ctx, refreshTokenKey, refreshToken); err != nil {
			return err
		}
	}

	if !wasAuthenticated {
		s.notify(Event{Type: EventLogin})
	}

	return nil
}

// Clear removes both tokens, never one without the other.
func (s *Store) Clear(ctx context.Context) error {
	wasAuthenticated := s.IsAuthenticated(ctx)

	if err := s.engine.Delete(ctx, accessTokenKey, refreshTokenKey); err != nil {
		return err
	}

	if wasAuthenticated {
		s.notify(Event{Type: EventLogout})
	}

	return nil
}

// IsAuthenticated is true iff an access token is present. Expiry is not
// checked here: an expired token is discovered reactively via a 401.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.AccessToken(ctx) != ""
}

// Subscribe returns a channel of authentication state transitions.
// Delivery is non-blocking: a subscriber that stops draining misses
// events instead of stalling token writes.
func (s *Store) Subscribe() <-chan Event {
	channel := make(chan Event, 4)

	s.Lock()
	s.subscribers = append(s.subscribers, channel)
	s.Unlock()

	return channel
}

func (s *Store) notify(event Event) {
	s.Lock()
	defer s.Unlock()

	for _, subscriber := range s.subscribers {
		select {
		case subscriber <- event:
		default:
		}
	}
}
