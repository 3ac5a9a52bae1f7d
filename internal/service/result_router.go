package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"venue-scout/internal/domain"
)

// ResultRouter recibe los resultados de lugares de una conversacion.
type ResultRouter interface {
	Route(ctx context.Context, id domain.ConversationID, reply domain.VenueReply) error
}

type discardRouter struct{}

func (discardRouter) Route(context.Context, domain.ConversationID, domain.VenueReply) error {
	return nil
}

// VenueResultStore guarda el ultimo resultado de lugares por conversacion.
type VenueResultStore interface {
	Put(ctx context.Context, id domain.ConversationID, venues []domain.Venue) error
	Get(ctx context.Context, id domain.ConversationID) ([]domain.Venue, bool, error)
	Delete(ctx context.Context, id domain.ConversationID) error
}

// StoreRouter enruta hacia un VenueResultStore.
type StoreRouter struct {
	store VenueResultStore
}

func NewStoreRouter(store VenueResultStore) *StoreRouter {
	return &StoreRouter{store: store}
}

func (r *StoreRouter) Route(ctx context.Context, id domain.ConversationID, reply domain.VenueReply) error {
	if r == nil || r.store == nil {
		return nil
	}
	return r.store.Put(ctx, id, VenuesWithReplyContext(reply))
}

// VenuesWithReplyContext completa cada lugar con el clima, seguridad y accesibilidad
// de la respuesta cuando el lugar no trae los propios.
func VenuesWithReplyContext(reply domain.VenueReply) []domain.Venue {
	out := make([]domain.Venue, len(reply.Venues))
	for i, v := range reply.Venues {
		if v.Weather == nil && reply.Weather != nil {
			w := *reply.Weather
			v.Weather = &w
		}
		if v.Safety == nil && reply.Safety != nil {
			sa := *reply.Safety
			v.Safety = &sa
		}
		if v.AccessibilityScore == nil && reply.Accessibility != nil {
			a := *reply.Accessibility
			v.AccessibilityScore = &a
		}
		out[i] = v
	}
	return out
}

type memoryVenueResultStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[domain.ConversationID]memoryVenueResult
}

type memoryVenueResult struct {
	venues    []domain.Venue
	expiresAt time.Time
}

func NewMemoryVenueResultStore(ttl time.Duration) VenueResultStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &memoryVenueResultStore{
		ttl:   ttl,
		items: make(map[domain.ConversationID]memoryVenueResult),
	}
}

func (s *memoryVenueResultStore) Put(_ context.Context, id domain.ConversationID, venues []domain.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(id.String()) == "" {
		return nil
	}
	s.items[id] = memoryVenueResult{venues: venues, expiresAt: time.Now().UTC().Add(s.ttl)}
	return nil
}

func (s *memoryVenueResultStore) Get(_ context.Context, id domain.ConversationID) ([]domain.Venue, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, false, nil
	}
	if time.Now().UTC().After(item.expiresAt) {
		delete(s.items, id)
		return nil, false, nil
	}
	return item.venues, true, nil
}

func (s *memoryVenueResultStore) Delete(_ context.Context, id domain.ConversationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type redisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisVenueResultStore struct {
	client redisKV
	ttl    time.Duration
	prefix string
}

func NewRedisVenueResultStore(client *redis.Client, ttl time.Duration) VenueResultStore {
	if client == nil {
		return nil
	}
	return newRedisVenueResultStore(client, ttl)
}

func newRedisVenueResultStore(client redisKV, ttl time.Duration) *redisVenueResultStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &redisVenueResultStore{
		client: client,
		ttl:    ttl,
		prefix: "venues:result:",
	}
}

func (s *redisVenueResultStore) Put(ctx context.Context, id domain.ConversationID, venues []domain.Venue) error {
	if strings.TrimSpace(id.String()) == "" {
		return nil
	}
	payload, err := json.Marshal(venues)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.prefix+id.String(), payload, s.ttl).Err()
}

func (s *redisVenueResultStore) Get(ctx context.Context, id domain.ConversationID) ([]domain.Venue, bool, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := s.client.Get(ctx, s.prefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var venues []domain.Venue
	if err := json.Unmarshal(raw, &venues); err != nil {
		return nil, false, err
	}
	return venues, true, nil
}

func (s *redisVenueResultStore) Delete(ctx context.Context, id domain.ConversationID) error {
	if strings.TrimSpace(id.String()) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return s.client.Del(ctx, s.prefix+id.String()).Err()
}
