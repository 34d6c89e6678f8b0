package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"nail-llm/internal/domain"
)

// SessionStore puentea los dos round-trips HTTP de una elicitacion.
// Contrato: un token tiene a lo sumo UN consumidor; Take elimina la sesion
// de forma atomica, exista o no carrera entre dos answer concurrentes.
type SessionStore interface {
	Put(session domain.Session) string
	Take(token string) (domain.Session, bool)
	Sweep()
}

type memorySessionStore struct {
	mu    sync.Mutex
	items map[string]domain.Session
	ttl   time.Duration
}

// NewMemorySessionStore crea un store en memoria con TTL por sesion.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &memorySessionStore{
		items: make(map[string]domain.Session),
		ttl:   ttl,
	}
}

func (s *memorySessionStore) Put(session domain.Session) string {
	token := uuid.NewString()
	session.Token = token
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[token] = session
	return token
}

func (s *memorySessionStore) Take(token string) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.items[token]
	if !ok {
		return domain.Session{}, false
	}
	// Un solo consumidor: se borra antes de devolverla.
	delete(s.items, token)
	if time.Now().UTC().Sub(session.CreatedAt) > s.ttl {
		return domain.Session{}, false
	}
	return session, true
}

// Sweep elimina las sesiones vencidas para acotar memoria.
func (s *memorySessionStore) Sweep() {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.items {
		if now.Sub(session.CreatedAt) > s.ttl {
			delete(s.items, token)
		}
	}
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisSessionStore crea un store respaldado en redis.
// El TTL lo maneja redis y GETDEL garantiza el consumo unico.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &redisSessionStore{
		client: client,
		ttl:    ttl,
		prefix: "makeup:session:",
	}
}

func (s *redisSessionStore) Put(session domain.Session) string {
	token := uuid.NewString()
	session.Token = token
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return token
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.client.Set(ctx, s.prefix+token, payload, s.ttl)
	return token
}

func (s *redisSessionStore) Take(token string) (domain.Session, bool) {
	if token == "" {
		return domain.Session{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	payload, err := s.client.GetDel(ctx, s.prefix+token).Result()
	if err != nil {
		return domain.Session{}, false
	}
	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return domain.Session{}, false
	}
	return session, true
}

// Sweep es no-op: redis expira las claves por TTL.
func (s *redisSessionStore) Sweep() {}
