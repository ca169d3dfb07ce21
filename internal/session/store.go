package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tradevista/admin-console/internal/models"
)

// ErrNoSession is returned when a session id has no live record.
var ErrNoSession = errors.New("session not found")

// Store persists session records and their pending flash messages.
type Store interface {
	Save(ctx context.Context, sess *models.Session, ttl time.Duration) error
	Find(ctx context.Context, sid string) (*models.Session, error)
	Delete(ctx context.Context, sid string) error
	PushFlash(ctx context.Context, sid string, flash models.Flash) error
	PopFlashes(ctx context.Context, sid string) ([]models.Flash, error)
}

// RedisStore keeps sessions in Redis so they survive restarts and are shared
// across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client as a session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(sid string) string { return "session:" + sid }
func flashKey(sid string) string   { return "session:" + sid + ":flashes" }

// Save stores the session record under its TTL.
func (s *RedisStore) Save(ctx context.Context, sess *models.Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.SID, err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.SID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", sess.SID, err)
	}
	return nil
}

// Find loads a session record by id.
func (s *RedisStore) Find(ctx context.Context, sid string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(sid)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("redis get session %s: %w", sid, err)
	}
	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", sid, err)
	}
	return &sess, nil
}

// Delete removes the session record and any pending flashes.
func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, sessionKey(sid), flashKey(sid)).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", sid, err)
	}
	return nil
}

// PushFlash queues a flash message for the session's next page render.
func (s *RedisStore) PushFlash(ctx context.Context, sid string, flash models.Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, flashKey(sid), payload)
	pipe.Expire(ctx, flashKey(sid), time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis push flash for %s: %w", sid, err)
	}
	return nil
}

// PopFlashes drains the flash queue.
func (s *RedisStore) PopFlashes(ctx context.Context, sid string) ([]models.Flash, error) {
	pipe := s.client.TxPipeline()
	list := pipe.LRange(ctx, flashKey(sid), 0, -1)
	pipe.Del(ctx, flashKey(sid))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis pop flashes for %s: %w", sid, err)
	}
	raws, err := list.Result()
	if err != nil {
		return nil, fmt.Errorf("read flashes for %s: %w", sid, err)
	}
	flashes := make([]models.Flash, 0, len(raws))
	for _, raw := range raws {
		var flash models.Flash
		if err := json.Unmarshal([]byte(raw), &flash); err != nil {
			continue
		}
		flashes = append(flashes, flash)
	}
	return flashes, nil
}

// MemoryStore is an in-process session store used in tests and when Redis is
// not configured. Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	flashes  map[string][]models.Flash
}

type memoryEntry struct {
	session models.Session
	expires time.Time
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		flashes:  make(map[string][]models.Flash),
	}
}

func (s *MemoryStore) Save(_ context.Context, sess *models.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.SID] = memoryEntry{session: *sess, expires: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Find(_ context.Context, sid string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sid]
	if !ok || time.Now().After(entry.expires) {
		delete(s.sessions, sid)
		return nil, ErrNoSession
	}
	sess := entry.session
	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	delete(s.flashes, sid)
	return nil
}

func (s *MemoryStore) PushFlash(_ context.Context, sid string, flash models.Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes[sid] = append(s.flashes[sid], flash)
	return nil
}

func (s *MemoryStore) PopFlashes(_ context.Context, sid string) ([]models.Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flashes := s.flashes[sid]
	delete(s.flashes, sid)
	return flashes, nil
}
