package browser

import (
	"sync"
	"time"

	"github.com/4oBuko/tag-browser/internal/cache"
	"github.com/4oBuko/tag-browser/pkg/tagsapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store maps visitor ids to sessions. A janitor drops sessions that have
// been idle for longer than ttl.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	api      tagsapi.TagsAPI
	cache    *cache.Cache
	opts     Options
	logger   logrus.FieldLogger
	ttl      time.Duration
	done     chan struct{}
	once     sync.Once
}

func NewStore(api tagsapi.TagsAPI, pageCache *cache.Cache, opts Options, ttl time.Duration, logger logrus.FieldLogger) *Store {
	store := &Store{
		sessions: make(map[string]*Session),
		api:      api,
		cache:    pageCache,
		opts:     opts,
		logger:   logger,
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go store.janitor()
	return store
}

// Session returns the session for id, creating one with a fresh id when id
// is empty or unknown.
func (s *Store) Session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok && id != "" {
		return session
	}
	id = uuid.NewString()
	session := NewSession(id, s.api, s.cache, s.opts, s.logger)
	s.sessions[id] = session
	return session
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) janitor() {
	interval := time.Minute
	if s.ttl > 0 && s.ttl < interval {
		interval = s.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

func (s *Store) cleanup() {
	cutoff := time.Now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if session.idleSince().Before(cutoff) {
			session.Close()
			delete(s.sessions, id)
		}
	}
}

func (s *Store) Close() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		defer s.mu.Unlock()
		for id, session := range s.sessions {
			session.Close()
			delete(s.sessions, id)
		}
	})
}
