// Package browser holds the per-visitor view state of the tags page: the
// committed query, the draft filter and the last page shown.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/4oBuko/tag-browser/internal/cache"
	"github.com/4oBuko/tag-browser/internal/debounce"
	"github.com/4oBuko/tag-browser/internal/query"
	"github.com/4oBuko/tag-browser/pkg/tagsapi"
	"github.com/sirupsen/logrus"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureHTTP    FailureKind = "http"
	FailureDecode  FailureKind = "decode"
	FailureUnknown FailureKind = "unknown"
)

type Failure struct {
	Kind    FailureKind
	Message string
}

// View is a snapshot of a session for rendering. Stale is set when Page
// belongs to an earlier query than State.
type View struct {
	State   query.State
	Draft   string
	Status  Status
	Page    *tagsapi.TagPage
	Stale   bool
	Failure *Failure
}

type Options struct {
	DebounceDelay time.Duration
}

type Session struct {
	id     string
	api    tagsapi.TagsAPI
	cache  *cache.Cache
	logger logrus.FieldLogger

	mu       sync.Mutex
	mounted  bool
	state    query.State
	status   Status
	page     *tagsapi.TagPage
	stale    bool
	failure  *Failure
	draft    string
	changed  chan struct{}
	lastSeen time.Time

	debounced *debounce.Value[string]
}

func NewSession(id string, api tagsapi.TagsAPI, pageCache *cache.Cache, opts Options, logger logrus.FieldLogger) *Session {
	s := &Session{
		id:       id,
		api:      api,
		cache:    pageCache,
		logger:   logger.WithField("session", id),
		status:   StatusIdle,
		changed:  make(chan struct{}),
		lastSeen: time.Now(),
	}
	s.debounced = debounce.New("", opts.DebounceDelay, s.prefetch)
	return s
}

func (s *Session) Id() string {
	return s.id
}

// Navigate makes state the current query. A cached page is shown at once;
// otherwise the session starts loading and keeps showing the previous page.
// The draft follows the filter whenever the filter in the URL changes.
func (s *Session) Navigate(state query.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()

	if s.mounted && state == s.state && s.status == StatusLoading {
		return
	}
	if !s.mounted || state.Filter != s.state.Filter {
		s.draft = state.Filter
	}
	s.mounted = true
	s.state = state

	if entry, ok := s.cache.Get(keyOf(state)); ok {
		s.page = &entry.Page
		s.stale = false
		s.failure = nil
		s.status = StatusSuccess
		s.broadcastLocked()
		return
	}

	s.status = StatusLoading
	s.stale = s.page != nil
	s.failure = nil
	s.broadcastLocked()
	go s.fetch(state)
}

func (s *Session) fetch(state query.State) {
	entry, err := s.cache.Load(context.Background(), keyOf(state), s.fetchPage)

	s.mu.Lock()
	defer s.mu.Unlock()
	if state != s.state {
		s.logger.WithField("key", keyOf(state).String()).Debug("discarding result for superseded query")
		return
	}
	if err != nil {
		failure := classify(err)
		s.logger.WithError(err).WithField("kind", failure.Kind).Warn("failed to fetch tags")
		s.failure = &failure
		s.status = StatusFailed
	} else {
		s.page = &entry.Page
		s.stale = false
		s.status = StatusSuccess
	}
	s.broadcastLocked()
}

func (s *Session) fetchPage(ctx context.Context, key cache.Key) (tagsapi.TagPage, error) {
	return s.api.GetTags(ctx, key.Page, key.Filter)
}

// prefetch warms the cache with the first page of a settled draft. The
// committed query is left alone.
func (s *Session) prefetch(draft string) {
	s.mu.Lock()
	committed := s.state.Filter
	s.mu.Unlock()
	if draft == committed {
		return
	}
	key := cache.Key{Filter: draft, Page: 1}
	if _, err := s.cache.Load(context.Background(), key, s.fetchPage); err != nil {
		s.logger.WithError(err).WithField("key", key.String()).Debug("prefetch failed")
	}
}

func (s *Session) Type(draft string) {
	s.mu.Lock()
	s.draft = draft
	s.lastSeen = time.Now()
	s.mu.Unlock()
	s.debounced.Set(draft)
}

// Submit commits draft and returns the query the page should move to.
func (s *Session) Submit(draft string) query.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
	s.lastSeen = time.Now()
	return s.state.Commit(draft)
}

// debouncedDraft is the draft as last published by the debouncer.
func (s *Session) debouncedDraft() string {
	return s.debounced.Get()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Await waits up to wait for the current query to finish loading.
func (s *Session) Await(ctx context.Context, wait time.Duration) View {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		s.mu.Lock()
		if s.status != StatusLoading {
			view := s.viewLocked()
			s.mu.Unlock()
			return view
		}
		changed := s.changed
		s.mu.Unlock()

		select {
		case <-changed:
		case <-timer.C:
			return s.View()
		case <-ctx.Done():
			return s.View()
		}
	}
}

func (s *Session) Close() {
	s.debounced.Stop()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) viewLocked() View {
	view := View{
		State:  s.state,
		Draft:  s.draft,
		Status: s.status,
		Stale:  s.stale,
	}
	if s.page != nil {
		page := *s.page
		view.Page = &page
	}
	if s.failure != nil {
		failure := *s.failure
		view.Failure = &failure
	}
	return view
}

func (s *Session) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func keyOf(state query.State) cache.Key {
	return cache.Key{Filter: state.Filter, Page: state.Page}
}

func classify(err error) Failure {
	var networkErr *tagsapi.NetworkError
	var httpErr *tagsapi.HTTPError
	var decodeErr *tagsapi.DecodeError
	switch {
	case errors.As(err, &networkErr):
		return Failure{Kind: FailureNetwork, Message: "Could not reach the tags service."}
	case errors.As(err, &httpErr):
		return Failure{Kind: FailureHTTP, Message: fmt.Sprintf("The tags service answered with status %d.", httpErr.StatusCode)}
	case errors.As(err, &decodeErr):
		return Failure{Kind: FailureDecode, Message: "The tags service sent a response that could not be read."}
	default:
		return Failure{Kind: FailureUnknown, Message: "Loading tags failed."}
	}
}
