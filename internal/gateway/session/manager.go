package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"kamicanvas/internal/assist"
)

const (
	DefaultMaxSessions = 1024
	DefaultTTL         = 12 * time.Hour
)

// Manager keeps canvases in memory only. Idle sessions expire and the least
// recently used one is evicted when the registry is full.
type Manager struct {
	ai                 *assist.Client
	credentialsMissing bool
	log                *log.Logger

	sessions *expirable.LRU[string, *Session]

	wg sync.WaitGroup
}

func NewManager(ai *assist.Client, maxSessions int, ttl time.Duration, logger *log.Logger) *Manager {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{
		ai:                 ai,
		credentialsMissing: !ai.Available(),
		log:                logger,
	}
	m.sessions = expirable.NewLRU[string, *Session](maxSessions, func(id string, _ *Session) {
		m.log.Printf("canvas session %s evicted", id)
	}, ttl)
	return m
}

func (m *Manager) CredentialsMissing() bool { return m.credentialsMissing }

// Create starts a fresh canvas session.
func (m *Manager) Create() *Session {
	s := newSession(uuid.NewString(), m.ai, m.credentialsMissing, m.log)
	m.sessions.Add(s.ID, s)
	return s
}

// Get returns the session and refreshes its expiry.
func (m *Manager) Get(id string) (*Session, bool) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, false
	}
	m.sessions.Add(id, s)
	return s, true
}

func (m *Manager) Len() int { return m.sessions.Len() }

// Go runs a workflow detached from the caller's cancellation, so a request
// that returns early does not abort the AI call.
func (m *Manager) Go(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		fn(ctx)
	}()
}

// Wait blocks until every workflow started with Go has settled or ctx ends.
func (m *Manager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
