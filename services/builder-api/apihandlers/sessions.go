package apihandlers

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/case-framework/discovery-builder/pkg/survey/builder"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("builder session not found")

type builderSession struct {
	id        string
	builder   *builder.Builder
	createdAt time.Time
}

// sessionRegistry keeps the open builder sessions of this process.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*builderSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: map[string]*builderSession{}}
}

func (r *sessionRegistry) add(b *builder.Builder) *builderSession {
	s := &builderSession{id: uuid.NewString(), builder: b, createdAt: time.Now()}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
	return s
}

func (r *sessionRegistry) get(id string) (*builderSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *sessionRegistry) remove(id string) (*builderSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(r.sessions, id)
	return s, nil
}

func (r *sessionRegistry) removeAll() []*builderSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*builderSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.sessions = map[string]*builderSession{}
	return all
}

// list returns the sessions, oldest first.
func (r *sessionRegistry) list() []*builderSession {
	r.mu.RLock()
	all := make([]*builderSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool {
		return all[i].createdAt.Before(all[j].createdAt)
	})
	return all
}
