package compliance

import (
	"strconv"
	"sync"
	"time"

	"solar-workers/internal/common/logger"
)

// Registry holds one Session per workflow instance. Sessions live until
// Close is called for their key or, with an idle TTL, until they go unused
// for longer than the TTL. Eviction drops a whole session; history inside a
// live session is never trimmed.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*registryEntry
	opts     []SessionOption
	idleTTL  time.Duration
	onEvict  func(SessionReport)
	now      func() time.Time
	logger   logger.Logger
}

type registryEntry struct {
	session  *Session
	lastUsed time.Time
}

type RegistryOption func(*Registry)

// WithSessionOptions applies opts to every session the registry creates.
func WithSessionOptions(opts ...SessionOption) RegistryOption {
	return func(r *Registry) { r.opts = append(r.opts, opts...) }
}

// WithIdleTTL evicts sessions not fetched for longer than d. Zero disables
// eviction.
func WithIdleTTL(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idleTTL = d }
}

// WithEvictHook is called with the final report of every evicted session.
func WithEvictHook(fn func(SessionReport)) RegistryOption {
	return func(r *Registry) { r.onEvict = fn }
}

// NewRegistry builds an empty registry.
func NewRegistry(log logger.Logger, opts ...RegistryOption) *Registry {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	r := &Registry{
		sessions: make(map[int64]*registryEntry),
		now:      time.Now,
		logger:   log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the session for key, creating it with sessionContext on first use.
// The session id is the decimal key so audit lists can be found from the
// workflow instance. Idle sessions of other keys are swept first.
func (r *Registry) Get(key int64, sessionContext map[string]interface{}) *Session {
	now := r.now()

	r.mu.Lock()
	evicted := r.sweepLocked(now, key)
	e, ok := r.sessions[key]
	if !ok {
		opts := append([]SessionOption{WithSessionID(strconv.FormatInt(key, 10))}, r.opts...)
		e = &registryEntry{session: NewSession(sessionContext, r.logger, opts...)}
		r.sessions[key] = e
	}
	e.lastUsed = now
	r.mu.Unlock()

	r.reportEvicted(evicted)
	return e.session
}

// Close removes the session for key and returns its final report.
func (r *Registry) Close(key int64) (SessionReport, bool) {
	r.mu.Lock()
	e, ok := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()

	if !ok {
		return SessionReport{}, false
	}
	return e.session.Report(), true
}

// Sweep evicts every idle session and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	evicted := r.sweepLocked(r.now(), 0)
	r.mu.Unlock()

	r.reportEvicted(evicted)
	return len(evicted)
}

// Len is the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweepLocked removes idle sessions other than keep. Zero never matches a
// workflow instance key.
func (r *Registry) sweepLocked(now time.Time, keep int64) []*Session {
	if r.idleTTL <= 0 {
		return nil
	}
	var evicted []*Session
	for key, e := range r.sessions {
		if key != keep && now.Sub(e.lastUsed) > r.idleTTL {
			evicted = append(evicted, e.session)
			delete(r.sessions, key)
		}
	}
	return evicted
}

func (r *Registry) reportEvicted(evicted []*Session) {
	for _, s := range evicted {
		report := s.Report()
		r.logger.Info("idle compliance session evicted", map[string]interface{}{
			"sessionId":    report.SessionID,
			"auditEntries": report.AuditEntries,
			"totalSteps":   report.TotalSteps,
		})
		if r.onEvict != nil {
			r.onEvict(report)
		}
	}
}
