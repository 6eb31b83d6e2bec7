package compliance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"solar-workers/internal/common/errors"
	"solar-workers/internal/common/logger"
)

// AuditEntry records one compliance check.
type AuditEntry struct {
	ContentID      string          `json:"contentId"`
	SessionID      string          `json:"sessionId"`
	Engine         string          `json:"engine"`
	Timestamp      time.Time       `json:"timestamp"`
	Inputs         Inputs          `json:"inputs"`
	Citations      []Citation      `json:"citations"`
	VocabularyUsed []VocabularyUse `json:"vocabularyUsed"`
	Violations     []string        `json:"violations"`
}

// Step is one engine execution within a session.
type Step struct {
	Engine    string    `json:"engine"`
	Inputs    Inputs    `json:"inputs"`
	Content   string    `json:"content"`
	QA        Report    `json:"qa"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoryEntry struct {
	SessionID string `json:"sessionId"`
	Step      int    `json:"step"`
}

// SessionReport summarises a session.
type SessionReport struct {
	SessionID    string                 `json:"sessionId"`
	StartTime    time.Time              `json:"startTime"`
	Context      map[string]interface{} `json:"context,omitempty"`
	TotalSteps   int                    `json:"totalSteps"`
	PassedSteps  int                    `json:"passedSteps"`
	AuditEntries int                    `json:"auditEntries"`
}

// Session groups the checks of one content-generation workflow. The audit
// log and history are append-only. Safe for concurrent use.
type Session struct {
	id        string
	startTime time.Time
	context   map[string]interface{}

	mu      sync.Mutex
	steps   []Step
	history []HistoryEntry
	audit   []AuditEntry

	sink   AuditSink
	logger logger.Logger
	now    func() time.Time
}

type SessionOption func(*Session)

// WithAuditSink mirrors every audit entry to sink.
func WithAuditSink(sink AuditSink) SessionOption {
	return func(s *Session) { s.sink = sink }
}

func WithSessionID(id string) SessionOption {
	return func(s *Session) { s.id = id }
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func NewSession(sessionContext map[string]interface{}, log logger.Logger, opts ...SessionOption) *Session {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &Session{
		id:      uuid.NewString(),
		context: sessionContext,
		logger:  log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startTime = s.now()
	return s
}

func (s *Session) ID() string { return s.id }

// Check runs Check and appends an audit entry. A failing audit sink is
// logged and does not change the report.
func (s *Session) Check(ctx context.Context, engineCode, content string, in Inputs) Report {
	report := Check(content, in)
	report.AuditID = newContentID()
	report.EngineUsed = engineCode

	entry := AuditEntry{
		ContentID:      report.AuditID,
		SessionID:      s.id,
		Engine:         engineCode,
		Timestamp:      s.now(),
		Inputs:         in,
		Citations:      report.Citations,
		VocabularyUsed: report.VocabularyUsed,
		Violations:     report.Violations,
	}

	s.mu.Lock()
	s.audit = append(s.audit, entry)
	s.mu.Unlock()

	s.logger.Info("compliance check completed", map[string]interface{}{
		"sessionId":  s.id,
		"contentId":  entry.ContentID,
		"engine":     engineCode,
		"status":     string(report.Status),
		"violations": len(report.Violations),
	})

	if s.sink != nil {
		if err := s.sink.Append(ctx, entry); err != nil {
			sinkErr := errors.NewAuditSinkError(err)
			s.logger.Warn("failed to write audit entry", map[string]interface{}{
				"sessionId": s.id,
				"contentId": entry.ContentID,
				"errorCode": string(sinkErr.Code),
				"retryable": sinkErr.Retryable,
				"error":     sinkErr.Details,
			})
		}
	}
	return report
}

// RecordStep appends an engine execution to the session and its history.
func (s *Session) RecordStep(engineCode string, in Inputs, content string, qa Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.steps = append(s.steps, Step{
		Engine:    engineCode,
		Inputs:    in,
		Content:   content,
		QA:        qa,
		Timestamp: s.now(),
	})
	s.history = append(s.history, HistoryEntry{SessionID: s.id, Step: len(s.steps)})
}

func (s *Session) Report() SessionReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	passed := 0
	for _, st := range s.steps {
		if st.QA.Passed() {
			passed++
		}
	}
	return SessionReport{
		SessionID:    s.id,
		StartTime:    s.startTime,
		Context:      s.context,
		TotalSteps:   len(s.steps),
		PassedSteps:  passed,
		AuditEntries: len(s.audit),
	}
}

// AuditLog returns a copy of the audit log, or only the entries for
// contentID when it is non-empty.
func (s *Session) AuditLog(contentID string) []AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AuditEntry, 0, len(s.audit))
	for _, e := range s.audit {
		if contentID == "" || e.ContentID == contentID {
			out = append(out, e)
		}
	}
	return out
}

func (s *Session) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Step(nil), s.steps...)
}

func (s *Session) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]HistoryEntry(nil), s.history...)
}

func newContentID() string {
	return "content_" + uuid.NewString()
}
