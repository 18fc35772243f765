// Package activity keeps the operator-visible session feed. Entries are held
// newest-first and capped at the most recent 100; every entry is mirrored to
// the process logger so the feed and the structured log agree.
package activity

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
	"storefront/internal/infra"
)

const maxEntries = 100

// Log is a bounded, newest-first activity feed.
type Log struct {
	mu      sync.Mutex
	entries []domain.LogEntry
	nextID  int
	now     func() time.Time
	logger  infra.Logger
}

// NewLog constructs an empty feed mirroring into the given logger.
func NewLog(logger infra.Logger) *Log {
	return &Log{now: time.Now, logger: logger}
}

// Record prepends an entry and truncates the feed to the retention cap.
func (l *Log) Record(message string, severity domain.LogSeverity) {
	l.mu.Lock()
	entry := domain.LogEntry{
		ID:        l.nextID,
		Timestamp: l.now(),
		Message:   message,
		Severity:  severity,
	}
	l.nextID++
	l.entries = append([]domain.LogEntry{entry}, l.entries...)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[:maxEntries]
	}
	l.mu.Unlock()

	var event *zerolog.Event
	switch severity {
	case domain.LogError:
		event = l.logger.Error()
	case domain.LogSuccess, domain.LogSystem:
		event = l.logger.Info()
	default:
		event = l.logger.Debug()
	}
	event.Str("severity", string(severity)).Msg(message)
}

// Entries returns a newest-first copy of the feed.
func (l *Log) Entries() []domain.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
