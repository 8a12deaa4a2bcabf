// audit.go: AuditLogger - a buffered, checksummed journal of Translate runs.
//
// Adapted from the teacher's file-watch AuditLogger: the same buffered
// in-memory accumulation, background flush ticker, and SHA-256 tamper-
// detection checksum per event, but journaling Translate() runs (stage
// counts and outcome) instead of file-change events. The teacher's
// AuditLevel taxonomy and DefaultAuditConfig shape are kept; FilePath /
// OldValue / NewValue are replaced with the fields a translation run
// actually has to report.
//
// The teacher's timecache.CachedTime() is not carried over: there is no
// polling loop here to amortize time.Now() across, so this package calls
// time.Now() directly (see SPEC_FULL.md §3's dependency-wiring ledger).
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// AuditLevel classifies an audit event's severity, mirroring the teacher's
// AuditLevel taxonomy.
type AuditLevel int

const (
	AuditInfo AuditLevel = iota
	AuditWarn
	AuditError
)

func (l AuditLevel) String() string {
	switch l {
	case AuditInfo:
		return "info"
	case AuditWarn:
		return "warn"
	case AuditError:
		return "error"
	default:
		return "unknown"
	}
}

// AuditEvent records the outcome of one Translate run.
type AuditEvent struct {
	Timestamp    time.Time
	Level        AuditLevel
	Mappings     int
	Translations int
	Parsed       int
	Coerced      int
	Aggregated   int
	Translated   int
	Merged       int
	Err          string
	Checksum     string
}

// runStats accumulates per-stage counts across one Translate invocation,
// emitted as a single AuditEvent at the end of the run.
type runStats struct {
	Mappings     int
	Translations int
	Parsed       int
	Coerced      int
	Aggregated   int
	Translated   int
	Merged       int
}

func newRunStats(schema *Schema) *runStats {
	if schema == nil {
		return &runStats{}
	}
	return &runStats{Mappings: len(schema.Mappings), Translations: len(schema.Translations)}
}

func (r *runStats) ok() AuditEvent {
	return r.toEvent(AuditInfo, "")
}

func (r *runStats) withError(err error) AuditEvent {
	return r.toEvent(AuditError, err.Error())
}

func (r *runStats) toEvent(level AuditLevel, errMsg string) AuditEvent {
	e := AuditEvent{
		Timestamp:    time.Now(),
		Level:        level,
		Mappings:     r.Mappings,
		Translations: r.Translations,
		Parsed:       r.Parsed,
		Coerced:      r.Coerced,
		Aggregated:   r.Aggregated,
		Translated:   r.Translated,
		Merged:       r.Merged,
		Err:          errMsg,
	}
	e.Checksum = checksumEvent(e)
	return e
}

func checksumEvent(e AuditEvent) string {
	payload := fmt.Sprintf("%d|%d|%d|%d|%d|%d|%d|%d|%s",
		e.Timestamp.UnixNano(), e.Level, e.Mappings, e.Translations,
		e.Parsed, e.Coerced, e.Aggregated, e.Translated, e.Err)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// AuditConfig configures an AuditLogger, mirroring the teacher's
// DefaultAuditConfig shape.
type AuditConfig struct {
	Enabled       bool
	MinLevel      AuditLevel
	BufferSize    int
	FlushInterval time.Duration
}

// DefaultAuditConfig returns sensible defaults: enabled, journaling every
// level, a modest buffer flushed every five seconds.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		Enabled:       true,
		MinLevel:      AuditInfo,
		BufferSize:    256,
		FlushInterval: 5 * time.Second,
	}
}

// AuditLogger buffers AuditEvents in memory and periodically flushes them
// to a backend. Nil is a valid, inert *AuditLogger: every method on it is a
// no-op, so callers that don't want auditing can simply pass nil.
type AuditLogger struct {
	mu      sync.Mutex
	cfg     AuditConfig
	backend auditBackend
	buf     []AuditEvent

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewAuditLogger builds a logger around backend, flushing on the schedule
// cfg describes. Call Close to stop the background flush goroutine and
// flush any remaining buffered events.
func NewAuditLogger(cfg AuditConfig, backend auditBackend) *AuditLogger {
	l := &AuditLogger{
		cfg:    cfg,
		backend: backend,
		buf:    make([]AuditEvent, 0, cfg.BufferSize),
		stopCh: make(chan struct{}),
	}
	if cfg.Enabled && cfg.FlushInterval > 0 {
		l.wg.Add(1)
		go l.flushLoop()
	}
	return l
}

func (l *AuditLogger) flushLoop() {
	defer l.wg.Done()
	ticker := time.NewTicker(l.cfg.FlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = l.Flush()
		case <-l.stopCh:
			return
		}
	}
}

// record appends e to the buffer if the logger is non-nil, enabled, and e's
// level meets the configured minimum, flushing immediately once the buffer
// reaches its configured size.
func (l *AuditLogger) record(e AuditEvent) {
	if l == nil || !l.cfg.Enabled || e.Level < l.cfg.MinLevel {
		return
	}
	l.mu.Lock()
	l.buf = append(l.buf, e)
	full := len(l.buf) >= l.cfg.BufferSize
	l.mu.Unlock()
	if full {
		_ = l.Flush()
	}
}

// Flush writes buffered events to the backend and clears the buffer. A nil
// logger's Flush is a no-op returning nil.
func (l *AuditLogger) Flush() error {
	if l == nil || l.backend == nil {
		return nil
	}
	l.mu.Lock()
	pending := l.buf
	l.buf = make([]AuditEvent, 0, l.cfg.BufferSize)
	l.mu.Unlock()
	if len(pending) == 0 {
		return nil
	}
	return l.backend.Write(pending)
}

// Close flushes remaining events and stops the background flush goroutine.
// A nil logger's Close is a no-op returning nil.
func (l *AuditLogger) Close() error {
	if l == nil {
		return nil
	}
	close(l.stopCh)
	l.wg.Wait()
	err := l.Flush()
	if l.backend != nil {
		if cerr := l.backend.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
