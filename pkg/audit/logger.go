package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/netgraph-io/netgraph/pkg/util"
)

// Logger is an audit backend: append one poll-lifecycle event, search
// past events, release the backend.
type Logger interface {
	Log(event *Event) error
	Query(filter Filter) ([]*Event, error)
	Close() error
}

// RotationConfig bounds the on-disk footprint of a FileLogger.
type RotationConfig struct {
	MaxSize    int64 // bytes before the active file is rotated away
	MaxBackups int   // rotated files kept; older ones are deleted
}

// FileLogger appends events as JSON lines to a single file, rotating
// it by size. Writers are serialized; Query re-reads the file under a
// shared lock so it never observes a partially written line.
type FileLogger struct {
	mu       sync.RWMutex
	path     string
	active   *os.File
	enc      *json.Encoder
	rotation RotationConfig
}

// NewFileLogger opens (or creates) the audit log at path.
func NewFileLogger(path string, rotation RotationConfig) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating audit log directory: %w", err)
	}
	f, err := openAppend(path)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return &FileLogger{path: path, active: f, enc: json.NewEncoder(f), rotation: rotation}, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// Log appends one event, rotating the file first if it has outgrown
// the configured size.
func (l *FileLogger) Log(event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rotation.MaxSize > 0 {
		if info, err := l.active.Stat(); err == nil && info.Size() >= l.rotation.MaxSize {
			if err := l.rotate(); err != nil {
				return fmt.Errorf("rotating audit log: %w", err)
			}
		}
	}
	return l.enc.Encode(event)
}

// Query scans the active file and returns the events that match
// filter, in file order, with Offset/Limit applied last. Malformed
// lines are logged and skipped rather than failing the whole scan.
func (l *FileLogger) Query(filter Filter) ([]*Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Event{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var matched []*Event
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			util.Warnf("audit: skipping malformed log entry at line %d: %v", line, err)
			continue
		}
		if filter.matches(&ev) {
			matched = append(matched, &ev)
		}
	}

	matched = page(matched, filter.Offset, filter.Limit)
	return matched, scanner.Err()
}

func page(events []*Event, offset, limit int) []*Event {
	if offset > 0 {
		if offset >= len(events) {
			return nil
		}
		events = events[offset:]
	}
	if limit > 0 && limit < len(events) {
		events = events[:limit]
	}
	return events
}

// Close releases the active file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active == nil {
		return nil
	}
	return l.active.Close()
}

func (f Filter) matches(ev *Event) bool {
	switch {
	case f.SourceID != "" && ev.SourceID != f.SourceID:
		return false
	case f.Action != "" && ev.Action != f.Action:
		return false
	case !f.StartTime.IsZero() && ev.Timestamp.Before(f.StartTime):
		return false
	case !f.EndTime.IsZero() && ev.Timestamp.After(f.EndTime):
		return false
	case f.SuccessOnly && !ev.Success:
		return false
	case f.FailureOnly && ev.Success:
		return false
	}
	return true
}

// rotate renames the active file aside with a timestamp suffix, opens
// a fresh one, and prunes rotated files beyond MaxBackups. Caller
// holds the write lock.
func (l *FileLogger) rotate() error {
	if err := l.active.Close(); err != nil {
		return err
	}
	aside := l.path + "." + time.Now().Format("20060102-150405")
	if err := os.Rename(l.path, aside); err != nil {
		return err
	}
	f, err := openAppend(l.path)
	if err != nil {
		return err
	}
	l.active = f
	l.enc = json.NewEncoder(f)

	if l.rotation.MaxBackups > 0 {
		l.pruneRotated()
	}
	return nil
}

func (l *FileLogger) pruneRotated() {
	matches, err := filepath.Glob(l.path + ".*")
	if err != nil || len(matches) <= l.rotation.MaxBackups {
		return
	}

	type aged struct {
		path string
		mod  time.Time
	}
	var rotated []aged
	for _, p := range matches {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		rotated = append(rotated, aged{p, info.ModTime()})
	}
	if len(rotated) <= l.rotation.MaxBackups {
		return
	}
	sort.Slice(rotated, func(i, j int) bool { return rotated[i].mod.Before(rotated[j].mod) })
	for _, old := range rotated[:len(rotated)-l.rotation.MaxBackups] {
		os.Remove(old.path)
	}
}

// defaultLogger holds the process-wide Logger behind atomic.Value; the
// holder wrapper keeps the stored concrete type constant across
// different Logger implementations.
type loggerHolder struct {
	logger Logger
}

var defaultLogger atomic.Value

// SetDefaultLogger installs the process-wide audit backend used by the
// package-level Log/Query functions.
func SetDefaultLogger(logger Logger) {
	defaultLogger.Store(loggerHolder{logger: logger})
}

func getDefaultLogger() Logger {
	v := defaultLogger.Load()
	if v == nil {
		return nil
	}
	return v.(loggerHolder).logger
}

// Log appends an event to the default backend; a no-op when none is
// configured, so callers never need to guard their audit calls.
func Log(event *Event) error {
	l := getDefaultLogger()
	if l == nil {
		return nil
	}
	return l.Log(event)
}

// Query searches the default backend.
func Query(filter Filter) ([]*Event, error) {
	l := getDefaultLogger()
	if l == nil {
		return []*Event{}, nil
	}
	return l.Query(filter)
}
