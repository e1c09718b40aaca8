package audit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLogger(t *testing.T, rotation RotationConfig) (*FileLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.log")
	logger, err := NewFileLogger(path, rotation)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger, path
}

func TestNewEvent_PopulatesIdentityAndTimestamp(t *testing.T) {
	ev := NewEvent("10.0.0.1", EventTypePoll)
	if ev.SourceID != "10.0.0.1" || ev.Action != EventTypePoll {
		t.Errorf("unexpected event identity: %+v", ev)
	}
	if ev.ID == "" || ev.Timestamp.IsZero() {
		t.Error("expected a generated id and a set timestamp")
	}
}

func TestEvent_BuilderChain(t *testing.T) {
	ev := NewEvent("0000.0000.0001", EventTypePoll).
		WithProtocol("isis").
		WithNodeCount(42).
		WithDuration(time.Second).
		WithSuccess()

	if ev.Protocol != "isis" || ev.NodeCount != 42 || ev.Duration != time.Second || !ev.Success {
		t.Errorf("builder chain lost a field: %+v", ev)
	}
}

func TestEvent_WithError(t *testing.T) {
	ev := NewEvent("10.0.0.1", EventTypePoll).WithError(errors.New("acquisition: transport: timeout"))
	if ev.Success || ev.Error == "" {
		t.Errorf("WithError should mark failure and record the message: %+v", ev)
	}

	nilErr := NewEvent("10.0.0.1", EventTypePoll).WithError(nil)
	if nilErr.Success || nilErr.Error != "" {
		t.Errorf("WithError(nil) should mark failure with no message: %+v", nilErr)
	}
}

func TestFileLogger_LogThenQueryRoundTrips(t *testing.T) {
	logger, _ := newTestLogger(t, RotationConfig{})

	if err := logger.Log(NewEvent("10.0.0.1", EventTypePoll).WithProtocol("ospf").WithSuccess()); err != nil {
		t.Fatalf("Log: %v", err)
	}

	events, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 1 || events[0].SourceID != "10.0.0.1" || events[0].Action != EventTypePoll {
		t.Errorf("unexpected query result: %+v", events)
	}
}

func TestFileLogger_QueryFilters(t *testing.T) {
	logger, _ := newTestLogger(t, RotationConfig{})

	seed := []*Event{
		NewEvent("10.0.0.1", EventTypePoll).WithSuccess(),
		NewEvent("10.0.0.1", EventTypeMarkLost).WithSuccess(),
		NewEvent("0000.0000.0001", EventTypePoll).WithError(errors.New("timeout")),
		NewEvent("0000.0000.0002", EventTypeSnapshotSave).WithSuccess(),
	}
	for _, e := range seed {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"by source", Filter{SourceID: "10.0.0.1"}, 2},
		{"by action", Filter{Action: EventTypePoll}, 2},
		{"success only", Filter{SuccessOnly: true}, 3},
		{"failure only", Filter{FailureOnly: true}, 1},
		{"limit", Filter{Limit: 2}, 2},
		{"offset", Filter{Offset: 2}, 2},
		{"offset beyond end", Filter{Offset: 10}, 0},
		{"in time window", Filter{StartTime: time.Now().Add(-time.Hour), EndTime: time.Now().Add(time.Hour)}, 4},
		{"window in the future", Filter{StartTime: time.Now().Add(time.Hour)}, 0},
		{"window in the past", Filter{EndTime: time.Now().Add(-time.Hour)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logger.Query(tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFileLogger_QuerySkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	content := `{"source_id":"10.0.0.1","action":"poll","success":true}
this line is not json
{"source_id":"0000.0000.0001","action":"poll","success":true}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("seeding log file: %v", err)
	}

	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer logger.Close()

	events, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected the malformed line skipped, got %d events", len(events))
	}
}

func TestFileLogger_QueryMissingFileIsEmpty(t *testing.T) {
	logger, path := newTestLogger(t, RotationConfig{})
	logger.Close()
	os.Remove(path)

	events, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query on a missing file should not error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestFileLogger_CreatesMissingDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "audit.log")
	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger should create parent directories: %v", err)
	}
	logger.Close()
}

func TestFileLogger_RejectsDirectoryAsLogPath(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewFileLogger(dir, RotationConfig{}); err == nil {
		t.Error("expected an error when the log path is a directory")
	}
}

func TestFileLogger_RotatesBySize(t *testing.T) {
	logger, path := newTestLogger(t, RotationConfig{MaxSize: 100, MaxBackups: 2})

	for i := 0; i < 5; i++ {
		if err := logger.Log(NewEvent("10.0.0.1", EventTypePoll).WithSuccess()); err != nil {
			t.Fatalf("Log %d: %v", i, err)
		}
	}

	rotated, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(rotated) == 0 {
		t.Error("expected size-based rotation to leave rotated files behind")
	}
}

func TestFileLogger_PrunesRotatedBeyondMaxBackups(t *testing.T) {
	logger, path := newTestLogger(t, RotationConfig{MaxSize: 50, MaxBackups: 2})

	for i := 0; i < 10; i++ {
		if err := logger.Log(NewEvent("10.0.0.1", EventTypePoll)); err != nil {
			t.Fatalf("Log %d: %v", i, err)
		}
	}

	rotated, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(rotated) > 2 {
		t.Errorf("expected at most 2 rotated files, got %d", len(rotated))
	}
}

func TestDefaultLogger_NoopWhenUnset(t *testing.T) {
	SetDefaultLogger(nil)
	if err := Log(NewEvent("10.0.0.1", EventTypePoll)); err != nil {
		t.Errorf("Log without a configured backend should be a no-op: %v", err)
	}
	events, err := Query(Filter{})
	if err != nil || len(events) != 0 {
		t.Errorf("Query without a configured backend should return nothing: %v, %d", err, len(events))
	}
}

func TestDefaultLogger_RoutesToInstalledBackend(t *testing.T) {
	logger, _ := newTestLogger(t, RotationConfig{})
	SetDefaultLogger(logger)
	defer SetDefaultLogger(nil)

	if err := Log(NewEvent("10.0.0.1", EventTypePoll).WithSuccess()); err != nil {
		t.Fatalf("Log: %v", err)
	}
	events, err := Query(Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event through the default backend, got %d", len(events))
	}
}
