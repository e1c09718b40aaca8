package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// withCapturedLogger redirects the package logger into a buffer for the
// duration of fn, restoring its previous state afterwards.
func withCapturedLogger(t *testing.T, level string, fn func(*bytes.Buffer)) {
	t.Helper()
	out, lvl, formatter := Logger.Out, Logger.Level, Logger.Formatter
	t.Cleanup(func() {
		Logger.SetOutput(out)
		Logger.SetLevel(lvl)
		Logger.SetFormatter(formatter)
	})

	var buf bytes.Buffer
	SetLogOutput(&buf)
	if level != "" {
		if err := SetLogLevel(level); err != nil {
			t.Fatalf("SetLogLevel(%q): %v", level, err)
		}
	}
	fn(&buf)
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"not-a-level", true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			withCapturedLogger(t, "", func(*bytes.Buffer) {
				err := SetLogLevel(tt.level)
				if (err != nil) != tt.wantErr {
					t.Errorf("SetLogLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
				}
			})
		})
	}
}

func TestFreeFunctionsWriteAtTheirLevel(t *testing.T) {
	tests := []struct {
		name string
		log  func()
	}{
		{"debug", func() { Debug("poll starting") }},
		{"debugf", func() { Debugf("poll %s starting", "r1") }},
		{"info", func() { Info("partition replaced") }},
		{"infof", func() { Infof("partition replaced: %d nodes", 7) }},
		{"warn", func() { Warn("pseudonode prefix unresolved") }},
		{"warnf", func() { Warnf("pseudonode %s unresolved", "0000.0000.0001.5a-00") }},
		{"error", func() { Error("transport failed") }},
		{"errorf", func() { Errorf("transport failed: %v", "timeout") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCapturedLogger(t, "debug", func(buf *bytes.Buffer) {
				tt.log()
				if buf.Len() == 0 {
					t.Errorf("%s: expected output", tt.name)
				}
			})
		})
	}
}

func TestSetJSONFormat(t *testing.T) {
	withCapturedLogger(t, "", func(buf *bytes.Buffer) {
		SetJSONFormat()
		Info("merged view built")
		out := buf.String()
		if !strings.HasPrefix(out, "{") {
			t.Errorf("expected JSON output, got %q", out)
		}
	})
}

func TestFieldHelpersCarryTheirKeys(t *testing.T) {
	tests := []struct {
		name  string
		entry *logrus.Entry
		key   string
	}{
		{"with-field", WithField("reason", "empty facet group"), "reason"},
		{"with-source", WithSource("10.0.0.1"), "source"},
		{"with-operation", WithOperation("replace_partition"), "operation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.entry == nil {
				t.Fatal("expected a non-nil entry")
			}
			if _, ok := tt.entry.Data[tt.key]; !ok {
				t.Errorf("expected entry to carry field %q, got %v", tt.key, tt.entry.Data)
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	entry := WithFields(map[string]interface{}{"source": "r1", "nodes": 12})
	if entry == nil || len(entry.Data) != 2 {
		t.Errorf("expected an entry with 2 fields, got %v", entry)
	}
}
