//go:build integration || e2e

// Package testutil provides test helpers for integration and e2e tests
// that need a live SNMP/SSH lab device.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// LabSNMPAddr returns the address of the test lab's SNMP-speaking
// device (IP:port), or "" if NETGRAPH_TEST_SNMP_ADDR isn't set.
func LabSNMPAddr() string {
	return os.Getenv("NETGRAPH_TEST_SNMP_ADDR")
}

// LabSSHAddr returns the address of the test lab's SSH/FRR device
// (host:port), or "" if NETGRAPH_TEST_SSH_ADDR isn't set.
func LabSSHAddr() string {
	return os.Getenv("NETGRAPH_TEST_SSH_ADDR")
}

// SkipIfNoLabSNMP skips the test if no SNMP lab device is configured.
func SkipIfNoLabSNMP(t *testing.T) {
	t.Helper()
	if LabSNMPAddr() == "" {
		t.Skip("no lab SNMP device: set NETGRAPH_TEST_SNMP_ADDR")
	}
}

// SkipIfNoLabSSH skips the test if no SSH lab device is configured.
func SkipIfNoLabSSH(t *testing.T) {
	t.Helper()
	if LabSSHAddr() == "" {
		t.Skip("no lab SSH device: set NETGRAPH_TEST_SSH_ADDR")
	}
}

// FixturesPath returns the absolute path to a file under
// internal/testutil/fixtures/.
func FixturesPath(name string) string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "fixtures", name)
}

// ProjectRoot returns the absolute path to the module root.
func ProjectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0)
	dir := filepath.Dir(thisFile)
	return filepath.Join(dir, "..", "..")
}

// Context returns a context with a reasonable timeout for tests.
func Context(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected error but got nil", msg)
	}
}

// Must is a generic helper that calls t.Fatal if err is not nil and
// returns the value.
func Must[T any](t *testing.T, val T, err error) T {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return val
}
