package persist

import (
	"encoding/json"
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/netgraph-io/netgraph/pkg/model"
	"github.com/netgraph-io/netgraph/pkg/store"
)

func mustRouterID(t *testing.T, addr string) model.RouterId {
	t.Helper()
	id, err := model.NewRouterIDv4(netip.MustParseAddr(addr))
	if err != nil {
		t.Fatalf("NewRouterIDv4: %v", err)
	}
	return id
}

func buildStore(t *testing.T) *store.TopologyStore {
	t.Helper()
	s := store.New()
	src := mustRouterID(t, "10.0.0.1")
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	router := model.Router{ID: mustRouterID(t, "10.0.0.2")}
	node := model.NewRouterNode(router, "R2")
	s.ReplacePartition(src, []model.Node{node}, ts)

	lost := mustRouterID(t, "10.0.0.9")
	s.MarkLost(lost, ts.Add(time.Minute))
	return s
}

func TestDumpRestoreRoundTrip(t *testing.T) {
	s := buildStore(t)
	doc := Dump(s)

	restored := store.New()
	if err := Restore(restored, doc); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	redone := Dump(restored)
	first, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal first dump: %v", err)
	}
	second, err := json.Marshal(redone)
	if err != nil {
		t.Fatalf("marshal second dump: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("expected dump->restore->dump to be bytewise equal:\n%s\nvs\n%s", first, second)
	}
}

func TestSaveLoad_FileRoundTrip(t *testing.T) {
	s := buildStore(t)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := Save(s, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected snapshot file to exist: %v", err)
	}

	restored := store.New()
	if err := Load(restored, path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	src := mustRouterID(t, "10.0.0.1")
	state, ok := restored.GetSourceState(src)
	if !ok {
		t.Fatalf("expected source %s restored", src)
	}
	if state.Health != model.HealthConnected {
		t.Errorf("expected restored health Connected, got %v", state.Health)
	}
	if len(state.Partition.Nodes) != 1 {
		t.Errorf("expected 1 restored node, got %d", len(state.Partition.Nodes))
	}

	lost := mustRouterID(t, "10.0.0.9")
	lostState, ok := restored.GetSourceState(lost)
	if !ok {
		t.Fatalf("expected lost source %s restored", lost)
	}
	if lostState.Health != model.HealthLost {
		t.Errorf("expected restored health Lost, got %v", lostState.Health)
	}
}

func TestMarkLost_PreservesLastSnapshot_ThroughPersist(t *testing.T) {
	s := store.New()
	src := mustRouterID(t, "10.0.0.1")
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	router := model.Router{ID: mustRouterID(t, "10.0.0.2")}
	s.ReplacePartition(src, []model.Node{model.NewRouterNode(router, "")}, t1)
	s.MarkLost(src, t2)

	doc := Dump(s)
	sd := doc.Sources[src.String()]
	if !sd.LastSnapshot.Equal(t1) {
		t.Errorf("expected last_snapshot preserved at %v, got %v", t1, sd.LastSnapshot)
	}
	if !sd.LastStatusChange.Equal(t2) {
		t.Errorf("expected last_status_change bumped to %v, got %v", t2, sd.LastStatusChange)
	}
}
