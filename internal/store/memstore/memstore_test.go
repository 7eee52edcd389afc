package memstore_test

import (
	"context"
	"testing"

	"lantern/internal/content"
	"lantern/internal/live"
	"lantern/internal/store"
	"lantern/internal/store/memstore"
)

func activityRecord(version int) live.ActivityRecord {
	activity := content.Activity{ID: "a_1", Title: "a_1", Version: version, Locale: "en-US"}
	return live.NewActivityRecord("u_1", "e_1", activity, "u_1#e_1#a_1", "mem://key", 0)
}

func TestGuardedPutOnEmptyKeyStores(t *testing.T) {
	s := memstore.New()
	outcome, err := s.PutLive(context.Background(), activityRecord(1), true)
	if err != nil {
		t.Fatalf("PutLive returned error: %v", err)
	}
	if outcome != store.OutcomeStored {
		t.Fatalf("expected stored, got %s", outcome)
	}
}

func TestGuardedPutSkipsOlderVersion(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	if _, err := s.PutLive(ctx, activityRecord(2), true); err != nil {
		t.Fatalf("seed put failed: %v", err)
	}
	outcome, err := s.PutLive(ctx, activityRecord(1), true)
	if err != nil {
		t.Fatalf("PutLive returned error: %v", err)
	}
	if outcome != store.OutcomeSkipped {
		t.Fatalf("expected skipped, got %s", outcome)
	}

	record, ok := s.Record(activityRecord(2).Key())
	if !ok {
		t.Fatal("expected record to exist")
	}
	if record.(live.ActivityRecord).Version != 2 {
		t.Fatalf("live version regressed: %#v", record)
	}
}

func TestGuardedPutAcceptsEqualVersion(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	if _, err := s.PutLive(ctx, activityRecord(2), true); err != nil {
		t.Fatalf("seed put failed: %v", err)
	}
	outcome, err := s.PutLive(ctx, activityRecord(2), true)
	if err != nil {
		t.Fatalf("PutLive returned error: %v", err)
	}
	if outcome != store.OutcomeStored {
		t.Fatalf("expected equal version to store, got %s", outcome)
	}
}

func TestGuardedPutRequiresVersionedRecord(t *testing.T) {
	s := memstore.New()
	record := live.NewUnitRecord(content.Unit{ID: "u_1"}, 0)
	if _, err := s.PutLive(context.Background(), record, true); err == nil {
		t.Fatal("expected error for guarding an unversioned record")
	}
}

func TestUnguardedPutAlwaysOverwrites(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	first := live.NewUnitRecord(content.Unit{ID: "u_1", Title: "Old"}, 0)
	second := live.NewUnitRecord(content.Unit{ID: "u_1", Title: "New"}, 1)
	if _, err := s.PutLive(ctx, first, false); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if _, err := s.PutLive(ctx, second, false); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	record, ok := s.Record(first.Key())
	if !ok {
		t.Fatal("expected record to exist")
	}
	if record.(live.UnitRecord).Title != "New" {
		t.Fatalf("expected overwrite, got %#v", record)
	}
}

func TestPutImmutableStoresJSON(t *testing.T) {
	s := memstore.New()
	if err := s.PutImmutable(context.Background(), "prefix/key.json", map[string]int{"n": 1}); err != nil {
		t.Fatalf("PutImmutable returned error: %v", err)
	}
	body, ok := s.Object("prefix/key.json")
	if !ok {
		t.Fatal("expected object to exist")
	}
	if string(body) != `{"n":1}` {
		t.Fatalf("unexpected body: %s", body)
	}
	if s.PutCount("prefix/key.json") != 1 {
		t.Fatalf("unexpected put count: %d", s.PutCount("prefix/key.json"))
	}
	if s.URI("prefix/key.json") != "mem://prefix/key.json" {
		t.Fatalf("unexpected uri: %s", s.URI("prefix/key.json"))
	}
}

func TestFailPutsInjectsErrors(t *testing.T) {
	s := memstore.New()
	s.FailPuts = true
	if err := s.PutImmutable(context.Background(), "k", 1); err == nil {
		t.Fatal("expected injected object failure")
	}
	if _, err := s.PutLive(context.Background(), activityRecord(1), true); err == nil {
		t.Fatal("expected injected registry failure")
	}
}
