package journal

import (
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

func TestBoltStoreRecordsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	storeRaw, err := openBolt(dir+"/journal.db", normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	base := time.Now().Add(-time.Minute)
	for i, op := range []string{"filtering_enable", "parental_status", "global_stop"} {
		if err := store.Record(Entry{Operation: op, At: base.Add(time.Duration(i) * time.Second)}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "global_stop" || entries[1].Operation != "parental_status" {
		t.Fatalf("unexpected order: %#v", entries)
	}
	if entries[0].ID == "" {
		t.Fatalf("expected generated id")
	}

	all, err := store.Recent(0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d err=%v", len(all), err)
	}
}

func TestBoltStoreExpiresEntries(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		EntryTTL:        time.Hour,
		CleanupInterval: time.Second,
	}

	storeRaw, err := openBolt(dir+"/journal.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	if err := store.Record(Entry{Operation: "old", At: time.Now().Add(-2 * time.Hour)}); err != nil {
		t.Fatalf("Record old: %v", err)
	}
	if err := store.Record(Entry{Operation: "fresh"}); err != nil {
		t.Fatalf("Record fresh: %v", err)
	}

	entries, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != "fresh" {
		t.Fatalf("expected only fresh entry visible, got %#v", entries)
	}

	// Fast-forward cleanup cadence so the expired key is physically removed.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	if err := store.maybeCleanupExpired(time.Now()); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	var keys int
	if err := store.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(entryBucket)).ForEach(func(_, _ []byte) error {
			keys++
			return nil
		})
	}); err != nil {
		t.Fatalf("count keys: %v", err)
	}
	if keys != 1 {
		t.Fatalf("expected 1 stored key after cleanup, got %d", keys)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Record(Entry{Operation: "x"}); err != nil {
		t.Fatalf("noop store Record: %v", err)
	}
	entries, err := store.Recent(10)
	if err != nil || len(entries) != 0 {
		t.Fatalf("noop store Recent returned %v, %v", entries, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported journal type")
	}
}

func countKeys(t *testing.T, path string) int {
	t.Helper()
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	var keys int
	if err := db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(entryBucket)).ForEach(func(_, _ []byte) error {
			keys++
			return nil
		})
	}); err != nil {
		t.Fatalf("count keys: %v", err)
	}
	return keys
}

func TestBoltStorePrunesExpiredEntriesAcrossRuns(t *testing.T) {
	path := t.TempDir() + "/journal.db"
	opts := Options{
		EntryTTL:        time.Hour,
		CleanupInterval: time.Hour,
	}

	for i := 0; i < 5; i++ {
		store, err := openBolt(path, opts)
		if err != nil {
			t.Fatalf("openBolt run %d: %v", i, err)
		}
		if err := store.Record(Entry{Operation: "stale", At: time.Now().Add(-2 * time.Hour)}); err != nil {
			t.Fatalf("Record run %d: %v", i, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("Close run %d: %v", i, err)
		}
	}

	if keys := countKeys(t, path); keys != 1 {
		t.Fatalf("expected only the last run's expired entry to remain, got %d", keys)
	}

	store, err := openBolt(path, opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	if _, err := store.Recent(0); err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if keys := countKeys(t, path); keys != 0 {
		t.Fatalf("expected expired entries to be removed, got %d", keys)
	}
}
