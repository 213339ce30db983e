package storage

import (
	"errors"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsApplied(t *testing.T) {
	s := openTestStore(t)
	versions, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	if len(versions) == 0 {
		t.Fatal("no migrations applied")
	}
	if versions[0] != 1 {
		t.Errorf("first migration version = %d, want 1", versions[0])
	}
}

func TestProfileKeyRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.GetProfileKey("identity.full_name"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key: got %v, want ErrNotFound", err)
	}

	if err := s.SetProfileKey("identity.full_name", "Luna Silva"); err != nil {
		t.Fatalf("SetProfileKey: %v", err)
	}
	v, err := s.GetProfileKey("identity.full_name")
	if err != nil {
		t.Fatalf("GetProfileKey: %v", err)
	}
	if v != "Luna Silva" {
		t.Errorf("got %q, want %q", v, "Luna Silva")
	}

	// Upsert overwrites.
	if err := s.SetProfileKey("identity.full_name", "Luna S."); err != nil {
		t.Fatalf("SetProfileKey update: %v", err)
	}
	all, err := s.GetAllProfileKeys()
	if err != nil {
		t.Fatalf("GetAllProfileKeys: %v", err)
	}
	if all["identity.full_name"] != "Luna S." {
		t.Errorf("upsert did not overwrite: %v", all)
	}
}

func TestConnectionCRUD(t *testing.T) {
	s := openTestStore(t)

	c := Connection{
		ID:        "c1",
		Name:      "Rafael",
		BirthDate: "1992-03-08",
		BirthTime: "08:30",
		BirthCity: "Lisbon",
		RelType:   "love",
		CreatedAt: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.SaveConnection(c); err != nil {
		t.Fatalf("SaveConnection: %v", err)
	}

	got, err := s.GetConnection("c1")
	if err != nil {
		t.Fatalf("GetConnection: %v", err)
	}
	if got.Name != "Rafael" || got.BirthDate != "1992-03-08" || got.RelType != "love" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("created_at mismatch: %v != %v", got.CreatedAt, c.CreatedAt)
	}

	if err := s.UpdateConnectionScore("c1", 85); err != nil {
		t.Fatalf("UpdateConnectionScore: %v", err)
	}
	got, _ = s.GetConnection("c1")
	if got.Score != 85 {
		t.Errorf("score = %d, want 85", got.Score)
	}

	list, err := s.ListConnections()
	if err != nil {
		t.Fatalf("ListConnections: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}

	if err := s.DeleteConnection("c1"); err != nil {
		t.Fatalf("DeleteConnection: %v", err)
	}
	if _, err := s.GetConnection("c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted connection: got %v, want ErrNotFound", err)
	}
	if err := s.DeleteConnection("c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: got %v, want ErrNotFound", err)
	}
}

func TestConnectionListOrder(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		err := s.SaveConnection(Connection{
			ID: id, Name: id, BirthDate: "1990-01-01", RelType: "social",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SaveConnection %s: %v", id, err)
		}
	}
	list, err := s.ListConnections()
	if err != nil {
		t.Fatalf("ListConnections: %v", err)
	}
	if len(list) != 3 || list[0].ID != "a" || list[2].ID != "c" {
		t.Errorf("unexpected order: %+v", list)
	}
}

func TestSnapshotUpsert(t *testing.T) {
	s := openTestStore(t)

	snap := Snapshot{
		Date: "2025-09-01", Mind: 70, Body: 60, Soul: 50,
		Alignment: 80, Tier: "stable",
		CreatedAt: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := s.UpsertSnapshot(snap); err != nil {
		t.Fatalf("UpsertSnapshot: %v", err)
	}

	// Same day again with new scores: overwrite, not duplicate.
	snap.Mind = 75
	if err := s.UpsertSnapshot(snap); err != nil {
		t.Fatalf("UpsertSnapshot upsert: %v", err)
	}

	got, err := s.GetSnapshot("2025-09-01")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if got.Mind != 75 {
		t.Errorf("mind = %d, want 75 after upsert", got.Mind)
	}

	list, err := s.ListSnapshots(10)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("snapshot count = %d, want 1", len(list))
	}
}

func TestSnapshotListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	for _, d := range []string{"2025-08-30", "2025-09-01", "2025-08-31"} {
		err := s.UpsertSnapshot(Snapshot{Date: d, CreatedAt: time.Now()})
		if err != nil {
			t.Fatalf("UpsertSnapshot %s: %v", d, err)
		}
	}
	list, err := s.ListSnapshots(2)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(list) != 2 || list[0].Date != "2025-09-01" || list[1].Date != "2025-08-31" {
		t.Errorf("unexpected order/limit: %+v", list)
	}
}

func TestPurgeAll(t *testing.T) {
	s := openTestStore(t)
	s.SetProfileKey("identity.full_name", "Luna")
	s.SaveConnection(Connection{ID: "c1", Name: "R", BirthDate: "1990-01-01", CreatedAt: time.Now()})
	s.UpsertSnapshot(Snapshot{Date: "2025-09-01", CreatedAt: time.Now()})

	if err := s.PurgeAll(); err != nil {
		t.Fatalf("PurgeAll: %v", err)
	}

	list, _ := s.ListConnections()
	if len(list) != 0 {
		t.Error("connections survived purge")
	}
	snaps, _ := s.ListSnapshots(10)
	if len(snaps) != 0 {
		t.Error("snapshots survived purge")
	}
	if _, err := s.GetProfileKey("identity.full_name"); err != nil {
		t.Error("profile should survive a data purge")
	}
}
