package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func makeCheck(instanceID, patientID string, ts time.Time, symptoms []string, severity int) *check.Check {
	r := triage.Report{
		Symptoms: symptoms,
		Severity: severity,
		Duration: triage.DurationOneToThree,
		Age:      35,
	}
	return check.New(instanceID, patientID, ts, r, triage.Assess(r))
}

func TestInsertAndGet(t *testing.T) {
	db := testDB(t)

	c := makeCheck("clinic-1", "p-1", time.Now(), []string{"chest pain", "বুকে ব্যথা"}, 4)
	c.Report.TemperatureF = triage.Temp(101.3)
	c.Report.Notes = "started after lifting"

	if err := db.Insert(c); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := db.Get(c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != c.ID {
		t.Errorf("ID = %q, want %q", got.ID, c.ID)
	}
	if got.PatientID != "p-1" {
		t.Errorf("PatientID = %q", got.PatientID)
	}
	if got.Level() != triage.RiskEmergency {
		t.Errorf("Level = %q", got.Level())
	}
	if len(got.Report.Symptoms) != 2 || got.Report.Symptoms[1] != "বুকে ব্যথা" {
		t.Errorf("Symptoms = %v", got.Report.Symptoms)
	}
	if got.Report.TemperatureF == nil || *got.Report.TemperatureF != 101.3 {
		t.Errorf("TemperatureF = %v", got.Report.TemperatureF)
	}
	if got.Report.Notes != "started after lifting" {
		t.Errorf("Notes = %q", got.Report.Notes)
	}
	if !got.Result.ShouldSeekImmediateCare || len(got.Result.Advice) == 0 {
		t.Errorf("Result not round-tripped: %+v", got.Result)
	}
	if !got.Timestamp.Equal(c.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, c.Timestamp)
	}
}

func TestGetNotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetCorruptTimestamp(t *testing.T) {
	db := testDB(t)

	c := makeCheck("clinic-1", "p-1", time.Now(), []string{"cough"}, 3)
	if err := db.Insert(c); err != nil {
		t.Fatal(err)
	}
	if _, err := db.exec(`UPDATE checks SET timestamp = ? WHERE id = ?`, "yesterday", c.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := db.Get(c.ID); err == nil {
		t.Error("expected error for an unparseable timestamp")
	}
	if _, err := db.Query(QueryFilter{}); err == nil {
		t.Error("Query should surface the timestamp error")
	}
}

func TestQueryFilters(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	c1 := makeCheck("clinic-1", "p-1", now.Add(-3*time.Minute), []string{"chest pain"}, 4)
	c2 := makeCheck("clinic-1", "p-2", now.Add(-2*time.Minute), []string{"cough"}, 3)
	c3 := makeCheck("clinic-2", "p-1", now.Add(-1*time.Minute), []string{"runny nose"}, 2)
	c4 := makeCheck("clinic-1", "p-1", now, []string{"fever"}, 5)

	for _, c := range []*check.Check{c1, c2, c3, c4} {
		if err := db.Insert(c); err != nil {
			t.Fatal(err)
		}
	}

	since := now.Add(-1 * time.Hour)

	checks, err := db.Query(QueryFilter{Since: since})
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 4 {
		t.Fatalf("got %d checks, want 4", len(checks))
	}
	if checks[0].ID != c4.ID || checks[3].ID != c1.ID {
		t.Error("checks should be ordered newest first")
	}

	checks, err = db.Query(QueryFilter{Since: since, Level: triage.RiskMedium})
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 2 {
		t.Errorf("level filter: got %d checks, want 2", len(checks))
	}

	checks, err = db.Query(QueryFilter{Since: since, PatientID: "p-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 3 {
		t.Errorf("patient filter: got %d checks, want 3", len(checks))
	}

	checks, err = db.Query(QueryFilter{Since: since, InstanceID: "clinic-2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 1 {
		t.Errorf("instance filter: got %d checks, want 1", len(checks))
	}

	checks, err = db.Query(QueryFilter{Until: now.Add(-90 * time.Second)})
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 2 {
		t.Errorf("until filter: got %d checks, want 2", len(checks))
	}

	checks, err = db.Query(QueryFilter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 2 {
		t.Errorf("limit filter: got %d checks, want 2", len(checks))
	}
}

func TestSyncState(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	older := makeCheck("clinic-1", "p-1", now.Add(-time.Minute), []string{"cough"}, 3)
	newer := makeCheck("clinic-1", "p-2", now, []string{"rash"}, 2)
	for _, c := range []*check.Check{newer, older} {
		if err := db.Insert(c); err != nil {
			t.Fatal(err)
		}
	}

	pending, err := db.Pending(10)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != older.ID {
		t.Fatalf("Pending should return both checks oldest first, got %d", len(pending))
	}

	if err := db.MarkSynced(older.ID); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}

	n, err := db.CountPending()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("CountPending = %d, want 1", n)
	}

	unsynced, err := db.Query(QueryFilter{Unsynced: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(unsynced) != 1 || unsynced[0].ID != newer.ID {
		t.Errorf("Unsynced filter returned %d checks", len(unsynced))
	}

	got, err := db.Get(older.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Synced {
		t.Error("check should be marked synced")
	}
}

func TestMarkNotified(t *testing.T) {
	db := testDB(t)

	c := makeCheck("clinic-1", "p-1", time.Now(), []string{"chest pain"}, 4)
	if err := db.Insert(c); err != nil {
		t.Fatal(err)
	}

	if err := db.MarkNotified(c.ID); err != nil {
		t.Fatalf("MarkNotified: %v", err)
	}

	got, err := db.Get(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Notified {
		t.Error("check should be marked notified")
	}
}

func TestPurge(t *testing.T) {
	db := testDB(t)

	old := makeCheck("clinic-1", "p-1", time.Now().Add(-100*24*time.Hour), []string{"cough"}, 3)
	if err := db.Insert(old); err != nil {
		t.Fatal(err)
	}

	recent := makeCheck("clinic-1", "p-1", time.Now(), []string{"cough"}, 3)
	if err := db.Insert(recent); err != nil {
		t.Fatal(err)
	}

	purged, err := db.Purge(90 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged %d checks, want 1", purged)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("after purge: %d checks remain, want 1", count)
	}
}

func TestCount(t *testing.T) {
	db := testDB(t)

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("empty db count = %d, want 0", count)
	}

	for i := 0; i < 5; i++ {
		c := makeCheck("clinic-1", "p-1", time.Now(), []string{"cough"}, 3)
		if err := db.Insert(c); err != nil {
			t.Fatal(err)
		}
	}

	count, err = db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
}

func TestMeta(t *testing.T) {
	db := testDB(t)

	if _, ok, err := db.GetMeta("missing"); err != nil || ok {
		t.Fatalf("GetMeta(missing) ok=%v err=%v", ok, err)
	}

	if err := db.SetMeta("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMeta("k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := db.GetMeta("k")
	if err != nil || !ok || v != "v2" {
		t.Errorf("GetMeta = %q, %v, %v; want v2", v, ok, err)
	}

	last, err := db.LastSync()
	if err != nil || !last.IsZero() {
		t.Errorf("LastSync before any sync = %v, %v", last, err)
	}
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	if err := db.SetLastSync(ts); err != nil {
		t.Fatal(err)
	}
	last, err = db.LastSync()
	if err != nil {
		t.Fatal(err)
	}
	if !last.Equal(ts) {
		t.Errorf("LastSync = %v, want %v", last, ts)
	}
}

func TestRebindDollar(t *testing.T) {
	got := rebindDollar("SELECT id FROM checks WHERE a = ? AND b = ? LIMIT ?")
	want := "SELECT id FROM checks WHERE a = $1 AND b = $2 LIMIT $3"
	if got != want {
		t.Errorf("rebindDollar = %q, want %q", got, want)
	}
}
