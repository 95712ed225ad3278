package store

import (
	"testing"
	"time"
)

func TestCheckCooldownFirstOccurrence(t *testing.T) {
	db := testDB(t)

	c := makeCheck("clinic-1", "p-1", time.Now(), []string{"chest pain"}, 4)

	result, err := db.CheckCooldown(c, 10*time.Minute, 3)
	if err != nil {
		t.Fatalf("CheckCooldown: %v", err)
	}
	if !result.ShouldAlert {
		t.Error("first occurrence should alert")
	}
	if result.Aggregated {
		t.Error("first occurrence should not be aggregated")
	}
}

func TestCheckCooldownIgnoresSelf(t *testing.T) {
	db := testDB(t)

	c := makeCheck("clinic-1", "p-1", time.Now(), []string{"chest pain"}, 4)
	if err := db.Insert(c); err != nil {
		t.Fatal(err)
	}

	result, err := db.CheckCooldown(c, 10*time.Minute, 3)
	if err != nil {
		t.Fatalf("CheckCooldown: %v", err)
	}
	if !result.ShouldAlert || result.RecentCount != 0 {
		t.Errorf("stored check should not count against itself: %+v", result)
	}
}

func TestCheckCooldownAnonymous(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	for i := 0; i < 3; i++ {
		c := makeCheck("clinic-1", "", now.Add(time.Duration(i-3)*time.Minute), []string{"chest pain"}, 4)
		if err := db.Insert(c); err != nil {
			t.Fatal(err)
		}
	}

	c := makeCheck("clinic-1", "", now, []string{"chest pain"}, 4)
	result, err := db.CheckCooldown(c, 10*time.Minute, 3)
	if err != nil {
		t.Fatalf("CheckCooldown: %v", err)
	}
	if !result.ShouldAlert || result.Aggregated || result.RecentCount != 0 {
		t.Errorf("anonymous check should always alert on its own: %+v", result)
	}
}

func TestCheckCooldownSuppression(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	c1 := makeCheck("clinic-1", "p-1", now.Add(-time.Minute), []string{"chest pain"}, 4)
	if err := db.Insert(c1); err != nil {
		t.Fatal(err)
	}

	c2 := makeCheck("clinic-1", "p-1", now, []string{"difficulty breathing"}, 5)

	result, err := db.CheckCooldown(c2, 10*time.Minute, 3)
	if err != nil {
		t.Fatalf("CheckCooldown: %v", err)
	}
	if result.ShouldAlert {
		t.Error("should be suppressed within cooldown window")
	}
	if result.RecentCount != 1 {
		t.Errorf("RecentCount = %d, want 1", result.RecentCount)
	}
}

func TestCheckCooldownAggregation(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	for i := 3; i > 0; i-- {
		c := makeCheck("clinic-1", "p-1", now.Add(-time.Duration(i)*time.Minute), []string{"chest pain"}, 4)
		if err := db.Insert(c); err != nil {
			t.Fatal(err)
		}
	}

	c := makeCheck("clinic-1", "p-1", now, []string{"chest pain"}, 4)

	result, err := db.CheckCooldown(c, 10*time.Minute, 3)
	if err != nil {
		t.Fatalf("CheckCooldown: %v", err)
	}
	if !result.ShouldAlert {
		t.Error("aggregate threshold should trigger alert")
	}
	if !result.Aggregated {
		t.Error("should be flagged as aggregated")
	}
}

func TestCheckCooldownKeys(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	prior := makeCheck("clinic-1", "p-1", now.Add(-time.Minute), []string{"chest pain"}, 4)
	if err := db.Insert(prior); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		c    func() bool
	}{
		{"different patient alerts", func() bool {
			r, _ := db.CheckCooldown(makeCheck("clinic-1", "p-2", now, []string{"chest pain"}, 4), 10*time.Minute, 3)
			return r.ShouldAlert
		}},
		{"different level alerts", func() bool {
			r, _ := db.CheckCooldown(makeCheck("clinic-1", "p-1", now, []string{"seizure"}, 2), 10*time.Minute, 3)
			return r.ShouldAlert
		}},
		{"outside window alerts", func() bool {
			r, _ := db.CheckCooldown(makeCheck("clinic-1", "p-1", now.Add(20*time.Minute), []string{"chest pain"}, 4), 10*time.Minute, 3)
			return r.ShouldAlert
		}},
	}

	for _, tt := range tests {
		if !tt.c() {
			t.Errorf("%s: expected alert", tt.name)
		}
	}
}
