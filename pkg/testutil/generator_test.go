package testutil

import (
	"testing"
	"time"
)

func TestUniformSpreadDeterministic(t *testing.T) {
	a := NewDefault().UniformSpread(10, 365*24*time.Hour)
	b := NewDefault().UniformSpread(10, 365*24*time.Hour)
	if len(a) != 10 || len(b) != 10 {
		t.Fatalf("lengths %d, %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || !a[i].Date.Equal(b[i].Date) {
			t.Errorf("event %d differs between runs", i)
		}
	}
	if !a[0].Date.Before(a[9].Date) {
		t.Error("spread not ascending")
	}
}

func TestRandomSpreadSeedStability(t *testing.T) {
	a := New(GeneratorConfig{Seed: 7}).RandomSpread(20, 24*time.Hour)
	b := New(GeneratorConfig{Seed: 7}).RandomSpread(20, 24*time.Hour)
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) {
			t.Fatalf("seeded generator not deterministic at %d", i)
		}
	}
	c := New(GeneratorConfig{Seed: 8}).RandomSpread(20, 24*time.Hour)
	same := true
	for i := range a {
		if !a[i].Date.Equal(c[i].Date) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical spreads")
	}
}

func TestTwoDistantClusters(t *testing.T) {
	events := NewDefault().TwoDistantClusters(3, 4)
	if len(events) != 7 {
		t.Fatalf("len = %d", len(events))
	}
	ids := make(map[string]bool)
	for _, ev := range events {
		if ids[ev.ID] {
			t.Errorf("duplicate id %s", ev.ID)
		}
		ids[ev.ID] = true
		if err := ev.Validate(); err != nil {
			t.Errorf("invalid event: %v", err)
		}
	}
	// The two bursts must be separated by decades.
	gap := events[3].Date.Sub(events[2].Date)
	if gap < 40*365*24*time.Hour {
		t.Errorf("cluster gap = %v, want ~50 years", gap)
	}
}
