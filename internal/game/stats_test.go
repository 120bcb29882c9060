package game

import "testing"

func TestStatsClampBoundedStats(t *testing.T) {
	stats := DefaultStats()

	stats.Set(StatLuck, 150)
	if got := stats.Get(StatLuck); got != 100 {
		t.Fatalf("Set(luck, 150) = %d, want 100", got)
	}
	stats.Adjust(StatLuck, -250)
	if got := stats.Get(StatLuck); got != 0 {
		t.Fatalf("Adjust(luck, -250) = %d, want 0", got)
	}
}

func TestHealthClampsToMaxHealth(t *testing.T) {
	stats := DefaultStats()

	stats.Adjust(StatHealth, 50)
	if got := stats.Get(StatHealth); got != 100 {
		t.Fatalf("health over max = %d, want 100", got)
	}
	stats.Set(StatMaxHealth, 120)
	stats.Adjust(StatHealth, 50)
	if got := stats.Get(StatHealth); got != 120 {
		t.Fatalf("health after raising max = %d, want 120", got)
	}
	stats.Adjust(StatHealth, -500)
	if got := stats.Get(StatHealth); got != 0 {
		t.Fatalf("health floor = %d, want 0", got)
	}
}

func TestStatFromNameRoundTrip(t *testing.T) {
	for stat, name := range statNames {
		resolved, ok := StatFromName(name)
		if !ok {
			t.Fatalf("StatFromName(%q) not found", name)
		}
		if resolved != stat {
			t.Fatalf("StatFromName(%q) = %v, want %v", name, resolved, stat)
		}
	}
	if _, ok := StatFromName("charisma"); ok {
		t.Fatalf("StatFromName(charisma) resolved, want miss")
	}
}
