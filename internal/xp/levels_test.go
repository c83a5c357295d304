package xp

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  int
	}{
		{"zero", 0, 1},
		{"below level 2", 499, 1},
		{"exactly level 2", 500, 2},
		{"just past level 2", 510, 2},
		{"exactly level 3", 1200, 3},
		{"mid table", 9000, 9},
		{"exactly top", 42000, 20},
		{"clamped far past top", 42000 + 1000000, 20},
		{"negative clamps to 1", -5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForXP(tt.total); got != tt.want {
				t.Fatalf("LevelForXP(%d)=%d want=%d", tt.total, got, tt.want)
			}
		})
	}
}

func TestLevelForXPUnitStep(t *testing.T) {
	// Walking XP one unit at a time the level never decreases and never
	// jumps by more than one.
	prev := LevelForXP(0)
	for total := 1; total <= 43000; total++ {
		cur := LevelForXP(total)
		if cur < prev || cur > prev+1 {
			t.Fatalf("level jumped from %d to %d at totalXP=%d", prev, cur, total)
		}
		prev = cur
	}
}

func TestXPForLevel(t *testing.T) {
	if v, ok := XPForLevel(1); !ok || v != 0 {
		t.Fatalf("level 1: got=(%d,%v)", v, ok)
	}
	if v, ok := XPForLevel(2); !ok || v != 500 {
		t.Fatalf("level 2: got=(%d,%v)", v, ok)
	}
	if v, ok := XPForLevel(20); !ok || v != 42000 {
		t.Fatalf("level 20: got=(%d,%v)", v, ok)
	}
	if _, ok := XPForLevel(21); ok {
		t.Fatal("level 21 should be undefined")
	}
	if _, ok := XPForLevel(0); ok {
		t.Fatal("level 0 should be undefined")
	}
}

func TestXPToNextLevel(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  int
	}{
		{"fresh ledger", 0, 500},
		{"close to level 2", 480, 20},
		{"on a boundary", 500, 700},
		{"at max level", 42000, 0},
		{"past max level", 99999, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := XPToNextLevel(tt.total); got != tt.want {
				t.Fatalf("XPToNextLevel(%d)=%d want=%d", tt.total, got, tt.want)
			}
		})
	}
}

func TestThresholdsStrictlyIncreasing(t *testing.T) {
	prev := -1
	for lvl := 1; lvl <= MaxLevel; lvl++ {
		v, ok := XPForLevel(lvl)
		if !ok {
			t.Fatalf("level %d missing", lvl)
		}
		if v <= prev {
			t.Fatalf("threshold for level %d (%d) not above previous (%d)", lvl, v, prev)
		}
		prev = v
	}
}
