package xp

import "testing"

func TestAchievementCatalog(t *testing.T) {
	all := Achievements()
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}
	seen := map[string]bool{}
	for _, a := range all {
		if a.ID == "" || a.Name == "" {
			t.Fatalf("achievement with empty id or name: %+v", a)
		}
		if seen[a.ID] {
			t.Fatalf("duplicate achievement id %q", a.ID)
		}
		seen[a.ID] = true
		if a.XPReward < 0 {
			t.Fatalf("achievement %q has negative reward", a.ID)
		}
	}
}

func TestLevelAchievementID(t *testing.T) {
	for _, lvl := range []int{5, 10, 15} {
		id := LevelAchievementID(lvl)
		if _, ok := AchievementByID(id); !ok {
			t.Fatalf("expected catalog entry for %s", id)
		}
	}
	// Most levels deliberately have no keyed achievement.
	if _, ok := AchievementByID(LevelAchievementID(2)); ok {
		t.Fatal("level_2 should not be cataloged")
	}
}

func TestAchievementByIDUnknown(t *testing.T) {
	if _, ok := AchievementByID("no_such_thing"); ok {
		t.Fatal("unknown id should not resolve")
	}
}
