package service

import (
	"context"
	"errors"
	"testing"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/realtime"
	"fitlink-backend/internal/xp"
	"gorm.io/gorm"
)

type fakeLedgerRepo struct {
	totals  map[string]int
	failure error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{totals: map[string]int{}}
}

func (f *fakeLedgerRepo) ledger(uid string) *model.XPLedger {
	total := f.totals[uid]
	return &model.XPLedger{UID: uid, TotalXP: total, CurrentLevel: xp.LevelForXP(total)}
}

func (f *fakeLedgerRepo) Get(_ context.Context, uid string) (*model.XPLedger, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	return f.ledger(uid), nil
}

func (f *fakeLedgerRepo) Increment(_ context.Context, uid string, amount int) (*model.XPLedger, *model.XPLedger, error) {
	if f.failure != nil {
		return nil, nil, f.failure
	}
	before := f.ledger(uid)
	f.totals[uid] += amount
	return before, f.ledger(uid), nil
}

func (f *fakeLedgerRepo) SetDB(*gorm.DB)      {}
func (f *fakeLedgerRepo) SetBus(realtime.Bus) {}

type fakeAchievementRepo struct {
	unlocked map[string]bool
	failure  error
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{unlocked: map[string]bool{}}
}

func (f *fakeAchievementRepo) key(uid, id string) string { return uid + "/" + id }

func (f *fakeAchievementRepo) IsUnlocked(_ context.Context, uid, id string) (bool, error) {
	return f.unlocked[f.key(uid, id)], nil
}

func (f *fakeAchievementRepo) SetUnlocked(_ context.Context, uid, id string) (bool, error) {
	if f.failure != nil {
		return false, f.failure
	}
	k := f.key(uid, id)
	if f.unlocked[k] {
		return true, nil
	}
	f.unlocked[k] = true
	return false, nil
}

func (f *fakeAchievementRepo) ListByUser(_ context.Context, uid string) ([]model.UserAchievement, error) {
	var out []model.UserAchievement
	for _, a := range xp.Achievements() {
		if f.unlocked[f.key(uid, a.ID)] {
			out = append(out, model.UserAchievement{UID: uid, AchievementID: a.ID})
		}
	}
	return out, nil
}

func (f *fakeAchievementRepo) SetDB(*gorm.DB) {}

type recordedNotification struct {
	Typ   string
	Title string
	Body  string
}

type recordingNotifier struct {
	calls []recordedNotification
}

func (r *recordingNotifier) Notify(_ context.Context, _, typ, title, body string, _ int) {
	r.calls = append(r.calls, recordedNotification{Typ: typ, Title: title, Body: body})
}

func newTestService() (*fakeLedgerRepo, *fakeAchievementRepo, *recordingNotifier, XPService) {
	ledgers := newFakeLedgerRepo()
	achs := newFakeAchievementRepo()
	notifier := &recordingNotifier{}
	return ledgers, achs, notifier, NewXPService(ledgers, achs, notifier)
}

func TestAddXPNotifiesGainThenLevelUp(t *testing.T) {
	ledgers, _, notifier, svc := newTestService()
	ledgers.totals["u1"] = 480

	after, err := svc.AddXP(context.Background(), "u1", 30, "Me gusta en post")
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if after.TotalXP != 510 || after.CurrentLevel != 2 {
		t.Fatalf("ledger after: total=%d level=%d", after.TotalXP, after.CurrentLevel)
	}
	if len(notifier.calls) != 2 {
		t.Fatalf("want 2 notifications, got %d: %+v", len(notifier.calls), notifier.calls)
	}
	if notifier.calls[0].Typ != model.NotificationTypeXPGain || notifier.calls[0].Title != "+30 XP" {
		t.Fatalf("first notification: %+v", notifier.calls[0])
	}
	if notifier.calls[1].Typ != model.NotificationTypeLevelUp || notifier.calls[1].Title != "¡Nivel 2!" {
		t.Fatalf("second notification: %+v", notifier.calls[1])
	}
}

func TestAddXPNoLevelUpNotification(t *testing.T) {
	ledgers, _, notifier, svc := newTestService()
	ledgers.totals["u1"] = 100

	if _, err := svc.AddXP(context.Background(), "u1", 50, "Mensaje enviado"); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("want only the XP gain notification, got %+v", notifier.calls)
	}
}

func TestAddXPMultiLevelJumpSingleNotification(t *testing.T) {
	_, _, notifier, svc := newTestService()

	// 0 -> 2500 crosses the thresholds for levels 2, 3 and 4
	after, err := svc.AddXP(context.Background(), "u1", 2500, "Reto aceptado")
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if after.CurrentLevel != 4 {
		t.Fatalf("want level 4, got %d", after.CurrentLevel)
	}
	var levelUps []recordedNotification
	for _, c := range notifier.calls {
		if c.Typ == model.NotificationTypeLevelUp {
			levelUps = append(levelUps, c)
		}
	}
	if len(levelUps) != 1 {
		t.Fatalf("want exactly one level-up notification, got %+v", levelUps)
	}
	if levelUps[0].Title != "¡Nivel 4!" {
		t.Fatalf("level-up should name the final level: %+v", levelUps[0])
	}
}

func TestAddXPCascadesLevelAchievement(t *testing.T) {
	ledgers, achs, notifier, svc := newTestService()
	ledgers.totals["u1"] = 2990 // just under the level 5 threshold of 3000

	if _, err := svc.AddXP(context.Background(), "u1", 30, "Mensaje enviado"); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	// award 30 -> level 5 -> level_5 unlock -> +300 reward
	if !achs.unlocked["u1/level_5"] {
		t.Fatal("level_5 should be unlocked")
	}
	if ledgers.totals["u1"] != 2990+30+300 {
		t.Fatalf("reward XP missing: total=%d", ledgers.totals["u1"])
	}

	want := []struct {
		typ   string
		title string
	}{
		{model.NotificationTypeXPGain, "+30 XP"},
		{model.NotificationTypeLevelUp, "¡Nivel 5!"},
		{model.NotificationTypeAchievement, "¡Logro Desbloqueado!"},
		{model.NotificationTypeXPGain, "+300 XP"},
	}
	if len(notifier.calls) != len(want) {
		t.Fatalf("notification sequence: %+v", notifier.calls)
	}
	for i, w := range want {
		if notifier.calls[i].Typ != w.typ || notifier.calls[i].Title != w.title {
			t.Fatalf("notification %d: want (%s,%s) got %+v", i, w.typ, w.title, notifier.calls[i])
		}
	}
}

func TestUnlockAchievementIdempotent(t *testing.T) {
	ledgers, _, notifier, svc := newTestService()

	if err := svc.UnlockAchievement(context.Background(), "u1", "first_like"); err != nil {
		t.Fatalf("first unlock: %v", err)
	}
	if ledgers.totals["u1"] != 50 {
		t.Fatalf("reward after first unlock: %d", ledgers.totals["u1"])
	}
	firstCalls := len(notifier.calls)

	if err := svc.UnlockAchievement(context.Background(), "u1", "first_like"); err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if ledgers.totals["u1"] != 50 {
		t.Fatalf("reward granted twice: %d", ledgers.totals["u1"])
	}
	if len(notifier.calls) != firstCalls {
		t.Fatalf("repeat unlock emitted notifications: %+v", notifier.calls[firstCalls:])
	}
}

func TestUnlockAchievementUnknownID(t *testing.T) {
	ledgers, _, notifier, svc := newTestService()
	if err := svc.UnlockAchievement(context.Background(), "u1", "level_2"); err != nil {
		t.Fatalf("unknown id should be a no-op: %v", err)
	}
	if ledgers.totals["u1"] != 0 || len(notifier.calls) != 0 {
		t.Fatal("unknown id mutated state")
	}
}

func TestAddXPInvalidAward(t *testing.T) {
	ledgers, _, notifier, svc := newTestService()
	ledgers.totals["u1"] = 480

	for _, amount := range []int{0, -10} {
		if _, err := svc.AddXP(context.Background(), "u1", amount, "bug"); !errors.Is(err, ErrInvalidAward) {
			t.Fatalf("amount=%d: want ErrInvalidAward, got %v", amount, err)
		}
	}
	if ledgers.totals["u1"] != 480 {
		t.Fatalf("ledger mutated: %d", ledgers.totals["u1"])
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("notifications emitted: %+v", notifier.calls)
	}
}

func TestAddXPNotAuthenticated(t *testing.T) {
	_, _, notifier, svc := newTestService()
	if _, err := svc.AddXP(context.Background(), "", 10, "like"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("want ErrNotAuthenticated, got %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Fatal("notification emitted without a session")
	}
}

func TestAddXPPersistenceFailureEmitsNothing(t *testing.T) {
	ledgers, _, notifier, svc := newTestService()
	ledgers.failure = errors.New("db down")

	if _, err := svc.AddXP(context.Background(), "u1", 25, "Me gusta en post"); err == nil {
		t.Fatal("want error from failed increment")
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("notifications emitted on failure: %+v", notifier.calls)
	}
}

func TestAddXPClampsAtMaxLevel(t *testing.T) {
	ledgers, _, notifier, svc := newTestService()
	ledgers.totals["u1"] = 41999

	after, err := svc.AddXP(context.Background(), "u1", 1000000, "Compra completada")
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if after.CurrentLevel != xp.MaxLevel {
		t.Fatalf("want clamp to %d, got %d", xp.MaxLevel, after.CurrentLevel)
	}

	// Further awards at the cap accumulate XP but never level up again.
	notifier.calls = nil
	after, err = svc.AddXP(context.Background(), "u1", 500, "Mensaje enviado")
	if err != nil {
		t.Fatalf("AddXP at cap: %v", err)
	}
	if after.CurrentLevel != xp.MaxLevel {
		t.Fatalf("level drifted past cap: %d", after.CurrentLevel)
	}
	for _, c := range notifier.calls {
		if c.Typ == model.NotificationTypeLevelUp {
			t.Fatalf("level-up emitted at cap: %+v", c)
		}
	}
}

func TestAchievementsJoinsUnlockState(t *testing.T) {
	_, _, _, svc := newTestService()
	ctx := context.Background()

	if err := svc.UnlockAchievement(ctx, "u1", "first_post"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	list, err := svc.Achievements(ctx, "u1")
	if err != nil {
		t.Fatalf("Achievements: %v", err)
	}
	if len(list) != len(xp.Achievements()) {
		t.Fatalf("want whole catalog, got %d entries", len(list))
	}
	for _, st := range list {
		want := st.ID == "first_post"
		if st.Unlocked != want {
			t.Fatalf("achievement %s unlocked=%v want=%v", st.ID, st.Unlocked, want)
		}
	}
}

func TestTotalXPMonotonic(t *testing.T) {
	_, _, _, svc := newTestService()
	ctx := context.Background()

	prevTotal, prevLevel := 0, 1
	awards := []int{25, 100, 50, 500, 1200, 75, 3000, 10}
	for _, amount := range awards {
		after, err := svc.AddXP(ctx, "u1", amount, "acción")
		if err != nil {
			t.Fatalf("AddXP(%d): %v", amount, err)
		}
		if after.TotalXP < prevTotal {
			t.Fatalf("totalXP decreased: %d -> %d", prevTotal, after.TotalXP)
		}
		if after.CurrentLevel < prevLevel {
			t.Fatalf("level decreased: %d -> %d", prevLevel, after.CurrentLevel)
		}
		if after.CurrentLevel != xp.LevelForXP(after.TotalXP) {
			t.Fatalf("cached level out of sync: %d vs %d", after.CurrentLevel, xp.LevelForXP(after.TotalXP))
		}
		prevTotal, prevLevel = after.TotalXP, after.CurrentLevel
	}
}
