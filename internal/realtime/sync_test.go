package realtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"fitlink-backend/internal/logger"
	"fitlink-backend/internal/model"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

type fakeLoader struct {
	mu      sync.Mutex
	ledgers map[string]model.XPLedger
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{ledgers: map[string]model.XPLedger{}}
}

func (f *fakeLoader) set(uid string, total, level int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ledgers[uid] = model.XPLedger{UID: uid, TotalXP: total, CurrentLevel: level}
}

func (f *fakeLoader) Get(_ context.Context, uid string) (*model.XPLedger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.ledgers[uid]
	l.UID = uid
	return &l, nil
}

func recvLedger(t *testing.T, ch <-chan model.XPLedger, timeout time.Duration) model.XPLedger {
	t.Helper()
	select {
	case l := <-ch:
		return l
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for ledger snapshot")
	}
	return model.XPLedger{}
}

func TestMemoryBusDelivers(t *testing.T) {
	bus := NewMemoryBus()
	got := make(chan ChangeSignal, 4)
	if err := bus.Subscribe(context.Background(), func(sig ChangeSignal) { got <- sig }); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := bus.Publish(context.Background(), ChangeSignal{UID: "u1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case sig := <-got:
		if sig.UID != "u1" {
			t.Fatalf("uid=%s", sig.UID)
		}
	case <-time.After(time.Second):
		t.Fatal("no signal delivered")
	}
}

func TestMemoryBusRespectsContextCancel(t *testing.T) {
	bus := NewMemoryBus()
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan ChangeSignal, 4)
	if err := bus.Subscribe(ctx, func(sig ChangeSignal) { got <- sig }); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	cancel()
	_ = bus.Publish(context.Background(), ChangeSignal{UID: "u1"})
	select {
	case sig := <-got:
		t.Fatalf("delivered after cancel: %+v", sig)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSyncAdapterRefreshesOnSignal(t *testing.T) {
	bus := NewMemoryBus()
	loader := newFakeLoader()
	loader.set("u1", 510, 2)

	adapter := NewSyncAdapter(mustTestLogger(t), bus, loader)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer adapter.Close()

	if _, ok := adapter.Ledger("u1"); ok {
		t.Fatal("cache should start empty")
	}

	ch, cancelWatch := adapter.Watch("u1")
	defer cancelWatch()

	if err := bus.Publish(context.Background(), ChangeSignal{UID: "u1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	snap := recvLedger(t, ch, time.Second)
	if snap.TotalXP != 510 || snap.CurrentLevel != 2 {
		t.Fatalf("snapshot: %+v", snap)
	}
	if cached, ok := adapter.Ledger("u1"); !ok || cached.TotalXP != 510 {
		t.Fatalf("cache: %+v ok=%v", cached, ok)
	}

	// a later write is picked up wholesale, not merged
	loader.set("u1", 1250, 3)
	if err := bus.Publish(context.Background(), ChangeSignal{UID: "u1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	snap = recvLedger(t, ch, time.Second)
	if snap.TotalXP != 1250 || snap.CurrentLevel != 3 {
		t.Fatalf("refreshed snapshot: %+v", snap)
	}
}

func TestSyncAdapterCoalescesSignals(t *testing.T) {
	bus := NewMemoryBus()
	loader := newFakeLoader()
	loader.set("u1", 100, 1)

	adapter := NewSyncAdapter(mustTestLogger(t), bus, loader)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer adapter.Close()

	for i := 0; i < 20; i++ {
		_ = bus.Publish(context.Background(), ChangeSignal{UID: "u1"})
	}
	loader.set("u1", 700, 2)
	_ = bus.Publish(context.Background(), ChangeSignal{UID: "u1"})

	// The burst may collapse into fewer refreshes; the cache must settle on
	// the latest persisted state.
	deadline := time.After(2 * time.Second)
	for {
		if l, ok := adapter.Ledger("u1"); ok && l.TotalXP == 700 {
			return
		}
		select {
		case <-deadline:
			l, _ := adapter.Ledger("u1")
			t.Fatalf("cache never settled on latest state: %+v", l)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSyncAdapterWatchCancel(t *testing.T) {
	bus := NewMemoryBus()
	loader := newFakeLoader()
	loader.set("u1", 50, 1)

	adapter := NewSyncAdapter(mustTestLogger(t), bus, loader)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer adapter.Close()

	ch, cancelWatch := adapter.Watch("u1")
	cancelWatch()

	_ = bus.Publish(context.Background(), ChangeSignal{UID: "u1"})
	select {
	case l, ok := <-ch:
		if ok {
			t.Fatalf("canceled watch received %+v", l)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSyncAdapterIgnoresEmptyUID(t *testing.T) {
	bus := NewMemoryBus()
	loader := newFakeLoader()
	adapter := NewSyncAdapter(mustTestLogger(t), bus, loader)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer adapter.Close()

	_ = bus.Publish(context.Background(), ChangeSignal{})
	time.Sleep(50 * time.Millisecond)
	if _, ok := adapter.Ledger(""); ok {
		t.Fatal("empty uid should not be cached")
	}
}
