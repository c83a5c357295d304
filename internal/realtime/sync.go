package realtime

import (
	"context"
	"sync"

	"fitlink-backend/internal/logger"
	"fitlink-backend/internal/model"
)

// LedgerLoader is the read side of the ledger store. Satisfied by
// repository.XPLedgerRepository.
type LedgerLoader interface {
	Get(ctx context.Context, uid string) (*model.XPLedger, error)
}

// SyncAdapter listens for ledger change signals and refreshes a local
// snapshot per user by re-reading the store. Snapshots are replaced
// wholesale; signals arriving while a refresh is in flight collapse into a
// single follow-up refresh.
type SyncAdapter struct {
	log    *logger.Logger
	bus    Bus
	loader LedgerLoader

	mu         sync.Mutex
	cache      map[string]model.XPLedger
	refreshing map[string]bool
	dirty      map[string]bool
	watchers   map[string]map[chan model.XPLedger]struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

func NewSyncAdapter(log *logger.Logger, bus Bus, loader LedgerLoader) *SyncAdapter {
	return &SyncAdapter{
		log:        log.With("service", "LedgerSync"),
		bus:        bus,
		loader:     loader,
		cache:      make(map[string]model.XPLedger),
		refreshing: make(map[string]bool),
		dirty:      make(map[string]bool),
		watchers:   make(map[string]map[chan model.XPLedger]struct{}),
	}
}

// Start subscribes to the bus. The subscription lives until Close or until
// the given context is canceled.
func (a *SyncAdapter) Start(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)
	return a.bus.Subscribe(a.ctx, a.onSignal)
}

func (a *SyncAdapter) Close() {
	if a.cancel != nil {
		a.cancel()
	}
}

// Ledger returns the cached snapshot for uid, if one has been loaded.
func (a *SyncAdapter) Ledger(uid string) (model.XPLedger, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.cache[uid]
	return l, ok
}

// Watch delivers a snapshot after every completed refresh for uid. The
// channel holds only the latest snapshot; slow consumers see coalesced
// updates. The returned func tears the watch down.
func (a *SyncAdapter) Watch(uid string) (<-chan model.XPLedger, func()) {
	ch := make(chan model.XPLedger, 1)
	a.mu.Lock()
	if a.watchers[uid] == nil {
		a.watchers[uid] = make(map[chan model.XPLedger]struct{})
	}
	a.watchers[uid][ch] = struct{}{}
	a.mu.Unlock()

	cancel := func() {
		a.mu.Lock()
		if set, ok := a.watchers[uid]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(a.watchers, uid)
			}
		}
		a.mu.Unlock()
	}
	return ch, cancel
}

func (a *SyncAdapter) onSignal(sig ChangeSignal) {
	if sig.UID == "" {
		return
	}
	a.mu.Lock()
	if a.refreshing[sig.UID] {
		a.dirty[sig.UID] = true
		a.mu.Unlock()
		return
	}
	a.refreshing[sig.UID] = true
	a.mu.Unlock()
	go a.refresh(sig.UID)
}

func (a *SyncAdapter) refresh(uid string) {
	for {
		ledger, err := a.loader.Get(a.ctx, uid)
		if err != nil {
			a.log.Warn("ledger refresh failed", "uid", uid, "error", err)
		} else {
			a.mu.Lock()
			a.cache[uid] = *ledger
			targets := make([]chan model.XPLedger, 0, len(a.watchers[uid]))
			for ch := range a.watchers[uid] {
				targets = append(targets, ch)
			}
			a.mu.Unlock()
			for _, ch := range targets {
				// latest-wins: displace a pending snapshot instead of blocking
				select {
				case ch <- *ledger:
				default:
					select {
					case <-ch:
					default:
					}
					select {
					case ch <- *ledger:
					default:
					}
				}
			}
		}

		a.mu.Lock()
		if a.dirty[uid] {
			delete(a.dirty, uid)
			a.mu.Unlock()
			continue
		}
		delete(a.refreshing, uid)
		a.mu.Unlock()
		return
	}
}
