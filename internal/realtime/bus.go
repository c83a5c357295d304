package realtime

import "context"

// ChangeSignal says that a user's XP ledger row changed. It carries no
// payload beyond the scope; consumers always re-fetch from the store rather
// than trusting pushed state.
type ChangeSignal struct {
	UID string `json:"uid"`
}

// Bus delivers ledger change signals between the write path and any number
// of listening processes.
type Bus interface {
	Publish(ctx context.Context, sig ChangeSignal) error
	Subscribe(ctx context.Context, onSignal func(ChangeSignal)) error
	Close() error
}
