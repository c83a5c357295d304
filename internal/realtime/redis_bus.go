package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"fitlink-backend/internal/logger"
)

type redisBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// NewRedisBus connects to redis and verifies the connection before
// returning. channel defaults to "xp-ledger" when empty.
func NewRedisBus(log *logger.Logger, addr, channel string) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	if channel == "" {
		channel = "xp-ledger"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisBus{
		log:     log.With("service", "RedisLedgerBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, sig ChangeSignal) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("ledger bus not initialized")
	}
	raw, err := json.Marshal(sig)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *redisBus) Subscribe(ctx context.Context, onSignal func(ChangeSignal)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("ledger bus not initialized")
	}
	if onSignal == nil {
		return fmt.Errorf("onSignal callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var sig ChangeSignal
				if err := json.Unmarshal([]byte(m.Payload), &sig); err != nil {
					b.log.Warn("bad ledger signal payload", "error", err)
					continue
				}
				onSignal(sig)
			}
		}
	}()

	return nil
}

func (b *redisBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
