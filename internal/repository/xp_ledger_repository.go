package repository

import (
	"context"

	"fitlink-backend/internal/model"
	"fitlink-backend/internal/realtime"
	"fitlink-backend/internal/xp"
	"gorm.io/gorm"
)

type XPLedgerRepository interface {
	Get(ctx context.Context, uid string) (*model.XPLedger, error)
	// Increment atomically adds amount to the user's total and recomputes
	// the level, returning the ledger before and after the award.
	Increment(ctx context.Context, uid string, amount int) (before *model.XPLedger, after *model.XPLedger, err error)
	SetDB(db *gorm.DB)
	SetBus(bus realtime.Bus)
}

type xpLedgerRepository struct {
	db  *gorm.DB
	bus realtime.Bus
}

func NewXPLedgerRepository(db *gorm.DB) XPLedgerRepository {
	return &xpLedgerRepository{db: db}
}

func (r *xpLedgerRepository) Get(ctx context.Context, uid string) (*model.XPLedger, error) {
	var l model.XPLedger
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		FirstOrCreate(&l, &model.XPLedger{UID: uid, TotalXP: 0, CurrentLevel: 1}).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *xpLedgerRepository) Increment(ctx context.Context, uid string, amount int) (*model.XPLedger, *model.XPLedger, error) {
	var before, after model.XPLedger
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("uid = ?", uid).
			FirstOrCreate(&before, &model.XPLedger{UID: uid, TotalXP: 0, CurrentLevel: 1}).Error; err != nil {
			return err
		}
		// A single relative update so concurrent awards cannot lose each other.
		if err := tx.Model(&model.XPLedger{}).
			Where("uid = ?", uid).
			Update("total_xp", gorm.Expr("total_xp + ?", amount)).Error; err != nil {
			return err
		}
		if err := tx.Where("uid = ?", uid).First(&after).Error; err != nil {
			return err
		}
		after.CurrentLevel = xp.LevelForXP(after.TotalXP)
		return tx.Model(&model.XPLedger{}).
			Where("uid = ?", uid).
			Update("current_level", after.CurrentLevel).Error
	})
	if err != nil {
		return nil, nil, err
	}
	if r.bus != nil {
		// change feed for the sync adapter; never fails the award
		_ = r.bus.Publish(ctx, realtime.ChangeSignal{UID: uid})
	}
	return &before, &after, nil
}

func (r *xpLedgerRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *xpLedgerRepository) SetBus(bus realtime.Bus) {
	r.bus = bus
}
