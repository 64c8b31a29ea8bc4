package datastore

import (
	"context"
	"time"

	"idlegrow/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableActiveEffect(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ActiveEffect)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ActiveEffect)(nil)).Index("index_active_effect_user_id_expires_at").IfNotExists().Column("user_id", "expires_at").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ActiveEffect)(nil)).Index("index_active_effect_user_id_source").IfNotExists().Unique().Column("user_id", "source").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertActiveEffect(ctx context.Context, db *bun.DB, effect *models.ActiveEffect) error {
	_, err := db.NewInsert().Model(effect).On("CONFLICT (user_id, source) DO NOTHING").Exec(ctx)
	return err
}

func GetActiveEffects(ctx context.Context, db *bun.DB, userID int64, now time.Time) ([]models.ActiveEffect, error) {
	var effects []models.ActiveEffect
	err := db.NewSelect().Model(&effects).
		Where("user_id = ?", userID).
		Where("expires_at > ?", now).
		OrderExpr("expires_at asc").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return effects, nil
}

func DeleteExpiredEffects(ctx context.Context, db *bun.DB, before time.Time) (int64, error) {
	res, err := db.NewDelete().Model((*models.ActiveEffect)(nil)).
		Where("expires_at <= ?", before).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
