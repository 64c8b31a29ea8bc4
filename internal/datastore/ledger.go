package datastore

import (
	"context"
	"idlegrow/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableCoinLedger(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.CoinEntry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.CoinEntry)(nil)).Index("index_coin_ledger_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.CoinEntry)(nil)).Index("index_coin_ledger_user_id_action").IfNotExists().Unique().Column("user_id", "action").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreateTableGemLedger(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.GemEntry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GemEntry)(nil)).Index("index_gem_ledger_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GemEntry)(nil)).Index("index_gem_ledger_user_id_action").IfNotExists().Unique().Column("user_id", "action").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertCoinEntry(ctx context.Context, db *bun.DB, entry *models.CoinEntry) error {
	_, err := db.NewInsert().Model(entry).On("CONFLICT (user_id, action) DO NOTHING").Exec(ctx)
	return err
}

func InsertGemEntry(ctx context.Context, db *bun.DB, entry *models.GemEntry) error {
	_, err := db.NewInsert().Model(entry).On("CONFLICT (user_id, action) DO NOTHING").Exec(ctx)
	return err
}

func GetTotalCoins(ctx context.Context, db *bun.DB, userID int64) (int64, error) {
	var total models.TotalCoins
	err := db.NewSelect().
		ColumnExpr("COALESCE(SUM(coins), 0) as total_coins").
		ColumnExpr("user_id").
		TableExpr("coin_ledger").
		Where("user_id = ?", userID).
		GroupExpr("user_id").
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}

	return total.TotalCoins, nil
}

func GetTotalGems(ctx context.Context, db *bun.DB, userID int64) (int64, error) {
	var total models.TotalGems
	err := db.NewSelect().
		ColumnExpr("COALESCE(SUM(gems), 0) as total_gems").
		ColumnExpr("user_id").
		TableExpr("gem_ledger").
		Where("user_id = ?", userID).
		GroupExpr("user_id").
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}

	return total.TotalGems, nil
}
