package datastore

import (
	"context"

	"idlegrow/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableAdReward(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.AdReward)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.AdReward)(nil)).Index("index_ad_reward_min_level").IfNotExists().Column("min_level").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertAdRewards(ctx context.Context, db *bun.DB, rewards []models.AdReward) error {
	_, err := db.NewInsert().Model(&rewards).Exec(ctx)
	return err
}

func GetAdRewardsForLevel(ctx context.Context, db *bun.DB, level int) ([]models.AdReward, error) {
	var rewards []models.AdReward
	err := db.NewSelect().Model(&rewards).
		Where("active = true").
		Where("min_level <= ?", level).
		OrderExpr("position asc").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return rewards, nil
}
