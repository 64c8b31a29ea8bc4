package datastore

import (
	"context"
	"idlegrow/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePlayer(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Player)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Player)(nil)).Index("index_player_username").IfNotExists().Column("username").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindPlayerByID(ctx context.Context, db *bun.DB, userID int64) (*models.Player, error) {
	var player models.Player
	err := db.NewSelect().Model(&player).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func CreatePlayer(ctx context.Context, db *bun.DB, player *models.Player) (*models.Player, error) {
	_, err := db.NewInsert().Model(player).On("CONFLICT (id) DO NOTHING").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return player, nil
}

func UpdatePlayerProfile(ctx context.Context, db *bun.DB, player *models.Player) error {
	_, err := db.NewUpdate().Model(player).
		Column("first_name", "last_name", "username", "photo_url", "updated_at").
		WherePK().Exec(ctx)
	return err
}

func SetPlayerPremium(ctx context.Context, db *bun.DB, userID int64) error {
	_, err := db.NewUpdate().Model((*models.Player)(nil)).
		Set("is_premium = true").
		Where("id = ?", userID).Exec(ctx)
	return err
}

func GetPlayersByLimit(ctx context.Context, db *bun.DB, limit int, offset int) ([]models.Player, error) {
	var players []models.Player
	err := db.NewSelect().Model(&players).
		OrderExpr("id asc").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return players, nil
}

// AddPlayerXP bumps xp and recomputes level in one statement.
func AddPlayerXP(ctx context.Context, db *bun.DB, userID int64, xp int64) error {
	_, err := db.NewUpdate().Model((*models.Player)(nil)).
		Set("xp = xp + ?", xp).
		Set("level = floor(sqrt((xp + ?) / 100.0)) + 1", xp).
		Where("id = ?", userID).Exec(ctx)
	return err
}
