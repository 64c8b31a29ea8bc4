package datastore

import (
	"context"
	"time"

	"idlegrow/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableGemPurchase(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.GemPurchase)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GemPurchase)(nil)).Index("index_gem_purchase_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GemPurchase)(nil)).Index("index_gem_purchase_session").IfNotExists().Unique().Column("stripe_session_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertGemPurchase(ctx context.Context, db *bun.DB, purchase *models.GemPurchase) error {
	_, err := db.NewInsert().Model(purchase).Exec(ctx)
	return err
}

func GetGemPurchaseBySession(ctx context.Context, db *bun.DB, sessionID string) (*models.GemPurchase, error) {
	var purchase models.GemPurchase
	err := db.NewSelect().Model(&purchase).Where("stripe_session_id = ?", sessionID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// MarkPurchaseCompleted flips pending→completed exactly once.
func MarkPurchaseCompleted(ctx context.Context, db *bun.DB, purchaseID string, now time.Time) (bool, error) {
	res, err := db.NewUpdate().Model((*models.GemPurchase)(nil)).
		Set("status = ?", models.PURCHASE_STATUS_COMPLETED).
		Set("updated_at = ?", now).
		Where("id = ?", purchaseID).
		Where("status = ?", models.PURCHASE_STATUS_PENDING).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	return n > 0, err
}
