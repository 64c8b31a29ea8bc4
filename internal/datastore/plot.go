package datastore

import (
	"context"
	"time"

	"idlegrow/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePlantType(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PlantType)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PlantType)(nil)).Index("index_plant_type_slug").IfNotExists().Unique().Column("slug").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreateTablePlot(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Plot)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Plot)(nil)).Index("index_plot_user_id_position").IfNotExists().Unique().Column("user_id", "position").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertPlantTypes(ctx context.Context, db *bun.DB, plants []models.PlantType) error {
	_, err := db.NewInsert().Model(&plants).On("CONFLICT (slug) DO NOTHING").Exec(ctx)
	return err
}

func GetPlantTypes(ctx context.Context, db *bun.DB) ([]models.PlantType, error) {
	var plants []models.PlantType
	err := db.NewSelect().Model(&plants).OrderExpr("min_level asc, seed_price asc").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return plants, nil
}

func GetPlantTypeBySlug(ctx context.Context, db *bun.DB, slug string) (*models.PlantType, error) {
	var plant models.PlantType
	err := db.NewSelect().Model(&plant).Where("slug = ?", slug).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &plant, nil
}

func GetPlots(ctx context.Context, db *bun.DB, userID int64) ([]models.Plot, error) {
	var plots []models.Plot
	err := db.NewSelect().Model(&plots).
		Relation("Plant").
		Where("plot.user_id = ?", userID).
		OrderExpr("plot.position asc").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return plots, nil
}

func GetPlot(ctx context.Context, db *bun.DB, userID int64, position int) (*models.Plot, error) {
	var plot models.Plot
	err := db.NewSelect().Model(&plot).
		Relation("Plant").
		Where("plot.user_id = ?", userID).
		Where("plot.position = ?", position).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &plot, nil
}

func InsertPlots(ctx context.Context, db *bun.DB, plots []*models.Plot) error {
	_, err := db.NewInsert().Model(&plots).On("CONFLICT (user_id, position) DO NOTHING").Exec(ctx)
	return err
}

// SetPlotPlanted claims an empty plot. Returns false when a concurrent
// plant got there first, so the caller can bail before charging.
func SetPlotPlanted(ctx context.Context, db *bun.DB, plot *models.Plot, plantTypeID int, plantedAt time.Time) (bool, error) {
	res, err := db.NewUpdate().Model(plot).
		Set("plant_type_id = ?", plantTypeID).
		Set("planted_at = ?", plantedAt).
		Set("notified = false").
		WherePK().
		Where("plant_type_id is null").
		Exec(ctx)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	return n > 0, err
}

// ClearPlot empties a plot only if it still holds the harvested plant,
// so a raced double-harvest clears it once.
func ClearPlot(ctx context.Context, db *bun.DB, plot *models.Plot) (bool, error) {
	res, err := db.NewUpdate().Model(plot).
		Set("plant_type_id = null").
		Set("planted_at = null").
		Set("notified = true").
		WherePK().
		Where("plant_type_id = ?", plot.PlantTypeID).
		Where("planted_at = ?", plot.PlantedAt).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	return n > 0, err
}

// GetUnnotifiedReadyPlots returns planted plots past their base growth
// time that have not been messaged about yet. Growth boosts only make
// plants ready sooner, so this undercounts rather than spams.
func GetUnnotifiedReadyPlots(ctx context.Context, db *bun.DB, now time.Time, limit int) ([]models.Plot, error) {
	var plots []models.Plot
	err := db.NewSelect().Model(&plots).
		Relation("Plant").
		Where("plot.notified = false").
		Where("plot.planted_at is not null").
		Where("plot.planted_at + make_interval(mins => plant.grow_minutes) <= ?", now).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return plots, nil
}

func MarkPlotsNotified(ctx context.Context, db *bun.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := db.NewUpdate().Model((*models.Plot)(nil)).
		Set("notified = true").
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	return err
}
