package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"idlegrow/internal/datastore"
	"idlegrow/internal/models"
	"idlegrow/internal/services"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandSeedPlants(),
			commandSeedAdRewards(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePlayer(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableCoinLedger(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableGemLedger(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableAdCooldown(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableAdReward(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableActiveEffect(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePlantType(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePlot(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableGemPurchase(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert default configs to db
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{Key: services.CONFIG_SERVER_MODE, Value: services.SERVER_MODE_PRODUCTION},
				{Key: services.CONFIG_AD_MAX_DAILY, Value: "5"},
				{Key: services.CONFIG_AD_COOLDOWN_MINUTES, Value: "120"},
				{Key: services.CONFIG_WELCOME_COINS, Value: "100"},
				{Key: services.CONFIG_STARTER_PLOTS, Value: "4"},
				{Key: services.CONFIG_SEED_PACK_GEM_PRICE, Value: "25"},
				{Key: services.CONFIG_CRONJOB_GARDEN_NOTIFY, Value: "@every 5m"},
				{Key: services.CONFIG_NOTIFY_GARDEN_READY, Value: "1"},
			}

			for _, config := range configs {
				err = datastore.InsertConfig(ctx, db, config)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func commandSeedPlants() *cli.Command {
	return &cli.Command{
		Name:        "seed-plants",
		Description: "Insert the default plant catalog",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.InsertPlantTypes(ctx, db, models.DefaultPlantTypes)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Seed success")

			return nil
		},
	}
}

func commandSeedAdRewards() *cli.Command {
	return &cli.Command{
		Name:        "seed-rewards",
		Description: "Insert the default ad reward catalog",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.InsertAdRewards(ctx, db, models.DefaultAdRewards)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Seed success")

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
