package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"idlegrow/internal/datastore"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
	tele "gopkg.in/telebot.v3"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

const textStart = `🌱 Welcome to Idle Grow! 🌱

Plant seeds, watch them grow and harvest coins, even while you sleep.

🎁 Your starter plots are ready.

‼️ Tip: Pin Idle Grow at the top of your Telegram for fastest access.
`

func main() {
	vs, err := env.EnvsRequired(
		"BOT_TOKEN",
		"DB_DSN",
	)
	if err != nil {
		log.Fatal(err)
	}

	app := &cli.App{
		Name: "bot",
		Commands: []*cli.Command{
			commandListen(vs),
			commandBroadcast(vs),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandListen(vs map[string]string) *cli.Command {
	return &cli.Command{
		Name:  "listen",
		Usage: "long-poll telegram updates",
		Action: func(c *cli.Context) error {
			db, err := getDb()
			if err != nil {
				return err
			}

			pref := tele.Settings{
				Token:  vs["BOT_TOKEN"],
				Poller: &tele.LongPoller{Timeout: 10 * time.Second},
			}

			b, err := tele.NewBot(pref)
			if err != nil {
				return err
			}

			menu := &tele.ReplyMarkup{
				InlineKeyboard: [][]tele.InlineButton{
					{{Text: "🌱 Open Garden", WebApp: &tele.WebApp{URL: os.Getenv("TELEGRAM_WEB_APP_URL")}}},
					{{Text: "🔊 Latest news", URL: os.Getenv("TELEGRAM_ANNOUNCEMENT_URL")}},
				},
			}

			b.Handle("/start", func(c tele.Context) error {
				return c.Send(textStart, &tele.SendOptions{
					ParseMode:   tele.ModeHTML,
					ReplyMarkup: menu,
				})
			})

			b.Handle("/garden", func(c tele.Context) error {
				ctx := context.Background()
				plots, err := datastore.GetPlots(ctx, db, c.Sender().ID)
				if err != nil || len(plots) == 0 {
					return c.Send("No garden yet. Open the app to start growing! 🌱", menu)
				}

				now := time.Now()
				var sb strings.Builder
				for _, plot := range plots {
					switch {
					case plot.Empty() || plot.Plant == nil:
						sb.WriteString("🟫 empty\n")
					case plot.Ready(now, 1):
						sb.WriteString(fmt.Sprintf("%s %s: ready!\n", plot.Plant.Emoji, plot.Plant.Name))
					default:
						left := plot.PlantedAt.Add(time.Duration(plot.Plant.GrowMinutes) * time.Minute).Sub(now).Round(time.Minute)
						sb.WriteString(fmt.Sprintf("%s %s: %s left\n", plot.Plant.Emoji, plot.Plant.Name, left))
					}
				}

				return c.Send(sb.String(), menu)
			})

			log.Println("Bot listening")
			b.Start()
			return nil
		},
	}
}

// commandBroadcast sends an announcement to every known player, paced
// to stay under the telegram per-second send cap.
func commandBroadcast(vs map[string]string) *cli.Command {
	return &cli.Command{
		Name: "broadcast",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "text",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			pref := tele.Settings{
				Token:  vs["BOT_TOKEN"],
				Poller: &tele.LongPoller{Timeout: 10 * time.Second},
			}

			b, err := tele.NewBot(pref)
			if err != nil {
				return err
			}

			text := c.String("text")
			limit := 100
			offset := 0
			sent := 0

			for {
				players, err := datastore.GetPlayersByLimit(ctx, db, limit, offset)
				if err != nil {
					return err
				}
				if len(players) == 0 {
					break
				}

				for _, player := range players {
					_, err := b.Send(&tele.User{ID: player.ID}, text, &tele.SendOptions{ParseMode: tele.ModeHTML})
					if err != nil {
						log.Println(player.ID, err)
						continue
					}
					sent++
					time.Sleep(50 * time.Millisecond)
				}

				offset += limit
				log.Println("Broadcast progress:", offset)
			}

			log.Println("Broadcast done:", sent, "messages")
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
