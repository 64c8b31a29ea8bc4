package main

import (
	"context"
	"log"
	"time"

	"idlegrow/internal/datastore"
	"idlegrow/internal/datastore/redis_store"
	"idlegrow/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

const notifyBatchLimit = 200

// GardenNotifyJob pings players whose plants finished growing. The
// redis SetNX plus the notified flag keeps a plot to one message even
// when runs overlap.
type GardenNotifyJob struct {
	Redis redis.UniversalClient
	Db    *bun.DB
	Bot   *services.Bot
}

func NewGardenNotifyJob(redis redis.UniversalClient, db *bun.DB) *GardenNotifyJob {
	bot, err := services.NewBot(getBotToken())
	if err != nil {
		log.Println(err)
	}

	return &GardenNotifyJob{
		Redis: redis,
		Db:    db,
		Bot:   bot,
	}
}

func (j *GardenNotifyJob) Start(cronRunner *cron.Cron) {
	schedule := "@every 5m"
	timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, services.CONFIG_CRONJOB_GARDEN_NOTIFY)
	if err == nil && timeline != nil && timeline.Value != "" {
		schedule = timeline.Value
	}

	_, err = cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Garden notify cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
}

func (j *GardenNotifyJob) runScheduledTask() {
	ctx := context.Background()

	plots, err := datastore.GetUnnotifiedReadyPlots(ctx, j.Db, time.Now(), notifyBatchLimit)
	if err != nil {
		log.Println(err)
		return
	}
	if len(plots) == 0 {
		return
	}

	notifiedUsers := map[int64]bool{}
	done := make([]int64, 0, len(plots))

	for _, plot := range plots {
		fresh, err := redis_store.MarkPlotNotified(ctx, j.Redis, plot.UserID, plot.ID, 24*time.Hour)
		if err != nil {
			log.Println(err)
			continue
		}

		done = append(done, plot.ID)
		if !fresh || notifiedUsers[plot.UserID] {
			continue
		}

		notifiedUsers[plot.UserID] = true
		if err := j.Bot.SendGardenReadyMsg(plot.UserID); err != nil {
			log.Println(err)
		}
	}

	if err := datastore.MarkPlotsNotified(ctx, j.Db, done); err != nil {
		log.Println(err)
	}

	log.Println("Garden notify:", len(done), "plots,", len(notifiedUsers), "players")
}
