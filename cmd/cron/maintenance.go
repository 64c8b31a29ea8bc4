package main

import (
	"context"
	"log"
	"time"

	"idlegrow/internal/datastore"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

// MaintenanceJob sweeps state the read paths already treat as dead:
// yesterday's ad counters and expired effect rows.
type MaintenanceJob struct {
	Db *bun.DB
}

func NewMaintenanceJob(db *bun.DB) *MaintenanceJob {
	return &MaintenanceJob{Db: db}
}

func (j *MaintenanceJob) Start(cronRunner *cron.Cron) {
	_, err := cronRunner.AddFunc("5 0 * * *", j.resetAdCounts)
	log.Println("Ad reset cronjob registered:", err)

	_, err = cronRunner.AddFunc("@hourly", j.cleanupEffects)
	log.Println("Effects cleanup cronjob registered:", err)
}

func (j *MaintenanceJob) resetAdCounts() {
	ctx := context.Background()
	n, err := datastore.ResetStaleDailyCounts(ctx, j.Db, time.Now())
	if err != nil {
		log.Println(err)
		return
	}
	log.Println("Ad daily reset:", n, "rows")
}

func (j *MaintenanceJob) cleanupEffects() {
	ctx := context.Background()
	n, err := datastore.DeleteExpiredEffects(ctx, j.Db, time.Now())
	if err != nil {
		log.Println(err)
		return
	}
	if n > 0 {
		log.Println("Expired effects removed:", n)
	}
}
