package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Player struct {
	bun.BaseModel `bun:"table:player"`
	ID            int64     `bun:"id,pk" json:"id"`
	FirstName     string    `bun:"first_name" json:"first_name"`
	LastName      string    `bun:"last_name" json:"last_name"`
	Username      string    `bun:"username" json:"username"`
	LanguageCode  string    `bun:"language_code" json:"language_code"`
	PhotoURL      string    `bun:"photo_url" json:"photo_url"`
	IsPremium     bool      `bun:"is_premium" json:"is_premium"`
	Level         int       `bun:"level,default:1" json:"level"`
	XP            int64     `bun:"xp,default:0" json:"xp"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`

	Coins         int64          `bun:"-" json:"coins"`
	Gems          int64          `bun:"-" json:"gems"`
	ActiveEffects []ActiveEffect `bun:"-" json:"active_effects"`
	IsNewPlayer   bool           `bun:"-" json:"is_new_player"`
}

// PlayerFromAuth only use in middleware
type PlayerFromAuth struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	PhotoURL     string `json:"photo_url"`
	IsPremium    bool   `json:"is_premium"`
}

// XP thresholds are quadratic: level n starts at 100*(n-1)^2 XP.
func LevelForXP(xp int64) int {
	level := 1
	for int64(100*level*level) <= xp {
		level++
	}
	return level
}
