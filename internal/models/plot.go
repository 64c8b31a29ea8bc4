package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

type PlantType struct {
	bun.BaseModel `bun:"table:plant_type"`
	ID            int    `bun:"id,pk,autoincrement" json:"id"`
	Slug          string `bun:"slug" json:"slug"`
	Name          string `bun:"name" json:"name"`
	Emoji         string `bun:"emoji" json:"emoji"`
	SeedPrice     int64  `bun:"seed_price" json:"seed_price"`
	Yield         int64  `bun:"yield" json:"yield"`
	GrowMinutes   int    `bun:"grow_minutes" json:"grow_minutes"`
	XP            int64  `bun:"xp" json:"xp"`
	MinLevel      int    `bun:"min_level,default:1" json:"min_level"`
	Rarity        string `bun:"rarity" json:"rarity"`
}

var DefaultPlantTypes = []PlantType{
	{Slug: "sprout", Name: "Sprout", Emoji: "🌱", SeedPrice: 10, Yield: 25, GrowMinutes: 2, XP: 5, MinLevel: 1, Rarity: RarityCommon},
	{Slug: "carrot", Name: "Carrot", Emoji: "🥕", SeedPrice: 50, Yield: 140, GrowMinutes: 10, XP: 15, MinLevel: 1, Rarity: RarityCommon},
	{Slug: "tomato", Name: "Tomato", Emoji: "🍅", SeedPrice: 200, Yield: 620, GrowMinutes: 30, XP: 40, MinLevel: 2, Rarity: RarityUncommon},
	{Slug: "sunflower", Name: "Sunflower", Emoji: "🌻", SeedPrice: 800, Yield: 2700, GrowMinutes: 120, XP: 120, MinLevel: 4, Rarity: RarityUncommon},
	{Slug: "pumpkin", Name: "Pumpkin", Emoji: "🎃", SeedPrice: 3000, Yield: 11000, GrowMinutes: 480, XP: 400, MinLevel: 6, Rarity: RarityRare},
	{Slug: "golden-rose", Name: "Golden Rose", Emoji: "🌹", SeedPrice: 12000, Yield: 50000, GrowMinutes: 1440, XP: 1500, MinLevel: 9, Rarity: RarityLegendary},
}

type Plot struct {
	bun.BaseModel `bun:"table:plot"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64      `bun:"user_id" json:"user_id"`
	Position      int        `bun:"position" json:"position"`
	PlantTypeID   *int       `bun:"plant_type_id" json:"plant_type_id"`
	PlantedAt     *time.Time `bun:"planted_at" json:"planted_at"`
	Notified      bool       `bun:"notified,default:true" json:"-"`

	Plant   *PlantType `bun:"rel:belongs-to,join:plant_type_id=id" json:"plant,omitempty"`
	ReadyAt *time.Time `bun:"-" json:"ready_at,omitempty"`
}

// GrowthDuration divides the base time by the growth multiplier, so a
// ×2.0 multiplier halves the wait.
func GrowthDuration(base time.Duration, growthMultiplier float64) time.Duration {
	if growthMultiplier <= 0 {
		growthMultiplier = 1
	}
	return time.Duration(float64(base) / growthMultiplier)
}

func (p *Plot) Empty() bool {
	return p.PlantTypeID == nil || p.PlantedAt == nil
}

// Ready reports whether the plant finished growing under the given
// multiplier. Empty plots are never ready.
func (p *Plot) Ready(now time.Time, growthMultiplier float64) bool {
	if p.Empty() || p.Plant == nil {
		return false
	}
	grow := GrowthDuration(time.Duration(p.Plant.GrowMinutes)*time.Minute, growthMultiplier)
	return !now.Before(p.PlantedAt.Add(grow))
}
