package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race is a single race on a race card.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID         int        `bun:"id,pk,autoincrement" json:"id"`
	RaceTime   *time.Time `bun:"race_time" json:"race_time"`
	Track      string     `bun:"track,notnull" json:"track"`
	Number     int        `bun:"number,notnull" json:"number"`
	Name       string     `bun:"name,notnull" json:"name"`
	CourseType string     `bun:"course_type,notnull" json:"course_type"`
	Distance   int        `bun:"distance,notnull" json:"distance"`

	Entries         []*Entry          `bun:"rel:has-many,join:id=race_id" json:"-"`
	Predicts        []*Predict        `bun:"rel:has-many,join:id=race_id" json:"-"`
	Results         []*Result         `bun:"rel:has-many,join:id=race_id" json:"-"`
	Payouts         []*Payout         `bun:"rel:has-many,join:id=race_id" json:"-"`
	RecommendedBets []*RecommendedBet `bun:"rel:has-many,join:id=race_id" json:"-"`
}
