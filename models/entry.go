package models

import "github.com/uptrace/bun"

// HorseMaster is the registry record of a horse.
type HorseMaster struct {
	bun.BaseModel `bun:"table:horse_masters,alias:hm"`

	ID   int    `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
}

// JockeyMaster is the registry record of a jockey.
type JockeyMaster struct {
	bun.BaseModel `bun:"table:jockey_masters,alias:jm"`

	ID   int    `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
}

// Entry is a runner declared for a race.
type Entry struct {
	bun.BaseModel `bun:"table:entries,alias:e"`

	ID            int      `bun:"id,pk,autoincrement" json:"id"`
	RaceID        int      `bun:"race_id,notnull" json:"race_id"`
	HorseID       int      `bun:"horse_id,notnull" json:"horse_id"`
	JockeyID      *int     `bun:"jockey_id" json:"jockey_id,omitempty"`
	BracketNumber int      `bun:"bracket_number,notnull" json:"bracket_number"`
	HorseNumber   int      `bun:"horse_number,notnull" json:"horse_number"`
	Sex           string   `bun:"sex,notnull" json:"sex"`
	Age           int      `bun:"age,notnull" json:"age"`
	JockeyWeight  *float64 `bun:"jockey_weight" json:"jockey_weight,omitempty"`

	Horse  *HorseMaster  `bun:"rel:belongs-to,join:horse_id=id" json:"-"`
	Jockey *JockeyMaster `bun:"rel:belongs-to,join:jockey_id=id" json:"-"`
}
