package models

import "github.com/uptrace/bun"

// Race is a single event instance: one marathon, half, 10K etc. on one day.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID            int      `bun:"id,pk,autoincrement" json:"id"`
	Name          string   `bun:"name,notnull" json:"name"`
	Date          string   `bun:"date,notnull,type:date" json:"date"`
	Location      string   `bun:"location,notnull" json:"location"`
	Distance      float64  `bun:"distance,notnull" json:"distance"`
	ElevationGain *float64 `bun:"elevation_gain" json:"elevation_gain,omitempty"`
	Type          string   `bun:"type,notnull" json:"type"`
	Description   *string  `bun:"description" json:"description,omitempty"`
	IsOfficial    bool     `bun:"is_official,notnull,default:true" json:"is_official"`

	Results []*Result `bun:"rel:has-many,join:id=race_id" json:"-"`
}
