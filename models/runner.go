package models

import "github.com/uptrace/bun"

// Runner is a person who has participated in races.
// Optional columns are pointers so NULL round-trips cleanly.
type Runner struct {
	bun.BaseModel `bun:"table:runners,alias:rn"`

	ID           int      `bun:"id,pk,autoincrement" json:"id"`
	Name         string   `bun:"name,notnull" json:"name"`
	BirthDate    *string  `bun:"birth_date,type:date" json:"birth_date,omitempty"`
	Gender       *string  `bun:"gender" json:"gender,omitempty"`
	Nationality  *string  `bun:"nationality" json:"nationality,omitempty"`
	ProfileImage *string  `bun:"profile_image" json:"profile_image,omitempty"`
	Height       *float64 `bun:"height" json:"height,omitempty"`
	Weight       *float64 `bun:"weight" json:"weight,omitempty"`
	Bio          *string  `bun:"bio" json:"bio,omitempty"`

	Results []*Result `bun:"rel:has-many,join:id=runner_id" json:"-"`
}
