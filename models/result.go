package models

import "github.com/uptrace/bun"

// Result is one runner's outcome in one race. finish_time is a time-of-day
// value stored as HH:MM:SS, so lexicographic order matches duration order.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID           int      `bun:"id,pk,autoincrement" json:"id"`
	RunnerID     int      `bun:"runner_id,notnull" json:"runner_id"`
	RaceID       int      `bun:"race_id,notnull" json:"race_id"`
	FinishTime   string   `bun:"finish_time,notnull,type:time" json:"finish_time"`
	OverallRank  *int     `bun:"overall_rank" json:"overall_rank,omitempty"`
	AgeGroupRank *int     `bun:"age_group_rank" json:"age_group_rank,omitempty"`
	GenderRank   *int     `bun:"gender_rank" json:"gender_rank,omitempty"`
	BibNumber    *string  `bun:"bib_number" json:"bib_number,omitempty"`
	Pace         *float64 `bun:"pace" json:"pace,omitempty"`
	Notes        *string  `bun:"notes" json:"notes,omitempty"`

	Runner *Runner `bun:"rel:belongs-to,join:runner_id=id" json:"-"`
	Race   *Race   `bun:"rel:belongs-to,join:race_id=id" json:"-"`
}
