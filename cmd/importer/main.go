// cmd/importer/main.go
// Imports legacy marathon data from a MySQL database into the local
// PostgreSQL database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/marathon?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/importer
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/jwkim-dev/marathonapi/config"
	bundb "github.com/jwkim-dev/marathonapi/db"
	"github.com/jwkim-dev/marathonapi/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/marathon?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// Disable FK enforcement so we can load in bulk without strict ordering
	if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"runners", func() (int, error) { return importRunners(ctx, myDB, pgDB) }},
		{"races", func() (int, error) { return importRaces(ctx, myDB, pgDB) }},
		{"results", func() (int, error) { return importResults(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("import %s: %v", s.name, err)
		}
		log.Printf("%-10s  %d rows imported", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("import complete")
}

// --- helpers ---

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func fmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func nullDate(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := fmtDate(t.Time)
	return &s
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// --- per-table imports ---

func importRunners(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT id, name, birthDate, gender, nationality, profileImage,
		        height, weight, bio
		 FROM runners`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Runner
	total := 0
	for rows.Next() {
		var (
			id           int
			name         string
			birthDate    sql.NullTime
			gender       sql.NullString
			nationality  sql.NullString
			profileImage sql.NullString
			height       sql.NullFloat64
			weight       sql.NullFloat64
			bio          sql.NullString
		)
		if err := rows.Scan(&id, &name, &birthDate, &gender, &nationality,
			&profileImage, &height, &weight, &bio); err != nil {
			return total, err
		}
		batch = append(batch, models.Runner{
			ID:           id,
			Name:         name,
			BirthDate:    nullDate(birthDate),
			Gender:       nullStr(gender),
			Nationality:  nullStr(nationality),
			ProfileImage: nullStr(profileImage),
			Height:       nullFloat(height),
			Weight:       nullFloat(weight),
			Bio:          nullStr(bio),
		})
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func importRaces(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT id, name, date, location, distance, elevationGain, type,
		        description, isOfficial
		 FROM races`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Race
	total := 0
	for rows.Next() {
		var (
			id            int
			name          string
			date          time.Time
			location      string
			distance      float64
			elevationGain sql.NullFloat64
			raceType      string
			description   sql.NullString
			isOfficial    bool
		)
		if err := rows.Scan(&id, &name, &date, &location, &distance,
			&elevationGain, &raceType, &description, &isOfficial); err != nil {
			return total, err
		}
		batch = append(batch, models.Race{
			ID:            id,
			Name:          name,
			Date:          fmtDate(date),
			Location:      location,
			Distance:      distance,
			ElevationGain: nullFloat(elevationGain),
			Type:          raceType,
			Description:   nullStr(description),
			IsOfficial:    isOfficial,
		})
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func importResults(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT id, runnerID, raceID, finishTime, overallRank, ageGroupRank,
		        genderRank, bibNumber, pace, notes
		 FROM results`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Result
	total := 0
	for rows.Next() {
		var (
			id           int
			runnerID     int
			raceID       int
			finishTime   string
			overallRank  sql.NullInt64
			ageGroupRank sql.NullInt64
			genderRank   sql.NullInt64
			bibNumber    sql.NullString
			pace         sql.NullFloat64
			notes        sql.NullString
		)
		if err := rows.Scan(&id, &runnerID, &raceID, &finishTime, &overallRank,
			&ageGroupRank, &genderRank, &bibNumber, &pace, &notes); err != nil {
			return total, err
		}
		batch = append(batch, models.Result{
			ID:           id,
			RunnerID:     runnerID,
			RaceID:       raceID,
			FinishTime:   finishTime,
			OverallRank:  nullInt(overallRank),
			AgeGroupRank: nullInt(ageGroupRank),
			GenderRank:   nullInt(genderRank),
			BibNumber:    nullStr(bibNumber),
			Pace:         nullFloat(pace),
			Notes:        nullStr(notes),
		})
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"runners_id_seq", "runners", "id"},
		{"races_id_seq", "races", "id"},
		{"results_id_seq", "results", "id"},
	}
	for _, s := range seqs {
		q := "SELECT setval('" + s.seq + "', COALESCE((SELECT MAX(" + s.col + ") FROM " + s.table + "), 1))"
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset sequence %s: %v", s.seq, err)
		}
	}
}
