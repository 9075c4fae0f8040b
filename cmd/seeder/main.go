package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/anragha/silly-mid-on/internal/cricket"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	// Two full squads of dummy players.
	const squadSize = 11
	teams := map[string]string{
		"first-xi":  "First XI",
		"second-xi": "Second XI",
	}
	for teamID, teamName := range teams {
		if _, err := db.Exec("INSERT OR IGNORE INTO teams (id, name) VALUES (?, ?)", teamID, teamName); err != nil {
			log.Fatalf("Failed to insert team %s: %s", teamName, err)
		}
	}

	playerNum := 0
	for teamID := range teams {
		for i := 0; i < squadSize; i++ {
			playerNum++
			playerID := fmt.Sprintf("player-%d", playerNum)
			name := fmt.Sprintf("Seeder Player %d", playerNum)
			if _, err := db.Exec("INSERT OR IGNORE INTO players (id, name) VALUES (?, ?)", playerID, name); err != nil {
				log.Fatalf("Failed to insert dummy player %s: %s", name, err)
			}
			if _, err := db.Exec("INSERT OR IGNORE INTO team_members (team_id, player_id, is_active) VALUES (?, ?, 1)", teamID, playerID); err != nil {
				log.Fatalf("Failed to insert team member %s: %s", playerID, err)
			}
			// Roughly one player in five has declared a morning block
			// on next Saturday.
			if rand.Intn(5) == 0 {
				slots, _ := json.Marshal([]cricket.TimeSlot{{Start: "06:00", End: "12:00", IsAvailable: false}})
				_, err := db.Exec(
					"INSERT OR REPLACE INTO player_availability (player_id, date, is_available, reason, time_slots_json) VALUES (?, ?, 1, ?, ?)",
					playerID, nextSaturday().Format("2006-01-02"), "work", string(slots),
				)
				if err != nil {
					log.Fatalf("Failed to insert availability for %s: %s", playerID, err)
				}
			}
		}
	}
	log.Info("Ensured dummy teams and players exist.")

	const batchSize = 100 // Insert 100 matches at a time
	const numMatches = 10000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	statuses := []cricket.MatchStatus{cricket.StatusScheduled, cricket.StatusCompleted, cricket.StatusCancelled}
	emptyXI, _ := json.Marshal(cricket.PlayingXI{HomeTeam: []string{}, AwayTeam: []string{}})

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*9) // 9 columns per match

	for i := 0; i < numMatches; i++ {
		matchDay := time.Now().AddDate(0, 0, rand.Intn(365)-180)
		startHour := 6 + rand.Intn(9)

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			"first-xi",
			"second-xi",
			"Seeded Ground",
			matchDay.Format("2006-01-02"),
			fmt.Sprintf("%02d:00", startHour),
			360,
			string(statuses[rand.Intn(len(statuses))]),
			string(emptyXI),
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			stmt := fmt.Sprintf(
				"INSERT OR IGNORE INTO matches (id, home_team_id, away_team_id, venue, date, start_time, duration_minutes, status, playing_xi_json) VALUES %s",
				strings.Join(valueStrings, ","),
			)
			if _, err := tx.Exec(stmt, valueArgs...); err != nil {
				tx.Rollback()
				log.Fatalf("Failed to insert match batch: %s", err)
			}
			valueStrings = valueStrings[:0]
			valueArgs = valueArgs[:0]
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	log.Info("Seeding finished.", "matches", numMatches, "duration", time.Since(startTime))
}

func nextSaturday() time.Time {
	now := time.Now()
	days := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}
