package club

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/anragha/silly-mid-on/internal/cricket"
	"github.com/charmbracelet/log"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// UpsertPlayers inserts or updates player registry entries in one
// transaction.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare player upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// IsKnownPlayer reports whether the player exists in the registry.
func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	err := s.db.QueryRow("SELECT id FROM players WHERE id = ?", playerID).Scan(&id)
	return err == nil
}

// GetAllPlayers returns every registered player with their availability
// records attached.
func (s *store) GetAllPlayers() ([]cricket.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name FROM players ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []cricket.Player
	for rows.Next() {
		var p cricket.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range players {
		availability, err := s.availabilityForPlayer(players[i].ID)
		if err != nil {
			return nil, err
		}
		players[i].Availability = availability
	}
	return players, nil
}

// GetPlayers returns the given players, with availability, preserving the
// order of the requested ids. Unknown ids are skipped.
func (s *store) GetPlayers(playerIDs []string) ([]cricket.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var players []cricket.Player
	for _, id := range playerIDs {
		var p cricket.Player
		err := s.db.QueryRow("SELECT id, name FROM players WHERE id = ?", id).Scan(&p.ID, &p.Name)
		if err == sql.ErrNoRows {
			log.Debug("Skipping unknown player", "playerID", id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get player %s: %w", id, err)
		}
		availability, err := s.availabilityForPlayer(p.ID)
		if err != nil {
			return nil, err
		}
		p.Availability = availability
		players = append(players, p)
	}
	return players, nil
}

func (s *store) availabilityForPlayer(playerID string) ([]cricket.AvailabilityRecord, error) {
	rows, err := s.db.Query(`
		SELECT date, is_available, reason, time_slots_json
		FROM player_availability
		WHERE player_id = ?
		ORDER BY date
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability for %s: %w", playerID, err)
	}
	defer rows.Close()

	var records []cricket.AvailabilityRecord
	for rows.Next() {
		var rec cricket.AvailabilityRecord
		var reason sql.NullString
		var slotsJSON []byte
		if err := rows.Scan(&rec.Date, &rec.IsAvailable, &reason, &slotsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		rec.Reason = reason.String
		if len(slotsJSON) > 0 {
			if err := json.Unmarshal(slotsJSON, &rec.TimeSlots); err != nil {
				log.Warn("Failed to unmarshal time slots", "playerID", playerID, "date", rec.Date, "error", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SetAvailability replaces the player's availability record for the
// record's date.
func (s *store) SetAvailability(playerID string, record cricket.AvailabilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slotsJSON, err := json.Marshal(record.TimeSlots)
	if err != nil {
		return fmt.Errorf("failed to marshal time slots: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO player_availability (player_id, date, is_available, reason, time_slots_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player_id, date) DO UPDATE SET
			is_available = excluded.is_available,
			reason = excluded.reason,
			time_slots_json = excluded.time_slots_json
	`, playerID, record.Date, record.IsAvailable, record.Reason, slotsJSON)
	if err != nil {
		return fmt.Errorf("failed to set availability for %s on %s: %w", playerID, record.Date, err)
	}

	log.Info("Set player availability", "playerID", playerID, "date", record.Date, "available", record.IsAvailable)
	return nil
}

// UpsertTeam inserts or updates a team and replaces its roster.
func (s *store) UpsertTeam(team cricket.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO teams (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, team.ID, team.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert team %s: %w", team.ID, err)
	}

	if _, err := tx.Exec("DELETE FROM team_members WHERE team_id = ?", team.ID); err != nil {
		return fmt.Errorf("failed to clear roster for team %s: %w", team.ID, err)
	}
	for _, m := range team.Members {
		_, err := tx.Exec(`
			INSERT INTO team_members (team_id, player_id, is_active) VALUES (?, ?, ?)
		`, team.ID, m.PlayerID, m.IsActive)
		if err != nil {
			return fmt.Errorf("failed to insert roster member %s: %w", m.PlayerID, err)
		}
	}

	return tx.Commit()
}

// GetTeam returns the team with its roster.
func (s *store) GetTeam(teamID string) (cricket.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var team cricket.Team
	err := s.db.QueryRow("SELECT id, name FROM teams WHERE id = ?", teamID).Scan(&team.ID, &team.Name)
	if err == sql.ErrNoRows {
		return cricket.Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	if err != nil {
		return cricket.Team{}, fmt.Errorf("failed to get team %s: %w", teamID, err)
	}

	members, err := s.membersForTeam(teamID)
	if err != nil {
		return cricket.Team{}, err
	}
	team.Members = members
	return team, nil
}

// GetAllTeams returns every team with its roster.
func (s *store) GetAllTeams() ([]cricket.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name FROM teams ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []cricket.Team
	for rows.Next() {
		var t cricket.Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range teams {
		members, err := s.membersForTeam(teams[i].ID)
		if err != nil {
			return nil, err
		}
		teams[i].Members = members
	}
	return teams, nil
}

func (s *store) membersForTeam(teamID string) ([]cricket.TeamMember, error) {
	rows, err := s.db.Query(`
		SELECT player_id, is_active FROM team_members WHERE team_id = ? ORDER BY player_id
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster for team %s: %w", teamID, err)
	}
	defer rows.Close()

	var members []cricket.TeamMember
	for rows.Next() {
		var m cricket.TeamMember
		if err := rows.Scan(&m.PlayerID, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// InsertMatch persists a newly scheduled match.
func (s *store) InsertMatch(match *cricket.ScheduledMatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	xiJSON, err := json.Marshal(match.PlayingXI)
	if err != nil {
		return fmt.Errorf("failed to marshal playing XI: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO matches (id, home_team_id, away_team_id, venue, date, start_time, duration_minutes, status, playing_xi_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, match.ID, match.HomeTeamID, match.AwayTeamID, match.Venue, match.Date, match.StartTime, match.DurationMinutes, string(match.Status), xiJSON)
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", match.ID, err)
	}

	log.Info("Inserted match", "matchID", match.ID, "date", match.Date, "start", match.StartTime)
	return nil
}

// UpdateMatchSchedule moves a match to a new date and start time.
func (s *store) UpdateMatchSchedule(matchID, newDate, newStartTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE matches SET date = ?, start_time = ? WHERE id = ?", newDate, newStartTime, matchID)
	if err != nil {
		return fmt.Errorf("failed to update match schedule: %w", err)
	}
	return s.requireRow(res, matchID)
}

// UpdateMatchStatus transitions a match to a new status.
func (s *store) UpdateMatchStatus(matchID string, status cricket.MatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE matches SET status = ? WHERE id = ?", string(status), matchID)
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	return s.requireRow(res, matchID)
}

// SetPlayingXI stores the selected players for a match.
func (s *store) SetPlayingXI(matchID string, xi cricket.PlayingXI) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	xiJSON, err := json.Marshal(xi)
	if err != nil {
		return fmt.Errorf("failed to marshal playing XI: %w", err)
	}
	res, err := s.db.Exec("UPDATE matches SET playing_xi_json = ? WHERE id = ?", xiJSON, matchID)
	if err != nil {
		return fmt.Errorf("failed to set playing XI: %w", err)
	}
	return s.requireRow(res, matchID)
}

func (s *store) requireRow(res sql.Result, matchID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return nil
}

// GetMatch retrieves a match by id.
func (s *store) GetMatch(matchID string) (*cricket.ScheduledMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, home_team_id, away_team_id, venue, date, start_time, duration_minutes, status, playing_xi_json
		FROM matches WHERE id = ?
	`, matchID)

	match, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	return match, nil
}

// GetAllMatches returns every match, ascending by date and start time.
func (s *store) GetAllMatches() ([]cricket.ScheduledMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, home_team_id, away_team_id, venue, date, start_time, duration_minutes, status, playing_xi_json
		FROM matches ORDER BY date, start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []cricket.ScheduledMatch
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// scanMatch is a helper to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*cricket.ScheduledMatch, error) {
	var match cricket.ScheduledMatch
	var status string
	var xiJSON []byte

	err := scanner.Scan(
		&match.ID,
		&match.HomeTeamID,
		&match.AwayTeamID,
		&match.Venue,
		&match.Date,
		&match.StartTime,
		&match.DurationMinutes,
		&status,
		&xiJSON,
	)
	if err != nil {
		return nil, err
	}

	match.Status = cricket.MatchStatus(status)
	match.PlayingXI = cricket.PlayingXI{HomeTeam: []string{}, AwayTeam: []string{}}
	if len(xiJSON) > 0 {
		if err := json.Unmarshal(xiJSON, &match.PlayingXI); err != nil {
			log.Warn("Failed to unmarshal playing XI", "matchID", match.ID, "error", err)
		}
	}
	return &match, nil
}

// Clear wipes all club data. Intended for tests and local resets.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"matches", "team_members", "teams", "player_availability", "players"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}
