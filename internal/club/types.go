package club

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	// ErrTeamNotFound is returned when a team id is unknown.
	ErrTeamNotFound = errors.New("team not found")
	// ErrMatchNotFound is returned when a match id is unknown.
	ErrMatchNotFound = errors.New("match not found")
)

// PlayerInfo is the registry entry for a club player, without availability.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
