package model

import "time"

// Player is a leaderboard entry, keyed by its case-sensitive name
type Player struct {
	Name      string
	Score     int
	GamesWon  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxNameLength bounds the length of a player name in bytes
const MaxNameLength = 64
