package model

import "time"

// MatchID identifies one started match
type MatchID string

// SessionStatus is the state of the single game session
type SessionStatus string

const (
	SessionIdle   SessionStatus = "idle"   // No match has been started
	SessionActive SessionStatus = "active" // Match in progress, round by round
)

// RoundWins tallies rounds won by each side within the current match
type RoundWins struct {
	Player1 int
	Player2 int
}

// Session is the process-wide two-player match
type Session struct {
	Status        SessionStatus
	MatchID       MatchID
	Player1       string
	Player2       string
	LockedPlayer1 bool
	RoundNumber   int
	RoundWins     RoundWins
	LastOutcome   *RoundOutcome

	StartedAt time.Time
	UpdatedAt time.Time
}

// NewIdleSession returns the session state before any match has been started
func NewIdleSession() *Session {
	return &Session{Status: SessionIdle}
}

// IsActive returns true if a match is in progress
func (s *Session) IsActive() bool {
	return s.Status == SessionActive
}

// RetainedPlayer1 returns player1's name if they hold the winner lock
func (s *Session) RetainedPlayer1() string {
	if s.LockedPlayer1 {
		return s.Player1
	}
	return ""
}

// Clone returns a deep copy so callers cannot mutate controller state
func (s *Session) Clone() *Session {
	c := *s
	if s.LastOutcome != nil {
		o := *s.LastOutcome
		c.LastOutcome = &o
	}
	return &c
}
