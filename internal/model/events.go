package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPlayerRegistered EventType = "player_registered"
	EventMatchStarted     EventType = "match_started"
	EventRoundPlayed      EventType = "round_played"
)

// Event is published after a state change has been applied
type Event struct {
	Type      EventType
	Timestamp time.Time
	MatchID   MatchID // Empty for registry-only events
	Payload   any     // Type-specific data
}

// PlayerRegisteredPayload contains data for player registered events
type PlayerRegisteredPayload struct {
	Player Player
}

// MatchStartedPayload contains data for match started events
type MatchStartedPayload struct {
	Player1 string
	Player2 string
}

// RoundPlayedPayload contains data for round played events
type RoundPlayedPayload struct {
	Result RoundResult
}
