package response

import (
	"time"

	"github.com/mcoot/rpsarena/internal/model"
	"github.com/mcoot/rpsarena/internal/services/leaderboard"
)

// Player represents a player in API responses
type Player struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	GamesWon int    `json:"games_won"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Name:     p.Name,
		Score:    p.Score,
		GamesWon: p.GamesWon,
	}
}

// RoundWins is the per-match round tally
type RoundWins struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// RoundWinsFromModel converts model.RoundWins
func RoundWinsFromModel(w model.RoundWins) RoundWins {
	return RoundWins{Player1: w.Player1, Player2: w.Player2}
}

// Session represents the game session status
type Session struct {
	Status        string     `json:"status"`
	MatchID       *string    `json:"match_id"`
	Player1       *string    `json:"player1"`
	Player2       *string    `json:"player2"`
	Round         int        `json:"round"`
	LockedPlayer1 bool       `json:"locked_player1"`
	RoundWins     RoundWins  `json:"round_wins"`
	MaxRounds     int        `json:"max_rounds"`
	LastRound     *Outcome   `json:"last_round"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
}

// Outcome is a single round's choices and winner
type Outcome struct {
	Player1Choice string `json:"player1_choice"`
	Player2Choice string `json:"player2_choice"`
	Winner        string `json:"winner"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session, maxRounds int) Session {
	resp := Session{
		Status:        string(s.Status),
		Round:         s.RoundNumber,
		LockedPlayer1: s.LockedPlayer1,
		RoundWins:     RoundWinsFromModel(s.RoundWins),
		MaxRounds:     maxRounds,
	}
	if s.IsActive() {
		matchID := string(s.MatchID)
		resp.MatchID = &matchID
		resp.Player1 = &s.Player1
		resp.Player2 = &s.Player2
		startedAt := s.StartedAt
		resp.StartedAt = &startedAt
		if s.LastOutcome != nil {
			resp.LastRound = &Outcome{
				Player1Choice: string(s.LastOutcome.Player1Choice),
				Player2Choice: string(s.LastOutcome.Player2Choice),
				Winner:        string(s.LastOutcome.Winner),
			}
		}
	}
	return resp
}

// RoundResult is the response for playing a round
type RoundResult struct {
	MatchID       string    `json:"match_id"`
	Round         int       `json:"round"`
	Player1Choice string    `json:"player1_choice"`
	Player2Choice string    `json:"player2_choice"`
	Winner        string    `json:"winner"`
	LockedPlayer1 bool      `json:"locked_player1"`
	NextPlayer1   *string   `json:"next_player1"`
	RoundWins     RoundWins `json:"round_wins"`
	Finished      bool      `json:"finished"`
}

// RoundResultFromModel converts model.RoundResult
func RoundResultFromModel(r *model.RoundResult) RoundResult {
	resp := RoundResult{
		MatchID:       string(r.MatchID),
		Round:         r.Round,
		Player1Choice: string(r.Player1Choice),
		Player2Choice: string(r.Player2Choice),
		Winner:        string(r.Winner),
		LockedPlayer1: r.LockedPlayer1,
		RoundWins:     RoundWinsFromModel(r.RoundWins),
		Finished:      r.Finished,
	}
	if r.LockedPlayer1 {
		next := r.NextPlayer1
		resp.NextPlayer1 = &next
	}
	return resp
}

// Leaderboard holds both sorted projections
type Leaderboard struct {
	ByName  []Player `json:"by_name"`
	ByScore []Player `json:"by_score"`
}

// LeaderboardFromStandings converts leaderboard.Standings
func LeaderboardFromStandings(s *leaderboard.Standings) Leaderboard {
	return Leaderboard{
		ByName:  playersFromModels(s.ByName),
		ByScore: playersFromModels(s.ByScore),
	}
}

func playersFromModels(players []model.Player) []Player {
	result := make([]Player, len(players))
	for i := range players {
		result[i] = PlayerFromModel(&players[i])
	}
	return result
}

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}
