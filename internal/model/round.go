package model

// RoundWinner identifies which side, if any, won a round
type RoundWinner string

const (
	WinnerPlayer1 RoundWinner = "player1"
	WinnerPlayer2 RoundWinner = "player2"
	WinnerDraw    RoundWinner = "draw"
)

// RoundOutcome is the resolution of a single round. It is never persisted.
type RoundOutcome struct {
	Player1Choice Choice
	Player2Choice Choice
	Winner        RoundWinner
}

// RoundResult is what PlayRound reports back to the caller
type RoundResult struct {
	RoundOutcome

	MatchID       MatchID
	Round         int // round_number after this round
	LockedPlayer1 bool
	NextPlayer1   string // retained winner, empty unless LockedPlayer1
	RoundWins     RoundWins
	Finished      bool // true once Round reaches a non-zero round limit
}
