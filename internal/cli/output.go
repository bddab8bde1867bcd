package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Session:
		o.printSession(v)
	case RoundResult:
		o.printRoundResult(v)
	case LeaderboardView:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	GamesWon int    `json:"games_won"`
}

// RoundWins response type
type RoundWins struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// Session response type
type Session struct {
	Status        string    `json:"status"`
	MatchID       *string   `json:"match_id"`
	Player1       *string   `json:"player1"`
	Player2       *string   `json:"player2"`
	Round         int       `json:"round"`
	LockedPlayer1 bool      `json:"locked_player1"`
	RoundWins     RoundWins `json:"round_wins"`
	MaxRounds     int       `json:"max_rounds"`
	LastRound     *Outcome  `json:"last_round"`
}

// Outcome is the last round's choices and winner
type Outcome struct {
	Player1Choice string `json:"player1_choice"`
	Player2Choice string `json:"player2_choice"`
	Winner        string `json:"winner"`
}

// RoundResult response type
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

// Leaderboard response type
type Leaderboard struct {
	ByName  []Player `json:"by_name"`
	ByScore []Player `json:"by_score"`
}

// LeaderboardView is one projection of the leaderboard, as printed
type LeaderboardView struct {
	By      string   `json:"by"`
	Players []Player `json:"players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	_, _ = fmt.Fprintf(o.w, "Player: %s\n", p.Name)
	_, _ = fmt.Fprintf(o.w, "Score: %d\n", p.Score)
	_, _ = fmt.Fprintf(o.w, "Games Won: %d\n", p.GamesWon)
}

func (o *Output) printSession(s Session) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", s.Status)
	if s.MatchID == nil {
		return
	}
	_, _ = fmt.Fprintf(o.w, "Match: %s\n", *s.MatchID)
	_, _ = fmt.Fprintf(o.w, "Player 1: %s\n", deref(s.Player1))
	_, _ = fmt.Fprintf(o.w, "Player 2: %s\n", deref(s.Player2))
	if s.MaxRounds > 0 {
		_, _ = fmt.Fprintf(o.w, "Round: %d/%d\n", s.Round, s.MaxRounds)
	} else {
		_, _ = fmt.Fprintf(o.w, "Round: %d\n", s.Round)
	}
	_, _ = fmt.Fprintf(o.w, "Rounds Won: %d - %d\n", s.RoundWins.Player1, s.RoundWins.Player2)
	if s.LastRound != nil {
		_, _ = fmt.Fprintf(o.w, "Last Round: %s vs %s (%s)\n", s.LastRound.Player1Choice, s.LastRound.Player2Choice, s.LastRound.Winner)
	}
	if s.LockedPlayer1 {
		_, _ = fmt.Fprintln(o.w, "Player 1 is locked in (winner stays on)")
	}
}

func (o *Output) printRoundResult(r RoundResult) {
	_, _ = fmt.Fprintf(o.w, "Round %d: %s vs %s\n", r.Round, r.Player1Choice, r.Player2Choice)
	switch r.Winner {
	case "draw":
		_, _ = fmt.Fprintln(o.w, "Result: draw")
	default:
		_, _ = fmt.Fprintf(o.w, "Result: %s wins\n", r.Winner)
	}
	_, _ = fmt.Fprintf(o.w, "Rounds Won: %d - %d\n", r.RoundWins.Player1, r.RoundWins.Player2)
	if r.NextPlayer1 != nil {
		_, _ = fmt.Fprintf(o.w, "Next player 1: %s\n", *r.NextPlayer1)
	}
	if r.Finished {
		_, _ = fmt.Fprintln(o.w, "Match finished")
	}
}

func (o *Output) printLeaderboard(l LeaderboardView) {
	if len(l.Players) == 0 {
		_, _ = fmt.Fprintln(o.w, "No players registered")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tNAME\tSCORE\tWON")
	for i, p := range l.Players {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", i+1, p.Name, p.Score, p.GamesWon)
	}
	_ = tw.Flush()
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
