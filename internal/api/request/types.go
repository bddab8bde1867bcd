package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Name string `json:"name"`
}

// StartGameRequest is the request body for starting a match
type StartGameRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// PlayRoundRequest is the request body for playing a round.
// Omitted choices are drawn at random by the server.
type PlayRoundRequest struct {
	Choice1 string `json:"choice1,omitempty"`
	Choice2 string `json:"choice2,omitempty"`

	// Accepted aliases for choice1 / choice2
	P1Choice string `json:"p1_choice,omitempty"`
	P2Choice string `json:"p2_choice,omitempty"`
}

// Player1Choice returns the supplied player1 choice, if any
func (r PlayRoundRequest) Player1Choice() string {
	if r.Choice1 != "" {
		return r.Choice1
	}
	return r.P1Choice
}

// Player2Choice returns the supplied player2 choice, if any
func (r PlayRoundRequest) Player2Choice() string {
	if r.Choice2 != "" {
		return r.Choice2
	}
	return r.P2Choice
}
