package round

import (
	"github.com/mcoot/rpsarena/internal/dependencies/random"
	"github.com/mcoot/rpsarena/internal/model"
)

// Resolve decides a round between two valid choices. It has no hidden state.
func Resolve(choice1, choice2 model.Choice) model.RoundWinner {
	switch {
	case choice1 == choice2:
		return model.WinnerDraw
	case choice1.Beats() == choice2:
		return model.WinnerPlayer1
	default:
		return model.WinnerPlayer2
	}
}

// Resolver resolves rounds, drawing a random choice for any side that did not supply one
type Resolver struct {
	random random.Random
}

// NewResolver creates a Resolver drawing from the given source
func NewResolver(random random.Random) *Resolver {
	return &Resolver{random: random}
}

// RandomChoice samples one symbol uniformly
func (r *Resolver) RandomChoice() model.Choice {
	return model.Choices[r.random.Intn(len(model.Choices))]
}

// Play fills in missing choices with independent draws (player1 first) and resolves the round
func (r *Resolver) Play(choice1, choice2 *model.Choice) (model.RoundOutcome, error) {
	c1, err := r.pick(choice1)
	if err != nil {
		return model.RoundOutcome{}, err
	}
	c2, err := r.pick(choice2)
	if err != nil {
		return model.RoundOutcome{}, err
	}

	return model.RoundOutcome{
		Player1Choice: c1,
		Player2Choice: c2,
		Winner:        Resolve(c1, c2),
	}, nil
}

func (r *Resolver) pick(supplied *model.Choice) (model.Choice, error) {
	if supplied == nil {
		return r.RandomChoice(), nil
	}
	if !supplied.IsValid() {
		return "", model.ErrInvalidChoice
	}
	return *supplied, nil
}
