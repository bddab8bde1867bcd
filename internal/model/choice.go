package model

import (
	"fmt"
	"strings"
)

// Choice is one of the three symbols a player can throw in a round
type Choice string

const (
	ChoiceRock     Choice = "rock"
	ChoicePaper    Choice = "paper"
	ChoiceScissors Choice = "scissors"
)

// Choices lists the symbol domain in a fixed order (indexable by a random draw)
var Choices = [...]Choice{ChoiceRock, ChoicePaper, ChoiceScissors}

// Beats returns the symbol this choice defeats
func (c Choice) Beats() Choice {
	switch c {
	case ChoiceRock:
		return ChoiceScissors
	case ChoicePaper:
		return ChoiceRock
	case ChoiceScissors:
		return ChoicePaper
	default:
		return ""
	}
}

// IsValid returns true if the choice is part of the symbol domain
func (c Choice) IsValid() bool {
	return c.Beats() != ""
}

// ParseChoice normalizes and validates a choice string (case-insensitive)
func ParseChoice(s string) (Choice, error) {
	c := Choice(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidChoice, s)
	}
	return c, nil
}
