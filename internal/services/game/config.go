package game

import "fmt"

// LockPolicy decides what Start does when player1 holds the winner lock
type LockPolicy string

const (
	// LockPolicyAllow accepts any player1; the caller is trusted to reuse the retained winner
	LockPolicyAllow LockPolicy = "allow"
	// LockPolicyEnforce rejects a player1 other than the retained winner.
	// The lock only guards the next Start: Start clears it, so a second Start
	// straight after may name any player1 (start(A, C) then start(C, B)).
	LockPolicyEnforce LockPolicy = "enforce"
)

// Config holds match rules
type Config struct {
	LockPolicy LockPolicy
	// MaxRounds ends a match after this many rounds. 0 means unlimited.
	MaxRounds int
}

// DefaultConfig returns unlimited rounds and the permissive lock policy
func DefaultConfig() Config {
	return Config{
		LockPolicy: LockPolicyAllow,
		MaxRounds:  0,
	}
}

// Validate checks the config values
func (c Config) Validate() error {
	switch c.LockPolicy {
	case LockPolicyAllow, LockPolicyEnforce:
	default:
		return fmt.Errorf("invalid lock policy %q: must be %q or %q", c.LockPolicy, LockPolicyAllow, LockPolicyEnforce)
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("invalid max rounds %d: must not be negative", c.MaxRounds)
	}
	return nil
}
