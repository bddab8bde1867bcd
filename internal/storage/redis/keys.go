package redis

import "fmt"

// Key prefix for all arena data
const keyPrefix = "rpsarena"

// Player hash fields
const (
	fieldName      = "name"
	fieldScore     = "score"
	fieldGamesWon  = "games_won"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// playerKey returns the Redis key for a player's hash
func playerKey(name string) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, name)
}

// playersIndexKey returns the Redis key for the SET of registered names
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// sessionKey returns the Redis key for the game session
func sessionKey() string {
	return fmt.Sprintf("%s:session", keyPrefix)
}
