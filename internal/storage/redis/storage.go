package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/rpsarena/internal/model"
	"github.com/mcoot/rpsarena/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Players are hashes so credits can use HINCRBY; the session is a JSON blob.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) CreatePlayerIfAbsent(ctx context.Context, name string, now time.Time) (*model.Player, bool, error) {
	key := playerKey(name)
	ts := now.Format(time.RFC3339Nano)

	// HSETNX on every field inside MULTI keeps an existing record untouched
	var created *redis.BoolCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		created = pipe.HSetNX(ctx, key, fieldName, name)
		pipe.HSetNX(ctx, key, fieldScore, 0)
		pipe.HSetNX(ctx, key, fieldGamesWon, 0)
		pipe.HSetNX(ctx, key, fieldCreatedAt, ts)
		pipe.HSetNX(ctx, key, fieldUpdatedAt, ts)
		pipe.SAdd(ctx, playersIndexKey(), name)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	player, err := s.GetPlayer(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return player, created.Val(), nil
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	fields, err := s.client.HGetAll(ctx, playerKey(name)).Result()
	if err != nil {
		return nil, err
	}
	return playerFromHash(fields)
}

func (s *Storage) CreditPlayer(ctx context.Context, name string, scoreDelta, wonDelta int, now time.Time) (*model.Player, error) {
	key := playerKey(name)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrPlayerNotFound
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, fieldScore, int64(scoreDelta))
		pipe.HIncrBy(ctx, key, fieldGamesWon, int64(wonDelta))
		pipe.HSet(ctx, key, fieldUpdatedAt, now.Format(time.RFC3339Nano))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetPlayer(ctx, name)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	names, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []*model.Player{}, nil
	}

	// Fetch all hashes in one round trip
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.HGetAll(ctx, playerKey(name))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(cmds))
	for _, cmd := range cmds {
		player, err := playerFromHash(cmd.Val())
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue // Index entry without a hash
			}
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

func playerFromHash(fields map[string]string) (*model.Player, error) {
	if len(fields) == 0 {
		return nil, model.ErrPlayerNotFound
	}

	score, err := strconv.Atoi(fields[fieldScore])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fieldScore, err)
	}
	gamesWon, err := strconv.Atoi(fields[fieldGamesWon])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fieldGamesWon, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fieldCreatedAt, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, fields[fieldUpdatedAt])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fieldUpdatedAt, err)
	}

	return &model.Player{
		Name:      fields[fieldName],
		Score:     score,
		GamesWon:  gamesWon,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(), data, 0).Err()
}

func (s *Storage) GetSession(ctx context.Context) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
