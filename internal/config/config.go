package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcoot/rpsarena/internal/api"
	"github.com/mcoot/rpsarena/internal/factory"
	"github.com/mcoot/rpsarena/internal/services/game"
	redisstorage "github.com/mcoot/rpsarena/internal/storage/redis"
)

// EnvPrefix is prepended to every flag name to form its environment variable
const EnvPrefix = "RPSARENA"

// Config holds server settings from flags and the environment
type Config struct {
	Host     string
	Port     int
	Storage  string
	RedisURL string
	LogLevel string

	LockPolicy string
	MaxRounds  int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Validate checks the config values
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}

	switch c.Storage {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("--redis-url is required when --storage=redis")
		}
	default:
		return fmt.Errorf("invalid storage %q: must be %q or %q", c.Storage, factory.StorageTypeMemory, factory.StorageTypeRedis)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	return c.GameConfig().Validate()
}

// BindFlags registers the server flags on cmd and fills them from RPSARENA_* variables
// when they are not set on the command line. Call ApplyEnv after parsing.
func BindFlags(cmd *cobra.Command, cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := api.DefaultServerConfig()
	rules := game.DefaultConfig()

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.Host, "host", defaults.Host, "address to bind to (env: RPSARENA_HOST)")
	fs.IntVarP(&cfg.Port, "port", "p", defaults.Port, "port to listen on (env: RPSARENA_PORT)")
	fs.StringVar(&cfg.Storage, "storage", factory.StorageTypeMemory, "storage backend: memory or redis (env: RPSARENA_STORAGE)")
	fs.StringVar(&cfg.RedisURL, "redis-url", "", "redis connection url (env: RPSARENA_REDIS_URL)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error (env: RPSARENA_LOG_LEVEL)")
	fs.StringVar(&cfg.LockPolicy, "lock-policy", string(rules.LockPolicy), "allow or enforce a different player1 while the winner is locked (env: RPSARENA_LOCK_POLICY)")
	fs.IntVar(&cfg.MaxRounds, "max-rounds", rules.MaxRounds, "rounds per match, 0 for unlimited (env: RPSARENA_MAX_ROUNDS)")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", defaults.ReadTimeout, "http read timeout (env: RPSARENA_READ_TIMEOUT)")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", defaults.WriteTimeout, "http write timeout, 0 for none (env: RPSARENA_WRITE_TIMEOUT)")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", defaults.ShutdownTimeout, "graceful shutdown timeout (env: RPSARENA_SHUTDOWN_TIMEOUT)")

	return v
}

// ApplyEnv copies environment values onto flags the user did not set explicitly
func ApplyEnv(cmd *cobra.Command, v *viper.Viper) error {
	fs := cmd.Flags()
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				errs = append(errs, fmt.Errorf("env for --%s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}

// GameConfig returns the match rules
func (c *Config) GameConfig() game.Config {
	return game.Config{
		LockPolicy: game.LockPolicy(c.LockPolicy),
		MaxRounds:  c.MaxRounds,
	}
}

// ServerConfig returns the HTTP server settings
func (c *Config) ServerConfig() api.ServerConfig {
	return api.ServerConfig{
		Host:            c.Host,
		Port:            c.Port,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}
}

// FactoryConfig returns the application wiring settings
func (c *Config) FactoryConfig(logger *slog.Logger) factory.Config {
	cfg := factory.Config{
		Logger:      logger,
		StorageType: c.Storage,
		GameConfig:  c.GameConfig(),
	}
	if c.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}

// NewLogger builds the JSON logger at the configured level
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", s)
	}
	return level, nil
}
