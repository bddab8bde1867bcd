package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
}

// DefaultConfig returns a Config with defaults overridden by RPSCTL_* variables
func DefaultConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("RPSCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("server", "http://localhost:8080")
	v.SetDefault("output", OutputText)

	return &Config{
		ServerURL: v.GetString("server"),
		Output:    v.GetString("output"),
	}
}

// Validate checks the config values
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("--server is required")
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("invalid output format %q: must be %q or %q", c.Output, OutputText, OutputJSON)
	}
	return nil
}
