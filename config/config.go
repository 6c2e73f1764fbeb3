package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/nstehr/vanguard/vanguard-core/combat"
)

// Config is the bot's runtime configuration.
type Config struct {
	Socket           string              `mapstructure:"socket"`
	SkillsFile       string              `mapstructure:"skills_file"`
	TargetingMode    string              `mapstructure:"targeting_mode"`
	CustomTiers      []combat.CustomTier `mapstructure:"custom_tiers"`
	PartyFeedURL     string              `mapstructure:"party_feed_url"`    // empty uses the snapshot's embedded party state
	InteractThrottle int64               `mapstructure:"interact_throttle"` // milliseconds
	AttackThrottle   int64               `mapstructure:"attack_throttle"`   // milliseconds
	StatusInterval   int64               `mapstructure:"status_interval"`   // milliseconds
	LogLevel         string              `mapstructure:"log_level"`
	CombatEnabled    *bool               `mapstructure:"combat_enabled"`
	TargetingEnabled *bool               `mapstructure:"targeting_enabled"`
}

// EnvPrefix namespaces environment overrides, e.g. VANGUARD_COMBAT_ENABLED.
const EnvPrefix = "VANGUARD"

// envKeys are the scalar keys that may come from the environment. Unmarshal
// only sees keys viper already knows, so each one is bound explicitly.
var envKeys = []string{
	"socket",
	"skills_file",
	"targeting_mode",
	"party_feed_url",
	"interact_throttle",
	"attack_throttle",
	"status_interval",
	"log_level",
	"combat_enabled",
	"targeting_enabled",
}

// BindEnv registers every scalar key with v's environment lookup.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// Load reads configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals v and applies defaults.
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Socket == "" {
		cfg.Socket = "/tmp/vanguard.sock"
	}
	if cfg.SkillsFile == "" {
		cfg.SkillsFile = "skills.yaml"
	}
	if cfg.TargetingMode == "" {
		cfg.TargetingMode = string(combat.TargetingSmart)
	}
	if cfg.InteractThrottle == 0 {
		cfg.InteractThrottle = 1000
	}
	if cfg.AttackThrottle == 0 {
		cfg.AttackThrottle = 500
	}
	if cfg.StatusInterval == 0 {
		cfg.StatusInterval = 2000
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.CombatEnabled == nil {
		enabled := true
		cfg.CombatEnabled = &enabled
	}
	if cfg.TargetingEnabled == nil {
		enabled := true
		cfg.TargetingEnabled = &enabled
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch combat.TargetingMode(c.TargetingMode) {
	case combat.TargetingSmart, combat.TargetingAssist:
	default:
		return fmt.Errorf("invalid targeting_mode: %s (must be smart or assist)", c.TargetingMode)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if c.InteractThrottle < 0 || c.AttackThrottle < 0 || c.StatusInterval < 0 {
		return fmt.Errorf("throttle intervals must not be negative")
	}

	if c.PartyFeedURL != "" && !strings.HasPrefix(c.PartyFeedURL, "ws://") && !strings.HasPrefix(c.PartyFeedURL, "wss://") {
		return fmt.Errorf("invalid party_feed_url: %s (must be ws:// or wss://)", c.PartyFeedURL)
	}

	seen := make(map[string]bool)
	for i, t := range c.CustomTiers {
		if t.Match == "" {
			return fmt.Errorf("custom tier %d (%q) has no match expression", i, t.Name)
		}
		if t.Name != "" && seen[t.Name] {
			return fmt.Errorf("duplicate custom tier: %s", t.Name)
		}
		seen[t.Name] = true
	}

	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	return lvl, nil
}

// Controller maps the configuration onto the engine's settings.
func (c *Config) Controller(logger *slog.Logger) combat.Config {
	return combat.Config{
		Mode:             combat.TargetingMode(c.TargetingMode),
		CustomTiers:      c.CustomTiers,
		InteractThrottle: c.InteractThrottle,
		AttackThrottle:   c.AttackThrottle,
		StatusInterval:   c.StatusInterval,
		Logger:           logger,
	}
}
