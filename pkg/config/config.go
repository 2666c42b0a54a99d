package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Latency is the simulated processing delay per provider role.
type Latency struct {
	Flight   time.Duration `mapstructure:"flight"`
	Hotel    time.Duration `mapstructure:"hotel"`
	Activity time.Duration `mapstructure:"activity"`
}

// LLM toggles the completion-backed activity catalog.
type LLM struct {
	Enabled bool   `mapstructure:"enabled"`
	Backend string `mapstructure:"backend"` // "openai" or "gemini"
	Model   string `mapstructure:"model"`
}

// Config is the process configuration.
type Config struct {
	LogLevel     string        `mapstructure:"log_level"`
	LogFormat    string        `mapstructure:"log_format"`
	PlanDeadline time.Duration `mapstructure:"plan_deadline"` // 0 waits for every sub-request
	Latency      Latency       `mapstructure:"latency"`
	LLM          LLM           `mapstructure:"llm"`
}

// Load reads configuration from an optional YAML file and TRIPMESH_* env
// variables layered over defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("plan_deadline", time.Duration(0))
	v.SetDefault("latency.flight", time.Second)
	v.SetDefault("latency.hotel", 1200*time.Millisecond)
	v.SetDefault("latency.activity", 800*time.Millisecond)
	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.backend", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")

	v.SetEnvPrefix("TRIPMESH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
