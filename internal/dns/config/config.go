// Package config loads the sr-dig command's configuration from
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment
// variables with the SRDNS_ prefix.
type AppConfig struct {
	// Servers lists upstream name servers as host:port or bare address;
	// empty means discover from the operating system.
	Servers []string `koanf:"servers" validate:"omitempty,dive,required"`

	// Timeout bounds each lookup, as a Go duration string.
	Timeout string `koanf:"timeout" validate:"required"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// QueryType selects the lookup: addresses, services, or text.
	QueryType string `koanf:"query_type" validate:"required,oneof=A AAAA SRV TXT"`
}

// ParseTimeout returns the configured timeout as a duration.
func (c *AppConfig) ParseTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive: %s", c.Timeout)
	}
	return d, nil
}

// envLoader loads environment variables with the prefix "SRDNS_",
// lowercasing keys and stripping the prefix. It can be swapped in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "SRDNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "SRDNS_"))
			if key == "servers" {
				return key, strings.Split(value, ",")
			}
			return key, value
		},
	}), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	k.Load(structs.Provider(AppConfig{
		Timeout:   "5s",
		Env:       "prod",
		LogLevel:  "info",
		QueryType: "A",
	}, "koanf"), nil)

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
