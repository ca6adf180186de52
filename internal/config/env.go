package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STRATAGEM_"

// envSettings holds the raw environment overrides. Values stay strings
// so ParseSettings reports them the same way as file values.
type envSettings struct {
	KeyDelay      string `env:"KEY_DELAY"`
	ModifierKey   string `env:"MODIFIER_KEY"`
	HoldModifier  string `env:"HOLD_MODIFIER"`
	DirectionKeys string `env:"DIRECTION_KEYS"`
}

var envVars = []string{
	EnvPrefix + "KEY_DELAY",
	EnvPrefix + "MODIFIER_KEY",
	EnvPrefix + "HOLD_MODIFIER",
	EnvPrefix + "DIRECTION_KEYS",
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvOverrides returns the settings set through the environment.
// Set but empty variables are ignored. A nil map means no overrides.
func EnvOverrides(lookup LookupFunc) (map[string]any, error) {
	environ := make(map[string]string, len(envVars))
	for _, name := range envVars {
		if v, ok := lookup(name); ok {
			environ[name] = v
		}
	}

	var raw envSettings
	if err := env.ParseWithOptions(&raw, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	out := make(map[string]any)
	for setting, val := range map[string]string{
		KeyKeyDelay:      raw.KeyDelay,
		KeyModifierKey:   raw.ModifierKey,
		KeyHoldModifier:  raw.HoldModifier,
		KeyDirectionKeys: raw.DirectionKeys,
	} {
		if val = strings.TrimSpace(val); val != "" {
			out[setting] = val
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	if _, err := ParseSettings(out); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return out, nil
}

// EnvVars returns the recognized environment variable names.
func EnvVars() []string {
	return append([]string(nil), envVars...)
}
