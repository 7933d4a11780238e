package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/duelscore/duelscore/duel"
)

// ErrMissingAddr is returned when the listen address resolves empty.
var ErrMissingAddr = errors.New("addr must not be empty")

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML) if DUELSCORE_CONFIG is set
//  3. env (prefix DUELSCORE_)
func Load() (*Config, error) {
	base := Default()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("DUELSCORE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: DUELSCORE_ADDR, DUELSCORE_TIE_POLICY, ...
	// Keys map onto the flat koanf tags, underscores preserved.
	envProvider := env.Provider("DUELSCORE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "duelscore_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, ErrMissingAddr
	}
	if _, err := duel.ParseTiePolicy(cfg.TiePolicy); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// TiePolicyValue resolves the configured tie policy
func (c *Config) TiePolicyValue() duel.TiePolicy {
	policy, err := duel.ParseTiePolicy(c.TiePolicy)
	if err != nil {
		return duel.TiesSeparate
	}
	return policy
}
