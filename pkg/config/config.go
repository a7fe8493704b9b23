// Package config resolves runtime settings from built-in defaults overlaid
// with environment variable overrides. Resolution happens at most once per
// Resolver; the merged tree is cached until explicitly invalidated.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/joeshaw/envdecode"
	"github.com/rs/zerolog"
)

// Tree is a nested configuration mapping. Values are strings, float64 or
// nested Trees.
type Tree = map[string]any

// Environment overrides recognized during resolution. Temperature stays a
// string so a malformed value can fall back instead of failing the decode.
type overrides struct {
	APIKey      string `env:"OPENROUTER_API_KEY"`
	Model       string `env:"OPENROUTER_MODEL"`
	Temperature string `env:"OPENROUTER_TEMPERATURE"`
}

// Resolver owns the process-wide configuration cache.
//
// Lifecycle: empty at construction, populated on the first Resolve, reused
// until ClearCache or ForceRefresh, then repopulated from the current
// environment on the next Resolve.
type Resolver struct {
	mu     sync.Mutex
	cache  Tree
	logger *zerolog.Logger
}

func NewResolver(logger *zerolog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Defaults returns the compiled-in baseline tree.
func Defaults() Tree {
	return Tree{
		"openrouter": Tree{
			"default_model": "google/gemini-flash-1.5",
			"temperature":   0.3,
			"base_url":      "https://openrouter.ai/api/v1",
		},
		"prompts": Tree{
			"directory": "prompts",
		},
		"analysis": Tree{
			"system_message": "You are an expert in sentiment analysis. Always respond with valid JSON only.",
		},
	}
}

// Resolve returns the merged configuration. The cached tree is returned
// unchanged unless forceReload is set or no resolution has happened yet.
func (r *Resolver) Resolve(forceReload bool) Tree {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache != nil && !forceReload {
		return r.cache
	}

	tree := Defaults()
	section := tree["openrouter"].(Tree)

	var env overrides
	if err := envdecode.Decode(&env); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		r.logger.Warn().Err(err).Msg("Failed to decode environment overrides")
	}

	if env.APIKey != "" {
		section["api_key"] = env.APIKey
	}

	if env.Model != "" {
		section["model"] = env.Model
		r.logger.Info().Str("model", env.Model).Msg("Using custom model from env")
	} else {
		section["model"] = section["default_model"]
	}

	if env.Temperature != "" {
		temp, err := strconv.ParseFloat(env.Temperature, 64)
		if err != nil {
			r.logger.Warn().
				Str("value", env.Temperature).
				Msg("Invalid temperature value in env, using default")
		} else {
			section["temperature"] = temp
			r.logger.Info().Float64("temperature", temp).Msg("Using custom temperature from env")
		}
	}

	r.cache = tree
	return tree
}

// Value walks the resolved tree along a dot-separated path. Absence is never
// an error: a missing segment, or an intermediate node that is not a mapping,
// yields def.
func (r *Resolver) Value(path string, def any) any {
	var current any = r.Resolve(false)
	for _, key := range strings.Split(path, ".") {
		node, ok := current.(Tree)
		if !ok {
			return def
		}
		current, ok = node[key]
		if !ok {
			return def
		}
	}
	return current
}

// StringValue is Value narrowed to string leaves; non-string hits yield def.
func (r *Resolver) StringValue(path string, def string) string {
	if s, ok := r.Value(path, def).(string); ok {
		return s
	}
	return def
}

// FloatValue is Value narrowed to float64 leaves; non-float hits yield def.
func (r *Resolver) FloatValue(path string, def float64) float64 {
	if f, ok := r.Value(path, def).(float64); ok {
		return f
	}
	return def
}

// ClearCache empties the cache so the next Resolve re-reads the environment.
// Idempotent.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = nil
}

// ForceRefresh resolves from scratch, replacing the cache.
func (r *Resolver) ForceRefresh() Tree {
	return r.Resolve(true)
}

// Summary renders the current configuration for display.
func (r *Resolver) Summary() string {
	r.mu.Lock()
	cached := r.cache != nil
	r.mu.Unlock()

	apiKey := "missing"
	if r.StringValue("openrouter.api_key", "") != "" {
		apiKey = "set"
	}
	status := "fresh"
	if cached {
		status = "cached"
	}

	var b strings.Builder
	b.WriteString("Configuration summary:\n")
	fmt.Fprintf(&b, "  Model:       %s\n", r.StringValue("openrouter.model", ""))
	fmt.Fprintf(&b, "  Temperature: %g\n", r.FloatValue("openrouter.temperature", 0))
	fmt.Fprintf(&b, "  Base URL:    %s\n", r.StringValue("openrouter.base_url", ""))
	fmt.Fprintf(&b, "  API key:     %s\n", apiKey)
	fmt.Fprintf(&b, "  Prompts dir: %s\n", r.StringValue("prompts.directory", ""))
	fmt.Fprintf(&b, "  Cache:       %s", status)
	return b.String()
}
