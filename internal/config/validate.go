package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills safe defaults, then checks what it can't fix.
// Warnings ship with the response; errors block a config update.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.Search.DefaultLimit <= 0 {
		out.Search.DefaultLimit = 50
	}
	if out.Search.MaxLimit <= 0 {
		out.Search.MaxLimit = 100
	}
	if out.Auth.TokenTTLHours <= 0 {
		out.Auth.TokenTTLHours = 720
	}
	if strings.TrimSpace(out.Auth.KeyringAccount) == "" {
		out.Auth.KeyringAccount = "jwt-signing"
	}
	if out.Stats.BroadcastSeconds <= 0 {
		out.Stats.BroadcastSeconds = 60
	}
	if out.RateLimit.PerSecond <= 0 {
		out.RateLimit.PerSecond = 20
	}
	if out.RateLimit.Burst <= 0 {
		out.RateLimit.Burst = 40
	}

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Search.MinScore < 0 || out.Search.MinScore > 100 {
		res.addErr("search.min_score must be 0..100")
	} else if out.Search.MinScore > 90 {
		res.addWarn("search.min_score is very high (%d); most searches will return nothing.", out.Search.MinScore)
	}
	if out.Search.DefaultLimit > out.Search.MaxLimit {
		res.addErr("search.default_limit (%d) exceeds search.max_limit (%d)",
			out.Search.DefaultLimit, out.Search.MaxLimit)
	}

	if out.Seed.OnStart && strings.TrimSpace(out.Seed.ListingsPath) == "" {
		res.addErr("seed.listings_path is required when seed.on_start=true")
	}

	if out.Stats.BroadcastSeconds < 5 {
		res.addWarn("stats.broadcast_seconds is very low (%d); consider >= 5.", out.Stats.BroadcastSeconds)
	}

	return out, res
}
