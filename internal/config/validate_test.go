package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	var c Config
	c.App.Port = 5000
	c.App.DataDir = "~/.neighborfit"
	c.Search.MinScore = 0
	c.Search.DefaultLimit = 50
	c.Search.MaxLimit = 200
	c.Auth.TokenTTLHours = 720
	c.Auth.KeyringAccount = "jwt-signing"
	c.Stats.BroadcastSeconds = 60
	c.RateLimit.PerSecond = 20
	c.RateLimit.Burst = 40
	return c
}

func TestNormalizeAndValidateOK(t *testing.T) {
	out, res := NormalizeAndValidate(validConfig())
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if out.Search.DefaultLimit != 50 {
		t.Fatalf("default_limit changed to %d", out.Search.DefaultLimit)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	c := validConfig()
	c.Search.DefaultLimit = 0
	c.Search.MaxLimit = 0
	c.Auth.KeyringAccount = "  "
	c.Stats.BroadcastSeconds = 0

	out, res := NormalizeAndValidate(c)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if out.Search.DefaultLimit != 50 || out.Search.MaxLimit != 100 {
		t.Fatalf("limits not defaulted: %d/%d", out.Search.DefaultLimit, out.Search.MaxLimit)
	}
	if out.Auth.KeyringAccount != "jwt-signing" {
		t.Fatalf("keyring account = %q", out.Auth.KeyringAccount)
	}
	if out.Stats.BroadcastSeconds != 60 {
		t.Fatalf("broadcast seconds = %d", out.Stats.BroadcastSeconds)
	}
}

func TestValidateRejectsBadPortAndScore(t *testing.T) {
	c := validConfig()
	c.App.Port = 0
	c.Search.MinScore = 150

	_, res := NormalizeAndValidate(c)
	if res.OK() {
		t.Fatal("expected errors")
	}
	joined := strings.Join(res.Errors, "\n")
	if !strings.Contains(joined, "app.port") || !strings.Contains(joined, "min_score") {
		t.Fatalf("missing expected errors: %v", res.Errors)
	}
}

func TestValidateSeedRequiresPath(t *testing.T) {
	c := validConfig()
	c.Seed.OnStart = true
	c.Seed.ListingsPath = ""

	_, res := NormalizeAndValidate(c)
	if res.OK() {
		t.Fatal("expected seed.listings_path error")
	}
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	c := validConfig()
	c.Search.MinScore = 42
	if err := SaveAtomic(path, c); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Search.MinScore != 42 || got.App.Port != 5000 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// second save keeps a .bak of the first
	c.Search.MinScore = 43
	if err := SaveAtomic(path, c); err != nil {
		t.Fatalf("SaveAtomic (2nd): %v", err)
	}
	bak, err := Load(path + ".bak")
	if err != nil {
		t.Fatalf("Load .bak: %v", err)
	}
	if bak.Search.MinScore != 42 {
		t.Fatalf("bak min_score = %d, want 42", bak.Search.MinScore)
	}
}
