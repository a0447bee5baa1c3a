package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FOOTBALLDATA_TOKEN", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppEnv != AppEnvDevelopment {
		t.Fatalf("expected development env, got %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr, got %s", cfg.HTTPAddr)
	}
	if cfg.FormWindow != 10 {
		t.Fatalf("expected default form window 10, got %d", cfg.FormWindow)
	}
	if cfg.ESPNMaxConcurrent != 4 {
		t.Fatalf("expected default fan-out width 4, got %d", cfg.ESPNMaxConcurrent)
	}
	if len(cfg.TrackedLeagues) == 0 {
		t.Fatalf("expected default tracked leagues")
	}
	if cfg.TrackedLeagues[0].Code != "eng.1" || cfg.TrackedLeagues[0].Name != "Premier League" {
		t.Fatalf("unexpected first tracked league: %+v", cfg.TrackedLeagues[0])
	}
	if !cfg.FootballDataCircuit.Enabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("FOOTBALLDATA_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing token")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FOOTBALLDATA_TOKEN", "secret")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("TRACKED_LEAGUES", "eng.1:Premier League,ita.1:Serie A")
	t.Setenv("STATS_FORM_WINDOW", "5")
	t.Setenv("FOOTBALLDATA_TIMEOUT", "3s")
	t.Setenv("ESPN_CB_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppEnv != AppEnvProduction {
		t.Fatalf("expected production env, got %s", cfg.AppEnv)
	}
	if len(cfg.TrackedLeagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(cfg.TrackedLeagues))
	}
	if cfg.FormWindow != 5 {
		t.Fatalf("expected form window 5, got %d", cfg.FormWindow)
	}
	if cfg.FootballDataTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.FootballDataTimeout)
	}
	if cfg.ESPNCircuit.Enabled {
		t.Fatalf("expected espn circuit breaker disabled")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"APP_ENV":           "galaxy",
		"STATS_FORM_WINDOW": "0",
		"TRACKED_LEAGUES":   "eng.1",
		"ESPN_TIMEOUT":      "soon",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("FOOTBALLDATA_TOKEN", "secret")
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
