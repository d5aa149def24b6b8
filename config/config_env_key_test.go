package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"discovery": map[string]any{
			"maxRadiusKm": 50,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "DISCOVERY_MAXRADIUSKM", want: "discovery.maxRadiusKm"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestDiscoveryConfig_ApplyDefaults(t *testing.T) {
	cfg := &DiscoveryConfig{}
	cfg.applyDefaults()

	if cfg.DefaultRadiusKm != 10 {
		t.Fatalf("DefaultRadiusKm = %v, want 10", cfg.DefaultRadiusKm)
	}
	if cfg.MaxRadiusKm != 50 {
		t.Fatalf("MaxRadiusKm = %v, want 50", cfg.MaxRadiusKm)
	}
	if cfg.IndexProvider != "memory" {
		t.Fatalf("IndexProvider = %q, want memory", cfg.IndexProvider)
	}

	// Explicit values survive
	cfg = &DiscoveryConfig{MaxRadiusKm: 25, IndexProvider: "redis"}
	cfg.applyDefaults()
	if cfg.MaxRadiusKm != 25 || cfg.IndexProvider != "redis" {
		t.Fatalf("explicit values overwritten: %+v", cfg)
	}
}
