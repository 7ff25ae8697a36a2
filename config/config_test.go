package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agriance/contractgen/contract"
	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  rate_limit: 30
  generate_rate_limit: 5
log:
  level: debug
  format: json
auth:
  jwt_secret: contract-signing-secret
  token_expire_hours: 8
minio:
  endpoint: localhost:9000
  access_key: minioadmin
  secret_key: minioadmin
  bucket: contracts
  expire_days: 14
store:
  max_contracts: 500
document:
  platform: Gujarat Farmers Cooperative
  variant: Extended
  output_dir: /var/lib/contracts
  installments:
    - name: Token Advance
      percent: advance_percent
      formula: "min_advance"
      due: On signing
    - name: Balance
      formula: "total - paid"
      due: "On delivery ({delivery_date})"
users:
  - username: suresh
    password: harvest-2026
    tenant: agritech-foods
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server != (ServerConfig{Port: 9090, RateLimit: 30, GenerateRateLimit: 5}) {
		t.Errorf("Unexpected server config %+v", cfg.Server)
	}
	if cfg.Log != (LogConfig{Level: "debug", Format: "json"}) {
		t.Errorf("Unexpected log config %+v", cfg.Log)
	}
	if cfg.Auth.TokenExpireHours != 8 {
		t.Errorf("Expected token_expire_hours 8, got %d", cfg.Auth.TokenExpireHours)
	}
	if !cfg.Minio.Enabled() || cfg.Minio.Bucket != "contracts" || cfg.Minio.ExpireDays != 14 {
		t.Errorf("Unexpected minio config %+v", cfg.Minio)
	}
	if cfg.Store.MaxContracts != 500 {
		t.Errorf("Expected max_contracts 500, got %d", cfg.Store.MaxContracts)
	}

	want := DocumentConfig{
		Platform:  "Gujarat Farmers Cooperative",
		Variant:   "extended",
		OutputDir: "/var/lib/contracts",
		Installments: []contract.InstallmentFormula{
			{Name: "Token Advance", PercentKey: "advance_percent", Formula: "min_advance", Due: "On signing"},
			{Name: "Balance", Formula: "total - paid", Due: "On delivery ({delivery_date})"},
		},
	}
	if diff := cmp.Diff(want, cfg.Document); diff != "" {
		t.Errorf("document config mismatch (-want +got):\n%s", diff)
	}

	if u := cfg.FindUser("suresh"); u == nil || u.Tenant != "agritech-foods" {
		t.Errorf("Expected suresh in tenant agritech-foods, got %+v", u)
	}
	if GlobalConfig != cfg {
		t.Error("Expected Load to set GlobalConfig")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "auth:\n  jwt_secret: s\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg, cmp.FilterPath(func(p cmp.Path) bool {
		return p.String() == "Auth.JWTSecret"
	}, cmp.Ignore())); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"port", cfg.Server.Port, 8080},
		{"rate limit", cfg.Server.RateLimit, 100},
		{"generate rate limit", cfg.Server.GenerateRateLimit, 20},
		{"log level", cfg.Log.Level, "info"},
		{"log format", cfg.Log.Format, "text"},
		{"token hours", cfg.Auth.TokenExpireHours, 24},
		{"store size", cfg.Store.MaxContracts, 100},
		{"expire days", cfg.Minio.ExpireDays, 7},
		{"platform", cfg.Document.Platform, "Agriance - Agricultural Contract Platform"},
		{"variant", cfg.Document.Variant, "standard"},
		{"output dir", cfg.Document.OutputDir, "."},
		{"installments", len(cfg.Document.Installments), len(contract.DefaultInstallments)},
		{"archive", cfg.Minio.Enabled(), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid yaml", "server: [port", "failed to parse"},
		{"unknown variant", "document:\n  variant: short\n", "unknown clause variant"},
		{"bad formula", "document:\n  installments:\n    - name: Advance\n      formula: \"total *\"\n", "invalid formula"},
		{"unnamed installment", "document:\n  installments:\n    - formula: total\n", "installment without a name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadOrDefault(missing)
	if err != nil {
		t.Fatalf("Expected defaults for a missing file, got %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(missing); err == nil {
		t.Error("Expected Load to fail for a missing file")
	}
	if _, err := LoadOrDefault(writeConfig(t, "document:\n  variant: short\n")); err == nil {
		t.Error("Expected LoadOrDefault to report invalid files")
	}
}

func TestFindUser(t *testing.T) {
	cfg := &Config{
		Users: []User{
			{Username: "suresh", Password: "harvest-2026", Tenant: "agritech-foods"},
			{Username: "ramesh", Password: "kharif", Tenant: "vadodara-coop"},
		},
	}

	if u := cfg.FindUser("ramesh"); u == nil || u.Tenant != "vadodara-coop" {
		t.Errorf("Expected ramesh, got %+v", u)
	}
	if cfg.FindUser("Ramesh") != nil {
		t.Error("Expected usernames to be case sensitive")
	}
	if cfg.FindUser("mahesh") != nil {
		t.Error("Expected nil for an unknown user")
	}
}
