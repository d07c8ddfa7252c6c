package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type clientSettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testConfig struct {
	Client clientSettings `mapstructure:"client"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yml", `
client:
  base_url: "https://api.example.com"
  timeout: 15s
`)

	var cfg testConfig
	if err := Load("svc", &cfg, WithConfigFile(cfgFile)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Client.BaseURL != "https://api.example.com" {
		t.Errorf("base_url = %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Timeout != 15*time.Second {
		t.Errorf("timeout = %v", cfg.Client.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yml", `
client:
  base_url: "https://file.example.com"
`)

	t.Setenv("CLIENT_BASE_URL", "https://env.example.com")

	var cfg testConfig
	if err := Load("svc", &cfg, WithConfigFile(cfgFile)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Client.BaseURL != "https://env.example.com" {
		t.Errorf("env should win, got %q", cfg.Client.BaseURL)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "CLIENT_BASE_URL=https://dotenv.example.com\n")
	t.Cleanup(func() { os.Unsetenv("CLIENT_BASE_URL") })

	var cfg testConfig
	if err := Load("svc", &cfg, WithEnvFile(envFile)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Client.BaseURL != "https://dotenv.example.com" {
		t.Errorf("base_url = %q", cfg.Client.BaseURL)
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	var cfg testConfig
	err := Load("svc", &cfg, WithConfigFile("/does/not/exist.yml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_NoFilesAtAll(t *testing.T) {
	// Nothing resolvable: Load should still succeed with zero values.
	var cfg testConfig
	if err := Load("no-such-service", &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("CLIENT_BASE_URL")

	want := map[string]bool{
		"client_base_url": false,
		"client.base.url": false,
		"client.base_url": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for key, found := range want {
		if !found {
			t.Errorf("variant %q missing from %v", key, variants)
		}
	}
}
