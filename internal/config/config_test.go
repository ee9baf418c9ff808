package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:3001" {
		t.Errorf("ListenAddr = %q, want default", cfg.ListenAddr)
	}
	if cfg.StoreDriver != "ndjson" {
		t.Errorf("StoreDriver = %q, want ndjson", cfg.StoreDriver)
	}
	if cfg.ZH != TranslatorNop || cfg.EN != TranslatorNop {
		t.Errorf("default ZH/EN = %v/%v, want Nop/Nop", cfg.ZH, cfg.EN)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("TARGET_EN_TRANSLATOR", "google")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("ListenAddr = %q, want overridden", cfg.ListenAddr)
	}
	if cfg.EN != TranslatorGoogle {
		t.Errorf("EN = %v, want google", cfg.EN)
	}
}

func TestLoadFileCredentialsAndEnvPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := "zh: baidu\nbaidu:\n  appid: file-app\n  secret: file-secret\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("TERM_MT_CONFIG_FILE", path)
	t.Setenv("BAIDU_SECRET", "env-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ZH != TranslatorBaidu {
		t.Errorf("ZH = %v, want baidu from file", cfg.ZH)
	}
	if cfg.Baidu == nil || cfg.Baidu.Secret != "env-secret" {
		t.Errorf("Baidu credentials = %+v, want env BAIDU_SECRET to win", cfg.Baidu)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "TERM_STORE_PATH", "TERM_STORE_DRIVER",
		"TERM_MT_CONFIG_FILE", "TARGET_ZH_TRANSLATOR", "TARGET_EN_TRANSLATOR",
		"BAIDU_APPID", "BAIDU_SECRET", "MICROSOFT_API_KEY", "DEEPL_AUTH_KEY",
	} {
		t.Setenv(key, "")
	}
}
