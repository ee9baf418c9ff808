// Package config loads the service's configuration: env vars read
// directly with sane defaults, exactly as the teacher's cmd/server/main.go
// does (os.Getenv with fallbacks), layered over an optional YAML file
// for vendor credentials that the original Rust config.rs also kept
// separate from the listen address and store path.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Translator names the backend a given target language is bound to,
// mirroring original_source/server/src/config.rs's Translator enum
// (Nop/Google/Baidu/Microsoft/DeepL), re-expressed as a plain string so
// the HTTP surface can look it up in a map built once at startup.
type Translator string

const (
	TranslatorNop       Translator = "nop"
	TranslatorGoogle    Translator = "google"
	TranslatorBaidu     Translator = "baidu"
	TranslatorMicrosoft Translator = "microsoft"
	TranslatorDeepL     Translator = "deepl"
)

// BaiduCredentials mirrors config.rs's BaiduConfig.
type BaiduCredentials struct {
	AppID  string `yaml:"appid"`
	Secret string `yaml:"secret"`
}

// MicrosoftCredentials mirrors config.rs's MicrosoftConfig.
type MicrosoftCredentials struct {
	APIKey string `yaml:"api_key"`
}

// DeepLCredentials mirrors config.rs's DeepLConfig.
type DeepLCredentials struct {
	AuthKey string `yaml:"auth_key"`
}

// fileConfig is the shape of the optional YAML overlay file. Only
// vendor credentials live here; everything else stays env-var-first
// per the teacher's style (SPEC_FULL.md §2).
type fileConfig struct {
	Baidu     *BaiduCredentials     `yaml:"baidu"`
	Microsoft *MicrosoftCredentials `yaml:"microsoft"`
	DeepL     *DeepLCredentials     `yaml:"deepl"`
	ZH        string                `yaml:"zh"`
	EN        string                `yaml:"en"`
}

// Config is the fully resolved configuration for one server run.
type Config struct {
	ListenAddr string
	StorePath  string
	StoreDriver string // "ndjson" (default) or "sqlite"

	// ZH/EN bind a target language to a backend translator name,
	// restored from the original's per-language Translator fields
	// (SPEC_FULL.md §5).
	ZH Translator
	EN Translator

	Baidu     *BaiduCredentials
	Microsoft *MicrosoftCredentials
	DeepL     *DeepLCredentials
}

// Load builds a Config from environment variables, optionally layered
// over a YAML file named by TERM_MT_CONFIG_FILE. Env vars always win
// over the file (SPEC_FULL.md §2's "env vars always win" rule).
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:  envOr("LISTEN_ADDR", "127.0.0.1:3001"),
		StorePath:   envOr("TERM_STORE_PATH", "dictionary.db"),
		StoreDriver: envOr("TERM_STORE_DRIVER", "ndjson"),
		ZH:          TranslatorNop,
		EN:          TranslatorNop,
	}

	if path := os.Getenv("TERM_MT_CONFIG_FILE"); path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if fc.ZH != "" {
			cfg.ZH = Translator(fc.ZH)
		}
		if fc.EN != "" {
			cfg.EN = Translator(fc.EN)
		}
		cfg.Baidu = fc.Baidu
		cfg.Microsoft = fc.Microsoft
		cfg.DeepL = fc.DeepL
	}

	if v := os.Getenv("TARGET_ZH_TRANSLATOR"); v != "" {
		cfg.ZH = Translator(v)
	}
	if v := os.Getenv("TARGET_EN_TRANSLATOR"); v != "" {
		cfg.EN = Translator(v)
	}

	if appID, secret := os.Getenv("BAIDU_APPID"), os.Getenv("BAIDU_SECRET"); appID != "" || secret != "" {
		if cfg.Baidu == nil {
			cfg.Baidu = &BaiduCredentials{}
		}
		if appID != "" {
			cfg.Baidu.AppID = appID
		}
		if secret != "" {
			cfg.Baidu.Secret = secret
		}
	}
	if key := os.Getenv("MICROSOFT_API_KEY"); key != "" {
		cfg.Microsoft = &MicrosoftCredentials{APIKey: key}
	}
	if key := os.Getenv("DEEPL_AUTH_KEY"); key != "" {
		cfg.DeepL = &DeepLCredentials{AuthKey: key}
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parsing config file: %w", err)
	}
	return fc, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
