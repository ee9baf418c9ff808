package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kurenaio/ayt-dictionary/internal/api"
	"github.com/kurenaio/ayt-dictionary/internal/catalogue"
	"github.com/kurenaio/ayt-dictionary/internal/config"
	"github.com/kurenaio/ayt-dictionary/internal/translator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open term store: %v", err)
	}

	backends := buildBackends(cfg)

	router := api.SetupRouter(store, backends)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}

// openStore selects the term catalogue backend per TERM_STORE_DRIVER
// (SPEC_FULL.md §3): the spec-mandated NDJSON FileStore by default, or
// the GORM-backed SQLite store when configured.
func openStore(cfg *config.Config) (catalogue.Store, error) {
	if cfg.StoreDriver == "sqlite" {
		return catalogue.OpenGormStore(cfg.StorePath)
	}
	return catalogue.NewFileStore(cfg.StorePath)
}

// buildBackends resolves the zh/en -> vendor translator binding from
// config into constructed translator.Translator instances, built once
// at startup (SPEC_FULL.md §4.6; original config.rs's per-language
// Translator enum).
func buildBackends(cfg *config.Config) map[string]translator.Translator {
	backends := make(map[string]translator.Translator, 2)
	backends["zh"] = newBackend(cfg, cfg.ZH, "zh")
	backends["en"] = newBackend(cfg, cfg.EN, "en")
	return backends
}

func newBackend(cfg *config.Config, name config.Translator, targetLang string) translator.Translator {
	switch name {
	case config.TranslatorGoogle:
		return translator.NewGoogle("ja", targetLang)
	case config.TranslatorBaidu:
		if cfg.Baidu == nil {
			log.Printf("warning: baidu translator selected for %s but no credentials configured; falling back to Nop", targetLang)
			return translator.Nop{}
		}
		return translator.NewBaidu(cfg.Baidu.AppID, cfg.Baidu.Secret, targetLang)
	case config.TranslatorMicrosoft:
		if cfg.Microsoft == nil {
			log.Printf("warning: microsoft translator selected for %s but no credentials configured; falling back to Nop", targetLang)
			return translator.Nop{}
		}
		return translator.NewMicrosoft(cfg.Microsoft.APIKey, targetLang)
	case config.TranslatorDeepL:
		if cfg.DeepL == nil {
			log.Printf("warning: deepl translator selected for %s but no credentials configured; falling back to Nop", targetLang)
			return translator.Nop{}
		}
		return translator.NewDeepL(cfg.DeepL.AuthKey, targetLang)
	default:
		return translator.Nop{}
	}
}
