package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storefront/internal/activity"
	"storefront/internal/copilot"
	"storefront/internal/domain"
	"storefront/internal/http/handlers"
	"storefront/internal/http/httpapi"
	"storefront/internal/infra"
	"storefront/internal/providers/genai"
	"storefront/internal/store"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	client, err := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		ImageModel: cfg.GeminiImageModel,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.ProviderTimeout},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure gemini client")
	}

	feed := activity.NewLog(logger)
	st := store.New(feed, cfg.StartingBankBalance)
	orch := copilot.NewOrchestrator(copilot.Options{
		Gateway:  client,
		Store:    st,
		Feed:     feed,
		Logger:   logger,
		Cooldown: cfg.CooldownDuration,
	})
	chat := copilot.NewChatSession(orch)

	app := handlers.NewApp(st, orch, chat, feed, logger)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, logger, router)

	feed.Record("Cortex Commerce Initialized. AI Co-pilot is online.", domain.LogSystem)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
