package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/importer"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/logger"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	infra "resume-builder/pkg/infrastructure"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New("resume-builder", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resumes, closeRepo := openRepo(ctx, cfg, log)
	defer closeRepo()

	aiClient := ai.NewClient(cfg.AIServiceURL, cfg.AITimeout, log, ai.WithLanguage(cfg.AILanguage))
	renderer := infra.NewChromedpRenderer(cfg.ChromePath)
	imp := importer.NewRegistry(aiClient)

	svc := usecase.NewResumeService(resumes, log)
	sessions := usecase.NewSessions(svc, cfg.SessionTTL, log)

	h := httpadapter.NewHandler(httpadapter.Deps{
		Resumes:   svc,
		Sessions:  sessions,
		Intents:   usecase.NewIntents(svc, sessions, imp),
		Generator: usecase.NewGenerator(aiClient, sessions, log),
		Printer:   usecase.NewPrinter(svc, renderer),
		Importer:  imp,
		AI:        aiClient,
	}, log)
	app := httpadapter.NewApp(h)

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Str("environment", string(cfg.Environment)).Msg("HTTP server starting")
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTPPort)); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server…")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// openRepo connects to Postgres and applies migrations. Outside
// production an unreachable database falls back to the in-memory store.
func openRepo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (usecase.ResumeRepo, func()) {
	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err == nil {
		err = migration.RunMigrations(ctx, pool, log)
		if err != nil {
			pool.Close()
		}
	}
	if err != nil {
		if cfg.Environment == config.EnvProduction {
			log.Fatal().Err(err).Msg("database not available")
		}
		log.Warn().Err(err).Msg("database not available, keeping resumes in memory")
		return repo.NewMemoryRepo(), func() {}
	}
	return repo.NewPostgresRepo(pool, log), pool.Close
}
