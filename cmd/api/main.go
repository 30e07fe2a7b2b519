package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundtrack/internal/adapter/repo"
	"fundtrack/internal/http/handlers"
	httpapi "fundtrack/internal/http/httpapi"
	"fundtrack/internal/infra"
	"fundtrack/internal/infra/geoip"
	"fundtrack/internal/middleware"
	"fundtrack/internal/snapshot"
)

func main() {
	infra.LoadEnvFiles()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogFile)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	interns := repo.NewUserRepository(runner)
	donations := repo.NewDonationRepository(runner)
	announcements := repo.NewAnnouncementRepository(runner)
	loader := snapshot.NewLoader(interns, donations, announcements, cfg.FetchTimeout, logger)

	app := handlers.NewApp(interns, donations, announcements, loader, cfg.DefaultGoal, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		Locales:         middleware.NewLocales(cfg.DefaultLocale, cfg.SupportedLocales),
		CountryLookup:   resolver.Lookup(),
		RateLimitPerMin: cfg.RateLimitPerMin,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("env", cfg.AppEnv).Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
