package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"promisecard/internal/assets"
	"promisecard/internal/domain"
	"promisecard/internal/engine"
	"promisecard/internal/http/handlers"
	"promisecard/internal/http/httpapi"
	"promisecard/internal/infra"
	"promisecard/internal/infra/geoip"
	"promisecard/internal/middleware"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// In-memory asset rails with the faucet reserve pre-funded. Production
	// deployments swap in an adapter over the real payment rails.
	bank := assets.NewBank()
	if err := bank.Deposit(domain.AssetNative, assets.Custody, cfg.FaucetReserve); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed faucet reserve")
	}

	eng, err := engine.New(engine.Config{
		FeeBps:         cfg.FeeBps,
		FaucetAmount:   cfg.FaucetAmount,
		FaucetCooldown: cfg.FaucetCooldown,
		FeeRecipient:   cfg.FeeRecipient,
		Admin:          cfg.AdminPrincipal,
	}, bank, nil, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build engine")
	}

	ctx := context.Background()

	// Journal DB is optional; without it the API serves engine state only.
	var sql infra.SQLExecutor
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect journal database")
		}
		defer dbpool.Close()
		sql = infra.NewSQLRunner(dbpool, logger)
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.(*geoip.Resolver).Close()
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(eng, sql, logger)
	router := httpapi.NewRouter(app, cfg, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
