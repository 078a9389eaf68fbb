package router

import (
	"context"
	"net/http"
	"time"

	"backr/internal/api/v1/handler"
	"backr/internal/auth"
	"backr/internal/chain"
	"backr/internal/config"
	"backr/internal/middleware"
	"backr/internal/repository"
	"backr/internal/security"
	"backr/internal/service"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the repositories, services, and handlers and returns the root
// HTTP handler plus the pool for the caller to close.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info().Msg("database connection successful")

	if err := repository.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	// Chain verifier is optional: without an RPC endpoint ledger writes
	// record the submitted hash unverified.
	var verifier *chain.Verifier
	if cfg.ChainRPCURL != "" {
		client, err := chain.Dial(cfg.ChainRPCURL)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		verifier = chain.NewVerifier(client, common.HexToAddress(cfg.ChainTokenAddress), cfg.ChainConfirmations)
		logger.Info().Str("token", cfg.ChainTokenAddress).Uint64("confirmations", cfg.ChainConfirmations).Msg("on-chain payment verification enabled")
	} else {
		logger.Warn().Msg("CHAIN_RPC_URL not set; payment hashes recorded unverified")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	seclog := security.NewRingLog(512, logger)

	creatorRepo := repository.NewCreatorRepo(pool)
	tierRepo := repository.NewTierRepo(pool)
	postRepo := repository.NewPostRepo(pool)
	tipRepo := repository.NewTipRepo(pool)
	membershipRepo := repository.NewMembershipRepo(pool)

	creatorSvc := service.NewCreatorService(creatorRepo, logger)
	tierSvc := service.NewTierService(tierRepo, logger)
	chainWait := time.Duration(cfg.ChainWaitTimeoutSec) * time.Second
	tipSvc := service.NewTipService(tipRepo, verifier, chainWait, seclog, logger)
	membershipSvc := service.NewMembershipService(membershipRepo, tierRepo, verifier, chainWait, seclog, logger)
	entitlementSvc := service.NewEntitlementService(membershipRepo, logger)
	postSvc := service.NewPostService(postRepo, entitlementSvc, logger)
	statsSvc := service.NewStatsService(creatorRepo, tierRepo, postRepo, tipRepo, membershipSvc, logger)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authHandler := handler.NewAuthHandler(auth.NewChallengeStore(), cfg.JWTSecret, sessionTTL, validate, seclog, logger)
	creatorHandler := handler.NewCreatorHandler(creatorSvc, validate, logger)
	tierHandler := handler.NewTierHandler(tierSvc, validate, logger)
	tipHandler := handler.NewTipHandler(tipSvc, validate, logger)
	subscriptionHandler := handler.NewSubscriptionHandler(membershipSvc, validate, logger)
	postHandler := handler.NewPostHandler(postSvc, validate, logger)
	statsHandler := handler.NewStatsHandler(statsSvc, logger)

	authMw := middleware.AuthMiddleware(cfg.JWTSecret, seclog)
	optionalMw := middleware.OptionalAuthMiddleware(cfg.JWTSecret)

	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux)
	creatorHandler.RegisterRoutes(apiV1Mux, authMw)
	tierHandler.RegisterRoutes(apiV1Mux, authMw)
	tipHandler.RegisterRoutes(apiV1Mux, authMw)
	subscriptionHandler.RegisterRoutes(apiV1Mux, authMw)
	postHandler.RegisterRoutes(apiV1Mux, authMw, optionalMw)
	statsHandler.RegisterRoutes(apiV1Mux, authMw)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.CleanupLoop(time.Minute, 3*time.Minute, ctx.Done())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	root := middleware.RateLimitMiddleware(limiter, seclog)(c.Handler(mux))
	root = middleware.MetricsMiddleware(root)
	return middleware.LoggerMiddleware(logger, root), pool, nil
}
