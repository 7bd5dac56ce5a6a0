package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferreteria-epa/backoffice/internal/api"
	"github.com/ferreteria-epa/backoffice/internal/api/handler"
	"github.com/ferreteria-epa/backoffice/internal/core/service"
	"github.com/ferreteria-epa/backoffice/internal/infrastructure/config"
	mongodb "github.com/ferreteria-epa/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/ferreteria-epa/backoffice/internal/infrastructure/db/redis"
	"github.com/ferreteria-epa/backoffice/internal/infrastructure/queue"
	"github.com/ferreteria-epa/backoffice/internal/infrastructure/security"
	"github.com/ferreteria-epa/backoffice/pkg/logger"
)

// @title        Ferreteria back office API
// @version      1.0
// @description  Authentication, catalogue and directory endpoints of the hardware store back office.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "backoffice",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	employees := mongodb.NewEmployeeDirectory(db)
	customers := mongodb.NewCustomerDirectory(db)
	products := mongodb.NewProductRepository(db)
	attempts := mongodb.NewAuditRepository(db)
	if err := mongodb.EnsureIndexes(ctx, employees, customers, attempts); err != nil {
		return err
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	audit := queue.NewAuditDispatcher(cfg.AuditWorkers, attempts, log)
	audit.Start(workerCtx)
	defer func() {
		cancelWorkers()
		audit.Wait()
	}()

	tokens := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expires)
	passwords := security.NewBcryptHasher(0)

	deps := api.Dependencies{
		Log: log,
		Auth: service.NewAuthService(
			service.AdminCredentials{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
			service.AuthDependencies{
				Employees: employees,
				Customers: customers,
				Passwords: passwords,
				Sessions:  tokens,
				Audit:     audit,
			},
			log,
		),
		Registration: service.NewRegistrationService(employees, customers, passwords, log),
		Products:     service.NewProductService(products, log),
		Employees:    employees,
		Customers:    customers,
		Tokens:       tokens,
		Cookie:       handler.CookieOptions{Name: cfg.Cookie.Name, Secure: cfg.Cookie.Secure},
		CORSOrigins:  cfg.CORS.Origins,
		HealthChecks: map[string]handler.Check{
			"mongodb": api.PingCheck(func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }),
			"redis":   api.PingCheck(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
	}
	if cfg.RateLimit.Enabled {
		deps.Throttle = redisdb.NewLoginThrottle(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}
	if cfg.Admin.Email == "" {
		log.Warn().Msg("ADMIN_EMAIL is empty, administrator login disabled")
	}

	e := api.NewRouter(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
