package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ferreteria-epa/backoffice/docs"
	"github.com/ferreteria-epa/backoffice/internal/api/handler"
	"github.com/ferreteria-epa/backoffice/internal/api/middleware"
	"github.com/ferreteria-epa/backoffice/internal/core/domain"
	"github.com/ferreteria-epa/backoffice/internal/core/ports"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	Log          zerolog.Logger
	Auth         ports.AuthService
	Registration ports.RegistrationService
	Products     ports.ProductService
	Employees    ports.Directory
	Customers    ports.Directory
	Tokens       middleware.TokenDecoder
	// Throttle is optional; nil disables login rate limiting.
	Throttle     middleware.AttemptLimiter
	Cookie       handler.CookieOptions
	CORSOrigins  []string
	HealthChecks map[string]handler.Check
	// Registry receives the HTTP metrics and serves /metrics. Nil means the
	// default Prometheus registry, which also holds the auth metrics.
	Registry *prometheus.Registry
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowCredentials: true,
	}))
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "backoffice",
		Registerer: registerer,
	}))

	gate := middleware.NewGate(deps.Tokens, deps.Cookie.Name)
	staff := gate.Require(domain.RoleAdmin, domain.RoleEmployee)
	adminOnly := gate.Require(domain.RoleAdmin)
	anyone := gate.Require(domain.RoleAdmin, domain.RoleEmployee, domain.RoleClient)

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie, deps.Log)
	registrationHandler := handler.NewRegistrationHandler(deps.Registration)
	productHandler := handler.NewProductHandler(deps.Products)
	employeeHandler := handler.NewDirectoryHandler(deps.Employees)
	customerHandler := handler.NewDirectoryHandler(deps.Customers)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	api := e.Group("/api")

	// --- Auth routes ---
	var loginMiddleware []echo.MiddlewareFunc
	if deps.Throttle != nil {
		loginMiddleware = append(loginMiddleware, middleware.LoginThrottle(deps.Throttle, deps.Log))
	}
	api.POST("/login", authHandler.Login, loginMiddleware...)
	api.POST("/logout", authHandler.Logout)
	api.GET("/login/me", authHandler.Me, anyone)

	// --- Registration ---
	api.POST("/registerEmployee", registrationHandler.RegisterEmployee, adminOnly)
	api.POST("/registerClients", registrationHandler.RegisterClient)

	// --- Directories ---
	api.GET("/employee", employeeHandler.List, adminOnly)
	api.GET("/customers", customerHandler.List, staff)

	// --- Products ---
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create, staff)
	api.PUT("/products/:id", productHandler.Update, staff)
	api.DELETE("/products/:id", productHandler.Delete, staff)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// PingCheck adapts a ping function to a readiness check.
func PingCheck(ping func(ctx context.Context) error) handler.Check {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return ping(ctx)
	}
}
