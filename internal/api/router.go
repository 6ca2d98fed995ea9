package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/abelab/crms/docs"
	"github.com/abelab/crms/internal/api/handler"
	"github.com/abelab/crms/internal/api/middleware"
	"github.com/abelab/crms/internal/core/ports"
	"github.com/abelab/crms/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log          zerolog.Logger
	Auth         ports.AuthService
	Users        ports.UserService
	Reservations ports.ReservationService
	Tokens       ports.TokenResolver
	Guard        ports.AdminGuard
	Readiness    map[string]handlers.Check

	// Registry receives the HTTP request metrics and backs /metrics. The
	// default Prometheus registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	promMiddleware := echoprometheus.MiddlewareConfig{Subsystem: "http"}
	promHandler := echoprometheus.HandlerConfig{}
	if d.Registry != nil {
		promMiddleware.Registerer = d.Registry
		promHandler.Gatherer = d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promMiddleware))

	// --- Probes, metrics and docs (no auth required) ---
	e.GET("/health", handlers.Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(promHandler))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	reservationHandler := handler.NewReservationHandler(d.Reservations)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/login", authHandler.Login)
	api.POST("/signup", authHandler.Signup)

	authed := api.Group("", middleware.Auth(d.Tokens))
	admin := middleware.RequireAdmin(d.Guard)

	// --- User routes ---
	authed.GET("/users", userHandler.List, admin)
	authed.POST("/users", userHandler.Create, admin)
	authed.GET("/users/me", userHandler.Me)
	authed.PUT("/users/me", userHandler.UpdateMe)
	authed.PUT("/users/me/password", userHandler.UpdateMyPassword)
	authed.PUT("/users/:user_id", userHandler.Update, admin)
	authed.DELETE("/users/:user_id", userHandler.Delete, admin)

	// --- Reservation routes ---
	authed.GET("/reservations", reservationHandler.List)
	authed.GET("/reservations/next-day", reservationHandler.NextDay)
	authed.POST("/reservations", reservationHandler.Create)
	authed.PUT("/reservations/:reservation_id", reservationHandler.Update)
	authed.DELETE("/reservations/:reservation_id", reservationHandler.Delete)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
