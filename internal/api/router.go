package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/iotrelay/telemetry-api/docs"
	"github.com/iotrelay/telemetry-api/internal/api/handler"
	"github.com/iotrelay/telemetry-api/internal/api/middleware"
	"github.com/iotrelay/telemetry-api/internal/core/domain"
	"github.com/iotrelay/telemetry-api/internal/core/ports"
	"github.com/iotrelay/telemetry-api/internal/infrastructure/config"
)

// Services bundles the core services the router dispatches to.
type Services struct {
	Telemetry ports.TelemetryService
	Commands  ports.CommandService
	Auth      ports.AuthService
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Route capabilities: device-facing endpoints (ingestion, command drain) are
// public, log/status reads need any authenticated role, and user management
// plus command enqueue are admin-only.
func NewRouter(cfg *config.Config, log zerolog.Logger, svc Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit("256K"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("telemetry"))

	// --- Handlers ---
	telemetryHandler := handler.NewTelemetryHandler(svc.Telemetry)
	commandHandler := handler.NewCommandHandler(svc.Commands)
	authHandler := handler.NewAuthHandler(svc.Auth)
	healthHandler := handler.NewHealthHandler(svc.Telemetry)

	authRequired := middleware.Auth(svc.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Operational endpoints ---
	e.GET("/", healthHandler.Info)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	apiGroup := e.Group("/api")

	// --- Public: devices and probes ---
	apiGroup.POST("/logs", telemetryHandler.Ingest)
	apiGroup.GET("/commands/:deviceId", commandHandler.Poll)
	apiGroup.GET("/health", healthHandler.Health)
	apiGroup.POST("/login", authHandler.Login)

	// --- Any authenticated role ---
	authed := apiGroup.Group("", authRequired)
	authed.GET("/logs", telemetryHandler.List)
	authed.GET("/logs/:deviceId", telemetryHandler.ListByDevice)
	authed.GET("/status/:deviceId", telemetryHandler.Status)

	// --- Admin only ---
	admin := apiGroup.Group("", authRequired, adminOnly)
	admin.POST("/users", authHandler.CreateUser)
	admin.GET("/users", authHandler.ListUsers)
	admin.POST("/control", commandHandler.Control)

	return e
}
