package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sudhanthirapriya/face-recognition-project/internal/api/handler"
	"github.com/sudhanthirapriya/face-recognition-project/internal/api/middleware"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/ports"
	"github.com/sudhanthirapriya/face-recognition-project/internal/core/service"
	"github.com/sudhanthirapriya/face-recognition-project/internal/infrastructure/config"
	mongodb "github.com/sudhanthirapriya/face-recognition-project/internal/infrastructure/db/mongo"
	redisdb "github.com/sudhanthirapriya/face-recognition-project/internal/infrastructure/db/redis"
	"github.com/sudhanthirapriya/face-recognition-project/pkg/logger"
)

// Dependencies carries the already-constructed adapters the router wires
// into the services. The face comparator is injected here rather than built
// inside, so its process-wide lifetime belongs to the host application.
type Dependencies struct {
	Mongo      *mongo.Database
	Redis      *goredis.Client
	Comparator ports.FaceComparator
	Images     ports.FaceImageStore
	Normalizer ports.PhotoNormalizer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit(cfg.Uploads.MaxBodySize))
	e.Use(echoprometheus.NewMiddleware("faceenroll"))

	// --- Dependencies ---
	identityRepo := mongodb.NewIdentityRepository(deps.Mongo)
	sessions := redisdb.NewSessionStore(deps.Redis)

	enrollmentService := service.NewEnrollmentService(
		identityRepo, deps.Comparator, deps.Images, deps.Normalizer, logger.Get())
	authService := service.NewAuthService(identityRepo, sessions, cfg.JWTSecret, cfg.SessionTTL)

	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	authMiddleware := middleware.Auth(cfg.JWTSecret, handler.SessionCookieName, sessions)

	// --- Enrollment & auth routes ---
	e.POST("/register", enrollmentHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout, authMiddleware)
	e.GET("/dashboard", authHandler.Dashboard, authMiddleware)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
