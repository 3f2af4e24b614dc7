// Package server contains the HTTP handlers and wiring for the public API.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"portfolio/internal/cache"
	"portfolio/internal/captcha"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/mailer"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// initMetrics creates the shared Prometheus middleware. Collector
// registration is global, so this must run at most once per process even
// when multiple Server instances exist (as in tests).
func initMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New("portfolio-api")
	})
	return promInstance
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	limitStore     middleware.CounterStore
	promMiddleware *fiberprometheus.FiberPrometheus
	projectRepo    repository.ProjectRepository
	commentRepo    repository.CommentRepository
	contactRepo    repository.ContactRepository
	contactService *service.ContactService
	commentService *service.CommentService
	projectService *service.ProjectService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RateLimitStore == "redis" || cfg.RedisURL != "" {
		cache.InitRedis(cfg.RedisURL)
		redisClient = cache.GetClient()
	}

	verifier := captcha.New(cfg)
	m, err := mailer.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("mailer setup failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, verifier, m)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	verifier captcha.Verifier,
	m mailer.Mailer,
) (*Server, error) {
	projectRepo := repository.NewProjectRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	contactRepo := repository.NewContactRepository(db)

	var limitStore middleware.CounterStore
	if cfg.RateLimitStore == "redis" && redisClient != nil {
		limitStore = middleware.NewRedisStore(redisClient)
	} else {
		limitStore = middleware.NewMemoryStore()
	}

	prom := initMetrics()

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		limitStore:     limitStore,
		promMiddleware: prom,
		projectRepo:    projectRepo,
		commentRepo:    commentRepo,
		contactRepo:    contactRepo,
	}
	server.contactService = service.NewContactService(contactRepo, verifier, m)
	server.commentService = service.NewCommentService(commentRepo, projectRepo, verifier, cfg.CommentCaptchaRequired)
	server.projectService = service.NewProjectService(projectRepo, commentRepo)

	return server, nil
}

// Shutdown releases server-owned resources: the in-memory limiter's sweep
// goroutine and the Redis connection if one was established.
func (s *Server) Shutdown(ctx context.Context) error {
	if mem, ok := s.limitStore.(*middleware.MemoryStore); ok {
		mem.Close()
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// NewApp builds the Fiber app with the error boundary installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler is the outermost boundary: anything that escapes a handler is
// logged with request context and converted to a generic 500 envelope.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok && fiberErr.Code < fiber.StatusInternalServerError {
		switch fiberErr.Code {
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			return models.RespondError(c, fiberErr.Code, models.NewNotFoundError("Resource"))
		default:
			return models.RespondError(c, fiberErr.Code,
				&models.AppError{Code: models.CodeValidation, Message: fiberErr.Message})
		}
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		"path", c.Path(),
		"method", c.Method(),
		"error", err,
	)
	return models.RespondError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and client IP
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (the limiters)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	contactLimit, contactWindow := s.policy(s.config.ContactRateLimit, 3, time.Minute)
	commentLimit, commentWindow := s.policy(s.config.CommentRateLimit, 5, time.Minute)

	api := app.Group("/api")

	api.Post("/contact", middleware.RateLimit(
		s.limitStore, contactLimit, contactWindow, "contact"), s.CreateContactMessage)

	projects := api.Group("/projects")
	projects.Get("/", s.GetProjects)
	projects.Get("/:slug/comments", s.GetComments)
	projects.Post("/:slug/comments", middleware.RateLimit(
		s.limitStore, commentLimit, commentWindow, "comment"), s.CreateComment)
	projects.Get("/:slug", s.GetProject)
}

// policy parses a configured limit string, falling back to defaults so a
// malformed value degrades to the documented policy instead of crashing.
func (s *Server) policy(raw string, defLimit int, defWindow time.Duration) (int, time.Duration) {
	limit, window, err := middleware.ParsePolicy(raw)
	if err != nil {
		middleware.Logger.Warn("invalid rate limit policy, using default",
			"policy", raw, "error", err)
		return defLimit, defWindow
	}
	return limit, window
}

// HealthCheck reports service and database status. It always answers 200;
// a degraded database shows up in the body, not the status code.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
		"db":     dbStatus,
		"time":   time.Now().UTC(),
	})
}
