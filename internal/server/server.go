// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/permission"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	userRepo        repository.UserRepository
	categoryRepo    repository.CategoryRepository
	articleRepo     repository.ArticleRepository
	commentRepo     repository.CommentRepository
	eventRepo       repository.EventRepository
	userService     *service.UserService
	categoryService *service.CategoryService
	articleService  *service.ArticleService
	commentService  *service.CommentService
	eventService    *service.EventService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests and bootstrap code that establish DB/Redis themselves use this.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		userRepo:     repository.NewUserRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		articleRepo:  repository.NewArticleRepository(db),
		commentRepo:  repository.NewCommentRepository(db),
		eventRepo:    repository.NewEventRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo, cfg.PasswordSalt)
	server.categoryService = service.NewCategoryService(server.categoryRepo)
	server.articleService = service.NewArticleService(server.articleRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.articleRepo)
	server.eventService = service.NewEventService(server.eventRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID into the request context
	app.Use(middleware.ContextMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", middleware.AuthOptional, s.Logout)

	// User administration
	users := api.Group("/users")
	users.Get("/", middleware.AuthRequired, s.RequirePermission(permission.ManageUser), s.ListUsers)
	users.Post("/", middleware.AuthRequired, s.RequirePermission(permission.ManageUser), s.CreateUser)
	users.Get("/:id", middleware.AuthRequired, s.GetUser)
	users.Put("/:id", middleware.AuthRequired, s.RequirePermission(permission.ManageUser), s.UpdateUser)
	users.Delete("/:id", middleware.AuthRequired, s.RequirePermission(permission.ManageUser), s.DeleteUser)

	// Categories: public reads, gated writes
	categories := api.Group("/categories")
	categories.Get("/", s.ListCategories)
	categories.Post("/", middleware.AuthRequired, s.RequirePermission(permission.ManageCategory), s.CreateCategory)
	categories.Put("/:id", middleware.AuthRequired, s.RequirePermission(permission.ManageCategory), s.RenameCategory)
	categories.Delete("/:id", middleware.AuthRequired, s.RequirePermission(permission.ManageCategory), s.DeleteCategory)

	// Articles: public reads with per-identity visibility, gated writes
	articles := api.Group("/articles")
	articles.Get("/", middleware.AuthOptional, s.ListArticles)
	articles.Get("/:id", middleware.AuthOptional, s.GetArticle)
	articles.Post("/", middleware.AuthRequired, s.RequirePermission(permission.PostArticle), s.CreateArticle)
	articles.Put("/:id", middleware.AuthRequired, s.RequirePermission(permission.EditArticle), s.UpdateArticle)
	articles.Delete("/:id", middleware.AuthRequired, s.RequirePermission(permission.DeleteArticle), s.DeleteArticle)

	// Comments live under their article for reading and creation
	articles.Get("/:id/comments", middleware.AuthOptional, s.ListComments)
	articles.Post("/:id/comments", middleware.AuthOptional, middleware.RateLimit(
		s.redis, 10, time.Minute, "comment"), s.CreateComment)

	comments := api.Group("/comments")
	comments.Put("/:id/review", middleware.AuthRequired, s.RequirePermission(permission.ReviewComment), s.ReviewComment)
	comments.Delete("/:id", middleware.AuthRequired, s.RequirePermission(permission.DeleteComment), s.DeleteComment)

	// Audit log: append-only, read gated
	events := api.Group("/events")
	events.Get("/", middleware.AuthRequired, s.RequirePermission(permission.ViewEvent), s.ListEvents)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the store is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
