package container

import (
	"context"
	"fmt"
	"log"

	"gallery-backend/internal/config"
	infraCache "gallery-backend/internal/infrastructure/cache"
	"gallery-backend/internal/infrastructure/database"
	"gallery-backend/pkg/cache"
	"gallery-backend/pkg/jwt"

	authorHandler "gallery-backend/internal/domains/author/handler"
	authorRepo "gallery-backend/internal/domains/author/repository"
	authorService "gallery-backend/internal/domains/author/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the API process.
// Order of construction: config -> infrastructure -> repository -> service -> handler.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB // nil when DATABASE_URL is not set
	Cache      cache.Cache          // nil when REDIS_ADDR is not set or unreachable
	JWTManager *jwt.Manager         // nil when the session gate is disabled

	redis *infraCache.RedisCache

	// Author domain
	AuthorRepo    authorRepo.RepositoryInterface
	AuthorService authorService.ServiceInterface
	AuthorHandler *authorHandler.AuthorHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph. A missing DATABASE_URL is not an
// error here: the author handler answers every request with the
// configuration error instead. An unreachable database is not fatal either:
// queries fail per request until it comes back.
func NewContainer(ctx context.Context) (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// STEP 1: CONFIGURATION
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	// STEP 2: DATABASE
	if dbConfig.Configured() {
		log.Println("🗄️  Connecting to PostgreSQL...")

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db
		log.Println("✅ Database pool ready")
	} else {
		log.Println("⚠️  DATABASE_URL not set, author requests will fail until it is configured")
	}

	// STEP 3: CACHE
	if cfg.Redis.Enabled() {
		log.Println("🔴 Connecting to Redis...")

		rc := infraCache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			// not critical: the list is served straight from the database
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
			_ = rc.Close()
		} else {
			c.redis = rc
			c.Cache = rc
			log.Println("✅ Redis connected")
		}
	}

	// STEP 4: IDENTITY
	if cfg.Identity.JWTSecret != "" {
		c.JWTManager = jwt.NewManager(cfg.Identity.JWTSecret)
	} else {
		log.Println("⚠️  IDENTITY_JWT_SECRET not set, write requests are not session checked")
	}

	// STEP 5: AUTHOR DOMAIN
	c.initAuthor()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// initAuthor wires repository -> service -> handler. Without a database the
// handler gets a nil service.
func (c *Container) initAuthor() {
	if c.DB != nil {
		var repo authorRepo.RepositoryInterface = authorRepo.NewPostgresRepository(c.DB.Pool)
		if c.Cache != nil {
			repo = authorRepo.NewCachedRepository(repo, c.Cache, c.Config.Redis.ListTTL)
		}
		c.AuthorRepo = repo
		c.AuthorService = authorService.NewAuthorService(repo)
	}

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases the pool and the Redis client.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up resources...")

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Cleanup completed")
}
