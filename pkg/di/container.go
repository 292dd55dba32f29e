package di

import (
	"context"
	"time"

	"gorm.io/gorm"

	"people-service/application/serviceimpl"
	"people-service/domain/repositories"
	"people-service/domain/services"
	"people-service/infrastructure/cache"
	"people-service/infrastructure/postgres"
	"people-service/infrastructure/redis"
	"people-service/infrastructure/worker"
	"people-service/interfaces/api/handlers"
	"people-service/pkg/avatar"
	"people-service/pkg/config"
	"people-service/pkg/logger"
	"people-service/pkg/scheduler"
)

const avatarReconcileJobID = "avatar-reconcile"

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redis.RedisClient
	EventScheduler scheduler.EventScheduler
	Avatars        *avatar.Generator

	// Repositories
	// PersonStore is the database repository; PersonRepository adds the
	// list cache on top when Redis is available.
	PersonStore      repositories.PersonRepository
	PeopleListCache  repositories.PersonListCache
	PersonRepository repositories.PersonRepository

	// Services
	PersonService services.PersonService

	// Workers
	AvatarWorker *worker.AvatarWorker
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	if err := c.initWorkers(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg

	if err := logger.Init(cfg.App.LogDir, true); err != nil {
		return err
	}
	if cfg.App.Env == "production" {
		logger.Default().SetMinLevel(logger.LevelInfo)
	}
	logger.Startup("config_loaded", "Configuration loaded", map[string]interface{}{
		"environment": cfg.App.Env,
		"log_dir":     cfg.App.LogDir,
	})
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		Verbose:  c.Config.App.Env == "development",
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)

	// Initialize Redis
	if !c.Config.Redis.CacheEnabled {
		logger.Startup("redis_disabled", "List cache disabled, skipping Redis", nil)
	} else {
		redisConfig := redis.RedisConfig{
			Host:     c.Config.Redis.Host,
			Port:     c.Config.Redis.Port,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		}
		c.RedisClient = redis.NewRedisClient(redisConfig)

		// Test Redis connection
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.RedisClient.Ping(ctx); err != nil {
			logger.StartupWarn("redis_connection_failed", "Redis connection failed, list cache disabled", map[string]interface{}{"error": err.Error()})
			_ = c.RedisClient.Close()
			c.RedisClient = nil
		} else {
			logger.Startup("redis_connected", "Redis connected", map[string]interface{}{"addr": c.Config.Redis.Addr()})
		}
	}

	// Avatar configuration is fixed for the life of the process
	c.Avatars = avatar.NewGenerator(avatar.Config{
		BaseURL:     c.Config.Avatar.BaseURL,
		ImageSuffix: c.Config.Avatar.ImageSuffix,
		Set:         c.Config.Avatar.Set,
		Size:        c.Config.Avatar.Size,
		DefaultSeed: c.Config.Avatar.DefaultSeed,
	})
	logger.Startup("avatar_generator_initialized", "Avatar generator initialized", map[string]interface{}{
		"base_url": c.Config.Avatar.BaseURL,
	})

	return nil
}

func (c *Container) initRepositories() error {
	c.PersonStore = postgres.NewPersonRepository(c.DB)
	c.PersonRepository = c.PersonStore

	if c.RedisClient != nil {
		ttl := time.Duration(c.Config.Redis.CacheTTLSeconds) * time.Second
		c.PeopleListCache = redis.NewPeopleListCache(c.RedisClient, ttl)
		c.PersonRepository = cache.NewPersonRepository(c.PersonStore, c.PeopleListCache)
		logger.Startup("list_cache_enabled", "People list cache enabled", map[string]interface{}{"ttl_seconds": c.Config.Redis.CacheTTLSeconds})
	}

	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	c.PersonService = serviceimpl.NewPersonService(c.PersonRepository, c.Avatars)
	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	// Start the scheduler
	c.EventScheduler.Start()
	logger.Startup("scheduler_started", "Event scheduler started", nil)
	return nil
}

func (c *Container) initWorkers() error {
	// Reads the store directly so it never works from a cached list
	c.AvatarWorker = worker.NewAvatarWorker(c.PersonStore, c.Avatars, c.PeopleListCache)

	// Schedule avatar reconcile
	c.scheduleAvatarReconcile()

	if c.Config.Jobs.AvatarReconcileOnStart {
		go c.runAvatarReconcile()
	}

	return nil
}

// scheduleAvatarReconcile sets up the periodic avatar reconcile job
func (c *Container) scheduleAvatarReconcile() {
	cronExpr := c.Config.Jobs.AvatarReconcileCron
	if cronExpr == "" {
		logger.Startup("avatar_reconcile_disabled", "Scheduled avatar reconcile disabled", nil)
		return
	}

	if err := c.EventScheduler.AddJob(avatarReconcileJobID, cronExpr, c.runAvatarReconcile); err != nil {
		logger.StartupWarn("avatar_reconcile_schedule_failed", "Failed to schedule avatar reconcile job", map[string]interface{}{"error": err.Error()})
		return
	}
	logger.Startup("avatar_reconcile_scheduled", "Avatar reconcile job scheduled", map[string]interface{}{"cron": cronExpr})
}

func (c *Container) runAvatarReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	updated, err := c.AvatarWorker.Reconcile(ctx)
	if err != nil {
		logger.SchedulerError("avatar_reconcile_job_error", "Avatar reconcile job failed", err, nil)
		return
	}
	if updated > 0 {
		logger.Scheduler("avatar_reconcile_job_done", "Avatar reconcile job completed", map[string]interface{}{
			"updated": updated,
		})
	}
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	// Stop scheduler
	if c.EventScheduler != nil {
		if c.EventScheduler.IsRunning() {
			c.EventScheduler.Stop()
			logger.Startup("scheduler_stopped", "Event scheduler stopped", nil)
		} else {
			logger.Startup("scheduler_already_stopped", "Event scheduler was already stopped", nil)
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	// Close database connection
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.StartupWarn("db_close_failed", "Failed to close database connection", map[string]interface{}{"error": err.Error()})
			} else {
				logger.Startup("db_closed", "Database connection closed", nil)
			}
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		PersonService: c.PersonService,
	}
}

func (c *Container) GetHandlerInfrastructure() *handlers.Infrastructure {
	return &handlers.Infrastructure{
		DB:          c.DB,
		RedisClient: c.RedisClient,
	}
}
