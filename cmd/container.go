package main

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/nerdyjobs/board/job"
	"github.com/Abraxas-365/nerdyjobs/board/job/jobapi"
	"github.com/Abraxas-365/nerdyjobs/board/job/jobinfra"
	"github.com/Abraxas-365/nerdyjobs/board/job/jobsrv"
	"github.com/Abraxas-365/nerdyjobs/pkg/config"
	"github.com/Abraxas-365/nerdyjobs/pkg/fsx"
	"github.com/Abraxas-365/nerdyjobs/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/nerdyjobs/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/nerdyjobs/pkg/iam/auth"
	"github.com/Abraxas-365/nerdyjobs/pkg/iam/auth/authinfra"
	"github.com/Abraxas-365/nerdyjobs/pkg/logx"
	"github.com/Abraxas-365/nerdyjobs/pkg/ratelimit"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	AuthConfig auth.Config

	// Infrastructure
	DB         *sqlx.DB // nil with the memory driver
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	// UploadsDir is served under /uploads when logos are kept on disk
	UploadsDir string

	// Services
	TokenService      *auth.JWTService
	JobService        *jobsrv.JobService
	SubmissionService *jobsrv.SubmissionService
	ReviewService     *jobsrv.ReviewService

	// API Handlers
	AuthHandlers *auth.AuthHandlers
	JobHandlers  *jobapi.Handlers

	// Middleware
	IdentifyMiddleware fiber.Handler
	SubmitLimiter      fiber.Handler
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	ctx := context.Background()

	// 1. Database Connection
	switch c.Config.Database.Driver {
	case config.DriverPostgres:
		db, err := sqlx.Connect("postgres", c.Config.Database.PostgresDSN())
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		c.DB = db
	case config.DriverSQLite:
		db, err := jobinfra.OpenSQLite(c.Config.Database.SQLitePath)
		if err != nil {
			logx.Fatalf("Failed to open sqlite database: %v", err)
		}
		c.DB = db
	case config.DriverMemory:
		logx.Warn("Using the in-memory job store, postings are lost on restart")
	}

	if c.DB != nil {
		if err := jobinfra.Migrate(ctx, c.DB); err != nil {
			logx.Fatalf("Failed to migrate database: %v", err)
		}
	}

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       0,
	})
	if _, err := c.Redis.Ping(ctx).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis, submission limits are kept in memory: %v", err)
		c.Redis.Close()
		c.Redis = nil
	}

	// 3. Logo storage
	switch c.Config.Storage.Driver {
	case config.StorageS3:
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, c.Config.Storage.AWSBucket, "uploads",
			fsxs3.WithPublicURL(c.Config.Storage.S3PublicURL))
	case config.StorageLocal:
		baseURL := strings.TrimSuffix(c.Config.Server.PublicBaseURL, "/") + "/uploads"
		local, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.Dir, baseURL)
		if err != nil {
			logx.Fatalf("Failed to prepare upload directory: %v", err)
		}
		c.FileSystem = local
		c.UploadsDir = local.Root()
	}

	// 4. Auth Config
	c.AuthConfig = auth.DefaultConfig()
	c.AuthConfig.JWT.SecretKey = c.Config.Auth.JWTSecret
	if c.AuthConfig.JWT.SecretKey == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		c.AuthConfig.JWT.SecretKey = "super-secret-key-please-change-me-in-production"
	}
	c.AuthConfig.Admin.Email = c.Config.Auth.AdminEmail
	c.AuthConfig.Admin.PasswordHash = c.Config.Auth.AdminPasswordHash
	if c.AuthConfig.Admin.PasswordHash == "" {
		logx.Warn("ADMIN_PASSWORD_HASH is not set, admin login is disabled")
	}
}

func (c *Container) jobRepository() job.Repository {
	if c.DB == nil {
		return jobinfra.NewMemoryJobRepository()
	}
	return jobinfra.NewSQLJobRepository(c.DB)
}

func (c *Container) initServices() {
	// --- Repositories ---
	jobRepo := c.jobRepository()

	// --- Infrastructure Services ---
	passwordSvc := authinfra.NewBcryptPasswordService()
	c.TokenService = auth.NewJWTService(
		c.AuthConfig.JWT.SecretKey,
		c.AuthConfig.JWT.AccessTokenTTL,
		c.AuthConfig.JWT.Issuer,
	)

	// --- Domain Services ---
	c.JobService = jobsrv.NewJobService(jobRepo)
	c.SubmissionService = jobsrv.NewSubmissionService(jobRepo, c.FileSystem)
	c.ReviewService = jobsrv.NewReviewService(jobRepo, c.FileSystem)

	// --- Handlers ---
	c.AuthHandlers = auth.NewAuthHandlers(c.TokenService, passwordSvc, c.AuthConfig.Admin)
	c.JobHandlers = jobapi.NewHandlers(c.JobService, c.SubmissionService, c.ReviewService)

	// --- Middleware ---
	c.IdentifyMiddleware = auth.Identify(c.TokenService)

	var limiterStorage fiber.Storage
	if c.Redis != nil {
		limiterStorage = ratelimit.NewRedisStorage(c.Redis, "nerdyjobs:ratelimit:")
	}
	c.SubmitLimiter = ratelimit.New(limiterStorage, c.Config.RateLimit.Max, c.Config.RateLimit.Window)
}

// Close releases the database and Redis connections
func (c *Container) Close() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close Redis: %v", err)
		}
	}
}
