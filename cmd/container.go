package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/migrations"
	"github.com/Abraxas-365/jobboard/pkg/cachex"
	"github.com/Abraxas-365/jobboard/pkg/cachex/cachexredis"
	"github.com/Abraxas-365/jobboard/pkg/config"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/jobboard/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/alert/alertapi"
	"github.com/Abraxas-365/jobboard/recruitment/alert/alertinfra"
	"github.com/Abraxas-365/jobboard/recruitment/alert/alertsrv"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationapi"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/jobboard/recruitment/catalog/catalogapi"
	"github.com/Abraxas-365/jobboard/recruitment/catalog/cataloginfra"
	"github.com/Abraxas-365/jobboard/recruitment/catalog/catalogsrv"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobapi"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobinfra"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob/savedjobapi"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob/savedjobinfra"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob/savedjobsrv"
	"github.com/Abraxas-365/jobboard/recruitment/seed"
	"github.com/Abraxas-365/jobboard/recruitment/stats/statsapi"
	"github.com/Abraxas-365/jobboard/recruitment/stats/statsinfra"
	"github.com/Abraxas-365/jobboard/recruitment/stats/statssrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	Cache      cachex.Store
	FileSystem fsx.FileSystem

	// Core IAM Services
	TokenService auth.TokenService
	AuthHandlers *auth.AuthHandlers

	// Recruitment Services
	JobService         *jobsrv.JobService
	ApplicationService *applicationsrv.ApplicationService
	CatalogService     *catalogsrv.CatalogService
	SavedJobService    *savedjobsrv.SavedJobService
	AlertService       *alertsrv.AlertService
	StatsService       *statssrv.Service
	Seeder             *seed.Seeder

	// API Handlers
	JobHandlers         *jobapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
	CatalogHandlers     *catalogapi.Handlers
	SavedJobHandlers    *savedjobapi.Handlers
	AlertHandlers       *alertapi.Handlers
	StatsHandlers       *statsapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

// Close releases the database and cache connections
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warn("failed to close redis", zap.Error(err))
		}
	}
	if err := c.DB.Close(); err != nil {
		logx.Warn("failed to close database", zap.Error(err))
	}
}

func (c *Container) initInfrastructure() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Database Connection
	dbCfg := c.Config.Database
	db, err := sqlx.ConnectContext(ctx, "postgres", dbCfg.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	c.DB = db

	if dbCfg.AutoMigrate {
		if err := migrations.Apply(ctx, db); err != nil {
			logx.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	// 2. Cache: Redis when configured, otherwise in-process
	if c.Config.Redis.Enabled() {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
		c.Cache = cachexredis.NewRedisStore(c.Redis, "jobboard")
	} else {
		logx.Info("REDIS_ADDR not set, using in-process cache")
		c.Cache = cachex.NewMemoryStore()
	}

	// 3. File storage: S3 when a bucket is configured, otherwise local disk
	storage := c.Config.Storage
	if storage.UseS3() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(storage.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), storage.AWSBucket, storage.Prefix)
	} else {
		local, err := fsxlocal.NewLocalFileSystem(storage.Dir)
		if err != nil {
			logx.Fatalf("Failed to prepare storage directory: %v", err)
		}
		c.FileSystem = local
	}
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	viewTracker := jobinfra.NewPostgresViewTracker(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	categoryRepo := cataloginfra.NewPostgresCategoryRepository(c.DB)
	jobTypeRepo := cataloginfra.NewPostgresJobTypeRepository(c.DB)
	companyRepo := cataloginfra.NewPostgresCompanyRepository(c.DB)
	savedJobRepo := savedjobinfra.NewPostgresSavedJobRepository(c.DB)
	alertRepo := alertinfra.NewPostgresAlertRepository(c.DB)
	statsRepo := statsinfra.NewPostgresStatsRepository(c.DB)

	// --- IAM ---
	authCfg := c.Config.Auth
	c.TokenService = auth.NewJWTService(
		authCfg.JWTSecret,
		authCfg.AccessTokenTTL,
		authCfg.RefreshTokenTTL,
		authCfg.Issuer,
	)
	passwords := auth.NewBcryptPasswordService(bcrypt.DefaultCost)
	c.AuthHandlers = auth.NewAuthHandlers(userRepo, c.TokenService, passwords)
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)

	// --- Domain Services ---
	c.JobService = jobsrv.NewJobService(jobRepo, viewTracker, jobRepo)
	c.ApplicationService = applicationsrv.NewApplicationService(applicationRepo, userRepo, c.FileSystem)
	c.CatalogService = catalogsrv.NewCatalogService(categoryRepo, jobTypeRepo, companyRepo, c.FileSystem)
	c.SavedJobService = savedjobsrv.NewSavedJobService(savedJobRepo)
	c.AlertService = alertsrv.NewAlertService(alertRepo)
	c.StatsService = statssrv.NewService(statsRepo, c.Cache, c.Config.Stats.CacheTTL)
	c.Seeder = seed.NewSeeder(c.CatalogService, c.JobService, userRepo, passwords)

	// --- Handlers ---
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.CatalogHandlers = catalogapi.NewHandlers(c.CatalogService)
	c.SavedJobHandlers = savedjobapi.NewHandlers(c.SavedJobService)
	c.AlertHandlers = alertapi.NewHandlers(c.AlertService)
	c.StatsHandlers = statsapi.NewHandlers(c.StatsService)
}
