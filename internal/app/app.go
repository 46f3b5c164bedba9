package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"weiterbildung_backend/internal/config"
	"weiterbildung_backend/internal/controller"
	"weiterbildung_backend/internal/repository"
	"weiterbildung_backend/internal/service"
	"weiterbildung_backend/internal/util"
	"weiterbildung_backend/pkg/configwatcher"
	"weiterbildung_backend/pkg/database"
	"weiterbildung_backend/pkg/logger"
	"weiterbildung_backend/pkg/monitoring"
	"weiterbildung_backend/pkg/security"
	"weiterbildung_backend/pkg/tracing"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user    *repository.UserRepository
	comment *repository.CommentRepository
	pdf     *repository.PDFRepository
}

type services struct {
	auth      *service.AuthService
	checklist *service.ChecklistService
	stats     *service.StatsService
	comment   *service.CommentService
	admin     *service.AdminService
	storage   *service.StorageService
	pdf       *service.PDFService
	revoker   service.TokenRevoker
}

type controllers struct {
	auth      *controller.AuthController
	checklist *controller.ChecklistController
	catalog   *controller.CatalogController
	stats     *controller.StatsController
	comment   *controller.CommentController
	admin     *controller.AdminController
	pdf       *controller.PDFController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		comment: repository.NewCommentRepository(db),
		pdf:     repository.NewPDFRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	if rdb != nil {
		s.revoker = service.NewRedisTokenRevoker(rdb)
	}
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, s.revoker, cfg)
	s.checklist = service.NewChecklistService(repos.user)
	s.stats = service.NewStatsService(repos.user)
	s.comment = service.NewCommentService(repos.comment, repos.user)
	s.admin = service.NewAdminService(repos.user, repos.comment)
	s.pdf = service.NewPDFService(repos.pdf, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		checklist: controller.NewChecklistController(s.checklist),
		catalog:   controller.NewCatalogController(),
		stats:     controller.NewStatsController(s.stats),
		comment:   controller.NewCommentController(s.comment),
		admin:     controller.NewAdminController(s.admin, s.stats),
		pdf:       controller.NewPDFController(s.pdf),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, &cfg.Admin)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 没有 Redis 时登出降级为客户端丢弃令牌，服务照常启动
		logger.Log.Warn("Redis unavailable, token revocation disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("weiterbildung-tracker", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新：限流窗口等运行参数改动无需重启
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if reloaded, ok := newCfg.(*config.Config); ok {
			app.Config.RateLimit = reloaded.RateLimit
			app.Config.CORS = reloaded.CORS
			logger.Log.Info("Config reloaded")
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
