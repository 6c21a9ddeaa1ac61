package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/upstat-dev/upstat/internal/api"
	"github.com/upstat-dev/upstat/internal/api/handlers"
	"github.com/upstat-dev/upstat/internal/auth"
	"github.com/upstat-dev/upstat/internal/config"
	"github.com/upstat-dev/upstat/internal/heartbeat"
	"github.com/upstat-dev/upstat/internal/notification"
	"github.com/upstat-dev/upstat/internal/repository"
	"github.com/upstat-dev/upstat/internal/services"
	"github.com/upstat-dev/upstat/pkg/cache"
	"github.com/upstat-dev/upstat/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// A missing .env is fine; config falls back to real environment
	// variables and defaults.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Encoding, cfg.Log.Dir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := auth.Init(cfg.JWT.Secret, cfg.JWT.ExpiryHours); err != nil {
		logger.Log.Fatal("failed to initialize auth", zap.Error(err))
	}

	if err := cache.Init(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		logger.Log.Warn("redis unavailable, caching disabled", zap.Error(err))
	}

	db, err := repository.Open(cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		logger.Log.Fatal("failed to run migrations", zap.Error(err))
	}

	monitorRepo := repository.NewMonitorRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	resultRepo := repository.NewCheckResultRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	pageRepo := repository.NewStatusPageRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	userRepo := repository.NewUserRepository(db)

	notifiers := []notification.Notifier{
		notification.NewWebhookNotifier(),
		notification.NewDiscordNotifier(),
		notification.NewTelegramNotifier(),
		notification.NewEmailNotifier(),
	}

	hub := handlers.NewWSHub(cfg.Server.AllowedOrigins)

	notifySvc := services.NewNotificationService(subRepo, notifiers)
	monitorSvc := services.NewMonitorService(monitorRepo, groupRepo)
	groupSvc := services.NewGroupService(groupRepo)
	channelSvc := services.NewChannelService(channelRepo, notifiers)
	incidentSvc := services.NewIncidentService(incidentRepo, monitorRepo)
	statusSvc := services.NewStatusService(monitorRepo, resultRepo)
	pageSvc := services.NewStatusPageService(pageRepo, monitorRepo, statusSvc)
	authSvc := services.NewAuthService(userRepo)
	pushSvc := services.NewPushService(monitorRepo, resultRepo, notifySvc, hub.BroadcastRefresh)

	sweeper := heartbeat.NewSweeper(monitorRepo, resultRepo, notifySvc, hub.BroadcastRefresh)
	sweeper.Start()
	defer sweeper.Stop()

	r := api.NewRouter(cfg.Server, api.Deps{
		AuthService:     authSvc,
		MonitorService:  monitorSvc,
		GroupService:    groupSvc,
		ChannelService:  channelSvc,
		IncidentService: incidentSvc,
		StatusService:   statusSvc,
		PageService:     pageSvc,
		PushService:     pushSvc,
		SubRepo:         subRepo,
		Hub:             hub,
	})

	logger.Log.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Log.Fatal("server exited", zap.Error(err))
	}
}
