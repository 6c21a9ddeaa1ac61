package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/upstat-dev/upstat/internal/api/handlers"
	"github.com/upstat-dev/upstat/internal/api/middleware"
	"github.com/upstat-dev/upstat/internal/config"
	"github.com/upstat-dev/upstat/internal/repository"
	"github.com/upstat-dev/upstat/internal/services"
)

// Deps carries everything the router needs; main wires it once at startup.
type Deps struct {
	AuthService     services.AuthService
	MonitorService  services.MonitorService
	GroupService    services.GroupService
	ChannelService  services.ChannelService
	IncidentService services.IncidentService
	StatusService   services.StatusService
	PageService     services.StatusPageService
	PushService     services.PushService
	SubRepo         repository.SubscriptionRepository
	Hub             *handlers.WSHub
}

func NewRouter(cfg config.ServerConfig, deps Deps) *gin.Engine {
	gin.SetMode(cfg.Mode)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	systemHandler := handlers.NewSystemHandler(deps.AuthService)
	monitorHandler := handlers.NewMonitorHandler(deps.MonitorService)
	groupHandler := handlers.NewGroupHandler(deps.GroupService)
	channelHandler := handlers.NewChannelHandler(deps.ChannelService)
	incidentHandler := handlers.NewIncidentHandler(deps.IncidentService)
	pageHandler := handlers.NewStatusPageHandler(deps.PageService, deps.StatusService)
	badgeHandler := handlers.NewBadgeHandler(deps.MonitorService)
	pushHandler := handlers.NewPushHandler(deps.PushService)
	subHandler := handlers.NewSubscriptionHandler(deps.SubRepo)
	dashboardHandler := handlers.NewDashboardHandler(deps.MonitorService, deps.GroupService, deps.IncidentService)

	r.GET("/badge/:id/status.svg", badgeHandler.GetStatusBadge)

	api := r.Group("/api")
	{
		api.GET("/system/status", systemHandler.GetStatus)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.GET("/push/:token", pushHandler.HandleHeartbeat)
		api.POST("/push/:token", pushHandler.HandleHeartbeat)

		public := api.Group("/public")
		{
			public.GET("/status", pageHandler.GetPublicStatus)
			public.GET("/status/:slug", pageHandler.GetPublicStatus)
			public.GET("/monitors/:id/history", pageHandler.GetMonitorHistory)
			public.GET("/incidents", incidentHandler.ListOngoing)
		}

		// Guests see everything; only admins change anything.
		authed := api.Group("", middleware.AuthMiddleware())
		admin := api.Group("", middleware.AuthMiddleware(), middleware.AdminOnly())
		{
			authed.GET("/ws", deps.Hub.Handle)
			authed.GET("/dashboard", dashboardHandler.GetDashboard)

			authed.GET("/monitors", monitorHandler.List)
			authed.GET("/monitors/:id", monitorHandler.Get)
			authed.GET("/monitors/:id/history", pageHandler.GetMonitorHistory)
			authed.GET("/monitors/:id/latest", pageHandler.GetMonitorLatest)
			authed.GET("/monitors/:id/incidents", incidentHandler.ListByMonitor)
			authed.GET("/monitors/:id/subscriptions", subHandler.ListByMonitor)
			admin.POST("/monitors", monitorHandler.Create)
			admin.PATCH("/monitors/:id", monitorHandler.Update)
			admin.DELETE("/monitors/:id", monitorHandler.Delete)

			authed.GET("/groups", groupHandler.List)
			admin.POST("/groups", groupHandler.Create)
			admin.PATCH("/groups/:id", groupHandler.Update)
			admin.DELETE("/groups/:id", groupHandler.Delete)

			authed.GET("/channels", channelHandler.List)
			authed.GET("/channels/:id", channelHandler.Get)
			admin.POST("/channels", channelHandler.Create)
			admin.PUT("/channels/:id", channelHandler.Update)
			admin.DELETE("/channels/:id", channelHandler.Delete)

			authed.GET("/incidents", incidentHandler.ListOngoing)
			admin.POST("/incidents", incidentHandler.Create)
			admin.POST("/incidents/:id/resolve", incidentHandler.Resolve)

			authed.GET("/status-pages", pageHandler.List)
			authed.GET("/status-pages/:id", pageHandler.Get)
			admin.POST("/status-pages", pageHandler.Create)
			admin.PUT("/status-pages/:id", pageHandler.Update)
			admin.DELETE("/status-pages/:id", pageHandler.Delete)

			admin.POST("/subscriptions", subHandler.Subscribe)
			admin.DELETE("/subscriptions", subHandler.Unsubscribe)
		}
	}

	return r
}
