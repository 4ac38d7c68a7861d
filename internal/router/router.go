package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"egg-hunt-api/internal/config"
	"egg-hunt-api/internal/handler"
	"egg-hunt-api/internal/metrics"
	"egg-hunt-api/internal/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Health      *handler.HealthHandler
	Participant *handler.ParticipantHandler
	Game        *handler.GameHandler
	Admin       *handler.AdminHandler
	Feed        *handler.FeedHandler
}

// Setup builds the gin engine with middleware and all routes
func Setup(cfg *config.Config, h Handlers, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(middleware.Metrics(m))

	// Operational endpoints stay outside the API base path
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/ws/feed", h.Feed.HandleFeed)

	api := r.Group(cfg.Server.BasePath)
	{
		api.POST("/participants", h.Participant.Register)
		api.GET("/participants/:username", h.Participant.Lookup)
		api.GET("/participants/:username/progress", h.Participant.Progress)

		api.POST("/submissions", h.Game.SubmitCode)
		api.GET("/leaderboard", h.Game.Leaderboard)

		admin := api.Group("/admin")
		{
			admin.POST("/login", h.Admin.Login)

			protected := admin.Group("")
			protected.Use(middleware.AdminAuth(cfg.Admin.Secret))
			{
				protected.GET("/codes", h.Admin.ListCodes)
				protected.POST("/update-code", h.Admin.UpdateCode)
				protected.POST("/seed", h.Admin.Seed)
				protected.POST("/reset-game", h.Admin.ResetGame)
				protected.POST("/reset-all", h.Admin.ResetAll)
				protected.GET("/progress", h.Admin.Progress)
			}
		}
	}

	return r
}
