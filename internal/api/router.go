package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/jobtrack_go_server/config"
	"github.com/qs3c/jobtrack_go_server/internal/api/handler"
	"github.com/qs3c/jobtrack_go_server/internal/api/middleware"
)

type Router struct {
	applicationHandler *handler.ApplicationHandler
	boardHandler       *handler.BoardHandler
	insightHandler     *handler.InsightHandler
	coachHandler       *handler.CoachHandler
	aiHandler          *handler.AIHandler
	cfg                *config.Config
}

func NewRouter(
	applicationHandler *handler.ApplicationHandler,
	boardHandler *handler.BoardHandler,
	insightHandler *handler.InsightHandler,
	coachHandler *handler.CoachHandler,
	aiHandler *handler.AIHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		applicationHandler: applicationHandler,
		boardHandler:       boardHandler,
		insightHandler:     insightHandler,
		coachHandler:       coachHandler,
		aiHandler:          aiHandler,
		cfg:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 申请
		applications := api.Group("/applications")
		{
			applications.POST("", r.applicationHandler.Create)
			applications.GET("", r.applicationHandler.List)
			applications.GET("/:id", r.applicationHandler.Get)
			applications.PATCH("/:id", r.applicationHandler.Update)
			applications.DELETE("/:id", r.applicationHandler.Delete)
		}

		// 看板
		board := api.Group("/board")
		{
			board.GET("", r.boardHandler.Get)
			board.POST("/move", r.boardHandler.Move)
			board.POST("/reorder", r.boardHandler.Reorder)
		}

		// 洞察
		api.GET("/insights", r.insightHandler.Get)

		// 复盘报告
		coach := api.Group("/coach")
		{
			coach.POST("/reports", r.coachHandler.Generate)
			coach.GET("/reports", r.coachHandler.History)
			coach.GET("/reports/:id", r.coachHandler.Get)
			coach.GET("/compare", r.coachHandler.Compare)
		}

		// AI 辅助
		ai := api.Group("/ai")
		{
			ai.POST("/summary", r.aiHandler.Summary)
			ai.POST("/followup", r.aiHandler.FollowUp)
			ai.POST("/review", r.aiHandler.Review)
		}
	}

	return engine
}
