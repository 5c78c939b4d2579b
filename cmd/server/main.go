package main

import (
	"fmt"
	"log"
	"time"

	"github.com/qs3c/jobtrack_go_server/config"
	"github.com/qs3c/jobtrack_go_server/internal/api"
	"github.com/qs3c/jobtrack_go_server/internal/api/handler"
	"github.com/qs3c/jobtrack_go_server/internal/database"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/cache"
	"github.com/qs3c/jobtrack_go_server/internal/pkg/openai"
	"github.com/qs3c/jobtrack_go_server/internal/repository"
	"github.com/qs3c/jobtrack_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis，连不上时降级为无缓存运行
	var insightCache *cache.Cache
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
	} else {
		log.Println("Redis connected")
		ttl := time.Duration(cfg.Insights.CacheTTLSeconds) * time.Second
		if ttl <= 0 {
			ttl = 60 * time.Second
		}
		insightCache = cache.NewCache(rdb, ttl)
	}

	// 初始化 OpenAI 客户端
	aiClient := openai.NewClient(&cfg.OpenAI)
	if !aiClient.Configured() {
		log.Println("OpenAI API key not configured, AI features disabled")
	}

	// 初始化 Repository
	appRepo := repository.NewApplicationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// 初始化 Service
	insightService := service.NewInsightService(appRepo, eventRepo, insightCache)
	boardService := service.NewBoardService(appRepo, boardRepo, insightService)
	applicationService := service.NewApplicationService(appRepo, eventRepo, boardService, insightService)
	coachService := service.NewCoachService(appRepo, eventRepo, reportRepo, aiClient)
	aiService := service.NewAIService(appRepo, aiClient)

	// 初始化 Handler
	applicationHandler := handler.NewApplicationHandler(applicationService)
	boardHandler := handler.NewBoardHandler(boardService)
	insightHandler := handler.NewInsightHandler(insightService)
	coachHandler := handler.NewCoachHandler(coachService)
	aiHandler := handler.NewAIHandler(aiService)

	// 初始化 Router
	router := api.NewRouter(
		applicationHandler,
		boardHandler,
		insightHandler,
		coachHandler,
		aiHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
