package api

import (
	"context"
	"net/http"
	"time"

	chatHandler "belumin-api/internal/api/handlers/chat"
	"belumin-api/internal/api/handlers/health"
	productHandler "belumin-api/internal/api/handlers/product"
	profileHandler "belumin-api/internal/api/handlers/profile"
	routineHandler "belumin-api/internal/api/handlers/routine"
	"belumin-api/internal/api/middleware"
	"belumin-api/internal/core/ai"
	"belumin-api/internal/core/assistant"
	chatService "belumin-api/internal/core/chat"
	routineService "belumin-api/internal/core/routine"
	"belumin-api/internal/core/storage"
	"belumin-api/internal/infrastructure/config"
	"belumin-api/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB，純文字 API 不需要更大)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store *storage.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Conversation-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求去重與限流
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("openrouter_enabled", cfg.OpenRouter.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化服務
	aiService := ai.NewService(cfg)
	assistantSvc := assistant.NewService(cfg, aiService)
	chatSvc := chatService.NewService(store, assistantSvc)
	routineSvc := routineService.NewService(store)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 附加請求 ID 供 AI 調用日誌使用
		ctx = ai.WithRequestID(ctx, c.GetHeader("X-Request-ID"))
		c.Request = c.Request.WithContext(ctx)

		// 設置配置
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		profileInstance := profileHandler.NewHandler(store)
		chatInstance := chatHandler.NewHandler(chatSvc, store)
		productInstance := productHandler.NewHandler(assistantSvc, store)
		routineInstance := routineHandler.NewHandler(routineSvc, store)

		// 肌膚檔案
		profileGroup := api.Group("/profile")
		{
			profileGroup.POST("", profileInstance.HandleCreateProfile)
			profileGroup.GET("", profileInstance.HandleGetProfile)
			profileGroup.GET("/recommendations", profileInstance.HandleGetRecommendations)
		}

		// 對話助理
		chatGroup := api.Group("/chat")
		{
			chatGroup.POST("/message", chatInstance.HandleSendMessage)
			chatGroup.POST("/stream", chatInstance.HandleStreamMessage)
			chatGroup.GET("/conversations", chatInstance.HandleListConversations)
			chatGroup.GET("/conversations/:id", chatInstance.HandleGetConversation)
		}

		// 產品成分分析
		api.POST("/product/analyze", productInstance.HandleAnalyze)

		// 保養流程
		routineGroup := api.Group("/routine")
		{
			routineGroup.GET("", routineInstance.HandleGetRoutine)
			routineGroup.PUT("", routineInstance.HandleSaveRoutine)
			routineGroup.POST("/generate", routineInstance.HandleGenerateRoutine)
			routineGroup.POST("/:id/toggle", routineInstance.HandleToggleStep)
		}

		// 清除全部資料
		api.DELETE("/data", profileInstance.HandleClearData)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("openrouter_enabled", cfg.OpenRouter.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
