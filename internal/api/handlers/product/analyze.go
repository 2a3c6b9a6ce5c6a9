// Package product 處理產品成分分析路由。
package product

import (
	"net/http"
	"strings"

	"belumin-api/internal/core/assistant"
	"belumin-api/internal/core/storage"
	"belumin-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyzeRequest 成分分析請求
type AnalyzeRequest struct {
	Ingredients string `json:"ingredients"`
	ProductName string `json:"product_name,omitempty"`
}

// Handler 產品分析處理程序
type Handler struct {
	assistantSvc *assistant.Service
	store        *storage.Store
}

// NewHandler 創建產品分析處理程序
func NewHandler(assistantSvc *assistant.Service, store *storage.Store) *Handler {
	return &Handler{
		assistantSvc: assistantSvc,
		store:        store,
	}
}

// HandleAnalyze 分析成分文字與使用者檔案的相容性
// 空的成分文字在送出任何呼叫前即被擋下
func (h *Handler) HandleAnalyze(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if strings.TrimSpace(req.Ingredients) == "" {
		c.JSON(common.ErrEmptyIngredients.Status, gin.H{
			"error": common.ErrEmptyIngredients.Message,
			"code":  common.ErrEmptyIngredients.Code,
		})
		return
	}

	// 檔案可能尚未建立，評分規則會把 nil 檔案視為無任何困擾與過敏原
	profile, err := h.store.GetUserProfile(c.Request.Context())
	if err != nil {
		common.LogWarn("讀取檔案失敗，以無檔案模式分析",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
	}

	result := h.assistantSvc.AnalyzeIngredients(c.Request.Context(), req.Ingredients, profile)
	if req.ProductName != "" {
		result.ProductName = req.ProductName
	}

	common.LogInfo("成分分析完成",
		zap.Int("score", result.CompatibilityScore),
		zap.Int("pros", len(result.Pros)),
		zap.Int("cons", len(result.Cons)),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, result)
}
