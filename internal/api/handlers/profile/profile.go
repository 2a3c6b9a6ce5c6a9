// Package profile 處理肌膚檔案相關路由：建立、查詢、保養建議與資料清除。
package profile

import (
	"net/http"
	"time"

	"belumin-api/internal/core/quiz"
	"belumin-api/internal/core/storage"
	"belumin-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProfileRequest 完成 onboarding 測驗後建立檔案
type CreateProfileRequest struct {
	Name      string             `json:"name,omitempty"`      // 使用者暱稱
	Budget    common.BudgetRange `json:"budget,omitempty"`    // 預算區間
	Allergies []string           `json:"allergies,omitempty"` // 已知刺激成分標籤
	Answers   common.AnswerMap   `json:"answers" binding:"required"`
}

// ProfileResponse 檔案與衍生建議
type ProfileResponse struct {
	Profile         *common.UserProfile    `json:"profile"`
	Recommendations common.Recommendations `json:"recommendations"`
}

// Handler 檔案處理程序
type Handler struct {
	store *storage.Store
}

// NewHandler 創建檔案處理程序
func NewHandler(store *storage.Store) *Handler {
	return &Handler{store: store}
}

// HandleCreateProfile 由測驗答案推導膚質與困擾並建立檔案
func (h *Handler) HandleCreateProfile(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 推導膚質與困擾（純函數，缺漏答案落入預設規則）
	skinType := quiz.DeriveSkinType(req.Answers)
	concerns := quiz.DeriveConcerns(req.Answers)

	profile := &common.UserProfile{
		Name:        req.Name,
		SkinType:    skinType,
		Concerns:    concerns,
		Budget:      req.Budget,
		Allergies:   req.Allergies,
		CreatedAt:   time.Now(),
		QuizAnswers: req.Answers,
	}
	if profile.Allergies == nil {
		profile.Allergies = []string{}
	}

	if err := h.store.SaveUserProfile(c.Request.Context(), profile); err != nil {
		common.LogError("檔案儲存失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(common.ErrStorageError.Status, gin.H{
			"error": common.ErrStorageError.Message,
			"code":  common.ErrStorageError.Code,
		})
		return
	}

	common.LogInfo("肌膚檔案已建立",
		zap.String("skin_type", string(skinType)),
		zap.Int("concerns", len(concerns)),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, ProfileResponse{
		Profile:         profile,
		Recommendations: quiz.Recommend(req.Answers),
	})
}

// HandleGetProfile 查詢既有檔案
func (h *Handler) HandleGetProfile(c *gin.Context) {
	profile, err := h.store.GetUserProfile(c.Request.Context())
	if err != nil {
		c.JSON(common.ErrStorageError.Status, gin.H{
			"error": common.ErrStorageError.Message,
			"code":  common.ErrStorageError.Code,
		})
		return
	}
	if profile == nil {
		c.JSON(common.ErrProfileNotFound.Status, gin.H{
			"error": common.ErrProfileNotFound.Message,
			"code":  common.ErrProfileNotFound.Code,
		})
		return
	}

	onboarded, err := h.store.IsOnboardingComplete(c.Request.Context())
	if err != nil {
		onboarded = true // 檔案存在即視為完成
	}

	c.JSON(http.StatusOK, gin.H{
		"greeting":            common.TimeBasedGreeting(time.Now()),
		"profile":             profile,
		"onboarding_complete": onboarded,
	})
}

// HandleGetRecommendations 由既有檔案的測驗答案產生保養建議
func (h *Handler) HandleGetRecommendations(c *gin.Context) {
	profile, err := h.store.GetUserProfile(c.Request.Context())
	if err != nil {
		c.JSON(common.ErrStorageError.Status, gin.H{
			"error": common.ErrStorageError.Message,
			"code":  common.ErrStorageError.Code,
		})
		return
	}
	if profile == nil {
		c.JSON(common.ErrProfileNotFound.Status, gin.H{
			"error": common.ErrProfileNotFound.Message,
			"code":  common.ErrProfileNotFound.Code,
		})
		return
	}

	c.JSON(http.StatusOK, quiz.Recommend(profile.QuizAnswers))
}

// HandleClearData 清除全部文件（檔案、對話、流程、旗標）
func (h *Handler) HandleClearData(c *gin.Context) {
	if err := h.store.ClearAll(c.Request.Context()); err != nil {
		common.LogError("資料清除失敗", zap.Error(err))
		c.JSON(common.ErrStorageError.Status, gin.H{
			"error": common.ErrStorageError.Message,
			"code":  common.ErrStorageError.Code,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
