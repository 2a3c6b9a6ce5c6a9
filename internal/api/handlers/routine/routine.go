// Package routine 處理保養流程路由：查詢、覆寫、產生與完成切換。
package routine

import (
	"net/http"

	"belumin-api/internal/core/quiz"
	routineService "belumin-api/internal/core/routine"
	"belumin-api/internal/core/storage"
	"belumin-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// SaveRoutineRequest 整份覆寫保養流程
type SaveRoutineRequest struct {
	Steps []common.RoutineStep `json:"steps" binding:"required"`
}

// Handler 保養流程處理程序
type Handler struct {
	routineSvc *routineService.Service
	store      *storage.Store
}

// NewHandler 創建保養流程處理程序
func NewHandler(routineSvc *routineService.Service, store *storage.Store) *Handler {
	return &Handler{
		routineSvc: routineSvc,
		store:      store,
	}
}

func storageError(c *gin.Context) {
	c.JSON(common.ErrStorageError.Status, gin.H{
		"error": common.ErrStorageError.Message,
		"code":  common.ErrStorageError.Code,
	})
}

// HandleGetRoutine 查詢目前的保養流程
func (h *Handler) HandleGetRoutine(c *gin.Context) {
	steps, err := h.routineSvc.Routine(c.Request.Context())
	if err != nil {
		storageError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": steps})
}

// HandleSaveRoutine 整份覆寫保養流程
func (h *Handler) HandleSaveRoutine(c *gin.Context) {
	var req SaveRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.routineSvc.Save(c.Request.Context(), req.Steps); err != nil {
		storageError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": req.Steps})
}

// HandleGenerateRoutine 由既有檔案的保養建議產生起始流程
func (h *Handler) HandleGenerateRoutine(c *gin.Context) {
	profile, err := h.store.GetUserProfile(c.Request.Context())
	if err != nil {
		storageError(c)
		return
	}
	if profile == nil {
		c.JSON(common.ErrProfileNotFound.Status, gin.H{
			"error": common.ErrProfileNotFound.Message,
			"code":  common.ErrProfileNotFound.Code,
		})
		return
	}

	steps, err := h.routineSvc.Generate(c.Request.Context(), quiz.Recommend(profile.QuizAnswers))
	if err != nil {
		storageError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": steps})
}

// HandleToggleStep 切換指定步驟的完成狀態
func (h *Handler) HandleToggleStep(c *gin.Context) {
	steps, found, err := h.routineSvc.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		storageError(c)
		return
	}
	if !found {
		c.JSON(common.ErrNotFound.Status, gin.H{
			"error": common.ErrNotFound.Message,
			"code":  common.ErrNotFound.Code,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": steps})
}
