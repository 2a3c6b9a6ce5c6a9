// Package chat 處理對話相關路由：送出訊息、SSE 串流與歷史查詢。
package chat

import (
	"fmt"
	"net/http"
	"strings"

	chatService "belumin-api/internal/core/chat"
	"belumin-api/internal/core/storage"
	"belumin-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SendMessageRequest 送出一則對話訊息
type SendMessageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"` // 省略時延遲建立新對話
}

// SendMessageResponse 一輪對話的結果
type SendMessageResponse struct {
	ConversationID string             `json:"conversation_id"`
	Title          string             `json:"title"`
	Message        common.ChatMessage `json:"message"`
}

// Handler 對話處理程序
type Handler struct {
	chatSvc *chatService.Service
	store   *storage.Store
}

// NewHandler 創建對話處理程序
func NewHandler(chatSvc *chatService.Service, store *storage.Store) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		store:   store,
	}
}

// bindMessage 解析請求並擋下空訊息（不送出任何外部呼叫）
func (h *Handler) bindMessage(c *gin.Context) (*SendMessageRequest, bool) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return nil, false
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(common.ErrEmptyMessage.Status, gin.H{
			"error": common.ErrEmptyMessage.Message,
			"code":  common.ErrEmptyMessage.Code,
		})
		return nil, false
	}
	return &req, true
}

// HandleSendMessage 處理一輪對話
func (h *Handler) HandleSendMessage(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	req, ok := h.bindMessage(c)
	if !ok {
		return
	}

	// 檔案可能尚未建立，此時以通用提示回覆
	profile, err := h.store.GetUserProfile(c.Request.Context())
	if err != nil {
		common.LogWarn("讀取檔案失敗，以無檔案模式回覆",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
	}

	conversation, assistantMsg, err := h.chatSvc.SendMessage(c.Request.Context(), req.ConversationID, req.Message, profile)
	if err != nil {
		common.LogError("對話處理失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(common.ErrStorageError.Status, gin.H{
			"error": common.ErrStorageError.Message,
			"code":  common.ErrStorageError.Code,
		})
		return
	}

	c.JSON(http.StatusOK, SendMessageResponse{
		ConversationID: conversation.ID,
		Title:          conversation.Title,
		Message:        *assistantMsg,
	})
}

// HandleStreamMessage 以 SSE 串流回覆，片段依到達順序直接寫出
func (h *Handler) HandleStreamMessage(c *gin.Context) {
	req, ok := h.bindMessage(c)
	if !ok {
		return
	}

	profile, err := h.store.GetUserProfile(c.Request.Context())
	if err != nil {
		common.LogWarn("讀取檔案失敗，以無檔案模式回覆", zap.Error(err))
	}

	conversation, chunks, err := h.chatSvc.OpenStream(c.Request.Context(), req.ConversationID, req.Message, profile)
	if err != nil {
		c.JSON(common.ErrStorageError.Status, gin.H{
			"error": common.ErrStorageError.Message,
			"code":  common.ErrStorageError.Code,
		})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Conversation-ID", conversation.ID)
	c.Writer.Flush()

	// 逐片段轉寫，同時累積完整回覆以便寫回對話
	var full strings.Builder
	for chunk := range chunks {
		full.WriteString(chunk)
		fmt.Fprintf(c.Writer, "data: %s\n\n", strings.ReplaceAll(chunk, "\n", "\ndata: "))
		c.Writer.Flush()
	}

	if _, err := h.chatSvc.FinishStream(c.Request.Context(), conversation, full.String()); err != nil {
		common.LogError("串流回覆寫回失敗", zap.Error(err))
	}

	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}

// HandleListConversations 查詢全部對話
func (h *Handler) HandleListConversations(c *gin.Context) {
	conversations, err := h.chatSvc.Conversations(c.Request.Context())
	if err != nil {
		c.JSON(common.ErrStorageError.Status, gin.H{
			"error": common.ErrStorageError.Message,
			"code":  common.ErrStorageError.Code,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// HandleGetConversation 以 id 查詢單一對話
func (h *Handler) HandleGetConversation(c *gin.Context) {
	conversation, err := h.chatSvc.ConversationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(common.ErrStorageError.Status, gin.H{
			"error": common.ErrStorageError.Message,
			"code":  common.ErrStorageError.Code,
		})
		return
	}
	if conversation == nil {
		c.JSON(common.ErrNotFound.Status, gin.H{
			"error": common.ErrNotFound.Message,
			"code":  common.ErrNotFound.Code,
		})
		return
	}
	c.JSON(http.StatusOK, conversation)
}
