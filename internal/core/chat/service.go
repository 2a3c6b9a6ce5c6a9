// Package chat 管理對話生命週期：延遲建立、標題推導、訊息附加與 upsert。
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"belumin-api/internal/core/assistant"
	"belumin-api/internal/core/storage"
	"belumin-api/internal/pkg/common"
)

// 標題取自首則使用者訊息，最長 50 字元
const maxTitleLength = 50

const defaultTitle = "New Conversation"

// Service 對話服務
type Service struct {
	store     *storage.Store
	assistant *assistant.Service
}

// NewService 創建對話服務
func NewService(store *storage.Store, assistantSvc *assistant.Service) *Service {
	return &Service{
		store:     store,
		assistant: assistantSvc,
	}
}

// loadOrCreate 載入既有對話，或以首則訊息延遲建立新對話
func (s *Service) loadOrCreate(ctx context.Context, conversationID, firstMessage string) (*common.Conversation, error) {
	if conversationID != "" {
		conversation, err := s.store.GetConversationByID(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		if conversation != nil {
			return conversation, nil
		}
		// 指定的 id 不存在時視為新對話，沿用該 id
	}

	title := common.TruncateRunes(strings.TrimSpace(firstMessage), maxTitleLength)
	if title == "" {
		title = defaultTitle
	}
	if conversationID == "" {
		conversationID = common.GenerateUUID()
	}

	now := time.Now()
	return &common.Conversation{
		ID:        conversationID,
		Title:     title,
		Messages:  []common.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// appendMessage 附加一則訊息並更新 updatedAt
func appendMessage(conversation *common.Conversation, role common.MessageRole, content string) common.ChatMessage {
	msg := common.ChatMessage{
		ID:        common.GenerateUUID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	conversation.Messages = append(conversation.Messages, msg)
	conversation.UpdatedAt = msg.Timestamp
	return msg
}

// SendMessage 處理一輪對話：附加使用者訊息、產生回覆、upsert 整份對話
func (s *Service) SendMessage(ctx context.Context, conversationID, message string, profile *common.UserProfile) (*common.Conversation, *common.ChatMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, nil, common.ErrEmptyMessage
	}

	conversation, err := s.loadOrCreate(ctx, conversationID, message)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	// 回覆以使用者訊息加入前的歷史為上下文
	history := conversation.Messages
	appendMessage(conversation, common.RoleUser, message)

	reply := s.assistant.GenerateReply(ctx, message, profile, history)
	assistantMsg := appendMessage(conversation, common.RoleAssistant, reply)

	if err := s.store.SaveConversation(ctx, conversation); err != nil {
		return nil, nil, fmt.Errorf("failed to save conversation: %w", err)
	}

	return conversation, &assistantMsg, nil
}

// OpenStream 開啟一輪串流對話：附加使用者訊息並回傳片段 channel
// 呼叫端消費完畢後以 FinishStream 寫回完整回覆
func (s *Service) OpenStream(ctx context.Context, conversationID, message string, profile *common.UserProfile) (*common.Conversation, <-chan string, error) {
	if strings.TrimSpace(message) == "" {
		return nil, nil, common.ErrEmptyMessage
	}

	conversation, err := s.loadOrCreate(ctx, conversationID, message)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	history := conversation.Messages
	appendMessage(conversation, common.RoleUser, message)

	chunks := s.assistant.GenerateReplyStream(ctx, message, profile, history)
	return conversation, chunks, nil
}

// FinishStream 將串流完成的完整回覆附加到對話並 upsert
func (s *Service) FinishStream(ctx context.Context, conversation *common.Conversation, reply string) (*common.ChatMessage, error) {
	assistantMsg := appendMessage(conversation, common.RoleAssistant, reply)
	if err := s.store.SaveConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}
	return &assistantMsg, nil
}

// Conversations 讀取全部對話
func (s *Service) Conversations(ctx context.Context) ([]common.Conversation, error) {
	return s.store.GetConversations(ctx)
}

// ConversationByID 讀取單一對話，不存在時回傳 nil
func (s *Service) ConversationByID(ctx context.Context, id string) (*common.Conversation, error) {
	return s.store.GetConversationByID(ctx, id)
}
