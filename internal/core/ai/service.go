// Package ai 提供文字生成服務的統一門面。
package ai

import (
	"context"
	"time"

	"belumin-api/internal/core/ai/openrouter"
	"belumin-api/internal/infrastructure/config"
	"belumin-api/internal/pkg/common"
)

// Message 對外暴露的消息結構
type Message = openrouter.Message

// Options 對外暴露的取樣參數
type Options = openrouter.Options

// Service AI 服務
// OpenRouter 未啟用時 Enabled 回傳 false，呼叫端應改走離線備援
type Service struct {
	config *config.Config
	client *openrouter.Client
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config) *Service {
	var client *openrouter.Client
	if cfg.OpenRouter.Enabled {
		client = openrouter.NewClient(cfg)
	}
	return &Service{
		config: cfg,
		client: client,
	}
}

// Enabled 檢查外部文字生成服務是否可用
func (s *Service) Enabled() bool {
	return s.client != nil
}

// Complete 送出對話請求並回傳完整回應
func (s *Service) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	start := time.Now()
	content, err := s.client.Chat(ctx, messages, opts)
	common.LogAICall(time.Since(start), err, requestIDFromContext(ctx))
	return content, err
}

// CompleteStream 送出串流對話請求
func (s *Service) CompleteStream(ctx context.Context, messages []Message, opts Options) (<-chan string, error) {
	return s.client.ChatStream(ctx, messages, opts)
}

type requestIDKey struct{}

// WithRequestID 將請求 ID 附加到 context（供 AI 調用日誌使用）
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
