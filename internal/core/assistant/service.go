package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"belumin-api/internal/core/ai"
	"belumin-api/internal/core/analysis"
	"belumin-api/internal/infrastructure/config"
	"belumin-api/internal/pkg/common"

	"go.uber.org/zap"
)

// 對話歷史只保留最後幾輪作為上下文
const historyWindow = 6

// 外部服務失敗時的固定道歉回覆
const connectionApology = "I'm having trouble connecting right now. Please try again in a moment! 💚"

// Service 對話助理閘道
type Service struct {
	config    *config.Config
	aiService *ai.Service
}

// NewService 創建對話助理服務
func NewService(cfg *config.Config, aiService *ai.Service) *Service {
	return &Service{
		config:    cfg,
		aiService: aiService,
	}
}

// buildMessages 組出系統提示 + 最後 6 輪歷史 + 新訊息
func (s *Service) buildMessages(message string, profile *common.UserProfile, history []common.ChatMessage) []ai.Message {
	messages := make([]ai.Message, 0, historyWindow+2)
	messages = append(messages, ai.Message{
		Role:    "system",
		Content: BuildSystemPrompt(profile),
	})

	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, msg := range history[start:] {
		messages = append(messages, ai.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	messages = append(messages, ai.Message{
		Role:    "user",
		Content: message,
	})
	return messages
}

// GenerateReply 產生 Lumin 的對話回覆
// 外部服務停用時走離線關鍵字回應器；呼叫失敗時回傳固定道歉字串，不拋出錯誤
func (s *Service) GenerateReply(ctx context.Context, message string, profile *common.UserProfile, history []common.ChatMessage) string {
	if !s.aiService.Enabled() {
		return fallbackReply(message, profile)
	}

	content, err := s.aiService.Complete(ctx, s.buildMessages(message, profile, history), ai.Options{
		Temperature: s.config.Chat.Temperature,
		MaxTokens:   s.config.Chat.MaxTokens,
	})
	if err != nil {
		common.LogError("對話回覆生成失敗，改用固定備援回覆", zap.Error(err))
		return connectionApology
	}
	return content
}

// GenerateReplyStream 以串流產生回覆，片段依到達順序送入 channel
// 任何失敗都以單一片段送出備援回覆後關閉 channel
func (s *Service) GenerateReplyStream(ctx context.Context, message string, profile *common.UserProfile, history []common.ChatMessage) <-chan string {
	if !s.aiService.Enabled() {
		return singleChunk(fallbackReply(message, profile))
	}

	chunks, err := s.aiService.CompleteStream(ctx, s.buildMessages(message, profile, history), ai.Options{
		Temperature: s.config.Chat.Temperature,
		MaxTokens:   s.config.Chat.MaxTokens,
	})
	if err != nil {
		common.LogError("串流回覆開啟失敗，改用固定備援回覆", zap.Error(err))
		return singleChunk(connectionApology)
	}
	return chunks
}

func singleChunk(content string) <-chan string {
	out := make(chan string, 1)
	out <- content
	close(out)
	return out
}

// analysisReply 外部服務的結構化回覆（欄位可能缺漏或型別錯誤）
type analysisReply struct {
	CompatibilityScore json.Number     `json:"compatibilityScore"`
	Pros               json.RawMessage `json:"pros"`
	Cons               json.RawMessage `json:"cons"`
}

// AnalyzeIngredients 分析產品成分與使用者檔案的相容性
// 外部服務停用時走離線規則評分器（契約相同）；線上路徑失敗時回傳固定備援分析
func (s *Service) AnalyzeIngredients(ctx context.Context, ingredients string, profile *common.UserProfile) common.ProductAnalysis {
	if !s.aiService.Enabled() {
		return analysis.AnalyzeIngredients(ingredients, profile)
	}

	messages := []ai.Message{
		{Role: "system", Content: buildAnalysisPrompt(profile)},
		{Role: "user", Content: fmt.Sprintf("Analyze these ingredients:\n%s", ingredients)},
	}

	content, err := s.aiService.Complete(ctx, messages, ai.Options{
		Temperature: s.config.Analysis.Temperature,
		MaxTokens:   s.config.Analysis.MaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		common.LogError("成分分析呼叫失敗，回傳固定備援分析", zap.Error(err))
		return fallbackAnalysis(ingredients)
	}

	return decodeAnalysis(content, ingredients)
}

// decodeAnalysis 解析外部服務的結構化回覆並套用防禦性補值
// 分數缺漏或為 0 皆視為無效、改用預設 70，之後夾取 [0, 100]；
// pros/cons 非字串列表時補上單元素預設
func decodeAnalysis(content, ingredients string) common.ProductAnalysis {
	var reply analysisReply
	if err := common.ParseJSON(common.ExtractJSONObject(content), &reply); err != nil {
		common.LogError("成分分析回覆解析失敗，回傳固定備援分析",
			zap.Error(err),
			zap.Int("content_length", len(content)),
		)
		return fallbackAnalysis(ingredients)
	}

	score := 70
	if n, err := reply.CompatibilityScore.Int64(); err == nil && n != 0 {
		score = int(n)
	} else if f, err := reply.CompatibilityScore.Float64(); err == nil && f != 0 {
		score = int(f)
	}

	pros := stringList(reply.Pros, "Suitable for general use")
	cons := stringList(reply.Cons, "Results may take 4-6 weeks")

	return common.ProductAnalysis{
		ProductName:        "Analyzed Product",
		CompatibilityScore: common.ClampScore(score, 0, 100),
		Pros:               pros,
		Cons:               cons,
		Ingredients:        ingredients,
	}
}

// stringList 將原始 JSON 解析為字串列表，失敗或為空時回傳單元素預設
func stringList(raw json.RawMessage, fallback string) []string {
	var list []string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			return list
		}
	}
	return []string{fallback}
}

// fallbackAnalysis 服務不可用時的固定備援分析
func fallbackAnalysis(ingredients string) common.ProductAnalysis {
	return common.ProductAnalysis{
		ProductName:        "Analyzed Product",
		CompatibilityScore: 70,
		Pros:               []string{"Ingredients list received", "No immediate red flags detected"},
		Cons:               []string{"Analysis temporarily unavailable - please try again"},
		Ingredients:        ingredients,
	}
}
