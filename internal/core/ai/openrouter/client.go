// Package openrouter 封裝 OpenRouter 文字生成服務的 HTTP 客戶端。
package openrouter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"belumin-api/internal/infrastructure/config"
	"belumin-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options 單次請求的取樣參數
type Options struct {
	Temperature float64
	MaxTokens   int
	JSONMode    bool // 要求回傳結構化 JSON
}

// Client OpenRouter API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://belumin.app").
		SetHeader("X-Title", "BeLumin")

	return &Client{
		config: cfg,
		client: client,
	}
}

// buildRequest 構建請求體
func (c *Client) buildRequest(messages []Message, opts Options, stream bool) map[string]interface{} {
	req := map[string]interface{}{
		"model":       c.config.OpenRouter.Model,
		"messages":    messages,
		"temperature": opts.Temperature,
		"max_tokens":  opts.MaxTokens,
	}
	if opts.JSONMode {
		req["response_format"] = map[string]string{"type": "json_object"}
	}
	if stream {
		req["stream"] = true
	}
	return req
}

// Chat 送出對話請求並回傳完整回應內容
func (c *Client) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(c.buildRequest(messages, opts, false)).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("OpenRouter API 回傳錯誤狀態",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", c.config.OpenRouter.Model),
		)
		return "", fmt.Errorf("OpenRouter API returned error: %s", resp.String())
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	content := result.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in OpenRouter response")
	}

	common.LogInfo("OpenRouter 回應成功",
		zap.String("model", c.config.OpenRouter.Model),
		zap.Int("content_length", len(content)),
	)

	return content, nil
}

// ChatStream 送出串流對話請求，回傳依到達順序產出文字片段的 channel
// 消費端取消 ctx 即關閉底層連線；channel 於串流結束或失敗時關閉
func (c *Client) ChatStream(ctx context.Context, messages []Message, opts Options) (<-chan string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetBody(c.buildRequest(messages, opts, true)).
		Post("/chat/completions")

	if err != nil {
		return nil, fmt.Errorf("failed to open stream to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		resp.RawBody().Close()
		return nil, fmt.Errorf("OpenRouter API returned error status: %d", resp.StatusCode())
	}

	chunks := make(chan string)
	go func() {
		defer close(chunks)
		defer resp.RawBody().Close()

		scanner := bufio.NewScanner(resp.RawBody())
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			payload := strings.TrimPrefix(line, "data: ")
			if payload == "[DONE]" {
				return
			}

			// 解析 SSE 事件中的增量內容
			var event struct {
				Choices []struct {
					Delta struct {
						Content string `json:"content"`
					} `json:"delta"`
				} `json:"choices"`
			}
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				common.LogWarn("無法解析串流事件", zap.Error(err))
				continue
			}
			if len(event.Choices) == 0 || event.Choices[0].Delta.Content == "" {
				continue
			}

			select {
			case chunks <- event.Choices[0].Delta.Content:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			common.LogError("串流讀取中斷", zap.Error(err))
		}
	}()

	return chunks, nil
}
