// Package storage 實作持久化門面：
// 四份邏輯文件（使用者檔案、對話列表、保養流程、onboarding 旗標）存於 Redis。
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"belumin-api/internal/infrastructure/config"
	"belumin-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// 文件鍵名（加上設定的前綴）
const (
	keyUserProfile        = "user_profile"
	keyConversations      = "conversations"
	keyRoutine            = "routine"
	keyOnboardingComplete = "onboarding_complete"
)

// Store 持久化門面
// 每個鍵對應一份完整 JSON 文件，讀端容忍鍵不存在（視為尚未建立）
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore 創建持久化門面並驗證連線
func NewStore(cfg *config.StorageConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("儲存服務已初始化",
		zap.String("addr", cfg.RedisAddr),
		zap.String("prefix", cfg.KeyPrefix),
	)

	return &Store{
		client: client,
		prefix: cfg.KeyPrefix,
	}, nil
}

// NewStoreWithClient 以既有客戶端創建門面（測試用）
func NewStoreWithClient(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(name string) string {
	return fmt.Sprintf("%s:%s", s.prefix, name)
}

// getDocument 讀取單份 JSON 文件，鍵不存在時回傳 false
func (s *Store) getDocument(ctx context.Context, name string, v interface{}) (bool, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return true, nil
}

// setDocument 整份覆寫 JSON 文件
func (s *Store) setDocument(ctx context.Context, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// SaveUserProfile 儲存使用者檔案並標記 onboarding 完成
func (s *Store) SaveUserProfile(ctx context.Context, profile *common.UserProfile) error {
	if err := s.setDocument(ctx, keyUserProfile, profile); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(keyOnboardingComplete), "true", 0).Err(); err != nil {
		return fmt.Errorf("failed to set onboarding flag: %w", err)
	}
	return nil
}

// GetUserProfile 讀取使用者檔案，尚未建立時回傳 nil
func (s *Store) GetUserProfile(ctx context.Context) (*common.UserProfile, error) {
	var profile common.UserProfile
	found, err := s.getDocument(ctx, keyUserProfile, &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// IsOnboardingComplete 檢查 onboarding 是否完成
func (s *Store) IsOnboardingComplete(ctx context.Context) (bool, error) {
	val, err := s.client.Get(ctx, s.key(keyOnboardingComplete)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to read onboarding flag: %w", err)
	}
	return val == "true", nil
}

// SaveConversation 以 id 為鍵 upsert 對話（整體覆寫，後寫者贏）
func (s *Store) SaveConversation(ctx context.Context, conversation *common.Conversation) error {
	conversations, err := s.GetConversations(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range conversations {
		if conversations[i].ID == conversation.ID {
			conversations[i] = *conversation
			replaced = true
			break
		}
	}
	if !replaced {
		conversations = append(conversations, *conversation)
	}

	return s.setDocument(ctx, keyConversations, conversations)
}

// GetConversations 讀取對話列表，尚未建立時回傳空列表
func (s *Store) GetConversations(ctx context.Context) ([]common.Conversation, error) {
	conversations := []common.Conversation{}
	if _, err := s.getDocument(ctx, keyConversations, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetConversationByID 以 id 讀取單一對話，不存在時回傳 nil
func (s *Store) GetConversationByID(ctx context.Context, id string) (*common.Conversation, error) {
	conversations, err := s.GetConversations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range conversations {
		if conversations[i].ID == id {
			return &conversations[i], nil
		}
	}
	return nil, nil
}

// SaveRoutine 整份覆寫保養流程列表
func (s *Store) SaveRoutine(ctx context.Context, routine []common.RoutineStep) error {
	return s.setDocument(ctx, keyRoutine, routine)
}

// GetRoutine 讀取保養流程列表，尚未建立時回傳空列表
func (s *Store) GetRoutine(ctx context.Context) ([]common.RoutineStep, error) {
	routine := []common.RoutineStep{}
	if _, err := s.getDocument(ctx, keyRoutine, &routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// ClearAll 清除全部文件
func (s *Store) ClearAll(ctx context.Context) error {
	keys := []string{
		s.key(keyUserProfile),
		s.key(keyConversations),
		s.key(keyRoutine),
		s.key(keyOnboardingComplete),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	return nil
}

// Close 關閉儲存服務
func (s *Store) Close() error {
	return s.client.Close()
}
