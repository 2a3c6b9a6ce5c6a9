package chat

import (
	"context"
	"strings"
	"testing"

	"belumin-api/internal/core/ai"
	"belumin-api/internal/core/assistant"
	"belumin-api/internal/core/storage"
	"belumin-api/internal/infrastructure/config"
	"belumin-api/internal/pkg/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService 建立走離線備援路徑的對話服務
func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := storage.NewStoreWithClient(client, "belumin_test")
	cfg := &config.Config{}
	assistantSvc := assistant.NewService(cfg, ai.NewService(cfg))
	return NewService(store, assistantSvc), store
}

func TestSendMessage(t *testing.T) {
	t.Run("blank message is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, _, err := svc.SendMessage(context.Background(), "", "   ", nil)
		assert.ErrorIs(t, err, common.ErrEmptyMessage)
	})

	t.Run("first message creates the conversation lazily", func(t *testing.T) {
		svc, store := newTestService(t)
		ctx := context.Background()

		conversation, reply, err := svc.SendMessage(ctx, "", "hello!", nil)
		require.NoError(t, err)

		assert.NotEmpty(t, conversation.ID)
		assert.Equal(t, "hello!", conversation.Title)
		require.Len(t, conversation.Messages, 2)
		assert.Equal(t, common.RoleUser, conversation.Messages[0].Role)
		assert.Equal(t, common.RoleAssistant, reply.Role)
		assert.NotEmpty(t, reply.Content)

		saved, err := store.GetConversations(ctx)
		require.NoError(t, err)
		assert.Len(t, saved, 1)
	})

	t.Run("title is capped at fifty characters", func(t *testing.T) {
		svc, _ := newTestService(t)

		long := strings.Repeat("a", 60)
		conversation, _, err := svc.SendMessage(context.Background(), "", long, nil)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("a", 50), conversation.Title)
	})

	t.Run("followup messages reuse the conversation", func(t *testing.T) {
		svc, store := newTestService(t)
		ctx := context.Background()

		first, _, err := svc.SendMessage(ctx, "", "hello!", nil)
		require.NoError(t, err)

		second, _, err := svc.SendMessage(ctx, first.ID, "Tell me more", nil)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "hello!", second.Title) // 標題固定取自首則訊息
		assert.Len(t, second.Messages, 4)

		saved, err := store.GetConversations(ctx)
		require.NoError(t, err)
		assert.Len(t, saved, 1)
	})

	t.Run("unknown conversation id starts fresh but keeps the id", func(t *testing.T) {
		svc, _ := newTestService(t)

		conversation, _, err := svc.SendMessage(context.Background(), "client-supplied-id", "hello!", nil)
		require.NoError(t, err)
		assert.Equal(t, "client-supplied-id", conversation.ID)
		assert.Len(t, conversation.Messages, 2)
	})
}

func TestStreaming(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	conversation, chunks, err := svc.OpenStream(ctx, "", "hello!", nil)
	require.NoError(t, err)

	var full strings.Builder
	for chunk := range chunks {
		full.WriteString(chunk)
	}
	require.NotEmpty(t, full.String())

	reply, err := svc.FinishStream(ctx, conversation, full.String())
	require.NoError(t, err)
	assert.Equal(t, common.RoleAssistant, reply.Role)
	assert.Equal(t, full.String(), reply.Content)

	saved, err := store.GetConversationByID(ctx, conversation.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Len(t, saved.Messages, 2)
	assert.Equal(t, full.String(), saved.Messages[1].Content)
}

func TestConversationLookups(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	conversation, _, err := svc.SendMessage(ctx, "", "hello!", nil)
	require.NoError(t, err)

	all, err := svc.Conversations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	found, err := svc.ConversationByID(ctx, conversation.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, conversation.Title, found.Title)

	missing, err := svc.ConversationByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
