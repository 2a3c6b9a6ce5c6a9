package assistant

import (
	"context"
	"testing"

	"belumin-api/internal/core/ai"
	"belumin-api/internal/core/quiz"
	"belumin-api/internal/infrastructure/config"
	"belumin-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackReply(t *testing.T) {
	t.Run("routine reply reflects texture preference", func(t *testing.T) {
		reply := fallbackReply("What routine should I follow?", testProfile())

		assert.Contains(t, reply, "combination type")
		assert.Contains(t, reply, "acne and hyperpigmentation")
		assert.Contains(t, reply, "gel-based and essence products")
		assert.Contains(t, reply, "₹300-500")
	})

	t.Run("routine reply without profile uses placeholders", func(t *testing.T) {
		reply := fallbackReply("help me with skincare", nil)
		assert.Contains(t, reply, "general skincare")
	})

	t.Run("acne reply warns about strong acids", func(t *testing.T) {
		profile := testProfile()
		profile.Allergies = append(profile.Allergies, quiz.IrritantStrongAcids)
		profile.QuizAnswers[quiz.KeyCommonBlemishType] = common.ListAnswer(quiz.BlemishDeepCysts)

		reply := fallbackReply("How do I treat my acne?", profile)

		assert.Contains(t, reply, "consulting a dermatologist")
		assert.Contains(t, reply, "azelaic acid")
	})

	t.Run("daily spf users get praised", func(t *testing.T) {
		profile := testProfile()
		profile.QuizAnswers[quiz.KeySPFConsistency] = common.TextAnswer(quiz.SPFEveryDay)

		reply := fallbackReply("Do I really need sunscreen?", profile)
		assert.Contains(t, reply, "Amazing that you use SPF daily")
	})

	t.Run("chemical filter sensitivity steers to mineral spf", func(t *testing.T) {
		profile := testProfile()
		profile.Allergies = []string{quiz.IrritantChemicalSPF}
		profile.QuizAnswers[quiz.KeySPFConsistency] = common.TextAnswer(quiz.SPFRarelyNever)

		reply := fallbackReply("tell me about spf", profile)
		assert.Contains(t, reply, "mineral sunscreens with zinc oxide")
	})

	t.Run("reactive skin gets lingering redness advice", func(t *testing.T) {
		profile := testProfile()
		profile.QuizAnswers[quiz.KeyRednessFadingTime] = common.TextAnswer(quiz.StaysRedHours)

		reply := fallbackReply("My skin reacts with irritation to everything", profile)
		assert.Contains(t, reply, "Patch test new products")
		assert.Contains(t, reply, "centella")
	})

	t.Run("greeting uses the profile name", func(t *testing.T) {
		assert.Contains(t, fallbackReply("hello!", testProfile()), "Hello Maya!")
		assert.Contains(t, fallbackReply("hello!", nil), "Hello there!")
	})

	t.Run("unmatched message gets the default reply", func(t *testing.T) {
		reply := fallbackReply("Tell me more", nil)
		assert.Contains(t, reply, "Could you tell me more about what specific aspect")
	})
}

func TestGenerateReply_Offline(t *testing.T) {
	cfg := &config.Config{}
	svc := NewService(cfg, ai.NewService(cfg))

	reply := svc.GenerateReply(context.Background(), "hello!", testProfile(), nil)
	assert.Contains(t, reply, "Hello Maya!")
}

func TestGenerateReplyStream_Offline(t *testing.T) {
	cfg := &config.Config{}
	svc := NewService(cfg, ai.NewService(cfg))

	chunks := svc.GenerateReplyStream(context.Background(), "hello!", testProfile(), nil)

	var full string
	for chunk := range chunks {
		full += chunk
	}
	assert.Contains(t, full, "Hello Maya!")
}

func TestAnalyzeIngredients_Offline(t *testing.T) {
	cfg := &config.Config{}
	svc := NewService(cfg, ai.NewService(cfg))

	result := svc.AnalyzeIngredients(context.Background(), "Aqua, Niacinamide, Fragrance, Glycerin", &common.UserProfile{
		SkinType:  common.SkinTypeOily,
		Allergies: []string{quiz.IrritantFragrance},
	})

	require.NotZero(t, result.CompatibilityScore)
	assert.Equal(t, 62, result.CompatibilityScore)
	assert.Equal(t, "Analyzed Product", result.ProductName)
}
