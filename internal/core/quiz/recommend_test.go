package quiz

import (
	"testing"

	"belumin-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	t.Run("empty answers still push spf", func(t *testing.T) {
		recs := Recommend(common.AnswerMap{})

		assert.Equal(t, []string{"Daily SPF 30+ (non-negotiable!)"}, recs.MorningSteps)
		assert.Empty(t, recs.EveningSteps)
		assert.Empty(t, recs.KeyIngredients)
		assert.Empty(t, recs.AvoidIngredients)
	})

	t.Run("daily spf users get no spf nag", func(t *testing.T) {
		recs := Recommend(common.AnswerMap{
			KeySPFConsistency: common.TextAnswer(SPFEveryDay),
		})
		assert.Empty(t, recs.MorningSteps)
	})

	t.Run("blackheads drive bha recommendations", func(t *testing.T) {
		recs := Recommend(common.AnswerMap{
			KeyCommonBlemishType: common.ListAnswer(BlemishBlackheads),
		})

		assert.Contains(t, recs.KeyIngredients, "Salicylic Acid")
		assert.Contains(t, recs.EveningSteps, "BHA exfoliant 2-3x per week")
	})

	t.Run("deep cysts drive benzoyl peroxide", func(t *testing.T) {
		recs := Recommend(common.AnswerMap{
			KeyCommonBlemishType: common.ListAnswer(BlemishBlackheads, BlemishDeepCysts),
		})

		assert.Contains(t, recs.EveningSteps, "Benzoyl peroxide spot treatment")
		assert.Contains(t, recs.KeyIngredients, "Benzoyl Peroxide, Azelaic Acid")
	})

	t.Run("pih marks drive vitamin c", func(t *testing.T) {
		recs := Recommend(common.AnswerMap{
			KeyPostBreakoutMark: common.TextAnswer(DarkBrownSpotsPIH),
			KeySPFConsistency:   common.TextAnswer(SPFEveryDay),
		})

		assert.Equal(t, []string{"Vitamin C serum"}, recs.MorningSteps)
		assert.Contains(t, recs.KeyIngredients, "Vitamin C, Niacinamide, Alpha Arbutin")
	})

	t.Run("slow snap back drives retinol", func(t *testing.T) {
		recs := Recommend(common.AnswerMap{
			KeySkinSnapBack: common.TextAnswer(VerySlowlyLoose),
		})

		assert.Contains(t, recs.KeyIngredients, "Retinol, Peptides")
		assert.Contains(t, recs.EveningSteps, "Retinol (start slow, build tolerance)")
	})

	t.Run("known irritants map to display names", func(t *testing.T) {
		recs := Recommend(common.AnswerMap{
			KeyKnownIrritants: common.ListAnswer(
				IrritantFragrance,
				IrritantEssentialOils,
				IrritantDryingAlcohols,
			),
		})

		assert.Equal(t, []string{
			"Fragrance/Parfum",
			"Essential Oils",
			"Alcohol Denat, SD Alcohol",
		}, recs.AvoidIngredients)
	})

	t.Run("unmapped irritant tags are dropped", func(t *testing.T) {
		recs := Recommend(common.AnswerMap{
			KeyKnownIrritants: common.ListAnswer(IrritantStrongAcids, "unknown_tag", IrritantFragrance),
		})
		assert.Equal(t, []string{"Fragrance/Parfum"}, recs.AvoidIngredients)
	})
}
