package quiz

import (
	"testing"

	"belumin-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSkinType(t *testing.T) {
	t.Run("no signals defaults to normal", func(t *testing.T) {
		assert.Equal(t, common.SkinTypeNormal, DeriveSkinType(common.AnswerMap{}))
		assert.Equal(t, common.SkinTypeNormal, DeriveSkinType(nil))
	})

	t.Run("shiny tzone means oily", func(t *testing.T) {
		answers := common.AnswerMap{
			KeyMiddayOiliness: common.TextAnswer(TzoneNoticeablyShiny),
		}
		assert.Equal(t, common.SkinTypeOily, DeriveSkinType(answers))
	})

	t.Run("oily residue after cleansing means oily", func(t *testing.T) {
		answers := common.AnswerMap{
			KeySkinFeelAfterCleanse: common.TextAnswer(SlightlyOilyResidue),
		}
		assert.Equal(t, common.SkinTypeOily, DeriveSkinType(answers))
	})

	t.Run("oily wins over dry when both signals present", func(t *testing.T) {
		answers := common.AnswerMap{
			KeyMiddayOiliness:       common.TextAnswer(TzoneNoticeablyShiny),
			KeySkinFeelAfterCleanse: common.TextAnswer(VeryDryTightFlaky),
		}
		assert.Equal(t, common.SkinTypeOily, DeriveSkinType(answers))
	})

	t.Run("tight flaky skin means dry", func(t *testing.T) {
		answers := common.AnswerMap{
			KeySkinFeelAfterCleanse: common.TextAnswer(VeryDryTightFlaky),
		}
		assert.Equal(t, common.SkinTypeDry, DeriveSkinType(answers))

		answers = common.AnswerMap{
			KeyDrySkinSensation: common.TextAnswer(PersistentTightness),
		}
		assert.Equal(t, common.SkinTypeDry, DeriveSkinType(answers))
	})

	t.Run("high reactivity means sensitive", func(t *testing.T) {
		answers := common.AnswerMap{
			KeyReactivity: common.NumberAnswer(4),
		}
		assert.Equal(t, common.SkinTypeSensitive, DeriveSkinType(answers))
	})

	t.Run("numeric string reactivity is accepted", func(t *testing.T) {
		answers := common.AnswerMap{
			KeyReactivity: common.TextAnswer("5"),
		}
		assert.Equal(t, common.SkinTypeSensitive, DeriveSkinType(answers))
	})

	t.Run("low reactivity is not sensitive", func(t *testing.T) {
		answers := common.AnswerMap{
			KeyReactivity: common.NumberAnswer(3),
		}
		assert.Equal(t, common.SkinTypeNormal, DeriveSkinType(answers))
	})

	t.Run("subtle shine plus mild tightness means combination", func(t *testing.T) {
		answers := common.AnswerMap{
			KeyMiddayOiliness:       common.TextAnswer(TzoneSubtleShine),
			KeySkinFeelAfterCleanse: common.TextAnswer(MildlyTight),
		}
		assert.Equal(t, common.SkinTypeCombination, DeriveSkinType(answers))
	})
}
