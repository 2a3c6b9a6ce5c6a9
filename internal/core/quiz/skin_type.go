package quiz

import (
	"belumin-api/internal/pkg/common"
)

// DeriveSkinType 依測驗答案推導膚質
// 規則依固定優先序評估，先命中先贏；缺漏的答案視為無訊號，落入後續規則
func DeriveSkinType(answers common.AnswerMap) common.SkinType {
	afterCleanse := answers.Text(KeySkinFeelAfterCleanse)
	middayOil := answers.Text(KeyMiddayOiliness)
	drySensation := answers.Text(KeyDrySkinSensation)
	reactivity := answers.Number(KeyReactivity)

	// 油性指標
	if middayOil == TzoneNoticeablyShiny || afterCleanse == SlightlyOilyResidue {
		return common.SkinTypeOily
	}

	// 乾性指標
	if afterCleanse == VeryDryTightFlaky ||
		drySensation == FlakyRoughDull ||
		drySensation == PersistentTightness {
		return common.SkinTypeDry
	}

	// 敏感性（檢查反應性滑桿）
	if reactivity >= reactivityThreshold {
		return common.SkinTypeSensitive
	}

	// 混合性
	if middayOil == TzoneSubtleShine && afterCleanse == MildlyTight {
		return common.SkinTypeCombination
	}

	return common.SkinTypeNormal
}
