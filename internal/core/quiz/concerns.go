package quiz

import (
	"belumin-api/internal/pkg/common"
)

// DeriveConcerns 依測驗答案推導肌膚困擾列表
// 各規則獨立評估、依序附加；全部未命中時回傳預設的 dryness
func DeriveConcerns(answers common.AnswerMap) []common.SkinConcern {
	concerns := make([]common.SkinConcern, 0, 4)

	// 瑕疵／痘痘
	blemishTypes := answers.List(KeyCommonBlemishType)
	if len(blemishTypes) > 0 && !answers.Contains(KeyCommonBlemishType, BlemishRarely) {
		concerns = append(concerns, common.ConcernAcne)
	}

	// 色素沉澱
	postMark := answers.Text(KeyPostBreakoutMark)
	skinTone := answers.Text(KeyOverallSkinTone)
	if postMark == DarkBrownSpotsPIH ||
		skinTone == SunSpotsFreckles ||
		skinTone == LargerMelasmaPatch {
		concerns = append(concerns, common.ConcernHyperpigmentation)
	}

	// 老化／緊緻度
	snapBack := answers.Text(KeySkinSnapBack)
	if snapBack == VerySlowlyLoose || snapBack == ModeratelySlow {
		concerns = append(concerns, common.ConcernAging)
	}

	// 乾燥
	drySensation := answers.Text(KeyDrySkinSensation)
	afterCleanse := answers.Text(KeySkinFeelAfterCleanse)
	if drySensation == FlakyRoughDull ||
		drySensation == PersistentTightness ||
		afterCleanse == VeryDryTightFlaky {
		concerns = append(concerns, common.ConcernDryness)
	}

	// 出油
	if answers.Text(KeyMiddayOiliness) == TzoneNoticeablyShiny {
		concerns = append(concerns, common.ConcernOiliness)
	}

	// 敏感
	reactivity := answers.Number(KeyReactivity)
	if reactivity >= reactivityThreshold || answers.Text(KeyRednessFadingTime) == StaysRedHours {
		concerns = append(concerns, common.ConcernSensitivity)
	}

	// 膚觸問題（毛孔粗大）
	texture := answers.Text(KeySkinTextureFeel)
	if texture == NoticeablyRoughBumpy || texture == MinorBumpsUnevenness {
		concerns = append(concerns, common.ConcernLargePores)
	}

	// 暗沉：以既有列表成員檢查守門，最多只會補入一個 dryness
	if skinTone == DullLacksRadiance && !containsConcern(concerns, common.ConcernHyperpigmentation) {
		if !containsConcern(concerns, common.ConcernDryness) {
			concerns = append(concerns, common.ConcernDryness) // 暗沉多半與缺水相關
		}
	}

	if len(concerns) == 0 {
		return []common.SkinConcern{common.ConcernDryness} // 預設困擾
	}
	return concerns
}

func containsConcern(concerns []common.SkinConcern, target common.SkinConcern) bool {
	for _, c := range concerns {
		if c == target {
			return true
		}
	}
	return false
}
