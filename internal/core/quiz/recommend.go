package quiz

import (
	"belumin-api/internal/pkg/common"
)

// 已知刺激成分標籤對應的顯示名稱，未知標籤直接略過
var irritantDisplayNames = map[string]string{
	IrritantFragrance:      "Fragrance/Parfum",
	IrritantEssentialOils:  "Essential Oils",
	IrritantDryingAlcohols: "Alcohol Denat, SD Alcohol",
}

// Recommend 依測驗答案產生保養建議
// 規則依固定順序無條件評估，結果為只附加的有序列表，不去重不排序
func Recommend(answers common.AnswerMap) common.Recommendations {
	recs := common.Recommendations{
		MorningSteps:     []string{},
		EveningSteps:     []string{},
		KeyIngredients:   []string{},
		AvoidIngredients: []string{},
	}

	// 防曬建議
	if answers.Text(KeySPFConsistency) != SPFEveryDay {
		recs.MorningSteps = append(recs.MorningSteps, "Daily SPF 30+ (non-negotiable!)")
	}

	// 瑕疵類型建議
	if answers.Contains(KeyCommonBlemishType, BlemishBlackheads) {
		recs.KeyIngredients = append(recs.KeyIngredients, "Salicylic Acid")
		recs.EveningSteps = append(recs.EveningSteps, "BHA exfoliant 2-3x per week")
	}

	if answers.Contains(KeyCommonBlemishType, BlemishDeepCysts) {
		recs.EveningSteps = append(recs.EveningSteps, "Benzoyl peroxide spot treatment")
		recs.KeyIngredients = append(recs.KeyIngredients, "Benzoyl Peroxide, Azelaic Acid")
	}

	// 色素沉澱建議
	if answers.Text(KeyPostBreakoutMark) == DarkBrownSpotsPIH {
		recs.KeyIngredients = append(recs.KeyIngredients, "Vitamin C, Niacinamide, Alpha Arbutin")
		recs.MorningSteps = append(recs.MorningSteps, "Vitamin C serum")
	}

	// 老化建議
	snapBack := answers.Text(KeySkinSnapBack)
	if snapBack == VerySlowlyLoose || snapBack == ModeratelySlow {
		recs.KeyIngredients = append(recs.KeyIngredients, "Retinol, Peptides")
		recs.EveningSteps = append(recs.EveningSteps, "Retinol (start slow, build tolerance)")
	}

	// 應避免的已知刺激成分
	for _, irritant := range answers.List(KeyKnownIrritants) {
		if name, ok := irritantDisplayNames[irritant]; ok {
			recs.AvoidIngredients = append(recs.AvoidIngredients, name)
		}
	}

	return recs
}
