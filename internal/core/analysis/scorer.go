package analysis

import (
	"belumin-api/internal/core/quiz"
	"belumin-api/internal/pkg/common"
)

const (
	baseScore = 70
	minScore  = 20
	maxScore  = 98

	defaultProductName = "Analyzed Product"
)

// AnalyzeIngredients 依使用者檔案對成分文字評分
// 規則表左至右折疊，最終分數夾取在 [20, 98]
func AnalyzeIngredients(ingredients string, profile *common.UserProfile) common.ProductAnalysis {
	in := ruleInput{
		m:       detectMarkers(ingredients),
		profile: profile,
	}
	if profile != nil {
		in.reactivity = profile.QuizAnswers.Number(quiz.KeyReactivity)
	}

	acc := accumulator{
		score: baseScore,
		pros:  []string{},
		cons:  []string{},
	}
	for _, rule := range scoreRules {
		rule.apply(in, &acc)
	}

	// 預設補充訊息
	if len(acc.pros) == 0 {
		acc.pros = append(acc.pros,
			"Basic formulation suitable for general use",
			"No standout beneficial ingredients detected",
		)
	}
	if len(acc.cons) == 0 {
		acc.cons = append(acc.cons, "Results may take 4-6 weeks of consistent use")
	}

	return common.ProductAnalysis{
		ProductName:        defaultProductName,
		CompatibilityScore: common.ClampScore(acc.score, minScore, maxScore),
		Pros:               acc.pros,
		Cons:               acc.cons,
		Ingredients:        ingredients,
	}
}
