// Package analysis 實作離線的產品成分相容性評分。
// 純文字比對，不經過任何網路呼叫，永不失敗。
package analysis

import (
	"strings"

	"belumin-api/internal/core/quiz"
	"belumin-api/internal/pkg/common"
)

// markers 成分文字中偵測到的標記成分
type markers struct {
	niacinamide   bool
	salicylic     bool
	retinol       bool
	vitaminC      bool
	hyaluronic    bool
	fragrance     bool
	essentialOils bool
	alcohol       bool
}

// detectMarkers 以固定子字串集偵測成分（大小寫不敏感）
func detectMarkers(ingredients string) markers {
	lower := strings.ToLower(ingredients)
	return markers{
		niacinamide:   strings.Contains(lower, "niacinamide"),
		salicylic:     strings.Contains(lower, "salicylic"),
		retinol:       strings.Contains(lower, "retinol"),
		vitaminC:      strings.Contains(lower, "vitamin c") || strings.Contains(lower, "ascorbic acid"),
		hyaluronic:    strings.Contains(lower, "hyaluronic"),
		fragrance:     strings.Contains(lower, "fragrance") || strings.Contains(lower, "parfum"),
		essentialOils: strings.Contains(lower, "essential oil") || strings.Contains(lower, "lavender oil") || strings.Contains(lower, "tea tree oil"),
		alcohol:       strings.Contains(lower, "alcohol denat") || strings.Contains(lower, "sd alcohol"),
	}
}

// accumulator 評分累加器：起始分 70，規則依序折疊
type accumulator struct {
	score int
	pros  []string
	cons  []string
}

// ruleInput 規則評估所需的輸入
type ruleInput struct {
	m          markers
	profile    *common.UserProfile
	reactivity float64
}

// scoreRule 一條 (條件, 效果) 規則
// 規則順序即評估順序，分數只在最後統一夾取，規則內不做重正規化
type scoreRule struct {
	when  func(in ruleInput) bool
	delta int
	pro   string
	con   string
}

func (r scoreRule) apply(in ruleInput, acc *accumulator) {
	if !r.when(in) {
		return
	}
	acc.score += r.delta
	if r.pro != "" {
		acc.pros = append(acc.pros, r.pro)
	}
	if r.con != "" {
		acc.cons = append(acc.cons, r.con)
	}
}

func hasConcern(p *common.UserProfile, c common.SkinConcern) bool {
	return p.HasConcern(c)
}

func hasAllergy(p *common.UserProfile, tag string) bool {
	return p.HasAllergy(tag)
}

// scoreRules 固定順序的規則表：先加分、後扣分、最後膚質專屬回饋
var scoreRules = []scoreRule{
	// 有益成分
	{
		when:  func(in ruleInput) bool { return in.m.niacinamide },
		delta: 12,
		pro:   "Niacinamide helps with pore refinement, brightening, and oil control",
	},
	{
		when:  func(in ruleInput) bool { return in.m.salicylic && hasConcern(in.profile, common.ConcernAcne) },
		delta: 15,
		pro:   "Salicylic acid is excellent for treating acne and preventing breakouts",
	},
	{
		when:  func(in ruleInput) bool { return in.m.vitaminC && hasConcern(in.profile, common.ConcernHyperpigmentation) },
		delta: 12,
		pro:   "Vitamin C brightens skin tone and fades dark spots effectively",
	},
	{
		when:  func(in ruleInput) bool { return in.m.hyaluronic && hasConcern(in.profile, common.ConcernDryness) },
		delta: 10,
		pro:   "Hyaluronic acid provides deep hydration and plumps the skin",
	},
	{
		when:  func(in ruleInput) bool { return in.m.retinol && hasConcern(in.profile, common.ConcernAging) },
		delta: 15,
		pro:   "Retinol stimulates collagen production and reduces fine lines",
	},

	// 過敏原與刺激成分
	{
		when: func(in ruleInput) bool {
			return in.m.fragrance && (hasAllergy(in.profile, quiz.IrritantFragrance) || in.reactivity >= 4)
		},
		delta: -25,
		con:   "Contains fragrance - may cause irritation or sensitivity reactions",
	},
	{
		when: func(in ruleInput) bool {
			return in.m.fragrance && !(hasAllergy(in.profile, quiz.IrritantFragrance) || in.reactivity >= 4)
		},
		delta: -5,
		con:   "Contains fragrance - patch test recommended",
	},
	{
		when:  func(in ruleInput) bool { return !in.m.fragrance },
		delta: 5,
		pro:   "Fragrance-free formula reduces risk of irritation",
	},
	{
		when:  func(in ruleInput) bool { return in.m.essentialOils && hasAllergy(in.profile, quiz.IrritantEssentialOils) },
		delta: -30,
		con:   "Contains essential oils which you're sensitive to - avoid this product",
	},
	{
		when:  func(in ruleInput) bool { return in.m.alcohol && hasAllergy(in.profile, quiz.IrritantDryingAlcohols) },
		delta: -20,
		con:   "Contains drying alcohol which may cause irritation for you",
	},
	{
		when: func(in ruleInput) bool {
			return (in.m.salicylic || in.m.retinol) && hasAllergy(in.profile, quiz.IrritantStrongAcids)
		},
		delta: -25,
		con:   "Contains active acids that may be too strong for your sensitive skin",
	},

	// 膚質專屬回饋
	{
		when: func(in ruleInput) bool {
			return in.profile != nil && in.profile.SkinType == common.SkinTypeDry && in.m.alcohol
		},
		delta: -10,
		con:   "Alcohol can be extra drying for your skin type",
	},
	{
		when: func(in ruleInput) bool {
			return in.profile != nil && in.profile.SkinType == common.SkinTypeOily && in.m.niacinamide
		},
		delta: 5,
		pro:   "Perfect for oily skin - helps regulate sebum production",
	},
}
