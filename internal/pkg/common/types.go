package common

import (
	"time"
)

// SkinType 膚質分類
type SkinType string

const (
	SkinTypeOily        SkinType = "oily"
	SkinTypeDry         SkinType = "dry"
	SkinTypeCombination SkinType = "combination"
	SkinTypeSensitive   SkinType = "sensitive"
	SkinTypeNormal      SkinType = "normal"
)

// SkinConcern 肌膚困擾標籤
type SkinConcern string

const (
	ConcernAcne              SkinConcern = "acne"
	ConcernHyperpigmentation SkinConcern = "hyperpigmentation"
	ConcernAging             SkinConcern = "aging"
	ConcernDryness           SkinConcern = "dryness"
	ConcernOiliness          SkinConcern = "oiliness"
	ConcernSensitivity       SkinConcern = "sensitivity"
	ConcernDarkCircles       SkinConcern = "dark_circles"
	ConcernLargePores        SkinConcern = "large_pores"
)

// BudgetRange 預算區間（四個固定選項）
type BudgetRange string

const (
	BudgetLow     BudgetRange = "₹100-300"
	BudgetMid     BudgetRange = "₹300-500"
	BudgetHigh    BudgetRange = "₹500-1000"
	BudgetPremium BudgetRange = "₹1000+"
)

// UserProfile 使用者肌膚檔案
// 完成 onboarding 時建立一次，之後只整體替換，不做部分更新
type UserProfile struct {
	Name        string        `json:"name,omitempty"`
	SkinType    SkinType      `json:"skin_type"`
	Concerns    []SkinConcern `json:"concerns"`
	Budget      BudgetRange   `json:"budget"`
	Allergies   []string      `json:"allergies"`
	CreatedAt   time.Time     `json:"created_at"`
	QuizAnswers AnswerMap     `json:"quiz_answers,omitempty"`
}

// HasConcern 檢查檔案是否包含指定困擾
func (p *UserProfile) HasConcern(c SkinConcern) bool {
	if p == nil {
		return false
	}
	for _, concern := range p.Concerns {
		if concern == c {
			return true
		}
	}
	return false
}

// HasAllergy 檢查檔案是否包含指定過敏原標籤
func (p *UserProfile) HasAllergy(tag string) bool {
	if p == nil {
		return false
	}
	for _, allergy := range p.Allergies {
		if allergy == tag {
			return true
		}
	}
	return false
}

// MessageRole 對話角色
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage 對話訊息
type ChatMessage struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// Conversation 對話紀錄
// 首次送出訊息時延遲建立，之後以 id 為鍵整體覆寫
type Conversation struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ProductAnalysis 產品成分分析結果
type ProductAnalysis struct {
	ProductName        string   `json:"product_name"`
	CompatibilityScore int      `json:"compatibility_score"`
	Pros               []string `json:"pros"`
	Cons               []string `json:"cons"`
	Ingredients        string   `json:"ingredients,omitempty"`
}

// RoutineCategory 保養步驟類別
type RoutineCategory string

const (
	CategoryCleanser    RoutineCategory = "cleanser"
	CategoryToner       RoutineCategory = "toner"
	CategorySerum       RoutineCategory = "serum"
	CategoryMoisturizer RoutineCategory = "moisturizer"
	CategorySunscreen   RoutineCategory = "sunscreen"
	CategoryTreatment   RoutineCategory = "treatment"
)

// TimeOfDay 保養時段
type TimeOfDay string

const (
	TimeMorning TimeOfDay = "morning"
	TimeEvening TimeOfDay = "evening"
	TimeBoth    TimeOfDay = "both"
)

// RoutineStep 保養流程步驟
type RoutineStep struct {
	ID                 string          `json:"id"`
	ProductName        string          `json:"product_name"`
	Category           RoutineCategory `json:"category"`
	TimeOfDay          TimeOfDay       `json:"time_of_day"`
	Order              int             `json:"order"`
	Completed          bool            `json:"completed"`
	CompatibilityScore *int            `json:"compatibility_score,omitempty"`
}

// Recommendations 依測驗結果產生的保養建議
type Recommendations struct {
	MorningSteps     []string `json:"morning_steps"`
	EveningSteps     []string `json:"evening_steps"`
	KeyIngredients   []string `json:"key_ingredients"`
	AvoidIngredients []string `json:"avoid_ingredients"`
}
