// Package assistant 實作 Lumin 對話助理的閘道：
// 由使用者檔案組出系統提示，轉送外部文字生成服務，並帶有確定性的離線備援。
package assistant

import (
	"fmt"
	"strings"

	"belumin-api/internal/core/quiz"
	"belumin-api/internal/pkg/common"
)

const genericSystemPrompt = `You are Lumin, a friendly and knowledgeable AI skincare companion. You provide personalized skincare advice, product recommendations, and answer questions about skin health. Be warm, encouraging, and use emojis sparingly. Keep responses concise but informative.`

// BuildSystemPrompt 將使用者檔案序列化為系統提示
// 固定納入的測驗子集：洗後膚感、反應性、瑕疵類型、防曬頻率、質地偏好、自由填寫目標
func BuildSystemPrompt(profile *common.UserProfile) string {
	if profile == nil {
		return genericSystemPrompt
	}

	name := profile.Name
	if name == "" {
		name = "User"
	}
	sensitivities := "None"
	if len(profile.Allergies) > 0 {
		sensitivities = strings.Join(profile.Allergies, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are Lumin, a friendly and knowledgeable AI skincare companion for BeLumin. You provide personalized skincare advice based on the user's comprehensive skin profile.

USER PROFILE:
- Name: %s
- Skin Type: %s
- Main Concerns: %s
- Budget Range: %s
- Known Sensitivities: %s

DETAILED SKIN PROFILE FROM QUIZ:`,
		name,
		profile.SkinType,
		common.ConcernsToString(profile.Concerns),
		profile.Budget,
		sensitivities,
	)

	answers := profile.QuizAnswers
	if v := answers.Text(quiz.KeySkinFeelAfterCleanse); v != "" {
		fmt.Fprintf(&b, "\n- After cleansing: %s", v)
	}
	if v := answers.Number(quiz.KeyReactivity); v > 0 {
		fmt.Fprintf(&b, "\n- Skin reactivity level: %g/5", v)
	}
	if v := answers.List(quiz.KeyCommonBlemishType); len(v) > 0 {
		fmt.Fprintf(&b, "\n- Common blemishes: %s", strings.Join(v, ", "))
	}
	if v := answers.Text(quiz.KeySPFConsistency); v != "" {
		fmt.Fprintf(&b, "\n- SPF usage: %s", v)
	}
	if v := answers.Text(quiz.KeyPreferredTextures); v != "" {
		fmt.Fprintf(&b, "\n- Texture preference: %s", v)
	}
	if v := answers.Text(quiz.KeyOpenTextGoals); v != "" {
		fmt.Fprintf(&b, "\n- Additional notes: %s", v)
	}

	b.WriteString("\n\nBased on this profile, provide personalized, science-backed skincare advice. Be warm and encouraging. Keep responses concise (2-4 sentences unless asked for detail). Use emojis sparingly. Always consider their sensitivities and budget when recommending products.")

	return b.String()
}

// buildAnalysisPrompt 成分分析的系統提示，要求結構化 JSON 回覆
func buildAnalysisPrompt(profile *common.UserProfile) string {
	profileSection := ""
	if profile != nil {
		sensitivities := "None"
		if len(profile.Allergies) > 0 {
			sensitivities = strings.Join(profile.Allergies, ", ")
		}
		profileSection = fmt.Sprintf(`USER PROFILE:
- Skin Type: %s
- Concerns: %s
- Sensitivities: %s`,
			profile.SkinType,
			common.ConcernsToString(profile.Concerns),
			sensitivities,
		)
	}

	return fmt.Sprintf(`You are Lumin, an expert skincare ingredient analyst. Analyze product ingredients and provide compatibility scores based on the user's skin profile.

%s

Analyze the ingredients and respond with a JSON object containing:
- compatibilityScore: number (0-100)
- pros: array of strings (positive points, 2-4 items)
- cons: array of strings (concerns or limitations, 1-3 items)

Be specific about how ingredients relate to their skin type and concerns.`, profileSection)
}
