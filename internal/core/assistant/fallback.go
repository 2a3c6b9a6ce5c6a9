package assistant

import (
	"fmt"
	"strings"

	"belumin-api/internal/core/quiz"
	"belumin-api/internal/pkg/common"
)

// fallbackReply 離線關鍵字回應器
// 實作與線上閘道相同的契約：依訊息關鍵字與使用者檔案組出確定性回覆
func fallbackReply(message string, profile *common.UserProfile) string {
	lower := strings.ToLower(message)

	var answers common.AnswerMap
	if profile != nil {
		answers = profile.QuizAnswers
	}

	if strings.Contains(lower, "routine") || strings.Contains(lower, "skincare") {
		textureRec := ""
		switch answers.Text(quiz.KeyPreferredTextures) {
		case quiz.TextureLightweightGels:
			textureRec = " I noticed you prefer lightweight textures, so I'll recommend gel-based and essence products."
		case quiz.TextureRichCreams:
			textureRec = " Since you enjoy rich creams, I'll focus on nourishing, emollient formulas."
		}

		skinType := "skin"
		concerns := "general skincare"
		budget := "budget"
		if profile != nil {
			skinType = string(profile.SkinType)
			if len(profile.Concerns) > 0 {
				parts := make([]string, 0, len(profile.Concerns))
				for _, c := range profile.Concerns {
					parts = append(parts, string(c))
				}
				concerns = strings.Join(parts, " and ")
			}
			if profile.Budget != "" {
				budget = string(profile.Budget)
			}
		}

		return fmt.Sprintf("Based on your %s type and concerns about %s, I recommend a simple routine: gentle cleanser, targeted treatment, and moisturizer with SPF in the morning.%s Would you like specific product recommendations within your %s?",
			skinType, concerns, textureRec, budget)
	}

	if strings.Contains(lower, "acne") || strings.Contains(lower, "pimple") || strings.Contains(lower, "breakout") {
		recommendation := "For acne, I recommend ingredients like niacinamide, salicylic acid, or benzoyl peroxide. "

		if answers.Contains(quiz.KeyCommonBlemishType, quiz.BlemishDeepCysts) {
			recommendation += "Since you experience deep cysts, consider consulting a dermatologist for prescription treatments alongside your routine. "
		}
		if profile.HasAllergy(quiz.IrritantStrongAcids) {
			recommendation += "I see you're sensitive to strong acids, so let's focus on gentle options like azelaic acid or tea tree oil instead."
		}

		return recommendation
	}

	if strings.Contains(lower, "sun") || strings.Contains(lower, "spf") || strings.Contains(lower, "sunscreen") {
		chemicalSensitive := profile.HasAllergy(quiz.IrritantChemicalSPF)

		switch answers.Text(quiz.KeySPFConsistency) {
		case quiz.SPFEveryDay:
			reply := "Amazing that you use SPF daily! That's the #1 anti-aging habit. "
			if chemicalSensitive {
				return reply + "Since you're sensitive to chemical filters, stick with mineral sunscreens containing zinc oxide or titanium dioxide."
			}
			return reply + "Keep up the great work!"
		case quiz.SPFRarelyNever:
			reply := "Sunscreen is crucial for preventing premature aging and hyperpigmentation. "
			if chemicalSensitive {
				reply += "Try mineral sunscreens with zinc oxide - they're gentler and work immediately. "
			}
			return reply + "Apply it as the last step of your morning routine, even on cloudy days!"
		}

		reply := "SPF 30+ should be used daily for optimal protection. "
		if chemicalSensitive {
			return reply + "Look for mineral-based formulas since you're sensitive to chemical filters."
		}
		return reply + "Find a formula you enjoy to make it a consistent habit!"
	}

	if strings.Contains(lower, "product") || strings.Contains(lower, "ingredient") {
		return "I'd be happy to analyze any product for you! You can upload a photo of the ingredient list, or tell me the product name and I'll check if it's suitable for your skin type and concerns."
	}

	if strings.Contains(lower, "sensitivity") || strings.Contains(lower, "irritation") || strings.Contains(lower, "reactive") {
		if answers.Number(quiz.KeyReactivity) >= 4 {
			reply := "Your skin is quite reactive, so it's important to: 1) Patch test new products, 2) Avoid fragrance and essential oils, 3) Use gentle, minimal ingredient formulas. "
			if answers.Text(quiz.KeyRednessFadingTime) == quiz.StaysRedHours {
				reply += "Since redness lingers for you, look for soothing ingredients like centella, niacinamide, and ceramides."
			}
			return reply
		}
		return "For sensitive skin, stick to fragrance-free formulas and introduce new products one at a time. Ingredients like niacinamide, ceramides, and colloidal oatmeal can help strengthen your skin barrier."
	}

	if strings.Contains(lower, "hello") || strings.Contains(lower, "hi") {
		name := "there"
		if profile != nil && profile.Name != "" {
			name = profile.Name
		}
		return fmt.Sprintf("Hello %s! I'm Lumin, your personal skincare companion. I've analyzed your comprehensive skin profile and I'm here to give you personalized advice. What would you like to know today?", name)
	}

	// 預設回應
	return "That's a great question! Based on your detailed skin profile, I can provide personalized advice. Could you tell me more about what specific aspect of skincare you're curious about?"
}
