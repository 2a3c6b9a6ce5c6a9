package common

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// ClampScore 將分數限制在 [min, max] 區間
func ClampScore(score, min, max int) int {
	if score < min {
		return min
	}
	if score > max {
		return max
	}
	return score
}

// TruncateRunes 依字元數截斷字串（避免切斷 UTF-8 字元）
func TruncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// ConcernsToString 將困擾標籤列表轉換為逗號分隔的字串
func ConcernsToString(concerns []SkinConcern) string {
	if len(concerns) == 0 {
		return ""
	}
	parts := make([]string, 0, len(concerns))
	for _, c := range concerns {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

// TimeBasedGreeting 依當前時間回傳問候語
func TimeBasedGreeting(now time.Time) string {
	hour := now.Hour()
	if hour < 12 {
		return "Good morning"
	}
	if hour < 17 {
		return "Good afternoon"
	}
	return "Good evening"
}
