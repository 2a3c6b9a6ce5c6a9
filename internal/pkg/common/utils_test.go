package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampScore(t *testing.T) {
	assert.Equal(t, 20, ClampScore(-40, 20, 98))
	assert.Equal(t, 98, ClampScore(144, 20, 98))
	assert.Equal(t, 62, ClampScore(62, 20, 98))
	assert.Equal(t, 100, ClampScore(150, 0, 100))
}

func TestTruncateRunes(t *testing.T) {
	t.Run("short strings pass through", func(t *testing.T) {
		assert.Equal(t, "hello", TruncateRunes("hello", 50))
	})

	t.Run("long strings cut at rune boundary", func(t *testing.T) {
		long := "皮膚保養是一門學問皮膚保養是一門學問"
		got := TruncateRunes(long, 10)
		assert.Equal(t, "皮膚保養是一門學問皮", got)
		assert.Len(t, []rune(got), 10)
	})
}

func TestConcernsToString(t *testing.T) {
	assert.Equal(t, "", ConcernsToString(nil))
	assert.Equal(t, "acne, dryness", ConcernsToString([]SkinConcern{ConcernAcne, ConcernDryness}))
}

func TestTimeBasedGreeting(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Good morning", TimeBasedGreeting(day.Add(8*time.Hour)))
	assert.Equal(t, "Good afternoon", TimeBasedGreeting(day.Add(13*time.Hour)))
	assert.Equal(t, "Good evening", TimeBasedGreeting(day.Add(20*time.Hour)))
}
