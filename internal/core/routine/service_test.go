package routine

import (
	"context"
	"testing"

	"belumin-api/internal/core/storage"
	"belumin-api/internal/pkg/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(storage.NewStoreWithClient(client, "belumin_test"))
}

func TestBuildFromRecommendations(t *testing.T) {
	t.Run("empty recommendations yield the scaffold", func(t *testing.T) {
		steps := BuildFromRecommendations(common.Recommendations{})

		require.Len(t, steps, 2)
		assert.Equal(t, "Gentle Cleanser", steps[0].ProductName)
		assert.Equal(t, common.TimeBoth, steps[0].TimeOfDay)
		assert.Equal(t, "Moisturizer", steps[1].ProductName)
		assert.Equal(t, 2, steps[1].Order)
	})

	t.Run("recommendations map to concrete steps in order", func(t *testing.T) {
		recs := common.Recommendations{
			MorningSteps: []string{
				"Daily SPF 30+ (non-negotiable!)",
				"Vitamin C serum",
			},
			EveningSteps: []string{
				"BHA exfoliant 2-3x per week",
				"Benzoyl peroxide spot treatment",
				"Retinol (start slow, build tolerance)",
			},
		}

		steps := BuildFromRecommendations(recs)
		require.Len(t, steps, 7)

		names := make([]string, 0, len(steps))
		for i, step := range steps {
			names = append(names, step.ProductName)
			assert.Equal(t, i+1, step.Order)
			assert.NotEmpty(t, step.ID)
			assert.False(t, step.Completed)
		}
		assert.Equal(t, []string{
			"Gentle Cleanser",
			"Moisturizer",
			"Sunscreen SPF 30+",
			"Vitamin C Serum",
			"BHA Exfoliant",
			"Benzoyl Peroxide Spot Treatment",
			"Retinol Treatment",
		}, names)

		assert.Equal(t, common.TimeMorning, steps[2].TimeOfDay)
		assert.Equal(t, common.CategorySunscreen, steps[2].Category)
		assert.Equal(t, common.TimeEvening, steps[4].TimeOfDay)
		assert.Equal(t, common.CategoryTreatment, steps[6].Category)
	})

	t.Run("unrecognized recommendations are skipped without gaps", func(t *testing.T) {
		recs := common.Recommendations{
			MorningSteps: []string{"Drink more water", "Vitamin C serum"},
		}

		steps := BuildFromRecommendations(recs)
		require.Len(t, steps, 3)
		assert.Equal(t, "Vitamin C Serum", steps[2].ProductName)
		assert.Equal(t, 3, steps[2].Order)
	})
}

func TestGenerateAndToggle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	steps, err := svc.Generate(ctx, common.Recommendations{
		MorningSteps: []string{"Daily SPF 30+ (non-negotiable!)"},
	})
	require.NoError(t, err)
	require.Len(t, steps, 3)

	t.Run("toggle flips completion and persists", func(t *testing.T) {
		updated, found, err := svc.Toggle(ctx, steps[0].ID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, updated[0].Completed)

		// 再切一次恢復原狀
		updated, found, err = svc.Toggle(ctx, steps[0].ID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.False(t, updated[0].Completed)
	})

	t.Run("unknown step id leaves the routine unchanged", func(t *testing.T) {
		updated, found, err := svc.Toggle(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Len(t, updated, 3)
	})
}

func TestSaveClampsScores(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	high := 150
	low := -5
	require.NoError(t, svc.Save(ctx, []common.RoutineStep{
		{ID: "s1", ProductName: "Serum", CompatibilityScore: &high},
		{ID: "s2", ProductName: "Toner", CompatibilityScore: &low},
		{ID: "s3", ProductName: "Cleanser"},
	}))

	steps, err := svc.Routine(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, 100, *steps[0].CompatibilityScore)
	assert.Equal(t, 0, *steps[1].CompatibilityScore)
	assert.Nil(t, steps[2].CompatibilityScore)
}
