// Package routine 管理保養流程：由建議產生起始流程、切換完成狀態、整份覆寫。
package routine

import (
	"context"
	"fmt"
	"strings"

	"belumin-api/internal/core/storage"
	"belumin-api/internal/pkg/common"
)

// Service 保養流程服務
type Service struct {
	store *storage.Store
}

// NewService 創建保養流程服務
func NewService(store *storage.Store) *Service {
	return &Service{store: store}
}

// BuildFromRecommendations 由保養建議產生起始流程
// 固定骨架（洗面、保濕）加上建議對應的步驟，依加入順序編號
func BuildFromRecommendations(recs common.Recommendations) []common.RoutineStep {
	steps := []common.RoutineStep{
		newStep("Gentle Cleanser", common.CategoryCleanser, common.TimeBoth, 1),
		newStep("Moisturizer", common.CategoryMoisturizer, common.TimeBoth, 2),
	}
	order := 3

	for _, rec := range recs.MorningSteps {
		switch {
		case strings.Contains(rec, "SPF"):
			steps = append(steps, newStep("Sunscreen SPF 30+", common.CategorySunscreen, common.TimeMorning, order))
		case strings.Contains(rec, "Vitamin C"):
			steps = append(steps, newStep("Vitamin C Serum", common.CategorySerum, common.TimeMorning, order))
		default:
			continue
		}
		order++
	}

	for _, rec := range recs.EveningSteps {
		switch {
		case strings.Contains(rec, "BHA"):
			steps = append(steps, newStep("BHA Exfoliant", common.CategoryTreatment, common.TimeEvening, order))
		case strings.Contains(rec, "Benzoyl peroxide"):
			steps = append(steps, newStep("Benzoyl Peroxide Spot Treatment", common.CategoryTreatment, common.TimeEvening, order))
		case strings.Contains(rec, "Retinol"):
			steps = append(steps, newStep("Retinol Treatment", common.CategoryTreatment, common.TimeEvening, order))
		default:
			continue
		}
		order++
	}

	return steps
}

func newStep(name string, category common.RoutineCategory, timeOfDay common.TimeOfDay, order int) common.RoutineStep {
	return common.RoutineStep{
		ID:          common.GenerateUUID(),
		ProductName: name,
		Category:    category,
		TimeOfDay:   timeOfDay,
		Order:       order,
		Completed:   false,
	}
}

// Generate 產生起始流程並整份覆寫既有流程
func (s *Service) Generate(ctx context.Context, recs common.Recommendations) ([]common.RoutineStep, error) {
	steps := BuildFromRecommendations(recs)
	if err := s.store.SaveRoutine(ctx, steps); err != nil {
		return nil, fmt.Errorf("failed to save routine: %w", err)
	}
	return steps, nil
}

// Routine 讀取目前的保養流程
func (s *Service) Routine(ctx context.Context) ([]common.RoutineStep, error) {
	return s.store.GetRoutine(ctx)
}

// Save 整份覆寫保養流程，相容性分數先夾取再儲存
func (s *Service) Save(ctx context.Context, steps []common.RoutineStep) error {
	for i := range steps {
		if steps[i].CompatibilityScore != nil {
			clamped := common.ClampScore(*steps[i].CompatibilityScore, 0, 100)
			steps[i].CompatibilityScore = &clamped
		}
	}
	return s.store.SaveRoutine(ctx, steps)
}

// Toggle 切換指定步驟的完成狀態，回傳更新後的流程
// 找不到步驟時回傳 found=false，流程不變
func (s *Service) Toggle(ctx context.Context, stepID string) ([]common.RoutineStep, bool, error) {
	steps, err := s.store.GetRoutine(ctx)
	if err != nil {
		return nil, false, err
	}

	found := false
	for i := range steps {
		if steps[i].ID == stepID {
			steps[i].Completed = !steps[i].Completed
			found = true
			break
		}
	}
	if !found {
		return steps, false, nil
	}

	if err := s.store.SaveRoutine(ctx, steps); err != nil {
		return nil, false, err
	}
	return steps, true, nil
}
