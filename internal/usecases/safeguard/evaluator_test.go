package safeguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

func defaultLimits() config.Safeguards {
	return config.Safeguards{
		MaxChangesPerApproval: 10,
		MaxBudgetChangePct:    20.0,
		RollbackWindowHours:   24,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func budgetOp(oldValue, newValue float64) domain.ChangeOperation {
	return domain.ChangeOperation{
		Kind:       domain.OpSetCampaignBudget,
		CampaignID: "123",
		OldValue:   floatPtr(oldValue),
		NewValue:   floatPtr(newValue),
	}
}

func TestEvaluateAllowsSimpleProposal(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	decision := evaluator.Evaluate(domain.CategoryBudget, []domain.ChangeOperation{
		budgetOp(1000, 1100),
	})

	assert.True(t, decision.Allowed)
	assert.Empty(t, decision.Violations)
	assert.Empty(t, decision.Warnings)
}

func TestEvaluateBlocksTooManyChanges(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	operations := make([]domain.ChangeOperation, 11)
	for i := range operations {
		operations[i] = domain.ChangeOperation{
			Kind:      domain.OpAddKeywords,
			AdGroupID: "456",
			Keywords:  []string{"tenis corrida"},
		}
	}

	decision := evaluator.Evaluate(domain.CategoryKeyword, operations)

	assert.False(t, decision.Allowed)
	require.Len(t, decision.Violations, 1)
	assert.Equal(t, RuleMaxChanges, decision.Violations[0].Rule)
}

func TestEvaluateWarnsNearChangeLimit(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	// 8 operações = 80% do limite de 10
	operations := make([]domain.ChangeOperation, 8)
	for i := range operations {
		operations[i] = domain.ChangeOperation{
			Kind:      domain.OpAddKeywords,
			AdGroupID: "456",
			Keywords:  []string{"tenis corrida"},
		}
	}

	decision := evaluator.Evaluate(domain.CategoryKeyword, operations)

	assert.True(t, decision.Allowed)
	assert.Len(t, decision.Warnings, 1)
}

func TestEvaluateBudgetChangeAtExactLimitPasses(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	// 1000 -> 1200 = exatamente 20%
	decision := evaluator.Evaluate(domain.CategoryBudget, []domain.ChangeOperation{
		budgetOp(1000, 1200),
	})

	assert.True(t, decision.Allowed)
	assert.Empty(t, decision.Violations)
	// 20% está acima de 80% do limite, então emite aviso
	assert.Len(t, decision.Warnings, 1)
}

func TestEvaluateBlocksBudgetChangeAboveLimit(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	decision := evaluator.Evaluate(domain.CategoryBudget, []domain.ChangeOperation{
		budgetOp(1000, 1201),
	})

	assert.False(t, decision.Allowed)
	require.Len(t, decision.Violations, 1)
	assert.Equal(t, RuleBudgetChangePct, decision.Violations[0].Rule)
}

func TestEvaluateBlocksBudgetDecreaseAboveLimit(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	// Redução de 30% também viola o limite
	decision := evaluator.Evaluate(domain.CategoryBudget, []domain.ChangeOperation{
		budgetOp(1000, 700),
	})

	assert.False(t, decision.Allowed)
	require.Len(t, decision.Violations, 1)
	assert.Equal(t, RuleBudgetChangePct, decision.Violations[0].Rule)
}

func TestEvaluateBlocksZeroBaselineBudget(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	// Qualquer valor novo diferente de zero sobre baseline zero bloqueia
	for _, newValue := range []float64{500, -500} {
		decision := evaluator.Evaluate(domain.CategoryBudget, []domain.ChangeOperation{
			budgetOp(0, newValue),
		})

		assert.False(t, decision.Allowed)
		require.Len(t, decision.Violations, 1)
		assert.Equal(t, RuleZeroBaseline, decision.Violations[0].Rule)
	}
}

func TestEvaluateZeroToZeroBudgetPasses(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	decision := evaluator.Evaluate(domain.CategoryBudget, []domain.ChangeOperation{
		budgetOp(0, 0),
	})

	assert.True(t, decision.Allowed)
}

func TestEvaluateBlocksBudgetOperationWithoutValues(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	decision := evaluator.Evaluate(domain.CategoryBudget, []domain.ChangeOperation{
		{
			Kind:       domain.OpSetCampaignBudget,
			CampaignID: "123",
			NewValue:   floatPtr(500),
		},
	})

	assert.False(t, decision.Allowed)
	require.Len(t, decision.Violations, 1)
	assert.Equal(t, RuleMissingValue, decision.Violations[0].Rule)
}

func TestEvaluateBlocksManualCreativeCategory(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	decision := evaluator.Evaluate(domain.CategoryManualCreative, []domain.ChangeOperation{
		{
			Kind:      domain.OpCreateResponsiveSearchAd,
			AdGroupID: "456",
			Headlines: []string{"Promoção de inverno"},
		},
	})

	assert.False(t, decision.Allowed)
	require.Len(t, decision.Violations, 1)
	assert.Equal(t, RuleCategoryNotAuto, decision.Violations[0].Rule)
}

func TestEvaluateWarnsHighRiskOperations(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	decision := evaluator.Evaluate(domain.CategoryKeyword, []domain.ChangeOperation{
		{
			Kind:      domain.OpAddNegativeKeywords,
			AdGroupID: "456",
			Keywords:  []string{"gratis", "barato"},
		},
		{
			Kind: domain.OpPauseAd,
			AdID: "AD123",
		},
	})

	// Operações de alto risco avisam, mas não bloqueiam
	assert.True(t, decision.Allowed)
	assert.Empty(t, decision.Violations)
	require.Len(t, decision.Warnings, 2)
	assert.Contains(t, decision.Warnings[0], "negativação")
	assert.Contains(t, decision.Warnings[1], "pausa do anúncio AD123")
}

func TestEvaluateAccumulatesViolations(t *testing.T) {
	evaluator := NewEvaluator(defaultLimits())

	operations := make([]domain.ChangeOperation, 0, 12)
	for i := 0; i < 11; i++ {
		operations = append(operations, budgetOp(1000, 1100))
	}
	operations = append(operations, budgetOp(1000, 2000))

	decision := evaluator.Evaluate(domain.CategoryBudget, operations)

	assert.False(t, decision.Allowed)
	// Limite de quantidade + variação percentual
	assert.Len(t, decision.Violations, 2)
}
