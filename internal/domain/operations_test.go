package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestPlanOperations(t *testing.T) {
	tests := []struct {
		name     string
		category ProposalCategory
		steps    *ActionSteps
		validate func(t *testing.T, operations []ChangeOperation)
	}{
		{
			name:     "Proposta de orçamento gera operação de set absoluto",
			category: CategoryBudget,
			steps: &ActionSteps{Steps: []ActionStep{
				{
					CampaignID:   "CAMP001",
					CurrentValue: float64Ptr(100),
					NewValue:     float64Ptr(120),
				},
			}},
			validate: func(t *testing.T, operations []ChangeOperation) {
				require.Len(t, operations, 1)
				assert.Equal(t, OpSetCampaignBudget, operations[0].Kind)
				assert.Equal(t, "CAMP001", operations[0].CampaignID)
				assert.Equal(t, 100.0, *operations[0].OldValue)
				assert.Equal(t, 120.0, *operations[0].NewValue)
			},
		},
		{
			name:     "Lances sem campo endereçado caem em target CPA",
			category: CategoryBidding,
			steps: &ActionSteps{Steps: []ActionStep{
				{
					CampaignID:   "CAMP001",
					CurrentValue: float64Ptr(50),
					NewValue:     float64Ptr(45),
				},
			}},
			validate: func(t *testing.T, operations []ChangeOperation) {
				require.Len(t, operations, 1)
				assert.Equal(t, OpSetTargetCPA, operations[0].Kind)
			},
		},
		{
			name:     "Resposta competitiva endereçando orçamento usa a operação de orçamento",
			category: CategoryCompetitiveResponse,
			steps: &ActionSteps{Steps: []ActionStep{
				{
					CampaignID:   "CAMP001",
					Field:        FieldBudget,
					CurrentValue: float64Ptr(100),
					NewValue:     float64Ptr(110),
				},
			}},
			validate: func(t *testing.T, operations []ChangeOperation) {
				require.Len(t, operations, 1)
				assert.Equal(t, OpSetCampaignBudget, operations[0].Kind)
				assert.True(t, operations[0].IsBudgetChange())
			},
		},
		{
			name:     "Modificadores por dispositivo geram uma operação por dispositivo em ordem estável",
			category: CategoryTargeting,
			steps: &ActionSteps{Steps: []ActionStep{
				{
					CampaignID: "CAMP001",
					DeviceModifiers: map[string]float64{
						"tablet":  0.8,
						"desktop": 1.1,
						"mobile":  0.9,
					},
				},
			}},
			validate: func(t *testing.T, operations []ChangeOperation) {
				require.Len(t, operations, 3)
				assert.Equal(t, "desktop", operations[0].DeviceType)
				assert.Equal(t, "mobile", operations[1].DeviceType)
				assert.Equal(t, "tablet", operations[2].DeviceType)
				for _, op := range operations {
					assert.Equal(t, OpSetDeviceBidModifier, op.Kind)
				}
			},
		},
		{
			name:     "Palavras-chave negativas geram operação de negativação",
			category: CategoryKeyword,
			steps: &ActionSteps{Steps: []ActionStep{
				{
					CampaignID: "CAMP001",
					AdGroupID:  "AG001",
					Field:      FieldNegativeKeywords,
					Keywords:   []string{"grátis", "barato"},
					MatchType:  "phrase",
				},
			}},
			validate: func(t *testing.T, operations []ChangeOperation) {
				require.Len(t, operations, 1)
				assert.Equal(t, OpAddNegativeKeywords, operations[0].Kind)
				assert.Equal(t, []string{"grátis", "barato"}, operations[0].Keywords)
				assert.Equal(t, "phrase", operations[0].MatchType)
			},
		},
		{
			name:     "Criativo com anúncio substituído cria o novo e pausa o antigo",
			category: CategoryCreative,
			steps: &ActionSteps{Steps: []ActionStep{
				{
					CampaignID:   "CAMP001",
					AdGroupID:    "AG001",
					Headlines:    []string{"Título A", "Título B"},
					Descriptions: []string{"Descrição A"},
					FinalURL:     "https://example.com",
					OldAdID:      "AD123",
				},
			}},
			validate: func(t *testing.T, operations []ChangeOperation) {
				require.Len(t, operations, 2)
				assert.Equal(t, OpCreateResponsiveSearchAd, operations[0].Kind)
				assert.Equal(t, OpPauseAd, operations[1].Kind)
				assert.Equal(t, "AD123", operations[1].AdID)
			},
		},
		{
			name:     "Categoria manual não produz operações",
			category: CategoryManualCreative,
			steps: &ActionSteps{Steps: []ActionStep{
				{CampaignID: "CAMP001", Headlines: []string{"Título"}},
			}},
			validate: func(t *testing.T, operations []ChangeOperation) {
				assert.Empty(t, operations)
			},
		},
		{
			name:     "Steps nulos não produzem operações",
			category: CategoryBudget,
			steps:    nil,
			validate: func(t *testing.T, operations []ChangeOperation) {
				assert.Empty(t, operations)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, PlanOperations(tt.category, tt.steps))
		})
	}
}

func TestApplyEdits(t *testing.T) {
	t.Run("Override de valor preserva os steps originais", func(t *testing.T) {
		original := []ActionStep{
			{CampaignID: "CAMP001", CurrentValue: float64Ptr(100), NewValue: float64Ptr(150)},
		}

		edited := ApplyEdits(original, &EditedValues{NewValue: float64Ptr(115)})

		require.Len(t, edited, 1)
		assert.Equal(t, 115.0, *edited[0].NewValue)
		assert.Equal(t, 150.0, *original[0].NewValue)
	})

	t.Run("Override de target CPA também endereça o campo", func(t *testing.T) {
		original := []ActionStep{{CampaignID: "CAMP001"}}

		edited := ApplyEdits(original, &EditedValues{TargetCPA: float64Ptr(42)})

		require.Len(t, edited, 1)
		assert.Equal(t, FieldTargetCPA, edited[0].Field)
		assert.Equal(t, 42.0, *edited[0].NewValue)
	})

	t.Run("Override vazio retorna os steps sem cópia", func(t *testing.T) {
		original := []ActionStep{{CampaignID: "CAMP001"}}

		edited := ApplyEdits(original, &EditedValues{})

		assert.Equal(t, original, edited)
	})

	t.Run("Override de palavras-chave negativas substitui a lista", func(t *testing.T) {
		original := []ActionStep{
			{CampaignID: "CAMP001", Field: FieldKeywords, Keywords: []string{"antiga"}},
		}

		edited := ApplyEdits(original, &EditedValues{NegativeKeywords: []string{"nova"}})

		require.Len(t, edited, 1)
		assert.Equal(t, FieldNegativeKeywords, edited[0].Field)
		assert.Equal(t, []string{"nova"}, edited[0].Keywords)
	})
}
