package proposing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chatMocks "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/chatwork/mocks"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/safeguard"
	"go.uber.org/mock/gomock"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func stringPtr(s string) *string {
	return &s
}

func testLimits() config.Safeguards {
	return config.Safeguards{
		MaxChangesPerApproval: 10,
		MaxBudgetChangePct:    20,
		RollbackWindowHours:   24,
	}
}

func testClaims() *domain.Claims {
	return &domain.Claims{UserID: 7, UserName: "Ana", UserLastname: "Souza", UserRoleID: 2}
}

func budgetProposal(id string, status domain.ProposalStatus, current, next float64) *domain.Proposal {
	return &domain.Proposal{
		ID:       id,
		Category: domain.CategoryBudget,
		Priority: domain.PriorityHigh,
		Title:    "Ajustar orçamento",
		Status:   status,
		ActionSteps: &domain.ActionSteps{Steps: []domain.ActionStep{
			{CampaignID: "CAMP001", CurrentValue: &current, NewValue: &next},
		}},
	}
}

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.ProposalStatus
		to      domain.ProposalStatus
		allowed bool
	}{
		{"pendente pode ser aprovada", domain.ProposalStatusPending, domain.ProposalStatusApproved, true},
		{"pendente pode ser rejeitada", domain.ProposalStatusPending, domain.ProposalStatusRejected, true},
		{"pendente pode ser descartada", domain.ProposalStatusPending, domain.ProposalStatusSkipped, true},
		{"aprovada pode ser executada", domain.ProposalStatusApproved, domain.ProposalStatusExecuted, true},
		{"executada volta a aprovada no rollback", domain.ProposalStatusExecuted, domain.ProposalStatusApproved, true},
		{"rejeitada é terminal", domain.ProposalStatusRejected, domain.ProposalStatusApproved, false},
		{"descartada é terminal", domain.ProposalStatusSkipped, domain.ProposalStatusApproved, false},
		{"executada não pode ser rejeitada", domain.ProposalStatusExecuted, domain.ProposalStatusRejected, false},
		{"pendente não pode ir direto para executada", domain.ProposalStatusPending, domain.ProposalStatusExecuted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, TransitionAllowed(tt.from, tt.to))
		})
	}
}

func TestService_ImportProposals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(proposalRepo, campaignRepo, safeguard.NewEvaluator(testLimits()), chatMocks.NewMockNotifier(ctrl))

	t.Run("Importação força o status pendente", func(t *testing.T) {
		proposals := []*domain.Proposal{
			{Category: domain.CategoryBudget, Priority: domain.PriorityLow, Status: domain.ProposalStatusApproved},
		}

		proposalRepo.EXPECT().CreateBatch(proposals).Return(nil)

		err := service.ImportProposals(proposals)

		require.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusPending, proposals[0].Status)
	})

	t.Run("Categoria desconhecida é rejeitada antes de gravar", func(t *testing.T) {
		err := service.ImportProposals([]*domain.Proposal{{Category: "inventada"}})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "category", validationErr.Field)
	})
}

func TestService_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	notifier := chatMocks.NewMockNotifier(ctrl)
	service := NewService(proposalRepo, campaignRepo, safeguard.NewEvaluator(testLimits()), notifier)

	t.Run("Aprovação dentro dos limites grava a transição", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP001").
			Return(budgetProposal("PROP001", domain.ProposalStatusPending, 100, 115), nil)
		proposalRepo.EXPECT().UpdateApproval("PROP001", nil, gomock.Any()).Return(nil)

		proposal, decision, err := service.Approve("PROP001", &ApprovalRequest{}, testClaims())

		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, domain.ProposalStatusApproved, proposal.Status)
	})

	t.Run("Edição do operador é aplicada e registrada no histórico", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP002").
			Return(budgetProposal("PROP002", domain.ProposalStatusPending, 100, 150), nil)
		proposalRepo.EXPECT().UpdateApproval("PROP002", nil, gomock.Any()).
			DoAndReturn(func(_ string, _ interface{}, steps *domain.ActionSteps) error {
				require.Len(t, steps.Steps, 1)
				assert.Equal(t, 110.0, *steps.Steps[0].NewValue)
				require.Len(t, steps.EditHistory, 1)
				assert.Equal(t, "Ana Souza", steps.EditHistory[0].EditedBy)
				assert.Equal(t, 150.0, *steps.EditHistory[0].OriginalSteps[0].NewValue)
				return nil
			})

		// O valor proposto (+50%) estouraria o limite; o override de +10% passa
		req := &ApprovalRequest{
			EditedValues: &domain.EditedValues{NewValue: float64Ptr(110)},
			EditReason:   "variação proposta acima do limite",
		}

		proposal, decision, err := service.Approve("PROP002", req, testClaims())

		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, domain.ProposalStatusApproved, proposal.Status)
	})

	t.Run("Variação de orçamento acima do limite bloqueia a aprovação", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP003").
			Return(budgetProposal("PROP003", domain.ProposalStatusPending, 100, 130), nil)

		_, decision, err := service.Approve("PROP003", nil, testClaims())

		var safeguardErr *SafeguardError
		require.ErrorAs(t, err, &safeguardErr)
		assert.False(t, decision.Allowed)
		assert.Equal(t, safeguard.RuleBudgetChangePct, decision.Violations[0].Rule)
	})

	t.Run("Categoria manual pode ser aprovada apesar da violação de categoria", func(t *testing.T) {
		manual := &domain.Proposal{
			ID:       "PROP004",
			Category: domain.CategoryManualCreative,
			Status:   domain.ProposalStatusPending,
			ActionSteps: &domain.ActionSteps{Steps: []domain.ActionStep{
				{CampaignID: "CAMP001", Headlines: []string{"Novo banner"}},
			}},
		}
		proposalRepo.EXPECT().GetByID("PROP004").Return(manual, nil)
		proposalRepo.EXPECT().UpdateApproval("PROP004", nil, gomock.Any()).Return(nil)
		// Aplicação manual vira tarefa registrada para o time de tráfego
		notifier.EXPECT().RegisterManualCreativeTask(gomock.Any(), manual)

		proposal, decision, err := service.Approve("PROP004", nil, testClaims())

		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		require.Len(t, decision.Violations, 1)
		assert.Equal(t, safeguard.RuleCategoryNotAuto, decision.Violations[0].Rule)
		assert.Equal(t, domain.ProposalStatusApproved, proposal.Status)
	})

	t.Run("Proposta fora de pendente não pode ser aprovada", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP005").
			Return(budgetProposal("PROP005", domain.ProposalStatusExecuted, 100, 110), nil)

		_, _, err := service.Approve("PROP005", nil, testClaims())

		var transitionErr *TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, domain.ProposalStatusExecuted, transitionErr.From)
	})

	t.Run("Corrida perdida no CAS vira conflito de concorrência", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP006").
			Return(budgetProposal("PROP006", domain.ProposalStatusPending, 100, 110), nil)
		proposalRepo.EXPECT().UpdateApproval("PROP006", nil, gomock.Any()).
			Return(repository.ErrStatusConflict)

		_, _, err := service.Approve("PROP006", nil, testClaims())

		assert.ErrorIs(t, err, ErrConcurrencyConflict)
	})

	t.Run("Proposta inexistente", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP404").Return(nil, nil)

		_, _, err := service.Approve("PROP404", nil, testClaims())

		assert.ErrorIs(t, err, ErrProposalNotFound)
	})
}

func TestService_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(proposalRepo, campaignRepo, safeguard.NewEvaluator(testLimits()), chatMocks.NewMockNotifier(ctrl))

	t.Run("Rejeição exige motivo", func(t *testing.T) {
		err := service.Reject("PROP001", "", testClaims())

		assert.ErrorIs(t, err, ErrMissingReason)
	})

	t.Run("Rejeição grava a transição e o motivo", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP001").
			Return(budgetProposal("PROP001", domain.ProposalStatusPending, 100, 110), nil)
		proposalRepo.EXPECT().
			UpdateStatusIf("PROP001", domain.ProposalStatusPending, domain.ProposalStatusRejected).
			Return(nil)
		proposalRepo.EXPECT().UpdateActionSteps("PROP001", gomock.Any()).
			DoAndReturn(func(_ string, steps *domain.ActionSteps) error {
				assert.Equal(t, "baseline instável", steps.RejectionReason)
				assert.NotNil(t, steps.RejectedAt)
				return nil
			})

		err := service.Reject("PROP001", "baseline instável", testClaims())

		require.NoError(t, err)
	})

	t.Run("Proposta já aprovada não pode ser rejeitada", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP002").
			Return(budgetProposal("PROP002", domain.ProposalStatusApproved, 100, 110), nil)

		err := service.Reject("PROP002", "qualquer motivo", testClaims())

		var transitionErr *TransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestService_CleanupInactiveCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(proposalRepo, campaignRepo, safeguard.NewEvaluator(testLimits()), chatMocks.NewMockNotifier(ctrl))

	pendentes := func() []*domain.Proposal {
		ativa := budgetProposal("PROP001", domain.ProposalStatusPending, 100, 110)
		ativa.TargetCampaign = stringPtr("Campanha Ativa")
		inativa := budgetProposal("PROP002", domain.ProposalStatusPending, 100, 110)
		inativa.TargetCampaign = stringPtr("Campanha Encerrada")
		return []*domain.Proposal{ativa, inativa}
	}

	t.Run("Dry run reporta sem alterar nada", func(t *testing.T) {
		proposalRepo.EXPECT().ListPendingWithTarget().Return(pendentes(), nil)
		campaignRepo.EXPECT().ActiveNameSet().Return(map[string]bool{"Campanha Ativa": true}, nil)

		result, err := service.CleanupInactiveCampaigns(true)

		require.NoError(t, err)
		assert.True(t, result.DryRun)
		assert.Equal(t, 2, result.Evaluated)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, []string{"PROP002"}, result.SkippedIDs)
	})

	t.Run("Limpeza descarta apenas propostas de campanhas inativas", func(t *testing.T) {
		proposalRepo.EXPECT().ListPendingWithTarget().Return(pendentes(), nil)
		campaignRepo.EXPECT().ActiveNameSet().Return(map[string]bool{"Campanha Ativa": true}, nil)
		proposalRepo.EXPECT().
			UpdateStatusIf("PROP002", domain.ProposalStatusPending, domain.ProposalStatusSkipped).
			Return(nil)

		result, err := service.CleanupInactiveCampaigns(false)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("Conflito de concorrência no meio da rodada não interrompe", func(t *testing.T) {
		proposalRepo.EXPECT().ListPendingWithTarget().Return(pendentes(), nil)
		campaignRepo.EXPECT().ActiveNameSet().Return(map[string]bool{"Campanha Ativa": true}, nil)
		proposalRepo.EXPECT().
			UpdateStatusIf("PROP002", domain.ProposalStatusPending, domain.ProposalStatusSkipped).
			Return(repository.ErrStatusConflict)

		result, err := service.CleanupInactiveCampaigns(false)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Skipped)
	})
}

func TestService_ListProposals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(proposalRepo, campaignRepo, safeguard.NewEvaluator(testLimits()), chatMocks.NewMockNotifier(ctrl))

	t.Run("Listagem marca a atividade da campanha alvo", func(t *testing.T) {
		comAlvo := budgetProposal("PROP001", domain.ProposalStatusPending, 100, 110)
		comAlvo.TargetCampaign = stringPtr("Campanha Ativa")
		semAlvo := budgetProposal("PROP002", domain.ProposalStatusPending, 100, 110)

		proposalRepo.EXPECT().List(nil).Return([]*domain.Proposal{comAlvo, semAlvo}, nil)
		campaignRepo.EXPECT().ActiveNameSet().Return(map[string]bool{"Campanha Ativa": true}, nil)

		views, err := service.ListProposals(nil)

		require.NoError(t, err)
		require.Len(t, views, 2)
		require.NotNil(t, views[0].IsCampaignActive)
		assert.True(t, *views[0].IsCampaignActive)
		assert.Nil(t, views[1].IsCampaignActive)
	})

	t.Run("Falha no espelho de campanhas não derruba a listagem", func(t *testing.T) {
		proposalRepo.EXPECT().List(nil).
			Return([]*domain.Proposal{budgetProposal("PROP001", domain.ProposalStatusPending, 100, 110)}, nil)
		campaignRepo.EXPECT().ActiveNameSet().Return(nil, assert.AnError)

		views, err := service.ListProposals(nil)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Nil(t, views[0].IsCampaignActive)
	})
}
