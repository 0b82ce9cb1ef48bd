package executing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adMocks "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform/mocks"
	chatMocks "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/chatwork/mocks"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/safeguard"
	"go.uber.org/mock/gomock"
)

type stubSnapshotter struct {
	err   error
	calls int
}

func (s *stubSnapshotter) CaptureBefore(_ context.Context, _ *domain.Proposal) error {
	s.calls++
	return s.err
}

func float64Ptr(v float64) *float64 {
	return &v
}

func testConfig() *config.Config {
	return &config.Config{
		Safeguards: config.Safeguards{
			MaxChangesPerApproval: 10,
			MaxBudgetChangePct:    20,
			RollbackWindowHours:   24,
		},
	}
}

func testClaims() *domain.Claims {
	return &domain.Claims{UserID: 7, UserName: "Ana", UserLastname: "Souza", UserRoleID: 2}
}

type serviceMocks struct {
	proposalRepo  *mocks.MockProposalRepository
	executionRepo *mocks.MockExecutionRepository
	integrator    *adMocks.MockIntegrator
	notifier      *chatMocks.MockNotifier
	snapshotter   *stubSnapshotter
}

func newTestService(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		proposalRepo:  mocks.NewMockProposalRepository(ctrl),
		executionRepo: mocks.NewMockExecutionRepository(ctrl),
		integrator:    adMocks.NewMockIntegrator(ctrl),
		notifier:      chatMocks.NewMockNotifier(ctrl),
		snapshotter:   &stubSnapshotter{},
	}

	service := &Service{
		proposalRepo:  m.proposalRepo,
		executionRepo: m.executionRepo,
		integrator:    m.integrator,
		evaluator:     safeguard.NewEvaluator(testConfig().Safeguards),
		snapshotter:   m.snapshotter,
		notifier:      m.notifier,
		cfg:           testConfig(),
		inFlight:      make(map[string]struct{}),
	}

	return service, m
}

func approvedBudgetProposal(id string, current, next float64) *domain.Proposal {
	return &domain.Proposal{
		ID:       id,
		Category: domain.CategoryBudget,
		Status:   domain.ProposalStatusApproved,
		ActionSteps: &domain.ActionSteps{Steps: []domain.ActionStep{
			{CampaignID: "CAMP001", CurrentValue: &current, NewValue: &next},
		}},
	}
}

func appliedBudgetChange(opID string) *domain.AppliedChange {
	return &domain.AppliedChange{
		OperationID:   opID,
		Kind:          domain.OpSetCampaignBudget,
		CampaignID:    "CAMP001",
		PreviousValue: float64Ptr(100),
		AppliedValue:  float64Ptr(110),
		Status:        domain.AppliedChangeStatusApplied,
	}
}

func TestService_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Execução completa grava o registro e transiciona a proposta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		proposal := approvedBudgetProposal("PROP001", 100, 110)
		m.proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)
		m.integrator.EXPECT().ApplyOperation(ctx, gomock.Any()).Return(appliedBudgetChange("op-1"), nil)
		m.executionRepo.EXPECT().Create(gomock.Any()).
			DoAndReturn(func(execution *domain.ProposalExecution) error {
				execution.ID = "EXEC001"
				return nil
			})
		m.proposalRepo.EXPECT().
			UpdateStatusIf("PROP001", domain.ProposalStatusApproved, domain.ProposalStatusExecuted).
			Return(nil)
		m.notifier.EXPECT().NotifyExecutionSuccess(ctx, proposal, gomock.Any())

		execution, err := service.Execute(ctx, "PROP001", &ExecutionRequest{Notes: "aplicando ajuste"}, testClaims())

		require.NoError(t, err)
		assert.Equal(t, "EXEC001", execution.ID)
		assert.Equal(t, "Ana Souza", execution.ExecutedBy)
		assert.Equal(t, "aplicando ajuste", execution.ExecutionNotes)
		require.NotNil(t, execution.ActualChanges)
		assert.Len(t, execution.ActualChanges.Operations, 1)
		assert.False(t, execution.ActualChanges.PartialFailure)
		assert.Equal(t, 1, m.snapshotter.calls)
	})

	t.Run("Falha parcial registra a execução e mantém a proposta aprovada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		proposal := &domain.Proposal{
			ID:       "PROP002",
			Category: domain.CategoryCreative,
			Status:   domain.ProposalStatusApproved,
			ActionSteps: &domain.ActionSteps{Steps: []domain.ActionStep{
				{
					CampaignID: "CAMP001",
					AdGroupID:  "AG001",
					Headlines:  []string{"Título"},
					FinalURL:   "https://example.com",
					OldAdID:    "AD123",
				},
			}},
		}
		m.proposalRepo.EXPECT().GetByID("PROP002").Return(proposal, nil)
		m.integrator.EXPECT().ApplyOperation(ctx, gomock.Any()).Times(2).
			DoAndReturn(func(_ context.Context, op domain.ChangeOperation) (*domain.AppliedChange, error) {
				if op.Kind == domain.OpPauseAd {
					return &domain.AppliedChange{
						OperationID: "op-2",
						Kind:        op.Kind,
						AdID:        op.AdID,
						Status:      domain.AppliedChangeStatusFailed,
						Error:       "ad not found",
					}, errors.New("ad not found")
				}
				return &domain.AppliedChange{
					OperationID: "op-1",
					Kind:        op.Kind,
					Status:      domain.AppliedChangeStatusApplied,
				}, nil
			})
		m.executionRepo.EXPECT().Create(gomock.Any()).
			DoAndReturn(func(execution *domain.ProposalExecution) error {
				execution.ID = "EXEC002"
				return nil
			})
		// Sem expectativa de UpdateStatusIf: falha parcial não transiciona
		m.notifier.EXPECT().NotifyExecutionSuccess(ctx, proposal, gomock.Any())

		execution, err := service.Execute(ctx, "PROP002", nil, testClaims())

		var partialErr *PartialFailureError
		require.ErrorAs(t, err, &partialErr)
		assert.ErrorIs(t, err, ErrPartialFailure)
		assert.Equal(t, 1, partialErr.Applied)
		require.Len(t, partialErr.Failed, 1)
		assert.Equal(t, "ad not found", partialErr.Failed[0].Error)
		require.NotNil(t, execution)
		assert.True(t, execution.ActualChanges.PartialFailure)
		assert.Equal(t, "ad not found", execution.ActualChanges.FailureError)
	})

	t.Run("Todas as operações falhando mantém a proposta aprovada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		proposal := approvedBudgetProposal("PROP003", 100, 110)
		m.proposalRepo.EXPECT().GetByID("PROP003").Return(proposal, nil)
		m.integrator.EXPECT().ApplyOperation(ctx, gomock.Any()).
			Return(&domain.AppliedChange{
				OperationID: "op-1",
				Kind:        domain.OpSetCampaignBudget,
				Status:      domain.AppliedChangeStatusFailed,
				Error:       "timeout",
			}, errors.New("timeout"))
		m.executionRepo.EXPECT().Create(gomock.Any()).Return(nil)
		m.notifier.EXPECT().NotifyExecutionFailure(ctx, proposal, ErrExternalAPIFailure)

		execution, err := service.Execute(ctx, "PROP003", nil, testClaims())

		assert.ErrorIs(t, err, ErrExternalAPIFailure)
		assert.Nil(t, execution)
	})

	t.Run("Safeguard bloqueia a execução quando os limites foram apertados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		// Aprovada com +50%: não passa mais na reavaliação feita na execução
		m.proposalRepo.EXPECT().GetByID("PROP004").
			Return(approvedBudgetProposal("PROP004", 100, 150), nil)

		_, err := service.Execute(ctx, "PROP004", nil, testClaims())

		var safeguardErr *SafeguardError
		require.ErrorAs(t, err, &safeguardErr)
		assert.ErrorIs(t, err, ErrSafeguardBlocked)
		assert.Equal(t, safeguard.RuleBudgetChangePct, safeguardErr.Decision.Violations[0].Rule)
		assert.Equal(t, 0, m.snapshotter.calls)
	})

	t.Run("Categoria manual não produz operações executáveis", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		manual := &domain.Proposal{
			ID:       "PROP005",
			Category: domain.CategoryManualCreative,
			Status:   domain.ProposalStatusApproved,
			ActionSteps: &domain.ActionSteps{Steps: []domain.ActionStep{
				{CampaignID: "CAMP001", Headlines: []string{"Título"}},
			}},
		}
		m.proposalRepo.EXPECT().GetByID("PROP005").Return(manual, nil)

		_, err := service.Execute(ctx, "PROP005", nil, testClaims())

		assert.ErrorIs(t, err, ErrNoOperations)
	})

	t.Run("Proposta pendente não é executável", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		pending := approvedBudgetProposal("PROP006", 100, 110)
		pending.Status = domain.ProposalStatusPending
		m.proposalRepo.EXPECT().GetByID("PROP006").Return(pending, nil)

		_, err := service.Execute(ctx, "PROP006", nil, testClaims())

		assert.ErrorIs(t, err, ErrNotExecutable)
	})

	t.Run("Segunda execução simultânea da mesma proposta é recusada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, _ := newTestService(ctrl)

		service.inFlight["PROP007"] = struct{}{}

		_, err := service.Execute(ctx, "PROP007", nil, testClaims())

		assert.ErrorIs(t, err, ErrExecutionInProgress)
	})

	t.Run("Corrida perdida no CAS vira conflito de concorrência", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		proposal := approvedBudgetProposal("PROP008", 100, 110)
		m.proposalRepo.EXPECT().GetByID("PROP008").Return(proposal, nil)
		m.integrator.EXPECT().ApplyOperation(ctx, gomock.Any()).Return(appliedBudgetChange("op-1"), nil)
		m.executionRepo.EXPECT().Create(gomock.Any()).Return(nil)
		m.proposalRepo.EXPECT().
			UpdateStatusIf("PROP008", domain.ProposalStatusApproved, domain.ProposalStatusExecuted).
			Return(repository.ErrStatusConflict)

		_, err := service.Execute(ctx, "PROP008", nil, testClaims())

		assert.ErrorIs(t, err, ErrConcurrencyConflict)
	})
}

func TestService_Rollback(t *testing.T) {
	ctx := context.Background()

	executedProposal := func(id string) *domain.Proposal {
		p := approvedBudgetProposal(id, 100, 110)
		p.Status = domain.ProposalStatusExecuted
		return p
	}

	t.Run("Rollback dentro da janela reverte em ordem inversa ignorando falhas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		execution := &domain.ProposalExecution{
			ID:         "EXEC001",
			ProposalID: "PROP001",
			ExecutedAt: time.Now().UTC().Add(-2 * time.Hour),
			ActualChanges: &domain.ActualChanges{
				Category: domain.CategoryBudget,
				Operations: []domain.AppliedChange{
					{OperationID: "op-1", Kind: domain.OpSetCampaignBudget, Status: domain.AppliedChangeStatusApplied},
					{OperationID: "op-2", Kind: domain.OpSetTargetCPA, Status: domain.AppliedChangeStatusFailed},
					{OperationID: "op-3", Kind: domain.OpSetDeviceBidModifier, Status: domain.AppliedChangeStatusApplied},
				},
			},
		}

		proposal := executedProposal("PROP001")
		m.proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)
		m.executionRepo.EXPECT().LatestByProposalID("PROP001").Return(execution, nil)
		gomock.InOrder(
			m.integrator.EXPECT().RevertChange(ctx, execution.ActualChanges.Operations[2]).
				Return(&domain.AppliedChange{OperationID: "op-3", Status: domain.AppliedChangeStatusApplied}, nil),
			m.integrator.EXPECT().RevertChange(ctx, execution.ActualChanges.Operations[0]).
				Return(&domain.AppliedChange{OperationID: "op-1", Status: domain.AppliedChangeStatusApplied}, nil),
		)
		m.executionRepo.EXPECT().CreateRollback(gomock.Any()).
			DoAndReturn(func(rollback *domain.ProposalRollback) error {
				rollback.ID = "RB001"
				return nil
			})
		m.executionRepo.EXPECT().MarkRolledBack("EXEC001").Return(nil)
		m.proposalRepo.EXPECT().ReopenAfterRollback("PROP001").Return(nil)
		m.notifier.EXPECT().NotifyRollback(ctx, proposal, gomock.Any())

		rollback, err := service.Rollback(ctx, "PROP001", "mudança piorou o CPA", testClaims())

		require.NoError(t, err)
		assert.Equal(t, "RB001", rollback.ID)
		assert.Equal(t, "EXEC001", rollback.ExecutionID)
		assert.Equal(t, "Ana Souza", rollback.RolledBackBy)
		require.Len(t, rollback.Results, 2)
		assert.Equal(t, "op-3", rollback.Results[0].OperationID)
		assert.Equal(t, "op-1", rollback.Results[1].OperationID)
	})

	t.Run("Rollback de proposta agendada limpa o agendamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		// Aprovada com horário no passado: sem limpar o schedule_at, o job
		// de execuções agendadas reaplicaria a mudança recém-revertida
		scheduleAt := time.Now().UTC().Add(-3 * time.Hour)
		proposal := executedProposal("PROP005")
		proposal.ScheduleAt = &scheduleAt

		execution := &domain.ProposalExecution{
			ID:         "EXEC005",
			ProposalID: "PROP005",
			ExecutedAt: time.Now().UTC().Add(-2 * time.Hour),
			ActualChanges: &domain.ActualChanges{
				Category: domain.CategoryBudget,
				Operations: []domain.AppliedChange{
					{OperationID: "op-1", Kind: domain.OpSetCampaignBudget, Status: domain.AppliedChangeStatusApplied},
				},
			},
		}

		m.proposalRepo.EXPECT().GetByID("PROP005").Return(proposal, nil)
		m.executionRepo.EXPECT().LatestByProposalID("PROP005").Return(execution, nil)
		m.integrator.EXPECT().RevertChange(ctx, execution.ActualChanges.Operations[0]).
			Return(&domain.AppliedChange{OperationID: "op-1", Status: domain.AppliedChangeStatusApplied}, nil)
		m.executionRepo.EXPECT().CreateRollback(gomock.Any()).Return(nil)
		m.executionRepo.EXPECT().MarkRolledBack("EXEC005").Return(nil)
		m.proposalRepo.EXPECT().ReopenAfterRollback("PROP005").Return(nil)
		m.notifier.EXPECT().NotifyRollback(ctx, proposal, gomock.Any())

		_, err := service.Rollback(ctx, "PROP005", "efeito indesejado", testClaims())

		require.NoError(t, err)
	})

	t.Run("Rollback sem motivo é recusado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, _ := newTestService(ctrl)

		_, err := service.Rollback(ctx, "PROP006", "", testClaims())

		assert.ErrorIs(t, err, ErrMissingReason)
	})

	t.Run("Janela expirada recusa o rollback sem tocar na plataforma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		execution := &domain.ProposalExecution{
			ID:         "EXEC002",
			ProposalID: "PROP002",
			ExecutedAt: time.Now().UTC().Add(-25 * time.Hour),
		}
		m.proposalRepo.EXPECT().GetByID("PROP002").Return(executedProposal("PROP002"), nil)
		m.executionRepo.EXPECT().LatestByProposalID("PROP002").Return(execution, nil)

		_, err := service.Rollback(ctx, "PROP002", "tarde demais", testClaims())

		var windowErr *WindowExpiredError
		require.ErrorAs(t, err, &windowErr)
		assert.ErrorIs(t, err, ErrRollbackWindowExpired)
		assert.Equal(t, execution.ExecutedAt, windowErr.ExecutedAt)
	})

	t.Run("Execução já revertida não admite segundo rollback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		execution := &domain.ProposalExecution{
			ID:         "EXEC003",
			ProposalID: "PROP003",
			ExecutedAt: time.Now().UTC().Add(-time.Hour),
			RolledBack: true,
		}
		m.proposalRepo.EXPECT().GetByID("PROP003").Return(executedProposal("PROP003"), nil)
		m.executionRepo.EXPECT().LatestByProposalID("PROP003").Return(execution, nil)

		_, err := service.Rollback(ctx, "PROP003", "repetido", testClaims())

		assert.ErrorIs(t, err, ErrAlreadyRolledBack)
	})

	t.Run("Proposta sem execução não tem o que reverter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, m := newTestService(ctrl)

		m.proposalRepo.EXPECT().GetByID("PROP004").
			Return(approvedBudgetProposal("PROP004", 100, 110), nil)

		_, err := service.Rollback(ctx, "PROP004", "nada executado", testClaims())

		assert.ErrorIs(t, err, ErrNotExecuted)
	})
}

func TestService_ListExecutions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	service, m := newTestService(ctrl)

	t.Run("Listagem exige proposta existente", func(t *testing.T) {
		m.proposalRepo.EXPECT().GetByID("PROP404").Return(nil, nil)

		_, err := service.ListExecutions("PROP404")

		assert.ErrorIs(t, err, ErrProposalNotFound)
	})

	t.Run("Listagem devolve o histórico do repositório", func(t *testing.T) {
		m.proposalRepo.EXPECT().GetByID("PROP001").
			Return(approvedBudgetProposal("PROP001", 100, 110), nil)
		m.executionRepo.EXPECT().ListByProposalID("PROP001").
			Return([]*domain.ProposalExecution{{ID: "EXEC002"}, {ID: "EXEC001"}}, nil)

		executions, err := service.ListExecutions("PROP001")

		require.NoError(t, err)
		require.Len(t, executions, 2)
		assert.Equal(t, "EXEC002", executions[0].ID)
	})
}
