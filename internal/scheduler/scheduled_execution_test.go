package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/executing"
	executingmocks "github.com/vfg2006/campaign-advisor-api/internal/usecases/executing/mocks"
	"go.uber.org/mock/gomock"
)

func timePtr(v time.Time) *time.Time {
	return &v
}

func stringPtr(s string) *string {
	return &s
}

func TestScheduledExecutionService_dispatchDueExecutions(t *testing.T) {
	ctx := context.Background()

	newService := func(ctrl *gomock.Controller) (*ScheduledExecutionService, *mocks.MockProposalRepository, *executingmocks.MockExecutor) {
		proposalRepo := mocks.NewMockProposalRepository(ctrl)
		executor := executingmocks.NewMockExecutor(ctrl)
		service := &ScheduledExecutionService{
			proposalRepo: proposalRepo,
			executor:     executor,
		}
		return service, proposalRepo, executor
	}

	t.Run("Despacho vencido roda com identidade de sistema e sem nota de atraso", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, proposalRepo, executor := newService(ctrl)

		due := []*domain.Proposal{
			{
				ID:         "PROP001",
				Status:     domain.ProposalStatusApproved,
				ScheduleAt: timePtr(time.Now().UTC().Add(-2 * time.Minute)),
			},
		}
		proposalRepo.EXPECT().ListDueScheduled(gomock.Any()).Return(due, nil)
		executor.EXPECT().Execute(ctx, "PROP001", gomock.Any(), nil).
			DoAndReturn(func(_ context.Context, _ string, req *executing.ExecutionRequest, _ *domain.Claims) (*domain.ProposalExecution, error) {
				assert.Empty(t, req.DelayNote)
				assert.NotEmpty(t, req.Notes)
				return &domain.ProposalExecution{ID: "EXEC001"}, nil
			})

		service.dispatchDueExecutions(ctx)
	})

	t.Run("Despacho muito atrasado anexa nota de atraso ao registro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, proposalRepo, executor := newService(ctrl)

		due := []*domain.Proposal{
			{
				ID:         "PROP002",
				Status:     domain.ProposalStatusApproved,
				ScheduleAt: timePtr(time.Now().UTC().Add(-30 * time.Minute)),
			},
		}
		proposalRepo.EXPECT().ListDueScheduled(gomock.Any()).Return(due, nil)
		executor.EXPECT().Execute(ctx, "PROP002", gomock.Any(), nil).
			DoAndReturn(func(_ context.Context, _ string, req *executing.ExecutionRequest, _ *domain.Claims) (*domain.ProposalExecution, error) {
				assert.Contains(t, req.DelayNote, "atraso")
				return &domain.ProposalExecution{ID: "EXEC002"}, nil
			})

		service.dispatchDueExecutions(ctx)
	})

	t.Run("Falha em uma proposta não interrompe as demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, proposalRepo, executor := newService(ctrl)

		due := []*domain.Proposal{
			{ID: "PROP003", Status: domain.ProposalStatusApproved, ScheduleAt: timePtr(time.Now().UTC())},
			{ID: "PROP004", Status: domain.ProposalStatusApproved, ScheduleAt: timePtr(time.Now().UTC())},
		}
		proposalRepo.EXPECT().ListDueScheduled(gomock.Any()).Return(due, nil)
		executor.EXPECT().Execute(ctx, "PROP003", gomock.Any(), nil).
			Return(nil, executing.ErrExternalAPIFailure)
		executor.EXPECT().Execute(ctx, "PROP004", gomock.Any(), nil).
			Return(&domain.ProposalExecution{ID: "EXEC004"}, nil)

		service.dispatchDueExecutions(ctx)
	})

	t.Run("Erro na listagem encerra a rodada sem despachar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, proposalRepo, _ := newService(ctrl)

		proposalRepo.EXPECT().ListDueScheduled(gomock.Any()).Return(nil, assert.AnError)

		service.dispatchDueExecutions(ctx)
	})
}
