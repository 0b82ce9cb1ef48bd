package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	admocks "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform/mocks"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/proposing"
	proposingmocks "github.com/vfg2006/campaign-advisor-api/internal/usecases/proposing/mocks"
	"go.uber.org/mock/gomock"
)

func TestCampaignCleanupService_runCleanup(t *testing.T) {
	ctx := context.Background()

	newService := func(ctrl *gomock.Controller) (*CampaignCleanupService, *mocks.MockCampaignRepository, *admocks.MockIntegrator, *proposingmocks.MockProposer) {
		campaignRepo := mocks.NewMockCampaignRepository(ctrl)
		integrator := admocks.NewMockIntegrator(ctrl)
		proposer := proposingmocks.NewMockProposer(ctrl)
		service := &CampaignCleanupService{
			campaignRepo: campaignRepo,
			integrator:   integrator,
			proposer:     proposer,
		}
		return service, campaignRepo, integrator, proposer
	}

	t.Run("Rodada sincroniza o espelho antes de descartar propostas órfãs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, campaignRepo, integrator, proposer := newService(ctrl)

		campaigns := []*domain.Campaign{
			{ExternalID: "C001", Name: "Campanha Ativa", Status: domain.CampaignStatusActive},
		}
		gomock.InOrder(
			integrator.EXPECT().ListCampaigns(ctx).Return(campaigns, nil),
			campaignRepo.EXPECT().UpsertBatch(campaigns).Return(nil),
			proposer.EXPECT().CleanupInactiveCampaigns(false).
				Return(&proposing.CleanupResult{Evaluated: 5, Skipped: 2}, nil),
		)

		service.runCleanup(ctx)

		assert.Equal(t, 2, service.lastSkippedCount)
	})

	t.Run("Falha na sincronização aborta a rodada sem limpar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, _, integrator, _ := newService(ctrl)

		integrator.EXPECT().ListCampaigns(ctx).Return(nil, assert.AnError)

		service.runCleanup(ctx)

		assert.Equal(t, 0, service.lastSkippedCount)
	})

	t.Run("Falha ao gravar o espelho aborta antes da limpeza", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, campaignRepo, integrator, _ := newService(ctrl)

		integrator.EXPECT().ListCampaigns(ctx).Return([]*domain.Campaign{}, nil)
		campaignRepo.EXPECT().UpsertBatch(gomock.Any()).Return(assert.AnError)

		service.runCleanup(ctx)
	})
}
