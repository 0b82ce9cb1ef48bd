package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	impactmocks "github.com/vfg2006/campaign-advisor-api/internal/usecases/impact/mocks"
	"go.uber.org/mock/gomock"
)

func TestAfterSnapshotSyncService_captureDueSnapshots(t *testing.T) {
	ctx := context.Background()

	newService := func(ctrl *gomock.Controller, measurementDays int) (*AfterSnapshotSyncService, *mocks.MockExecutionRepository, *impactmocks.MockMeasurer) {
		executionRepo := mocks.NewMockExecutionRepository(ctrl)
		measurer := impactmocks.NewMockMeasurer(ctrl)
		service := &AfterSnapshotSyncService{
			config:        AfterSnapshotSyncConfig{MeasurementDays: measurementDays},
			executionRepo: executionRepo,
			measurer:      measurer,
		}
		return service, executionRepo, measurer
	}

	t.Run("Captura todas as medições pendentes com período decorrido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, executionRepo, measurer := newService(ctrl, 7)

		pending := []*domain.PendingMeasurement{
			{
				ProposalID:     "PROP001",
				ExecutionID:    "EXEC001",
				ExecutedAt:     time.Now().UTC().AddDate(0, 0, -8),
				TargetCampaign: stringPtr("Campanha A"),
			},
			{
				ProposalID:     "PROP002",
				ExecutionID:    "EXEC002",
				ExecutedAt:     time.Now().UTC().AddDate(0, 0, -10),
				TargetCampaign: stringPtr("Campanha B"),
			},
		}

		executionRepo.EXPECT().ListNeedingAfterSnapshot(gomock.Any()).
			DoAndReturn(func(cutoff time.Time) ([]*domain.PendingMeasurement, error) {
				// Corte de 7 dias atrás, com tolerância para o relógio do teste
				expected := time.Now().UTC().AddDate(0, 0, -7)
				assert.WithinDuration(t, expected, cutoff, time.Minute)
				return pending, nil
			})
		measurer.EXPECT().CaptureAfter(ctx, pending[0]).Return(nil)
		measurer.EXPECT().CaptureAfter(ctx, pending[1]).Return(nil)

		service.captureDueSnapshots(ctx)
	})

	t.Run("Falha em uma medição não interrompe as demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, executionRepo, measurer := newService(ctrl, 7)

		pending := []*domain.PendingMeasurement{
			{ProposalID: "PROP001", ExecutionID: "EXEC001"},
			{ProposalID: "PROP002", ExecutionID: "EXEC002"},
		}
		executionRepo.EXPECT().ListNeedingAfterSnapshot(gomock.Any()).Return(pending, nil)
		measurer.EXPECT().CaptureAfter(ctx, pending[0]).Return(assert.AnError)
		measurer.EXPECT().CaptureAfter(ctx, pending[1]).Return(nil)

		service.captureDueSnapshots(ctx)
	})

	t.Run("Sem pendências a rodada termina sem medir", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		service, executionRepo, _ := newService(ctrl, 7)

		executionRepo.EXPECT().ListNeedingAfterSnapshot(gomock.Any()).Return(nil, nil)

		service.captureDueSnapshots(ctx)
	})
}
