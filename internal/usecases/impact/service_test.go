package impact

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adMocks "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform/mocks"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func stringPtr(s string) *string {
	return &s
}

func testConfig() *config.Config {
	return &config.Config{
		AfterSnapshotSync: config.AfterSnapshotSync{MeasurementDays: 7},
	}
}

func usableMetrics(cost, conversions, cpa float64) domain.KPIMetrics {
	return domain.KPIMetrics{
		Cost:        float64Ptr(cost),
		Conversions: float64Ptr(conversions),
		CPA:         float64Ptr(cpa),
		Impressions: int64Ptr(1000),
		Clicks:      int64Ptr(50),
	}
}

func TestService_GetImpact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
	integrator := adMocks.NewMockIntegrator(ctrl)
	service := NewService(proposalRepo, snapshotRepo, integrator, testConfig())

	proposal := &domain.Proposal{ID: "PROP001", Category: domain.CategoryBudget, Status: domain.ProposalStatusExecuted}

	t.Run("Sem snapshot before o relatório informa a ausência de medição", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotBefore).Return(nil, nil)

		report, err := service.GetImpact("PROP001")

		require.NoError(t, err)
		assert.Equal(t, domain.ImpactNoBefore, report.Status)
		assert.Nil(t, report.Before)
	})

	t.Run("Sem snapshot after a medição segue pendente", func(t *testing.T) {
		before := &domain.ProposalSnapshot{
			ProposalID: "PROP001",
			Type:       domain.SnapshotBefore,
			Metrics:    usableMetrics(1000, 40, 25),
		}
		proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotBefore).Return(before, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotAfter).Return(nil, nil)

		report, err := service.GetImpact("PROP001")

		require.NoError(t, err)
		assert.Equal(t, domain.ImpactPending, report.Status)
		require.NotNil(t, report.Before)
		assert.Equal(t, 1000.0, *report.Before.Cost)
	})

	t.Run("Período sem tráfego não sustenta comparação", func(t *testing.T) {
		before := &domain.ProposalSnapshot{Metrics: usableMetrics(1000, 40, 25)}
		after := &domain.ProposalSnapshot{Metrics: domain.KPIMetrics{
			Cost:        float64Ptr(0),
			Impressions: int64Ptr(0),
		}}
		proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotBefore).Return(before, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotAfter).Return(after, nil)

		report, err := service.GetImpact("PROP001")

		require.NoError(t, err)
		assert.Equal(t, domain.ImpactNoData, report.Status)
		assert.Nil(t, report.Change)
	})

	t.Run("Comparação completa calcula variações e direção de melhora", func(t *testing.T) {
		before := &domain.ProposalSnapshot{
			Metrics:     usableMetrics(1000, 40, 25),
			PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC),
		}
		after := &domain.ProposalSnapshot{
			Metrics:     usableMetrics(1000, 60, 20),
			PeriodStart: time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		}
		proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotBefore).Return(before, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotAfter).Return(after, nil)

		report, err := service.GetImpact("PROP001")

		require.NoError(t, err)
		assert.Equal(t, domain.ImpactAvailable, report.Status)
		assert.Equal(t, "2026-08-01", report.Period["before_start"])

		// CPA caiu 20%: melhora, porque CPA melhora quando cai
		cpa := report.Change["cpa"]
		require.NotNil(t, cpa)
		assert.Equal(t, -20.0, *cpa.Pct)
		assert.True(t, *cpa.Improvement)

		// Conversões subiram 50%: melhora na direção usual
		conversions := report.Change["conversions"]
		require.NotNil(t, conversions)
		assert.Equal(t, 50.0, *conversions.Pct)
		assert.True(t, *conversions.Improvement)

		// Custo estável: variação zero não é melhora
		cost := report.Change["cost"]
		require.NotNil(t, cost)
		assert.Equal(t, 0.0, *cost.Pct)
		assert.False(t, *cost.Improvement)

		// Impressões e cliques estáveis entram no relatório com variação zero
		impressions := report.Change["impressions"]
		require.NotNil(t, impressions)
		assert.Equal(t, 0.0, *impressions.Pct)
		assert.False(t, *impressions.Improvement)
		require.Contains(t, report.Change, "clicks")

		// CTR, ROAS e valor de conversão ausentes nos snapshots ficam fora
		assert.NotContains(t, report.Change, "ctr")
		assert.NotContains(t, report.Change, "roas")
		assert.NotContains(t, report.Change, "conversion_value")
	})

	t.Run("Snapshots completos produzem as oito métricas do relatório", func(t *testing.T) {
		fullMetrics := func(scale float64) domain.KPIMetrics {
			return domain.KPIMetrics{
				Cost:            float64Ptr(1000 * scale),
				Conversions:     float64Ptr(40 * scale),
				CPA:             float64Ptr(25 / scale),
				CTR:             float64Ptr(2.0 * scale),
				ROAS:            float64Ptr(3.0 * scale),
				Impressions:     int64Ptr(int64(10000 * scale)),
				Clicks:          int64Ptr(int64(200 * scale)),
				ConversionValue: float64Ptr(3000 * scale),
			}
		}
		proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotBefore).
			Return(&domain.ProposalSnapshot{Metrics: fullMetrics(1)}, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotAfter).
			Return(&domain.ProposalSnapshot{Metrics: fullMetrics(2)}, nil)

		report, err := service.GetImpact("PROP001")

		require.NoError(t, err)
		assert.Equal(t, domain.ImpactAvailable, report.Status)
		require.Len(t, report.Change, 8)
		for _, name := range []string{"cost", "conversions", "cpa", "ctr", "roas", "impressions", "clicks", "conversion_value"} {
			assert.Contains(t, report.Change, name)
		}

		// Cliques dobraram: melhora na direção usual
		clicks := report.Change["clicks"]
		assert.Equal(t, 100.0, *clicks.Pct)
		assert.True(t, *clicks.Improvement)

		// Custo dobrou: piora, porque custo melhora quando cai
		cost := report.Change["cost"]
		assert.Equal(t, 100.0, *cost.Pct)
		assert.False(t, *cost.Improvement)
	})

	t.Run("Baseline zero mantém a métrica com variação indefinida", func(t *testing.T) {
		beforeMetrics := usableMetrics(1000, 0, 25)
		afterMetrics := usableMetrics(1000, 10, 20)
		proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotBefore).
			Return(&domain.ProposalSnapshot{Metrics: beforeMetrics}, nil)
		snapshotRepo.EXPECT().GetByProposalAndType("PROP001", domain.SnapshotAfter).
			Return(&domain.ProposalSnapshot{Metrics: afterMetrics}, nil)

		report, err := service.GetImpact("PROP001")

		require.NoError(t, err)
		conversions := report.Change["conversions"]
		require.NotNil(t, conversions)
		assert.Nil(t, conversions.Pct)
		assert.Nil(t, conversions.Improvement)
	})

	t.Run("Proposta inexistente", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP404").Return(nil, nil)

		_, err := service.GetImpact("PROP404")

		assert.ErrorIs(t, err, ErrProposalNotFound)
	})
}

func TestService_CaptureBefore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
	integrator := adMocks.NewMockIntegrator(ctrl)
	service := NewService(proposalRepo, snapshotRepo, integrator, testConfig())

	ctx := context.Background()

	t.Run("Captura grava o snapshot do período anterior à execução", func(t *testing.T) {
		kpis := usableMetrics(1000, 40, 25)
		integrator.EXPECT().GetCampaignKPIs(ctx, "Campanha Black Friday", gomock.Any(), gomock.Any()).
			Return(&kpis, nil)
		snapshotRepo.EXPECT().Upsert(gomock.Any()).
			DoAndReturn(func(snapshot *domain.ProposalSnapshot) error {
				assert.Equal(t, "PROP001", snapshot.ProposalID)
				assert.Equal(t, domain.SnapshotBefore, snapshot.Type)
				assert.Equal(t, 7, int(snapshot.PeriodEnd.Sub(snapshot.PeriodStart).Hours()/24))
				return nil
			})

		proposal := &domain.Proposal{ID: "PROP001", TargetCampaign: stringPtr("Campanha Black Friday")}

		err := service.CaptureBefore(ctx, proposal)

		require.NoError(t, err)
	})

	t.Run("Proposta sem campanha alvo não tem o que medir", func(t *testing.T) {
		err := service.CaptureBefore(ctx, &domain.Proposal{ID: "PROP002"})

		assert.ErrorIs(t, err, ErrNoTargetCampaign)
	})
}

func TestService_CaptureAfter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
	integrator := adMocks.NewMockIntegrator(ctrl)
	service := NewService(proposalRepo, snapshotRepo, integrator, testConfig())

	ctx := context.Background()

	t.Run("Captura grava o snapshot do período decorrido desde a execução", func(t *testing.T) {
		executedAt := time.Now().UTC().Add(-8 * 24 * time.Hour)
		kpis := usableMetrics(900, 50, 18)
		integrator.EXPECT().GetCampaignKPIs(ctx, "Campanha Black Friday", executedAt, executedAt.AddDate(0, 0, 7)).
			Return(&kpis, nil)
		snapshotRepo.EXPECT().Upsert(gomock.Any()).
			DoAndReturn(func(snapshot *domain.ProposalSnapshot) error {
				assert.Equal(t, domain.SnapshotAfter, snapshot.Type)
				assert.Equal(t, executedAt, snapshot.PeriodStart)
				return nil
			})

		measurement := &domain.PendingMeasurement{
			ProposalID:     "PROP001",
			ExecutionID:    "EXEC001",
			ExecutedAt:     executedAt,
			TargetCampaign: stringPtr("Campanha Black Friday"),
		}

		err := service.CaptureAfter(ctx, measurement)

		require.NoError(t, err)
	})

	t.Run("Medição sem campanha alvo é recusada", func(t *testing.T) {
		err := service.CaptureAfter(ctx, &domain.PendingMeasurement{ProposalID: "PROP002"})

		assert.ErrorIs(t, err, ErrNoTargetCampaign)
	})
}
