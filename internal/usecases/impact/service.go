// Package impact mede o efeito de propostas executadas comparando snapshots
// de KPIs capturados antes da execução e após o período de medição
package impact

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/pkg/utils"
)

var (
	ErrProposalNotFound = errors.New("proposta não encontrada")
	ErrNoTargetCampaign = errors.New("proposta sem campanha alvo para medição")
)

// métricas comparadas no relatório; custo e CPA melhoram quando caem
var lowerIsBetter = map[string]bool{
	"cost": true,
	"cpa":  true,
}

type Measurer interface {
	CaptureBefore(ctx context.Context, proposal *domain.Proposal) error
	CaptureAfter(ctx context.Context, measurement *domain.PendingMeasurement) error
	GetImpact(proposalID string) (*domain.ImpactReport, error)
}

type Service struct {
	proposalRepo repository.ProposalRepository
	snapshotRepo repository.SnapshotRepository
	integrator   adplatform.Integrator
	cfg          *config.Config
}

func NewService(
	proposalRepo repository.ProposalRepository,
	snapshotRepo repository.SnapshotRepository,
	integrator adplatform.Integrator,
	cfg *config.Config,
) Measurer {
	return &Service{
		proposalRepo: proposalRepo,
		snapshotRepo: snapshotRepo,
		integrator:   integrator,
		cfg:          cfg,
	}
}

func (s *Service) measurementDays() int {
	days := s.cfg.AfterSnapshotSync.MeasurementDays
	if days <= 0 {
		days = 7
	}
	return days
}

// CaptureBefore grava o snapshot de KPIs do período imediatamente anterior à
// execução da proposta
func (s *Service) CaptureBefore(ctx context.Context, proposal *domain.Proposal) error {
	if proposal.TargetCampaign == nil || *proposal.TargetCampaign == "" {
		return ErrNoTargetCampaign
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -s.measurementDays())

	kpis, err := s.integrator.GetCampaignKPIs(ctx, *proposal.TargetCampaign, start, end)
	if err != nil {
		return err
	}

	snapshot := &domain.ProposalSnapshot{
		ProposalID:  proposal.ID,
		Type:        domain.SnapshotBefore,
		CampaignID:  proposal.TargetCampaign,
		Metrics:     *kpis,
		PeriodStart: start,
		PeriodEnd:   end,
	}

	if err := s.snapshotRepo.Upsert(snapshot); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"proposal_id": proposal.ID,
		"campaign":    *proposal.TargetCampaign,
	}).Info("impact: before snapshot captured")

	return nil
}

// CaptureAfter grava o snapshot do período de medição decorrido desde a
// execução
func (s *Service) CaptureAfter(ctx context.Context, measurement *domain.PendingMeasurement) error {
	if measurement.TargetCampaign == nil || *measurement.TargetCampaign == "" {
		return ErrNoTargetCampaign
	}

	start := measurement.ExecutedAt
	end := start.AddDate(0, 0, s.measurementDays())
	if now := time.Now().UTC(); end.After(now) {
		end = now
	}

	kpis, err := s.integrator.GetCampaignKPIs(ctx, *measurement.TargetCampaign, start, end)
	if err != nil {
		return err
	}

	snapshot := &domain.ProposalSnapshot{
		ProposalID:  measurement.ProposalID,
		Type:        domain.SnapshotAfter,
		CampaignID:  measurement.TargetCampaign,
		Metrics:     *kpis,
		PeriodStart: start,
		PeriodEnd:   end,
	}

	if err := s.snapshotRepo.Upsert(snapshot); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"proposal_id": measurement.ProposalID,
		"campaign":    *measurement.TargetCampaign,
	}).Info("impact: after snapshot captured")

	return nil
}

// GetImpact monta o relatório before/after da proposta. O status degrada de
// forma explícita: sem snapshot "before" não há medição possível; sem "after"
// a medição segue pendente; snapshots sem tráfego não sustentam comparação.
func (s *Service) GetImpact(proposalID string) (*domain.ImpactReport, error) {
	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}

	before, err := s.snapshotRepo.GetByProposalAndType(proposalID, domain.SnapshotBefore)
	if err != nil {
		return nil, err
	}

	if before == nil {
		return &domain.ImpactReport{
			Status:  domain.ImpactNoBefore,
			Message: "Nenhum snapshot anterior à execução foi capturado",
		}, nil
	}

	after, err := s.snapshotRepo.GetByProposalAndType(proposalID, domain.SnapshotAfter)
	if err != nil {
		return nil, err
	}

	if after == nil {
		return &domain.ImpactReport{
			Status:  domain.ImpactPending,
			Before:  &before.Metrics,
			Message: "Período de medição em andamento",
		}, nil
	}

	report := &domain.ImpactReport{
		Before: &before.Metrics,
		After:  &after.Metrics,
		Period: map[string]string{
			"before_start": before.PeriodStart.Format(time.DateOnly),
			"before_end":   before.PeriodEnd.Format(time.DateOnly),
			"after_start":  after.PeriodStart.Format(time.DateOnly),
			"after_end":    after.PeriodEnd.Format(time.DateOnly),
		},
	}

	if !before.Metrics.HasUsableData() || !after.Metrics.HasUsableData() {
		report.Status = domain.ImpactNoData
		report.Message = "Período sem tráfego suficiente para comparação"
		return report, nil
	}

	report.Status = domain.ImpactAvailable
	report.Change = compareMetrics(&before.Metrics, &after.Metrics)

	return report, nil
}

func compareMetrics(before, after *domain.KPIMetrics) map[string]*domain.MetricChange {
	change := map[string]*domain.MetricChange{
		"cost":             metricChange("cost", before.Cost, after.Cost),
		"conversions":      metricChange("conversions", before.Conversions, after.Conversions),
		"cpa":              metricChange("cpa", before.CPA, after.CPA),
		"ctr":              metricChange("ctr", before.CTR, after.CTR),
		"roas":             metricChange("roas", before.ROAS, after.ROAS),
		"impressions":      metricChange("impressions", countMetric(before.Impressions), countMetric(after.Impressions)),
		"clicks":           metricChange("clicks", countMetric(before.Clicks), countMetric(after.Clicks)),
		"conversion_value": metricChange("conversion_value", before.ConversionValue, after.ConversionValue),
	}

	for name, c := range change {
		if c == nil {
			delete(change, name)
		}
	}

	return change
}

func countMetric(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// metricChange calcula a variação percentual. Baseline zero deixa Pct nil
// (variação indefinida), mas a métrica continua presente no relatório.
func metricChange(name string, before, after *float64) *domain.MetricChange {
	if before == nil || after == nil {
		return nil
	}

	if *before == 0 {
		return &domain.MetricChange{}
	}

	pct := utils.RoundWithTwoDecimalPlace((*after - *before) / *before * 100)

	improvement := pct > 0
	if lowerIsBetter[name] {
		improvement = pct < 0
	}

	return &domain.MetricChange{
		Pct:         &pct,
		Improvement: &improvement,
	}
}
