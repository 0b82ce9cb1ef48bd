// Package adplatform integra com a API externa da plataforma de anúncios,
// aplicando e revertendo operações de mudança e consultando campanhas e KPIs
package adplatform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform/adclient"
	addomain "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

// Integrator é a fachada consumida pelos usecases de execução, rollback,
// sincronização de campanhas e medição de impacto
type Integrator interface {
	ApplyOperation(ctx context.Context, op domain.ChangeOperation) (*domain.AppliedChange, error)
	RevertChange(ctx context.Context, change domain.AppliedChange) (*domain.AppliedChange, error)
	ListCampaigns(ctx context.Context) ([]*domain.Campaign, error)
	GetCampaignKPIs(ctx context.Context, campaignName string, startDate, endDate time.Time) (*domain.KPIMetrics, error)
}

type AdPlatformIntegrator struct {
	cfg    *config.Config
	Client adclient.Client
}

func New(cfg *config.Config, client adclient.Client) *AdPlatformIntegrator {
	return &AdPlatformIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// ApplyOperation envia uma operação à plataforma e registra o resultado. O
// valor anterior retornado pela plataforma é preservado para o rollback.
func (s *AdPlatformIntegrator) ApplyOperation(ctx context.Context, op domain.ChangeOperation) (*domain.AppliedChange, error) {
	applied := &domain.AppliedChange{
		OperationID: uuid.NewString(),
		Kind:        op.Kind,
		CampaignID:  op.CampaignID,
		AdGroupID:   op.AdGroupID,
		AdID:        op.AdID,
		DeviceType:  op.DeviceType,
	}

	result, err := s.dispatch(ctx, op)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"kind":        op.Kind,
			"campaign_id": op.CampaignID,
			"error":       err.Error(),
		}).Error("adplatform: operation failed")

		applied.Status = domain.AppliedChangeStatusFailed
		applied.Error = err.Error()
		return applied, err
	}

	applied.Status = domain.AppliedChangeStatusApplied
	applied.ResourceNames = result.ResourceNames
	applied.PreviousValue = result.PreviousValue
	applied.AppliedValue = result.AppliedValue
	if applied.PreviousValue == nil {
		applied.PreviousValue = op.OldValue
	}
	if applied.AppliedValue == nil {
		applied.AppliedValue = op.NewValue
	}

	logrus.WithFields(logrus.Fields{
		"kind":        op.Kind,
		"campaign_id": op.CampaignID,
		"ad_group_id": op.AdGroupID,
	}).Info("adplatform: operation applied")

	return applied, nil
}

func (s *AdPlatformIntegrator) dispatch(ctx context.Context, op domain.ChangeOperation) (*addomain.MutationResult, error) {
	switch op.Kind {
	case domain.OpSetCampaignBudget:
		if op.NewValue == nil {
			return nil, fmt.Errorf("operação %s sem valor novo", op.Kind)
		}
		return s.Client.MutateCampaignBudget(ctx, op.CampaignID, *op.NewValue)

	case domain.OpSetTargetCPA:
		if op.NewValue == nil {
			return nil, fmt.Errorf("operação %s sem valor novo", op.Kind)
		}
		return s.Client.MutateTargetCPA(ctx, op.CampaignID, *op.NewValue)

	case domain.OpSetTargetROAS:
		if op.NewValue == nil {
			return nil, fmt.Errorf("operação %s sem valor novo", op.Kind)
		}
		return s.Client.MutateTargetROAS(ctx, op.CampaignID, *op.NewValue)

	case domain.OpSetDeviceBidModifier:
		if op.NewValue == nil {
			return nil, fmt.Errorf("operação %s sem valor novo", op.Kind)
		}
		return s.Client.MutateDeviceBidModifier(ctx, op.CampaignID, op.DeviceType, *op.NewValue)

	case domain.OpAddNegativeKeywords:
		return s.Client.AddNegativeKeywords(ctx, op.CampaignID, op.Keywords, op.MatchType)

	case domain.OpAddKeywords:
		return s.Client.AddKeywords(ctx, op.AdGroupID, op.Keywords, op.MatchType)

	case domain.OpCreateResponsiveSearchAd:
		return s.Client.CreateResponsiveSearchAd(ctx, op.AdGroupID, op.Headlines, op.Descriptions, op.FinalURL)

	case domain.OpPauseAd:
		return s.Client.SetAdStatus(ctx, op.AdGroupID, op.AdID, "PAUSED")

	case domain.OpEnableAd:
		return s.Client.SetAdStatus(ctx, op.AdGroupID, op.AdID, "ENABLED")
	}

	return nil, fmt.Errorf("operação desconhecida: %s", op.Kind)
}

// RevertChange desfaz uma mudança aplicada: operações "set" restauram o valor
// anterior registrado, operações aditivas removem os recursos criados e
// pause/enable aplicam o status oposto
func (s *AdPlatformIntegrator) RevertChange(ctx context.Context, change domain.AppliedChange) (*domain.AppliedChange, error) {
	reverted := &domain.AppliedChange{
		OperationID: change.OperationID,
		Kind:        change.Kind,
		CampaignID:  change.CampaignID,
		AdGroupID:   change.AdGroupID,
		AdID:        change.AdID,
		DeviceType:  change.DeviceType,
	}

	result, err := s.dispatchRevert(ctx, change)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"kind":         change.Kind,
			"operation_id": change.OperationID,
			"error":        err.Error(),
		}).Error("adplatform: revert failed")

		reverted.Status = domain.AppliedChangeStatusFailed
		reverted.Error = err.Error()
		return reverted, err
	}

	reverted.Status = domain.AppliedChangeStatusApplied
	if result != nil {
		reverted.ResourceNames = result.ResourceNames
		reverted.PreviousValue = change.AppliedValue
		reverted.AppliedValue = change.PreviousValue
	}

	return reverted, nil
}

func (s *AdPlatformIntegrator) dispatchRevert(ctx context.Context, change domain.AppliedChange) (*addomain.MutationResult, error) {
	switch change.Kind {
	case domain.OpSetCampaignBudget:
		if change.PreviousValue == nil {
			return nil, fmt.Errorf("mudança %s sem valor anterior registrado", change.Kind)
		}
		return s.Client.MutateCampaignBudget(ctx, change.CampaignID, *change.PreviousValue)

	case domain.OpSetTargetCPA:
		if change.PreviousValue == nil {
			return nil, fmt.Errorf("mudança %s sem valor anterior registrado", change.Kind)
		}
		return s.Client.MutateTargetCPA(ctx, change.CampaignID, *change.PreviousValue)

	case domain.OpSetTargetROAS:
		if change.PreviousValue == nil {
			return nil, fmt.Errorf("mudança %s sem valor anterior registrado", change.Kind)
		}
		return s.Client.MutateTargetROAS(ctx, change.CampaignID, *change.PreviousValue)

	case domain.OpSetDeviceBidModifier:
		if change.PreviousValue == nil {
			return nil, fmt.Errorf("mudança %s sem valor anterior registrado", change.Kind)
		}
		return s.Client.MutateDeviceBidModifier(ctx, change.CampaignID, change.DeviceType, *change.PreviousValue)

	case domain.OpAddNegativeKeywords, domain.OpAddKeywords, domain.OpCreateResponsiveSearchAd:
		if len(change.ResourceNames) == 0 {
			return nil, fmt.Errorf("mudança %s sem resource names registrados", change.Kind)
		}
		return s.Client.RemoveResources(ctx, change.ResourceNames)

	case domain.OpPauseAd:
		return s.Client.SetAdStatus(ctx, change.AdGroupID, change.AdID, "ENABLED")

	case domain.OpEnableAd:
		return s.Client.SetAdStatus(ctx, change.AdGroupID, change.AdID, "PAUSED")
	}

	return nil, fmt.Errorf("operação desconhecida: %s", change.Kind)
}

func (s *AdPlatformIntegrator) ListCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	platformCampaigns, err := s.Client.ListCampaigns(ctx)
	if err != nil {
		logrus.WithError(err).Error("adplatform: failed to list campaigns")
		return nil, err
	}

	now := time.Now().UTC()
	campaigns := make([]*domain.Campaign, 0, len(platformCampaigns))
	for _, pc := range platformCampaigns {
		campaigns = append(campaigns, &domain.Campaign{
			ExternalID: pc.ID,
			Name:       pc.Name,
			Status:     factoryCampaignStatus(pc.Status),
			SyncedAt:   now,
		})
	}

	logrus.WithField("total_campaigns", len(campaigns)).Info("adplatform: campaigns retrieved")

	return campaigns, nil
}

// GetCampaignKPIs consulta as métricas brutas do período e deriva CPA, CTR e
// ROAS. Métricas derivadas ficam nil quando o denominador é zero.
func (s *AdPlatformIntegrator) GetCampaignKPIs(ctx context.Context, campaignName string, startDate, endDate time.Time) (*domain.KPIMetrics, error) {
	raw, err := s.Client.GetCampaignMetrics(ctx, campaignName, startDate, endDate)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_name": campaignName,
			"error":         err.Error(),
		}).Error("adplatform: failed to get campaign metrics")
		return nil, err
	}

	return factoryKPIMetrics(raw), nil
}

func factoryCampaignStatus(status string) domain.CampaignStatus {
	switch strings.ToUpper(status) {
	case "ENABLED", "ACTIVE":
		return domain.CampaignStatusActive
	case "PAUSED":
		return domain.CampaignStatusPaused
	}
	return domain.CampaignStatusRemoved
}

func factoryKPIMetrics(raw *addomain.CampaignMetrics) *domain.KPIMetrics {
	metrics := &domain.KPIMetrics{
		Cost:            raw.Cost,
		Conversions:     raw.Conversions,
		ConversionValue: raw.ConversionValue,
		Impressions:     raw.Impressions,
		Clicks:          raw.Clicks,
	}

	if raw.Cost != nil && raw.Conversions != nil && *raw.Conversions > 0 {
		cpa := *raw.Cost / *raw.Conversions
		metrics.CPA = &cpa
	}

	if raw.Clicks != nil && raw.Impressions != nil && *raw.Impressions > 0 {
		ctr := float64(*raw.Clicks) / float64(*raw.Impressions) * 100
		metrics.CTR = &ctr
	}

	if raw.ConversionValue != nil && raw.Cost != nil && *raw.Cost > 0 {
		roas := *raw.ConversionValue / *raw.Cost
		metrics.ROAS = &roas
	}

	return metrics
}
