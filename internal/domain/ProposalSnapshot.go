package domain

import "time"

// SnapshotType identifica o momento da captura de KPIs
type SnapshotType string

const (
	SnapshotBefore SnapshotType = "before"
	SnapshotAfter  SnapshotType = "after"
)

// KPIMetrics é o conjunto de métricas capturado em um snapshot. Ponteiros
// porque a plataforma pode não retornar todas as métricas para o período.
type KPIMetrics struct {
	Cost            *float64 `json:"cost"`
	Conversions     *float64 `json:"conversions"`
	CPA             *float64 `json:"cpa"`
	CTR             *float64 `json:"ctr"`
	ROAS            *float64 `json:"roas"`
	Impressions     *int64   `json:"impressions"`
	Clicks          *int64   `json:"clicks"`
	ConversionValue *float64 `json:"conversion_value"`
}

// HasUsableData indica se o snapshot carrega métricas aproveitáveis para
// comparação. Período sem tráfego (impressões e custo zerados ou ausentes)
// não produz comparação significativa.
func (m *KPIMetrics) HasUsableData() bool {
	if m == nil {
		return false
	}
	hasImpressions := m.Impressions != nil && *m.Impressions > 0
	hasCost := m.Cost != nil && *m.Cost > 0
	return hasImpressions || hasCost
}

// ProposalSnapshot é um snapshot de KPIs vinculado a uma proposta, capturado
// antes da execução e novamente após o período de medição
type ProposalSnapshot struct {
	ID          string       `json:"id"`
	ProposalID  string       `json:"proposal_id"`
	Type        SnapshotType `json:"snapshot_type"`
	CampaignID  *string      `json:"campaign_id,omitempty"`
	Metrics     KPIMetrics   `json:"metrics"`
	PeriodStart time.Time    `json:"period_start"`
	PeriodEnd   time.Time    `json:"period_end"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ImpactStatus é o estado do relatório de impacto de uma proposta
type ImpactStatus string

const (
	ImpactNoBefore  ImpactStatus = "no_before"
	ImpactPending   ImpactStatus = "pending"
	ImpactNoData    ImpactStatus = "no_data"
	ImpactAvailable ImpactStatus = "available"
)

// MetricChange é a variação percentual de uma métrica entre before e after.
// Pct é nil quando o valor before é zero (divisão indefinida).
type MetricChange struct {
	Pct         *float64 `json:"pct"`
	Improvement *bool    `json:"improvement,omitempty"`
}

// ImpactReport é a resposta de medição de efeito de uma proposta executada
type ImpactReport struct {
	Status  ImpactStatus             `json:"status"`
	Before  *KPIMetrics              `json:"before,omitempty"`
	After   *KPIMetrics              `json:"after,omitempty"`
	Change  map[string]*MetricChange `json:"change,omitempty"`
	Period  map[string]string        `json:"period,omitempty"`
	Message string                   `json:"message,omitempty"`
}
