package domain

// MutationResult é a resposta da plataforma de anúncios para uma mutação.
// PreviousValue carrega o valor vigente antes da alteração quando a operação
// é um "set" absoluto (necessário para o rollback).
type MutationResult struct {
	ResourceNames []string `json:"resource_names"`
	PreviousValue *float64 `json:"previous_value,omitempty"`
	AppliedValue  *float64 `json:"applied_value,omitempty"`
}

// Campaign é a campanha conforme retornada pela plataforma
type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// CampaignMetrics são as métricas agregadas de uma campanha em um período
type CampaignMetrics struct {
	Cost            *float64 `json:"cost"`
	Conversions     *float64 `json:"conversions"`
	ConversionValue *float64 `json:"conversion_value"`
	Impressions     *int64   `json:"impressions"`
	Clicks          *int64   `json:"clicks"`
}
