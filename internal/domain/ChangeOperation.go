package domain

import "time"

// OperationKind identifica o tipo de mutação enviada à plataforma de anúncios.
// Todas as operações são "set para valor absoluto" (nunca delta relativo),
// para que o rollback possa restaurar o valor anterior registrado.
type OperationKind string

const (
	OpSetCampaignBudget        OperationKind = "set_campaign_budget"
	OpSetTargetCPA             OperationKind = "set_target_cpa"
	OpSetTargetROAS            OperationKind = "set_target_roas"
	OpSetDeviceBidModifier     OperationKind = "set_device_bid_modifier"
	OpAddNegativeKeywords      OperationKind = "add_negative_keywords"
	OpAddKeywords              OperationKind = "add_keywords"
	OpCreateResponsiveSearchAd OperationKind = "create_responsive_search_ad"
	OpPauseAd                  OperationKind = "pause_ad"
	OpEnableAd                 OperationKind = "enable_ad"
)

// ChangeOperation é uma operação discreta derivada dos action_steps de uma
// proposta (uma por entidade+campo endereçável na plataforma). É a unidade
// contada pelos safeguards.
type ChangeOperation struct {
	Kind         OperationKind `json:"kind"`
	CampaignID   string        `json:"campaign_id,omitempty"`
	AdGroupID    string        `json:"ad_group_id,omitempty"`
	AdID         string        `json:"ad_id,omitempty"`
	Description  string        `json:"description,omitempty"`
	OldValue     *float64      `json:"old_value,omitempty"`
	NewValue     *float64      `json:"new_value,omitempty"`
	DeviceType   string        `json:"device_type,omitempty"`
	Keywords     []string      `json:"keywords,omitempty"`
	MatchType    string        `json:"match_type,omitempty"`
	Headlines    []string      `json:"headlines,omitempty"`
	Descriptions []string      `json:"descriptions,omitempty"`
	FinalURL     string        `json:"final_url,omitempty"`
}

// IsBudgetChange indica se a operação altera um valor de orçamento e portanto
// está sujeita ao limite percentual dos safeguards
func (op ChangeOperation) IsBudgetChange() bool {
	return op.Kind == OpSetCampaignBudget
}

// AppliedChange registra o resultado real de uma operação aplicada (ou que
// falhou) na plataforma de anúncios. PreviousValue guarda o valor absoluto
// anterior, requisito para o rollback ser bem definido.
type AppliedChange struct {
	OperationID   string        `json:"operation_id"`
	Kind          OperationKind `json:"kind"`
	CampaignID    string        `json:"campaign_id,omitempty"`
	AdGroupID     string        `json:"ad_group_id,omitempty"`
	AdID          string        `json:"ad_id,omitempty"`
	DeviceType    string        `json:"device_type,omitempty"`
	PreviousValue *float64      `json:"previous_value,omitempty"`
	AppliedValue  *float64      `json:"applied_value,omitempty"`
	ResourceNames []string      `json:"resource_names,omitempty"`
	Status        string        `json:"status"`
	Error         string        `json:"error,omitempty"`
}

const (
	AppliedChangeStatusApplied = "applied"
	AppliedChangeStatusFailed  = "failed"
)

// ActualChanges é o payload jsonb persistido no registro de execução
type ActualChanges struct {
	Category       ProposalCategory `json:"category"`
	Operations     []AppliedChange  `json:"operations"`
	ExecutedAt     time.Time        `json:"executed_at"`
	Note           string           `json:"note,omitempty"`
	PartialFailure bool             `json:"partial_failure,omitempty"`
	FailureError   string           `json:"failure_error,omitempty"`
}
