package domain

import (
	"time"
)

// ProposalStatus representa o estado de uma proposta no ciclo de vida
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusExecuted ProposalStatus = "executed"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusSkipped  ProposalStatus = "skipped"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusApproved, ProposalStatusExecuted,
		ProposalStatusRejected, ProposalStatusSkipped:
		return true
	}
	return false
}

// ProposalPriority representa a prioridade atribuída pela análise
type ProposalPriority string

const (
	PriorityHigh   ProposalPriority = "high"
	PriorityMedium ProposalPriority = "medium"
	PriorityLow    ProposalPriority = "low"
)

func (p ProposalPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Proposal representa uma proposta de melhoria gerada pela análise semanal
type Proposal struct {
	ID             string           `json:"id"`
	ReportID       string           `json:"report_id"`
	Category       ProposalCategory `json:"category"`
	Priority       ProposalPriority `json:"priority"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	ExpectedEffect string           `json:"expected_effect,omitempty"`
	ActionSteps    *ActionSteps     `json:"action_steps,omitempty"`
	TargetCampaign *string          `json:"target_campaign,omitempty"`
	TargetAdGroup  *string          `json:"target_ad_group,omitempty"`
	Status         ProposalStatus   `json:"status"`
	ScheduleAt     *time.Time       `json:"schedule_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ActionStep descreve uma alteração concreta endereçável na plataforma de anúncios.
// Cada step corresponde a uma entidade+campo externo (uma operação discreta
// para fins de safeguard).
type ActionStep struct {
	Description     string             `json:"description,omitempty"`
	CampaignID      string             `json:"campaign_id,omitempty"`
	AdGroupID       string             `json:"ad_group_id,omitempty"`
	Field           string             `json:"field,omitempty"`
	CurrentValue    *float64           `json:"current_value,omitempty"`
	NewValue        *float64           `json:"new_value,omitempty"`
	Keywords        []string           `json:"keywords,omitempty"`
	MatchType       string             `json:"match_type,omitempty"`
	Headlines       []string           `json:"headlines,omitempty"`
	Descriptions    []string           `json:"descriptions,omitempty"`
	FinalURL        string             `json:"final_url,omitempty"`
	OldAdID         string             `json:"old_ad_id,omitempty"`
	DeviceModifiers map[string]float64 `json:"device_modifiers,omitempty"`
}

// ActionSteps é o payload persistido em jsonb. Além dos steps propostos pela
// análise, acumula o histórico de edições feitas na aprovação e o motivo de
// rejeição, quando houver.
type ActionSteps struct {
	Steps           []ActionStep `json:"steps"`
	EditHistory     []EditRecord `json:"edit_history,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	RejectedAt      *time.Time   `json:"rejected_at,omitempty"`
}

// EditRecord registra uma edição aplicada pelo operador no momento da aprovação
type EditRecord struct {
	OriginalSteps []ActionStep  `json:"original_steps,omitempty"`
	EditedValues  *EditedValues `json:"edited_values,omitempty"`
	EditReason    string        `json:"edit_reason,omitempty"`
	EditedAt      time.Time     `json:"edited_at"`
	EditedBy      string        `json:"edited_by,omitempty"`
}

// EditedValues é o override opcional fornecido pelo operador na aprovação,
// substituindo valores propostos pela análise
type EditedValues struct {
	CurrentValue     *float64           `json:"current_value,omitempty"`
	NewValue         *float64           `json:"new_value,omitempty"`
	TargetCPA        *float64           `json:"target_cpa,omitempty"`
	TargetROAS       *float64           `json:"target_roas,omitempty"`
	NegativeKeywords []string           `json:"negative_keywords,omitempty"`
	MatchType        string             `json:"match_type,omitempty"`
	AddKeywords      []string           `json:"add_keywords,omitempty"`
	AdGroupID        string             `json:"ad_group_id,omitempty"`
	Headlines        []string           `json:"headlines,omitempty"`
	Descriptions     []string           `json:"descriptions,omitempty"`
	FinalURL         string             `json:"final_url,omitempty"`
	OldAdID          string             `json:"old_ad_id,omitempty"`
	DeviceModifiers  map[string]float64 `json:"device_modifiers,omitempty"`
}

// ProposalFilters são os filtros aceitos pela listagem de propostas
type ProposalFilters struct {
	Status      *ProposalStatus
	Category    *ProposalCategory
	Priority    *ProposalPriority
	ReportID    *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       uint64
	Offset      uint64
}

// IsEmpty indica se o override não carrega nenhum valor
func (e *EditedValues) IsEmpty() bool {
	if e == nil {
		return true
	}
	return e.CurrentValue == nil && e.NewValue == nil && e.TargetCPA == nil &&
		e.TargetROAS == nil && len(e.NegativeKeywords) == 0 && len(e.AddKeywords) == 0 &&
		len(e.Headlines) == 0 && len(e.Descriptions) == 0 && e.FinalURL == "" &&
		e.OldAdID == "" && len(e.DeviceModifiers) == 0
}
