package domain

import "time"

// ProposalExecution registra uma aplicação (total ou parcial) de uma proposta
// na plataforma de anúncios. Uma proposta pode acumular várias execuções ao
// longo do tempo (re-execução após rollback).
type ProposalExecution struct {
	ID             string         `json:"id"`
	ProposalID     string         `json:"proposal_id"`
	ExecutedAt     time.Time      `json:"executed_at"`
	ExecutedBy     string         `json:"executed_by,omitempty"`
	ExecutionNotes string         `json:"execution_notes,omitempty"`
	ActualChanges  *ActualChanges `json:"actual_changes,omitempty"`
	RolledBack     bool           `json:"rolled_back"`
	CreatedAt      time.Time      `json:"created_at"`
}

// PendingMeasurement identifica uma proposta executada aguardando a captura
// do snapshot "after" (período de medição decorrido, snapshot ainda ausente)
type PendingMeasurement struct {
	ProposalID     string    `json:"proposal_id"`
	ExecutionID    string    `json:"execution_id"`
	ExecutedAt     time.Time `json:"executed_at"`
	TargetCampaign *string   `json:"target_campaign,omitempty"`
}

// ProposalRollback registra a reversão de uma execução dentro da janela
// configurada. Cada execução admite no máximo um rollback.
type ProposalRollback struct {
	ID           string          `json:"id"`
	ProposalID   string          `json:"proposal_id"`
	ExecutionID  string          `json:"execution_id"`
	Reason       string          `json:"reason,omitempty"`
	Results      []AppliedChange `json:"results,omitempty"`
	RolledBackAt time.Time       `json:"rolled_back_at"`
	RolledBackBy string          `json:"rolled_back_by,omitempty"`
}
