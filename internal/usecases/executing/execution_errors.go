package executing

import (
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/safeguard"
)

var (
	ErrProposalNotFound      = errors.New("proposta não encontrada")
	ErrNotExecutable         = errors.New("proposta não está aprovada para execução")
	ErrNotExecuted           = errors.New("proposta não tem execução para reverter")
	ErrExecutionInProgress   = errors.New("execução já em andamento para esta proposta")
	ErrSafeguardBlocked      = errors.New("execução bloqueada por safeguard")
	ErrExternalAPIFailure    = errors.New("falha na API da plataforma de anúncios")
	ErrPartialFailure        = errors.New("execução parcial: parte das operações falhou")
	ErrRollbackWindowExpired = errors.New("janela de rollback expirada")
	ErrAlreadyRolledBack     = errors.New("execução já revertida")
	ErrMissingReason         = errors.New("motivo do rollback é obrigatório")
	ErrConcurrencyConflict   = errors.New("proposta alterada por ação concorrente")
	ErrNoOperations          = errors.New("proposta não produz operações executáveis")
)

// SafeguardError carrega a decisão que bloqueou a execução
type SafeguardError struct {
	ProposalID string
	Decision   safeguard.Decision
}

func (e *SafeguardError) Error() string {
	if len(e.Decision.Violations) > 0 {
		return fmt.Sprintf("execução bloqueada: %s", e.Decision.Violations[0].Message)
	}
	return "execução bloqueada por safeguard"
}

func (e *SafeguardError) Unwrap() error {
	return ErrSafeguardBlocked
}

// PartialFailureError detalha quais operações falharam em uma execução que
// aplicou parte das mudanças
type PartialFailureError struct {
	ProposalID  string
	ExecutionID string
	Failed      []domain.AppliedChange
	Applied     int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("execução da proposta %s aplicou %d operações e falhou em %d",
		e.ProposalID, e.Applied, len(e.Failed))
}

func (e *PartialFailureError) Unwrap() error {
	return ErrPartialFailure
}

// WindowExpiredError informa quando a janela de rollback terminou
type WindowExpiredError struct {
	ProposalID string
	ExecutedAt time.Time
	Deadline   time.Time
}

func (e *WindowExpiredError) Error() string {
	return fmt.Sprintf("janela de rollback da proposta %s expirou em %s",
		e.ProposalID, e.Deadline.Format(time.RFC3339))
}

func (e *WindowExpiredError) Unwrap() error {
	return ErrRollbackWindowExpired
}
