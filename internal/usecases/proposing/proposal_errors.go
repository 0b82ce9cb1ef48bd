package proposing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/safeguard"
)

var (
	ErrProposalNotFound    = errors.New("proposta não encontrada")
	ErrInvalidTransition   = errors.New("transição de status não permitida")
	ErrConcurrencyConflict = errors.New("proposta alterada por ação concorrente")
	ErrSafeguardBlocked    = errors.New("aprovação bloqueada por safeguard")
	ErrMissingReason       = errors.New("motivo de rejeição é obrigatório")
)

// TransitionError detalha uma transição de status rejeitada
type TransitionError struct {
	ProposalID string
	From       domain.ProposalStatus
	To         domain.ProposalStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transição de %s para %s não permitida na proposta %s", e.From, e.To, e.ProposalID)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// SafeguardError carrega a decisão completa da avaliação que bloqueou a ação
type SafeguardError struct {
	ProposalID string
	Decision   safeguard.Decision
}

func (e *SafeguardError) Error() string {
	if len(e.Decision.Violations) > 0 {
		return fmt.Sprintf("aprovação bloqueada: %s", e.Decision.Violations[0].Message)
	}
	return "aprovação bloqueada por safeguard"
}

func (e *SafeguardError) Unwrap() error {
	return ErrSafeguardBlocked
}
