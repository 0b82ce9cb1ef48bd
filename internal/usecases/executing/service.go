// Package executing aplica propostas aprovadas na plataforma de anúncios e
// reverte execuções dentro da janela de rollback. As operações de "set" são
// sempre valores absolutos, com o valor anterior registrado para a reversão.
package executing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/chatwork"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/safeguard"
	"github.com/vfg2006/campaign-advisor-api/pkg/metrics"
)

// BeforeSnapshotter captura o snapshot de KPIs imediatamente antes da
// aplicação das mudanças
type BeforeSnapshotter interface {
	CaptureBefore(ctx context.Context, proposal *domain.Proposal) error
}

// ExecutionRequest é o comando de execução de uma proposta aprovada
type ExecutionRequest struct {
	Notes string
	// Note é anexada ao registro quando a execução agendada roda atrasada
	DelayNote string
}

type Executor interface {
	Execute(ctx context.Context, proposalID string, req *ExecutionRequest, claims *domain.Claims) (*domain.ProposalExecution, error)
	Rollback(ctx context.Context, proposalID, reason string, claims *domain.Claims) (*domain.ProposalRollback, error)
	ListExecutions(proposalID string) ([]*domain.ProposalExecution, error)
}

type Service struct {
	proposalRepo  repository.ProposalRepository
	executionRepo repository.ExecutionRepository
	integrator    adplatform.Integrator
	evaluator     safeguard.Evaluator
	snapshotter   BeforeSnapshotter
	notifier      chatwork.Notifier
	cfg           *config.Config

	// inFlight impede duas execuções simultâneas da mesma proposta no
	// mesmo processo; corridas entre processos caem no CAS de status
	inFlightMu sync.Mutex
	inFlight   map[string]struct{}
}

func NewService(
	proposalRepo repository.ProposalRepository,
	executionRepo repository.ExecutionRepository,
	integrator adplatform.Integrator,
	evaluator safeguard.Evaluator,
	snapshotter BeforeSnapshotter,
	notifier chatwork.Notifier,
	cfg *config.Config,
) Executor {
	return &Service{
		proposalRepo:  proposalRepo,
		executionRepo: executionRepo,
		integrator:    integrator,
		evaluator:     evaluator,
		snapshotter:   snapshotter,
		notifier:      notifier,
		cfg:           cfg,
		inFlight:      make(map[string]struct{}),
	}
}

// Execute aplica todas as operações da proposta. Falhas individuais não
// interrompem as demais operações; o desfecho é registrado por operação. A
// proposta só vira "executed" quando todas as operações foram aplicadas:
// falha parcial registra a execução e mantém a proposta aprovada para
// nova tentativa ou reconciliação manual.
func (s *Service) Execute(ctx context.Context, proposalID string, req *ExecutionRequest, claims *domain.Claims) (*domain.ProposalExecution, error) {
	if !s.acquire(proposalID) {
		return nil, ErrExecutionInProgress
	}
	defer s.release(proposalID)

	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}

	if proposal.Status != domain.ProposalStatusApproved {
		return nil, ErrNotExecutable
	}

	operations := domain.PlanOperations(proposal.Category, proposal.ActionSteps)
	if len(operations) == 0 {
		return nil, ErrNoOperations
	}

	// Reavaliação completa no momento da execução: aqui a regra de
	// categoria também bloqueia
	decision := s.evaluator.Evaluate(proposal.Category, operations)
	if !decision.Allowed {
		for _, v := range decision.Violations {
			metrics.SafeguardBlocks.WithLabelValues(v.Rule).Inc()
		}
		return nil, &SafeguardError{ProposalID: proposalID, Decision: decision}
	}

	// Snapshot "before" capturado antes de qualquer mutação; falha aqui não
	// impede a execução, apenas inviabiliza a medição de impacto
	if err := s.snapshotter.CaptureBefore(ctx, proposal); err != nil {
		logrus.WithError(err).WithField("proposal_id", proposalID).
			Warn("executing: failed to capture before snapshot")
	}

	applied := make([]domain.AppliedChange, 0, len(operations))
	failed := make([]domain.AppliedChange, 0)

	for _, op := range operations {
		change, err := s.integrator.ApplyOperation(ctx, op)
		if err != nil {
			failed = append(failed, *change)
			continue
		}
		applied = append(applied, *change)
	}

	executedAt := time.Now().UTC()
	actualChanges := &domain.ActualChanges{
		Category:   proposal.Category,
		Operations: append(applied, failed...),
		ExecutedAt: executedAt,
		Note:       delayNote(req),
	}

	if len(failed) > 0 {
		actualChanges.PartialFailure = true
		actualChanges.FailureError = failed[0].Error
	}

	execution := &domain.ProposalExecution{
		ProposalID:     proposalID,
		ExecutedAt:     executedAt,
		ExecutedBy:     claims.OperatorName(),
		ExecutionNotes: executionNotes(req),
		ActualChanges:  actualChanges,
	}

	// Nenhuma operação aplicada: proposta continua aprovada e pode ser
	// reexecutada depois que a causa for resolvida
	if len(applied) == 0 {
		metrics.ExecutionResults.WithLabelValues("failed").Inc()
		if err := s.executionRepo.Create(execution); err != nil {
			logrus.WithError(err).WithField("proposal_id", proposalID).
				Error("executing: failed to record failed execution")
		}
		s.notifier.NotifyExecutionFailure(ctx, proposal, ErrExternalAPIFailure)
		return nil, ErrExternalAPIFailure
	}

	if err := s.executionRepo.Create(execution); err != nil {
		return nil, err
	}

	if len(failed) > 0 {
		metrics.ExecutionResults.WithLabelValues("partial_failure").Inc()
		logrus.WithFields(logrus.Fields{
			"proposal_id": proposalID,
			"execution":   execution.ID,
			"applied":     len(applied),
			"failed":      len(failed),
		}).Warn("executing: proposal partially executed, status kept as approved")

		s.notifier.NotifyExecutionSuccess(ctx, proposal, execution)

		return execution, &PartialFailureError{
			ProposalID:  proposalID,
			ExecutionID: execution.ID,
			Failed:      failed,
			Applied:     len(applied),
		}
	}

	if err := s.proposalRepo.UpdateStatusIf(proposalID, domain.ProposalStatusApproved, domain.ProposalStatusExecuted); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}
	metrics.ProposalTransitions.WithLabelValues(string(domain.ProposalStatusExecuted)).Inc()

	logrus.WithFields(logrus.Fields{
		"proposal_id": proposalID,
		"execution":   execution.ID,
		"applied":     len(applied),
	}).Info("executing: proposal executed")

	s.notifier.NotifyExecutionSuccess(ctx, proposal, execution)

	metrics.ExecutionResults.WithLabelValues("success").Inc()

	return execution, nil
}

// Rollback reverte a execução mais recente da proposta dentro da janela
// configurada. A reversão reabre a proposta como aprovada e limpa o
// agendamento: reexecutar exige nova ação do operador, nunca o job de
// execuções agendadas.
func (s *Service) Rollback(ctx context.Context, proposalID, reason string, claims *domain.Claims) (*domain.ProposalRollback, error) {
	if reason == "" {
		return nil, ErrMissingReason
	}

	if !s.acquire(proposalID) {
		return nil, ErrExecutionInProgress
	}
	defer s.release(proposalID)

	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}

	if proposal.Status != domain.ProposalStatusExecuted {
		return nil, ErrNotExecuted
	}

	execution, err := s.executionRepo.LatestByProposalID(proposalID)
	if err != nil {
		return nil, err
	}
	if execution == nil {
		return nil, ErrNotExecuted
	}

	if execution.RolledBack {
		return nil, ErrAlreadyRolledBack
	}

	// Janela inclusiva: rollback exatamente no limite ainda passa
	deadline := execution.ExecutedAt.Add(time.Duration(s.cfg.Safeguards.RollbackWindowHours) * time.Hour)
	if time.Now().UTC().After(deadline) {
		metrics.Rollbacks.WithLabelValues("window_expired").Inc()
		return nil, &WindowExpiredError{
			ProposalID: proposalID,
			ExecutedAt: execution.ExecutedAt,
			Deadline:   deadline,
		}
	}

	results := s.revertChanges(ctx, execution)

	rollback := &domain.ProposalRollback{
		ProposalID:   proposalID,
		ExecutionID:  execution.ID,
		Reason:       reason,
		Results:      results,
		RolledBackAt: time.Now().UTC(),
		RolledBackBy: claims.OperatorName(),
	}

	if err := s.executionRepo.CreateRollback(rollback); err != nil {
		return nil, err
	}

	if err := s.executionRepo.MarkRolledBack(execution.ID); err != nil {
		return nil, err
	}

	if err := s.proposalRepo.ReopenAfterRollback(proposalID); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}
	metrics.ProposalTransitions.WithLabelValues(string(domain.ProposalStatusApproved)).Inc()
	metrics.Rollbacks.WithLabelValues("success").Inc()

	logrus.WithFields(logrus.Fields{
		"proposal_id": proposalID,
		"execution":   execution.ID,
		"operator":    claims.OperatorName(),
	}).Info("executing: proposal rolled back")

	s.notifier.NotifyRollback(ctx, proposal, rollback)

	return rollback, nil
}

// revertChanges desfaz as mudanças aplicadas em ordem inversa à aplicação.
// Mudanças que já haviam falhado na execução são ignoradas.
func (s *Service) revertChanges(ctx context.Context, execution *domain.ProposalExecution) []domain.AppliedChange {
	if execution.ActualChanges == nil {
		return nil
	}

	operations := execution.ActualChanges.Operations
	results := make([]domain.AppliedChange, 0, len(operations))

	for i := len(operations) - 1; i >= 0; i-- {
		change := operations[i]
		if change.Status != domain.AppliedChangeStatusApplied {
			continue
		}

		reverted, err := s.integrator.RevertChange(ctx, change)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"operation_id": change.OperationID,
				"kind":         change.Kind,
				"error":        err.Error(),
			}).Error("executing: failed to revert change")
		}
		results = append(results, *reverted)
	}

	return results
}

// ListExecutions retorna o histórico de execuções da proposta, mais recente
// primeiro
func (s *Service) ListExecutions(proposalID string) ([]*domain.ProposalExecution, error) {
	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}

	return s.executionRepo.ListByProposalID(proposalID)
}

func (s *Service) acquire(proposalID string) bool {
	s.inFlightMu.Lock()
	defer s.inFlightMu.Unlock()

	if _, busy := s.inFlight[proposalID]; busy {
		return false
	}
	s.inFlight[proposalID] = struct{}{}
	return true
}

func (s *Service) release(proposalID string) {
	s.inFlightMu.Lock()
	defer s.inFlightMu.Unlock()
	delete(s.inFlight, proposalID)
}

func executionNotes(req *ExecutionRequest) string {
	if req == nil {
		return ""
	}
	return req.Notes
}

func delayNote(req *ExecutionRequest) string {
	if req == nil {
		return ""
	}
	return req.DelayNote
}
