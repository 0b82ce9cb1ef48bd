// Package proposing implementa o ciclo de vida das propostas de otimização:
// importação, listagem, aprovação com safeguards, rejeição, descarte e limpeza
// de propostas de campanhas inativas
package proposing

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/chatwork"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/safeguard"
	"github.com/vfg2006/campaign-advisor-api/pkg/metrics"
)

// validTransitions define o grafo do ciclo de vida. Rollback reabre a
// proposta executada como aprovada, permitindo nova execução.
var validTransitions = map[domain.ProposalStatus][]domain.ProposalStatus{
	domain.ProposalStatusPending:  {domain.ProposalStatusApproved, domain.ProposalStatusRejected, domain.ProposalStatusSkipped},
	domain.ProposalStatusApproved: {domain.ProposalStatusExecuted},
	domain.ProposalStatusExecuted: {domain.ProposalStatusApproved},
}

// TransitionAllowed informa se a transição pertence ao grafo do ciclo de vida
func TransitionAllowed(from, to domain.ProposalStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ApprovalRequest é o comando de aprovação de uma proposta
type ApprovalRequest struct {
	ScheduleAt   *time.Time           `json:"schedule_at,omitempty"`
	EditedValues *domain.EditedValues `json:"edited_values,omitempty"`
	EditReason   string               `json:"edit_reason,omitempty"`
}

// ProposalView é a proposta enriquecida com o estado da campanha alvo.
// IsCampaignActive fica nil quando a proposta não tem campanha alvo.
type ProposalView struct {
	*domain.Proposal
	IsCampaignActive *bool `json:"is_campaign_active,omitempty"`
}

// CleanupResult resume uma rodada de limpeza de propostas pendentes
type CleanupResult struct {
	Evaluated  int      `json:"evaluated"`
	Skipped    int      `json:"skipped"`
	SkippedIDs []string `json:"skipped_ids,omitempty"`
	DryRun     bool     `json:"dry_run"`
}

type Proposer interface {
	ImportProposals(proposals []*domain.Proposal) error
	ListProposals(filters *domain.ProposalFilters) ([]*ProposalView, error)
	GetProposal(id string) (*domain.Proposal, error)
	Approve(id string, req *ApprovalRequest, claims *domain.Claims) (*domain.Proposal, safeguard.Decision, error)
	Reject(id, reason string, claims *domain.Claims) error
	Skip(id string) error
	CheckSafeguards(id string) (safeguard.Decision, error)
	CleanupInactiveCampaigns(dryRun bool) (*CleanupResult, error)
}

type Service struct {
	proposalRepo repository.ProposalRepository
	campaignRepo repository.CampaignRepository
	evaluator    safeguard.Evaluator
	notifier     chatwork.Notifier
}

func NewService(
	proposalRepo repository.ProposalRepository,
	campaignRepo repository.CampaignRepository,
	evaluator safeguard.Evaluator,
	notifier chatwork.Notifier,
) Proposer {
	return &Service{
		proposalRepo: proposalRepo,
		campaignRepo: campaignRepo,
		evaluator:    evaluator,
		notifier:     notifier,
	}
}

// ImportProposals registra um lote de propostas geradas pela análise, todas
// iniciando como pendentes
func (s *Service) ImportProposals(proposals []*domain.Proposal) error {
	for _, p := range proposals {
		if !p.Category.Valid() {
			return &domain.ValidationError{Field: "category", Value: string(p.Category)}
		}
		if p.Priority != "" && !p.Priority.Valid() {
			return &domain.ValidationError{Field: "priority", Value: string(p.Priority)}
		}
		p.Status = domain.ProposalStatusPending
	}

	if err := s.proposalRepo.CreateBatch(proposals); err != nil {
		return err
	}

	logrus.WithField("total", len(proposals)).Info("proposing: proposals imported")

	return nil
}

func (s *Service) ListProposals(filters *domain.ProposalFilters) ([]*ProposalView, error) {
	proposals, err := s.proposalRepo.List(filters)
	if err != nil {
		return nil, err
	}

	activeNames, err := s.campaignRepo.ActiveNameSet()
	if err != nil {
		// Listagem não depende do espelho de campanhas; segue sem o flag
		logrus.WithError(err).Warn("proposing: failed to load active campaigns, listing without activity flag")
		activeNames = nil
	}

	views := make([]*ProposalView, 0, len(proposals))
	for _, p := range proposals {
		view := &ProposalView{Proposal: p}
		if activeNames != nil && p.TargetCampaign != nil {
			active := activeNames[*p.TargetCampaign]
			view.IsCampaignActive = &active
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *Service) GetProposal(id string) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}
	return proposal, nil
}

// Approve valida os safeguards e grava a transição pending -> approved. A
// regra de categoria manual não bloqueia a aprovação em si: ela impede apenas
// a execução automática, verificada novamente no dispatcher.
func (s *Service) Approve(id string, req *ApprovalRequest, claims *domain.Claims) (*domain.Proposal, safeguard.Decision, error) {
	proposal, err := s.GetProposal(id)
	if err != nil {
		return nil, safeguard.Decision{}, err
	}

	if proposal.Status != domain.ProposalStatusPending {
		return nil, safeguard.Decision{}, &TransitionError{
			ProposalID: id,
			From:       proposal.Status,
			To:         domain.ProposalStatusApproved,
		}
	}

	steps := proposal.ActionSteps
	if steps == nil {
		steps = &domain.ActionSteps{}
	}

	if req != nil && !req.EditedValues.IsEmpty() {
		original := steps.Steps
		steps.Steps = domain.ApplyEdits(steps.Steps, req.EditedValues)
		steps.EditHistory = append(steps.EditHistory, domain.EditRecord{
			OriginalSteps: original,
			EditedValues:  req.EditedValues,
			EditReason:    req.EditReason,
			EditedAt:      time.Now().UTC(),
			EditedBy:      claims.OperatorName(),
		})
	}

	operations := domain.PlanOperations(proposal.Category, steps)
	decision := s.evaluator.Evaluate(proposal.Category, operations)

	if blocked := hardViolations(decision); len(blocked) > 0 {
		for _, v := range blocked {
			metrics.SafeguardBlocks.WithLabelValues(v.Rule).Inc()
		}
		return nil, decision, &SafeguardError{ProposalID: id, Decision: decision}
	}

	var scheduleAt *time.Time
	if req != nil {
		scheduleAt = req.ScheduleAt
	}

	if err := s.proposalRepo.UpdateApproval(id, scheduleAt, steps); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, decision, ErrConcurrencyConflict
		}
		return nil, decision, err
	}

	metrics.ProposalTransitions.WithLabelValues(string(domain.ProposalStatusApproved)).Inc()

	logrus.WithFields(logrus.Fields{
		"proposal_id": id,
		"operator":    claims.OperatorName(),
		"scheduled":   scheduleAt != nil,
	}).Info("proposing: proposal approved")

	proposal.Status = domain.ProposalStatusApproved
	proposal.ScheduleAt = scheduleAt
	proposal.ActionSteps = steps

	// Criativo manual não entra no fluxo automático: a aplicação vira uma
	// tarefa para o time de tráfego
	if proposal.Category == domain.CategoryManualCreative {
		s.notifier.RegisterManualCreativeTask(context.Background(), proposal)
	}

	return proposal, decision, nil
}

// hardViolations separa as violações que bloqueiam a aprovação. A regra de
// categoria fica de fora: categoria manual pode ser aprovada e aplicada fora
// do fluxo automático.
func hardViolations(decision safeguard.Decision) []safeguard.Violation {
	blocked := make([]safeguard.Violation, 0, len(decision.Violations))
	for _, v := range decision.Violations {
		if v.Rule != safeguard.RuleCategoryNotAuto {
			blocked = append(blocked, v)
		}
	}
	return blocked
}

// Reject grava a transição pending -> rejected com o motivo informado
func (s *Service) Reject(id, reason string, claims *domain.Claims) error {
	if reason == "" {
		return ErrMissingReason
	}

	proposal, err := s.GetProposal(id)
	if err != nil {
		return err
	}

	if proposal.Status != domain.ProposalStatusPending {
		return &TransitionError{
			ProposalID: id,
			From:       proposal.Status,
			To:         domain.ProposalStatusRejected,
		}
	}

	if err := s.transition(id, domain.ProposalStatusPending, domain.ProposalStatusRejected); err != nil {
		return err
	}

	steps := proposal.ActionSteps
	if steps == nil {
		steps = &domain.ActionSteps{}
	}
	now := time.Now().UTC()
	steps.RejectionReason = reason
	steps.RejectedAt = &now

	if err := s.proposalRepo.UpdateActionSteps(id, steps); err != nil {
		logrus.WithError(err).WithField("proposal_id", id).Warn("proposing: failed to record rejection reason")
	}

	logrus.WithFields(logrus.Fields{
		"proposal_id": id,
		"operator":    claims.OperatorName(),
	}).Info("proposing: proposal rejected")

	return nil
}

// Skip grava a transição pending -> skipped (descartada sem motivo registrado)
func (s *Service) Skip(id string) error {
	proposal, err := s.GetProposal(id)
	if err != nil {
		return err
	}

	if proposal.Status != domain.ProposalStatusPending {
		return &TransitionError{
			ProposalID: id,
			From:       proposal.Status,
			To:         domain.ProposalStatusSkipped,
		}
	}

	return s.transition(id, domain.ProposalStatusPending, domain.ProposalStatusSkipped)
}

func (s *Service) transition(id string, from, to domain.ProposalStatus) error {
	if err := s.proposalRepo.UpdateStatusIf(id, from, to); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return ErrConcurrencyConflict
		}
		return err
	}

	metrics.ProposalTransitions.WithLabelValues(string(to)).Inc()

	return nil
}

// CheckSafeguards avalia a proposta no estado atual sem alterá-la
func (s *Service) CheckSafeguards(id string) (safeguard.Decision, error) {
	proposal, err := s.GetProposal(id)
	if err != nil {
		return safeguard.Decision{}, err
	}

	operations := domain.PlanOperations(proposal.Category, proposal.ActionSteps)
	return s.evaluator.Evaluate(proposal.Category, operations), nil
}

// CleanupInactiveCampaigns descarta propostas pendentes cuja campanha alvo não
// está mais ativa. A rodada é idempotente: propostas já descartadas não são
// reavaliadas.
func (s *Service) CleanupInactiveCampaigns(dryRun bool) (*CleanupResult, error) {
	pending, err := s.proposalRepo.ListPendingWithTarget()
	if err != nil {
		return nil, err
	}

	activeNames, err := s.campaignRepo.ActiveNameSet()
	if err != nil {
		return nil, err
	}

	result := &CleanupResult{
		Evaluated: len(pending),
		DryRun:    dryRun,
	}

	for _, proposal := range pending {
		if proposal.TargetCampaign == nil || activeNames[*proposal.TargetCampaign] {
			continue
		}

		if !dryRun {
			err := s.transition(proposal.ID, domain.ProposalStatusPending, domain.ProposalStatusSkipped)
			if err != nil {
				if errors.Is(err, ErrConcurrencyConflict) {
					// Outra ação mudou o status no meio da rodada; segue adiante
					continue
				}
				return nil, err
			}
		}

		result.Skipped++
		result.SkippedIDs = append(result.SkippedIDs, proposal.ID)
	}

	logrus.WithFields(logrus.Fields{
		"evaluated": result.Evaluated,
		"skipped":   result.Skipped,
		"dry_run":   dryRun,
	}).Info("proposing: inactive campaign cleanup finished")

	return result, nil
}
