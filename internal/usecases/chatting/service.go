// Package chatting implementa a conversa por proposta entre o operador e o
// assistente, usada para esclarecer o racional de cada sugestão antes da
// aprovação
package chatting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/anthropic"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

var (
	ErrProposalNotFound = errors.New("proposta não encontrada")
	ErrEmptyMessage     = errors.New("mensagem não pode ser vazia")
)

type Chatter interface {
	SendMessage(ctx context.Context, proposalID, message string) (*domain.ConversationMessage, error)
	GetHistory(proposalID string) ([]*domain.ConversationMessage, error)
}

type Service struct {
	proposalRepo     repository.ProposalRepository
	conversationRepo repository.ConversationRepository
	replier          anthropic.Replier
}

func NewService(
	proposalRepo repository.ProposalRepository,
	conversationRepo repository.ConversationRepository,
	replier anthropic.Replier,
) Chatter {
	return &Service{
		proposalRepo:     proposalRepo,
		conversationRepo: conversationRepo,
		replier:          replier,
	}
}

// SendMessage registra o turno do operador, consulta o modelo com o histórico
// completo e registra a resposta. O histórico é append-only e escopado à
// proposta.
func (s *Service) SendMessage(ctx context.Context, proposalID, message string) (*domain.ConversationMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}

	userMessage := &domain.ConversationMessage{
		ProposalID: proposalID,
		Role:       domain.MessageRoleUser,
		Content:    message,
	}
	if err := s.conversationRepo.Append(userMessage); err != nil {
		return nil, err
	}

	history, err := s.conversationRepo.ListByProposalID(proposalID)
	if err != nil {
		return nil, err
	}

	reply, err := s.replier.Reply(ctx, buildSystemPrompt(proposal), history)
	if err != nil {
		logrus.WithError(err).WithField("proposal_id", proposalID).
			Error("chatting: failed to get assistant reply")
		return nil, err
	}

	assistantMessage := &domain.ConversationMessage{
		ProposalID: proposalID,
		Role:       domain.MessageRoleAssistant,
		Content:    reply,
	}
	if err := s.conversationRepo.Append(assistantMessage); err != nil {
		return nil, err
	}

	return assistantMessage, nil
}

func (s *Service) GetHistory(proposalID string) ([]*domain.ConversationMessage, error) {
	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}

	return s.conversationRepo.ListByProposalID(proposalID)
}

// buildSystemPrompt monta o contexto da proposta para o modelo. Os action
// steps vão serializados para que o assistente responda sobre os valores
// concretos propostos.
func buildSystemPrompt(proposal *domain.Proposal) string {
	var sb strings.Builder

	sb.WriteString("Você é um assistente de tráfego pago que responde dúvidas sobre uma proposta ")
	sb.WriteString("de otimização de campanha gerada pela análise semanal. ")
	sb.WriteString("Responda de forma objetiva, em português, sobre esta proposta específica.\n\n")

	sb.WriteString(fmt.Sprintf("Título: %s\n", proposal.Title))
	sb.WriteString(fmt.Sprintf("Categoria: %s\n", proposal.Category.Label()))
	sb.WriteString(fmt.Sprintf("Prioridade: %s\n", proposal.Priority))
	sb.WriteString(fmt.Sprintf("Status: %s\n", proposal.Status))

	if proposal.Description != "" {
		sb.WriteString(fmt.Sprintf("Descrição: %s\n", proposal.Description))
	}
	if proposal.ExpectedEffect != "" {
		sb.WriteString(fmt.Sprintf("Efeito esperado: %s\n", proposal.ExpectedEffect))
	}
	if proposal.TargetCampaign != nil {
		sb.WriteString(fmt.Sprintf("Campanha alvo: %s\n", *proposal.TargetCampaign))
	}

	if proposal.ActionSteps != nil && len(proposal.ActionSteps.Steps) > 0 {
		if stepsJSON, err := json.Marshal(proposal.ActionSteps.Steps); err == nil {
			sb.WriteString(fmt.Sprintf("Ações propostas (JSON): %s\n", stepsJSON))
		}
	}

	return sb.String()
}
