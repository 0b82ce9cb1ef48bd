package chatting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	anthropicMocks "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/anthropic/mocks"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_SendMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	conversationRepo := mocks.NewMockConversationRepository(ctrl)
	replier := anthropicMocks.NewMockReplier(ctrl)
	service := NewService(proposalRepo, conversationRepo, replier)

	ctx := context.Background()

	proposal := &domain.Proposal{
		ID:       "PROP001",
		Category: domain.CategoryBudget,
		Priority: domain.PriorityHigh,
		Title:    "Aumentar orçamento da campanha de marca",
		Status:   domain.ProposalStatusPending,
	}

	t.Run("Turno completo registra pergunta e resposta na ordem", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)

		history := []*domain.ConversationMessage{
			{ProposalID: "PROP001", Role: domain.MessageRoleUser, Content: "Por que aumentar o orçamento?"},
		}

		gomock.InOrder(
			conversationRepo.EXPECT().Append(gomock.Any()).
				DoAndReturn(func(msg *domain.ConversationMessage) error {
					assert.Equal(t, domain.MessageRoleUser, msg.Role)
					assert.Equal(t, "Por que aumentar o orçamento?", msg.Content)
					return nil
				}),
			conversationRepo.EXPECT().ListByProposalID("PROP001").Return(history, nil),
			conversationRepo.EXPECT().Append(gomock.Any()).
				DoAndReturn(func(msg *domain.ConversationMessage) error {
					assert.Equal(t, domain.MessageRoleAssistant, msg.Role)
					return nil
				}),
		)

		replier.EXPECT().Reply(ctx, gomock.Any(), history).
			DoAndReturn(func(_ context.Context, system string, _ []*domain.ConversationMessage) (string, error) {
				assert.Contains(t, system, "Aumentar orçamento da campanha de marca")
				return "A campanha vem performando abaixo do CPA alvo.", nil
			})

		reply, err := service.SendMessage(ctx, "PROP001", "Por que aumentar o orçamento?")

		require.NoError(t, err)
		assert.Equal(t, domain.MessageRoleAssistant, reply.Role)
		assert.Equal(t, "A campanha vem performando abaixo do CPA alvo.", reply.Content)
	})

	t.Run("Mensagem em branco é recusada sem tocar no histórico", func(t *testing.T) {
		_, err := service.SendMessage(ctx, "PROP001", "   ")

		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("Proposta inexistente", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP404").Return(nil, nil)

		_, err := service.SendMessage(ctx, "PROP404", "Olá")

		assert.ErrorIs(t, err, ErrProposalNotFound)
	})

	t.Run("Falha do modelo não registra resposta", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP001").Return(proposal, nil)
		conversationRepo.EXPECT().Append(gomock.Any()).Return(nil)
		conversationRepo.EXPECT().ListByProposalID("PROP001").Return(nil, nil)
		replier.EXPECT().Reply(ctx, gomock.Any(), gomock.Any()).Return("", assert.AnError)

		_, err := service.SendMessage(ctx, "PROP001", "Olá")

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestService_GetHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proposalRepo := mocks.NewMockProposalRepository(ctrl)
	conversationRepo := mocks.NewMockConversationRepository(ctrl)
	replier := anthropicMocks.NewMockReplier(ctrl)
	service := NewService(proposalRepo, conversationRepo, replier)

	t.Run("Histórico escopado à proposta", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP001").
			Return(&domain.Proposal{ID: "PROP001", Category: domain.CategoryBudget}, nil)
		conversationRepo.EXPECT().ListByProposalID("PROP001").
			Return([]*domain.ConversationMessage{
				{Role: domain.MessageRoleUser, Content: "Oi"},
				{Role: domain.MessageRoleAssistant, Content: "Olá"},
			}, nil)

		messages, err := service.GetHistory("PROP001")

		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, domain.MessageRoleUser, messages[0].Role)
	})

	t.Run("Proposta inexistente", func(t *testing.T) {
		proposalRepo.EXPECT().GetByID("PROP404").Return(nil, nil)

		_, err := service.GetHistory("PROP404")

		assert.ErrorIs(t, err, ErrProposalNotFound)
	})
}
