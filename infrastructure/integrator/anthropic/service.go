// Package anthropic encapsula a chamada ao modelo de linguagem usado na
// conversa sobre propostas
package anthropic

import (
	"context"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

type Replier interface {
	Reply(ctx context.Context, system string, history []*domain.ConversationMessage) (string, error)
}

type AnthropicReplier struct {
	cfg    *config.Config
	client anthropicsdk.Client
}

func New(cfg *config.Config) *AnthropicReplier {
	return &AnthropicReplier{
		cfg:    cfg,
		client: anthropicsdk.NewClient(option.WithAPIKey(cfg.Anthropic.APIKey)),
	}
}

// Reply envia o histórico completo da conversa ao modelo e retorna o texto do
// próximo turno do assistente
func (r *AnthropicReplier) Reply(ctx context.Context, system string, history []*domain.ConversationMessage) (string, error) {
	messages := make([]anthropicsdk.MessageParam, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case domain.MessageRoleUser:
			messages = append(messages, anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(m.Content)))
		case domain.MessageRoleAssistant:
			messages = append(messages, anthropicsdk.NewAssistantMessage(anthropicsdk.NewTextBlock(m.Content)))
		}
	}

	if len(messages) == 0 {
		return "", fmt.Errorf("conversa sem mensagens")
	}

	maxTokens := int64(r.cfg.Anthropic.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	response, err := r.client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(r.cfg.Anthropic.Model),
		MaxTokens: maxTokens,
		System: []anthropicsdk.TextBlockParam{
			{Text: system},
		},
		Messages: messages,
	})
	if err != nil {
		logrus.WithError(err).Error("anthropic: failed to get model reply")
		return "", fmt.Errorf("erro ao consultar o modelo: %w", err)
	}

	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	reply := sb.String()
	if reply == "" {
		return "", fmt.Errorf("resposta vazia do modelo")
	}

	return reply, nil
}
