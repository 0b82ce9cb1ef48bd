package domain

import "time"

// MessageRole identifica o autor de um turno na conversa sobre a proposta
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// ConversationMessage é um turno da conversa ("bate-bola") entre o operador e
// o assistente sobre uma proposta. O histórico é append-only e escopado a uma
// única proposta.
type ConversationMessage struct {
	ID         string      `json:"id"`
	ProposalID string      `json:"proposal_id"`
	Role       MessageRole `json:"role"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
}
