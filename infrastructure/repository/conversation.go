package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

const messagesTable = "proposal_messages"

type ConversationRepository interface {
	Append(message *domain.ConversationMessage) error
	ListByProposalID(proposalID string) ([]*domain.ConversationMessage, error)
}

type conversationRepository struct {
	conn *postgres.Connection
}

func NewConversationRepository(conn *postgres.Connection) ConversationRepository {
	return &conversationRepository{
		conn: conn,
	}
}

func (r *conversationRepository) Append(message *domain.ConversationMessage) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert(messagesTable).
		Columns("id", "proposal_id", "role", "content").
		Values(message.ID, message.ProposalID, message.Role, message.Content).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir mensagem: %w", err)
	}

	return nil
}

// ListByProposalID retorna o histórico da conversa em ordem cronológica
func (r *conversationRepository) ListByProposalID(proposalID string) ([]*domain.ConversationMessage, error) {
	sqlQuery, args, err := squirrel.
		Select("id", "proposal_id", "role", "content", "created_at").
		From(messagesTable).
		Where(squirrel.Eq{"proposal_id": proposalID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	messages := make([]*domain.ConversationMessage, 0)
	for rows.Next() {
		message := &domain.ConversationMessage{}
		if err := rows.Scan(
			&message.ID,
			&message.ProposalID,
			&message.Role,
			&message.Content,
			&message.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear mensagem: %w", err)
		}
		messages = append(messages, message)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return messages, nil
}
