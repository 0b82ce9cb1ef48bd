package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	UpsertBatch(campaigns []*domain.Campaign) error
	ListAll() ([]*domain.Campaign, error)
	ActiveNameSet() (map[string]bool, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// UpsertBatch sincroniza o espelho local de campanhas. O conflito é resolvido
// pelo external_id da plataforma.
func (r *campaignRepository) UpsertBatch(campaigns []*domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(campaignsTable).
		Columns("id", "external_id", "name", "status", "synced_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, campaign := range campaigns {
		if campaign.ID == "" {
			campaign.ID = uuid.NewString()
		}
		query = query.Values(campaign.ID, campaign.ExternalID, campaign.Name, campaign.Status, campaign.SyncedAt)
	}

	query = query.Suffix(`ON CONFLICT (external_id) DO UPDATE SET
		name = EXCLUDED.name,
		status = EXCLUDED.status,
		synced_at = EXCLUDED.synced_at,
		updated_at = CURRENT_TIMESTAMP`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de upsert: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao sincronizar campanhas: %w", err)
	}

	return nil
}

func (r *campaignRepository) ListAll() ([]*domain.Campaign, error) {
	sqlQuery, args, err := squirrel.
		Select("id", "external_id", "name", "status", "synced_at", "created_at", "updated_at").
		From(campaignsTable).
		OrderBy("name ASC").
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		if err := rows.Scan(
			&campaign.ID,
			&campaign.ExternalID,
			&campaign.Name,
			&campaign.Status,
			&campaign.SyncedAt,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

// ActiveNameSet retorna o conjunto de nomes de campanhas ativas, usado pela
// limpeza de propostas pendentes cuja campanha alvo saiu do ar
func (r *campaignRepository) ActiveNameSet() (map[string]bool, error) {
	sqlQuery, args, err := squirrel.
		Select("name").
		From(campaignsTable).
		Where(squirrel.Eq{"status": domain.CampaignStatusActive}).
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

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erro ao escanear nome de campanha: %w", err)
		}
		names[name] = true
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return names, nil
}
