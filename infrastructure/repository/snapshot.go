package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

const snapshotsTable = "proposal_snapshots"

type SnapshotRepository interface {
	Upsert(snapshot *domain.ProposalSnapshot) error
	GetByProposalAndType(proposalID string, snapshotType domain.SnapshotType) (*domain.ProposalSnapshot, error)
	ListByProposalID(proposalID string) ([]*domain.ProposalSnapshot, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

// Upsert grava o snapshot da proposta. A recaptura do mesmo tipo substitui as
// métricas anteriores (uma linha por proposta+tipo).
func (r *snapshotRepository) Upsert(snapshot *domain.ProposalSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}

	metricsJSON, err := json.Marshal(snapshot.Metrics)
	if err != nil {
		return fmt.Errorf("erro ao serializar métricas: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert(snapshotsTable).
		Columns("id", "proposal_id", "snapshot_type", "campaign_id", "metrics", "period_start", "period_end").
		Values(
			snapshot.ID,
			snapshot.ProposalID,
			snapshot.Type,
			snapshot.CampaignID,
			metricsJSON,
			snapshot.PeriodStart,
			snapshot.PeriodEnd,
		).
		Suffix(`ON CONFLICT (proposal_id, snapshot_type) DO UPDATE SET
			campaign_id = EXCLUDED.campaign_id,
			metrics = EXCLUDED.metrics,
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de upsert: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao gravar snapshot: %w", err)
	}

	return nil
}

var snapshotColumns = []string{
	"id",
	"proposal_id",
	"snapshot_type",
	"campaign_id",
	"metrics",
	"period_start",
	"period_end",
	"created_at",
}

func (r *snapshotRepository) GetByProposalAndType(proposalID string, snapshotType domain.SnapshotType) (*domain.ProposalSnapshot, error) {
	sqlQuery, args, err := squirrel.
		Select(snapshotColumns...).
		From(snapshotsTable).
		Where(squirrel.Eq{"proposal_id": proposalID, "snapshot_type": snapshotType}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot := &domain.ProposalSnapshot{}
	var metricsJSON []byte

	err = r.conn.QueryRow(sqlQuery, args...).Scan(
		&snapshot.ID,
		&snapshot.ProposalID,
		&snapshot.Type,
		&snapshot.CampaignID,
		&metricsJSON,
		&snapshot.PeriodStart,
		&snapshot.PeriodEnd,
		&snapshot.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	if err := json.Unmarshal(metricsJSON, &snapshot.Metrics); err != nil {
		return nil, fmt.Errorf("erro ao desserializar métricas: %w", err)
	}

	return snapshot, nil
}

func (r *snapshotRepository) ListByProposalID(proposalID string) ([]*domain.ProposalSnapshot, error) {
	sqlQuery, args, err := squirrel.
		Select(snapshotColumns...).
		From(snapshotsTable).
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

	snapshots := make([]*domain.ProposalSnapshot, 0)
	for rows.Next() {
		snapshot := &domain.ProposalSnapshot{}
		var metricsJSON []byte

		if err := rows.Scan(
			&snapshot.ID,
			&snapshot.ProposalID,
			&snapshot.Type,
			&snapshot.CampaignID,
			&metricsJSON,
			&snapshot.PeriodStart,
			&snapshot.PeriodEnd,
			&snapshot.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
		}

		if err := json.Unmarshal(metricsJSON, &snapshot.Metrics); err != nil {
			return nil, fmt.Errorf("erro ao desserializar métricas: %w", err)
		}

		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}
