package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

const (
	executionsTable = "proposal_executions"
	rollbacksTable  = "proposal_rollbacks"
)

type ExecutionRepository interface {
	Create(execution *domain.ProposalExecution) error
	LatestByProposalID(proposalID string) (*domain.ProposalExecution, error)
	ListByProposalID(proposalID string) ([]*domain.ProposalExecution, error)
	MarkRolledBack(executionID string) error
	CreateRollback(rollback *domain.ProposalRollback) error
	ListNeedingAfterSnapshot(executedBefore time.Time) ([]*domain.PendingMeasurement, error)
}

type executionRepository struct {
	conn *postgres.Connection
}

func NewExecutionRepository(conn *postgres.Connection) ExecutionRepository {
	return &executionRepository{
		conn: conn,
	}
}

func (r *executionRepository) Create(execution *domain.ProposalExecution) error {
	if execution.ID == "" {
		execution.ID = uuid.NewString()
	}

	changesJSON, err := marshalActualChanges(execution.ActualChanges)
	if err != nil {
		return fmt.Errorf("erro ao serializar actual_changes: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert(executionsTable).
		Columns(
			"id",
			"proposal_id",
			"executed_at",
			"executed_by",
			"execution_notes",
			"actual_changes",
			"rolled_back",
		).
		Values(
			execution.ID,
			execution.ProposalID,
			execution.ExecutedAt,
			execution.ExecutedBy,
			execution.ExecutionNotes,
			changesJSON,
			execution.RolledBack,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir execução: %w", err)
	}

	return nil
}

var executionColumns = []string{
	"id",
	"proposal_id",
	"executed_at",
	"executed_by",
	"execution_notes",
	"actual_changes",
	"rolled_back",
	"created_at",
}

// LatestByProposalID retorna a execução mais recente de uma proposta, ou nil
// quando a proposta nunca foi executada
func (r *executionRepository) LatestByProposalID(proposalID string) (*domain.ProposalExecution, error) {
	sqlQuery, args, err := squirrel.
		Select(executionColumns...).
		From(executionsTable).
		Where(squirrel.Eq{"proposal_id": proposalID}).
		OrderBy("executed_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(sqlQuery, args...)
	execution, err := scanExecutionRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear execução: %w", err)
	}

	return execution, nil
}

func (r *executionRepository) ListByProposalID(proposalID string) ([]*domain.ProposalExecution, error) {
	sqlQuery, args, err := squirrel.
		Select(executionColumns...).
		From(executionsTable).
		Where(squirrel.Eq{"proposal_id": proposalID}).
		OrderBy("executed_at DESC").
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

	executions := make([]*domain.ProposalExecution, 0)
	for rows.Next() {
		execution := &domain.ProposalExecution{}
		var changesJSON []byte

		if err := rows.Scan(
			&execution.ID,
			&execution.ProposalID,
			&execution.ExecutedAt,
			&execution.ExecutedBy,
			&execution.ExecutionNotes,
			&changesJSON,
			&execution.RolledBack,
			&execution.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear execução: %w", err)
		}

		if err := unmarshalActualChanges(changesJSON, execution); err != nil {
			return nil, err
		}

		executions = append(executions, execution)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return executions, nil
}

func (r *executionRepository) MarkRolledBack(executionID string) error {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Update(executionsTable).
		Set("rolled_back", true).
		Where(squirrel.Eq{"id": executionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao marcar rollback: %w", err)
	}

	return nil
}

func (r *executionRepository) CreateRollback(rollback *domain.ProposalRollback) error {
	if rollback.ID == "" {
		rollback.ID = uuid.NewString()
	}

	var resultsJSON []byte
	if len(rollback.Results) > 0 {
		var err error
		resultsJSON, err = json.Marshal(rollback.Results)
		if err != nil {
			return fmt.Errorf("erro ao serializar resultados do rollback: %w", err)
		}
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert(rollbacksTable).
		Columns("id", "proposal_id", "execution_id", "reason", "results", "rolled_back_at", "rolled_back_by").
		Values(
			rollback.ID,
			rollback.ProposalID,
			rollback.ExecutionID,
			rollback.Reason,
			resultsJSON,
			rollback.RolledBackAt,
			rollback.RolledBackBy,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir rollback: %w", err)
	}

	return nil
}

// ListNeedingAfterSnapshot retorna execuções não revertidas, executadas antes
// do corte e ainda sem snapshot "after" da proposta correspondente
func (r *executionRepository) ListNeedingAfterSnapshot(executedBefore time.Time) ([]*domain.PendingMeasurement, error) {
	sqlQuery, args, err := squirrel.
		Select("e.proposal_id", "e.id", "e.executed_at", "p.target_campaign").
		From(executionsTable+" e").
		Join(proposalsTable+" p ON p.id = e.proposal_id").
		Where(squirrel.Eq{"e.rolled_back": false}).
		Where(squirrel.Eq{"p.status": domain.ProposalStatusExecuted}).
		Where(squirrel.LtOrEq{"e.executed_at": executedBefore}).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM "+snapshotsTable+" s WHERE s.proposal_id = e.proposal_id AND s.snapshot_type = ?)",
			domain.SnapshotAfter,
		)).
		OrderBy("e.executed_at ASC").
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

	pending := make([]*domain.PendingMeasurement, 0)
	for rows.Next() {
		m := &domain.PendingMeasurement{}
		if err := rows.Scan(&m.ProposalID, &m.ExecutionID, &m.ExecutedAt, &m.TargetCampaign); err != nil {
			return nil, fmt.Errorf("erro ao escanear medição pendente: %w", err)
		}
		pending = append(pending, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return pending, nil
}

func marshalActualChanges(changes *domain.ActualChanges) ([]byte, error) {
	if changes == nil {
		return nil, nil
	}
	return json.Marshal(changes)
}

func scanExecutionRow(row *sql.Row) (*domain.ProposalExecution, error) {
	execution := &domain.ProposalExecution{}
	var changesJSON []byte

	err := row.Scan(
		&execution.ID,
		&execution.ProposalID,
		&execution.ExecutedAt,
		&execution.ExecutedBy,
		&execution.ExecutionNotes,
		&changesJSON,
		&execution.RolledBack,
		&execution.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalActualChanges(changesJSON, execution); err != nil {
		return nil, err
	}

	return execution, nil
}

func unmarshalActualChanges(changesJSON []byte, execution *domain.ProposalExecution) error {
	if len(changesJSON) == 0 {
		return nil
	}

	changes := &domain.ActualChanges{}
	if err := json.Unmarshal(changesJSON, changes); err != nil {
		return fmt.Errorf("erro ao desserializar actual_changes: %w", err)
	}
	execution.ActualChanges = changes

	return nil
}
