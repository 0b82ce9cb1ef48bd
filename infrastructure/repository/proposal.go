// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

const proposalsTable = "proposals"

// ErrStatusConflict é retornado quando a atualização condicional de status não
// afeta nenhuma linha: o status atual da proposta não era o esperado (outra
// ação concorrente venceu a corrida)
var ErrStatusConflict = errors.New("proposal status changed concurrently")

type ProposalRepository interface {
	CreateBatch(proposals []*domain.Proposal) error
	GetByID(id string) (*domain.Proposal, error)
	List(filters *domain.ProposalFilters) ([]*domain.Proposal, error)
	ListPendingWithTarget() ([]*domain.Proposal, error)
	ListDueScheduled(now time.Time) ([]*domain.Proposal, error)
	UpdateStatusIf(id string, expected, next domain.ProposalStatus) error
	ReopenAfterRollback(id string) error
	UpdateApproval(id string, scheduleAt *time.Time, steps *domain.ActionSteps) error
	UpdateActionSteps(id string, steps *domain.ActionSteps) error
}

type proposalRepository struct {
	conn *postgres.Connection
}

func NewProposalRepository(conn *postgres.Connection) ProposalRepository {
	return &proposalRepository{
		conn: conn,
	}
}

var proposalColumns = []string{
	"id",
	"report_id",
	"category",
	"priority",
	"title",
	"description",
	"expected_effect",
	"action_steps",
	"target_campaign",
	"target_ad_group",
	"status",
	"schedule_at",
	"created_at",
	"updated_at",
}

func (r *proposalRepository) CreateBatch(proposals []*domain.Proposal) error {
	if len(proposals) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(proposalsTable).
		Columns(
			"id",
			"report_id",
			"category",
			"priority",
			"title",
			"description",
			"expected_effect",
			"action_steps",
			"target_campaign",
			"target_ad_group",
			"status",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, p := range proposals {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Status == "" {
			p.Status = domain.ProposalStatusPending
		}

		stepsJSON, err := marshalActionSteps(p.ActionSteps)
		if err != nil {
			return fmt.Errorf("erro ao serializar action_steps: %w", err)
		}

		query = query.Values(
			p.ID,
			p.ReportID,
			p.Category,
			p.Priority,
			p.Title,
			p.Description,
			p.ExpectedEffect,
			stepsJSON,
			p.TargetCampaign,
			p.TargetAdGroup,
			p.Status,
		)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir propostas: %w", err)
	}

	return nil
}

func (r *proposalRepository) GetByID(id string) (*domain.Proposal, error) {
	query, args, err := squirrel.
		Select(proposalColumns...).
		From(proposalsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	proposal, err := scanProposalRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear proposta: %w", err)
	}

	return proposal, nil
}

func (r *proposalRepository) List(filters *domain.ProposalFilters) ([]*domain.Proposal, error) {
	queryBuilder := squirrel.
		Select(proposalColumns...).
		From(proposalsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.Status != nil {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"status": *filters.Status})
		}
		if filters.Category != nil {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"category": *filters.Category})
		}
		if filters.Priority != nil {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"priority": *filters.Priority})
		}
		if filters.ReportID != nil {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"report_id": *filters.ReportID})
		}
		if filters.CreatedFrom != nil {
			queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"created_at": *filters.CreatedFrom})
		}
		if filters.CreatedTo != nil {
			queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"created_at": *filters.CreatedTo})
		}
		if filters.Limit > 0 {
			queryBuilder = queryBuilder.Limit(filters.Limit)
		}
		if filters.Offset > 0 {
			queryBuilder = queryBuilder.Offset(filters.Offset)
		}
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryProposals(sqlQuery, args...)
}

// ListPendingWithTarget retorna propostas pendentes com campanha alvo
// definida, candidatas à limpeza automática
func (r *proposalRepository) ListPendingWithTarget() ([]*domain.Proposal, error) {
	sqlQuery, args, err := squirrel.
		Select(proposalColumns...).
		From(proposalsTable).
		Where(squirrel.Eq{"status": domain.ProposalStatusPending}).
		Where(squirrel.NotEq{"target_campaign": nil}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryProposals(sqlQuery, args...)
}

// ListDueScheduled retorna propostas aprovadas com horário de execução
// agendado já vencido
func (r *proposalRepository) ListDueScheduled(now time.Time) ([]*domain.Proposal, error) {
	sqlQuery, args, err := squirrel.
		Select(proposalColumns...).
		From(proposalsTable).
		Where(squirrel.Eq{"status": domain.ProposalStatusApproved}).
		Where(squirrel.NotEq{"schedule_at": nil}).
		Where(squirrel.LtOrEq{"schedule_at": now}).
		OrderBy("schedule_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryProposals(sqlQuery, args...)
}

// UpdateStatusIf aplica a transição de status de forma condicional
// (compare-and-swap sobre o status esperado). Retorna ErrStatusConflict se a
// proposta não estava mais no status esperado.
func (r *proposalRepository) UpdateStatusIf(id string, expected, next domain.ProposalStatus) error {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Update(proposalsTable).
		Set("status", next).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id, "status": expected}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	if affected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// ReopenAfterRollback reabre a proposta executada como aprovada e limpa o
// agendamento: a reexecução passa a depender de nova ação do operador, em vez
// de ser recapturada pelo job de execuções agendadas. Mesmo CAS das demais
// transições, condicionado ao status executed.
func (r *proposalRepository) ReopenAfterRollback(id string) error {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Update(proposalsTable).
		Set("status", domain.ProposalStatusApproved).
		Set("schedule_at", nil).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id, "status": domain.ProposalStatusExecuted}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de reabertura: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao reabrir proposta: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	if affected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// UpdateApproval grava aprovação: status, agendamento opcional e action_steps
// com histórico de edição, condicionado ao status pending
func (r *proposalRepository) UpdateApproval(id string, scheduleAt *time.Time, steps *domain.ActionSteps) error {
	stepsJSON, err := marshalActionSteps(steps)
	if err != nil {
		return fmt.Errorf("erro ao serializar action_steps: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Update(proposalsTable).
		Set("status", domain.ProposalStatusApproved).
		Set("schedule_at", scheduleAt).
		Set("action_steps", stepsJSON).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id, "status": domain.ProposalStatusPending}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de aprovação: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao gravar aprovação: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}

	if affected == 0 {
		return ErrStatusConflict
	}

	return nil
}

func (r *proposalRepository) UpdateActionSteps(id string, steps *domain.ActionSteps) error {
	stepsJSON, err := marshalActionSteps(steps)
	if err != nil {
		return fmt.Errorf("erro ao serializar action_steps: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Update(proposalsTable).
		Set("action_steps", stepsJSON).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar action_steps: %w", err)
	}

	return nil
}

func (r *proposalRepository) queryProposals(sqlQuery string, args ...interface{}) ([]*domain.Proposal, error) {
	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	proposals := make([]*domain.Proposal, 0)
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear proposta: %w", err)
		}
		proposals = append(proposals, proposal)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return proposals, nil
}

func marshalActionSteps(steps *domain.ActionSteps) ([]byte, error) {
	if steps == nil {
		return nil, nil
	}
	return json.Marshal(steps)
}

func scanProposal(rows *sql.Rows) (*domain.Proposal, error) {
	p := &domain.Proposal{}
	var stepsJSON []byte

	err := rows.Scan(
		&p.ID,
		&p.ReportID,
		&p.Category,
		&p.Priority,
		&p.Title,
		&p.Description,
		&p.ExpectedEffect,
		&stepsJSON,
		&p.TargetCampaign,
		&p.TargetAdGroup,
		&p.Status,
		&p.ScheduleAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalActionSteps(stepsJSON, p); err != nil {
		return nil, err
	}

	return p, nil
}

func scanProposalRow(row *sql.Row) (*domain.Proposal, error) {
	p := &domain.Proposal{}
	var stepsJSON []byte

	err := row.Scan(
		&p.ID,
		&p.ReportID,
		&p.Category,
		&p.Priority,
		&p.Title,
		&p.Description,
		&p.ExpectedEffect,
		&stepsJSON,
		&p.TargetCampaign,
		&p.TargetAdGroup,
		&p.Status,
		&p.ScheduleAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalActionSteps(stepsJSON, p); err != nil {
		return nil, err
	}

	return p, nil
}

func unmarshalActionSteps(stepsJSON []byte, p *domain.Proposal) error {
	if len(stepsJSON) == 0 {
		return nil
	}

	steps := &domain.ActionSteps{}
	if err := json.Unmarshal(stepsJSON, steps); err != nil {
		return fmt.Errorf("erro ao desserializar action_steps: %w", err)
	}
	p.ActionSteps = steps

	return nil
}
