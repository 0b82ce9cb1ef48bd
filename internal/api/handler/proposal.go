package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/executing"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/proposing"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/middleware"
	"github.com/vfg2006/campaign-advisor-api/pkg/utils"
)

// ListProposals lista propostas com filtros opcionais por query string
func ListProposals(service proposing.Proposer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseProposalFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		proposals, err := service.ListProposals(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar propostas", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"proposals": proposals,
			"total":     len(proposals),
		})
	}
}

// GetProposal retorna uma proposta por ID
func GetProposal(service proposing.Proposer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		proposal, err := service.GetProposal(id)
		if err != nil {
			if errors.Is(err, proposing.ErrProposalNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrProposalNotFound, "Proposta não encontrada", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar proposta", nil)
			return
		}

		writeJSON(w, http.StatusOK, proposal)
	}
}

// ImportProposals registra um lote de propostas geradas pela análise
func ImportProposals(service proposing.Proposer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ImportProposals")

		var payload struct {
			Proposals []*domain.Proposal `json:"proposals"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if len(payload.Proposals) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Lista de propostas não pode estar vazia", nil)
			return
		}

		if err := service.ImportProposals(payload.Proposals); err != nil {
			var validationErr *domain.ValidationError
			if errors.As(err, &validationErr) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, validationErr.Error(), nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar propostas", nil)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"imported": len(payload.Proposals),
		})
	}
}

// ApproveProposal aprova uma proposta pendente, com edição opcional de valores
// e agendamento de execução. Sem agendamento, a execução é tentada na mesma
// chamada; falha na execução mantém a proposta aprovada e é reportada no
// campo execution_error, nunca engolida.
func ApproveProposal(service proposing.Proposer, executor executing.Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ApproveProposal")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		var req proposing.ApprovalRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
				return
			}
		}

		claims, _ := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)

		proposal, decision, err := service.Approve(id, &req, claims)
		if err != nil {
			writeProposalError(w, err, decision)
			return
		}

		response := map[string]any{
			"proposal":  proposal,
			"safeguard": decision,
		}

		if proposal.ScheduleAt == nil {
			execution, execErr := executor.Execute(r.Context(), id, nil, claims)
			if execution != nil {
				response["execution"] = execution
			}
			if execErr != nil {
				logrus.WithError(execErr).WithField("proposal_id", id).
					Warn("proposta aprovada, mas a execução imediata falhou")
				response["execution_error"] = execErr.Error()
			} else {
				proposal.Status = domain.ProposalStatusExecuted
			}
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// RejectProposal rejeita uma proposta pendente com motivo obrigatório
func RejectProposal(service proposing.Proposer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RejectProposal")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		var payload struct {
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		claims, _ := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)

		if err := service.Reject(id, payload.Reason, claims); err != nil {
			if errors.Is(err, proposing.ErrMissingReason) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Motivo de rejeição é obrigatório", nil)
				return
			}
			writeProposalError(w, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status": domain.ProposalStatusRejected,
		})
	}
}

// SkipProposal descarta uma proposta pendente
func SkipProposal(service proposing.Proposer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		if err := service.Skip(id); err != nil {
			writeProposalError(w, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status": domain.ProposalStatusSkipped,
		})
	}
}

// CheckProposalSafeguards avalia os safeguards da proposta sem alterá-la
func CheckProposalSafeguards(service proposing.Proposer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		decision, err := service.CheckSafeguards(id)
		if err != nil {
			writeProposalError(w, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, decision)
	}
}

// CleanupProposals descarta propostas pendentes de campanhas inativas.
// Com dry_run, retorna o que seria descartado sem alterar nada.
func CleanupProposals(service proposing.Proposer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CleanupProposals")

		var payload struct {
			DryRun bool `json:"dry_run"`
		}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
				return
			}
		}

		result, err := service.CleanupInactiveCampaigns(payload.DryRun)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro na limpeza de propostas", nil)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// writeProposalError traduz os erros do ciclo de vida para códigos da API
func writeProposalError(w http.ResponseWriter, err error, decision any) {
	var safeguardErr *proposing.SafeguardError
	if errors.As(err, &safeguardErr) {
		apiErrors.WriteError(w, apiErrors.ErrSafeguardBlocked, err.Error(), safeguardErr.Decision)
		return
	}

	switch {
	case errors.Is(err, proposing.ErrProposalNotFound):
		apiErrors.WriteError(w, apiErrors.ErrProposalNotFound, "Proposta não encontrada", nil)
	case errors.Is(err, proposing.ErrInvalidTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, err.Error(), nil)
	case errors.Is(err, proposing.ErrConcurrencyConflict):
		apiErrors.WriteError(w, apiErrors.ErrConcurrencyConflict, "Proposta alterada por ação concorrente", nil)
	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar proposta", nil)
	}
}

func parseProposalFilters(r *http.Request) (*domain.ProposalFilters, error) {
	query := r.URL.Query()
	filters := &domain.ProposalFilters{}

	if value := query.Get("status"); value != "" {
		status := domain.ProposalStatus(value)
		if !status.Valid() {
			return nil, &domain.ValidationError{Field: "status", Value: value}
		}
		filters.Status = &status
	}

	if value := query.Get("category"); value != "" {
		category := domain.ProposalCategory(value)
		if !category.Valid() {
			return nil, &domain.ValidationError{Field: "category", Value: value}
		}
		filters.Category = &category
	}

	if value := query.Get("priority"); value != "" {
		priority := domain.ProposalPriority(value)
		if !priority.Valid() {
			return nil, &domain.ValidationError{Field: "priority", Value: value}
		}
		filters.Priority = &priority
	}

	if value := query.Get("report_id"); value != "" {
		filters.ReportID = &value
	}

	if value := query.Get("created_from"); value != "" {
		date, err := utils.ParseDate(value)
		if err != nil {
			return nil, &domain.ValidationError{Field: "created_from", Value: value}
		}
		filters.CreatedFrom = date
	}

	if value := query.Get("created_to"); value != "" {
		date, err := utils.ParseDate(value)
		if err != nil {
			return nil, &domain.ValidationError{Field: "created_to", Value: value}
		}
		filters.CreatedTo = date
	}

	if value := query.Get("limit"); value != "" {
		limit, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "limit", Value: value}
		}
		filters.Limit = limit
	}

	if value := query.Get("offset"); value != "" {
		offset, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "offset", Value: value}
		}
		filters.Offset = offset
	}

	return filters, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Error(err)
	}
}
