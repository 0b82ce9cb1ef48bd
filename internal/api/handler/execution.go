package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/executing"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/middleware"
)

// ExecuteProposal aplica uma proposta aprovada na plataforma de anúncios
func ExecuteProposal(service executing.Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ExecuteProposal")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		var payload struct {
			Notes string `json:"notes"`
		}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
				return
			}
		}

		claims, _ := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)

		execution, err := service.Execute(r.Context(), id, &executing.ExecutionRequest{Notes: payload.Notes}, claims)
		if err != nil {
			// Execução parcial retorna o registro junto com o erro
			var partialErr *executing.PartialFailureError
			if errors.As(err, &partialErr) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadGateway)
				if encodeErr := json.NewEncoder(w).Encode(map[string]any{
					"code":      apiErrors.ErrPartialExecutionFailure,
					"message":   err.Error(),
					"execution": execution,
				}); encodeErr != nil {
					logrus.Error(encodeErr)
				}
				return
			}

			writeExecutionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, execution)
	}
}

// RollbackProposal reverte a execução mais recente de uma proposta
func RollbackProposal(service executing.Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RollbackProposal")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		var payload struct {
			Reason string `json:"reason"`
		}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
				return
			}
		}

		claims, _ := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)

		rollback, err := service.Rollback(r.Context(), id, payload.Reason, claims)
		if err != nil {
			writeExecutionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rollback)
	}
}

// ListProposalExecutions retorna o histórico de execuções de uma proposta
func ListProposalExecutions(service executing.Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		executions, err := service.ListExecutions(id)
		if err != nil {
			writeExecutionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"executions": executions,
			"total":      len(executions),
		})
	}
}

// writeExecutionError traduz os erros de execução e rollback para códigos da API
func writeExecutionError(w http.ResponseWriter, err error) {
	var safeguardErr *executing.SafeguardError
	if errors.As(err, &safeguardErr) {
		apiErrors.WriteError(w, apiErrors.ErrSafeguardBlocked, err.Error(), safeguardErr.Decision)
		return
	}

	switch {
	case errors.Is(err, executing.ErrProposalNotFound):
		apiErrors.WriteError(w, apiErrors.ErrProposalNotFound, "Proposta não encontrada", nil)
	case errors.Is(err, executing.ErrNotExecutable), errors.Is(err, executing.ErrNotExecuted):
		apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, err.Error(), nil)
	case errors.Is(err, executing.ErrMissingReason):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Motivo do rollback é obrigatório", nil)
	case errors.Is(err, executing.ErrNoOperations):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, executing.ErrExecutionInProgress), errors.Is(err, executing.ErrConcurrencyConflict):
		apiErrors.WriteError(w, apiErrors.ErrConcurrencyConflict, err.Error(), nil)
	case errors.Is(err, executing.ErrRollbackWindowExpired):
		apiErrors.WriteError(w, apiErrors.ErrRollbackWindowExpired, err.Error(), nil)
	case errors.Is(err, executing.ErrAlreadyRolledBack):
		apiErrors.WriteError(w, apiErrors.ErrAlreadyRolledBack, err.Error(), nil)
	case errors.Is(err, executing.ErrExternalAPIFailure):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Falha na API da plataforma de anúncios", nil)
	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar execução", nil)
	}
}
