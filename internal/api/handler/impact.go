package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/impact"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
)

// GetProposalImpact retorna o relatório de impacto da proposta, comparando os
// snapshots de KPIs antes e depois da execução
func GetProposalImpact(service impact.Measurer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		report, err := service.GetImpact(id)
		if err != nil {
			switch {
			case errors.Is(err, impact.ErrProposalNotFound):
				apiErrors.WriteError(w, apiErrors.ErrProposalNotFound, "Proposta não encontrada", nil)
			case errors.Is(err, impact.ErrNoTargetCampaign):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Proposta não possui campanha alvo", nil)
			default:
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular impacto", nil)
			}
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
