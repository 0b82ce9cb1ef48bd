package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
)

// ListCampaigns retorna o espelho local de campanhas sincronizado da plataforma
func ListCampaigns(campaignRepo repository.CampaignRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaigns, err := campaignRepo.ListAll()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar campanhas", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"campaigns": campaigns,
			"total":     len(campaigns),
		})
	}
}
