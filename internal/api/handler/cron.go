package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/scheduler"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-advisor-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeScheduledExecutions = "scheduled-executions"
	CronJobTypeAfterSnapshots      = "after-snapshots"
	CronJobTypeCampaignCleanup     = "campaign-cleanup"
	CronJobTypeAll                 = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ScheduledExecutionService *scheduler.ScheduledExecutionService
	AfterSnapshotSyncService  *scheduler.AfterSnapshotSyncService
	CampaignCleanupService    *scheduler.CampaignCleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeScheduledExecutions:
			if services.ScheduledExecutionService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de execuções agendadas não disponível", nil)
				return
			}
			services.ScheduledExecutionService.TriggerManualSync()

		case CronJobTypeAfterSnapshots:
			if services.AfterSnapshotSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de snapshots de medição não disponível", nil)
				return
			}
			services.AfterSnapshotSyncService.TriggerManualSync()

		case CronJobTypeCampaignCleanup:
			if services.CampaignCleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de propostas não disponível", nil)
				return
			}
			services.CampaignCleanupService.TriggerManualSync()

		case CronJobTypeAll:
			if services.ScheduledExecutionService != nil {
				services.ScheduledExecutionService.TriggerManualSync()
			}
			if services.AfterSnapshotSyncService != nil {
				services.AfterSnapshotSyncService.TriggerManualSync()
			}
			if services.CampaignCleanupService != nil {
				services.CampaignCleanupService.TriggerManualSync()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: scheduled-executions, after-snapshots, campaign-cleanup, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - apenas administradores podem ver status das crons
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"scheduled-executions": services.ScheduledExecutionService.GetStatus(),
			"after-snapshots":      services.AfterSnapshotSyncService.GetStatus(),
			"campaign-cleanup":     services.CampaignCleanupService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
