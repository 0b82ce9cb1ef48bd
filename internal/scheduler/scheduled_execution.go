package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/executing"
)

// atraso a partir do qual a execução agendada recebe nota de despacho tardio
const delayNoteThreshold = 10 * time.Minute

// ScheduledExecutionConfig representa a configuração do agendador de execuções agendadas
type ScheduledExecutionConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// ScheduledExecutionService despacha propostas aprovadas cujo horário de
// execução agendado já venceu
type ScheduledExecutionService struct {
	scheduler           *gocron.Scheduler
	config              ScheduledExecutionConfig
	appConfig           *config.Config
	proposalRepo        repository.ProposalRepository
	executor            executing.Executor
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewScheduledExecutionService cria uma nova instância do serviço de execuções agendadas
func NewScheduledExecutionService(
	proposalRepo repository.ProposalRepository,
	executor executing.Executor,
	appConfig *config.Config,
) *ScheduledExecutionService {
	executionConfig := ScheduledExecutionConfig{
		CronSchedule: appConfig.ScheduledExecutionSync.CronSchedule,
		SyncEnabled:  appConfig.ScheduledExecutionSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": executionConfig.CronSchedule,
		"sync_enabled":  executionConfig.SyncEnabled,
	}).Info("Configuração do agendador de execuções agendadas carregada")

	return &ScheduledExecutionService{
		scheduler:    scheduler,
		config:       executionConfig,
		appConfig:    appConfig,
		proposalRepo: proposalRepo,
		executor:     executor,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *ScheduledExecutionService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Despacho de execuções agendadas desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de execuções agendadas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.dispatchDueExecutions(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar despacho de execuções: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de execuções agendadas")
		s.scheduler.Stop()
	}()

	return nil
}

// dispatchDueExecutions executa todas as propostas aprovadas com agendamento
// vencido. Execuções agendadas rodam com identidade de sistema.
func (s *ScheduledExecutionService) dispatchDueExecutions(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Despacho de execuções agendadas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	now := time.Now().UTC()
	due, err := s.proposalRepo.ListDueScheduled(now)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar propostas com execução agendada vencida")
		return
	}

	if len(due) == 0 {
		return
	}

	logrus.WithField("total", len(due)).Info("Despachando execuções agendadas vencidas")

	executed := 0
	for _, proposal := range due {
		req := &executing.ExecutionRequest{
			Notes: "Execução agendada despachada automaticamente",
		}

		// Nota de atraso quando o despacho ficou muito além do horário
		// agendado (processo parado, fila acumulada)
		if proposal.ScheduleAt != nil {
			if delay := now.Sub(*proposal.ScheduleAt); delay > delayNoteThreshold {
				req.DelayNote = fmt.Sprintf(
					"Execução agendada para %s despachada com %s de atraso",
					proposal.ScheduleAt.Format(time.RFC3339), delay.Round(time.Minute),
				)
			}
		}

		// Claims nulas: executed_by registra "system"
		if _, err := s.executor.Execute(ctx, proposal.ID, req, nil); err != nil {
			logrus.WithFields(logrus.Fields{
				"proposal_id": proposal.ID,
				"error":       err.Error(),
			}).Error("Erro ao despachar execução agendada")
			continue
		}
		executed++
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"due":      len(due),
		"executed": executed,
	}).Info("Despacho de execuções agendadas concluído")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente um despacho de execuções agendadas
func (s *ScheduledExecutionService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Despacho de execuções agendadas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando despacho manual de execuções agendadas")
	go s.dispatchDueExecutions(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *ScheduledExecutionService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
