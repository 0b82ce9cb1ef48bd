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
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/impact"
)

// AfterSnapshotSyncConfig representa a configuração do agendador de snapshots "after"
type AfterSnapshotSyncConfig struct {
	CronSchedule        string
	MeasurementDays     int
	RequestDelaySeconds int
	SyncEnabled         bool
}

// AfterSnapshotSyncService captura os snapshots de KPIs das propostas
// executadas cujo período de medição já decorreu
type AfterSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              AfterSnapshotSyncConfig
	appConfig           *config.Config
	executionRepo       repository.ExecutionRepository
	measurer            impact.Measurer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewAfterSnapshotSyncService cria uma nova instância do serviço de snapshots "after"
func NewAfterSnapshotSyncService(
	executionRepo repository.ExecutionRepository,
	measurer impact.Measurer,
	appConfig *config.Config,
) *AfterSnapshotSyncService {
	snapshotConfig := AfterSnapshotSyncConfig{
		CronSchedule:        appConfig.AfterSnapshotSync.CronSchedule,
		MeasurementDays:     appConfig.AfterSnapshotSync.MeasurementDays,
		RequestDelaySeconds: appConfig.AfterSnapshotSync.RequestDelaySecond,
		SyncEnabled:         appConfig.AfterSnapshotSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         snapshotConfig.CronSchedule,
		"measurement_days":      snapshotConfig.MeasurementDays,
		"request_delay_seconds": snapshotConfig.RequestDelaySeconds,
		"sync_enabled":          snapshotConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots de medição carregada")

	return &AfterSnapshotSyncService{
		scheduler:     scheduler,
		config:        snapshotConfig,
		appConfig:     appConfig,
		executionRepo: executionRepo,
		measurer:      measurer,
		syncRunning:   false,
	}
}

// Start inicia o agendador
func (s *AfterSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Captura de snapshots de medição desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots de medição")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.captureDueSnapshots(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar captura de snapshots: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots de medição")
		s.scheduler.Stop()
	}()

	return nil
}

// captureDueSnapshots captura o snapshot "after" das execuções cujo período de
// medição terminou e que ainda não foram medidas
func (s *AfterSnapshotSyncService) captureDueSnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Captura de snapshots de medição já em andamento, ignorando")
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

	cutoff := time.Now().UTC().AddDate(0, 0, -s.config.MeasurementDays)
	pending, err := s.executionRepo.ListNeedingAfterSnapshot(cutoff)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar execuções aguardando snapshot de medição")
		return
	}

	if len(pending) == 0 {
		return
	}

	logrus.WithField("total", len(pending)).Info("Capturando snapshots de medição pendentes")

	captured := 0
	for _, measurement := range pending {
		if err := s.measurer.CaptureAfter(ctx, measurement); err != nil {
			logrus.WithFields(logrus.Fields{
				"proposal_id":  measurement.ProposalID,
				"execution_id": measurement.ExecutionID,
				"error":        err.Error(),
			}).Error("Erro ao capturar snapshot de medição")
		} else {
			captured++
		}

		// Aguardar antes da próxima requisição para evitar sobrecarga na API
		time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"pending":  len(pending),
		"captured": captured,
	}).Info("Captura de snapshots de medição concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma captura de snapshots de medição
func (s *AfterSnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Captura de snapshots já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando captura manual de snapshots de medição")
	go s.captureDueSnapshots(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *AfterSnapshotSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"measurement_days":       s.config.MeasurementDays,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
