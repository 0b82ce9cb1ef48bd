package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/proposing"
)

// CampaignCleanupConfig representa a configuração do agendador de limpeza de propostas
type CampaignCleanupConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// CampaignCleanupService sincroniza o espelho local de campanhas e descarta
// propostas pendentes cuja campanha alvo não está mais ativa
type CampaignCleanupService struct {
	scheduler           *gocron.Scheduler
	config              CampaignCleanupConfig
	appConfig           *config.Config
	campaignRepo        repository.CampaignRepository
	integrator          adplatform.Integrator
	proposer            proposing.Proposer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSkippedCount    int
}

// NewCampaignCleanupService cria uma nova instância do serviço de limpeza
func NewCampaignCleanupService(
	campaignRepo repository.CampaignRepository,
	integrator adplatform.Integrator,
	proposer proposing.Proposer,
	appConfig *config.Config,
) *CampaignCleanupService {
	cleanupConfig := CampaignCleanupConfig{
		CronSchedule: appConfig.CampaignCleanupSync.CronSchedule,
		SyncEnabled:  appConfig.CampaignCleanupSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cleanupConfig.CronSchedule,
		"sync_enabled":  cleanupConfig.SyncEnabled,
	}).Info("Configuração do agendador de limpeza de propostas carregada")

	return &CampaignCleanupService{
		scheduler:    scheduler,
		config:       cleanupConfig,
		appConfig:    appConfig,
		campaignRepo: campaignRepo,
		integrator:   integrator,
		proposer:     proposer,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *CampaignCleanupService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Limpeza de propostas de campanhas inativas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de propostas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runCleanup(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de propostas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de propostas")
		s.scheduler.Stop()
	}()

	return nil
}

// runCleanup sincroniza as campanhas a partir da plataforma e em seguida
// descarta as propostas pendentes órfãs. A rodada é idempotente.
func (s *CampaignCleanupService) runCleanup(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de propostas já em andamento, ignorando")
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

	// Espelho atualizado primeiro: a limpeza decide com base nos nomes de
	// campanhas ativas sincronizados
	campaigns, err := s.integrator.ListCampaigns(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao sincronizar campanhas antes da limpeza")
		return
	}

	if err := s.campaignRepo.UpsertBatch(campaigns); err != nil {
		logrus.WithError(err).Error("Erro ao gravar espelho de campanhas")
		return
	}

	result, err := s.proposer.CleanupInactiveCampaigns(false)
	if err != nil {
		logrus.WithError(err).Error("Erro na limpeza de propostas de campanhas inativas")
		return
	}

	s.lastSkippedCount = result.Skipped

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"campaigns": len(campaigns),
		"evaluated": result.Evaluated,
		"skipped":   result.Skipped,
	}).Info("Limpeza de propostas de campanhas inativas concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma rodada de limpeza
func (s *CampaignCleanupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de propostas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de propostas de campanhas inativas")
	go s.runCleanup(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *CampaignCleanupService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_skipped_count":     s.lastSkippedCount,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
