package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform/adclient"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/anthropic"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/chatwork"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/chatwork/chatworkclient"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/api"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/scheduler"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/chatting"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/executing"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/impact"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/proposing"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/safeguard"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	proposalRepo := repository.NewProposalRepository(pgConn)
	executionRepo := repository.NewExecutionRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	conversationRepo := repository.NewConversationRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	adClient := adclient.NewClient(cfg)
	adIntegrator := adplatform.New(cfg, adClient)

	chatworkClient := chatworkclient.NewClient(cfg)
	notifier := chatwork.New(cfg, chatworkClient)

	replier := anthropic.New(cfg)

	evaluator := safeguard.NewEvaluator(cfg.Safeguards)

	measurer := impact.NewService(proposalRepo, snapshotRepo, adIntegrator, cfg)

	executor := executing.NewService(
		proposalRepo,
		executionRepo,
		adIntegrator,
		evaluator,
		measurer, // Implementa BeforeSnapshotter
		notifier,
		cfg,
	)

	proposer := proposing.NewService(proposalRepo, campaignRepo, evaluator, notifier)

	chatter := chatting.NewService(proposalRepo, conversationRepo, replier)

	// Inicializa os agendadores
	scheduledExecutionService := scheduler.NewScheduledExecutionService(
		proposalRepo,
		executor,
		cfg,
	)

	afterSnapshotSyncService := scheduler.NewAfterSnapshotSyncService(
		executionRepo,
		measurer,
		cfg,
	)

	campaignCleanupService := scheduler.NewCampaignCleanupService(
		campaignRepo,
		adIntegrator,
		proposer,
		cfg,
	)

	// Inicia os agendadores em background
	if err := scheduledExecutionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de execuções agendadas")
	} else {
		logrus.Info("Agendador de execuções agendadas iniciado com sucesso")
	}

	if err := afterSnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots de medição")
	} else {
		logrus.Info("Agendador de snapshots de medição iniciado com sucesso")
	}

	if err := campaignCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de propostas")
	} else {
		logrus.Info("Agendador de limpeza de propostas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		proposer,
		executor,
		measurer,
		chatter,
		campaignRepo,
		scheduledExecutionService,
		afterSnapshotSyncService,
		campaignCleanupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
