package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                    App                    `mapstructure:",squash"`
	Server                 Server                 `mapstructure:",squash"`
	Database               Database               `mapstructure:",squash"`
	AdPlatform             AdPlatform             `mapstructure:",squash"`
	Anthropic              Anthropic              `mapstructure:",squash"`
	Chatwork               Chatwork               `mapstructure:",squash"`
	Auth                   Auth                   `mapstructure:",squash"`
	Safeguards             Safeguards             `mapstructure:",squash"`
	ScheduledExecutionSync ScheduledExecutionSync `mapstructure:",squash"`
	AfterSnapshotSync      AfterSnapshotSync      `mapstructure:",squash"`
	CampaignCleanupSync    CampaignCleanupSync    `mapstructure:",squash"`
	SecretKey              string                 `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// AdPlatform contém as credenciais e endpoint da API externa de anúncios
type AdPlatform struct {
	BaseURL        string `mapstructure:"ad_platform_base_url"`
	CustomerID     string `mapstructure:"ad_platform_customer_id"`
	DeveloperToken string `mapstructure:"ad_platform_developer_token"`
	AccessToken    string `mapstructure:"ad_platform_access_token"`
	TimeoutSeconds int    `mapstructure:"ad_platform_timeout_seconds"`
}

type Anthropic struct {
	APIKey    string `mapstructure:"anthropic_api_key"`
	Model     string `mapstructure:"anthropic_model"`
	MaxTokens int    `mapstructure:"anthropic_max_tokens"`
}

type Chatwork struct {
	APIToken     string `mapstructure:"chatwork_api_token"`
	RoomID       string `mapstructure:"chatwork_room_id"`
	AssigneeID   string `mapstructure:"chatwork_assignee_id"`
	DashboardURL string `mapstructure:"dashboard_url"`
	Enabled      bool   `mapstructure:"chatwork_enabled"`
}

// Safeguards são os limites que delimitam o que uma aprovação automatizada
// pode fazer. Carregados uma vez na inicialização e somente leitura durante a
// vida do processo.
type Safeguards struct {
	MaxChangesPerApproval int     `mapstructure:"max_changes_per_approval"`
	MaxBudgetChangePct    float64 `mapstructure:"max_budget_change_pct"`
	RollbackWindowHours   int     `mapstructure:"rollback_window_hours"`
}

type ScheduledExecutionSync struct {
	CronSchedule string `mapstructure:"scheduled_execution_cron"`
	Enabled      bool   `mapstructure:"scheduled_execution_enabled"`
}

type AfterSnapshotSync struct {
	CronSchedule       string `mapstructure:"after_snapshot_sync_cron"`
	MeasurementDays    int    `mapstructure:"after_snapshot_measurement_days"`
	RequestDelaySecond int    `mapstructure:"after_snapshot_request_delay_seconds"`
	Enabled            bool   `mapstructure:"after_snapshot_sync_enabled"`
}

type CampaignCleanupSync struct {
	CronSchedule string `mapstructure:"campaign_cleanup_cron"`
	Enabled      bool   `mapstructure:"campaign_cleanup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaign_advisor")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AD_PLATFORM_BASE_URL", "https://ads-api.example.com/v1")
	viper.SetDefault("AD_PLATFORM_CUSTOMER_ID", "")
	viper.SetDefault("AD_PLATFORM_DEVELOPER_TOKEN", "")
	viper.SetDefault("AD_PLATFORM_ACCESS_TOKEN", "")
	viper.SetDefault("AD_PLATFORM_TIMEOUT_SECONDS", 30)

	viper.SetDefault("ANTHROPIC_API_KEY", "")
	viper.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-20250514")
	viper.SetDefault("ANTHROPIC_MAX_TOKENS", 2048)

	viper.SetDefault("CHATWORK_API_TOKEN", "")
	viper.SetDefault("CHATWORK_ROOM_ID", "")
	viper.SetDefault("CHATWORK_ASSIGNEE_ID", "")
	viper.SetDefault("CHATWORK_ENABLED", false)
	viper.SetDefault("DASHBOARD_URL", "http://localhost:3000")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Limites de safeguard para execução automatizada
	viper.SetDefault("MAX_CHANGES_PER_APPROVAL", 10)
	viper.SetDefault("MAX_BUDGET_CHANGE_PCT", 20.0)
	viper.SetDefault("ROLLBACK_WINDOW_HOURS", 24)

	// Execuções agendadas: verificar a cada minuto
	viper.SetDefault("SCHEDULED_EXECUTION_CRON", "* * * * *")
	viper.SetDefault("SCHEDULED_EXECUTION_ENABLED", true)

	// Captura de snapshots "after": diariamente às 5h
	viper.SetDefault("AFTER_SNAPSHOT_SYNC_CRON", "0 5 * * *")
	viper.SetDefault("AFTER_SNAPSHOT_MEASUREMENT_DAYS", 7)
	viper.SetDefault("AFTER_SNAPSHOT_REQUEST_DELAY_SECONDS", 2)
	viper.SetDefault("AFTER_SNAPSHOT_SYNC_ENABLED", true)

	// Limpeza de propostas de campanhas inativas: segundas às 6h
	viper.SetDefault("CAMPAIGN_CLEANUP_CRON", "0 6 * * 1")
	viper.SetDefault("CAMPAIGN_CLEANUP_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
