package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App    App    `mapstructure:",squash"`
	Server Server `mapstructure:",squash"`
	Sheets Sheets `mapstructure:",squash"`
	Rates  Rates  `mapstructure:",squash"`
	Auth   Auth   `mapstructure:",squash"`
	Report Report `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Sheets aponta para as duas planilhas de origem: a exportação primária (Moloco)
// e a exportação secundária multi-fonte
type Sheets struct {
	MolocoSheetID       string `mapstructure:"moloco_sheet_id"`
	OtherSourcesSheetID string `mapstructure:"other_sources_sheet_id"`
	CredentialsFile     string `mapstructure:"google_credentials_file"`
}

type Rates struct {
	BaseURL        string        `mapstructure:"cbr_base_url"`
	CacheTTL       time.Duration `mapstructure:"rates_cache_ttl"`
	RequestTimeout time.Duration `mapstructure:"rates_request_timeout"`
}

// Auth configura o gate de senha única do dashboard. Quando PasswordHash está
// presente ele tem precedência sobre a senha em texto plano.
type Auth struct {
	DashboardPassword string        `mapstructure:"dashboard_password"`
	PasswordHash      string        `mapstructure:"dashboard_password_hash"`
	Secret            string        `mapstructure:"auth_secret"`
	TokenTTL          time.Duration `mapstructure:"auth_token_ttl"`
}

type Report struct {
	TopN              int    `mapstructure:"report_top_n"`
	Timezone          string `mapstructure:"report_timezone"`
	ReportingCurrency string `mapstructure:"reporting_currency"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("MOLOCO_SHEET_ID", "")
	viper.SetDefault("OTHER_SOURCES_SHEET_ID", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")

	viper.SetDefault("CBR_BASE_URL", "https://www.cbr.ru/scripts/XML_daily.asp")
	viper.SetDefault("RATES_CACHE_TTL", "1h") // janela de cache da cotação
	viper.SetDefault("RATES_REQUEST_TIMEOUT", "10s")

	viper.SetDefault("DASHBOARD_PASSWORD", "")
	viper.SetDefault("DASHBOARD_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "12h")

	viper.SetDefault("REPORT_TOP_N", 10)
	viper.SetDefault("REPORT_TIMEZONE", "Europe/Moscow")
	viper.SetDefault("REPORTING_CURRENCY", "RUB")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
