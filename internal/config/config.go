package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Model     Model     `mapstructure:",squash"`
	Labels    Labels    `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Reference Reference `mapstructure:",squash"`
	Console   Console   `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host               string        `mapstructure:"host"`
	Port               string        `mapstructure:"port"`
	ReadHeaderTimeout  time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	CorsAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

// Model aponta para o diretório do artefato treinado
type Model struct {
	Dir string `mapstructure:"model_dir"`
}

// Labels é a tabela de rótulos aplicada à probabilidade de perda. Cada item
// tem o formato "limite:rótulo"; abaixo de todos os limites vale Floor.
type Labels struct {
	Thresholds []string `mapstructure:"label_thresholds"`
	Floor      string   `mapstructure:"label_floor"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Reference descreve de onde o fit offline lê o conjunto de referência
type Reference struct {
	Table   string `mapstructure:"reference_table"`
	CSVPath string `mapstructure:"reference_csv"`
}

// Console configura o cliente do console do operador
type Console struct {
	APIURL         string `mapstructure:"api_url"`
	APIToken       string `mapstructure:"api_token"`
	TimeoutSeconds int    `mapstructure:"api_timeout_seconds"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("READ_HEADER_TIMEOUT", "2s")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8501"})

	viper.SetDefault("MODEL_DIR", "models")

	// Limites empíricos do artefato atual; a distribuição de probabilidades é
	// bimodal, por isso os intervalos não são regulares
	viper.SetDefault("LABEL_THRESHOLDS", []string{"0.999:very high", "0.0007:medium", "0.0001:low"})
	viper.SetDefault("LABEL_FLOOR", "very low")

	viper.SetDefault("AUTH_SECRET", "") // vazio desabilita a autenticação
	viper.SetDefault("AUTH_TOKEN_TTL", "720h")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/crm?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REFERENCE_TABLE", "sales_pipeline")
	viper.SetDefault("REFERENCE_CSV", "data/sales_pipeline.csv")

	viper.SetDefault("API_URL", "http://127.0.0.1:8000/predict")
	viper.SetDefault("API_TOKEN", "")
	viper.SetDefault("API_TIMEOUT_SECONDS", 30)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
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

	if config.Console.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("config: API_TIMEOUT_SECONDS must be positive, got %d", config.Console.TimeoutSeconds)
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

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
