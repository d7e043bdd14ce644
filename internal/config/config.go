// Package config предоставляет структуры и функции для загрузки конфигурации сервиса.
//
// Конфигурация читается из YAML-файла, путь к которому задаётся переменной CONFIG_PATH,
// и дополняется переменными окружения. Если CONFIG_PATH не задан, используются только
// переменные окружения. Отсутствующие значения не приводят к ошибке старта: строки
// остаются пустыми, а внешние клиенты падают уже при обращении.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string        `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"DATABASE_URL"`
	MigrationsPath          string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	CacheTTL                time.Duration `yaml:"cache_ttl" env:"CACHE_TTL" env-default:"1m"`
	Usage                   `yaml:"usage"`
	Supabase                `yaml:"supabase"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	Stripe                  `yaml:"stripe"`
	HTTPServer              `yaml:"http_server"`
	RateLimit               `yaml:"rate_limit"`
}

// Usage настройки дневной квоты бесплатных запросов
type Usage struct {
	DailyLimit int `yaml:"daily_limit" env:"USAGE_DAILY_LIMIT" env-default:"10"`
}

// Supabase настройки внешнего провайдера идентификации и хранилища.
type Supabase struct {
	URL            string `yaml:"url" env:"SUPABASE_URL"`
	ServiceRoleKey string `yaml:"service_role_key" env:"SUPABASE_SERVICE_ROLE_KEY"`
	AnonKey        string `yaml:"anon_key" env:"SUPABASE_ANON_KEY"`
	JWTSecret      string `yaml:"jwt_secret" env:"SUPABASE_JWT_SECRET"`
	// VerifyRemote включает проверку токена запросом к /auth/v1/user вместо локальной проверки подписи.
	VerifyRemote bool `yaml:"verify_remote" env:"SUPABASE_VERIFY_REMOTE" env-default:"false"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDR"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
}

// RabbitMQ настройки публикации событий использования
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"usage"`
	Retries    int           `yaml:"retries" env:"RABBITMQ_RETRIES" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"2s"`
}

// Stripe настройки платёжного провайдера
type Stripe struct {
	SecretKey    string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	PriceWeekly  string `yaml:"price_weekly" env:"STRIPE_PRICE_WEEKLY"`
	PriceMonthly string `yaml:"price_monthly" env:"STRIPE_PRICE_MONTHLY"`
	FrontendURL  string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:5173"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDR" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RateLimit параметры ограничения частоты запросов на одного клиента
type RateLimit struct {
	RPS        float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"5"`
	Burst      int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
	MaxClients int     `yaml:"max_clients" env:"RATE_LIMIT_MAX_CLIENTS" env-default:"10000"`
	// TrustProxy брать адрес клиента из X-Forwarded-For / X-Real-IP.
	// Включать только за доверенным прокси.
	TrustProxy bool `yaml:"trust_proxy" env:"RATE_LIMIT_TRUST_PROXY" env-default:"false"`
}

// Load читает конфигурацию из файла CONFIG_PATH (если задан) и переменных окружения.
func Load() (*Config, error) {
	const op = "config.Load"
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"Usage:\n"+
			"  DailyLimit: %d\n"+
			"Supabase:\n"+
			"  URL: %s\n"+
			"  ServiceRoleKey: %s\n"+
			"  VerifyRemote: %t\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"  Exchange: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.MigrationsPath,
		c.DailyLimit,
		c.Supabase.URL,
		mask(c.ServiceRoleKey),
		c.VerifyRemote,
		c.AddressRedis,
		c.DB,
		mask(c.RabbitMQ.URL),
		c.Exchange,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
