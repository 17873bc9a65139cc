package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type CommissionConfig struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	CommissionDB `yaml:"commission_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	Redis        RedisConfig  `yaml:"redis"`
	Plan         PlanConfig   `yaml:"plan"`
	Payout       PayoutConfig `yaml:"payout"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type CommissionDB struct {
	Dsn            string `yaml:"dsn" env:"COMMISSION_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
	MaxOpenConns   int    `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns   int    `yaml:"max_idle_conns" env-default:"5"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"text"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Host            string `yaml:"host" env:"KAFKA_HOST"`
	Port            string `yaml:"port" env:"KAFKA_PORT"`
	Username        string `yaml:"username" env:"KAFKA_USERNAME"`
	Password        string `yaml:"password" env:"KAFKA_PASSWORD"`
	Mechanism       string `yaml:"mechanism" env:"KAFKA_MECHANISM"`
	TLSEnabled      bool   `yaml:"tls_enabled" env:"KAFKA_TLS_ENABLED"`
	PurchaseTopic   string `yaml:"purchase_topic" env-default:"purchase-events"`
	CommissionTopic string `yaml:"commission_topic" env-default:"commission-events"`
	GroupID         string `yaml:"group_id" env-default:"commission-service"`
}

// RedisConfig enables the distributed tree lock. An empty address falls back to
// the in-process lock, which is only safe with a single instance.
type RedisConfig struct {
	Addr        string        `yaml:"addr" env:"REDIS_ADDR"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db" env:"REDIS_DB"`
	LockTTL     time.Duration `yaml:"lock_ttl" env-default:"30s"`
	LockTimeout time.Duration `yaml:"lock_timeout" env-default:"10s"`
}

type PlanConfig struct {
	TimeZone             string             `yaml:"time_zone" env:"PLAN_TIME_ZONE" env-default:"UTC"`
	MaxCommissionsPerDay int64              `yaml:"max_commissions_per_day" env-default:"25"`
	MentorL1Percent      float64            `yaml:"mentor_l1_percent" env-default:"10"`
	MentorL2Percent      float64            `yaml:"mentor_l2_percent" env-default:"40"`
	Tiers                map[string]TierCfg `yaml:"tiers"`
	SeedDefaults         bool               `yaml:"seed_defaults" env-default:"true"`
}

// TierCfg overrides one row of the tier table, keyed by tier name.
type TierCfg struct {
	Cost float64 `yaml:"cost"`
	Rate float64 `yaml:"rate"`
}

type PayoutConfig struct {
	MinAmount        float64       `yaml:"min_amount" env-default:"500"`
	TaxPercent       float64       `yaml:"tax_percent" env-default:"5"`
	PlatformPercent  float64       `yaml:"platform_percent" env-default:"5"`
	BatchSize        int           `yaml:"batch_size" env-default:"100"`
	WeeklyInterval   time.Duration `yaml:"weekly_interval" env-default:"168h"`
	MonthlyInterval  time.Duration `yaml:"monthly_interval" env-default:"24h"`
	RewardInterval   time.Duration `yaml:"reward_interval" env-default:"168h"`
	NotifierURL      string        `yaml:"notifier_url" env:"PAYOUT_NOTIFIER_URL"`
	NotifierTimeout  time.Duration `yaml:"notifier_timeout" env-default:"5s"`
	SchedulerEnabled bool          `yaml:"scheduler_enabled" env-default:"true"`
}

func MustLoad() *CommissionConfig {

	// Processing env config variable and file
	configPath := os.Getenv("COMMISSION_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("COMMISSION_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg CommissionConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
