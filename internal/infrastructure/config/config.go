package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	sharedConfig "github.com/leaders-st/helpdesk/internal/shared/config"
)

type Config struct {
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Mailbox   sharedConfig.MailboxConfig   `mapstructure:"mailbox"`
	Ingestion sharedConfig.IngestionConfig `mapstructure:"ingestion"`
	SLA       sharedConfig.SLAConfig       `mapstructure:"sla"`
	Webhook   sharedConfig.WebhookConfig   `mapstructure:"webhook"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	AutoReply sharedConfig.AutoReplyConfig `mapstructure:"auto_reply"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads the config file and environment variables, applies defaults and
// validates the result. A validation failure here is the only configuration
// problem allowed to halt the process.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("HELPDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "helpdesk_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Mailbox defaults
	viper.SetDefault("mailbox.port", 993)
	viper.SetDefault("mailbox.folder", "INBOX")
	viper.SetDefault("mailbox.idle_timeout", "5m")
	viper.SetDefault("mailbox.dial_timeout", "30s")

	// Ingestion defaults
	viper.SetDefault("ingestion.inbox_address", "clientsupport@leaders.st")
	viper.SetDefault("ingestion.watermark_path", "data/last_uid.txt")
	viper.SetDefault("ingestion.backoff_initial", "5s")
	viper.SetDefault("ingestion.backoff_max", "120s")

	// SLA defaults: 24h/48h/72h deadlines, warning at 20% remaining
	viper.SetDefault("sla.high_deadline", "24h")
	viper.SetDefault("sla.medium_deadline", "48h")
	viper.SetDefault("sla.low_deadline", "72h")
	viper.SetDefault("sla.warning_ratio", 0.2)
	viper.SetDefault("sla.scan_period", "10m")

	// Webhook defaults
	viper.SetDefault("webhook.url", "")
	viper.SetDefault("webhook.timeout", "10s")

	// Redis defaults (dedup fast path, optional)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Auto-reply defaults
	viper.SetDefault("auto_reply.enabled", false)
	viper.SetDefault("auto_reply.smtp_host", "localhost")
	viper.SetDefault("auto_reply.smtp_port", 587)
	viper.SetDefault("auto_reply.from_address", "clientsupport@leaders.st")
	viper.SetDefault("auto_reply.from_name", "Client Support")
}
