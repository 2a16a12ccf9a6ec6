package config

import (
	"fmt"
	"time"
)

type DatabaseConfig struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"required"`
	Username        string `mapstructure:"username" validate:"required"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// MailboxConfig describes the IMAP mailbox the listener watches.
type MailboxConfig struct {
	Host        string        `mapstructure:"host" validate:"required"`
	Port        int           `mapstructure:"port" validate:"required"`
	Username    string        `mapstructure:"username" validate:"required"`
	Password    string        `mapstructure:"password" validate:"required"`
	Folder      string        `mapstructure:"folder"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

func (m *MailboxConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// IngestionConfig carries the ticket-generation business rules.
type IngestionConfig struct {
	InboxAddress   string        `mapstructure:"inbox_address" validate:"required,email"`
	AllowedSenders []string      `mapstructure:"allowed_senders"`
	AllowedDomains []string      `mapstructure:"allowed_domains"`
	WatermarkPath  string        `mapstructure:"watermark_path" validate:"required"`
	BackoffInitial time.Duration `mapstructure:"backoff_initial"`
	BackoffMax     time.Duration `mapstructure:"backoff_max"`
}

// SLAConfig carries per-priority deadlines and the warning window ratio.
type SLAConfig struct {
	HighDeadline   time.Duration `mapstructure:"high_deadline"`
	MediumDeadline time.Duration `mapstructure:"medium_deadline"`
	LowDeadline    time.Duration `mapstructure:"low_deadline"`
	WarningRatio   float64       `mapstructure:"warning_ratio" validate:"gt=0,lt=1"`
	ScanPeriod     time.Duration `mapstructure:"scan_period" validate:"required"`
}

type WebhookConfig struct {
	URL     string        `mapstructure:"url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AutoReplyConfig controls the ticket-received confirmation email.
type AutoReplyConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	ReplyTo      string `mapstructure:"reply_to"`
}
