package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	VendorService VendorServiceConfig `toml:"vendor_service"`
	Billing       BillingConfig       `toml:"billing"`
	Loyalty       LoyaltyConfig       `toml:"loyalty"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к базе данных
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// VendorServiceConfig настройки клиента каталога салонов
type VendorServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BillingConfig параметры расчета комиссии платформы
// Ставка задается явно в конфиге, а не зашивается в код
type BillingConfig struct {
	CommissionRate float64 `toml:"commission_rate"`
}

// LoyaltyConfig параметры программы лояльности
type LoyaltyConfig struct {
	PointsPerCurrencyUnit      float64 `toml:"points_per_currency_unit"`
	RedemptionRate             float64 `toml:"redemption_rate"`
	MinRedemptionPoints        int     `toml:"min_redemption_points"`
	ExpiryDays                 int     `toml:"expiry_days"`
	ExpirySweepIntervalMinutes int     `toml:"expiry_sweep_interval_minutes"`
}

// Load загружает конфигурацию из TOML файла и заполняет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Billing.CommissionRate == 0 {
		c.Billing.CommissionRate = domain.DefaultCommissionRate
	}
	if c.Loyalty.PointsPerCurrencyUnit == 0 {
		c.Loyalty.PointsPerCurrencyUnit = domain.DefaultPointsPerCurrencyUnit
	}
	if c.Loyalty.RedemptionRate == 0 {
		c.Loyalty.RedemptionRate = domain.DefaultRedemptionRate
	}
	if c.Loyalty.MinRedemptionPoints == 0 {
		c.Loyalty.MinRedemptionPoints = domain.DefaultMinRedemptionPoints
	}
	if c.Loyalty.ExpiryDays == 0 {
		c.Loyalty.ExpiryDays = domain.DefaultPointsExpiryDays
	}
	if c.Loyalty.ExpirySweepIntervalMinutes == 0 {
		c.Loyalty.ExpirySweepIntervalMinutes = 24 * 60
	}
}

func (c *Config) validate() error {
	if c.Billing.CommissionRate < 0 || c.Billing.CommissionRate >= 1 {
		return fmt.Errorf("config: commission_rate must be in [0, 1), got %v", c.Billing.CommissionRate)
	}
	if c.Loyalty.MinRedemptionPoints < 0 {
		return fmt.Errorf("config: min_redemption_points must be non-negative")
	}
	if c.Loyalty.ExpiryDays <= 0 {
		return fmt.Errorf("config: expiry_days must be positive")
	}
	return nil
}
