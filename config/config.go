package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger       `mapstructure:"logger"`
	DB           Database     `mapstructure:"database"`
	API          API          `mapstructure:"api"`
	Cache        Cache        `mapstructure:"cache"`
	ExchangeRate ExchangeRate `mapstructure:"exchange_rate"`
	Journal      Journal      `mapstructure:"journal"`
	Scheduler    Scheduler    `mapstructure:"scheduler"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port           int     `mapstructure:"port"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

type Cache struct {
	DefaultExpiration   time.Duration `mapstructure:"default_expiration"`
	CleanupInterval     time.Duration `mapstructure:"cleanup_interval"`
	SettingsExpDuration time.Duration `mapstructure:"settings_exp_duration"`
}

type ExchangeRate struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin  int           `mapstructure:"max_request_per_min"`
	ReportingCurrency string        `mapstructure:"reporting_currency"`
}

type Journal struct {
	TrashRetentionDays int           `mapstructure:"trash_retention_days"`
	AutosaveDebounce   time.Duration `mapstructure:"autosave_debounce"`
	TimeZone           string        `mapstructure:"time_zone"`
	BreakdownTopN      int           `mapstructure:"breakdown_top_n"`
}

type Scheduler struct {
	PurgeCron       string        `mapstructure:"purge_cron"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.rate_limit", 10)
	viper.SetDefault("api.rate_limit_burst", 30)
	viper.SetDefault("cache.default_expiration", 10*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 15*time.Minute)
	viper.SetDefault("cache.settings_exp_duration", time.Hour)
	viper.SetDefault("exchange_rate.timeout", 5*time.Second)
	viper.SetDefault("exchange_rate.max_request_per_min", 30)
	viper.SetDefault("exchange_rate.reporting_currency", "USD")
	viper.SetDefault("journal.trash_retention_days", 30)
	viper.SetDefault("journal.autosave_debounce", 1500*time.Millisecond)
	viper.SetDefault("journal.time_zone", "Local")
	viper.SetDefault("journal.breakdown_top_n", 5)
	viper.SetDefault("scheduler.purge_cron", "@daily")
	viper.SetDefault("scheduler.timeout_duration", 5*time.Minute)
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location resolves the journal time zone used for calendar bucketing.
func (j Journal) Location() *time.Location {
	if j.TimeZone == "" || j.TimeZone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(j.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
