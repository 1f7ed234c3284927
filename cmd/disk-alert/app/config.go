package app

import (
	"log"
	"time"

	envstruct "code.cloudfoundry.org/go-envstruct"
)

// Config is the configuration for a DiskAlertApp. The PushBullet access
// token is deliberately not part of it: the token is read from the
// environment by the push client on every send.
type Config struct {
	MonitorPath              string        `env:"MONITOR_PATH, report"`
	DiskFreePercentThreshold uint          `env:"DISK_FREE_PERCENT_THRESHOLD, report"`
	FreeRatioThreshold       float64       `env:"-, report"`
	PollInterval             time.Duration `env:"POLL_INTERVAL, report"`
	PushBulletAddr           string        `env:"PUSHBULLET_ADDR, report"`
	HealthPort               int           `env:"HEALTH_PORT, report"`

	LogLevel string `env:"LOG_LEVEL,                      report"`
}

// LoadConfig creates Config object from environment variables
func LoadConfig() *Config {
	cfg := &Config{
		LogLevel:                 "info",
		MonitorPath:              "/",
		DiskFreePercentThreshold: 10,
		PollInterval:             5 * time.Minute,
		PushBulletAddr:           "https://api.pushbullet.com",
		HealthPort:               6063,
	}

	if err := envstruct.Load(cfg); err != nil {
		log.Fatalf("failed to load config from environment: %s", err)
	}

	cfg.FreeRatioThreshold = float64(cfg.DiskFreePercentThreshold) / 100

	_ = envstruct.WriteReport(cfg)

	return cfg
}
