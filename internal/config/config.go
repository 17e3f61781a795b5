package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const DEFAULT_TIME_ZONE = "America/Campo_Grande"

type Config struct {
	OneSignalAppID      string `env:"ONESIGNAL_APP_ID,required"`
	OneSignalRestAPIKey string `env:"ONESIGNAL_REST_API_KEY,required"`
	OneSignalAPIURL     string `env:"ONESIGNAL_API_URL" envDefault:"https://onesignal.com/api/v1"`

	SiteURL    string `env:"SITE_URL"`
	TimeZone   string `env:"TZ" envDefault:"America/Campo_Grande"`
	AgendaPath string `env:"AGENDA_PATH" envDefault:"agenda.json"`
	WindowDays int    `env:"WINDOW_DAYS" envDefault:"7"`

	WeekdayNames []string `env:"WEEKDAY_NAMES" envSeparator:","`

	DispatchConcurrency   int           `env:"DISPATCH_CONCURRENCY" envDefault:"1"`
	DispatchRatePerSecond float64       `env:"DISPATCH_RATE_PER_SECOND" envDefault:"0"`
	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT" envDefault:"0s"`
	DryRun                bool          `env:"DRY_RUN" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	SentryDsn string `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	config.LogLevel = strings.ToLower(config.LogLevel)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.OneSignalAppID, validation.Required),
		validation.Field(&c.OneSignalRestAPIKey, validation.Required),
		validation.Field(&c.OneSignalAPIURL, validation.Required, is.URL),
		validation.Field(&c.SiteURL, is.URL),
		validation.Field(&c.TimeZone, validation.By(isLoadableLocation)),
		validation.Field(&c.AgendaPath, validation.Required),
		validation.Field(&c.WindowDays, validation.Required, validation.Min(1)),
		validation.Field(&c.WeekdayNames, validation.Length(7, 7), validation.Each(validation.Required)),
		validation.Field(&c.DispatchConcurrency, validation.Required, validation.Min(1), validation.Max(32)),
		validation.Field(&c.DispatchRatePerSecond, validation.Min(0.0)),
		validation.Field(&c.RequestTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.SentryDsn, is.URL),
	)
}

// Location returns the configured time zone. An empty TZ falls back to
// the default zone.
func (c *Config) Location() (*time.Location, error) {
	name := c.TimeZone
	if name == "" {
		name = DEFAULT_TIME_ZONE
	}
	return time.LoadLocation(name)
}

func isLoadableLocation(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown time zone %q", name)
	}
	return nil
}
