package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("ONESIGNAL_APP_ID", "app-id")
	t.Setenv("ONESIGNAL_REST_API_KEY", "rest-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("TZ", "")

	config, err := Load()

	assert := require.New(t)
	assert.Nil(err)
	assert.Equal("app-id", config.OneSignalAppID)
	assert.Equal("rest-key", config.OneSignalRestAPIKey)
	assert.Equal("https://onesignal.com/api/v1", config.OneSignalAPIURL)
	assert.Equal("agenda.json", config.AgendaPath)
	assert.Equal(7, config.WindowDays)
	assert.Equal(1, config.DispatchConcurrency)
	assert.Equal(0.0, config.DispatchRatePerSecond)
	assert.Equal(time.Duration(0), config.RequestTimeout)
	assert.False(config.DryRun)
	assert.Equal("info", config.LogLevel)
	assert.Empty(config.WeekdayNames)

	loc, err := config.Location()
	assert.Nil(err)
	assert.Equal(DEFAULT_TIME_ZONE, loc.String())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TZ", "America/Sao_Paulo")
	t.Setenv("SITE_URL", "https://example.org")
	t.Setenv("AGENDA_PATH", "/data/agenda.yaml")
	t.Setenv("WINDOW_DAYS", "3")
	t.Setenv("DISPATCH_CONCURRENCY", "4")
	t.Setenv("DISPATCH_RATE_PER_SECOND", "2.5")
	t.Setenv("REQUEST_TIMEOUT", "15s")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("WEEKDAY_NAMES", "Sun,Mon,Tue,Wed,Thu,Fri,Sat")

	config, err := Load()

	assert := require.New(t)
	assert.Nil(err)
	assert.Equal("https://example.org", config.SiteURL)
	assert.Equal("/data/agenda.yaml", config.AgendaPath)
	assert.Equal(3, config.WindowDays)
	assert.Equal(4, config.DispatchConcurrency)
	assert.Equal(2.5, config.DispatchRatePerSecond)
	assert.Equal(15*time.Second, config.RequestTimeout)
	assert.True(config.DryRun)
	assert.Equal("debug", config.LogLevel)
	assert.Equal([]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, config.WeekdayNames)

	loc, err := config.Location()
	assert.Nil(err)
	assert.Equal("America/Sao_Paulo", loc.String())
}

func TestLoadMissingCredentials(t *testing.T) {
	cases := []struct {
		id      string
		missing string
	}{
		{id: "app id", missing: "ONESIGNAL_APP_ID"},
		{id: "api key", missing: "ONESIGNAL_REST_API_KEY"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			setRequired(t)
			os.Unsetenv(testcase.missing)

			_, err := Load()

			require.ErrorContains(t, err, testcase.missing)
		})
	}
}

func TestLoadBlankCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("ONESIGNAL_REST_API_KEY", "")

	_, err := Load()

	require.NotNil(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	cases := []struct {
		id    string
		key   string
		value string
	}{
		{id: "unknown zone", key: "TZ", value: "Mars/Olympus_Mons"},
		{id: "zero window", key: "WINDOW_DAYS", value: "0"},
		{id: "non numeric window", key: "WINDOW_DAYS", value: "seven"},
		{id: "zero concurrency", key: "DISPATCH_CONCURRENCY", value: "0"},
		{id: "negative rate", key: "DISPATCH_RATE_PER_SECOND", value: "-1"},
		{id: "unknown log level", key: "LOG_LEVEL", value: "loud"},
		{id: "invalid site url", key: "SITE_URL", value: "not a url"},
		{id: "too few weekday names", key: "WEEKDAY_NAMES", value: "dom,seg,ter"},
		{id: "empty weekday name", key: "WEEKDAY_NAMES", value: "dom,seg,,qua,qui,sex,sáb"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			setRequired(t)
			t.Setenv(testcase.key, testcase.value)

			_, err := Load()

			require.NotNil(t, err)
		})
	}
}
