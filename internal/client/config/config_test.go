package config

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/usersadmin/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10, c.PageSize)
	assert.NotEmpty(t, c.JournalPath)
	assert.Equal(t, "warn", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "https", mutate: func(c *Config) { c.APIBaseURL = "https://api.example.com/v1" }, ok: true},
		{name: "relative url", mutate: func(c *Config) { c.APIBaseURL = "/users" }},
		{name: "ftp url", mutate: func(c *Config) { c.APIBaseURL = "ftp://example.com" }},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }},
		{name: "zero interval", mutate: func(c *Config) { c.OnlineCheckInterval = 0 }},
		{name: "page size", mutate: func(c *Config) { c.PageSize = 15 }},
		{name: "lang", mutate: func(c *Config) { c.Lang = "not a tag!" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrInvalidArgument)
		})
	}
}

func TestLanguage(t *testing.T) {
	c := defaults()
	c.Lang = "de"
	assert.Equal(t, language.German, c.Language())
	c.Lang = "???"
	assert.Equal(t, language.English, c.Language())
}

func TestParseEnv(t *testing.T) {
	c := defaults()
	err := parseEnv(&c, map[string]string{
		"USERSADMIN_API_URL":               "https://users.internal",
		"USERSADMIN_API_TOKEN":             "tok",
		"USERSADMIN_REQUEST_TIMEOUT":       "3s",
		"USERSADMIN_ONLINE_CHECK_INTERVAL": "1m",
		"USERSADMIN_PAGE_SIZE":             "20",
		"USERSADMIN_COLOR":                 "false",
		"UNRELATED":                        "x",
	})
	require.NoError(t, err)

	want := defaults()
	want.APIBaseURL = "https://users.internal"
	want.APIToken = "tok"
	want.RequestTimeout = 3 * time.Second
	want.OnlineCheckInterval = time.Minute
	want.PageSize = 20
	want.Color = false
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnv_BadValue(t *testing.T) {
	c := defaults()
	require.Error(t, parseEnv(&c, map[string]string{"USERSADMIN_PAGE_SIZE": "ten"}))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func(c *Config)
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://10.0.0.1:9090", "-t", "2", "-i", "30", "-s", "5", "-j", "/tmp/j.db", "-l", "debug"},
			expected: func(c *Config) {
				c.APIBaseURL = "http://10.0.0.1:9090"
				c.RequestTimeout = 2 * time.Second
				c.OnlineCheckInterval = 30 * time.Second
				c.PageSize = 5
				c.JournalPath = "/tmp/j.db"
				c.LogLevel = "debug"
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-v", "-a=http://h:1"},
			expected: func(c *Config) { c.APIBaseURL = "http://h:1" },
		},
		{name: "bad interval", args: []string{"-i", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			err := parseFlags(&c, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.expected(&want)
			assert.Empty(t, cmp.Diff(want, c))
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url": "http://from-json:1",
		"page_size":    20,
		"log_level":    "info",
	})
	t.Setenv("USERSADMIN_PAGE_SIZE", "5")
	t.Setenv("USERSADMIN_LOG_LEVEL", "error")

	cfg, err := LoadConfig([]string{"-c", path, "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "http://from-json:1", cfg.APIBaseURL)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig([]string{"-s", "7"})
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = LoadConfig([]string{"-config", "/does/not/exist.json"})
	require.Error(t, err)
}
