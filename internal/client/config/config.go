package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/usersadmin/internal/client/models"
	"github.com/dmitrijs2005/usersadmin/internal/common"
	"golang.org/x/text/language"
)

// Config holds runtime settings for the users console.
type Config struct {
	APIBaseURL          string        `env:"API_URL"`
	APIToken            string        `env:"API_TOKEN"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	PageSize            int           `env:"PAGE_SIZE"`
	JournalPath         string        `env:"JOURNAL_PATH"`
	Lang                string        `env:"LANG"`
	Color               bool          `env:"COLOR"`
	LogLevel            string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.APIToken = ""
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.PageSize = models.DefaultPageSize
	c.JournalPath = defaultJournalPath()
	c.Lang = "en"
	c.Color = true
	c.LogLevel = "warn"
}

func defaultJournalPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return common.AppName + "-journal.db"
	}
	return filepath.Join(dir, common.AppName, "journal.db")
}

// Validate rejects settings the console cannot start with.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api base url %q must be an absolute http(s) URL", c.APIBaseURL))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval))
	}
	if !models.IsPageSize(c.PageSize) {
		errs = append(errs, fmt.Errorf("page size %d is not one of %v", c.PageSize, models.PageSizes))
	}
	if _, err := language.Parse(c.Lang); err != nil {
		errs = append(errs, fmt.Errorf("lang %q: %v", c.Lang, err))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidArgument, err)
	}
	return nil
}

// Language is the parsed Lang tag, English when it does not parse.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Lang)
	if err != nil {
		return language.English
	}
	return tag
}

// LoadConfig builds a Config from defaults, then the JSON file, the
// environment and finally the flags found in args (without the program
// name). The result is validated.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg, nil); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
