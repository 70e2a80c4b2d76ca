package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/usersadmin/internal/flagx"
	"github.com/dmitrijs2005/usersadmin/internal/timex"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONConfig is the file layout. Durations use timex.Duration so they can be
// written as "3s" or as integer nanoseconds.
type JSONConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	APIToken            string         `json:"api_token"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	PageSize            int            `json:"page_size"`
	JournalPath         string         `json:"journal_path"`
	Lang                string         `json:"lang"`
	Color               bool           `json:"color"`
	LogLevel            string         `json:"log_level"`
}

func fromConfig(c *Config) JSONConfig {
	return JSONConfig{
		APIBaseURL:          c.APIBaseURL,
		APIToken:            c.APIToken,
		RequestTimeout:      timex.Duration{Duration: c.RequestTimeout},
		OnlineCheckInterval: timex.Duration{Duration: c.OnlineCheckInterval},
		PageSize:            c.PageSize,
		JournalPath:         c.JournalPath,
		Lang:                c.Lang,
		Color:               c.Color,
		LogLevel:            c.LogLevel,
	}
}

func (jc JSONConfig) apply(c *Config) {
	c.APIBaseURL = jc.APIBaseURL
	c.APIToken = jc.APIToken
	c.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	c.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	c.PageSize = jc.PageSize
	c.JournalPath = jc.JournalPath
	c.Lang = jc.Lang
	c.Color = jc.Color
	c.LogLevel = jc.LogLevel
}

// parseJSON overlays cfg with the file named by -c/-config in args. Keys
// missing from the file keep their current value. No flag means no file.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	jc := fromConfig(cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}
	jc.apply(cfg)
	return nil
}
