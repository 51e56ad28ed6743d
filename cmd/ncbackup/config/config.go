package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	EnvURL      = "NEXTCLOUD_URL"
	EnvUsername = "NEXTCLOUD_USERNAME"
	EnvPassword = "NEXTCLOUD_PASSWORD"
	EnvFolder   = "NCBACKUP_FOLDER"
)

type LogConfig struct {
	File      string `json:"file" toml:"file" yaml:"file"`
	Level     string `json:"level" toml:"level" yaml:"level"`
	FileCount int64  `json:"file_count" toml:"file_count" yaml:"file_count"`
	FileSize  int64  `json:"file_size" toml:"file_size" yaml:"file_size"`
	KeepDays  int64  `json:"keep_days" toml:"keep_days" yaml:"keep_days"`
	Console   bool   `json:"console" toml:"console" yaml:"console"`
}

type Config struct {
	URL           string    `json:"url" toml:"url" yaml:"url"`
	Username      string    `json:"username" toml:"username" yaml:"username"`
	Password      string    `json:"password" toml:"password" yaml:"password"`
	Folder        string    `json:"folder" toml:"folder" yaml:"folder"`
	Thread        int       `json:"thread" toml:"thread" yaml:"thread"`
	Timeout       int64     `json:"timeout" toml:"timeout" yaml:"timeout"`
	Retry         int       `json:"retry" toml:"retry" yaml:"retry"`
	RetryInterval int64     `json:"retry_interval" toml:"retry_interval" yaml:"retry_interval"`
	Snapshot      bool      `json:"snapshot" toml:"snapshot" yaml:"snapshot"`
	SnapshotDir   string    `json:"snapshot_dir" toml:"snapshot_dir" yaml:"snapshot_dir"`
	Verify        bool      `json:"verify" toml:"verify" yaml:"verify"`
	HistoryDB     string    `json:"history_db" toml:"history_db" yaml:"history_db"`
	LogInfo       LogConfig `json:"log_info" toml:"log_info" yaml:"log_info"`
}

func Default() *Config {
	return &Config{
		Folder:        "/cashier",
		Thread:        4,
		Timeout:       600,
		Retry:         3,
		RetryInterval: 2,
		Snapshot:      true,
		Verify:        true,
		LogInfo: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// Parse reads f on top of the defaults, picking the decoder by file extension.
func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := Default()
	switch strings.ToLower(filepath.Ext(f)) {
	case ".toml":
		if _, err := toml.Decode(string(raw), c); err != nil {
			return nil, fmt.Errorf("decode toml failed, err:%w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("decode yaml failed, err:%w", err)
		}
	default:
		if err := json.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("decode json failed, err:%w", err)
		}
	}
	return c, nil
}

// Load parses the first readable file of fs. A non empty explicit file must parse,
// the rest are optional and fall back to the defaults.
func Load(explicit string, fs ...string) (*Config, error) {
	var c *Config
	var err error
	if len(explicit) != 0 {
		c, err = Parse(explicit)
		if err != nil {
			return nil, fmt.Errorf("parse config failed, file:%s, err:%w", explicit, err)
		}
	}
	for _, f := range fs {
		if c != nil {
			break
		}
		if len(f) == 0 {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			continue
		}
		c, err = Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse config failed, file:%s, err:%w", f, err)
		}
	}
	if c == nil {
		c = Default()
	}
	c.ApplyEnv(os.LookupEnv)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvURL); ok && len(v) != 0 {
		c.URL = v
	}
	if v, ok := lookup(EnvUsername); ok && len(v) != 0 {
		c.Username = v
	}
	if v, ok := lookup(EnvPassword); ok && len(v) != 0 {
		c.Password = v
	}
	if v, ok := lookup(EnvFolder); ok && len(v) != 0 {
		c.Folder = v
	}
}

var supportLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"fatal": {},
	"panic": {},
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	if lv := strings.ToLower(c.LogInfo.Level); len(lv) != 0 {
		if _, ok := supportLogLevels[lv]; !ok {
			return fmt.Errorf("unsupported log level:%s, should be one of debug/info/warn/fatal/panic", c.LogInfo.Level)
		}
	}
	if c.Thread <= 0 {
		return fmt.Errorf("invalid thread:%d", c.Thread)
	}
	if c.Timeout < 0 || c.Retry < 0 || c.RetryInterval < 0 {
		return fmt.Errorf("timeout/retry should not be negative")
	}
	return nil
}

// ValidateRemote checks the settings needed to talk to nextcloud.
func (c *Config) ValidateRemote() error {
	if len(c.URL) == 0 {
		return fmt.Errorf("no nextcloud url found, set it in config or %s", EnvURL)
	}
	if len(c.Username) == 0 {
		return fmt.Errorf("no nextcloud username found, set it in config or %s", EnvUsername)
	}
	return nil
}
