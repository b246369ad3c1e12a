package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Platform describes what the host notification system can do. It is resolved
// once at startup and never probed again.
type Platform struct {
	SupportsNotificationChannels bool   `toml:"supports_notification_channels"`
	OwnsSoundViaChannel          bool   `toml:"owns_sound_via_channel"`
	DefaultSound                 string `toml:"default_sound"`
	ExecuteInForeground          bool   `toml:"execute_in_foreground"`
}

// Channel is a notification channel registered with the host at startup.
type Channel struct {
	ID         string `toml:"id"`
	Name       string `toml:"name"`
	Importance string `toml:"importance"`
}

// Action is an extra notification button.
type Action struct {
	Icon   string `toml:"icon"`
	Title  string `toml:"title"`
	Target string `toml:"target"`
}

// Status is the presentation of one task status. Hidden suppresses the
// status entirely.
type Status struct {
	Title         string   `toml:"title"`
	Message       string   `toml:"message"`
	Hidden        bool     `toml:"hidden"`
	Icon          string   `toml:"icon"`
	IconColor     string   `toml:"icon_color"`
	LargeIcon     string   `toml:"large_icon"`
	ClickAction   string   `toml:"click_action"`
	AutoClear     bool     `toml:"auto_clear"`
	ClearOnAction bool     `toml:"clear_on_action"`
	Actions       []Action `toml:"actions"`
}

// Notifications contains the per-task notification settings and the optional
// ntfy mirror.
type Notifications struct {
	Disabled           bool    `toml:"disabled"`
	Namespace          string  `toml:"namespace"`
	ChannelID          string  `toml:"channel_id"`
	RingToneEnabled    bool    `toml:"ring_tone_enabled"`
	BaseNotificationID int     `toml:"base_notification_id"`
	NtfyTopic          string  `toml:"ntfy_topic"`
	NtfyRateLimit      float64 `toml:"ntfy_rate_limit"`
	NtfyBurst          int     `toml:"ntfy_burst"`
	RequestTimeout     int     `toml:"request_timeout"`
	Progress           Status  `toml:"progress"`
	Completed          Status  `toml:"completed"`
	Error              Status  `toml:"error"`
	Cancelled          Status  `toml:"cancelled"`
}

// Config encapsulates all configuration values for uploadnotify.
//
// Configuration sections by subsystem:
//   - Paths: log directory
//   - Logging: log format and level
//   - Platform: host notification capabilities
//   - Channels: notification channels registered at startup
//   - Notifications: status presentation, identities, and ntfy mirror
type Config struct {
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
	Platform      Platform      `toml:"platform"`
	Channels      []Channel     `toml:"channels"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/uploadnotify/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf("config path %q is a directory", expanded)
			}
			return expanded, true, nil
		}
		if os.IsNotExist(err) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("uploadnotify.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates directories the CLI writes to.
func (c *Config) EnsureDirectories() error {
	if dir := strings.TrimSpace(c.Paths.LogDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Channel returns the registered channel with the given id.
func (c *Config) Channel(id string) (Channel, bool) {
	for _, ch := range c.Channels {
		if ch.ID == id {
			return ch, true
		}
	}
	return Channel{}, false
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
