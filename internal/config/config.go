// Package config handles configuration loading, validation, and management
// for promptbridge.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Config holds the complete helper configuration.
type Config struct {
	// Hotkey configures the global toggle chord.
	Hotkey HotkeyConfig `toml:"hotkey" json:"hotkey" yaml:"hotkey"`

	// Delivery configures the paste-and-submit sequencer.
	Delivery DeliveryConfig `toml:"delivery" json:"delivery" yaml:"delivery"`

	// Terminal configures terminal process discovery.
	Terminal TerminalConfig `toml:"terminal" json:"terminal" yaml:"terminal"`

	// Discovery configures the helper-window polling loop.
	Discovery DiscoveryConfig `toml:"discovery" json:"discovery" yaml:"discovery"`

	// History configures the delivered-prompt store.
	History HistoryConfig `toml:"history" json:"history" yaml:"history"`

	// Logging configures log output.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	// Window configures the resident editor window.
	Window WindowConfig `toml:"window" json:"window" yaml:"window"`
}

// HotkeyConfig holds the global toggle chord settings.
type HotkeyConfig struct {
	// Enabled controls whether the global hook engine is started at all.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`

	// TriggerKey is the virtual-key code of the chord's non-modifier key.
	// Default 0x49 ('I').
	TriggerKey int `toml:"trigger_key" json:"trigger_key" yaml:"trigger_key"`
}

// DeliveryConfig holds paste-and-submit timing.
type DeliveryConfig struct {
	// ActivateSettleMs is the pause after foreground activation before any
	// synthetic input is sent. Sending input immediately after a focus
	// request is unreliable.
	ActivateSettleMs int `toml:"activate_settle_ms" json:"activate_settle_ms" yaml:"activate_settle_ms"`

	// PasteSettleMs is the pause between the paste chord and the submit key,
	// letting the target consume the pasted content first.
	PasteSettleMs int `toml:"paste_settle_ms" json:"paste_settle_ms" yaml:"paste_settle_ms"`

	// TriggerText is the short string typed by the fallback path.
	TriggerText string `toml:"trigger_text" json:"trigger_text" yaml:"trigger_text"`
}

// TerminalConfig holds terminal process discovery settings.
type TerminalConfig struct {
	// ExtraProcessNames extends the built-in terminal executable allow-list.
	ExtraProcessNames []string `toml:"extra_process_names" json:"extra_process_names" yaml:"extra_process_names"`
}

// DiscoveryConfig holds helper-window polling settings.
type DiscoveryConfig struct {
	// PollIntervalMs is the interval between attempts to resolve the
	// helper's own freshly-created window.
	PollIntervalMs int `toml:"poll_interval_ms" json:"poll_interval_ms" yaml:"poll_interval_ms"`

	// PollDeadlineMs bounds the whole polling loop.
	PollDeadlineMs int `toml:"poll_deadline_ms" json:"poll_deadline_ms" yaml:"poll_deadline_ms"`
}

// HistoryConfig holds delivered-prompt store settings.
type HistoryConfig struct {
	// Enabled controls whether deliveries are recorded.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`

	// Path is the SQLite database location.
	Path string `toml:"path" json:"path" yaml:"path"`

	// Keep is the number of deliveries retained by pruning.
	Keep int `toml:"keep" json:"keep" yaml:"keep"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is "stderr", "file", or "both".
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is the log file location; empty means the temp-dir default.
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`
}

// WindowConfig holds resident editor window settings.
type WindowConfig struct {
	// TitlePrefix is prepended to the terminal handle to form the unique
	// window title the hook engine discovers the helper by.
	TitlePrefix string `toml:"title_prefix" json:"title_prefix" yaml:"title_prefix"`

	// Width and Height are the initial window size in dp.
	Width  int `toml:"width" json:"width" yaml:"width"`
	Height int `toml:"height" json:"height" yaml:"height"`
}

// AppDir returns the promptbridge configuration directory.
func AppDir() string {
	return filepath.Join(xdg.ConfigHome, "promptbridge")
}

// DataDir returns the promptbridge data directory.
func DataDir() string {
	return filepath.Join(xdg.DataHome, "promptbridge")
}

// ConfigPath returns the default configuration file location.
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.toml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Hotkey: HotkeyConfig{
			Enabled:    true,
			TriggerKey: 0x49, // 'I'
		},
		Delivery: DeliveryConfig{
			ActivateSettleMs: 150,
			PasteSettleMs:    100,
			TriggerText:      "//",
		},
		Terminal: TerminalConfig{
			ExtraProcessNames: []string{},
		},
		Discovery: DiscoveryConfig{
			PollIntervalMs: 100,
			PollDeadlineMs: 5000,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(DataDir(), "history.db"),
			Keep:    500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "both",
		},
		Window: WindowConfig{
			TitlePrefix: "PromptBridge",
			Width:       500,
			Height:      150,
		},
	}
}

// ActivateSettle returns the activation settle delay as a duration.
func (c *Config) ActivateSettle() time.Duration {
	return time.Duration(c.Delivery.ActivateSettleMs) * time.Millisecond
}

// PasteSettle returns the paste settle delay as a duration.
func (c *Config) PasteSettle() time.Duration {
	return time.Duration(c.Delivery.PasteSettleMs) * time.Millisecond
}

// PollInterval returns the helper-window poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Discovery.PollIntervalMs) * time.Millisecond
}

// PollDeadline returns the helper-window poll deadline as a duration.
func (c *Config) PollDeadline() time.Duration {
	return time.Duration(c.Discovery.PollDeadlineMs) * time.Millisecond
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Hotkey.TriggerKey <= 0 || c.Hotkey.TriggerKey > 0xFE {
		return fmt.Errorf("hotkey.trigger_key %#x out of virtual-key range", c.Hotkey.TriggerKey)
	}
	if c.Delivery.ActivateSettleMs < 0 {
		return fmt.Errorf("delivery.activate_settle_ms must not be negative")
	}
	if c.Delivery.PasteSettleMs < 0 {
		return fmt.Errorf("delivery.paste_settle_ms must not be negative")
	}
	if c.Discovery.PollIntervalMs <= 0 {
		return fmt.Errorf("discovery.poll_interval_ms must be positive")
	}
	if c.Discovery.PollDeadlineMs < c.Discovery.PollIntervalMs {
		return fmt.Errorf("discovery.poll_deadline_ms must be at least one interval")
	}
	if c.History.Keep < 0 {
		return fmt.Errorf("history.keep must not be negative")
	}
	if _, err := parseLevelName(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

func parseLevelName(s string) (string, error) {
	switch s {
	case "", "debug", "info", "warn", "warning", "error":
		return s, nil
	default:
		return "", fmt.Errorf("logging.level %q not recognized", s)
	}
}

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Variables are prefixed with PROMPTBRIDGE_.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PROMPTBRIDGE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PROMPTBRIDGE_LOG_PATH"); v != "" {
		c.Logging.FilePath = v
	}
	if v := os.Getenv("PROMPTBRIDGE_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("PROMPTBRIDGE_TRIGGER_KEY"); v != "" {
		if n, err := strconv.ParseInt(v, 0, 32); err == nil {
			c.Hotkey.TriggerKey = int(n)
		}
	}
	if v := os.Getenv("PROMPTBRIDGE_DISABLE_HOTKEY"); v != "" {
		c.Hotkey.Enabled = false
	}
}

// EnsureDirectories creates the directories the helper writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{AppDir()}
	if c.History.Enabled && c.History.Path != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	if c.Logging.FilePath != "" {
		dirs = append(dirs, filepath.Dir(c.Logging.FilePath))
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
