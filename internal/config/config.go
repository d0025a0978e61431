// Package config handles application configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	// DataDir is the directory holding config.yaml and the optional log file.
	DataDir string `yaml:"-"`

	// ChildCommand is the program hosted in the PTY pane.
	ChildCommand string `yaml:"child_command"`

	// ChildArgs are passed to ChildCommand verbatim.
	ChildArgs []string `yaml:"child_args"`

	// TickInterval is how often (in seconds) a background status refresh is attempted.
	TickInterval int `yaml:"tick_interval"`

	// ScrollbackLines bounds the PTY history ring.
	ScrollbackLines int `yaml:"scrollback_lines"`

	// SplitPercent is the width share of the PTY pane on the Claude tab.
	SplitPercent int `yaml:"split_percent"`

	// MaxDrain caps how many queued events are applied before a redraw.
	// Zero drains everything that is queued.
	MaxDrain int `yaml:"max_drain"`

	// LogFile enables the debug log when set.
	LogFile string `yaml:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// DiffStyle is the chroma style used for diff highlighting.
	DiffStyle string `yaml:"diff_style"`

	// Keys contains keybinding configuration
	Keys KeyBindings `yaml:"keys"`

	// Theme contains theme/appearance configuration
	Theme Theme `yaml:"theme"`
}

// KeyBindings holds the global keybindings. Pane-local keys are fixed.
type KeyBindings struct {
	Quit        string `yaml:"quit"`
	ToggleFocus string `yaml:"toggle_focus"`
	CycleFocus  string `yaml:"cycle_focus"`
	ResizePanes string `yaml:"resize_panes"`
	ClaudeTab   string `yaml:"claude_tab"`
	FilesTab    string `yaml:"files_tab"`
}

// Theme holds theme configuration.
type Theme struct {
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors holds color configuration.
type ThemeColors struct {
	BorderFocused   string `yaml:"border_focused"`
	BorderUnfocused string `yaml:"border_unfocused"`
	SelectionBg     string `yaml:"selection_bg"`
	StatusBarBg     string `yaml:"statusbar_bg"`
	StatusBarFg     string `yaml:"statusbar_fg"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir:         defaultDataDir(),
		ChildCommand:    "claude",
		ChildArgs:       []string{"--dangerously-skip-permissions"},
		TickInterval:    2,
		ScrollbackLines: 1000,
		SplitPercent:    60,
		MaxDrain:        0,
		LogLevel:        "info",
		DiffStyle:       "monokai",
		Keys:            DefaultKeyBindings(),
		Theme:           DefaultTheme(),
	}
}

// DefaultKeyBindings returns the default keybindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:        "ctrl+q",
		ToggleFocus: "tab",
		CycleFocus:  "f3",
		ResizePanes: "ctrl+\\",
		ClaudeTab:   "f1",
		FilesTab:    "f2",
	}
}

// DefaultTheme returns the default theme configuration.
func DefaultTheme() Theme {
	return Theme{
		Colors: ThemeColors{
			BorderFocused:   "#64b4ff",
			BorderUnfocused: "#373741",
			SelectionBg:     "#28375a",
			StatusBarBg:     "#262626",
			StatusBarFg:     "silver",
		},
	}
}

// Load reads the config file at path, falling back to defaults when it
// does not exist. An empty path means the default location.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = cfg.ConfigFile()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.WrapPrefix(err, "reading config", 0)
	}

	// Parse YAML into a temporary struct to merge with defaults
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, errors.WrapPrefix(err, "parsing "+path, 0)
	}

	mergeConfig(cfg, &fileCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges, key strings and colors.
func (c *Config) Validate() error {
	if c.ChildCommand == "" {
		return errors.New("child_command must not be empty")
	}
	if c.SplitPercent < 20 || c.SplitPercent > 80 {
		return errors.Errorf("split_percent must be between 20 and 80, got %d", c.SplitPercent)
	}
	if c.TickInterval < 1 {
		return errors.Errorf("tick_interval must be at least 1 second, got %d", c.TickInterval)
	}
	if c.ScrollbackLines < 1 {
		return errors.Errorf("scrollback_lines must be positive, got %d", c.ScrollbackLines)
	}
	if c.MaxDrain < 0 {
		return errors.Errorf("max_drain must not be negative, got %d", c.MaxDrain)
	}
	if err := ValidateKeys(&c.Keys); err != nil {
		return err
	}
	return ValidateTheme(&c.Theme)
}

// mergeConfig merges file configuration into the default configuration.
// Only non-zero values from file are applied.
func mergeConfig(dst, src *Config) {
	if src.ChildCommand != "" {
		dst.ChildCommand = src.ChildCommand
	}
	if src.ChildArgs != nil {
		dst.ChildArgs = src.ChildArgs
	}
	if src.TickInterval != 0 {
		dst.TickInterval = src.TickInterval
	}
	if src.ScrollbackLines != 0 {
		dst.ScrollbackLines = src.ScrollbackLines
	}
	if src.SplitPercent != 0 {
		dst.SplitPercent = src.SplitPercent
	}
	if src.MaxDrain != 0 {
		dst.MaxDrain = src.MaxDrain
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.DiffStyle != "" {
		dst.DiffStyle = src.DiffStyle
	}

	mergeKeyBindings(&dst.Keys, &src.Keys)
	mergeTheme(&dst.Theme, &src.Theme)
}

// mergeKeyBindings merges keybindings from src into dst.
func mergeKeyBindings(dst, src *KeyBindings) {
	if src.Quit != "" {
		dst.Quit = src.Quit
	}
	if src.ToggleFocus != "" {
		dst.ToggleFocus = src.ToggleFocus
	}
	if src.CycleFocus != "" {
		dst.CycleFocus = src.CycleFocus
	}
	if src.ResizePanes != "" {
		dst.ResizePanes = src.ResizePanes
	}
	if src.ClaudeTab != "" {
		dst.ClaudeTab = src.ClaudeTab
	}
	if src.FilesTab != "" {
		dst.FilesTab = src.FilesTab
	}
}

func mergeTheme(dst, src *Theme) {
	if src.Colors.BorderFocused != "" {
		dst.Colors.BorderFocused = src.Colors.BorderFocused
	}
	if src.Colors.BorderUnfocused != "" {
		dst.Colors.BorderUnfocused = src.Colors.BorderUnfocused
	}
	if src.Colors.SelectionBg != "" {
		dst.Colors.SelectionBg = src.Colors.SelectionBg
	}
	if src.Colors.StatusBarBg != "" {
		dst.Colors.StatusBarBg = src.Colors.StatusBarBg
	}
	if src.Colors.StatusBarFg != "" {
		dst.Colors.StatusBarFg = src.Colors.StatusBarFg
	}
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "cdeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cdeck"
	}
	return filepath.Join(home, ".config", "cdeck")
}

// ConfigFile returns the path to the config file.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

// TickSeconds is TickInterval with a floor of one second.
func (c *Config) TickSeconds() int {
	if c.TickInterval < 1 {
		return 1
	}
	return c.TickInterval
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
