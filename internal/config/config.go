// Package config handles loading the do-me config.toml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mmed-hajnasr/do-me/internal/keymap"
)

const (
	DefaultTickRate  = 4.0
	DefaultFrameRate = 30.0
)

// Config represents the config.toml file.
type Config struct {
	// DataDir holds the database, the log file and tui_state.json.
	DataDir string `toml:"data-dir"`

	// TickRate is ticks per second. Pending key chords expire after keymap.PendingTicks ticks.
	TickRate float64 `toml:"tick-rate"`

	// FrameRate is render frames per second.
	FrameRate float64 `toml:"frame-rate"`

	// Keybindings maps a mode name to key sequence -> action name, e.g.
	//
	//	[keybindings.navigation]
	//	"g g" = "GoToTop"
	//	"d d" = "none"
	Keybindings map[string]map[string]string `toml:"keybindings"`

	Styles Styles `toml:"styles"`
}

// Styles are lipgloss color strings ("#ff8800", "212").
type Styles struct {
	Accent    string `toml:"accent"`
	Selected  string `toml:"selected"`
	Highlight string `toml:"highlight"`
	Error     string `toml:"error"`
	Muted     string `toml:"muted"`
	Completed string `toml:"completed"`
}

func Default() *Config {
	return &Config{
		TickRate:  DefaultTickRate,
		FrameRate: DefaultFrameRate,
	}
}

// DefaultPath resolves the config file: $DO_ME_CONFIG, $XDG_CONFIG_HOME/do-me/config.toml,
// ~/.config/do-me/config.toml.
func DefaultPath() (string, error) {
	if v := strings.TrimSpace(os.Getenv("DO_ME_CONFIG")); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); v != "" {
		return filepath.Join(v, "do-me", "config.toml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "do-me", "config.toml"), nil
}

// Load reads path (or DefaultPath when empty) over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	fileCfg, meta, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg := merge(Default(), fileCfg, meta)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("config file %s: unknown key %s", path, undecoded[0])
	}
	return &cfg, meta, nil
}

func merge(base, file *Config, meta toml.MetaData) *Config {
	out := *base
	if meta.IsDefined("data-dir") {
		out.DataDir = strings.TrimSpace(file.DataDir)
	}
	if meta.IsDefined("tick-rate") {
		out.TickRate = file.TickRate
	}
	if meta.IsDefined("frame-rate") {
		out.FrameRate = file.FrameRate
	}
	out.Styles = mergeStyles(base.Styles, file.Styles)
	if len(file.Keybindings) > 0 {
		out.Keybindings = map[string]map[string]string{}
		for mode, m := range file.Keybindings {
			out.Keybindings[mode] = map[string]string{}
			for seq, name := range m {
				out.Keybindings[mode][seq] = name
			}
		}
	}
	return &out
}

func mergeStyles(base, file Styles) Styles {
	pick := func(a, b string) string {
		if strings.TrimSpace(b) != "" {
			return strings.TrimSpace(b)
		}
		return a
	}
	return Styles{
		Accent:    pick(base.Accent, file.Accent),
		Selected:  pick(base.Selected, file.Selected),
		Highlight: pick(base.Highlight, file.Highlight),
		Error:     pick(base.Error, file.Error),
		Muted:     pick(base.Muted, file.Muted),
		Completed: pick(base.Completed, file.Completed),
	}
}

func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick-rate must be positive, got %v", c.TickRate)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame-rate must be positive, got %v", c.FrameRate)
	}
	_, err := c.Keymap()
	return err
}

// Keymap returns the default bindings with the configured ones layered on top.
// Binding a sequence to "none" removes it.
func (c *Config) Keymap() (*keymap.Keymap, error) {
	k := keymap.Default()
	modes := make([]string, 0, len(c.Keybindings))
	for m := range c.Keybindings {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	for _, name := range modes {
		mode, err := keymap.ParseMode(name)
		if err != nil {
			return nil, fmt.Errorf("keybindings: %w", err)
		}
		if mode == keymap.Insert {
			return nil, fmt.Errorf("keybindings: insert mode keys go to the text field and cannot be bound")
		}
		seqs := make([]string, 0, len(c.Keybindings[name]))
		for s := range c.Keybindings[name] {
			seqs = append(seqs, s)
		}
		sort.Strings(seqs)
		for _, seq := range seqs {
			if err := k.BindString(mode, seq, c.Keybindings[name][seq]); err != nil {
				return nil, fmt.Errorf("keybindings.%s: %w", name, err)
			}
		}
	}
	return k, nil
}
