package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/keymap"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickRate != DefaultTickRate || cfg.FrameRate != DefaultFrameRate || cfg.DataDir != "" {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestLoad_OverridesOnlyDefinedKeys(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
tick-rate = 8.0
data-dir = " /tmp/do-me "

[styles]
error = "#ff0000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickRate != 8 {
		t.Fatalf("tick-rate: got %v", cfg.TickRate)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Fatalf("frame-rate must keep its default; got %v", cfg.FrameRate)
	}
	if cfg.DataDir != "/tmp/do-me" {
		t.Fatalf("data-dir: got %q", cfg.DataDir)
	}
	if cfg.Styles.Error != "#ff0000" || cfg.Styles.Accent != "" {
		t.Fatalf("styles: got %#v", cfg.Styles)
	}
}

func TestLoad_Keybindings(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[keybindings.navigation]
"z z" = "GoToTop"
"d d" = "none"

[keybindings.global]
"ctrl+q" = "quit"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	k, err := cfg.Keymap()
	if err != nil {
		t.Fatalf("Keymap: %v", err)
	}
	if a, ok := k.Lookup(keymap.Navigation, keymap.Sequence{"z", "z"}); !ok || action.Name(a) != "GoToTop" {
		t.Fatalf("expected z z bound to GoToTop")
	}
	if _, ok := k.Lookup(keymap.Navigation, keymap.Sequence{"d", "d"}); ok {
		t.Fatalf("expected d d unbound")
	}
	if _, ok := k.Lookup(keymap.Navigation, keymap.Sequence{"j"}); !ok {
		t.Fatalf("defaults must survive user bindings")
	}
	if a, ok := k.Lookup(keymap.Global, keymap.Sequence{"ctrl+q"}); !ok || action.Name(a) != "Quit" {
		t.Fatalf("expected ctrl+q bound to Quit")
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bad toml", body: "tick-rate = ", want: "parse config file"},
		{name: "unknown key", body: "colour = 1", want: "unknown key"},
		{name: "zero tick rate", body: "tick-rate = 0.0", want: "tick-rate must be positive"},
		{name: "unknown action", body: "[keybindings.navigation]\nx = \"Explode\"", want: "unknown action"},
		{name: "unknown mode", body: "[keybindings.visual]\nx = \"GoUp\"", want: "unknown mode"},
		{name: "insert mode", body: "[keybindings.insert]\nx = \"GoUp\"", want: "cannot be bound"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q; got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv("DO_ME_CONFIG", "/etc/do-me.toml")
	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if p != "/etc/do-me.toml" {
		t.Fatalf("got %q", p)
	}

	t.Setenv("DO_ME_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err = DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if p != filepath.Join("/xdg", "do-me", "config.toml") {
		t.Fatalf("got %q", p)
	}
}
