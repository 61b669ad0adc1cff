package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	Columns     int   `toml:"columns"`
	ConfirmSave *bool `toml:"confirm-save"`
	ConfirmQuit *bool `toml:"confirm-quit"`
}

type Theme struct {
	Theme                string `toml:"theme"`
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	ZeroForeground       string `toml:"zero-foreground"`
	CursorForeground     string `toml:"cursor-foreground"`
	MarkerForeground     string `toml:"marker-foreground"`
	OffsetForeground     string `toml:"offset-foreground"`
}

type Config struct {
	Editor EditorOptions     `toml:"editor"`
	Theme  Theme             `toml:"theme"`
	Keymap map[string]string `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Columns:     12,
			ConfirmSave: boolPtr(true),
			ConfirmQuit: boolPtr(true),
		},
		Theme: Theme{
			Theme:                "",
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			StatuslineForeground: "#0A0E14",
			StatuslineBackground: "#B3B1AD",
			ZeroForeground:       "#3E4B59",
			CursorForeground:     "#E6B450",
			MarkerForeground:     "#59C2FF",
			OffsetForeground:     "#5C6773",
		},
		Keymap: map[string]string{
			"l":      "move_down",
			"right":  "move_down",
			"h":      "move_up",
			"left":   "move_up",
			"j":      "window_forward",
			"down":   "window_forward",
			"pgdn":   "window_forward",
			"k":      "window_back",
			"up":     "window_back",
			"pgup":   "window_back",
			"n":      "insert_after",
			"i":      "insert_before",
			"s":      "save",
			"ctrl+s": "save",
			"r":      "delete",
			"del":    "delete",
			"g":      "jump_start",
			"home":   "jump_start",
			"q":      "quit",
			"ctrl+c": "quit",
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// Enabled reports the value of an optional boolean, true when unset.
func Enabled(v *bool) bool {
	return v == nil || *v
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.Columns > 0 {
		cfg.Editor.Columns = userCfg.Editor.Columns
	}
	if userCfg.Editor.ConfirmSave != nil {
		cfg.Editor.ConfirmSave = userCfg.Editor.ConfirmSave
	}
	if userCfg.Editor.ConfirmQuit != nil {
		cfg.Editor.ConfirmQuit = userCfg.Editor.ConfirmQuit
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.ZeroForeground != "" {
		dst.ZeroForeground = src.ZeroForeground
	}
	if src.CursorForeground != "" {
		dst.CursorForeground = src.CursorForeground
	}
	if src.MarkerForeground != "" {
		dst.MarkerForeground = src.MarkerForeground
	}
	if src.OffsetForeground != "" {
		dst.OffsetForeground = src.OffsetForeground
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml. The file may hold the keys at top
// level or wrapped in a [theme] table.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme *Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err == nil && wrap.Theme != nil {
		return *wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QHEX_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qhex"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qhex"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
