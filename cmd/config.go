package main

import (
	"fmt"
	"strconv"

	"github.com/irfansharif/polyfan/internal/palette"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
	defaultTitle  = "Polyfan"
)

// config holds startup-time settings. They are read once and never change
// while the window is open.
type config struct {
	Width, Height int
	Title         string
	Palette       palette.Palette
}

// loadConfig reads settings from the environment through getenv, falling back
// to defaults for anything unset.
func loadConfig(getenv func(string) string) (config, error) {
	cfg := config{
		Width:  defaultWidth,
		Height: defaultHeight,
		Title:  defaultTitle,
	}

	var err error
	if cfg.Width, err = positiveInt(getenv, "POLYFAN_WIDTH", defaultWidth); err != nil {
		return config{}, err
	}
	if cfg.Height, err = positiveInt(getenv, "POLYFAN_HEIGHT", defaultHeight); err != nil {
		return config{}, err
	}
	if title := getenv("POLYFAN_TITLE"); title != "" {
		cfg.Title = title
	}

	fill, background := palette.DefaultFill, palette.DefaultBackground
	if v := getenv("POLYFAN_FILL"); v != "" {
		fill = v
	}
	if v := getenv("POLYFAN_BACKGROUND"); v != "" {
		background = v
	}
	if cfg.Palette, err = palette.Parse(fill, background); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func positiveInt(getenv func(string) string, key string, def int) (int, error) {
	s := getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value '%s': %w", key, s, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s value '%s': must be positive", key, s)
	}
	return v, nil
}
