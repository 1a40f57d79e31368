// Package config loads the device configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
)

// Linux input event codes for the default button mapping.
const (
	keyLeft  = 105
	keyRight = 106
)

type Log struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

type Display struct {
	Width       int32  `toml:"width"`        // Logical width in pixels
	Height      int32  `toml:"height"`       // Logical height in pixels
	Scale       int32  `toml:"scale"`        // Window pixels per logical pixel
	FontPath    string `toml:"font_path"`    // TTF used for all text
	FontSize    int    `toml:"font_size"`    // Point size for regular lines
	PageColumns int    `toml:"page_columns"` // Display cells per paginated line
	PageRows    int    `toml:"page_rows"`    // Lines per page
	Foreground  uint32 `toml:"foreground"`   // 0xRRGGBB for text and icons
	Background  uint32 `toml:"background"`   // 0xRRGGBB for the cleared panel
}

type Input struct {
	Device           string `toml:"device"`             // evdev node, e.g. /dev/input/event1
	Grab             bool   `toml:"grab"`               // Take exclusive access to the device
	LeftCode         uint16 `toml:"left_code"`          // EV_KEY code of the left button
	RightCode        uint16 `toml:"right_code"`         // EV_KEY code of the right button
	RepeatDelayMS    int    `toml:"repeat_delay_ms"`    // Hold time before repeating
	RepeatIntervalMS int    `toml:"repeat_interval_ms"` // Time between repeats
}

// Config is the full device configuration.
type Config struct {
	Log     Log     `toml:"log"`
	Display Display `toml:"display"`
	Input   Input   `toml:"input"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: Log{
			Level: "info",
		},
		Display: Display{
			Width:       constants.DefaultDisplayWidth,
			Height:      constants.DefaultDisplayHeight,
			Scale:       4,
			FontPath:    "/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
			FontSize:    9,
			PageColumns: constants.DefaultPageColumns,
			PageRows:    constants.DefaultPageRows,
			Foreground:  0xFFFFFF,
			Background:  0x000000,
		},
		Input: Input{
			Device:           "/dev/input/event1",
			LeftCode:         keyLeft,
			RightCode:        keyRight,
			RepeatDelayMS:    int(constants.DefaultRepeatDelay / time.Millisecond),
			RepeatIntervalMS: int(constants.DefaultRepeatInterval / time.Millisecond),
		},
	}
}

// Load decodes path over the defaults, applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is like Load but returns the defaults when path is empty or
// does not exist.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		cfg, err := Load(path)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}

	cfg := Default()
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(constants.InputDeviceEnvVar); v != "" {
		c.Input.Device = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("display size %dx%d must be positive", c.Display.Width, c.Display.Height)
	case c.Display.Scale <= 0:
		return fmt.Errorf("display scale %d must be positive", c.Display.Scale)
	case c.Display.PageColumns <= 0 || c.Display.PageRows <= 0:
		return fmt.Errorf("page geometry %dx%d must be positive", c.Display.PageColumns, c.Display.PageRows)
	case c.Display.Foreground > 0xFFFFFF || c.Display.Background > 0xFFFFFF:
		return errors.New("display colours must be 0xRRGGBB")
	case c.Display.Foreground == c.Display.Background:
		return errors.New("display foreground and background are the same colour")
	case c.Input.LeftCode == c.Input.RightCode:
		return fmt.Errorf("left and right buttons share key code %d", c.Input.LeftCode)
	case c.Input.RepeatDelayMS <= 0 || c.Input.RepeatIntervalMS <= 0:
		return errors.New("repeat timings must be positive")
	}
	return nil
}

// RepeatDelay returns the configured hold time before repeating.
func (i Input) RepeatDelay() time.Duration {
	return time.Duration(i.RepeatDelayMS) * time.Millisecond
}

// RepeatInterval returns the configured time between repeats.
func (i Input) RepeatInterval() time.Duration {
	return time.Duration(i.RepeatIntervalMS) * time.Millisecond
}
