// Package config provides YAML-based configuration loading, embedded
// defaults and difficulty presets for matrix-pong.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/matrix-pong/internal/core"
)

// Config is the complete runtime configuration.
type Config struct {
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Geometry   GeometryConfig   `yaml:"geometry"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Timing     TimingConfig     `yaml:"timing"`
	Display    DisplayConfig    `yaml:"display"`
	Hardware   HardwareConfig   `yaml:"hardware"`
	Input      InputConfig      `yaml:"input"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// GeometryConfig defines the matrix and paddle dimensions.
type GeometryConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	PaddleHeight int `yaml:"paddle_height"`
}

// Core converts to the core geometry type.
func (g GeometryConfig) Core() core.Geometry {
	return core.Geometry{Width: g.Width, Height: g.Height, PaddleHeight: g.PaddleHeight}
}

// PhysicsConfig defines ball physics parameters. Speeds are in pixels per second.
type PhysicsConfig struct {
	StartSpeed     float64 `yaml:"start_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"` // Added on every paddle hit
	EdgeMargin     float64 `yaml:"edge_margin"`     // Distance from the side edge where paddles are tested
}

// TimingConfig defines task periods and round timings.
type TimingConfig struct {
	PhysicsPeriod Duration `yaml:"physics_period"`
	PointOver     Duration `yaml:"point_over"`   // Pause after a miss before the next serve
	FlashPeriod   Duration `yaml:"flash_period"` // Score bar blink half-period during point-over
}

// DisplayConfig defines scan-out behaviour.
type DisplayConfig struct {
	BarUnit      int      `yaml:"bar_unit"`       // Pixels of score bar per point
	MaxFrameRate float64  `yaml:"max_frame_rate"` // 0 = unpaced
	RowDwell     Duration `yaml:"row_dwell"`      // Lit time per scan line on hardware
}

// HardwareConfig describes the GPIO wiring of the HUB75 connector.
// Lines are chip line offsets in port bit order: LAT, OE, CLK, A..E,
// G1, B1, R1, G2, B2, R2 (colour bits follow core.Color).
type HardwareConfig struct {
	Chip  string `yaml:"chip"`
	Lines []int  `yaml:"lines"`
}

// InputConfig describes the analog sliders and buttons.
type InputConfig struct {
	LeftSlider   string   `yaml:"left_slider"`  // IIO sysfs raw value file
	RightSlider  string   `yaml:"right_slider"` // IIO sysfs raw value file
	SeedSource   string   `yaml:"seed_source"`  // Floating ADC input used for the RNG seed
	FullScale    int      `yaml:"full_scale"`   // Raw reading that maps to position 1.0
	ButtonChip   string   `yaml:"button_chip"`
	ResetLine    int      `yaml:"reset_line"`
	PauseLine    int      `yaml:"pause_line"`
	PlayerLine   int      `yaml:"player_line"`
	Debounce     Duration `yaml:"debounce"`
	KeyboardStep float64  `yaml:"keyboard_step"` // Slider nudge per key press in the terminal
}

// StorageConfig configures the optional point log.
type StorageConfig struct {
	Path string `yaml:"path"` // Empty disables the log
}

// ServerConfig configures the SSH spectator server.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// MetricsConfig configures the Prometheus listener.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // Empty disables the listener
}

// HUB75LineCount is the number of GPIO lines a HUB75 connector needs.
const HUB75LineCount = 14

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	if err := c.Geometry.Core().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Physics.StartSpeed <= 0 {
		return fmt.Errorf("config: start_speed must be positive, got %v", c.Physics.StartSpeed)
	}
	if c.Physics.SpeedIncrement < 0 {
		return fmt.Errorf("config: speed_increment must not be negative, got %v", c.Physics.SpeedIncrement)
	}
	if c.Physics.EdgeMargin < 0 || c.Physics.EdgeMargin >= float64(c.Geometry.Width)/2 {
		return fmt.Errorf("config: edge_margin %v outside [0, %d)", c.Physics.EdgeMargin, c.Geometry.Width/2)
	}
	if c.Timing.PhysicsPeriod <= 0 {
		return fmt.Errorf("config: physics_period must be positive")
	}
	if c.Timing.PointOver < 0 || c.Timing.FlashPeriod <= 0 {
		return fmt.Errorf("config: point_over must not be negative and flash_period must be positive")
	}
	if c.Display.BarUnit < 0 {
		return fmt.Errorf("config: bar_unit must not be negative")
	}
	if c.Display.MaxFrameRate < 0 {
		return fmt.Errorf("config: max_frame_rate must not be negative")
	}
	if n := len(c.Hardware.Lines); n != 0 && n != HUB75LineCount {
		return fmt.Errorf("config: hardware.lines needs %d offsets, got %d", HUB75LineCount, n)
	}
	if c.Input.FullScale < 0 {
		return fmt.Errorf("config: full_scale must not be negative")
	}
	if _, ok := presets[c.Difficulty]; c.Difficulty != "" && !ok {
		return fmt.Errorf("config: unknown difficulty %q", c.Difficulty)
	}
	return nil
}

// Duration is a time.Duration that reads and writes as a YAML string
// such as "1ms" or "3s".
type Duration time.Duration

// Std returns the standard library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}
