package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/matrixpong.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration, matching the embedded
// defaults file.
func DefaultConfig() Config {
	return Config{
		Difficulty: DifficultyNormal,
		Geometry: GeometryConfig{
			Width:        64,
			Height:       32,
			PaddleHeight: 8,
		},
		Physics: PhysicsConfig{
			StartSpeed:     10.0,
			SpeedIncrement: 2.0,
			EdgeMargin:     1.0,
		},
		Timing: TimingConfig{
			PhysicsPeriod: Duration(time.Millisecond),
			PointOver:     Duration(3 * time.Second),
			FlashPeriod:   Duration(250 * time.Millisecond),
		},
		Display: DisplayConfig{
			BarUnit:      2,
			MaxFrameRate: 0,
		},
		Hardware: HardwareConfig{
			Chip:  "gpiochip0",
			Lines: []int{4, 18, 17, 22, 23, 24, 25, 15, 27, 7, 11, 9, 10, 8},
		},
		Input: InputConfig{
			LeftSlider:   "/sys/bus/iio/devices/iio:device0/in_voltage0_raw",
			RightSlider:  "/sys/bus/iio/devices/iio:device0/in_voltage1_raw",
			SeedSource:   "/sys/bus/iio/devices/iio:device0/in_voltage2_raw",
			FullScale:    4095,
			ButtonChip:   "gpiochip0",
			ResetLine:    5,
			PauseLine:    6,
			PlayerLine:   13,
			Debounce:     Duration(20 * time.Millisecond),
			KeyboardStep: 0.05,
		},
		Server: ServerConfig{
			Host:        "localhost",
			Port:        23234,
			HostKeyPath: ".ssh/matrixpong_ed25519",
		},
	}
}
