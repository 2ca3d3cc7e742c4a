package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Keep the file's physics values
)

// speedPreset is the serve speed and per-hit increment for a preset.
type speedPreset struct {
	start, increment float64
}

var presets = map[DifficultyPreset]speedPreset{
	DifficultyEasy:   {start: 8, increment: 1},
	DifficultyNormal: {start: 10, increment: 2},
	DifficultyHard:   {start: 16, increment: 3},
	DifficultyFixed:  {},
}

// ParseDifficulty validates a preset name. An empty name selects normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(name)
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
	}
	return p, nil
}

// ApplyPreset sets the ball speeds for a difficulty preset. The fixed
// preset leaves the configured physics untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty = preset
	if preset == DifficultyFixed {
		return
	}
	p, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Physics.StartSpeed = p.start
	cfg.Physics.SpeedIncrement = p.increment
}
