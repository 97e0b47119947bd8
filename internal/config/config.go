// Package config loads and validates the application configuration from a
// TOML file, with defaults for every key.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/darriusnjh/KIRKIFY/internal/track"
)

// Capture contains camera settings.
type Capture struct {
	// DeviceID is the camera device index passed to OpenCV.
	DeviceID int `toml:"device_id"`

	// Mirror flips frames horizontally so the preview behaves like a
	// mirror. The tracking core's left/right convention follows this flag.
	Mirror bool `toml:"mirror"`

	// IdleFPS is the capture rate while no motion is detected.
	IdleFPS int `toml:"idle_fps"`

	// ActiveFPS is the capture rate during active tracking.
	ActiveFPS int `toml:"active_fps"`

	// MotionThreshold is the percentage of changed pixels that counts as
	// motion for the idle/active switch.
	MotionThreshold float64 `toml:"motion_threshold"`
}

// Tracking contains the gesture-tracking tunables. Field semantics match
// track.Tuning.
type Tracking struct {
	StillEpsilonPixels  int     `toml:"still_epsilon_pixels"`
	StillResetFrames    int     `toml:"still_reset_frames"`
	JumpThresholdPixels int     `toml:"jump_threshold_pixels"`
	JumpCooldownFrames  int     `toml:"jump_cooldown_frames"`
	AbsentGraceFrames   int     `toml:"absent_grace_frames"`
	MinConfidence       float64 `toml:"min_confidence"`
	AlternationEnabled  bool    `toml:"alternation_enabled"`
}

// Game contains game-mode settings.
type Game struct {
	// Mode selects the startup game: "counting" or "rhythm".
	Mode string `toml:"mode"`

	// RoundSeconds is the counting-game round length.
	RoundSeconds int `toml:"round_seconds"`
}

// Server contains HTTP server settings.
type Server struct {
	// Bind is the listen address, e.g. ":8080".
	Bind string `toml:"bind"`
}

// Config is the root configuration document.
type Config struct {
	DataDir  string   `toml:"data_dir"`
	Capture  Capture  `toml:"capture"`
	Tracking Tracking `toml:"tracking"`
	Game     Game     `toml:"game"`
	Server   Server   `toml:"server"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	tuning := track.DefaultTuning()
	return Config{
		DataDir: defaultDataDir(),
		Capture: Capture{
			DeviceID:        0,
			Mirror:          true,
			IdleFPS:         5,
			ActiveFPS:       15,
			MotionThreshold: 1.0,
		},
		Tracking: Tracking{
			StillEpsilonPixels:  tuning.StillEpsilonPixels,
			StillResetFrames:    tuning.StillResetFrames,
			JumpThresholdPixels: tuning.JumpThresholdPixels,
			JumpCooldownFrames:  tuning.JumpCooldownFrames,
			AbsentGraceFrames:   tuning.AbsentGraceFrames,
			MinConfidence:       tuning.MinConfidence,
			AlternationEnabled:  tuning.AlternationEnabled,
		},
		Game: Game{
			Mode:         "counting",
			RoundSeconds: 30,
		},
		Server: Server{
			Bind: ":8080",
		},
	}
}

// Load reads the configuration from path. A missing file yields the
// defaults; a present file is decoded strictly over them, so unknown keys
// fail rather than being ignored silently.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate fails fast on any value outside its documented range. Tracking
// tunables are validated by the tracking core itself so the rules live in
// one place.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	if c.Capture.DeviceID < 0 {
		return fmt.Errorf("capture.device_id must not be negative, got %d", c.Capture.DeviceID)
	}
	if c.Capture.IdleFPS <= 0 || c.Capture.ActiveFPS <= 0 {
		return fmt.Errorf("capture fps values must be positive, got idle=%d active=%d",
			c.Capture.IdleFPS, c.Capture.ActiveFPS)
	}
	if c.Capture.MotionThreshold <= 0 || c.Capture.MotionThreshold > 100 {
		return fmt.Errorf("capture.motion_threshold must be within (0, 100], got %g",
			c.Capture.MotionThreshold)
	}
	if err := c.Tuning().Validate(); err != nil {
		return err
	}
	switch c.Game.Mode {
	case "counting", "rhythm":
	default:
		return fmt.Errorf("game.mode must be \"counting\" or \"rhythm\", got %q", c.Game.Mode)
	}
	if c.Game.RoundSeconds <= 0 {
		return fmt.Errorf("game.round_seconds must be positive, got %d", c.Game.RoundSeconds)
	}
	if c.Server.Bind == "" {
		return errors.New("server.bind must not be empty")
	}
	return nil
}

// Tuning assembles the tracking core's tuning from the config. The mirror
// convention comes from the capture section so the two can never disagree.
func (c Config) Tuning() track.Tuning {
	return track.Tuning{
		StillEpsilonPixels:  c.Tracking.StillEpsilonPixels,
		StillResetFrames:    c.Tracking.StillResetFrames,
		JumpThresholdPixels: c.Tracking.JumpThresholdPixels,
		JumpCooldownFrames:  c.Tracking.JumpCooldownFrames,
		AbsentGraceFrames:   c.Tracking.AbsentGraceFrames,
		MinConfidence:       c.Tracking.MinConfidence,
		AlternationEnabled:  c.Tracking.AlternationEnabled,
		Mirror:              c.Capture.Mirror,
	}
}

// DatabasePath returns the SQLite database location under the data dir.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "kirkify.db")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.toml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kirkify"
	}
	return filepath.Join(home, ".kirkify")
}
