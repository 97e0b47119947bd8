// Package app wires the capture, detection, tracking, game, and server
// layers into the running application.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/darriusnjh/KIRKIFY/internal/capture"
	"github.com/darriusnjh/KIRKIFY/internal/config"
	"github.com/darriusnjh/KIRKIFY/internal/detector"
	"github.com/darriusnjh/KIRKIFY/internal/game"
	"github.com/darriusnjh/KIRKIFY/internal/server"
	"github.com/darriusnjh/KIRKIFY/internal/store"
	"github.com/darriusnjh/KIRKIFY/internal/track"
)

// Options holds the application dependencies. Camera and Detector may be
// pre-set for tests; when nil, New constructs the real ones.
type Options struct {
	Config   config.Config
	Store    *store.Store
	Events   *server.EventHub
	Camera   capture.Camera
	Detector detector.Detector
}

// App orchestrates the frame pipeline and the game round lifecycle.
type App struct {
	opts    Options
	camera  capture.Camera
	motion  *capture.MotionDetector
	det     detector.Detector
	session *track.Session

	mu         sync.RWMutex
	enabled    bool
	stopCh     chan struct{}
	frameIndex int64
	activeGame game.Game
}

// New creates an App from the options. When no detector is injected it tries
// MediaPipe and falls back to the mock detector so the rest of the app stays
// usable without a working Python environment.
func New(opts Options) (*App, error) {
	session, err := track.NewSession(opts.Config.Tuning())
	if err != nil {
		return nil, fmt.Errorf("create tracking session: %w", err)
	}

	a := &App{
		opts:    opts,
		motion:  capture.NewMotionDetector(opts.Config.Capture.MotionThreshold),
		session: session,
	}

	a.camera = opts.Camera
	if a.camera == nil {
		a.camera = capture.NewCamera(capture.Options{
			DeviceID: opts.Config.Capture.DeviceID,
			Mirror:   opts.Config.Capture.Mirror,
		})
	}

	a.det = opts.Detector
	if a.det == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.det = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.det = detector.NewMockDetector()
		}
	}

	return a, nil
}

// SetEnabled enables or disables gesture tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Session returns the tracking session.
func (a *App) Session() *track.Session {
	return a.session
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.det
}

// RestartSession clears all tracking and turn-taking state. Reference
// positions re-seed from the next frame each hand appears in.
func (a *App) RestartSession() {
	a.session.Reset()
	log.Println("Tracking session restarted")
}

// StartRound begins a game round. The game's turn policy, if any, replaces
// the session's for the duration of the round.
func (a *App) StartRound(g game.Game) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session.Reset()
	if policy := g.Policy(); policy != nil {
		a.session.SetPolicy(policy)
	} else {
		a.session.SetPolicy(a.defaultPolicy())
	}

	g.Start(time.Now())
	a.activeGame = g

	a.publish("round_started", map[string]any{"mode": g.Name()})
	log.Printf("Round started: %s", g.Name())
}

// FinishRound ends the current round, persists its result, and restores the
// configured turn policy. It returns the result, or false when no round was
// running.
func (a *App) FinishRound() (game.Result, bool) {
	a.mu.Lock()
	g := a.activeGame
	a.activeGame = nil
	a.session.SetPolicy(a.defaultPolicy())
	a.mu.Unlock()

	if g == nil || !g.Active() {
		return game.Result{}, false
	}

	result := g.Finish(time.Now())
	a.persistResult(result)

	a.publish("round_finished", map[string]any{
		"mode":     result.Mode,
		"score":    result.Score,
		"gestures": result.Gestures,
	})
	log.Printf("Round finished: %s score=%d gestures=%d",
		result.Mode, result.Score, result.Gestures)

	return result, true
}

// NewGame constructs the game for the configured mode.
func (a *App) NewGame() game.Game {
	cfg := a.opts.Config.Game
	switch cfg.Mode {
	case game.ModeRhythm:
		// One note per second at the active frame rate, starting after a
		// two-second lead-in, for the round length.
		fps := int64(a.opts.Config.Capture.ActiveFPS)
		chart := game.DefaultChart(2*fps, fps, cfg.RoundSeconds)
		return game.NewRhythmGame(chart, time.Duration(cfg.RoundSeconds+2)*time.Second)
	default:
		return game.NewCountingGame(time.Duration(cfg.RoundSeconds) * time.Second)
	}
}

func (a *App) defaultPolicy() track.Policy {
	if a.opts.Config.Tracking.AlternationEnabled {
		return track.NewAlternationGate()
	}
	return track.NewPassAllGate()
}

func (a *App) persistResult(result game.Result) {
	if a.opts.Store == nil {
		return
	}

	sessionID := uuid.New().String()
	err := a.opts.Store.Sessions().Create(&store.Session{
		ID:         sessionID,
		Mode:       result.Mode,
		Score:      result.Score,
		Gestures:   result.Gestures,
		DurationMS: result.Duration().Milliseconds(),
		StartedAt:  result.StartedAt,
		EndedAt:    result.EndedAt,
	})
	if err != nil {
		log.Printf("Error saving session: %v", err)
		return
	}

	improved, err := a.opts.Store.Scores().Submit(&store.HighScore{
		ID:        uuid.New().String(),
		Mode:      result.Mode,
		Score:     result.Score,
		SessionID: nullString(sessionID),
	})
	if err != nil {
		log.Printf("Error saving high score: %v", err)
		return
	}
	if improved {
		a.publish("high_score", map[string]any{
			"mode":  result.Mode,
			"score": result.Score,
		})
	}
}

func (a *App) publish(event string, payload any) {
	if a.opts.Events != nil {
		a.opts.Events.Publish(event, payload)
	}
}

// Start opens the camera and begins the frame pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	a.camera.SetFPS(a.opts.Config.Capture.IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()
	if err := a.det.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}

	log.Println("Tracking pipeline stopped")
}
