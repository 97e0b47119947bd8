package app

import (
	"database/sql"
	"log"
	"time"

	"github.com/darriusnjh/KIRKIFY/internal/detector"
)

// idleTimeout is how long the pipeline stays in active mode after the last
// detected motion.
const idleTimeout = 2 * time.Second

// runPipeline is the frame loop. It idles at the low frame rate until motion
// appears, then raises the rate and runs hand detection on every frame,
// feeding observations into the tracking session. Accepted gestures go to
// the active game and the event feed.
func (a *App) runPipeline(stopCh chan struct{}) {
	idleFPS := a.opts.Config.Capture.IdleFPS
	activeFPS := a.opts.Config.Capture.ActiveFPS

	activeMode := false
	lastMotion := time.Now()

	interval := time.Second / time.Duration(idleFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motion, _ := a.motion.Detect(frame)
			if motion {
				lastMotion = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(activeFPS)
					interval = time.Second / time.Duration(activeFPS)
					ticker.Reset(interval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotion) > idleTimeout {
				activeMode = false
				a.camera.SetFPS(idleFPS)
				interval = time.Second / time.Duration(idleFPS)
				ticker.Reset(interval)
				log.Println("Switched to idle mode")
			}

			if !activeMode {
				frame.Close()
				continue
			}

			hands, err := a.det.Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			a.processFrame(hands)
		}
	}
}

// processFrame advances the tracking session by one frame and routes any
// accepted gesture events. Empty frames still advance so hand absence is
// tracked.
func (a *App) processFrame(hands []detector.Observation) {
	a.mu.Lock()
	a.frameIndex++
	frame := a.frameIndex
	g := a.activeGame
	a.mu.Unlock()

	events, corrected := a.session.Advance(frame, hands)
	if corrected {
		log.Printf("Frame %d: duplicate handedness corrected by position", frame)
	}

	for _, ev := range events {
		if g != nil && g.Active() {
			g.HandleGesture(ev)
		}
		a.publish("gesture", ev)
	}

	// The counting game ends on a clock; close it out once the deadline
	// passes so the result is persisted even if no further gesture comes.
	if cg, ok := g.(deadlineGame); ok && g.Active() && time.Now().After(cg.Deadline()) {
		a.FinishRound()
	}
}

type deadlineGame interface {
	Deadline() time.Time
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
