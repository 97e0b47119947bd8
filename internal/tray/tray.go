// Package tray provides the system tray menu for controlling tracking and
// game rounds.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray is the system tray menu. Callbacks run outside the internal lock.
type Tray struct {
	onToggle   func(enabled bool)
	onNewRound func()
	onRestart  func()
	onQuit     func()
	enabled    bool
	mu         sync.RWMutex

	menuToggle *systray.MenuItem
	menuStatus *systray.MenuItem
}

// New creates a Tray with tracking enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback for the enable/disable menu item.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnNewRound sets the callback for the new-round menu item.
func (t *Tray) OnNewRound(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onNewRound = fn
}

// OnRestart sets the callback for the restart-tracking menu item.
func (t *Tray) OnRestart(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRestart = fn
}

// OnQuit sets the callback for the quit menu item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray. Blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetTitle("Kirkify")
	systray.SetTooltip("Kirkify hand-gesture games")

	t.menuToggle = systray.AddMenuItem("● Tracking on", "Toggle gesture tracking")
	systray.AddSeparator()

	t.menuStatus = systray.AddMenuItem("Next: either hand", "Which hand should move next")
	t.menuStatus.Disable()
	systray.AddSeparator()

	menuNewRound := systray.AddMenuItem("New Round", "Start a new game round")
	menuRestart := systray.AddMenuItem("Restart Tracking", "Clear hand tracking state")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Kirkify")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuNewRound.ClickedCh:
				t.handleNewRound()
			case <-menuRestart.ClickedCh:
				t.handleRestart()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Tracking on")
	} else {
		t.menuToggle.SetTitle("○ Tracking off")
	}

	callback := t.onToggle
	t.mu.Unlock()

	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleNewRound() {
	t.mu.RLock()
	callback := t.onNewRound
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleRestart() {
	t.mu.RLock()
	callback := t.onRestart
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetExpected updates the next-hand display in the menu.
func (t *Tray) SetExpected(side string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus == nil {
		return
	}
	if side == "" || side == "Unknown" {
		t.menuStatus.SetTitle("Next: either hand")
	} else {
		t.menuStatus.SetTitle("Next: " + side + " hand")
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
