// Package keys turns the surface's arrow buttons into keyboard input
package keys

import (
	"fmt"
	"sync"

	"xtouch-bridge/debug"
)

// Key is one of the four arrow keys
type Key int

const (
	Up Key = iota
	Down
	Left
	Right
)

func (k Key) String() string {
	switch k {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// Injector presses and releases keys on the host
type Injector interface {
	Press(k Key) error
	Release(k Key) error
	Close() error
}

// Logging only logs key activity. Used when injection is disabled or
// unsupported on the platform.
type Logging struct{}

func (Logging) Press(k Key) error {
	debug.Log("keys", "press %s", k)
	return nil
}

func (Logging) Release(k Key) error {
	debug.Log("keys", "release %s", k)
	return nil
}

func (Logging) Close() error { return nil }

// Action is one recorded key transition
type Action struct {
	Key     Key
	Pressed bool
}

func (a Action) String() string {
	if a.Pressed {
		return "press " + a.Key.String()
	}
	return "release " + a.Key.String()
}

// Recorder keeps every key transition in memory
type Recorder struct {
	mu      sync.Mutex
	actions []Action
}

func (r *Recorder) Press(k Key) error {
	r.record(Action{Key: k, Pressed: true})
	return nil
}

func (r *Recorder) Release(k Key) error {
	r.record(Action{Key: k})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) record(a Action) {
	r.mu.Lock()
	r.actions = append(r.actions, a)
	r.mu.Unlock()
}

// Actions returns a copy of the recorded transitions
func (r *Recorder) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Action(nil), r.actions...)
}

// Open returns the uinput injector when enabled, falling back to Logging
// if the virtual keyboard can't be created
func Open(enabled bool) Injector {
	if !enabled {
		return Logging{}
	}
	inj, err := NewUinput(DeviceName)
	if err != nil {
		debug.Warn("keys", "key injection unavailable, logging only: %v", err)
		return Logging{}
	}
	return inj
}

// DeviceName is the name of the virtual keyboard
const DeviceName = "xtouch-bridge keys"
