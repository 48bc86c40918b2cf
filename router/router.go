// Package router runs the bridge loop between the X-Touch and the sink
// device. Surface events hitting a reserved control code are handled
// locally; everything else is passed through in both directions.
package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"xtouch-bridge/debug"
	"xtouch-bridge/keys"
	"xtouch-bridge/midi"
	"xtouch-bridge/surface"
)

// Reserved notes
const (
	NoteBankDown     = 92
	NoteBankUp       = 93
	NoteModeChannel  = 94
	NoteModePresets  = 95
	NoteUp           = 96
	NoteDown         = 97
	NoteLeft         = 98
	NoteRight        = 99
	NoteBPMTap       = 101
	pressVelocity    = 127
	releaseVelocity  = 0
	directionalShift = 8 // a directional button's LED is its note minus 8
)

// Reserved controllers
const (
	CCBPMTap     = 64
	CCBankAdjust = 88
	CCEncoder0   = 80
	CCEncoder7   = 87
)

// Feedback LEDs
const (
	LEDBankDown = 84
	LEDBankUp   = 85
	LEDBPM      = 93
)

// BPMSlot is the first of the three segment slots showing the tempo
const BPMSlot = 9

// maxBPMDisplay is the largest tempo the three slots can show
const maxBPMDisplay = 999

// DefaultPollInterval is the idle sleep between two empty polls
const DefaultPollInterval = time.Millisecond

var directionKeys = map[uint8]keys.Key{
	NoteUp:    keys.Up,
	NoteDown:  keys.Down,
	NoteLeft:  keys.Left,
	NoteRight: keys.Right,
}

// Config wires a Router
type Config struct {
	Surface midi.Transport
	Sink    midi.Transport // may be nil: surface events are then dropped
	Keys    keys.Injector  // nil means keys.Logging

	PollInterval time.Duration
	FaderStep    time.Duration // delay between faders in the startup sweep
	Now          func() time.Time
}

// Router owns the surface state and both transports
type Router struct {
	surface *surface.Surface
	dev     midi.Transport
	sink    midi.Transport
	keys    keys.Injector
	bpm     *surface.Tracker

	pollInterval time.Duration
	faderStep    time.Duration
}

// New creates a router with a fresh surface in channel mode
func New(cfg Config) *Router {
	inj := cfg.Keys
	if inj == nil {
		inj = keys.Logging{}
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Router{
		surface:      surface.New(cfg.Surface),
		dev:          cfg.Surface,
		sink:         cfg.Sink,
		keys:         inj,
		bpm:          surface.NewTracker(cfg.Now),
		pollInterval: poll,
		faderStep:    cfg.FaderStep,
	}
}

// Surface gives access to the surface state
func (r *Router) Surface() *surface.Surface {
	return r.surface
}

// Run polls both transports until ctx is cancelled. The surface is
// quiesced on the way out however Run exits, panics included. The returned
// error is the quiesce result.
func (r *Router) Run(ctx context.Context) (err error) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()
	defer func() {
		debug.Info("router", "stopping, resetting surface")
		err = r.Quiesce()
	}()

	debug.Info("router", "bridge running")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// drain while there is traffic
			for r.Step() > 0 {
				if ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// Step runs one poll: a batch from the surface, then a batch from the sink.
// It returns the number of events read.
func (r *Router) Step() int {
	n := 0

	batch := r.dev.ReadBatch(midi.MaxBatch)
	n += len(batch)
	for _, ev := range midi.Debounce(batch) {
		debug.Log("router", "surface: %s", ev)
		if r.intercept(ev) {
			continue
		}
		r.forward(r.sink, "sink", ev)
	}

	if r.sink != nil {
		batch = r.sink.ReadBatch(midi.MaxBatch)
		n += len(batch)
		for _, ev := range midi.Debounce(batch) {
			r.forward(r.dev, "surface", ev)
		}
	}
	return n
}

func (r *Router) forward(to midi.Transport, name string, ev midi.Event) {
	if to == nil {
		debug.LogEvery(100, "router", "no %s connected, dropping %s", name, ev)
		return
	}
	debug.LogEvery(50, "forward", "-> %s %s", name, ev)

	var err error
	if ev.Type == midi.SysEx {
		err = to.WriteSysEx(ev.Bytes())
	} else {
		b := ev.Bytes()
		if len(b) == 0 {
			return
		}
		err = to.WriteRaw(b[0], b[1:]...)
	}
	if err != nil {
		debug.Warn("router", "forward to %s: %v", name, err)
	}
}

// intercept handles reserved codes and reports whether ev was one
func (r *Router) intercept(ev midi.Event) bool {
	switch {
	case ev.IsNote():
		velocity := ev.Data2
		if ev.Type == midi.NoteOff {
			velocity = releaseVelocity
		}
		return r.handleNote(ev.Data1, velocity)
	case ev.Type == midi.CC:
		return r.handleCC(ev.Channel, ev.Data1, ev.Data2)
	}
	return false
}

func (r *Router) handleNote(note, velocity uint8) bool {
	pressed := velocity == pressVelocity
	released := velocity == releaseVelocity

	switch note {
	case NoteBankDown, NoteBankUp:
		led, delta := LEDBankDown, -1
		if note == NoteBankUp {
			led, delta = LEDBankUp, 1
		}
		if pressed {
			r.check(r.surface.AdjustBank(delta))
			r.check(r.surface.On(led))
		} else if released {
			r.check(r.surface.Off(led))
		}
	case NoteModeChannel:
		if pressed {
			r.check(r.surface.SetActiveMode(surface.ModeChannel))
		}
	case NoteModePresets:
		if pressed {
			r.check(r.surface.SetActiveMode(surface.ModePresets))
		}
	case NoteUp, NoteDown, NoteLeft, NoteRight:
		led := int(note) - directionalShift
		key := directionKeys[note]
		if pressed {
			r.check(r.surface.On(led))
			r.check(r.keys.Press(key))
		} else if released {
			r.check(r.surface.Off(led))
			r.check(r.keys.Release(key))
		}
	case NoteBPMTap:
		if pressed {
			r.tap()
		} else if released {
			r.check(r.surface.Off(LEDBPM))
		}
	default:
		return false
	}
	return true
}

func (r *Router) handleCC(channel, controller, value uint8) bool {
	switch {
	case controller == CCBPMTap:
		switch value {
		case 0, 48:
			r.tap()
		case 127, 175:
			r.check(r.surface.Off(LEDBPM))
		}
	case controller == CCBankAdjust:
		switch value {
		case 65:
			r.check(r.surface.AdjustBank(1))
		case 1:
			r.check(r.surface.AdjustBank(-1))
		}
	case controller >= CCEncoder0 && controller <= CCEncoder7:
		idx := int(controller - CCEncoder0)
		v, ok := r.surface.Encoders.Apply(idx, value)
		if !ok {
			debug.Log("encoder", "encoder %d: ignoring value %d", idx, value)
			return true
		}
		debug.Log("encoder", "encoder %d = %d", idx, v)
		// echo so the LED ring shows the accepted value
		r.check(r.dev.WriteRaw(midi.CC|channel, controller, uint8(v)))
	default:
		return false
	}
	return true
}

// tap lights the BPM LED, records the tap and shows the tempo if there is one
func (r *Router) tap() {
	r.check(r.surface.On(LEDBPM))
	r.bpm.Tap()
	bpm, ok := r.bpm.Estimate()
	if !ok {
		return
	}
	debug.Log("bpm", "%d bpm", bpm)
	if bpm > maxBPMDisplay {
		bpm = maxBPMDisplay
	}
	r.check(r.surface.SetSegmentText(BPMSlot, fmt.Sprintf("%03d", bpm)))
}

// check logs side effect failures; they never stop the loop
func (r *Router) check(err error) {
	if err != nil {
		debug.Warn("router", "%v", err)
	}
}

// Quiesce returns the surface to a blank state: display cleared, scribble
// strips reset and every note and controller zeroed. All steps run even
// if some fail.
func (r *Router) Quiesce() error {
	return errors.Join(
		r.surface.ClearSegments(),
		r.surface.ResetCells(),
		r.surface.ResetControls(),
	)
}

// Startup plays the power-on animation (everything lit, faders up, test
// text on every display), holds it for pause, then resets the surface to
// bank 0 in channel mode
func (r *Router) Startup(ctx context.Context, pause time.Duration) error {
	s := r.surface
	var errs []error

	errs = append(errs, s.AllOn())
	for cc := uint8(70); cc < 90; cc++ {
		errs = append(errs, r.dev.WriteRaw(midi.CC, cc, 127))
		if err := sleep(ctx, r.faderStep); err != nil {
			break
		}
	}
	errs = append(errs, s.SetSegmentText(0, "0123456789ab"))
	for i, color := range surface.ColorNames {
		errs = append(errs, s.SetCellColor(i, color, false, false))
	}
	for i := 0; i < surface.NumCells; i++ {
		errs = append(errs, s.SetCellText(i, surface.Text("Display"), surface.Text(fmt.Sprint(i))))
	}

	ctxErr := sleep(ctx, pause)

	errs = append(errs,
		s.ResetControls(),
		s.ClearSegments(),
		s.ResetCells(),
	)
	channel, presets := surface.ModeChannel, surface.ModePresets
	errs = append(errs,
		s.SetBankNumber(&channel, 0),
		s.SetBankNumber(&presets, 0),
		s.SetMode("channel"),
	)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	return ctxErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
