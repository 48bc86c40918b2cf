package midi

import (
	"errors"
	"fmt"
	"sync/atomic"

	"xtouch-bridge/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrTransportWrite is returned (wrapped) whenever a port rejects a write
var ErrTransportWrite = errors.New("transport write failed")

// MaxBatch is the largest batch the bridge reads per poll
const MaxBatch = 10

// inputBuffer bounds the events queued between two polls
const inputBuffer = 256

// Writer is the output half of a transport
type Writer interface {
	WriteRaw(status uint8, data ...uint8) error
	WriteSysEx(frame []byte) error
}

// Transport is a bidirectional MIDI connection with non-blocking reads
type Transport interface {
	Writer
	ReadBatch(max int) []Event
	Close() error
}

// Port is a Transport backed by a gomidi input/output pair
type Port struct {
	name     string
	inPort   drivers.In
	outPort  drivers.Out
	send     func(msg gomidi.Message) error
	stopFunc func()

	events  chan Event
	dropped uint64
}

// OpenPort opens the given input and output and starts listening.
// Either side may be nil for a one-directional port.
func OpenPort(name string, inPort drivers.In, outPort drivers.Out) (*Port, error) {
	p := &Port{
		name:    name,
		inPort:  inPort,
		outPort: outPort,
		events:  make(chan Event, inputBuffer),
	}

	// Open output
	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output %s: %w", outPort, err)
		}
		p.send = send
	}

	// Open input
	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, p.receive, gomidi.UseSysEx(), gomidi.HandleError(func(err error) {
			debug.Warn(p.name, "listener error: %v", err)
		}))
		if err != nil {
			if outPort != nil {
				_ = outPort.Close()
			}
			return nil, fmt.Errorf("open input %s: %w", inPort, err)
		}
		p.stopFunc = stop
	}

	debug.Info(p.name, "opened in=%v out=%v", inPort, outPort)
	return p, nil
}

func (p *Port) receive(msg gomidi.Message, timestampms int32) {
	ev, ok := EventFromMessage(msg)
	if !ok {
		return
	}
	select {
	case p.events <- ev:
	default:
		n := atomic.AddUint64(&p.dropped, 1)
		debug.LogEvery(50, p.name, "input buffer full, dropped %d events", n)
	}
}

// Name returns the label the port was opened with
func (p *Port) Name() string {
	return p.name
}

// ReadBatch returns up to max queued events without blocking
func (p *Port) ReadBatch(max int) []Event {
	var batch []Event
	for len(batch) < max {
		select {
		case ev := <-p.events:
			batch = append(batch, ev)
		default:
			return batch
		}
	}
	return batch
}

// WriteRaw sends a channel message built from a status byte and data bytes
func (p *Port) WriteRaw(status uint8, data ...uint8) error {
	msg := make(gomidi.Message, 0, len(data)+1)
	msg = append(msg, status)
	msg = append(msg, data...)
	return p.write(msg)
}

// WriteSysEx sends a complete F0 ... F7 frame
func (p *Port) WriteSysEx(frame []byte) error {
	if len(frame) < 2 || frame[0] != SysEx || frame[len(frame)-1] != sysExEnd {
		return fmt.Errorf("%s: malformed sysex frame % X: %w", p.name, frame, ErrTransportWrite)
	}
	return p.write(gomidi.Message(frame))
}

func (p *Port) write(msg gomidi.Message) error {
	if p.send == nil {
		return fmt.Errorf("%s: no output open: %w", p.name, ErrTransportWrite)
	}
	if err := p.send(msg); err != nil {
		return fmt.Errorf("%s: send % X: %w: %v", p.name, []byte(msg), ErrTransportWrite, err)
	}
	return nil
}

// Close stops listening and closes both ports
func (p *Port) Close() error {
	if p.stopFunc != nil {
		p.stopFunc()
		p.stopFunc = nil
	}
	var errs []error
	if p.inPort != nil {
		errs = append(errs, p.inPort.Close())
	}
	if p.outPort != nil {
		errs = append(errs, p.outPort.Close())
	}
	debug.Info(p.name, "closed")
	return errors.Join(errs...)
}
