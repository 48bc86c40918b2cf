package midi

import "fmt"

// FakeTransport is an in-memory Transport. Queued events are returned by
// ReadBatch; every write is recorded in wire form.
type FakeTransport struct {
	Name       string
	Pending    []Event
	Written    [][]byte
	FailWrites bool
	Closed     bool
}

// NewFakeTransport creates an empty fake
func NewFakeTransport(name string) *FakeTransport {
	return &FakeTransport{Name: name}
}

// Queue appends events for the next reads
func (f *FakeTransport) Queue(events ...Event) {
	f.Pending = append(f.Pending, events...)
}

func (f *FakeTransport) ReadBatch(max int) []Event {
	n := max
	if n > len(f.Pending) {
		n = len(f.Pending)
	}
	batch := append([]Event(nil), f.Pending[:n]...)
	f.Pending = f.Pending[n:]
	return batch
}

func (f *FakeTransport) WriteRaw(status uint8, data ...uint8) error {
	msg := append([]byte{status}, data...)
	return f.record(msg)
}

func (f *FakeTransport) WriteSysEx(frame []byte) error {
	return f.record(append([]byte(nil), frame...))
}

func (f *FakeTransport) record(msg []byte) error {
	if f.FailWrites {
		return fmt.Errorf("%s: send % X: %w", f.Name, msg, ErrTransportWrite)
	}
	f.Written = append(f.Written, msg)
	return nil
}

func (f *FakeTransport) Close() error {
	f.Closed = true
	return nil
}

// Reset forgets recorded writes
func (f *FakeTransport) Reset() {
	f.Written = nil
}

// SysExFrames returns the recorded SysEx writes in order
func (f *FakeTransport) SysExFrames() [][]byte {
	var frames [][]byte
	for _, w := range f.Written {
		if len(w) > 0 && w[0] == SysEx {
			frames = append(frames, w)
		}
	}
	return frames
}

// LastSysEx returns the most recent SysEx write, or nil
func (f *FakeTransport) LastSysEx() []byte {
	frames := f.SysExFrames()
	if len(frames) == 0 {
		return nil
	}
	return frames[len(frames)-1]
}

// ChannelMessages returns the recorded three-byte writes in order
func (f *FakeTransport) ChannelMessages() [][]byte {
	var msgs [][]byte
	for _, w := range f.Written {
		if len(w) > 0 && w[0] != SysEx {
			msgs = append(msgs, w)
		}
	}
	return msgs
}
