package midi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// ScanTimeout guards port enumeration (CoreMIDI can hang)
const ScanTimeout = 3 * time.Second

// Ports is a snapshot of the available MIDI ports
type Ports struct {
	Ins  []drivers.In
	Outs []drivers.Out
}

// InNames returns the input port names in driver order
func (p Ports) InNames() []string {
	names := make([]string, 0, len(p.Ins))
	for _, in := range p.Ins {
		names = append(names, in.String())
	}
	return names
}

// OutNames returns the output port names in driver order
func (p Ports) OutNames() []string {
	names := make([]string, 0, len(p.Outs))
	for _, out := range p.Outs {
		names = append(names, out.String())
	}
	return names
}

// Scan lists the MIDI ports, giving up after timeout
func Scan(timeout time.Duration) (Ports, error) {
	ch := make(chan Ports, 1)
	go func() {
		ch <- Ports{Ins: gomidi.GetInPorts(), Outs: gomidi.GetOutPorts()}
	}()

	select {
	case ports := <-ch:
		return ports, nil
	case <-time.After(timeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return Ports{}, fmt.Errorf("midi port scan timed out after %s", timeout)
	}
}

// FindIn resolves an input by index ("3") or case-insensitive name substring
func (p Ports) FindIn(spec string) (drivers.In, error) {
	if spec == "" {
		return nil, nil
	}
	if idx, err := strconv.Atoi(spec); err == nil {
		if idx < 0 || idx >= len(p.Ins) {
			return nil, fmt.Errorf("input index %d out of range (0-%d)", idx, len(p.Ins)-1)
		}
		return p.Ins[idx], nil
	}
	lower := strings.ToLower(spec)
	for _, in := range p.Ins {
		if strings.Contains(strings.ToLower(in.String()), lower) {
			return in, nil
		}
	}
	return nil, fmt.Errorf("no MIDI input port matching %q", spec)
}

// FindOut resolves an output by index ("6") or case-insensitive name substring
func (p Ports) FindOut(spec string) (drivers.Out, error) {
	if spec == "" {
		return nil, nil
	}
	if idx, err := strconv.Atoi(spec); err == nil {
		if idx < 0 || idx >= len(p.Outs) {
			return nil, fmt.Errorf("output index %d out of range (0-%d)", idx, len(p.Outs)-1)
		}
		return p.Outs[idx], nil
	}
	lower := strings.ToLower(spec)
	for _, out := range p.Outs {
		if strings.Contains(strings.ToLower(out.String()), lower) {
			return out, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output port matching %q", spec)
}

// Open resolves both specs and opens a Port
func (p Ports) Open(name, inSpec, outSpec string) (*Port, error) {
	in, err := p.FindIn(inSpec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	out, err := p.FindOut(outSpec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if in == nil && out == nil {
		return nil, fmt.Errorf("%s: no ports selected", name)
	}
	return OpenPort(name, in, out)
}

// DetectXTouch returns the index of the first X-Touch input and output,
// or -1 when none is connected
func (p Ports) DetectXTouch() (inIdx, outIdx int) {
	inIdx, outIdx = -1, -1
	for i, in := range p.Ins {
		if isXTouch(in.String()) {
			inIdx = i
			break
		}
	}
	for i, out := range p.Outs {
		if isXTouch(out.String()) {
			outIdx = i
			break
		}
	}
	return inIdx, outIdx
}

func isXTouch(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "x-touch") || strings.Contains(name, "xtouch")
}

// CloseDriver releases the rtmidi driver
func CloseDriver() {
	gomidi.CloseDriver()
}
