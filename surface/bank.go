package surface

import (
	"errors"
	"fmt"
	"strings"

	"xtouch-bridge/debug"
)

// Mode selects which bank counter is active
type Mode int

const (
	ModeChannel Mode = iota
	ModePresets
)

const (
	// ChannelBanks and PresetsBanks are the counter sizes (0-63, 0-99)
	ChannelBanks = 64
	PresetsBanks = 100

	// mode indicator buttons
	LEDModeChannel = 86
	LEDModePresets = 87
)

func (m Mode) String() string {
	switch m {
	case ModeChannel:
		return "channel"
	case ModePresets:
		return "presets"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts "channel" or "presets" in any case
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "channel":
		return ModeChannel, nil
	case "presets":
		return ModePresets, nil
	}
	return ModeChannel, fmt.Errorf("mode %q: %w", name, ErrInvalidMode)
}

// size is the number of banks the mode wraps around
func (m Mode) size() int {
	if m == ModePresets {
		return PresetsBanks
	}
	return ChannelBanks
}

// Banks holds one counter per mode
type Banks struct {
	Channel int
	Presets int
}

// Get returns the counter for a mode
func (b *Banks) Get(m Mode) int {
	if m == ModePresets {
		return b.Presets
	}
	return b.Channel
}

// Set stores the counter for a mode
func (b *Banks) Set(m Mode, n int) {
	if m == ModePresets {
		b.Presets = n
		return
	}
	b.Channel = n
}

// ActiveBank returns the counter of the current mode
func (st *State) ActiveBank() int {
	return st.Banks.Get(st.Mode)
}

// SetMode switches mode by name. An unknown name leaves the state alone.
func (s *Surface) SetMode(name string) error {
	m, err := ParseMode(name)
	if err != nil {
		debug.Warn("mode", "mode %q invalid, staying on %s", name, s.Mode)
		return err
	}
	return s.SetActiveMode(m)
}

// SetActiveMode switches mode (re-entry included), lights exactly one mode
// LED and shows the mode's bank and name on the segment display
func (s *Surface) SetActiveMode(m Mode) error {
	if m != ModeChannel && m != ModePresets {
		return fmt.Errorf("mode %d: %w", int(m), ErrInvalidMode)
	}
	s.Mode = m

	on, off := LEDModeChannel, LEDModePresets
	if m == ModePresets {
		on, off = LEDModePresets, LEDModeChannel
	}
	debug.Log("mode", "mode updated to %s", m)

	return errors.Join(
		s.On(on),
		s.Off(off),
		s.SetSegmentText(0, fmt.Sprintf("%02d%-7s", s.ActiveBank(), m)),
	)
}

// wrap reduces n into [0,size)
func wrap(n, size int) int {
	return ((n % size) + size) % size
}

// AdjustBank moves the active counter by delta, wrapping around
// (channel 0-63, presets 0-99), and shows it in slots 0-1
func (s *Surface) AdjustBank(delta int) error {
	bank := wrap(s.ActiveBank()+delta, s.Mode.size())
	s.Banks.Set(s.Mode, bank)
	debug.Log("bank", "%s bank = %d", s.Mode, bank)
	return s.SetSegmentText(0, fmt.Sprintf("%02d", bank))
}

// SetBankNumber sets a counter directly without wrapping. A nil mode means
// the active one; the display only changes when the active counter does.
func (s *Surface) SetBankNumber(mode *Mode, n int) error {
	target := s.Mode
	if mode != nil {
		target = *mode
	}
	s.Banks.Set(target, n)
	if target != s.Mode {
		return nil
	}
	return s.SetSegmentText(0, fmt.Sprintf("%02d", n))
}
