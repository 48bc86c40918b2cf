package keys

import (
	"fmt"

	"github.com/holoplot/go-evdev"

	"xtouch-bridge/debug"
)

// BUS_VIRTUAL from linux/input.h
const busVirtual = 0x06

var codes = map[Key]evdev.EvCode{
	Up:    evdev.KEY_UP,
	Down:  evdev.KEY_DOWN,
	Left:  evdev.KEY_LEFT,
	Right: evdev.KEY_RIGHT,
}

// Uinput injects keys through a virtual keyboard created with /dev/uinput
type Uinput struct {
	dev *evdev.InputDevice
}

// NewUinput creates the virtual keyboard. Needs write access to /dev/uinput.
func NewUinput(name string) (*Uinput, error) {
	keyCodes := make([]evdev.EvCode, 0, len(codes))
	for _, c := range codes {
		keyCodes = append(keyCodes, c)
	}

	dev, err := evdev.CreateDevice(name, evdev.InputID{
		BusType: busVirtual,
		Vendor:  0x1209,
		Product: 0x7854,
		Version: 1,
	}, map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: keyCodes,
	})
	if err != nil {
		return nil, fmt.Errorf("create uinput device: %w", err)
	}
	debug.Info("keys", "virtual keyboard %q created", name)
	return &Uinput{dev: dev}, nil
}

func (u *Uinput) Press(k Key) error {
	return u.send(k, 1)
}

func (u *Uinput) Release(k Key) error {
	return u.send(k, 0)
}

func (u *Uinput) send(k Key, value int32) error {
	code, ok := codes[k]
	if !ok {
		return fmt.Errorf("no key code for %s", k)
	}
	if err := u.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}); err != nil {
		return fmt.Errorf("key %s: %w", k, err)
	}
	if err := u.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}); err != nil {
		return fmt.Errorf("key %s sync: %w", k, err)
	}
	return nil
}

// Close destroys the virtual keyboard
func (u *Uinput) Close() error {
	return u.dev.Close()
}
