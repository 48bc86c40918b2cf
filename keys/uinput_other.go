//go:build !linux

package keys

import "errors"

// Uinput is only available on linux
type Uinput struct{}

func NewUinput(name string) (*Uinput, error) {
	return nil, errors.New("uinput key injection is only supported on linux")
}

func (u *Uinput) Press(k Key) error { return nil }
func (u *Uinput) Release(k Key) error { return nil }
func (u *Uinput) Close() error { return nil }
