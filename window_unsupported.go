//go:build !linux && !windows

package baseview

import (
	"errors"

	"github.com/ingo-dsp/baseview/internal/wincore"
)

// ErrUnsupportedPlatform is returned when opening a window on a platform
// without a native adapter.
var ErrUnsupportedPlatform = errors.New("baseview: no window adapter for this platform")

func openPlatform(RawWindow, WindowOpenOptions, bool, func(*Window) WindowHandler) (*wincore.Handle, error) {
	return nil, ErrUnsupportedPlatform
}

func rawFromID(uint64) RawWindow {
	return RawWindow{}
}
