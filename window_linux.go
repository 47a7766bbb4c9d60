//go:build linux

package baseview

import (
	"github.com/ingo-dsp/baseview/internal/wincore"
	"github.com/ingo-dsp/baseview/internal/x11win"
)

func openPlatform(parent RawWindow, opts WindowOpenOptions, blocking bool, build func(*Window) WindowHandler) (*wincore.Handle, error) {
	return x11win.Open(x11win.Options{
		Title:    opts.Title,
		Size:     opts.Size,
		Scale:    opts.Scale.factor,
		Parent:   parent.X11Window,
		Blocking: blocking,
		GPU:      opts.GPU,
		Log:      Logger(),
	}, wrapBuild(build))
}

func rawFromID(id uint64) RawWindow {
	return RawWindow{X11Window: uint32(id)}
}
