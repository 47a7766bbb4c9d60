//go:build windows

package baseview

import (
	"github.com/ingo-dsp/baseview/internal/win32win"
	"github.com/ingo-dsp/baseview/internal/wincore"
)

func openPlatform(parent RawWindow, opts WindowOpenOptions, blocking bool, build func(*Window) WindowHandler) (*wincore.Handle, error) {
	return win32win.Open(win32win.Options{
		Title:    opts.Title,
		Size:     opts.Size,
		Scale:    opts.Scale.factor,
		Parent:   parent.Win32HWND,
		Blocking: blocking,
		GPU:      opts.GPU,
		Log:      Logger(),
	}, wrapBuild(build))
}

func rawFromID(id uint64) RawWindow {
	return RawWindow{Win32HWND: uintptr(id)}
}
