package baseview

import (
	"github.com/ingo-dsp/baseview/cursor"
	"github.com/ingo-dsp/baseview/dpi"
	"github.com/ingo-dsp/baseview/event"
	"github.com/ingo-dsp/baseview/gpu"
	"github.com/ingo-dsp/baseview/internal/wincore"
)

// WindowHandler receives the window's frame ticks and input events. All
// callbacks arrive on the window's run loop; the Window argument is only
// valid for the duration of the callback's window lifetime.
type WindowHandler interface {
	// OnFrame fires at the frame cadence while the window is open.
	OnFrame(w *Window)
	// OnEvent delivers one normalized event. The returned status is
	// consulted on the keyboard path: Captured stops a keystroke from
	// reaching the platform's default handling.
	OnEvent(w *Window, ev event.Event) event.Status
}

// WindowOpenOptions describes the window to open.
type WindowOpenOptions struct {
	Title string
	// Size is the requested logical size of the client area.
	Size dpi.Size
	// Scale selects how the scale factor is determined.
	Scale ScalePolicy
	// GPU, when set, gives the window a GPU context owned by the window
	// and released during close.
	GPU *gpu.Config
}

// ScalePolicy selects between the platform-reported scale factor and a
// caller-imposed one.
type ScalePolicy struct {
	factor float64
}

// SystemScaleFactor follows the platform's DPI, including changes while the
// window is open.
func SystemScaleFactor() ScalePolicy { return ScalePolicy{} }

// FixedScaleFactor pins the scale factor; platform DPI changes are ignored.
func FixedScaleFactor(factor float64) ScalePolicy { return ScalePolicy{factor: factor} }

// RawWindow carries the platform window reference, for embedding and for
// handing to surface-creation APIs. Only the field for the running platform
// is meaningful.
type RawWindow struct {
	X11Window uint32
	Win32HWND uintptr
}

// Window is the view of an open window available inside handler callbacks.
type Window struct {
	ctl wincore.Control
}

// Close starts the close protocol for this window.
func (w *Window) Close() { w.ctl.Close() }

// Resize requests a new logical size. The change is applied on the run loop;
// the handler observes it as a resize event followed by a frame.
func (w *Window) Resize(size dpi.Size) { w.ctl.Resize(size) }

// SetCursor changes the pointer cursor over this window.
func (w *Window) SetCursor(c cursor.Cursor) { w.ctl.SetCursor(c) }

// Info reports the window's current logical size, physical size and scale.
func (w *Window) Info() dpi.WindowInfo { return w.ctl.Info() }

// GPU returns the window-owned GPU context, or nil if none was requested.
func (w *Window) GPU() *gpu.Context { return w.ctl.GPUContext() }

// RawWindow returns the platform window reference.
func (w *Window) RawWindow() RawWindow { return rawFromID(w.ctl.NativeID()) }

// WindowHandle is the host's grip on a window opened with OpenParented. It
// is safe to use from any goroutine.
type WindowHandle struct {
	h *wincore.Handle
}

// Close requests the window to close. Safe to call repeatedly and from any
// goroutine; requests after destruction are ignored.
func (h *WindowHandle) Close() { h.h.Close() }

// IsOpen reports whether the window still exists.
func (h *WindowHandle) IsOpen() bool { return h.h.IsOpen() }

// Resize requests a new logical size.
func (h *WindowHandle) Resize(size dpi.Size) { h.h.Resize(size) }

// RawWindow returns the platform window reference, or the zero RawWindow
// once the window is closed.
func (h *WindowHandle) RawWindow() RawWindow { return rawFromID(h.h.NativeID()) }

// handlerShim adapts a WindowHandler to the engine's handler contract.
type handlerShim struct {
	win *Window
	h   WindowHandler
}

func (s *handlerShim) OnFrame(wincore.Control) { s.h.OnFrame(s.win) }

func (s *handlerShim) OnEvent(_ wincore.Control, ev event.Event) event.Status {
	return s.h.OnEvent(s.win, ev)
}

func wrapBuild(build func(*Window) WindowHandler) func(wincore.Control) wincore.Handler {
	return func(ctl wincore.Control) wincore.Handler {
		w := &Window{ctl: ctl}
		return &handlerShim{win: w, h: build(w)}
	}
}

// OpenParented opens a window embedded in the host-owned parent window. The
// window runs on its own goroutine; the returned handle controls it from the
// host side.
func OpenParented(parent RawWindow, opts WindowOpenOptions, build func(*Window) WindowHandler) (*WindowHandle, error) {
	h, err := openPlatform(parent, opts, false, build)
	if err != nil {
		return nil, err
	}
	return &WindowHandle{h: h}, nil
}

// OpenStandalone opens a top-level window running on its own goroutine.
func OpenStandalone(opts WindowOpenOptions, build func(*Window) WindowHandler) (*WindowHandle, error) {
	h, err := openPlatform(RawWindow{}, opts, false, build)
	if err != nil {
		return nil, err
	}
	return &WindowHandle{h: h}, nil
}

// OpenBlocking opens a top-level window and runs its loop on the calling
// goroutine, returning once the window is destroyed.
func OpenBlocking(opts WindowOpenOptions, build func(*Window) WindowHandler) error {
	_, err := openPlatform(RawWindow{}, opts, true, build)
	return err
}
