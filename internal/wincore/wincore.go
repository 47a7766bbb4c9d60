// Package wincore implements the platform-neutral window lifecycle engine:
// the per-window state machine, the handle pair shared with the embedder, the
// association registry that lets native callbacks recover window state, and
// the two-phase close protocol.
//
// The engine is driven entirely by a platform adapter calling the State entry
// points from a single pump goroutine. It never spawns goroutines of its own
// and never blocks: re-entrant native callbacks are handled with a try-acquire
// guard that drops nested dispatches instead of deadlocking.
package wincore

import (
	"log/slog"

	"github.com/ingo-dsp/baseview/cursor"
	"github.com/ingo-dsp/baseview/dpi"
	"github.com/ingo-dsp/baseview/event"
	"github.com/ingo-dsp/baseview/gpu"
)

// Handler receives normalized events and frame ticks. The facade adapts the
// public handler contract onto this one.
type Handler interface {
	// OnFrame is invoked on every frame tick.
	OnFrame(ctl Control)
	// OnEvent is invoked once per normalized event. The returned status is
	// consulted only on the keyboard path, to decide whether the adapter
	// forwards the native message to default processing.
	OnEvent(ctl Control, ev event.Event) event.Status
}

// Control is the live window surface handed to handlers. It is only valid
// inside handler invocations, on the window's event-processing goroutine.
type Control interface {
	// Close requests the window to close. Observed at the next frame tick.
	Close()
	// Resize requests a new logical size, applied at the next frame tick
	// with the scale factor current at application time.
	Resize(size dpi.Size)
	// SetCursor sets the mouse cursor shown over the window.
	SetCursor(c cursor.Cursor)
	// Info returns the current reconciled window geometry.
	Info() dpi.WindowInfo
	// GPUContext returns the window's GPU context, or nil when none was
	// configured.
	GPUContext() *gpu.Context
	// NativeID returns the native window identifier bound in the
	// association registry.
	NativeID() uint64
}

// Native is the set of operations the engine needs from a platform adapter.
// All methods are invoked from the pump goroutine, except Wake, which the
// embedder's handle may call from any goroutine at any time, even after
// ReleaseWindow, and which must therefore never block or fail.
type Native interface {
	// ResizeNative asks the native layer to resize the window surface to
	// the given physical size.
	ResizeNative(size dpi.PhySize)
	// SetCursor applies a native cursor resource for the logical kind.
	SetCursor(c cursor.Cursor)
	// CapturePointer grabs the pointer on the first button press.
	CapturePointer()
	// ReleasePointer releases the grab once the last button is up.
	ReleasePointer()
	// StopTimer stops the frame timer. Called once, during closing.
	StopTimer()
	// ReleaseWindow destroys the native window or view. Not called when
	// teardown was initiated by the native side itself.
	ReleaseWindow()
	// Wake nudges the pump so a posted request (close, resize) is observed
	// promptly rather than at the next timer tick.
	Wake()
	// Quit terminates the blocking run loop. Called only for windows
	// opened in blocking mode, after the state reaches Destroyed.
	Quit()
}

// Config assembles a window state. All fields except GPU are required.
type Config struct {
	// NativeID keys the association registry; adapters use the native
	// window identifier (X11 window ID, HWND).
	NativeID uint64
	// Native is the platform adapter surface.
	Native Native
	// Info is the initial reconciled geometry.
	Info dpi.WindowInfo
	// TrackScale selects the system-DPI scale policy: when true, native
	// scale-change notifications are honored; when false the scale factor
	// stays fixed for the window's lifetime.
	TrackScale bool
	// Blocking marks a window whose open call parks the caller inside the
	// native run loop; reaching Destroyed terminates that loop via Quit.
	Blocking bool
	// GPU is the optional window-owned GPU context, released during
	// destruction.
	GPU *gpu.Context
	// Log receives lifecycle diagnostics. Nil disables logging.
	Log *slog.Logger
}
