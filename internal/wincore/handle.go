package wincore

import (
	"github.com/ingo-dsp/baseview/dpi"
)

// Handle is the embedder-facing half of the handle pair. It shares only the
// state's atomics and the pending-resize slot, never the state's mutable
// interior, so every operation is safe from the embedder's goroutine and
// degrades to a no-op once the window is gone.
type Handle struct {
	state *State
}

// Close requests the window to close. Idempotent, non-blocking, safe after
// the window is already destroyed. The window state itself is freed by the
// pump, never here.
func (h *Handle) Close() {
	h.state.RequestClose()
}

// IsOpen reports whether the window still exists, based on the shared flag
// rather than a native query.
func (h *Handle) IsOpen() bool {
	return h.state.open.Load()
}

// Resize requests a new logical size. Applied at the next frame tick with the
// scale factor current at that moment; a no-op after close.
func (h *Handle) Resize(size dpi.Size) {
	h.state.Resize(size)
}

// NativeID returns the native window identifier, or zero once the window has
// been destroyed; it never reports a dangling identifier.
func (h *Handle) NativeID() uint64 {
	if !h.state.open.Load() {
		return 0
	}
	return h.state.id
}
