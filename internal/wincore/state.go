package wincore

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ingo-dsp/baseview/cursor"
	"github.com/ingo-dsp/baseview/dpi"
	"github.com/ingo-dsp/baseview/event"
	"github.com/ingo-dsp/baseview/gpu"
)

// Phase is the window lifecycle phase.
type Phase int32

const (
	// PhaseCreated: state exists, association not yet bound.
	PhaseCreated Phase = iota
	// PhaseRunning: association bound, frame timer armed.
	PhaseRunning
	// PhaseCloseRequested: a close was latched and awaits observation.
	PhaseCloseRequested
	// PhaseClosing: the close protocol is executing.
	PhaseClosing
	// PhaseDestroyed: terminal; all native resources released.
	PhaseDestroyed
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseRunning:
		return "running"
	case PhaseCloseRequested:
		return "close-requested"
	case PhaseClosing:
		return "closing"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// pendingResize is the handle-to-engine resize slot. The embedder writes a
// requested logical size from its own goroutine; the pump takes it at the
// next tick.
type pendingResize struct {
	mu   sync.Mutex
	has  bool
	size dpi.Size
}

func (p *pendingResize) set(size dpi.Size) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.has = true
	p.size = size
}

func (p *pendingResize) take() (dpi.Size, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.has {
		return dpi.Size{}, false
	}
	p.has = false
	return p.size, true
}

// State is the live, natively-anchored record for one window. It is owned by
// the native window: the engine holds no reference beyond the association
// registry entry, which the close protocol clears before the final event is
// dispatched.
//
// All methods except the handle-facing atomics run on the pump goroutine.
type State struct {
	// mu is the re-entrancy guard. Entry points try-acquire it; a failed
	// acquisition means an outer callback is mid-dispatch and the nested
	// native event is dropped.
	mu sync.Mutex

	native     Native
	handler    Handler
	log        *slog.Logger
	id         uint64
	trackScale bool
	blocking   bool

	phase      Phase
	info       dpi.WindowInfo
	buttons    int
	gpuCtx     *gpu.Context
	nativeGone bool

	open     atomic.Bool
	closeReq atomic.Bool
	pending  pendingResize
}

// New builds a window state in the Created phase. The native window must
// already exist; construction failures belong to the adapter, before any
// state is made.
func New(cfg Config) *State {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &State{
		native:     cfg.Native,
		log:        log,
		id:         cfg.NativeID,
		trackScale: cfg.TrackScale,
		blocking:   cfg.Blocking,
		phase:      PhaseCreated,
		info:       cfg.Info,
		gpuCtx:     cfg.GPU,
	}
	s.open.Store(true)
	return s
}

// SetHandler installs the application handler. Must be called exactly once,
// before Run.
func (s *State) SetHandler(h Handler) {
	s.handler = h
}

// Run binds the association entry and enters the Running phase. The adapter
// arms its frame timer around this call.
func (s *State) Run() {
	windows.bind(s.id, s)
	s.phase = PhaseRunning
	s.log.Debug("window running", "id", s.id, "scale", s.info.Scale())
}

// NewHandle returns the embedder-facing handle paired with this state.
func (s *State) NewHandle() *Handle {
	return &Handle{state: s}
}

// Frame runs one frame tick: applies any pending resize request, invokes the
// per-frame hook, then observes the close latch.
func (s *State) Frame() {
	if !s.mu.TryLock() {
		s.log.Warn("frame tick dropped, state busy", "id", s.id)
		return
	}
	defer s.mu.Unlock()
	if !s.runningLocked() {
		return
	}

	s.applyPendingResizeLocked()
	s.handler.OnFrame(s)

	if s.closeReq.Load() {
		s.phase = PhaseCloseRequested
		s.closeLocked()
	}
}

// MouseMove normalizes a physical pointer position and dispatches it.
func (s *State) MouseMove(p dpi.PhyPoint) {
	if !s.tryEnter("mouse move") {
		return
	}
	defer s.mu.Unlock()
	s.dispatchLocked(event.CursorMoved{Position: p.ToLogical(s.info)})
}

// MouseButton dispatches a button transition and keeps the pointer capture
// balanced: capture is acquired on the first press and released only when the
// last pressed button goes up.
func (s *State) MouseButton(b event.MouseButton, pressed bool) {
	if !s.tryEnter("mouse button") {
		return
	}
	defer s.mu.Unlock()

	if pressed {
		s.buttons++
		if s.buttons == 1 {
			s.native.CapturePointer()
		}
		s.dispatchLocked(event.ButtonPressed{Button: b})
		return
	}
	if s.buttons > 0 {
		s.buttons--
		if s.buttons == 0 {
			s.native.ReleasePointer()
		}
	}
	s.dispatchLocked(event.ButtonReleased{Button: b})
}

// MouseWheel dispatches wheel movement in lines.
func (s *State) MouseWheel(dx, dy float64) {
	if !s.tryEnter("mouse wheel") {
		return
	}
	defer s.mu.Unlock()
	s.dispatchLocked(event.WheelScrolled{DeltaX: dx, DeltaY: dy})
}

// Key dispatches one decoded keyboard event and reports the handler's status
// so the adapter can decide whether default native processing still runs.
func (s *State) Key(ev event.KeyboardEvent, pressed bool) event.Status {
	if !s.tryEnter("key") {
		return event.Ignored
	}
	defer s.mu.Unlock()
	if pressed {
		return s.dispatchLocked(event.KeyPressed{Key: ev})
	}
	return s.dispatchLocked(event.KeyReleased{Key: ev})
}

// NativeResized reconciles a native size-change notification: the new
// physical size with the current scale factor.
func (s *State) NativeResized(size dpi.PhySize) {
	if !s.tryEnter("resize") {
		return
	}
	defer s.mu.Unlock()
	s.resizedLocked(size)
}

// ScaleChanged reconciles a native DPI change: the new scale factor at the
// current logical size. It then issues a native resize request matching the
// new physical size; the follow-up size-change notification carries the
// final reconciled geometry.
func (s *State) ScaleChanged(scale float64) {
	if !s.trackScale {
		return
	}
	if !s.tryEnter("scale change") {
		return
	}
	if scale == s.info.Scale() {
		s.mu.Unlock()
		return
	}
	s.info = dpi.FromLogicalSize(s.info.LogicalSize(), scale)
	phys := s.info.PhysicalSize()
	s.log.Debug("scale changed", "id", s.id, "scale", scale)
	// The guard is released before the native call: some platforms deliver
	// the resulting size-change notification synchronously on this same
	// thread, and it must be able to re-enter and dispatch.
	s.mu.Unlock()
	s.native.ResizeNative(phys)
}

// RequestClose latches a close request. Safe from any goroutine; the pump
// observes the latch at the next tick.
func (s *State) RequestClose() {
	if !s.open.Load() {
		return
	}
	s.closeReq.Store(true)
	s.native.Wake()
}

// CloseMessage handles the native close request (WM_CLOSE, WM_DELETE_WINDOW):
// the protocol runs immediately on delivery rather than at the next tick.
func (s *State) CloseMessage() {
	if !s.tryEnter("close message") {
		return
	}
	defer s.mu.Unlock()
	s.phase = PhaseCloseRequested
	s.closeLocked()
}

// NativeDestroyed acknowledges native-initiated destruction. The teardown
// runs only if the association entry is still live; an explicit close has
// already cleared it and freed everything.
func (s *State) NativeDestroyed() {
	if _, ok := windows.lookup(s.id); !ok {
		return
	}
	if !s.tryEnter("destroy notification") {
		return
	}
	defer s.mu.Unlock()
	s.nativeGone = true
	s.phase = PhaseCloseRequested
	s.closeLocked()
}

// Phase returns the current lifecycle phase. Pump goroutine only.
func (s *State) Phase() Phase { return s.phase }

// Close implements Control.
func (s *State) Close() { s.RequestClose() }

// Resize implements Control: the request is applied at the next frame tick
// with the then-current scale factor.
func (s *State) Resize(size dpi.Size) {
	if !s.open.Load() {
		return
	}
	s.pending.set(size)
	s.native.Wake()
}

// SetCursor implements Control.
func (s *State) SetCursor(c cursor.Cursor) {
	s.native.SetCursor(c)
}

// Info implements Control.
func (s *State) Info() dpi.WindowInfo { return s.info }

// GPUContext implements Control.
func (s *State) GPUContext() *gpu.Context { return s.gpuCtx }

// NativeID implements Control.
func (s *State) NativeID() uint64 { return s.id }

func (s *State) tryEnter(what string) bool {
	if !s.mu.TryLock() {
		s.log.Warn("nested dispatch dropped", "id", s.id, "event", what)
		return false
	}
	if !s.runningLocked() {
		s.mu.Unlock()
		return false
	}
	return true
}

func (s *State) runningLocked() bool {
	return s.phase == PhaseRunning || s.phase == PhaseCloseRequested
}

func (s *State) dispatchLocked(ev event.Event) event.Status {
	return s.handler.OnEvent(s, ev)
}

func (s *State) resizedLocked(size dpi.PhySize) {
	s.info = dpi.FromPhysicalSize(size, s.info.Scale())
	if s.gpuCtx != nil {
		s.gpuCtx.Resize(s.info.PhysicalSize())
	}
	s.dispatchLocked(event.WindowResized{Info: s.info})
}

// applyPendingResizeLocked applies a handle- or handler-requested resize:
// recompute the geometry at the current scale factor, resize the native
// surface, feed a synthetic Resized event and run one extra frame tick. The
// extra tick matters because some native resize paths suspend the periodic
// timer while the resize is in flight.
func (s *State) applyPendingResizeLocked() {
	size, ok := s.pending.take()
	if !ok {
		return
	}
	s.info = dpi.FromLogicalSize(size, s.info.Scale())
	if s.gpuCtx != nil {
		s.gpuCtx.Resize(s.info.PhysicalSize())
	}
	s.native.ResizeNative(s.info.PhysicalSize())
	s.dispatchLocked(event.WindowResized{Info: s.info})
	s.handler.OnFrame(s)
}

// closeLocked runs the close protocol exactly once:
// clear the latch, stop the timer, clear the association entry, dispatch
// WillClose, release the GPU context and the native window, flip the shared
// open flag, and for blocking windows terminate the run loop.
//
// The association entry is cleared before WillClose is dispatched: if the
// handler's own cleanup triggers another teardown attempt, the lookup fails
// and the protocol cannot run twice.
func (s *State) closeLocked() {
	if s.phase == PhaseClosing || s.phase == PhaseDestroyed {
		return
	}
	s.phase = PhaseClosing
	s.log.Debug("closing window", "id", s.id)

	s.closeReq.Store(false)
	s.native.StopTimer()
	windows.clear(s.id)

	s.dispatchLocked(event.WindowWillClose{})

	if s.gpuCtx != nil {
		s.gpuCtx.Release()
	}
	if !s.nativeGone {
		s.native.ReleaseWindow()
	}
	s.open.Store(false)
	s.phase = PhaseDestroyed
	s.log.Debug("window destroyed", "id", s.id)

	if s.blocking {
		s.native.Quit()
	}
}
