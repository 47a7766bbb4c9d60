package wincore

import (
	"testing"

	"github.com/ingo-dsp/baseview/cursor"
	"github.com/ingo-dsp/baseview/dpi"
	"github.com/ingo-dsp/baseview/event"
)

// fakeNative records the native operations the engine requests. It stands in
// for a platform adapter so lifecycle behavior can be driven with synthetic
// event sequences.
type fakeNative struct {
	resizes   []dpi.PhySize
	captures  int
	releases  int
	timerStop int
	destroyed int
	wakes     int
	quits     int

	// onResizeNative, when set, runs inside the resize request, like a
	// platform that delivers its size notification synchronously.
	onResizeNative func(size dpi.PhySize)
}

func (f *fakeNative) ResizeNative(size dpi.PhySize) {
	f.resizes = append(f.resizes, size)
	if f.onResizeNative != nil {
		f.onResizeNative(size)
	}
}
func (f *fakeNative) SetCursor(cursor.Cursor)       {}
func (f *fakeNative) CapturePointer()               { f.captures++ }
func (f *fakeNative) ReleasePointer() { f.releases++ }
func (f *fakeNative) StopTimer()      { f.timerStop++ }
func (f *fakeNative) ReleaseWindow()  { f.destroyed++ }
func (f *fakeNative) Wake()           { f.wakes++ }
func (f *fakeNative) Quit()           { f.quits++ }

// recorder is a handler that keeps every event it sees.
type recorder struct {
	events []event.Event
	frames int
	status event.Status

	// onEvent, when set, runs inside the dispatch, for re-entrancy tests.
	onEvent func(ctl Control, ev event.Event)
}

func (r *recorder) OnFrame(Control) { r.frames++ }

func (r *recorder) OnEvent(ctl Control, ev event.Event) event.Status {
	r.events = append(r.events, ev)
	if r.onEvent != nil {
		r.onEvent(ctl, ev)
	}
	return r.status
}

func (r *recorder) willCloseCount() int {
	n := 0
	for _, ev := range r.events {
		if _, ok := ev.(event.WindowWillClose); ok {
			n++
		}
	}
	return n
}

func (r *recorder) lastResized() (event.WindowResized, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if re, ok := r.events[i].(event.WindowResized); ok {
			return re, true
		}
	}
	return event.WindowResized{}, false
}

func newTestState(t *testing.T, cfg Config, h Handler) (*State, *fakeNative, *recorder) {
	t.Helper()
	native := &fakeNative{}
	rec, ok := h.(*recorder)
	if !ok {
		rec = &recorder{}
		h = rec
	}
	cfg.Native = native
	if cfg.NativeID == 0 {
		cfg.NativeID = 42
	}
	if cfg.Info == (dpi.WindowInfo{}) {
		cfg.Info = dpi.FromLogicalSize(dpi.NewSize(800, 600), 1.0)
	}
	s := New(cfg)
	s.SetHandler(h)
	s.Run()
	t.Cleanup(func() { windows.clear(cfg.NativeID) })
	return s, native, rec
}

func TestResizeSequence_FinalPhysicalMatchesLogicalTimesScale(t *testing.T) {
	s, _, rec := newTestState(t, Config{}, nil)
	handle := s.NewHandle()

	sizes := []dpi.Size{{Width: 640, Height: 480}, {Width: 1024, Height: 768}, {Width: 333.4, Height: 333.6}}
	for _, size := range sizes {
		handle.Resize(size)
		s.Frame()
	}
	handle.Close()
	s.Frame()

	re, ok := rec.lastResized()
	if !ok {
		t.Fatal("no Resized event dispatched")
	}
	want := dpi.FromLogicalSize(sizes[len(sizes)-1], 1.0).PhysicalSize()
	if re.Info.PhysicalSize() != want {
		t.Fatalf("final physical = %v, want %v (logical*scale, rounded)", re.Info.PhysicalSize(), want)
	}
	if re.Info.PhysicalSize() != (dpi.PhySize{Width: 333, Height: 334}) {
		t.Fatalf("rounding: physical = %v, want 333x334", re.Info.PhysicalSize())
	}
}

func TestClose_TwiceDispatchesWillCloseOnce(t *testing.T) {
	s, native, rec := newTestState(t, Config{}, nil)
	handle := s.NewHandle()

	handle.Close()
	handle.Close()
	s.Frame()
	s.Frame() // ticks after destruction are ignored

	if got := rec.willCloseCount(); got != 1 {
		t.Fatalf("WillClose dispatched %d times, want 1", got)
	}
	if native.destroyed != 1 {
		t.Fatalf("native window released %d times, want 1", native.destroyed)
	}
	if native.timerStop != 1 {
		t.Fatalf("timer stopped %d times, want 1", native.timerStop)
	}
	if s.Phase() != PhaseDestroyed {
		t.Fatalf("phase = %v, want destroyed", s.Phase())
	}
}

func TestHandle_NoOpAfterClose(t *testing.T) {
	s, native, _ := newTestState(t, Config{}, nil)
	handle := s.NewHandle()

	handle.Close()
	s.Frame()

	if handle.IsOpen() {
		t.Fatal("handle still reports open after destruction")
	}
	if got := handle.NativeID(); got != 0 {
		t.Fatalf("NativeID after close = %d, want 0", got)
	}

	resizesBefore := len(native.resizes)
	handle.Resize(dpi.NewSize(100, 100))
	handle.Close()
	s.Frame()
	if len(native.resizes) != resizesBefore {
		t.Fatal("resize after close reached the native layer")
	}
}

func TestPointerCapture_HeldUntilLastRelease(t *testing.T) {
	orders := [][]event.MouseButton{
		{event.MouseLeft, event.MouseRight, event.MouseMiddle},
		{event.MouseMiddle, event.MouseLeft, event.MouseRight},
		{event.MouseRight, event.MouseMiddle, event.MouseLeft},
	}
	for _, releaseOrder := range orders {
		s, native, _ := newTestState(t, Config{}, nil)

		s.MouseButton(event.MouseLeft, true)
		s.MouseButton(event.MouseRight, true)
		s.MouseButton(event.MouseMiddle, true)
		if native.captures != 1 {
			t.Fatalf("capture acquired %d times during presses, want 1", native.captures)
		}

		for i, b := range releaseOrder {
			s.MouseButton(b, false)
			wantReleases := 0
			if i == len(releaseOrder)-1 {
				wantReleases = 1
			}
			if native.releases != wantReleases {
				t.Fatalf("release order %v: after %d ups capture released %d times, want %d",
					releaseOrder, i+1, native.releases, wantReleases)
			}
		}
		windows.clear(s.id)
	}
}

func TestPointerCapture_UnbalancedReleaseIsHarmless(t *testing.T) {
	s, native, _ := newTestState(t, Config{}, nil)

	s.MouseButton(event.MouseLeft, false)
	if native.releases != 0 {
		t.Fatal("release without press must not ungrab")
	}

	s.MouseButton(event.MouseLeft, true)
	s.MouseButton(event.MouseLeft, false)
	s.MouseButton(event.MouseLeft, false)
	if native.captures != 1 || native.releases != 1 {
		t.Fatalf("captures=%d releases=%d, want 1/1", native.captures, native.releases)
	}
}

func TestScaleChange_RoundTripsThroughNativeResize(t *testing.T) {
	s, native, rec := newTestState(t, Config{TrackScale: true}, nil)

	if got := s.Info(); got.PhysicalSize() != (dpi.PhySize{Width: 800, Height: 600}) || got.Scale() != 1.0 {
		t.Fatalf("initial info = %+v", got)
	}

	// Native DPI change to scale 2.0 at fixed logical size: the engine must
	// request a native resize to the new physical size...
	s.ScaleChanged(2.0)
	if len(native.resizes) != 1 || native.resizes[0] != (dpi.PhySize{Width: 1600, Height: 1200}) {
		t.Fatalf("native resize requests = %v, want [1600x1200]", native.resizes)
	}
	if len(rec.events) != 0 {
		t.Fatalf("no event should be dispatched before the follow-up size notification, got %v", rec.events)
	}

	// ...and the follow-up native size notification carries the final
	// reconciled geometry.
	s.NativeResized(dpi.PhySize{Width: 1600, Height: 1200})
	re, ok := rec.lastResized()
	if !ok {
		t.Fatal("no Resized event after follow-up notification")
	}
	if re.Info.Scale() != 2.0 {
		t.Fatalf("scale = %v, want 2.0", re.Info.Scale())
	}
	if re.Info.LogicalSize() != (dpi.Size{Width: 800, Height: 600}) {
		t.Fatalf("logical = %v, want 800x600", re.Info.LogicalSize())
	}
	if re.Info.PhysicalSize() != (dpi.PhySize{Width: 1600, Height: 1200}) {
		t.Fatalf("physical = %v, want 1600x1200", re.Info.PhysicalSize())
	}
}

func TestScaleChange_SynchronousSizeNotificationDispatches(t *testing.T) {
	// Win32 delivers WM_SIZE inside SetWindowPos, on the same thread. The
	// follow-up notification re-enters while ScaleChanged is still on the
	// stack and must still reach the handler.
	s, native, rec := newTestState(t, Config{TrackScale: true}, nil)
	native.onResizeNative = func(size dpi.PhySize) {
		s.NativeResized(size)
	}

	s.ScaleChanged(2.0)

	re, ok := rec.lastResized()
	if !ok {
		t.Fatal("no Resized event from the synchronous size notification")
	}
	if re.Info.Scale() != 2.0 || re.Info.LogicalSize() != (dpi.Size{Width: 800, Height: 600}) {
		t.Fatalf("resized info = %+v, want logical 800x600 at scale 2.0", re.Info)
	}
	if re.Info.PhysicalSize() != (dpi.PhySize{Width: 1600, Height: 1200}) {
		t.Fatalf("physical = %v, want 1600x1200", re.Info.PhysicalSize())
	}
	if s.Info() != re.Info {
		t.Fatalf("state info %+v does not match dispatched info %+v", s.Info(), re.Info)
	}
}

func TestScaleChange_IgnoredUnderFixedPolicy(t *testing.T) {
	s, native, rec := newTestState(t, Config{TrackScale: false}, nil)

	s.ScaleChanged(2.0)
	if len(native.resizes) != 0 || len(rec.events) != 0 {
		t.Fatal("fixed scale policy must ignore native DPI changes")
	}
	if s.Info().Scale() != 1.0 {
		t.Fatalf("scale drifted to %v", s.Info().Scale())
	}
}

func TestPendingResize_SyntheticEventThenExtraFrame(t *testing.T) {
	s, native, rec := newTestState(t, Config{}, nil)

	s.NewHandle().Resize(dpi.NewSize(640, 480))
	s.Frame()

	if re, ok := rec.lastResized(); !ok || re.Info.PhysicalSize() != (dpi.PhySize{Width: 640, Height: 480}) {
		t.Fatalf("synthetic Resized missing or wrong: %v", rec.events)
	}
	if len(native.resizes) != 1 {
		t.Fatalf("native resize requests = %d, want 1", len(native.resizes))
	}
	// One extra frame for the resize plus the tick's own frame.
	if rec.frames != 2 {
		t.Fatalf("frames = %d, want 2 (extra tick after resize)", rec.frames)
	}
}

func TestReentrantDispatch_DroppedNotDeadlocked(t *testing.T) {
	rec := &recorder{}
	var s *State
	rec.onEvent = func(ctl Control, ev event.Event) {
		if _, ok := ev.(event.CursorMoved); ok {
			// A synchronous native recursion while the outer dispatch is
			// still on the stack: must be skipped, not deadlock.
			s.MouseMove(dpi.PhyPoint{X: 5, Y: 5})
		}
	}
	s, _, _ = newTestState(t, Config{}, rec)

	s.MouseMove(dpi.PhyPoint{X: 1, Y: 1})

	moves := 0
	for _, ev := range rec.events {
		if _, ok := ev.(event.CursorMoved); ok {
			moves++
		}
	}
	if moves != 1 {
		t.Fatalf("dispatched %d cursor moves, want 1 (nested drop)", moves)
	}
}

func TestCloseFromHandlerDuringWillClose_NoDoubleTeardown(t *testing.T) {
	rec := &recorder{}
	var s *State
	rec.onEvent = func(ctl Control, ev event.Event) {
		if _, ok := ev.(event.WindowWillClose); ok {
			ctl.Close()      // latch again; must not re-run the protocol
			s.CloseMessage() // nested close message; dropped by the guard
		}
	}
	s, native, _ := newTestState(t, Config{}, rec)

	s.CloseMessage()

	if got := rec.willCloseCount(); got != 1 {
		t.Fatalf("WillClose dispatched %d times, want 1", got)
	}
	if native.destroyed != 1 {
		t.Fatalf("native released %d times, want 1", native.destroyed)
	}
}

func TestNativeDestroyed_OnlyActsWhileAssociationLive(t *testing.T) {
	s, native, rec := newTestState(t, Config{}, nil)

	// OS-initiated destruction: association still live, teardown runs but
	// must not release the native window again.
	s.NativeDestroyed()
	if rec.willCloseCount() != 1 {
		t.Fatalf("WillClose count = %d, want 1", rec.willCloseCount())
	}
	if native.destroyed != 0 {
		t.Fatal("engine must not release a window the native side is already destroying")
	}

	// A second acknowledgment finds the association cleared.
	s.NativeDestroyed()
	if rec.willCloseCount() != 1 {
		t.Fatal("destroy acknowledgment ran twice")
	}
}

func TestBlockingWindow_QuitsRunLoopOnDestroy(t *testing.T) {
	s, native, _ := newTestState(t, Config{Blocking: true}, nil)
	s.NewHandle().Close()
	s.Frame()
	if native.quits != 1 {
		t.Fatalf("quit called %d times, want 1", native.quits)
	}

	s2, native2, _ := newTestState(t, Config{NativeID: 43}, nil)
	s2.NewHandle().Close()
	s2.Frame()
	if native2.quits != 0 {
		t.Fatal("embedded window must not terminate the host run loop")
	}
}

func TestKeyStatus_PropagatedToAdapter(t *testing.T) {
	rec := &recorder{status: event.Captured}
	s, _, _ := newTestState(t, Config{}, rec)

	if got := s.Key(event.KeyboardEvent{Label: "a", Rune: 'a'}, true); got != event.Captured {
		t.Fatalf("status = %v, want captured", got)
	}
	rec.status = event.Ignored
	if got := s.Key(event.KeyboardEvent{Label: "F10"}, false); got != event.Ignored {
		t.Fatalf("status = %v, want ignored", got)
	}
}

func TestLookup_ClearedBeforeWillCloseDispatch(t *testing.T) {
	rec := &recorder{}
	var s *State
	sawLive := true
	rec.onEvent = func(ctl Control, ev event.Event) {
		if _, ok := ev.(event.WindowWillClose); ok {
			_, sawLive = Lookup(ctl.NativeID())
		}
	}
	s, _, _ = newTestState(t, Config{}, rec)

	s.CloseMessage()
	if sawLive {
		t.Fatal("association entry must be cleared before WillClose is dispatched")
	}
}
