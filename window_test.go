package baseview

import (
	"testing"

	"github.com/ingo-dsp/baseview/cursor"
	"github.com/ingo-dsp/baseview/dpi"
	"github.com/ingo-dsp/baseview/event"
	"github.com/ingo-dsp/baseview/gpu"
)

type fakeControl struct {
	closed  bool
	resized []dpi.Size
	cursors []cursor.Cursor
	info    dpi.WindowInfo
}

func (f *fakeControl) Close()                   { f.closed = true }
func (f *fakeControl) Resize(size dpi.Size)     { f.resized = append(f.resized, size) }
func (f *fakeControl) SetCursor(c cursor.Cursor) { f.cursors = append(f.cursors, c) }
func (f *fakeControl) Info() dpi.WindowInfo     { return f.info }
func (f *fakeControl) GPUContext() *gpu.Context { return nil }
func (f *fakeControl) NativeID() uint64         { return 7 }

type countingHandler struct {
	frames int
	events []event.Event
	wins   []*Window
}

func (h *countingHandler) OnFrame(w *Window) {
	h.frames++
	h.wins = append(h.wins, w)
}

func (h *countingHandler) OnEvent(w *Window, ev event.Event) event.Status {
	h.events = append(h.events, ev)
	h.wins = append(h.wins, w)
	return event.Captured
}

func TestHandlerShim_RoutesToSameWindow(t *testing.T) {
	ctl := &fakeControl{info: dpi.FromLogicalSize(dpi.NewSize(640, 480), 1.0)}
	h := &countingHandler{}

	core := wrapBuild(func(w *Window) WindowHandler {
		h.wins = append(h.wins, w)
		return h
	})(ctl)

	core.OnFrame(ctl)
	status := core.OnEvent(ctl, event.CursorMoved{Position: dpi.Point{X: 1, Y: 2}})

	if status != event.Captured {
		t.Errorf("status = %v, want Captured", status)
	}
	if h.frames != 1 || len(h.events) != 1 {
		t.Fatalf("frames = %d, events = %d, want 1 and 1", h.frames, len(h.events))
	}
	for i := 1; i < len(h.wins); i++ {
		if h.wins[i] != h.wins[0] {
			t.Fatal("handler observed more than one Window value")
		}
	}

	h.wins[0].Close()
	h.wins[0].Resize(dpi.NewSize(100, 100))
	h.wins[0].SetCursor(cursor.Hand)
	if !ctl.closed || len(ctl.resized) != 1 || len(ctl.cursors) != 1 {
		t.Errorf("window methods did not reach the control: %+v", ctl)
	}
}

func TestScalePolicy(t *testing.T) {
	if SystemScaleFactor() != (ScalePolicy{}) {
		t.Error("system policy should be the zero policy")
	}
	if FixedScaleFactor(1.5) == SystemScaleFactor() {
		t.Error("fixed policy should differ from system policy")
	}
}
