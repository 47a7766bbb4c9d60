//go:build linux

// Package x11win is the X11 platform adapter. It creates the native window,
// runs the event pump that multiplexes the X event stream with the frame
// ticker, and translates native events into window-state operations.
package x11win

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/ingo-dsp/baseview/cursor"
	"github.com/ingo-dsp/baseview/dpi"
	"github.com/ingo-dsp/baseview/event"
	"github.com/ingo-dsp/baseview/gpu"
	"github.com/ingo-dsp/baseview/internal/wincore"
)

// frameInterval approximates a 60 Hz frame tick.
const frameInterval = 16 * time.Millisecond

// Options configures an X11 window.
type Options struct {
	Title string
	// Size is the requested logical size.
	Size dpi.Size
	// Scale fixes the scale factor; zero selects system DPI detection.
	Scale float64
	// Parent is the host-owned window to embed into; zero opens a
	// top-level window.
	Parent uint32
	// Blocking runs the pump on the calling goroutine until the window is
	// destroyed.
	Blocking bool
	// GPU optionally requests a window-owned GPU context.
	GPU *gpu.Config
	Log *slog.Logger
}

const windowEventMask = xproto.EventMaskStructureNotify |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskExposure

// native binds the engine's Native surface to one X11 window.
type native struct {
	xu       *xgbutil.XUtil
	win      *xwindow.Window
	log      *slog.Logger
	delAtom  xproto.Atom
	keyboard *keyboardState

	ticker   *time.Ticker
	wake     chan struct{}
	quitOnce sync.Once
	quit     chan struct{}

	cursors  map[cursor.Cursor]xproto.Cursor
	lastSize dpi.PhySize
}

// Open creates the native window and starts its pump. The build callback
// constructs the application handler once the window control exists.
// Construction failures release every native resource already made; no state
// is published on failure.
func Open(opts Options, build func(ctl wincore.Control) wincore.Handler) (*wincore.Handle, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11win: failed to connect to X server: %w", err)
	}
	keybind.Initialize(xu)

	scale := opts.Scale
	if scale == 0 {
		scale = detectScale(xu)
	}
	info := dpi.FromLogicalSize(opts.Size, scale)

	win, err := xwindow.Generate(xu)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("x11win: failed to allocate window id: %w", err)
	}

	parent := xproto.Window(opts.Parent)
	if parent == 0 {
		parent = xu.RootWin()
	}
	phys := info.PhysicalSize()
	err = win.CreateChecked(parent, 0, 0, int(phys.Width), int(phys.Height),
		xproto.CwEventMask, uint32(windowEventMask))
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("x11win: failed to create window: %w", err)
	}

	if opts.Title != "" {
		// Best effort; an unnamed window is not a construction failure.
		_ = ewmh.WmNameSet(xu, win.Id, opts.Title)
	}

	n := &native{
		xu:      xu,
		win:     win,
		log:     opts.Log,
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		cursors: make(map[cursor.Cursor]xproto.Cursor),
	}
	if n.log == nil {
		n.log = slog.New(slog.DiscardHandler)
	}
	n.keyboard = newKeyboardState(xu)

	if opts.Parent == 0 {
		// Top-level windows take part in the WM_DELETE_WINDOW protocol so
		// the window manager's close request reaches the handler.
		if atom, err := xprop.Atm(xu, "WM_DELETE_WINDOW"); err == nil {
			n.delAtom = atom
			_ = xprop.ChangeProp32(xu, win.Id, "WM_PROTOCOLS", "ATOM", uint(atom))
		}
	}

	var gpuCtx *gpu.Context
	if opts.GPU != nil {
		gpuCtx, err = gpu.NewContext(*opts.GPU, phys)
		if err != nil {
			win.Destroy()
			xu.Conn().Close()
			return nil, fmt.Errorf("x11win: failed to create GPU context: %w", err)
		}
	}

	win.Map()
	n.lastSize = phys

	state := wincore.New(wincore.Config{
		NativeID:   uint64(win.Id),
		Native:     n,
		Info:       info,
		TrackScale: opts.Scale == 0,
		Blocking:   opts.Blocking,
		GPU:        gpuCtx,
		Log:        opts.Log,
	})
	state.SetHandler(build(state))
	state.Run()

	handle := state.NewHandle()
	if opts.Blocking {
		n.pump(state)
	} else {
		go n.pump(state)
	}
	return handle, nil
}

// pump is the window's run loop: one goroutine owning all state access,
// multiplexing the frame ticker, wake requests and the X event stream.
func (n *native) pump(s *wincore.State) {
	events := make(chan xgb.Event, 64)
	go n.readEvents(events)

	n.ticker = time.NewTicker(frameInterval)
	defer func() {
		// Unblocks the reader: the closed quit channel frees a reader
		// stuck sending, closing the connection frees one stuck waiting.
		n.Quit()
		n.xu.Conn().Close()
	}()

	for {
		select {
		case <-n.quit:
			return
		case <-n.wake:
			s.Frame()
		case <-n.ticker.C:
			s.Frame()
		case ev, ok := <-events:
			if !ok {
				// Connection gone under us: treat as native destruction.
				s.NativeDestroyed()
				return
			}
			n.handleEvent(s, ev)
		}
		if s.Phase() == wincore.PhaseDestroyed {
			return
		}
	}
}

// readEvents forwards the X event stream in delivery order. The channel is
// closed when the connection shuts down.
func (n *native) readEvents(events chan<- xgb.Event) {
	conn := n.xu.Conn()
	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			close(events)
			return
		}
		if err != nil {
			n.log.Warn("x11 error event", "err", err)
			continue
		}
		select {
		case events <- ev:
		case <-n.quit:
			return
		}
	}
}

func (n *native) handleEvent(s *wincore.State, ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.MotionNotifyEvent:
		s.MouseMove(dpi.PhyPoint{X: int32(e.EventX), Y: int32(e.EventY)})

	case xproto.ButtonPressEvent:
		if dx, dy, ok := wheelDelta(e.Detail); ok {
			s.MouseWheel(dx, dy)
			return
		}
		if b, ok := mouseButton(e.Detail); ok {
			s.MouseButton(b, true)
		}

	case xproto.ButtonReleaseEvent:
		if _, _, wheel := wheelDelta(e.Detail); wheel {
			return
		}
		if b, ok := mouseButton(e.Detail); ok {
			s.MouseButton(b, false)
		}

	case xproto.KeyPressEvent:
		if kev, ok := n.keyboard.processKey(e.Detail, e.State, true); ok {
			s.Key(kev, true)
		}

	case xproto.KeyReleaseEvent:
		if kev, ok := n.keyboard.processKey(e.Detail, e.State, false); ok {
			s.Key(kev, false)
		}

	case xproto.ConfigureNotifyEvent:
		size := dpi.PhySize{Width: uint32(e.Width), Height: uint32(e.Height)}
		// ConfigureNotify also fires for pure moves; only a size change is
		// a resize.
		if size != n.lastSize {
			n.lastSize = size
			s.NativeResized(size)
		}

	case xproto.ClientMessageEvent:
		if n.delAtom != 0 && len(e.Data.Data32) > 0 &&
			xproto.Atom(e.Data.Data32[0]) == n.delAtom {
			s.CloseMessage()
		}

	case xproto.DestroyNotifyEvent:
		s.NativeDestroyed()
	}
}

// mouseButton maps an X core button to the neutral vocabulary. Buttons 8 and
// 9 are the extended back/forward buttons.
func mouseButton(b xproto.Button) (event.MouseButton, bool) {
	switch b {
	case 1:
		return event.MouseLeft, true
	case 2:
		return event.MouseMiddle, true
	case 3:
		return event.MouseRight, true
	case 8:
		return event.MouseBack, true
	case 9:
		return event.MouseForward, true
	default:
		return 0, false
	}
}

// wheelDelta maps the X scroll buttons (4-7) to line deltas.
func wheelDelta(b xproto.Button) (dx, dy float64, ok bool) {
	switch b {
	case 4:
		return 0, 1, true
	case 5:
		return 0, -1, true
	case 6:
		return -1, 0, true
	case 7:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}

// detectScale derives the system scale factor from the default screen's
// physical dimensions, in the absence of a per-window DPI notion in core X.
func detectScale(xu *xgbutil.XUtil) float64 {
	setup := xproto.Setup(xu.Conn())
	screen := setup.DefaultScreen(xu.Conn())
	if screen.WidthInMillimeters == 0 {
		return 1.0
	}
	dots := float64(screen.WidthInPixels) * 25.4 / float64(screen.WidthInMillimeters)
	scale := dots / 96.0
	if scale < 0.5 {
		return 1.0
	}
	return scale
}

func (n *native) ResizeNative(size dpi.PhySize) {
	xproto.ConfigureWindow(n.xu.Conn(), n.win.Id,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{size.Width, size.Height})
	n.lastSize = size
}

func (n *native) SetCursor(c cursor.Cursor) {
	cur, ok := n.cursors[c]
	if !ok {
		created, err := xcursor.CreateCursor(n.xu, cursorGlyph(c))
		if err != nil {
			n.log.Warn("cursor creation failed", "cursor", c.String(), "err", err)
			return
		}
		cur = created
		n.cursors[c] = cur
	}
	xproto.ChangeWindowAttributes(n.xu.Conn(), n.win.Id,
		xproto.CwCursor, []uint32{uint32(cur)})
}

func (n *native) CapturePointer() {
	mask := uint16(xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion)
	reply, err := xproto.GrabPointer(n.xu.Conn(), true, n.win.Id, mask,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.CursorNone, xproto.TimeCurrentTime).Reply()
	if err != nil || reply.Status != xproto.GrabStatusSuccess {
		n.log.Warn("pointer grab failed", "window", n.win.Id)
	}
}

func (n *native) ReleasePointer() {
	xproto.UngrabPointer(n.xu.Conn(), xproto.TimeCurrentTime)
}

func (n *native) StopTimer() {
	if n.ticker != nil {
		n.ticker.Stop()
	}
}

func (n *native) ReleaseWindow() {
	n.win.Destroy()
}

func (n *native) Wake() {
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

func (n *native) Quit() {
	n.quitOnce.Do(func() { close(n.quit) })
}
