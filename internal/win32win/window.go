//go:build windows

// Package win32win is the Win32 platform adapter. Each window gets its own
// window class and a message pump on a locked OS thread; native messages are
// translated into window-state operations inside the window procedure.
package win32win

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/ingo-dsp/baseview/cursor"
	"github.com/ingo-dsp/baseview/dpi"
	"github.com/ingo-dsp/baseview/event"
	"github.com/ingo-dsp/baseview/gpu"
	"github.com/ingo-dsp/baseview/internal/wincore"
)

// Options configures a Win32 window.
type Options struct {
	Title string
	// Size is the requested logical size.
	Size dpi.Size
	// Scale fixes the scale factor; zero tracks the per-monitor DPI.
	Scale float64
	// Parent is the host-owned HWND to embed into; zero opens a top-level
	// window.
	Parent uintptr
	// Blocking runs the pump on the calling goroutine until the window is
	// destroyed.
	Blocking bool
	// GPU optionally requests a window-owned GPU context.
	GPU *gpu.Config
	Log *slog.Logger
}

type native struct {
	hwnd      uintptr
	className *uint16
	hInstance uintptr
	parent    uintptr
	log       *slog.Logger
	keyboard  *keyboardState

	s         *wincore.State
	hCursor   uintptr
	destroyed bool
}

var (
	openMu      sync.Mutex
	openWindows = map[uintptr]*native{}

	wndProcOnce sync.Once
	wndProcPtr  uintptr

	dpiOnce sync.Once
)

func lookupNative(hwnd uintptr) *native {
	openMu.Lock()
	defer openMu.Unlock()
	return openWindows[hwnd]
}

// Open creates the native window and starts its pump. The pump thread owns
// the window, so in non-blocking mode the window itself is created on a
// dedicated locked goroutine and construction errors are reported back before
// Open returns.
func Open(opts Options, build func(ctl wincore.Control) wincore.Handler) (*wincore.Handle, error) {
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	if opts.Blocking {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		n, state, err := create(opts, build)
		if err != nil {
			return nil, err
		}
		handle := state.NewHandle()
		n.pump()
		return handle, nil
	}

	type result struct {
		handle *wincore.Handle
		err    error
	}
	done := make(chan result, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		n, state, err := create(opts, build)
		if err != nil {
			done <- result{nil, err}
			return
		}
		done <- result{state.NewHandle(), nil}
		n.pump()
	}()
	r := <-done
	return r.handle, r.err
}

func create(opts Options, build func(ctl wincore.Control) wincore.Handler) (*native, *wincore.State, error) {
	dpiOnce.Do(func() {
		procSetProcessDpiAwCtx.Call(dpiAwarePerMonitorV2)
	})
	wndProcOnce.Do(func() {
		wndProcPtr = syscall.NewCallback(wndProc)
	})

	hInstance, _, _ := procGetModuleHandleW.Call(0)

	scale := opts.Scale
	if scale == 0 {
		sysDpi, _, _ := procGetDpiForSystem.Call()
		if sysDpi != 0 {
			scale = float64(sysDpi) / 96.0
		} else {
			scale = 1.0
		}
	}
	info := dpi.FromLogicalSize(opts.Size, scale)

	n := &native{
		hInstance: hInstance,
		parent:    opts.Parent,
		log:       opts.Log,
		keyboard:  newKeyboardState(),
	}

	className, err := uniqueClassName()
	if err != nil {
		return nil, nil, fmt.Errorf("win32win: failed to generate class name: %w", err)
	}
	n.className = className

	wc := wndClassExW{
		cbSize:        uint32(unsafe.Sizeof(wndClassExW{})),
		style:         csOwnDC,
		lpfnWndProc:   wndProcPtr,
		hInstance:     hInstance,
		lpszClassName: className,
	}
	atom, _, callErr := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
	if atom == 0 {
		return nil, nil, fmt.Errorf("win32win: failed to register window class: %w", callErr)
	}

	style := uintptr(wsChild | wsVisible)
	if opts.Parent == 0 {
		style = wsPopupWindow | wsCaption | wsVisible | wsSizeBox | wsMinimizeBox | wsMaximizeBox
	}
	phys := info.PhysicalSize()
	width, height := outerSize(phys, style)

	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		n.unregisterClass()
		return nil, nil, fmt.Errorf("win32win: invalid window title: %w", err)
	}
	hwnd, _, callErr := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		style,
		0, 0,
		uintptr(width), uintptr(height),
		opts.Parent,
		0,
		hInstance,
		0,
	)
	if hwnd == 0 {
		n.unregisterClass()
		return nil, nil, fmt.Errorf("win32win: failed to create window: %w", callErr)
	}
	n.hwnd = hwnd

	trackScale := opts.Scale == 0
	if trackScale {
		// The monitor the window landed on may not match the system DPI.
		if winDpi, _, _ := procGetDpiForWindow.Call(hwnd); winDpi != 0 {
			actual := float64(winDpi) / 96.0
			if actual != scale {
				scale = actual
				info = dpi.FromLogicalSize(opts.Size, scale)
				n.resizeClient(info.PhysicalSize())
			}
		}
	}

	var gpuCtx *gpu.Context
	if opts.GPU != nil {
		gpuCtx, err = gpu.NewContext(*opts.GPU, info.PhysicalSize())
		if err != nil {
			procDestroyWindow.Call(hwnd)
			n.unregisterClass()
			return nil, nil, fmt.Errorf("win32win: failed to create GPU context: %w", err)
		}
	}

	state := wincore.New(wincore.Config{
		NativeID:   uint64(hwnd),
		Native:     n,
		Info:       info,
		TrackScale: trackScale,
		Blocking:   opts.Blocking,
		GPU:        gpuCtx,
		Log:        opts.Log,
	})
	state.SetHandler(build(state))
	n.s = state

	openMu.Lock()
	openWindows[hwnd] = n
	openMu.Unlock()

	state.Run()
	procSetTimer.Call(hwnd, frameTimerID, frameTimerMillis, 0)
	return n, state, nil
}

func uniqueClassName() (*uint16, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	return windows.UTF16PtrFromString("baseview-" + hex.EncodeToString(buf[:]))
}

func (n *native) unregisterClass() {
	procUnregisterClassW.Call(uintptr(unsafe.Pointer(n.className)), n.hInstance)
}

// outerSize converts a client-area size into the full window size for the
// given style. Child windows have no frame.
func outerSize(phys dpi.PhySize, style uintptr) (int32, int32) {
	if style&wsChild != 0 {
		return int32(phys.Width), int32(phys.Height)
	}
	r := winRect{right: int32(phys.Width), bottom: int32(phys.Height)}
	procAdjustWindowRectEx.Call(uintptr(unsafe.Pointer(&r)), style, 0, 0)
	return r.right - r.left, r.bottom - r.top
}

func (n *native) resizeClient(phys dpi.PhySize) {
	style := uintptr(wsChild | wsVisible)
	if n.parent == 0 {
		style = wsPopupWindow | wsCaption | wsVisible | wsSizeBox | wsMinimizeBox | wsMaximizeBox
	}
	w, h := outerSize(phys, style)
	procSetWindowPos.Call(n.hwnd, 0, 0, 0, uintptr(w), uintptr(h),
		swpNoMove|swpNoZOrder|swpNoActivate)
}

// pump runs the per-window message loop until the window is destroyed.
func (n *native) pump() {
	var m winMsg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 || int(ret) == -1 {
			return
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
		if n.destroyed {
			return
		}
	}
}

func wndProc(hwnd, msgID, wParam, lParam uintptr) uintptr {
	n := lookupNative(hwnd)
	if n == nil {
		ret, _, _ := procDefWindowProcW.Call(hwnd, msgID, wParam, lParam)
		return ret
	}
	return n.handleMessage(msgID, wParam, lParam)
}

func (n *native) handleMessage(msgID, wParam, lParam uintptr) uintptr {
	switch msgID {
	case wmTimer:
		if wParam == frameTimerID {
			n.s.Frame()
			return 0
		}

	case wmWake:
		n.s.Frame()
		return 0

	case wmMouseMove:
		x, y := pointFromLParam(lParam)
		n.s.MouseMove(dpi.PhyPoint{X: x, Y: y})
		return 0

	case wmLButtonDown, wmLButtonUp, wmMButtonDown, wmMButtonUp,
		wmRButtonDown, wmRButtonUp, wmXButtonDown, wmXButtonUp:
		return n.handleMouseButton(msgID, wParam)

	case wmMouseWheel:
		n.s.MouseWheel(0, float64(int16(hiWord(wParam)))/wheelDelta)
		return 0

	case wmMouseHWheel:
		n.s.MouseWheel(float64(int16(hiWord(wParam)))/wheelDelta, 0)
		return 0

	case wmKeyDown, wmKeyUp, wmSysKeyDown, wmSysKeyUp:
		return n.handleKey(msgID, wParam, lParam)

	case wmSize:
		w, h := pointFromLParam(lParam)
		if w > 0 && h > 0 {
			n.s.NativeResized(dpi.PhySize{Width: uint32(w), Height: uint32(h)})
		}
		return 0

	case wmDpiChanged:
		n.s.ScaleChanged(float64(loWord(wParam)) / 96.0)
		return 0

	case wmSetCursor:
		if loWord(lParam) == htClient && n.hCursor != 0 {
			procSetCursor.Call(n.hCursor)
			return 1
		}

	case wmClose:
		n.s.CloseMessage()
		return 0

	case wmNCDestroy:
		n.destroyed = true
		openMu.Lock()
		delete(openWindows, n.hwnd)
		openMu.Unlock()
		// Covers spontaneous destruction by the host; after an orderly
		// close the engine has already released its side.
		n.s.NativeDestroyed()
		n.unregisterClass()
	}
	ret, _, _ := procDefWindowProcW.Call(n.hwnd, msgID, wParam, lParam)
	return ret
}

func (n *native) handleMouseButton(msgID, wParam uintptr) uintptr {
	switch msgID {
	case wmLButtonDown:
		n.s.MouseButton(event.MouseLeft, true)
	case wmLButtonUp:
		n.s.MouseButton(event.MouseLeft, false)
	case wmMButtonDown:
		n.s.MouseButton(event.MouseMiddle, true)
	case wmMButtonUp:
		n.s.MouseButton(event.MouseMiddle, false)
	case wmRButtonDown:
		n.s.MouseButton(event.MouseRight, true)
	case wmRButtonUp:
		n.s.MouseButton(event.MouseRight, false)
	case wmXButtonDown, wmXButtonUp:
		pressed := msgID == wmXButtonDown
		switch hiWord(wParam) {
		case xButton1:
			n.s.MouseButton(event.MouseBack, pressed)
		case xButton2:
			n.s.MouseButton(event.MouseForward, pressed)
		}
		// Applications that process XBUTTON messages return TRUE.
		return 1
	}
	return 0
}

func (n *native) handleKey(msgID, wParam, lParam uintptr) uintptr {
	pressed := msgID == wmKeyDown || msgID == wmSysKeyDown
	if kev, ok := n.keyboard.processKey(wParam, pressed); ok {
		status := n.s.Key(kev, pressed)
		if msgID == wmKeyDown || msgID == wmKeyUp {
			if status == event.Captured {
				return 0
			}
			// Embedded windows hand unhandled keystrokes back to the
			// host's window.
			if n.parent != 0 {
				procPostMessageW.Call(n.parent, msgID, wParam, lParam)
				return 0
			}
			return 0
		}
	}
	// System keys stay on the default path so shortcuts like Alt+F4 work.
	ret, _, _ := procDefWindowProcW.Call(n.hwnd, msgID, wParam, lParam)
	return ret
}

func (n *native) ResizeNative(size dpi.PhySize) {
	n.resizeClient(size)
}

func (n *native) SetCursor(c cursor.Cursor) {
	h, _, _ := procLoadCursorW.Call(0, uintptr(cursorResource(c)))
	if h == 0 {
		n.log.Warn("cursor load failed", "cursor", c.String())
		return
	}
	n.hCursor = h
	procSetCursor.Call(h)
}

func (n *native) CapturePointer() {
	procSetCapture.Call(n.hwnd)
}

func (n *native) ReleasePointer() {
	procReleaseCapture.Call()
}

func (n *native) StopTimer() {
	procKillTimer.Call(n.hwnd, frameTimerID)
}

func (n *native) ReleaseWindow() {
	procDestroyWindow.Call(n.hwnd)
}

func (n *native) Wake() {
	procPostMessageW.Call(n.hwnd, wmWake, 0, 0)
}

func (n *native) Quit() {
	procPostQuitMessage.Call(0)
}
