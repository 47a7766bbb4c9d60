//go:build windows

package win32win

import "golang.org/x/sys/windows"

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassExW    = user32.NewProc("RegisterClassExW")
	procUnregisterClassW    = user32.NewProc("UnregisterClassW")
	procCreateWindowExW     = user32.NewProc("CreateWindowExW")
	procDefWindowProcW      = user32.NewProc("DefWindowProcW")
	procDestroyWindow       = user32.NewProc("DestroyWindow")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostMessageW        = user32.NewProc("PostMessageW")
	procPostQuitMessage     = user32.NewProc("PostQuitMessage")
	procSetTimer            = user32.NewProc("SetTimer")
	procKillTimer           = user32.NewProc("KillTimer")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procAdjustWindowRectEx  = user32.NewProc("AdjustWindowRectEx")
	procSetCapture          = user32.NewProc("SetCapture")
	procReleaseCapture      = user32.NewProc("ReleaseCapture")
	procLoadCursorW         = user32.NewProc("LoadCursorW")
	procSetCursor           = user32.NewProc("SetCursor")
	procGetKeyState         = user32.NewProc("GetKeyState")
	procGetDpiForWindow     = user32.NewProc("GetDpiForWindow")
	procGetDpiForSystem     = user32.NewProc("GetDpiForSystem")
	procSetProcessDpiAwCtx  = user32.NewProc("SetProcessDpiAwarenessContext")
	procGetModuleHandleW    = kernel32.NewProc("GetModuleHandleW")
)

const (
	wmSize        = 0x0005
	wmClose       = 0x0010
	wmSetCursor   = 0x0020
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmTimer       = 0x0113
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C
	wmMouseHWheel = 0x020E
	wmDpiChanged  = 0x02E0
	wmNCDestroy   = 0x0082
	wmUser        = 0x0400

	// wmWake is the cross-thread nudge posted to run a frame pass outside
	// the timer cadence.
	wmWake = wmUser + 1

	wsChild       = 0x40000000
	wsVisible     = 0x10000000
	wsPopupWindow = 0x80880000
	wsCaption     = 0x00C00000
	wsSizeBox     = 0x00040000
	wsMinimizeBox = 0x00020000
	wsMaximizeBox = 0x00010000

	csOwnDC = 0x0020

	htClient = 1

	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010

	frameTimerID       = 1
	frameTimerMillis   = 15
	wheelDelta         = 120.0
	xButton1, xButton2 = 1, 2

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkLWin    = 0x5B
	vkRWin    = 0x5C

	// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 pseudo handle (-4).
	dpiAwarePerMonitorV2 = ^uintptr(0) - 3
)

type wndClassExW struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     uintptr
	hIcon         uintptr
	hCursor       uintptr
	hbrBackground uintptr
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       uintptr
}

type winPoint struct {
	x, y int32
}

type winMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      winPoint
}

type winRect struct {
	left, top, right, bottom int32
}

func loWord(v uintptr) uint16 { return uint16(v) }
func hiWord(v uintptr) uint16 { return uint16(v >> 16) }

// Signed client coordinates packed into lParam.
func pointFromLParam(lp uintptr) (int32, int32) {
	return int32(int16(loWord(lp))), int32(int16(hiWord(lp)))
}
