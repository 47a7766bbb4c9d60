//go:build windows

package win32win

import "github.com/ingo-dsp/baseview/cursor"

// System cursor resource ids for LoadCursorW.
const (
	idcArrow       = 32512
	idcIBeam       = 32513
	idcWait        = 32514
	idcCross       = 32515
	idcSizeNWSE    = 32642
	idcSizeNESW    = 32643
	idcSizeWE      = 32644
	idcSizeNS      = 32645
	idcSizeAll     = 32646
	idcNo          = 32648
	idcHand        = 32649
	idcAppStarting = 32650
	idcHelp        = 32651
)

// cursorResource maps a neutral cursor kind onto the system cursor resource.
func cursorResource(c cursor.Cursor) uint16 {
	switch c {
	case cursor.Hand, cursor.HandGrabbing:
		return idcHand
	case cursor.Help:
		return idcHelp
	case cursor.Text:
		return idcIBeam
	case cursor.Working:
		return idcWait
	case cursor.NotAllowed:
		return idcNo
	case cursor.Crosshair:
		return idcCross
	case cursor.Move, cursor.AllScroll:
		return idcSizeAll
	case cursor.EwResize, cursor.ColResize:
		return idcSizeWE
	case cursor.NsResize, cursor.RowResize:
		return idcSizeNS
	case cursor.NeswResize:
		return idcSizeNESW
	case cursor.NwseResize:
		return idcSizeNWSE
	default:
		return idcArrow
	}
}
