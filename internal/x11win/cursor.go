//go:build linux

package x11win

import "github.com/ingo-dsp/baseview/cursor"

// Glyph indices into the standard X cursor font.
const (
	glyphLeftPtr          = 68
	glyphHand2            = 60
	glyphFleur            = 52
	glyphQuestionArrow    = 92
	glyphXterm            = 152
	glyphWatch            = 150
	glyphCircle           = 24
	glyphCrosshair        = 34
	glyphHDoubleArrow     = 108
	glyphVDoubleArrow     = 116
	glyphTopLeftCorner    = 134
	glyphTopRightCorner   = 136
)

// cursorGlyph maps a neutral cursor kind onto its X cursor font glyph.
func cursorGlyph(c cursor.Cursor) uint16 {
	switch c {
	case cursor.Hand:
		return glyphHand2
	case cursor.HandGrabbing:
		return glyphFleur
	case cursor.Help:
		return glyphQuestionArrow
	case cursor.Text:
		return glyphXterm
	case cursor.Working:
		return glyphWatch
	case cursor.NotAllowed:
		return glyphCircle
	case cursor.Crosshair:
		return glyphCrosshair
	case cursor.Move, cursor.AllScroll:
		return glyphFleur
	case cursor.EwResize, cursor.ColResize:
		return glyphHDoubleArrow
	case cursor.NsResize, cursor.RowResize:
		return glyphVDoubleArrow
	case cursor.NeswResize:
		return glyphTopRightCorner
	case cursor.NwseResize:
		return glyphTopLeftCorner
	default:
		return glyphLeftPtr
	}
}
