// Package cursor declares the logical mouse-cursor vocabulary. Each platform
// adapter maps these kinds to its native cursor resources with a pure lookup;
// the engine itself never interprets them.
package cursor

// Cursor is a logical cursor kind.
type Cursor int

const (
	Default Cursor = iota
	Hand
	HandGrabbing
	Help
	Text
	Working
	NotAllowed
	Crosshair
	Move
	AllScroll

	EwResize
	NsResize
	NeswResize
	NwseResize
	ColResize
	RowResize
)

// String returns the string representation of the cursor kind.
func (c Cursor) String() string {
	switch c {
	case Default:
		return "default"
	case Hand:
		return "hand"
	case HandGrabbing:
		return "hand-grabbing"
	case Help:
		return "help"
	case Text:
		return "text"
	case Working:
		return "working"
	case NotAllowed:
		return "not-allowed"
	case Crosshair:
		return "crosshair"
	case Move:
		return "move"
	case AllScroll:
		return "all-scroll"
	case EwResize:
		return "ew-resize"
	case NsResize:
		return "ns-resize"
	case NeswResize:
		return "nesw-resize"
	case NwseResize:
		return "nwse-resize"
	case ColResize:
		return "col-resize"
	case RowResize:
		return "row-resize"
	default:
		return "unknown"
	}
}
