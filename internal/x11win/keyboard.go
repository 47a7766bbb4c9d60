//go:build linux

package x11win

import (
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/ingo-dsp/baseview/event"
)

// keyboardState translates X key events into the neutral keyboard vocabulary
// and keeps the modifier set in sync with the server-reported state mask.
type keyboardState struct {
	xu   *xgbutil.XUtil
	mods event.Modifiers
}

func newKeyboardState(xu *xgbutil.XUtil) *keyboardState {
	return &keyboardState{xu: xu}
}

// pure modifier keysym names, which update the modifier set but do not
// produce a key event of their own.
var modifierNames = map[string]struct{}{
	"Shift_L": {}, "Shift_R": {},
	"Control_L": {}, "Control_R": {},
	"Alt_L": {}, "Alt_R": {},
	"Meta_L": {}, "Meta_R": {},
	"Super_L": {}, "Super_R": {},
	"Hyper_L": {}, "Hyper_R": {},
	"Caps_Lock": {}, "Num_Lock": {},
	"ISO_Level3_Shift": {},
}

func (k *keyboardState) processKey(code xproto.Keycode, state uint16, press bool) (event.KeyboardEvent, bool) {
	k.mods = translateModifiers(state)

	label := keybind.LookupString(k.xu, state, code)
	if _, isMod := modifierNames[label]; isMod || label == "" {
		return event.KeyboardEvent{}, false
	}

	ev := event.KeyboardEvent{
		Code:      uint32(code),
		Label:     label,
		Modifiers: k.mods,
	}
	if utf8.RuneCountInString(label) == 1 {
		r, _ := utf8.DecodeRuneInString(label)
		ev.Rune = r
	}
	return ev, true
}

// translateModifiers maps the core X state mask to the neutral modifier set.
// Mod1 is conventionally Alt and Mod4 the Super key.
func translateModifiers(state uint16) event.Modifiers {
	var m event.Modifiers
	if state&xproto.KeyButMaskShift != 0 {
		m |= event.ModShift
	}
	if state&xproto.KeyButMaskControl != 0 {
		m |= event.ModControl
	}
	if state&xproto.KeyButMaskMod1 != 0 {
		m |= event.ModAlt
	}
	if state&xproto.KeyButMaskMod4 != 0 {
		m |= event.ModSuper
	}
	return m
}
