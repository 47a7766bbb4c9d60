//go:build windows

package win32win

import (
	"unicode"

	"github.com/ingo-dsp/baseview/event"
)

// keyboardState translates virtual-key messages into the neutral keyboard
// vocabulary, tracking the modifier set from the live key state.
type keyboardState struct {
	mods event.Modifiers
}

func newKeyboardState() *keyboardState {
	return &keyboardState{}
}

var vkLabels = map[uintptr]string{
	0x08: "Backspace",
	0x09: "Tab",
	0x0D: "Enter",
	0x13: "Pause",
	0x14: "CapsLock",
	0x1B: "Escape",
	0x20: "Space",
	0x21: "PageUp",
	0x22: "PageDown",
	0x23: "End",
	0x24: "Home",
	0x25: "ArrowLeft",
	0x26: "ArrowUp",
	0x27: "ArrowRight",
	0x28: "ArrowDown",
	0x2C: "PrintScreen",
	0x2D: "Insert",
	0x2E: "Delete",
	0x5D: "ContextMenu",
	0x70: "F1", 0x71: "F2", 0x72: "F3", 0x73: "F4",
	0x74: "F5", 0x75: "F6", 0x76: "F7", 0x77: "F8",
	0x78: "F9", 0x79: "F10", 0x7A: "F11", 0x7B: "F12",
	0x90: "NumLock",
	0x91: "ScrollLock",
}

func keyDown(vk uintptr) bool {
	state, _, _ := procGetKeyState.Call(vk)
	return int16(state) < 0
}

// processKey reports the neutral event for a virtual key. Pure modifier keys
// update the modifier set and report no event of their own.
func (k *keyboardState) processKey(vk uintptr, press bool) (event.KeyboardEvent, bool) {
	switch vk {
	case vkShift, vkControl, vkMenu, vkLWin, vkRWin:
		k.refreshModifiers()
		return event.KeyboardEvent{}, false
	}
	k.refreshModifiers()

	ev := event.KeyboardEvent{
		Code:      uint32(vk),
		Modifiers: k.mods,
	}
	switch {
	case vk >= 'A' && vk <= 'Z':
		r := rune(vk)
		if k.mods&event.ModShift == 0 {
			r = unicode.ToLower(r)
		}
		ev.Label = string(r)
		ev.Rune = r
	case vk >= '0' && vk <= '9':
		ev.Label = string(rune(vk))
		ev.Rune = rune(vk)
	case vk == 0x20:
		ev.Label = "Space"
		ev.Rune = ' '
	default:
		ev.Label = vkLabels[vk]
	}
	return ev, true
}

func (k *keyboardState) refreshModifiers() {
	var m event.Modifiers
	if keyDown(vkShift) {
		m |= event.ModShift
	}
	if keyDown(vkControl) {
		m |= event.ModControl
	}
	if keyDown(vkMenu) {
		m |= event.ModAlt
	}
	if keyDown(vkLWin) || keyDown(vkRWin) {
		m |= event.ModSuper
	}
	k.mods = m
}
