package editor

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// keyString names a key event the way keymap entries spell it.
func keyString(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return "ctrl+" + strings.ToLower(string(r))
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return "alt+" + string(r)
		}
		if r == ' ' {
			return "space"
		}
		return string(r)
	}
	// Check Tab before ctrlKeyName since KeyTab == KeyCtrlI (0x09)
	switch ev.Key() {
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEscape:
		return "esc"
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	prefix := ""
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		prefix = "ctrl+"
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return prefix + "up"
	case tcell.KeyDown:
		return prefix + "down"
	case tcell.KeyLeft:
		return prefix + "left"
	case tcell.KeyRight:
		return prefix + "right"
	case tcell.KeyPgUp:
		return prefix + "pgup"
	case tcell.KeyPgDn:
		return prefix + "pgdn"
	case tcell.KeyHome:
		return prefix + "home"
	case tcell.KeyEnd:
		return prefix + "end"
	case tcell.KeyDelete:
		return prefix + "del"
	case tcell.KeyInsert:
		return prefix + "ins"
	}
	return ""
}

func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	return ""
}

// hexDigit decodes [0-9a-fA-F].
func hexDigit(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}
