// Package keys resolves the key-parameter strings used by
// when_some_key_pressed and is_press_some_key to a canonical scancode
// name, per §6's resolution order: numeric JS keyCode table, then
// scancode-by-name, then uppercased single letter.
package keys

import "strings"

// jsKeyCodes maps the JavaScript keyCode strings Entry projects embed
// to canonical scancode names.
var jsKeyCodes = map[string]string{
	"8": "BACKSPACE", "9": "TAB", "13": "ENTER", "16": "SHIFT",
	"17": "CTRL", "18": "ALT", "27": "ESC", "32": "SPACE",
	"37": "LEFT", "38": "UP", "39": "RIGHT", "40": "DOWN",
	"48": "0", "49": "1", "50": "2", "51": "3", "52": "4",
	"53": "5", "54": "6", "55": "7", "56": "8", "57": "9",
}

// canonicalNames are names accepted verbatim (case-insensitively).
var canonicalNames = map[string]string{
	"left": "LEFT", "right": "RIGHT", "up": "UP", "down": "DOWN",
	"space": "SPACE", "enter": "ENTER", "esc": "ESC", "escape": "ESC",
	"shift": "SHIFT", "ctrl": "CTRL", "alt": "ALT", "tab": "TAB",
	"backspace": "BACKSPACE",
}

// Resolve canonicalizes a key parameter per §6's resolution order.
func Resolve(raw string) string {
	if name, ok := jsKeyCodes[raw]; ok {
		return name
	}
	lower := strings.ToLower(raw)
	if name, ok := canonicalNames[lower]; ok {
		return name
	}
	if len(raw) == 1 {
		return strings.ToUpper(raw)
	}
	return strings.ToUpper(raw)
}
