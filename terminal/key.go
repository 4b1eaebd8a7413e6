package terminal

// Key identifies a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete
	KeySpace

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter (Ctrl+A = 0x01, Ctrl+Z = 0x1A)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH // Often same as Backspace
	KeyCtrlI // Often same as Tab
	KeyCtrlJ // Often same as Enter
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM // Often same as Enter
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// Ctrl+special
	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketLeft
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// KeyShiftTab aliases KeyBacktab
const KeyShiftTab = KeyBacktab

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

type keyMod struct {
	key Key
	mod Modifier
}

// csiMap translates the body of a CSI sequence (after ESC [) to a key.
// Modified xterm forms are generated in init; only the irregular bases
// are listed here.
var csiMap = map[string]keyMod{
	// Arrow keys
	"A": {KeyUp, ModNone},
	"B": {KeyDown, ModNone},
	"C": {KeyRight, ModNone},
	"D": {KeyLeft, ModNone},
	"Z": {KeyBacktab, ModShift},

	// Navigation
	"H":  {KeyHome, ModNone},
	"F":  {KeyEnd, ModNone},
	"1~": {KeyHome, ModNone},
	"2~": {KeyInsert, ModNone},
	"3~": {KeyDelete, ModNone},
	"4~": {KeyEnd, ModNone},
	"5~": {KeyPageUp, ModNone},
	"6~": {KeyPageDown, ModNone},
	"7~": {KeyHome, ModNone},
	"8~": {KeyEnd, ModNone},

	// Function keys (xterm)
	"11~": {KeyF1, ModNone},
	"12~": {KeyF2, ModNone},
	"13~": {KeyF3, ModNone},
	"14~": {KeyF4, ModNone},
	"15~": {KeyF5, ModNone},
	"17~": {KeyF6, ModNone},
	"18~": {KeyF7, ModNone},
	"19~": {KeyF8, ModNone},
	"20~": {KeyF9, ModNone},
	"21~": {KeyF10, ModNone},
	"23~": {KeyF11, ModNone},
	"24~": {KeyF12, ModNone},

	// Function keys (vt style)
	"[A": {KeyF1, ModNone},
	"[B": {KeyF2, ModNone},
	"[C": {KeyF3, ModNone},
	"[D": {KeyF4, ModNone},
	"[E": {KeyF5, ModNone},
}

// Modified keys with letter finals use the form ESC [ 1 ; mod letter
var xtermLetterFinals = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// Modified tilde keys use the form ESC [ code ; mod ~
var xtermTildeCodes = map[string]Key{
	"2":  KeyInsert,
	"3":  KeyDelete,
	"5":  KeyPageUp,
	"6":  KeyPageDown,
	"15": KeyF5,
	"17": KeyF6,
	"18": KeyF7,
	"19": KeyF8,
	"20": KeyF9,
	"21": KeyF10,
	"23": KeyF11,
	"24": KeyF12,
}

// xtermModifier decodes the xterm modifier parameter: the parameter is
// 1 plus a bitmask of Shift=1, Alt=2, Ctrl=4
func xtermModifier(param byte) Modifier {
	bits := param - '1'
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

func init() {
	// Generate every modifier combination (params 2 through 8)
	for p := byte('2'); p <= '8'; p++ {
		mod := xtermModifier(p)
		for final, key := range xtermLetterFinals {
			csiMap["1;"+string(p)+string(final)] = keyMod{key, mod}
		}
		for code, key := range xtermTildeCodes {
			csiMap[code+";"+string(p)+"~"] = keyMod{key, mod}
		}
	}
}

// ss3Map translates the byte after ESC O. Keypad characters in
// application mode are handled separately via ss3Keypad.
var ss3Map = map[string]keyMod{
	"A": {KeyUp, ModNone},
	"B": {KeyDown, ModNone},
	"C": {KeyRight, ModNone},
	"D": {KeyLeft, ModNone},
	"H": {KeyHome, ModNone},
	"F": {KeyEnd, ModNone},
	"P": {KeyF1, ModNone},
	"Q": {KeyF2, ModNone},
	"R": {KeyF3, ModNone},
	"S": {KeyF4, ModNone},
	"M": {KeyEnter, ModNone}, // Keypad Enter
}

// ss3Keypad maps application-mode keypad finals to the character they
// stand for
var ss3Keypad = map[byte]rune{
	'X': '=',
	'j': '*',
	'k': '+',
	'l': ',',
	'm': '-',
	'n': '.',
	'o': '/',
	'p': '0',
	'q': '1',
	'r': '2',
	's': '3',
	't': '4',
	'u': '5',
	'v': '6',
	'w': '7',
	'x': '8',
	'y': '9',
}

// lookupCSI performs zero-alloc map lookup via compiler optimization
// The string([]byte) conversion inline in map access does not allocate
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}

// lookupSS3 performs zero-alloc map lookup
func lookupSS3(seq []byte) (Key, Modifier, bool) {
	if s, ok := ss3Map[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}
