// Package keycode is the compile-time registry mapping symbolic key names to
// the kernel's evdev keycodes (linux/input-event-codes.h KEY_* values).
//
// Codes are small integers in [0,256); anything outside that range is an
// extended key the rest of the system passes through untouched.
package keycode

import "fmt"

// Code is a kernel evdev keycode in [0,256).
type Code uint16

// Keycodes, matching linux/input-event-codes.h KEY_* values exactly so that
// raw read/write against a real evdev device or uinput mirror is valid.
const (
	Esc       Code = 1
	Num1      Code = 2
	Num2      Code = 3
	Num3      Code = 4
	Num4      Code = 5
	Num5      Code = 6
	Num6      Code = 7
	Num7      Code = 8
	Num8      Code = 9
	Num9      Code = 10
	Num0      Code = 11
	Minus     Code = 12
	Equal     Code = 13
	Backspace Code = 14
	Tab       Code = 15
	Q         Code = 16
	W         Code = 17
	E         Code = 18
	R         Code = 19
	T         Code = 20
	Y         Code = 21
	U         Code = 22
	I         Code = 23
	O         Code = 24
	P         Code = 25
	LeftBrace Code = 26

	RightBrace Code = 27
	Enter      Code = 28
	LeftCtrl   Code = 29
	A          Code = 30
	S          Code = 31
	D          Code = 32
	F          Code = 33
	G          Code = 34
	H          Code = 35
	J          Code = 36
	K          Code = 37
	L          Code = 38
	Semicolon  Code = 39
	Apostrophe Code = 40
	Grave      Code = 41
	LeftShift  Code = 42
	Backslash  Code = 43
	Z          Code = 44
	X          Code = 45
	C          Code = 46
	V          Code = 47
	B          Code = 48
	N          Code = 49
	M          Code = 50
	Comma      Code = 51
	Dot        Code = 52
	Slash      Code = 53
	RightShift Code = 54
	KPAsterisk Code = 55
	LeftAlt    Code = 56
	Space      Code = 57
	CapsLock   Code = 58
	F1         Code = 59
	F2         Code = 60
	F3         Code = 61
	F4         Code = 62
	F5         Code = 63
	F6         Code = 64
	F7         Code = 65
	F8         Code = 66
	F9         Code = 67
	F10        Code = 68
	NumLock    Code = 69
	ScrollLock Code = 70
	KP7        Code = 71
	KP8        Code = 72
	KP9        Code = 73
	KPMinus    Code = 74
	KP4        Code = 75
	KP5        Code = 76
	KP6        Code = 77
	KPPlus     Code = 78
	KP1        Code = 79
	KP2        Code = 80
	KP3        Code = 81
	KP0        Code = 82
	KPDot      Code = 83
	F11        Code = 87
	F12        Code = 88
	KPEnter    Code = 96
	RightCtrl  Code = 97
	KPSlash    Code = 98
	SysRq      Code = 99
	RightAlt   Code = 100
	Home       Code = 102
	Up         Code = 103
	PageUp     Code = 104
	Left       Code = 105
	Right      Code = 106
	End        Code = 107
	Down       Code = 108
	PageDown   Code = 109
	Insert     Code = 110
	Delete     Code = 111
	Mute       Code = 113
	VolumeDown Code = 114
	VolumeUp   Code = 115
	KPEqual    Code = 117
	Pause      Code = 119
	LeftMeta   Code = 125
	RightMeta  Code = 126
	Compose    Code = 127
	F13        Code = 183
	F14        Code = 184
	F15        Code = 185
	F16        Code = 186
	F17        Code = 187
	F18        Code = 188
	F19        Code = 189
	F20        Code = 190
	F21        Code = 191
	F22        Code = 192
	F23        Code = 193
	F24        Code = 194
	PlayPause  Code = 164
	NextSong   Code = 163
	PrevSong   Code = 165
	StopCD     Code = 166
)

var byName = map[string]Code{
	"ESC": Esc,
	"1": Num1, "2": Num2, "3": Num3, "4": Num4, "5": Num5,
	"6": Num6, "7": Num7, "8": Num8, "9": Num9, "0": Num0,
	"MINUS": Minus, "EQUAL": Equal, "BACKSPACE": Backspace, "TAB": Tab,
	"Q": Q, "W": W, "E": E, "R": R, "T": T, "Y": Y, "U": U, "I": I, "O": O, "P": P,
	"LEFTBRACE": LeftBrace, "RIGHTBRACE": RightBrace, "ENTER": Enter,
	"LEFTCTRL": LeftCtrl, "A": A, "S": S, "D": D, "F": F, "G": G, "H": H,
	"J": J, "K": K, "L": L, "SEMICOLON": Semicolon, "APOSTROPHE": Apostrophe,
	"GRAVE": Grave, "LEFTSHIFT": LeftShift, "BACKSLASH": Backslash,
	"Z": Z, "X": X, "C": C, "V": V, "B": B, "N": N, "M": M,
	"COMMA": Comma, "DOT": Dot, "SLASH": Slash, "RIGHTSHIFT": RightShift,
	"KPASTERISK": KPAsterisk, "LEFTALT": LeftAlt, "SPACE": Space,
	"CAPSLOCK": CapsLock,
	"F1": F1, "F2": F2, "F3": F3, "F4": F4, "F5": F5, "F6": F6,
	"F7": F7, "F8": F8, "F9": F9, "F10": F10, "F11": F11, "F12": F12,
	"F13": F13, "F14": F14, "F15": F15, "F16": F16, "F17": F17, "F18": F18,
	"F19": F19, "F20": F20, "F21": F21, "F22": F22, "F23": F23, "F24": F24,
	"NUMLOCK": NumLock, "SCROLLLOCK": ScrollLock,
	"KP7": KP7, "KP8": KP8, "KP9": KP9, "KPMINUS": KPMinus,
	"KP4": KP4, "KP5": KP5, "KP6": KP6, "KPPLUS": KPPlus,
	"KP1": KP1, "KP2": KP2, "KP3": KP3, "KP0": KP0, "KPDOT": KPDot,
	"KPENTER": KPEnter, "RIGHTCTRL": RightCtrl, "KPSLASH": KPSlash,
	"SYSRQ": SysRq, "RIGHTALT": RightAlt,
	"HOME": Home, "UP": Up, "PAGEUP": PageUp, "LEFT": Left, "RIGHT": Right,
	"END": End, "DOWN": Down, "PAGEDOWN": PageDown,
	"INSERT": Insert, "DELETE": Delete,
	"MUTE": Mute, "VOLUMEDOWN": VolumeDown, "VOLUMEUP": VolumeUp,
	"KPEQUAL": KPEqual, "PAUSE": Pause,
	"LEFTMETA": LeftMeta, "RIGHTMETA": RightMeta, "COMPOSE": Compose,
	"PLAYPAUSE": PlayPause, "NEXTSONG": NextSong, "PREVSONG": PrevSong, "STOPCD": StopCD,
}

var byCode map[Code]string

func init() {
	byCode = make(map[Code]string, len(byName))
	for name, code := range byName {
		byCode[code] = name
	}
}

// Resolve returns the keycode for a symbolic key name (e.g. "Q",
// "LEFTSHIFT"). The second return value is false if the name is unknown.
func Resolve(name string) (Code, bool) {
	code, ok := byName[name]
	return code, ok
}

// MustResolve is Resolve but panics on an unknown name; intended for use by
// the layout DSL, where an unknown key name is a programmer error caught at
// program startup rather than a runtime condition to handle.
func MustResolve(name string) Code {
	code, ok := Resolve(name)
	if !ok {
		panic(fmt.Sprintf("keycode: unknown key name %q", name))
	}
	return code
}

// Name returns the symbolic name for a keycode, used only for debug
// formatting. Returns a synthetic "CODE(n)" string for unregistered codes.
func Name(code Code) string {
	if name, ok := byCode[code]; ok {
		return name
	}
	return fmt.Sprintf("CODE(%d)", code)
}
