package terminal

import "testing"

func TestGeneratedModifierCombos(t *testing.T) {
	tests := []struct {
		seq string
		key Key
		mod Modifier
	}{
		{"1;2A", KeyUp, ModShift},
		{"1;3B", KeyDown, ModAlt},
		{"1;4C", KeyRight, ModShift | ModAlt},
		{"1;5D", KeyLeft, ModCtrl},
		{"1;6H", KeyHome, ModShift | ModCtrl},
		{"1;7F", KeyEnd, ModAlt | ModCtrl},
		{"1;8A", KeyUp, ModShift | ModAlt | ModCtrl},
		{"1;5P", KeyF1, ModCtrl},
		{"1;2S", KeyF4, ModShift},
		{"2;2~", KeyInsert, ModShift},
		{"3;5~", KeyDelete, ModCtrl},
		{"5;3~", KeyPageUp, ModAlt},
		{"6;6~", KeyPageDown, ModShift | ModCtrl},
		{"15;5~", KeyF5, ModCtrl},
		{"17;4~", KeyF6, ModShift | ModAlt},
		{"24;8~", KeyF12, ModShift | ModAlt | ModCtrl},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			key, mod, ok := lookupCSI([]byte(tt.seq))
			if !ok {
				t.Fatalf("Expected %q to resolve", tt.seq)
			}
			if key != tt.key || mod != tt.mod {
				t.Errorf("Expected %v+%v, got %v+%v", tt.mod, tt.key, mod, key)
			}
		})
	}
}

func TestBaseSequences(t *testing.T) {
	tests := []struct {
		seq string
		key Key
		mod Modifier
	}{
		{"A", KeyUp, ModNone},
		{"Z", KeyBacktab, ModShift},
		{"H", KeyHome, ModNone},
		{"1~", KeyHome, ModNone},
		{"7~", KeyHome, ModNone},
		{"11~", KeyF1, ModNone},
		{"24~", KeyF12, ModNone},
		{"[E", KeyF5, ModNone},
	}

	for _, tt := range tests {
		key, mod, ok := lookupCSI([]byte(tt.seq))
		if !ok {
			t.Errorf("Expected %q to resolve", tt.seq)
			continue
		}
		if key != tt.key || mod != tt.mod {
			t.Errorf("%q: expected %v+%v, got %v+%v", tt.seq, tt.mod, tt.key, mod, key)
		}
	}
}

func TestUnknownSequenceMisses(t *testing.T) {
	if _, _, ok := lookupCSI([]byte("99~")); ok {
		t.Error("Expected unknown sequence to miss")
	}
	if _, _, ok := lookupSS3([]byte("z")); ok {
		t.Error("Expected unknown SS3 to miss")
	}
}

func TestXtermModifierDecoding(t *testing.T) {
	tests := []struct {
		param byte
		mod   Modifier
	}{
		{'2', ModShift},
		{'3', ModAlt},
		{'4', ModShift | ModAlt},
		{'5', ModCtrl},
		{'6', ModShift | ModCtrl},
		{'7', ModAlt | ModCtrl},
		{'8', ModShift | ModAlt | ModCtrl},
	}
	for _, tt := range tests {
		if got := xtermModifier(tt.param); got != tt.mod {
			t.Errorf("Param %c: expected %v, got %v", tt.param, tt.mod, got)
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyRune, "Rune"},
		{KeyEscape, "Escape"},
		{KeyPageDown, "PageDown"},
		{KeyF10, "F10"},
		{KeyCtrlA, "Ctrl+A"},
		{KeyCtrlZ, "Ctrl+Z"},
		{KeyCtrlCaret, "Ctrl+^"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, "None"},
		{ModShift, "Shift"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModCtrl | ModAlt | ModShift, "Ctrl+Alt+Shift"},
	}
	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
