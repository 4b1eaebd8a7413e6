package grid

import "strings"

// Modifier is a bitset of text emphasis attributes. Bit positions are
// fixed; backends map them to escape directives
type Modifier uint16

const (
	ModBold Modifier = 1 << iota
	ModDim
	ModItalic
	ModUnderlined
	ModSlowBlink
	ModRapidBlink
	ModReversed
	ModHidden
	ModCrossedOut
)

// ModNone is the empty attribute set
const ModNone Modifier = 0

// modAll covers every defined bit; used by StyleReset to subtract everything
const modAll = ModBold | ModDim | ModItalic | ModUnderlined | ModSlowBlink |
	ModRapidBlink | ModReversed | ModHidden | ModCrossedOut

// Contains reports whether every bit of other is set in m
func (m Modifier) Contains(other Modifier) bool {
	return m&other == other
}

var modNames = []struct {
	bit  Modifier
	name string
}{
	{ModBold, "BOLD"},
	{ModDim, "DIM"},
	{ModItalic, "ITALIC"},
	{ModUnderlined, "UNDERLINED"},
	{ModSlowBlink, "SLOW_BLINK"},
	{ModRapidBlink, "RAPID_BLINK"},
	{ModReversed, "REVERSED"},
	{ModHidden, "HIDDEN"},
	{ModCrossedOut, "CROSSED_OUT"},
}

// String formats the set as NONE or a |-separated flag list
func (m Modifier) String() string {
	if m == ModNone {
		return "NONE"
	}
	var parts []string
	for _, mn := range modNames {
		if m&mn.bit != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "|")
}
