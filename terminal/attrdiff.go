package terminal

import "github.com/lixenwraith/termwin/grid"

// AttrOp is one attribute toggle directive for a backend
type AttrOp struct {
	Attr   grid.Modifier
	Enable bool
}

// AppendAttrOps appends the directives that take the terminal from one
// attribute set to the other, reusing ops' backing array.
//
// Disables come first. SGR 22 clears bold and dim together, so removing
// one re-enables the other when it should survive. Both blink rates are
// cleared by SGR 25, share a single disable, and get the same surviving
// re-enable. Hidden produces no directive.
func AppendAttrOps(ops []AttrOp, from, to grid.Modifier) []AttrOp {
	if from == to {
		return ops
	}
	removed := from &^ to
	added := to &^ from

	if removed.Contains(grid.ModReversed) {
		ops = append(ops, AttrOp{grid.ModReversed, false})
	}
	if removed.Contains(grid.ModBold) {
		ops = append(ops, AttrOp{grid.ModBold, false})
		if to.Contains(grid.ModDim) {
			ops = append(ops, AttrOp{grid.ModDim, true})
		}
	}
	if removed.Contains(grid.ModItalic) {
		ops = append(ops, AttrOp{grid.ModItalic, false})
	}
	if removed.Contains(grid.ModUnderlined) {
		ops = append(ops, AttrOp{grid.ModUnderlined, false})
	}
	if removed.Contains(grid.ModDim) {
		ops = append(ops, AttrOp{grid.ModDim, false})
		if to.Contains(grid.ModBold) {
			ops = append(ops, AttrOp{grid.ModBold, true})
		}
	}
	if removed.Contains(grid.ModCrossedOut) {
		ops = append(ops, AttrOp{grid.ModCrossedOut, false})
	}
	if blink := removed & (grid.ModSlowBlink | grid.ModRapidBlink); blink != 0 {
		ops = append(ops, AttrOp{blink, false})
		if keep := to & (grid.ModSlowBlink | grid.ModRapidBlink); keep != 0 {
			ops = append(ops, AttrOp{keep, true})
		}
	}

	if added.Contains(grid.ModReversed) {
		ops = append(ops, AttrOp{grid.ModReversed, true})
	}
	if added.Contains(grid.ModBold) {
		ops = append(ops, AttrOp{grid.ModBold, true})
	}
	if added.Contains(grid.ModItalic) {
		ops = append(ops, AttrOp{grid.ModItalic, true})
	}
	if added.Contains(grid.ModUnderlined) {
		ops = append(ops, AttrOp{grid.ModUnderlined, true})
	}
	if added.Contains(grid.ModDim) {
		ops = append(ops, AttrOp{grid.ModDim, true})
	}
	if added.Contains(grid.ModCrossedOut) {
		ops = append(ops, AttrOp{grid.ModCrossedOut, true})
	}
	if added.Contains(grid.ModSlowBlink) {
		ops = append(ops, AttrOp{grid.ModSlowBlink, true})
	}
	if added.Contains(grid.ModRapidBlink) {
		ops = append(ops, AttrOp{grid.ModRapidBlink, true})
	}
	return ops
}
