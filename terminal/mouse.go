package terminal

// MouseButton identifies the button a mouse event refers to
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
	MouseBtnBack    // Button 8 (if supported)
	MouseBtnForward // Button 9 (if supported)
)

func (b MouseButton) String() string {
	switch b {
	case MouseBtnNone:
		return "None"
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnWheelUp:
		return "WheelUp"
	case MouseBtnWheelDown:
		return "WheelDown"
	case MouseBtnBack:
		return "Back"
	case MouseBtnForward:
		return "Forward"
	}
	return "Unknown"
}

// MouseAction is the kind of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

func (a MouseAction) String() string {
	switch a {
	case MouseActionNone:
		return "None"
	case MouseActionPress:
		return "Press"
	case MouseActionRelease:
		return "Release"
	case MouseActionMove:
		return "Move"
	case MouseActionDrag:
		return "Drag"
	}
	return "Unknown"
}

// MouseMode controls which mouse events the terminal reports (bitmask).
// Each level includes the ones below it on real terminals.
type MouseMode uint8

const (
	MouseModeNone   MouseMode = 0
	MouseModeClick  MouseMode = 1 << 0 // Presses and releases
	MouseModeDrag   MouseMode = 1 << 1 // Motion while a button is held
	MouseModeMotion MouseMode = 1 << 2 // All motion
)
