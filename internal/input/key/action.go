package key

// Action is the semantic category of a key event.
type Action uint8

const (
	// ActionNone means the event maps to nothing known.
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionConfirm
	ActionCancel
	ActionColorRed
	ActionColorGreen
	ActionColorYellow
	ActionColorBlue
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionColorRed:
		return "ColorRed"
	case ActionColorGreen:
		return "ColorGreen"
	case ActionColorYellow:
		return "ColorYellow"
	case ActionColorBlue:
		return "ColorBlue"
	default:
		return "Unknown"
	}
}

// IsDirectional returns true for the four arrow actions.
func (a Action) IsDirectional() bool {
	return a >= ActionLeft && a <= ActionDown
}

// IsColor returns true for the four color button actions.
func (a Action) IsColor() bool {
	return a >= ActionColorRed && a <= ActionColorBlue
}

// Direction returns the navigation direction for a directional action.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	default:
		return "", false
	}
}

// Direction is a spatial navigation direction.
type Direction string

const (
	DirLeft  Direction = "left"
	DirUp    Direction = "up"
	DirRight Direction = "right"
	DirDown  Direction = "down"
)

// Color identifies a colored remote button.
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
)

// Action returns the semantic action for the color.
func (c Color) Action() Action {
	switch c {
	case ColorRed:
		return ActionColorRed
	case ColorGreen:
		return ActionColorGreen
	case ColorYellow:
		return ActionColorYellow
	case ColorBlue:
		return ActionColorBlue
	default:
		return ActionNone
	}
}
