package key

// ArrowKeys maps directional key codes to directions.
var ArrowKeys = map[int]Direction{
	CodeLeft:  DirLeft,
	CodeUp:    DirUp,
	CodeRight: DirRight,
	CodeDown:  DirDown,
}

// ColorKeyCodes maps color button char codes to colors.
var ColorKeyCodes = map[int]Color{
	403: ColorRed,
	404: ColorGreen,
	172: ColorGreen,
	405: ColorYellow,
	170: ColorYellow,
	406: ColorBlue,
	191: ColorBlue,
}

// PrimaryColorCodes holds the first code of each color pair.
var PrimaryColorCodes = map[Color]int{
	ColorRed:    403,
	ColorGreen:  404,
	ColorYellow: 405,
	ColorBlue:   406,
}

// ColorOf returns the color associated with a char code.
func ColorOf(charCode int) (Color, bool) {
	c, ok := ColorKeyCodes[charCode]
	return c, ok
}

// DirectionOf returns the direction associated with a key code.
func DirectionOf(keyCode int) (Direction, bool) {
	d, ok := ArrowKeys[keyCode]
	return d, ok
}

var directionActions = map[Direction]Action{
	DirLeft:  ActionLeft,
	DirUp:    ActionUp,
	DirRight: ActionRight,
	DirDown:  ActionDown,
}

// Classify maps a key event to its semantic action.
// Color is checked first so a color char code wins over whatever key code
// the firmware paired with it.
func Classify(e Event) Action {
	if c, ok := ColorOf(e.CharCode); ok {
		return c.Action()
	}
	if d, ok := DirectionOf(e.KeyCode); ok {
		return directionActions[d]
	}
	switch {
	case e.KeyCode == CodeEnter && e.IsKeyboard():
		return ActionConfirm
	case e.KeyCode == CodeEscape:
		return ActionCancel
	}
	return ActionNone
}
