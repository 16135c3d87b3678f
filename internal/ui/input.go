package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a viewer command triggered by the keyboard or mouse.
type Action int

const (
	ActionNone Action = iota
	ActionNextRoute
	ActionPrevRoute
	ActionShowMore
	ActionShowLess
	ActionToggleExplored
	ActionQuit
)

// Key repeat timing, in ticks.
const (
	repeatDelay    = 24
	repeatInterval = 4
)

var keyActions = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyArrowRight, ActionNextRoute},
	{ebiten.KeyArrowLeft, ActionPrevRoute},
	{ebiten.KeyArrowUp, ActionShowMore},
	{ebiten.KeyArrowDown, ActionShowLess},
	{ebiten.KeySpace, ActionToggleExplored},
	{ebiten.KeyEscape, ActionQuit},
	{ebiten.KeyQ, ActionQuit},
}

// InputHandler manages mouse and keyboard input.
type InputHandler struct {
	mouseX, mouseY int
	actions        []Action
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update collects this frame's actions. Call this once per frame.
func (ih *InputHandler) Update() {
	ih.actions = ih.actions[:0]
	ih.mouseX, ih.mouseY = ebiten.CursorPosition()

	for _, ka := range keyActions {
		if isKeyRepeated(ka.key) {
			ih.actions = append(ih.actions, ka.action)
		}
	}

	// Left click advances the route, right click goes back.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ih.actions = append(ih.actions, ActionNextRoute)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		ih.actions = append(ih.actions, ActionPrevRoute)
	}
}

// Actions returns the actions triggered in the current frame.
func (ih *InputHandler) Actions() []Action {
	return ih.actions
}

// MousePosition returns the current mouse position.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// isKeyRepeated reports a press on the first frame and then periodically
// while the key is held.
func isKeyRepeated(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}
