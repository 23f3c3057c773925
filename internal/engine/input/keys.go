// Package input folds input events into per-frame key state.
package input

import "fmt"

// Action is a control the viewer recognizes, independent of the physical key.
type Action uint8

// Recognized actions.
const (
	ActionNone Action = iota
	ActionRotateUp
	ActionRotateDown
	ActionRotateLeft
	ActionRotateRight
	ActionRollLeft
	ActionRollRight
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionModifier
	ActionCycleFillMode
	ActionCycleShader
	ActionRestore
	ActionScreenshot
	ActionQuit
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:          "none",
	ActionRotateUp:      "rotate_up",
	ActionRotateDown:    "rotate_down",
	ActionRotateLeft:    "rotate_left",
	ActionRotateRight:   "rotate_right",
	ActionRollLeft:      "roll_left",
	ActionRollRight:     "roll_right",
	ActionMoveForward:   "move_forward",
	ActionMoveBack:      "move_back",
	ActionMoveLeft:      "move_left",
	ActionMoveRight:     "move_right",
	ActionMoveUp:        "move_up",
	ActionMoveDown:      "move_down",
	ActionModifier:      "modifier",
	ActionCycleFillMode: "cycle_fill_mode",
	ActionCycleShader:   "cycle_shader",
	ActionRestore:       "restore",
	ActionScreenshot:    "screenshot",
	ActionQuit:          "quit",
}

// String returns the config name of the action.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// ParseAction looks up an action by its config name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name && Action(a) != ActionNone {
			return Action(a), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// KeyState is the set of actions currently held.
type KeyState uint32

// Held reports whether a is held.
func (s KeyState) Held(a Action) bool {
	return s&bit(a) != 0
}

// With returns s with a set to held.
func (s KeyState) With(a Action, held bool) KeyState {
	if held {
		return s | bit(a)
	}
	return s &^ bit(a)
}

// Axis returns +1, -1 or 0 for a pair of opposing actions.
func (s KeyState) Axis(pos, neg Action) float32 {
	var v float32
	if s.Held(pos) {
		v++
	}
	if s.Held(neg) {
		v--
	}
	return v
}

func bit(a Action) KeyState {
	if a == ActionNone || a >= actionCount {
		return 0
	}
	return 1 << a
}

// EventType identifies an input event.
type EventType int

// Event types.
const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event is an input event already mapped to an action.
type Event struct {
	Type   EventType
	Action Action
	Width  int
	Height int
}

// Fold applies one event to a key state.
func Fold(s KeyState, e Event) KeyState {
	switch e.Type {
	case EventKeyDown:
		return s.With(e.Action, true)
	case EventKeyUp:
		return s.With(e.Action, false)
	}
	return s
}

// Pressed reports whether e is the leading edge of a press: a key-down for an
// action that is not already held.
func Pressed(s KeyState, e Event) bool {
	return e.Type == EventKeyDown && e.Action != ActionNone && !s.Held(e.Action)
}

// Frame is the input gathered for one frame.
type Frame struct {
	// Held is the key state after all events of the frame.
	Held KeyState
	// Pressed holds every action whose press started this frame, even when it
	// was released again before the frame ended.
	Pressed KeyState
	// CloseRequested is set by a window close event.
	CloseRequested bool
	// Resized is set when the window size changed; Width/Height hold the last size.
	Resized       bool
	Width, Height int
}

// Collect folds a frame's events into the previous key state.
func Collect(prev KeyState, events []Event) Frame {
	f := Frame{Held: prev}
	for _, e := range events {
		if Pressed(f.Held, e) {
			f.Pressed = f.Pressed.With(e.Action, true)
		}
		f.Held = Fold(f.Held, e)

		switch e.Type {
		case EventQuit:
			f.CloseRequested = true
		case EventWindowResize:
			f.Resized = true
			f.Width, f.Height = e.Width, e.Height
		}
	}
	return f
}
