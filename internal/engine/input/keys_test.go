package input

import "testing"

func TestFold(t *testing.T) {
	var s KeyState

	s = Fold(s, Event{Type: EventKeyDown, Action: ActionRotateUp})
	s = Fold(s, Event{Type: EventKeyDown, Action: ActionModifier})
	if !s.Held(ActionRotateUp) || !s.Held(ActionModifier) {
		t.Fatalf("expected rotate_up and modifier held, got %b", s)
	}

	s = Fold(s, Event{Type: EventKeyUp, Action: ActionRotateUp})
	if s.Held(ActionRotateUp) {
		t.Error("rotate_up should be released")
	}
	if !s.Held(ActionModifier) {
		t.Error("modifier should still be held")
	}

	before := s
	s = Fold(s, Event{Type: EventWindowResize, Width: 10, Height: 10})
	if s != before {
		t.Error("non-key events must not change key state")
	}
}

func TestKeyState_NoneIsNeverHeld(t *testing.T) {
	s := KeyState(0).With(ActionNone, true)
	if s != 0 || s.Held(ActionNone) {
		t.Errorf("ActionNone should not be storable, got %b", s)
	}
}

func TestKeyState_Axis(t *testing.T) {
	tests := []struct {
		name string
		s    KeyState
		want float32
	}{
		{"none", 0, 0},
		{"positive", KeyState(0).With(ActionMoveForward, true), 1},
		{"negative", KeyState(0).With(ActionMoveBack, true), -1},
		{"both", KeyState(0).With(ActionMoveForward, true).With(ActionMoveBack, true), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Axis(ActionMoveForward, ActionMoveBack); got != tt.want {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPressed(t *testing.T) {
	down := Event{Type: EventKeyDown, Action: ActionCycleFillMode}

	if !Pressed(0, down) {
		t.Error("key-down from released state should be an edge")
	}
	if Pressed(KeyState(0).With(ActionCycleFillMode, true), down) {
		t.Error("key-down while held should not be an edge")
	}
	if Pressed(0, Event{Type: EventKeyUp, Action: ActionCycleFillMode}) {
		t.Error("key-up is never an edge")
	}
}

func TestCollect(t *testing.T) {
	events := []Event{
		{Type: EventKeyDown, Action: ActionRestore},
		{Type: EventKeyUp, Action: ActionRestore},
		{Type: EventKeyDown, Action: ActionRotateLeft},
		{Type: EventWindowResize, Width: 800, Height: 600},
		{Type: EventWindowResize, Width: 1024, Height: 768},
	}

	f := Collect(KeyState(0).With(ActionModifier, true), events)

	if !f.Pressed.Held(ActionRestore) {
		t.Error("a press released within the frame should still be reported")
	}
	if f.Held.Held(ActionRestore) {
		t.Error("restore was released and should not be held")
	}
	if !f.Held.Held(ActionRotateLeft) || !f.Held.Held(ActionModifier) {
		t.Errorf("unexpected held state %b", f.Held)
	}
	if !f.Resized || f.Width != 1024 || f.Height != 768 {
		t.Errorf("expected last resize 1024x768, got %v %dx%d", f.Resized, f.Width, f.Height)
	}
	if f.CloseRequested {
		t.Error("no quit event was sent")
	}

	f = Collect(f.Held, []Event{{Type: EventQuit}})
	if !f.CloseRequested {
		t.Error("quit event should request close")
	}
	if f.Pressed != 0 {
		t.Errorf("held keys should not produce new presses, got %b", f.Pressed)
	}
}

func TestParseAction(t *testing.T) {
	for a := ActionRotateUp; a < actionCount; a++ {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("%s: got %v, %v", a, got, err)
		}
	}
	if _, err := ParseAction("none"); err == nil {
		t.Error("none should not be bindable")
	}
	if _, err := ParseAction("jump"); err == nil {
		t.Error("expected error for unknown action")
	}
}
