// Package sdlinput polls SDL2 events and maps them to viewer input events.
package sdlinput

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshview/internal/engine/input"
)

// Bindings maps physical keys to actions.
type Bindings map[sdl.Scancode]input.Action

// DefaultBindings returns the stock key layout.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_UP:       input.ActionRotateUp,
		sdl.SCANCODE_DOWN:     input.ActionRotateDown,
		sdl.SCANCODE_LEFT:     input.ActionRotateLeft,
		sdl.SCANCODE_RIGHT:    input.ActionRotateRight,
		sdl.SCANCODE_Q:        input.ActionRollLeft,
		sdl.SCANCODE_E:        input.ActionRollRight,
		sdl.SCANCODE_W:        input.ActionMoveForward,
		sdl.SCANCODE_S:        input.ActionMoveBack,
		sdl.SCANCODE_A:        input.ActionMoveLeft,
		sdl.SCANCODE_D:        input.ActionMoveRight,
		sdl.SCANCODE_PAGEUP:   input.ActionMoveUp,
		sdl.SCANCODE_PAGEDOWN: input.ActionMoveDown,
		sdl.SCANCODE_LSHIFT:   input.ActionModifier,
		sdl.SCANCODE_RSHIFT:   input.ActionModifier,
		sdl.SCANCODE_F:        input.ActionCycleFillMode,
		sdl.SCANCODE_T:        input.ActionCycleShader,
		sdl.SCANCODE_R:        input.ActionRestore,
		sdl.SCANCODE_P:        input.ActionScreenshot,
		sdl.SCANCODE_ESCAPE:   input.ActionQuit,
	}
}

// WithOverrides returns a copy of b with overrides applied. Keys are SDL
// scancode names ("Space", "Left Ctrl"), values are action names.
func (b Bindings) WithOverrides(overrides map[string]string) (Bindings, error) {
	out := make(Bindings, len(b)+len(overrides))
	for k, v := range b {
		out[k] = v
	}
	for keyName, actionName := range overrides {
		code := sdl.GetScancodeFromName(keyName)
		if code == sdl.SCANCODE_UNKNOWN {
			return nil, fmt.Errorf("unknown key %q", keyName)
		}
		action, err := input.ParseAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", keyName, err)
		}
		out[code] = action
	}
	return out, nil
}

// SizeFunc reports the drawable size in pixels.
type SizeFunc func() (width, height int)

// Source polls SDL and converts events.
type Source struct {
	bindings Bindings
	drawable SizeFunc
	events   []input.Event
}

// New creates an SDL event source with the given bindings. Resize events
// report drawable(), which differs from the window size on high-DPI
// displays; with a nil drawable the window size is used.
func New(bindings Bindings, drawable SizeFunc) *Source {
	return &Source{
		bindings: bindings,
		drawable: drawable,
		events:   make([]input.Event, 0, 16),
	}
}

// Poll drains pending SDL events without blocking. The returned slice is
// reused by the next call.
func (s *Source) Poll() []input.Event {
	s.events = s.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.events = append(s.events, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w, h := int(e.Data1), int(e.Data2)
				if s.drawable != nil {
					w, h = s.drawable()
				}
				s.events = append(s.events, input.Event{
					Type:   input.EventWindowResize,
					Width:  w,
					Height: h,
				})
			}

		case *sdl.KeyboardEvent:
			// Auto-repeat would re-trigger edge actions.
			if e.Repeat != 0 {
				continue
			}
			action, ok := s.bindings[e.Keysym.Scancode]
			if !ok {
				continue
			}
			typ := input.EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = input.EventKeyUp
			}
			s.events = append(s.events, input.Event{Type: typ, Action: action})
		}
	}

	return s.events
}
