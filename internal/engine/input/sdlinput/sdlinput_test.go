package sdlinput

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshview/internal/engine/input"
)

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		code sdl.Scancode
		want input.Action
	}{
		{sdl.SCANCODE_LSHIFT, input.ActionModifier},
		{sdl.SCANCODE_RSHIFT, input.ActionModifier},
		{sdl.SCANCODE_P, input.ActionScreenshot},
		{sdl.SCANCODE_F, input.ActionCycleFillMode},
		{sdl.SCANCODE_T, input.ActionCycleShader},
		{sdl.SCANCODE_R, input.ActionRestore},
		{sdl.SCANCODE_ESCAPE, input.ActionQuit},
	}
	for _, tt := range tests {
		if got := b[tt.code]; got != tt.want {
			t.Errorf("scancode %d: got %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestWithOverrides_CopiesDefaults(t *testing.T) {
	base := DefaultBindings()
	out, err := base.WithOverrides(nil)
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	if len(out) != len(base) {
		t.Fatalf("got %d bindings, want %d", len(out), len(base))
	}

	out[sdl.SCANCODE_F] = input.ActionQuit
	if base[sdl.SCANCODE_F] != input.ActionCycleFillMode {
		t.Error("WithOverrides returned a map aliasing the original")
	}
}
