// Package viewer runs the interactive frame loop: it folds input into key
// state, advances the transform and render-mode state, rebuilds the vertex
// buffer when baked geometry changes and draws through a renderer.Backend.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/screenshot"
	"github.com/Faultbox/meshview/internal/logger"
)

// EventSource delivers the input events that arrived since the last poll.
// It must not block.
type EventSource interface {
	Poll() []input.Event
}

// TitleSetter displays a status line, typically the window title.
type TitleSetter interface {
	SetTitle(title string)
}

// Settings configures the viewer.
type Settings struct {
	FOV          float32 // vertical, degrees
	Near, Far    float32
	Steps        Steps
	MixStep      float64
	BakeRotation bool
	CameraZ      float32
	// ScreenshotDir receives captures; empty means the working directory.
	ScreenshotDir string
}

// SettingsFromConfig maps the viewer section of the config file.
func SettingsFromConfig(cfg config.ViewerConfig) Settings {
	return Settings{
		FOV:  cfg.FOV,
		Near: cfg.Near,
		Far:  cfg.Far,
		Steps: Steps{
			Rotate: cfg.RotateStep,
			Move:   cfg.MoveStep,
			Turn:   cfg.TurnStep,
		},
		MixStep:       cfg.MixStep,
		BakeRotation:  cfg.BakeRotation,
		CameraZ:       cfg.CameraZ,
		ScreenshotDir: cfg.ScreenshotDir,
	}
}

// Viewer owns the model, all interactive state and the GPU resources it
// created through the backend.
type Viewer struct {
	settings Settings
	backend  renderer.Backend
	events   EventSource

	model      *model.Model
	layout     model.Layout
	controller *Controller
	render     RenderState
	keys       input.KeyState
	shots      *screenshot.Writer

	title     TitleSetter
	titleBase string

	buffer      renderer.BufferHandle
	hasBuffer   bool
	vertexCount int32
	texture     renderer.TextureHandle
	hasTexture  bool

	projection mgl32.Mat4
	frames     uint64
	rebuilds   int
	closed     bool
}

// New uploads the scene and prepares the initial state. width and height
// are the drawable size in pixels.
func New(settings Settings, backend renderer.Backend, events EventSource, scene *Scene, width, height int) (*Viewer, error) {
	if scene == nil || scene.Model == nil {
		return nil, fmt.Errorf("viewer needs a loaded model")
	}

	initial := TransformState{
		Camera: camera.NewFreeCamera(mgl32.Vec3{0, 0, settings.CameraZ}),
	}

	v := &Viewer{
		settings:   settings,
		backend:    backend,
		events:     events,
		model:      scene.Model,
		layout:     model.LayoutFor(scene.Texture != nil),
		controller: NewController(initial, settings.Steps),
		render:     NewRenderState(settings.MixStep),
		shots:      screenshot.New(settings.ScreenshotDir, "meshview"),
	}
	v.resize(width, height)

	if scene.Texture != nil {
		h, err := backend.CreateTexture(scene.Texture)
		if err != nil {
			return nil, fmt.Errorf("uploading texture: %w", err)
		}
		v.texture = h
		v.hasTexture = true
	}

	if err := v.rebuild(); err != nil {
		v.Close()
		return nil, err
	}

	logger.Info("viewer ready",
		zap.Int("vertices", v.model.VertexCount()),
		zap.Int("stride", v.layout.Stride),
		zap.Bool("textured", v.layout.HasTexCoords),
		zap.Bool("bake_rotation", settings.BakeRotation),
	)
	return v, nil
}

// Run steps frames until the user quits or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	logger.Info("starting frame loop")

	frameCount := 0
	fpsTimer := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("frame loop cancelled", zap.Error(err))
			return nil
		}

		running, err := v.Step()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// Step runs one frame. It returns false once a close was requested; nothing
// is drawn on that frame.
func (v *Viewer) Step() (bool, error) {
	frame := input.Collect(v.keys, v.events.Poll())
	v.keys = frame.Held

	if frame.CloseRequested || frame.Pressed.Held(input.ActionQuit) {
		logger.Info("close requested")
		return false, nil
	}

	if frame.Resized {
		v.resize(frame.Width, frame.Height)
		v.backend.Resize(frame.Width, frame.Height)
	}

	dirty := v.controller.Update(frame.Held) && v.settings.BakeRotation

	if frame.Pressed.Held(input.ActionRestore) {
		v.controller.Restore()
		dirty = dirty || v.settings.BakeRotation
		logger.Debug("transform restored")
	}

	if frame.Pressed.Held(input.ActionCycleFillMode) {
		v.render.CycleFillMode()
		logger.Debug("fill mode", zap.Stringer("mode", v.render.Fill))
	}

	if frame.Pressed.Held(input.ActionCycleShader) {
		switch {
		case !v.layout.HasTexCoords:
			logger.Debug("shader toggle ignored: nothing to texture")
		case !v.render.ToggleShader():
			logger.Debug("shader toggle ignored: transition running")
		default:
			logger.Debug("shader variant", zap.Stringer("variant", v.render.Variant))
			v.updateTitle()
		}
	}
	v.render.Advance()

	if dirty {
		if err := v.rebuild(); err != nil {
			return false, err
		}
	}

	v.draw(frame.Pressed.Held(input.ActionScreenshot))
	v.frames++
	return true, nil
}

// Close releases the vertex buffer and texture. Safe to call twice.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true

	if v.hasBuffer {
		v.backend.DestroyVertexBuffer(v.buffer)
		v.hasBuffer = false
	}
	if v.hasTexture {
		v.backend.DestroyTexture(v.texture)
		v.hasTexture = false
	}
	logger.Info("viewer closed", zap.Uint64("frames", v.frames), zap.Int("rebuilds", v.rebuilds))
}

// ShowStatus keeps t's title set to base followed by the fill mode and
// shader variant, updating it whenever either changes.
func (v *Viewer) ShowStatus(t TitleSetter, base string) {
	v.title = t
	v.titleBase = base
	v.updateTitle()
}

func (v *Viewer) updateTitle() {
	if v.title == nil {
		return
	}
	v.title.SetTitle(fmt.Sprintf("%s [%s, %s]", v.titleBase, v.render.Fill, v.render.Variant))
}

// State returns the current transform.
func (v *Viewer) State() TransformState {
	return v.controller.State()
}

// RenderState returns the current render-mode state.
func (v *Viewer) RenderState() RenderState {
	return v.render
}

// Rebuilds is how many times the vertex buffer was uploaded, including the
// initial upload.
func (v *Viewer) Rebuilds() int {
	return v.rebuilds
}

// rebuild replaces the vertex buffer with the current geometry.
func (v *Viewer) rebuild() error {
	posed := v.model
	if v.settings.BakeRotation {
		posed = v.model.Pose(v.controller.State().RotationMatrix())
	}

	data, layout := model.BuildVertexBuffer(posed, v.layout.HasTexCoords)

	if v.hasBuffer {
		v.backend.DestroyVertexBuffer(v.buffer)
		v.hasBuffer = false
	}
	v.rebuilds++

	if len(data) == 0 {
		v.vertexCount = 0
		return nil
	}

	h, err := v.backend.CreateVertexBuffer(data, layout)
	if err != nil {
		return fmt.Errorf("uploading vertex buffer: %w", err)
	}
	v.buffer = h
	v.hasBuffer = true
	v.vertexCount = int32(len(data) / layout.Stride)
	return nil
}

func (v *Viewer) draw(capture bool) {
	state := v.controller.State()

	v.backend.BeginFrame()
	v.backend.SetPolygonMode(v.render.Fill)

	variant := v.render.ActiveVariant()
	v.backend.UseShaderVariant(variant)
	if variant == renderer.ShaderTextured {
		v.backend.BindTexture(v.texture)
		v.backend.SetTextureMix(float32(v.render.Mix))
	}

	v.backend.SetUniformMatrices(
		state.ModelMatrix(v.settings.BakeRotation),
		state.Camera.ViewMatrix(),
		v.projection,
	)

	if v.hasBuffer {
		v.backend.DrawTriangles(v.buffer, v.vertexCount)
	}
	if capture {
		v.capture()
	}
	v.backend.PresentFrame()
}

// capture saves the frame just drawn. Failures are logged, not fatal.
func (v *Viewer) capture() {
	pixels, width, height := v.backend.ReadPixels()
	path, err := v.shots.Save(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) resize(width, height int) {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	v.projection = mgl32.Perspective(mgl32.DegToRad(v.settings.FOV), aspect, v.settings.Near, v.settings.Far)
}
