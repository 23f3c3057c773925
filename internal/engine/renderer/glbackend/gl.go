// Package glbackend implements renderer.Backend on OpenGL 4.1 core.
package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/engine/texture"
	"github.com/Faultbox/meshview/internal/logger"
)

// Attribute locations shared by both programs.
const (
	attribPosition = 0
	attribColor    = 1
	attribTexCoord = 2
)

// Presenter shows a finished frame. The SDL window implements it.
type Presenter interface {
	SwapBuffers()
}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
	PointSize  float32
}

type glBuffer struct {
	vao uint32
	vbo uint32
}

var _ renderer.Backend = (*GL)(nil)

// GL is the OpenGL implementation of renderer.Backend.
type GL struct {
	config    Config
	presenter Presenter

	programs map[renderer.ShaderVariant]*shader.Program
	active   *shader.Program

	buffers  map[renderer.BufferHandle]glBuffer
	textures map[renderer.TextureHandle]uint32
}

// New initializes OpenGL and compiles the shader variants.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, presenter Presenter) (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &GL{
		config:    cfg,
		presenter: presenter,
		programs:  make(map[renderer.ShaderVariant]*shader.Program),
		buffers:   make(map[renderer.BufferHandle]glBuffer),
		textures:  make(map[renderer.TextureHandle]uint32),
	}

	colorProg, err := shader.Compile("color", colorVertexShader, colorFragmentShader)
	if err != nil {
		return nil, err
	}
	r.programs[renderer.ShaderColorOnly] = colorProg

	texProg, err := shader.Compile("textured", texturedVertexShader, texturedFragmentShader)
	if err != nil {
		colorProg.Delete()
		return nil, err
	}
	r.programs[renderer.ShaderTextured] = texProg

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if cfg.PointSize > 0 {
		gl.PointSize(cfg.PointSize)
	}
	gl.ClearColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	r.UseShaderVariant(renderer.ShaderColorOnly)
	return r, nil
}

// Close releases every GPU resource the renderer still owns.
func (r *GL) Close() {
	logger.Info("closing renderer")
	for h := range r.buffers {
		r.DestroyVertexBuffer(h)
	}
	for h := range r.textures {
		r.DestroyTexture(h)
	}
	for _, p := range r.programs {
		p.Delete()
	}
}

// CreateVertexBuffer uploads interleaved vertex data.
func (r *GL) CreateVertexBuffer(data []float32, layout model.Layout) (renderer.BufferHandle, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty vertex buffer")
	}
	if len(data)%layout.Stride != 0 {
		return 0, fmt.Errorf("vertex data length %d is not a multiple of stride %d", len(data), layout.Stride)
	}

	var b glBuffer
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	stride := layout.StrideBytes()
	gl.VertexAttribPointerWithOffset(attribPosition, model.PositionFloats, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(attribPosition)

	gl.VertexAttribPointerWithOffset(attribColor, model.ColorFloats, gl.FLOAT, false, stride, model.PositionFloats*4)
	gl.EnableVertexAttribArray(attribColor)

	if layout.HasTexCoords {
		gl.VertexAttribPointerWithOffset(attribTexCoord, model.TexCoordFloats, gl.FLOAT, false, stride,
			(model.PositionFloats+model.ColorFloats)*4)
		gl.EnableVertexAttribArray(attribTexCoord)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	h := renderer.BufferHandle(b.vao)
	r.buffers[h] = b

	logger.Debug("vertex buffer created",
		zap.Uint32("vao", b.vao),
		zap.Uint32("vbo", b.vbo),
		zap.Int("floats", len(data)),
		zap.Int("stride", layout.Stride),
	)
	return h, nil
}

// DestroyVertexBuffer releases a buffer created by CreateVertexBuffer.
func (r *GL) DestroyVertexBuffer(h renderer.BufferHandle) {
	b, ok := r.buffers[h]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	delete(r.buffers, h)
}

// CreateTexture uploads an RGB image.
func (r *GL) CreateTexture(img *texture.Image) (renderer.TextureHandle, error) {
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) < img.Width*img.Height*3 {
		return 0, fmt.Errorf("invalid texture image %dx%d with %d bytes", img.Width, img.Height, len(img.Pix))
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	pix := img.BottomUp()

	// RGB rows are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(img.Width), int32(img.Height), 0,
		gl.RGB, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	h := renderer.TextureHandle(id)
	r.textures[h] = id
	return h, nil
}

// DestroyTexture releases a texture created by CreateTexture.
func (r *GL) DestroyTexture(h renderer.TextureHandle) {
	id, ok := r.textures[h]
	if !ok {
		return
	}
	gl.DeleteTextures(1, &id)
	delete(r.textures, h)
}

// UseShaderVariant makes the variant's program current.
func (r *GL) UseShaderVariant(v renderer.ShaderVariant) {
	p, ok := r.programs[v]
	if !ok {
		panic(fmt.Sprintf("glbackend: no program for shader variant %s", v))
	}
	if r.active == p {
		return
	}
	r.active = p
	p.Use()
	if loc := p.Uniform("uTexture"); loc >= 0 {
		gl.Uniform1i(loc, 0)
	}
}

// SetUniformMatrices sets the transform uniforms of the current program.
func (r *GL) SetUniformMatrices(modelMat, view, projection mgl32.Mat4) {
	gl.UniformMatrix4fv(r.active.Uniform("uModel"), 1, false, &modelMat[0])
	gl.UniformMatrix4fv(r.active.Uniform("uView"), 1, false, &view[0])
	gl.UniformMatrix4fv(r.active.Uniform("uProjection"), 1, false, &projection[0])
}

// SetTextureMix sets the color/texture blend factor. Ignored by the color program.
func (r *GL) SetTextureMix(mix float32) {
	if loc := r.active.Uniform("uTextureMix"); loc >= 0 {
		gl.Uniform1f(loc, mix)
	}
}

// BindTexture binds a texture to unit 0.
func (r *GL) BindTexture(h renderer.TextureHandle) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.textures[h])
}

// SetPolygonMode sets how triangles are rasterized.
func (r *GL) SetPolygonMode(m renderer.FillMode) {
	switch m {
	case renderer.FillModeLine:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case renderer.FillModePoint:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// BeginFrame clears the color and depth buffers.
func (r *GL) BeginFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawTriangles draws vertexCount vertices of a buffer as triangles.
func (r *GL) DrawTriangles(h renderer.BufferHandle, vertexCount int32) {
	b, ok := r.buffers[h]
	if !ok {
		panic(fmt.Sprintf("glbackend: draw with unknown buffer %d", h))
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, vertexCount)
	gl.BindVertexArray(0)
}

// PresentFrame hands the frame to the window; blocks on vsync when enabled.
func (r *GL) PresentFrame() {
	r.presenter.SwapBuffers()
}

// ReadPixels reads back the color buffer of the frame being drawn.
func (r *GL) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Resize handles window resize.
func (r *GL) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}
