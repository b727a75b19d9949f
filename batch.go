package gfx

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gfx/gl"
)

const (
	// DefaultMaxVertices is the vertex capacity of a batch: 2048 quads.
	DefaultMaxVertices = 2048 * 4

	// DefaultMaxIndices is the index capacity of a batch: 2048 quads as
	// two triangles each.
	DefaultMaxIndices = 2048 * 6

	// maxIndexableVertices is the number of vertices addressable with
	// 16-bit indices.
	maxIndexableVertices = 1 << 16
)

// renderMode selects where submitted geometry goes.
type renderMode interface {
	isRenderMode()
}

// liveMode queues geometry for the GPU.
type liveMode struct{}

// recordingMode appends geometry to a picture.
type recordingMode struct {
	pic *Picture
}

func (liveMode) isRenderMode()      {}
func (recordingMode) isRenderMode() {}

// BatchRenderer accumulates geometry that shares a material and draws each
// run with a single call. A new material, or a submission that would not
// fit, flushes the pending run first.
//
// While recording, submissions are appended to a Picture and nothing is
// drawn.
type BatchRenderer struct {
	ctx    *Context
	format VertexFormat
	stride int

	maxVertices int
	maxIndices  int

	vbo gl.Buffer
	ibo gl.Buffer

	vqueue []float32
	iqueue []uint16

	material    Material
	hasMaterial bool
	blend       BlendMode

	mode      renderMode
	drawCount int
	stats     RendererStats
	released  bool
}

// NewBatchRenderer creates a batch renderer for vertices of the given
// format. Its GPU buffers are allocated once, at full capacity.
func NewBatchRenderer(ctx *Context, format VertexFormat, opts ...BatchOption) (*BatchRenderer, error) {
	o := batchOptions{maxVertices: DefaultMaxVertices, maxIndices: DefaultMaxIndices}
	for _, opt := range opts {
		opt(&o)
	}
	stride := format.Stride()
	if stride <= 0 {
		return nil, fmt.Errorf("%w: empty vertex format", ErrStrideMismatch)
	}
	if o.maxVertices <= 0 || o.maxIndices <= 0 {
		return nil, fmt.Errorf("%w: batch capacity %d vertices, %d indices",
			ErrInvalidDimensions, o.maxVertices, o.maxIndices)
	}
	o.maxVertices = min(o.maxVertices, maxIndexableVertices)

	f := ctx.funcs
	vbo := f.CreateBuffer()
	if !vbo.Valid() {
		return nil, fmt.Errorf("%w: batch vertex buffer", ErrResourceCreation)
	}
	ibo := f.CreateBuffer()
	if !ibo.Valid() {
		f.DeleteBuffer(vbo)
		return nil, fmt.Errorf("%w: batch index buffer", ErrResourceCreation)
	}

	st := ctx.state
	st.ArrayBuffer.Push(vbo)
	f.BufferData(gl.ARRAY_BUFFER, o.maxVertices*stride*4, gl.DYNAMIC_DRAW, nil)
	st.ArrayBuffer.Pop()
	st.ElementBuffer.Push(ibo)
	f.BufferData(gl.ELEMENT_ARRAY_BUFFER, o.maxIndices*indexSize, gl.DYNAMIC_DRAW, nil)
	st.ElementBuffer.Pop()

	r := &BatchRenderer{
		ctx:         ctx,
		format:      format.Clone(),
		stride:      stride,
		maxVertices: o.maxVertices,
		maxIndices:  o.maxIndices,
		vbo:         vbo,
		ibo:         ibo,
		vqueue:      make([]float32, 0, o.maxVertices*stride),
		iqueue:      make([]uint16, 0, o.maxIndices),
		mode:        liveMode{},
	}
	r.applyBlend(BlendNormal)
	ctx.Own(r)

	Logger().Debug("gfx: batch renderer created",
		slog.String("format", format.String()),
		slog.Int("max_vertices", o.maxVertices),
		slog.Int("max_indices", o.maxIndices))
	return r, nil
}

// Push submits geometry drawn with m. Indices are relative to the first
// vertex of this submission. width and height are the target size passed
// to the shader if this push causes a flush.
//
// A flush caused by this push may fail; its error is returned, but the new
// geometry is still queued.
func (r *BatchRenderer) Push(m Material, vertices []float32, indices []uint16, width, height int) error {
	if r.released {
		return ErrReleased
	}
	if len(vertices)%r.stride != 0 {
		return fmt.Errorf("%w: %d floats for stride %d", ErrStrideMismatch, len(vertices), r.stride)
	}

	if rec, ok := r.mode.(recordingMode); ok {
		return rec.pic.append(m, vertices, indices)
	}

	nverts := len(vertices) / r.stride
	if nverts > r.maxVertices || len(indices) > r.maxIndices {
		return fmt.Errorf("%w: %d vertices, %d indices (capacity %d, %d)",
			ErrBatchOverflow, nverts, len(indices), r.maxVertices, r.maxIndices)
	}
	for _, i := range indices {
		if int(i) >= nverts {
			return fmt.Errorf("%w: index %d references %d vertices", ErrIndexOverflow, i, nverts)
		}
	}

	changed := !r.hasMaterial || !r.material.Equal(m)
	full := len(r.vqueue)+len(vertices) > r.maxVertices*r.stride ||
		len(r.iqueue)+len(indices) > r.maxIndices

	var err error
	if changed || full {
		if len(r.iqueue) > 0 {
			if changed {
				r.stats.MaterialFlushes++
			} else {
				r.stats.CapacityFlushes++
			}
		}
		err = r.Flush(width, height)
		r.SetBlend(m.Blend)
	}

	base := len(r.vqueue) / r.stride
	r.vqueue = append(r.vqueue, vertices...)
	for _, i := range indices {
		r.iqueue = append(r.iqueue, uint16(base+int(i)))
	}
	if changed {
		r.material = m.snapshot()
		r.hasMaterial = true
	}
	return err
}

// Flush draws the pending geometry with one call and clears the queue.
// It does nothing when the queue is empty.
func (r *BatchRenderer) Flush(width, height int) error {
	if r.released {
		return ErrReleased
	}
	if len(r.iqueue) == 0 || !r.hasMaterial {
		r.reset()
		return nil
	}
	m := r.material
	if m.Shader == nil {
		Logger().Warn("gfx: dropping batch without shader",
			slog.Int("indices", len(r.iqueue)))
		r.stats.SkippedDraws++
		r.reset()
		return nil
	}

	f := r.ctx.funcs
	st := r.ctx.state
	st.ArrayBuffer.Push(r.vbo)
	st.ElementBuffer.Push(r.ibo)
	defer func() {
		st.ElementBuffer.Pop()
		st.ArrayBuffer.Pop()
		r.reset()
	}()

	vbytes, ibytes := len(r.vqueue)*4, len(r.iqueue)*indexSize
	vcap := f.GetBufferParameteri(gl.ARRAY_BUFFER, gl.BUFFER_SIZE)
	icap := f.GetBufferParameteri(gl.ELEMENT_ARRAY_BUFFER, gl.BUFFER_SIZE)
	if vbytes > vcap || ibytes > icap {
		r.stats.SkippedDraws++
		err := fmt.Errorf("%w: need %d vertex and %d index bytes, have %d and %d",
			ErrBufferTooSmall, vbytes, ibytes, vcap, icap)
		Logger().Warn("gfx: draw skipped", slog.Any("error", err))
		return err
	}

	f.BufferSubData(gl.ARRAY_BUFFER, 0, float32Bytes(r.vqueue))
	f.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, uint16Bytes(r.iqueue))
	r.ctx.setVertexFormat(r.format, r.vbo)

	m.Shader.Bind()
	var errs []error
	if len(m.Uniform) > 0 {
		errs = append(errs, m.Shader.Send(m.Uniform))
	}
	camera := mgl32.Ident4()
	if !m.Fixed {
		camera = r.ctx.CameraTransform()
	}
	errs = append(errs, m.Shader.Send(Uniform{
		"width":     float32(width),
		"height":    float32(height),
		"camera":    camera,
		"transform": mgl32.Ident4(),
	}))

	if m.Texture != nil {
		m.Texture.Bind()
	}
	f.DrawElements(m.Primitive.glMode(), len(r.iqueue), indexType, 0)
	if code := f.GetError(); code != gl.NO_ERROR {
		prog, _ := st.Program.Current()
		tex, _ := st.Texture.Current()
		de := &DrawError{
			Code:        code,
			Primitive:   m.Primitive,
			Vertices:    len(r.vqueue) / r.stride,
			Indices:     len(r.iqueue),
			Attribs:     len(r.format),
			Program:     prog,
			Texture:     tex,
			VertexBuf:   r.vbo,
			IndexBuffer: r.ibo,
		}
		Logger().Warn("gfx: draw failed", slog.Any("draw", de))
		errs = append(errs, de)
	}
	if m.Texture != nil {
		m.Texture.Unbind()
	}
	m.Shader.Unbind()

	r.drawCount++
	r.stats.DrawCalls++
	r.stats.Vertices += len(r.vqueue) / r.stride
	r.stats.Indices += len(r.iqueue)
	return errors.Join(errs...)
}

// reset empties the queues, keeping their capacity.
func (r *BatchRenderer) reset() {
	r.vqueue = r.vqueue[:0]
	r.iqueue = r.iqueue[:0]
}

// SetBlend applies mode to the GL blend state if it differs from the mode
// currently applied.
func (r *BatchRenderer) SetBlend(mode BlendMode) {
	if mode == r.blend {
		return
	}
	r.applyBlend(mode)
}

func (r *BatchRenderer) applyBlend(mode BlendMode) {
	bf := mode.Func()
	r.ctx.funcs.BlendFuncSeparate(bf.SrcRGB, bf.DstRGB, bf.SrcAlpha, bf.DstAlpha)
	r.blend = mode
}

// Blend returns the blend mode currently applied.
func (r *BatchRenderer) Blend() BlendMode {
	return r.blend
}

// StartRecording redirects submissions into pic until StopRecording.
// Geometry already queued stays queued. The picture's format must match
// the renderer's; an empty picture adopts it.
func (r *BatchRenderer) StartRecording(pic *Picture) error {
	if pic == nil {
		return errors.New("gfx: nil picture")
	}
	if len(pic.format) == 0 {
		pic.format = r.format.Clone()
	}
	if !pic.format.Equal(r.format) {
		return fmt.Errorf("%w: picture format %s, renderer format %s",
			ErrStrideMismatch, pic.format, r.format)
	}
	r.mode = recordingMode{pic: pic}
	return nil
}

// StopRecording returns to live mode and returns the picture that was
// being recorded, or nil if the renderer was not recording.
func (r *BatchRenderer) StopRecording() *Picture {
	rec, ok := r.mode.(recordingMode)
	r.mode = liveMode{}
	if !ok {
		return nil
	}
	return rec.pic
}

// Recording reports whether submissions currently go to a picture.
func (r *BatchRenderer) Recording() bool {
	_, ok := r.mode.(recordingMode)
	return ok
}

// DrawPicture replays pic through Push, one submission per command. While
// recording, the commands are appended to the picture being recorded.
func (r *BatchRenderer) DrawPicture(pic *Picture, width, height int) error {
	if pic == nil {
		return nil
	}
	if !pic.format.Equal(r.format) {
		return fmt.Errorf("%w: picture format %s, renderer format %s",
			ErrStrideMismatch, pic.format, r.format)
	}
	for n, cmd := range pic.commands {
		verts, idx, err := pic.commandGeometry(cmd)
		if err != nil {
			return fmt.Errorf("picture command %d: %w", n, err)
		}
		if len(idx) == 0 {
			continue
		}
		if err := r.Push(cmd.Material, verts, idx, width, height); err != nil {
			return fmt.Errorf("picture command %d: %w", n, err)
		}
	}
	return nil
}

// DrawCount returns the number of draw calls issued since creation.
func (r *BatchRenderer) DrawCount() int {
	return r.drawCount
}

// Stats returns the accumulated counters.
func (r *BatchRenderer) Stats() RendererStats {
	return r.stats
}

// ResetStats clears the counters returned by Stats. DrawCount is kept.
func (r *BatchRenderer) ResetStats() {
	r.stats = RendererStats{}
}

// Format returns the vertex format of submitted geometry.
func (r *BatchRenderer) Format() VertexFormat {
	return r.format
}

// Capacity returns the maximum number of vertices and indices per draw.
func (r *BatchRenderer) Capacity() (vertices, indices int) {
	return r.maxVertices, r.maxIndices
}

// Pending returns the number of queued vertices and indices.
func (r *BatchRenderer) Pending() (vertices, indices int) {
	return len(r.vqueue) / r.stride, len(r.iqueue)
}

// Release deletes the GPU buffers. Queued geometry is discarded.
func (r *BatchRenderer) Release() {
	if r.released {
		return
	}
	r.released = true
	r.reset()
	r.ctx.forgetBuffer(r.vbo)
	r.ctx.forgetBuffer(r.ibo)
	r.ctx.funcs.DeleteBuffer(r.vbo)
	r.ctx.funcs.DeleteBuffer(r.ibo)
}
