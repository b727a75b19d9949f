package gfx

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// recordABBA records quads with materials a, a, b, a.
func recordABBA(t *testing.T, r *BatchRenderer, a, b Material) *Picture {
	t.Helper()
	pic := NewPicture(DefaultFormat)
	if err := r.StartRecording(pic); err != nil {
		t.Fatalf("StartRecording() error = %v", err)
	}
	for _, m := range []Material{a, a, b, a} {
		pushQuads(t, r, m, 1)
	}
	if got := r.StopRecording(); got != pic {
		t.Fatalf("StopRecording() = %p, want %p", got, pic)
	}
	return pic
}

func TestPicture_Recording(t *testing.T) {
	ctx, f := newTestContext(t)
	r := newTestBatch(t, ctx)
	prog := newTestProgram(t, ctx)
	a := Material{Shader: prog}
	b := Material{Shader: prog, Blend: BlendAdd}

	pic := NewPicture(DefaultFormat)
	if err := r.StartRecording(pic); err != nil {
		t.Fatalf("StartRecording() error = %v", err)
	}
	if !r.Recording() {
		t.Error("Recording() = false after StartRecording")
	}
	for _, m := range []Material{a, a, b, a} {
		pushQuads(t, r, m, 1)
	}
	if err := r.Flush(testWidth, testHeight); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if len(f.Draws) != 0 || r.DrawCount() != 0 {
		t.Errorf("draws while recording = %d, want 0", len(f.Draws))
	}
	r.StopRecording()

	if pic.VertexCount() != 16 {
		t.Errorf("VertexCount() = %d, want 16", pic.VertexCount())
	}
	cmds := pic.Commands()
	if len(cmds) != 3 {
		t.Fatalf("commands = %d, want 3", len(cmds))
	}
	wantSpans := [][2]int{{0, 12}, {12, 6}, {18, 6}}
	for i, c := range cmds {
		if got := [2]int{c.Index, c.Count}; got != wantSpans[i] {
			t.Errorf("command %d span = %v, want %v", i, got, wantSpans[i])
		}
	}
	if !cmds[1].Material.Equal(b) {
		t.Error("command 1 material is not b")
	}
	// Indices are rebased onto the picture's vertex array.
	if got, want := pic.Indices()[6:12], []uint16{4, 5, 6, 4, 6, 7}; !slices.Equal(got, want) {
		t.Errorf("second quad indices = %v, want %v", got, want)
	}
	if got, want := pic.Indices()[18:], []uint16{12, 13, 14, 12, 14, 15}; !slices.Equal(got, want) {
		t.Errorf("last quad indices = %v, want %v", got, want)
	}
}

func TestPicture_RecordingLeavesQueue(t *testing.T) {
	ctx, f := newTestContext(t)
	r := newTestBatch(t, ctx)
	m := Material{Shader: newTestProgram(t, ctx)}

	pushQuads(t, r, m, 1)
	pic := recordABBA(t, r, m, m)
	if err := r.Flush(testWidth, testHeight); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if len(f.Draws) != 1 || f.Draws[0].Count != 6 {
		t.Errorf("draws = %+v, want the one quad queued before recording", f.Draws)
	}
	if len(pic.Commands()) != 1 {
		t.Errorf("commands = %d, want 1 for a single material", len(pic.Commands()))
	}
}

func TestPicture_StartStopErrors(t *testing.T) {
	ctx, _ := newTestContext(t)
	r := newTestBatch(t, ctx)

	if got := r.StopRecording(); got != nil {
		t.Errorf("StopRecording() while live = %p, want nil", got)
	}
	if err := r.StartRecording(nil); err == nil {
		t.Error("StartRecording(nil) error = nil")
	}
	other := NewPicture(VertexFormat{{Name: "a_pos", Size: 3}})
	if err := r.StartRecording(other); !errors.Is(err, ErrStrideMismatch) {
		t.Errorf("StartRecording() error = %v, want ErrStrideMismatch", err)
	}
	if r.Recording() {
		t.Error("Recording() = true after failed StartRecording")
	}

	empty := &Picture{}
	if err := r.StartRecording(empty); err != nil {
		t.Errorf("StartRecording() on zero picture error = %v", err)
	}
	if !empty.Format().Equal(DefaultFormat) {
		t.Errorf("zero picture format = %v, want %v", empty.Format(), DefaultFormat)
	}
}

func TestPicture_IndexOverflow(t *testing.T) {
	ctx, _ := newTestContext(t)
	format := VertexFormat{{Name: "a_pos", Size: 1}}
	r, err := NewBatchRenderer(ctx, format)
	if err != nil {
		t.Fatalf("NewBatchRenderer() error = %v", err)
	}
	pic := NewPicture(format)
	if err := r.StartRecording(pic); err != nil {
		t.Fatalf("StartRecording() error = %v", err)
	}

	if err := r.Push(Material{}, make([]float32, 1<<16), []uint16{0xffff}, 1, 1); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	err = r.Push(Material{}, []float32{0}, []uint16{0}, 1, 1)
	if !errors.Is(err, ErrIndexOverflow) {
		t.Errorf("Push() error = %v, want ErrIndexOverflow", err)
	}
	if pic.VertexCount() != 1<<16 || len(pic.Indices()) != 1 {
		t.Errorf("picture changed by a rejected push: %d vertices, %d indices",
			pic.VertexCount(), len(pic.Indices()))
	}
}

func TestPicture_Reset(t *testing.T) {
	ctx, _ := newTestContext(t)
	r := newTestBatch(t, ctx)
	m := Material{Shader: newTestProgram(t, ctx)}
	pic := recordABBA(t, r, m, m)

	pic.Reset()
	if pic.VertexCount() != 0 || len(pic.Indices()) != 0 || len(pic.Commands()) != 0 {
		t.Error("Reset() left recorded data")
	}
}

func TestBatchRenderer_DrawPicture(t *testing.T) {
	ctx, f := newTestContext(t)
	r := newTestBatch(t, ctx)
	prog := newTestProgram(t, ctx)
	a := Material{Shader: prog}
	b := Material{Shader: prog, Primitive: Lines}
	pic := recordABBA(t, r, a, b)

	if err := r.DrawPicture(pic, testWidth, testHeight); err != nil {
		t.Fatalf("DrawPicture() error = %v", err)
	}
	if err := r.Flush(testWidth, testHeight); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if len(f.Draws) != 3 {
		t.Fatalf("draws = %d, want 3", len(f.Draws))
	}
	wantIndices := [][]uint16{
		{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7},
		{0, 1, 2, 0, 2, 3},
		{0, 1, 2, 0, 2, 3},
	}
	for i, d := range f.Draws {
		if !slices.Equal(d.Indices, wantIndices[i]) {
			t.Errorf("draw %d indices = %v, want %v", i, d.Indices, wantIndices[i])
		}
	}

	// Replaying twice draws twice; the picture is not consumed.
	f.Draws = nil
	if err := r.DrawPicture(pic, testWidth, testHeight); err != nil {
		t.Fatalf("second DrawPicture() error = %v", err)
	}
	if err := r.Flush(testWidth, testHeight); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if len(f.Draws) != 3 {
		t.Errorf("second replay draws = %d, want 3", len(f.Draws))
	}
}

func TestBatchRenderer_DrawPictureWhileRecording(t *testing.T) {
	ctx, f := newTestContext(t)
	r := newTestBatch(t, ctx)
	m := Material{Shader: newTestProgram(t, ctx)}
	inner := recordABBA(t, r, m, m)

	outer := NewPicture(DefaultFormat)
	if err := r.StartRecording(outer); err != nil {
		t.Fatalf("StartRecording() error = %v", err)
	}
	pushQuads(t, r, m, 1)
	if err := r.DrawPicture(inner, testWidth, testHeight); err != nil {
		t.Fatalf("DrawPicture() error = %v", err)
	}
	r.StopRecording()

	if len(f.Draws) != 0 {
		t.Errorf("draws = %d, want 0", len(f.Draws))
	}
	if outer.VertexCount() != 20 || len(outer.Commands()) != 1 {
		t.Errorf("outer picture = %d vertices, %d commands, want 20, 1",
			outer.VertexCount(), len(outer.Commands()))
	}
}

func TestPicture_EncodeDecode(t *testing.T) {
	ctx, _ := newTestContext(t)
	r := newTestBatch(t, ctx)
	prog := newTestProgram(t, ctx)
	tex, _ := NewTexture(ctx, 2, 2, TextureOptions{Label: "atlas"})
	a := Material{
		Shader:  prog,
		Texture: tex,
		Uniform: Uniform{
			"u_alpha":  float32(0.5),
			"u_scale":  float64(2),
			"u_mode":   3,
			"u_layer":  int32(-1),
			"u_flip":   true,
			"u_offset": mgl32.Vec2{1, 2},
			"u_tint":   mgl32.Vec4{1, 0.5, 0.25, 1},
			"u_normal": mgl32.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1},
			"u_model":  mgl32.Translate3D(1, 2, 3),
			"u_light":  mgl32.Vec3{0, 0, 1},
			"u_kernel": []float32{0.25, 0.5, 0.25},
		},
	}
	b := Material{Shader: prog, Primitive: LineStrip, Blend: BlendScreen, Fixed: true}
	pic := recordABBA(t, r, a, b)

	var buf bytes.Buffer
	if err := pic.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	res := MapResolver{
		Textures: map[string]*Texture{"atlas": tex},
		Shaders:  map[string]Shader{"sprite": prog},
	}
	got, err := DecodePicture(&buf, res)
	if err != nil {
		t.Fatalf("DecodePicture() error = %v", err)
	}

	if !got.Format().Equal(pic.Format()) {
		t.Errorf("format = %v, want %v", got.Format(), pic.Format())
	}
	if !slices.Equal(got.Vertices(), pic.Vertices()) || !slices.Equal(got.Indices(), pic.Indices()) {
		t.Error("geometry differs after round trip")
	}
	if len(got.Commands()) != len(pic.Commands()) {
		t.Fatalf("commands = %d, want %d", len(got.Commands()), len(pic.Commands()))
	}
	for i, c := range got.Commands() {
		want := pic.Commands()[i]
		if c.Index != want.Index || c.Count != want.Count || !c.Material.Equal(want.Material) {
			t.Errorf("command %d = %+v, want %+v", i, c, want)
		}
	}
}

type unlabeledShader struct{}

func (*unlabeledShader) Bind()              {}
func (*unlabeledShader) Unbind()            {}
func (*unlabeledShader) Send(Uniform) error { return nil }

func TestPicture_EncodeErrors(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex, _ := NewTexture(ctx, 1, 1, TextureOptions{})
	v, idx := quad(0, 0, 1, 1)

	tests := []struct {
		name string
		m    Material
	}{
		{"unlabeled texture", Material{Texture: tex}},
		{"unlabeled shader", Material{Shader: &unlabeledShader{}}},
		{"unsupported uniform", Material{Uniform: Uniform{"u": "text"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pic := NewPicture(DefaultFormat)
			if err := pic.append(tt.m, v, idx); err != nil {
				t.Fatalf("append() error = %v", err)
			}
			if err := pic.Encode(&bytes.Buffer{}); err == nil {
				t.Error("Encode() error = nil")
			}
		})
	}
}

func TestDecodePicture_Errors(t *testing.T) {
	ctx, _ := newTestContext(t)
	r := newTestBatch(t, ctx)
	prog := newTestProgram(t, ctx)
	pic := recordABBA(t, r, Material{Shader: prog}, Material{Shader: prog})
	var encoded bytes.Buffer
	if err := pic.Encode(&encoded); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	t.Run("unknown shader", func(t *testing.T) {
		_, err := DecodePicture(bytes.NewReader(encoded.Bytes()), MapResolver{})
		if !errors.Is(err, ErrPictureEncoding) {
			t.Errorf("DecodePicture() error = %v, want ErrPictureEncoding", err)
		}
	})
	t.Run("not a picture", func(t *testing.T) {
		_, err := DecodePicture(bytes.NewReader([]byte("definitely not zstd")), MapResolver{})
		if err == nil {
			t.Error("DecodePicture() error = nil")
		}
	})
}
