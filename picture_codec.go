package gfx

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// pictureVersion is the current encoding version.
const pictureVersion = 1

// ErrPictureEncoding is returned when a picture cannot be encoded or
// decoded.
var ErrPictureEncoding = errors.New("gfx: picture encoding")

// Resolver maps the labels stored in an encoded picture back to live
// resources.
type Resolver interface {
	Texture(label string) (*Texture, error)
	Shader(label string) (Shader, error)
}

// MapResolver resolves labels from fixed maps.
type MapResolver struct {
	Textures map[string]*Texture
	Shaders  map[string]Shader
}

func (r MapResolver) Texture(label string) (*Texture, error) {
	if t, ok := r.Textures[label]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: unknown texture %q", ErrPictureEncoding, label)
}

func (r MapResolver) Shader(label string) (Shader, error) {
	if s, ok := r.Shaders[label]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown shader %q", ErrPictureEncoding, label)
}

type pictureFile struct {
	Version  int             `msgpack:"v"`
	Format   []attribRecord  `msgpack:"format"`
	Vertices []float32       `msgpack:"vertices"`
	Indices  []uint16        `msgpack:"indices"`
	Commands []commandRecord `msgpack:"commands"`
}

type attribRecord struct {
	Name string `msgpack:"name"`
	Size int    `msgpack:"size"`
}

type commandRecord struct {
	Primitive Primitive       `msgpack:"prim"`
	Texture   string          `msgpack:"tex,omitempty"`
	Shader    string          `msgpack:"shader,omitempty"`
	Blend     BlendMode       `msgpack:"blend"`
	Fixed     bool            `msgpack:"fixed,omitempty"`
	Uniforms  []uniformRecord `msgpack:"uniforms,omitempty"`
	Index     int             `msgpack:"index"`
	Count     int             `msgpack:"count"`
}

type uniformKind uint8

const (
	uniformFloat32 uniformKind = iota + 1
	uniformFloat64
	uniformInt
	uniformInt32
	uniformBool
	uniformVec2
	uniformVec3
	uniformVec4
	uniformMat3
	uniformMat4
	uniformFloats
)

// uniformRecord stores a uniform value as its kind plus either numeric
// components or an integer.
type uniformRecord struct {
	Name   string      `msgpack:"name"`
	Kind   uniformKind `msgpack:"kind"`
	Floats []float64   `msgpack:"f,omitempty"`
	Int    int64       `msgpack:"i,omitempty"`
}

// Encode writes p to w as zstd-compressed msgpack. Textures and shaders
// are stored by label: textures use their TextureOptions.Label and
// shaders must implement Label() string.
func (p *Picture) Encode(w io.Writer) error {
	file := pictureFile{
		Version:  pictureVersion,
		Vertices: p.vertices,
		Indices:  p.indices,
	}
	for _, a := range p.format {
		file.Format = append(file.Format, attribRecord{Name: a.Name, Size: a.Size})
	}
	for n, cmd := range p.commands {
		rec, err := encodeCommand(cmd)
		if err != nil {
			return fmt.Errorf("command %d: %w", n, err)
		}
		file.Commands = append(file.Commands, rec)
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("%w: zstd writer: %w", ErrPictureEncoding, err)
	}
	if err := msgpack.NewEncoder(zw).Encode(&file); err != nil {
		zw.Close()
		return fmt.Errorf("%w: %w", ErrPictureEncoding, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: zstd close: %w", ErrPictureEncoding, err)
	}
	return nil
}

func encodeCommand(cmd PictureCommand) (commandRecord, error) {
	m := cmd.Material
	rec := commandRecord{
		Primitive: m.Primitive,
		Blend:     m.Blend,
		Fixed:     m.Fixed,
		Index:     cmd.Index,
		Count:     cmd.Count,
	}
	if m.Texture != nil {
		if m.Texture.Label() == "" {
			return rec, fmt.Errorf("%w: texture has no label", ErrPictureEncoding)
		}
		rec.Texture = m.Texture.Label()
	}
	if m.Shader != nil {
		l, ok := m.Shader.(interface{ Label() string })
		if !ok || l.Label() == "" {
			return rec, fmt.Errorf("%w: shader %T has no label", ErrPictureEncoding, m.Shader)
		}
		rec.Shader = l.Label()
	}
	for _, name := range slices.Sorted(maps.Keys(m.Uniform)) {
		u, err := encodeUniform(name, m.Uniform[name])
		if err != nil {
			return rec, err
		}
		rec.Uniforms = append(rec.Uniforms, u)
	}
	return rec, nil
}

func encodeUniform(name string, v any) (uniformRecord, error) {
	u := uniformRecord{Name: name}
	floats := func(fs ...float32) []float64 {
		out := make([]float64, len(fs))
		for i, f := range fs {
			out[i] = float64(f)
		}
		return out
	}
	switch v := v.(type) {
	case float32:
		u.Kind, u.Floats = uniformFloat32, floats(v)
	case float64:
		u.Kind, u.Floats = uniformFloat64, []float64{v}
	case int:
		u.Kind, u.Int = uniformInt, int64(v)
	case int32:
		u.Kind, u.Int = uniformInt32, int64(v)
	case bool:
		u.Kind = uniformBool
		if v {
			u.Int = 1
		}
	case mgl32.Vec2:
		u.Kind, u.Floats = uniformVec2, floats(v[:]...)
	case mgl32.Vec3:
		u.Kind, u.Floats = uniformVec3, floats(v[:]...)
	case mgl32.Vec4:
		u.Kind, u.Floats = uniformVec4, floats(v[:]...)
	case mgl32.Mat3:
		u.Kind, u.Floats = uniformMat3, floats(v[:]...)
	case mgl32.Mat4:
		u.Kind, u.Floats = uniformMat4, floats(v[:]...)
	case []float32:
		u.Kind, u.Floats = uniformFloats, floats(v...)
	default:
		return u, fmt.Errorf("%w: %s is %T", ErrUnsupportedUniform, name, v)
	}
	return u, nil
}

func (u uniformRecord) value() (any, error) {
	fs := make([]float32, len(u.Floats))
	for i, f := range u.Floats {
		fs[i] = float32(f)
	}
	want := map[uniformKind]int{
		uniformFloat32: 1, uniformFloat64: 1,
		uniformVec2: 2, uniformVec3: 3, uniformVec4: 4,
		uniformMat3: 9, uniformMat4: 16,
	}
	if n, ok := want[u.Kind]; ok && len(u.Floats) != n {
		return nil, fmt.Errorf("%w: uniform %s has %d components", ErrPictureEncoding, u.Name, len(u.Floats))
	}
	switch u.Kind {
	case uniformFloat32:
		return fs[0], nil
	case uniformFloat64:
		return u.Floats[0], nil
	case uniformInt:
		return int(u.Int), nil
	case uniformInt32:
		return int32(u.Int), nil
	case uniformBool:
		return u.Int != 0, nil
	case uniformVec2:
		return mgl32.Vec2(fs), nil
	case uniformVec3:
		return mgl32.Vec3(fs), nil
	case uniformVec4:
		return mgl32.Vec4(fs), nil
	case uniformMat3:
		return mgl32.Mat3(fs), nil
	case uniformMat4:
		return mgl32.Mat4(fs), nil
	case uniformFloats:
		return fs, nil
	default:
		return nil, fmt.Errorf("%w: uniform %s has unknown kind %d", ErrPictureEncoding, u.Name, u.Kind)
	}
}

// DecodePicture reads a picture written by Encode. Texture and shader
// labels are resolved through res.
func DecodePicture(r io.Reader, res Resolver) (*Picture, error) {
	if res == nil {
		res = MapResolver{}
	}
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd reader: %w", ErrPictureEncoding, err)
	}
	defer zr.Close()

	var file pictureFile
	if err := msgpack.NewDecoder(zr).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPictureEncoding, err)
	}
	if file.Version != pictureVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrPictureEncoding, file.Version)
	}

	p := &Picture{vertices: file.Vertices, indices: file.Indices}
	for _, a := range file.Format {
		p.format = append(p.format, VertexAttrib{Name: a.Name, Size: a.Size})
	}
	if s := p.format.Stride(); s == 0 || len(p.vertices)%s != 0 {
		return nil, fmt.Errorf("%w: %d floats for stride %d", ErrStrideMismatch, len(p.vertices), s)
	}
	nverts := len(p.vertices) / p.format.Stride()
	for _, i := range p.indices {
		if int(i) >= nverts {
			return nil, fmt.Errorf("%w: index %d past %d vertices", ErrPictureEncoding, i, nverts)
		}
	}

	for n, rec := range file.Commands {
		if rec.Index < 0 || rec.Count < 0 || rec.Index+rec.Count > len(p.indices) {
			return nil, fmt.Errorf("%w: command %d out of range", ErrPictureEncoding, n)
		}
		m := Material{Primitive: rec.Primitive, Blend: rec.Blend, Fixed: rec.Fixed}
		if rec.Texture != "" {
			if m.Texture, err = res.Texture(rec.Texture); err != nil {
				return nil, fmt.Errorf("command %d: %w", n, err)
			}
		}
		if rec.Shader != "" {
			if m.Shader, err = res.Shader(rec.Shader); err != nil {
				return nil, fmt.Errorf("command %d: %w", n, err)
			}
		}
		if len(rec.Uniforms) > 0 {
			m.Uniform = make(Uniform, len(rec.Uniforms))
			for _, u := range rec.Uniforms {
				v, err := u.value()
				if err != nil {
					return nil, fmt.Errorf("command %d: %w", n, err)
				}
				m.Uniform[u.Name] = v
			}
		}
		p.commands = append(p.commands, PictureCommand{Material: m, Index: rec.Index, Count: rec.Count})
	}
	return p, nil
}
