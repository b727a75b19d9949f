package gfx

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gfx/gl"
)

// SpriteVertexShader transforms DefaultFormat vertices given in pixels,
// with the origin at the top left, to clip space.
const SpriteVertexShader = `#version 330 core
in vec2 a_pos;
in vec2 a_uv;
in vec4 a_color;

uniform float width;
uniform float height;
uniform mat4 camera;
uniform mat4 transform;

out vec2 v_uv;
out vec4 v_color;

void main() {
	vec4 p = camera * transform * vec4(a_pos, 0.0, 1.0);
	gl_Position = vec4(p.x / width * 2.0 - 1.0, 1.0 - p.y / height * 2.0, 0.0, 1.0);
	v_uv = a_uv;
	v_color = a_color;
}
`

// SpriteFragmentShader modulates the bound texture by the vertex color.
const SpriteFragmentShader = `#version 330 core
in vec2 v_uv;
in vec4 v_color;

uniform sampler2D u_tex;

out vec4 frag;

void main() {
	frag = texture(u_tex, v_uv) * v_color;
}
`

// Program is a linked GLSL program. It implements Shader.
type Program struct {
	ctx      *Context
	prog     gl.Program
	label    string
	uniforms map[string]gl.Uniform
	released bool
}

// NewProgram compiles and links a program. Vertex attributes are bound to
// locations in the order they appear in format, matching the layout the
// renderers configure.
func NewProgram(ctx *Context, label, vertexSrc, fragmentSrc string, format VertexFormat) (*Program, error) {
	f := ctx.funcs
	vs, err := compileShader(f, gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return nil, fmt.Errorf("%w (program %q, vertex stage)", err, label)
	}
	defer f.DeleteShader(vs)
	fs, err := compileShader(f, gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%w (program %q, fragment stage)", err, label)
	}
	defer f.DeleteShader(fs)

	prog := f.CreateProgram()
	if !prog.Valid() {
		return nil, fmt.Errorf("%w: program %q", ErrResourceCreation, label)
	}
	f.AttachShader(prog, vs)
	f.AttachShader(prog, fs)
	for i, a := range format {
		f.BindAttribLocation(prog, gl.Attrib(i), a.Name)
	}
	f.LinkProgram(prog)
	if f.GetProgrami(prog, gl.LINK_STATUS) == gl.FALSE {
		msg := strings.TrimSpace(f.GetProgramInfoLog(prog))
		f.DeleteProgram(prog)
		return nil, fmt.Errorf("%w: program %q: %s", ErrProgramLink, label, msg)
	}

	p := &Program{
		ctx:      ctx,
		prog:     prog,
		label:    label,
		uniforms: make(map[string]gl.Uniform),
	}
	ctx.Own(p)
	Logger().Debug("gfx: program linked", slog.String("label", label))
	return p, nil
}

// NewSpriteProgram links the default sprite shaders for DefaultFormat.
func NewSpriteProgram(ctx *Context) (*Program, error) {
	return NewProgram(ctx, "sprite", SpriteVertexShader, SpriteFragmentShader, DefaultFormat)
}

func compileShader(f gl.Functions, ty gl.Enum, src string) (gl.Shader, error) {
	s := f.CreateShader(ty)
	if !s.Valid() {
		return gl.Shader{}, fmt.Errorf("%w: shader object", ErrResourceCreation)
	}
	f.ShaderSource(s, src)
	f.CompileShader(s)
	if f.GetShaderi(s, gl.COMPILE_STATUS) == gl.FALSE {
		msg := strings.TrimSpace(f.GetShaderInfoLog(s))
		f.DeleteShader(s)
		return gl.Shader{}, fmt.Errorf("%w: %s", ErrShaderCompile, msg)
	}
	return s, nil
}

// Bind makes p the current program.
func (p *Program) Bind() {
	p.ctx.state.Program.Push(p.prog)
}

// Unbind restores the program that was current before Bind.
func (p *Program) Unbind() {
	p.ctx.state.Program.Pop()
}

// Send uploads u to p, which must be bound. Names the program does not
// use are ignored.
func (p *Program) Send(u Uniform) error {
	if p.released {
		return ErrReleased
	}
	f := p.ctx.funcs
	for name, v := range u {
		loc := p.location(name)
		if !loc.Valid() {
			continue
		}
		switch v := v.(type) {
		case float32:
			f.Uniform1f(loc, v)
		case float64:
			f.Uniform1f(loc, float32(v))
		case int:
			f.Uniform1i(loc, v)
		case int32:
			f.Uniform1i(loc, int(v))
		case bool:
			b := 0
			if v {
				b = 1
			}
			f.Uniform1i(loc, b)
		case mgl32.Vec2:
			f.Uniform2f(loc, v[0], v[1])
		case mgl32.Vec3:
			f.Uniform3f(loc, v[0], v[1], v[2])
		case mgl32.Vec4:
			f.Uniform4f(loc, v[0], v[1], v[2], v[3])
		case mgl32.Mat3:
			f.UniformMatrix3fv(loc, v[:])
		case mgl32.Mat4:
			f.UniformMatrix4fv(loc, v[:])
		case []float32:
			f.Uniform1fv(loc, v)
		default:
			return fmt.Errorf("%w: %s is %T", ErrUnsupportedUniform, name, v)
		}
	}
	return nil
}

// location returns the cached location of name, querying it once.
func (p *Program) location(name string) gl.Uniform {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := p.ctx.funcs.GetUniformLocation(p.prog, name)
	p.uniforms[name] = loc
	return loc
}

// Handle returns the GL program handle.
func (p *Program) Handle() gl.Program {
	return p.prog
}

// Label returns the label given at creation. Pictures store shaders by
// label when encoded.
func (p *Program) Label() string {
	return p.label
}

// Release deletes the program.
func (p *Program) Release() {
	if p.released {
		return
	}
	p.released = true
	p.ctx.funcs.DeleteProgram(p.prog)
}

func (p *Program) String() string {
	return fmt.Sprintf("Program(%q, %d)", p.label, p.prog.V)
}
