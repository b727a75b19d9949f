package gfx

import (
	"errors"
	"fmt"
)

// PictureCommand draws Count indices starting at Index in the picture's
// index array with one material.
type PictureCommand struct {
	Material Material
	Index    int
	Count    int
}

// Picture is a recorded sequence of draws. While a BatchRenderer records
// into a picture, submissions are appended here instead of reaching the
// GPU. Consecutive submissions with equal materials share one command.
//
// Indices are stored rebased onto the picture's own vertex array.
type Picture struct {
	format   VertexFormat
	vertices []float32
	indices  []uint16
	commands []PictureCommand
}

// NewPicture returns an empty picture for vertices of the given format.
func NewPicture(format VertexFormat) *Picture {
	return &Picture{format: format.Clone()}
}

// Format returns the vertex format of the recorded geometry.
func (p *Picture) Format() VertexFormat {
	return p.format
}

// Vertices returns the recorded vertex data. The slice must not be
// modified.
func (p *Picture) Vertices() []float32 {
	return p.vertices
}

// Indices returns the recorded indices. The slice must not be modified.
func (p *Picture) Indices() []uint16 {
	return p.indices
}

// Commands returns the recorded commands in submission order.
func (p *Picture) Commands() []PictureCommand {
	return p.commands
}

// VertexCount returns the number of recorded vertices.
func (p *Picture) VertexCount() int {
	if s := p.format.Stride(); s > 0 {
		return len(p.vertices) / s
	}
	return 0
}

// Reset discards all recorded geometry and commands, keeping capacity.
func (p *Picture) Reset() {
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]
	p.commands = p.commands[:0]
}

// append records one submission. The picture is left unchanged on error.
func (p *Picture) append(m Material, vertices []float32, indices []uint16) error {
	stride := p.format.Stride()
	if stride == 0 || len(vertices)%stride != 0 {
		return fmt.Errorf("%w: %d floats for stride %d", ErrStrideMismatch, len(vertices), stride)
	}
	base := len(p.vertices) / stride
	for _, i := range indices {
		if base+int(i) > 0xffff {
			return fmt.Errorf("%w: picture index %d", ErrIndexOverflow, base+int(i))
		}
	}

	p.vertices = append(p.vertices, vertices...)
	start := len(p.indices)
	for _, i := range indices {
		p.indices = append(p.indices, uint16(base+int(i)))
	}

	if n := len(p.commands); n > 0 && p.commands[n-1].Material.Equal(m) {
		p.commands[n-1].Count += len(indices)
		return nil
	}
	p.commands = append(p.commands, PictureCommand{
		Material: m.snapshot(),
		Index:    start,
		Count:    len(indices),
	})
	return nil
}

// commandGeometry returns the vertices referenced by cmd and its indices
// rebased onto them.
func (p *Picture) commandGeometry(cmd PictureCommand) ([]float32, []uint16, error) {
	if cmd.Index < 0 || cmd.Count < 0 || cmd.Index+cmd.Count > len(p.indices) {
		return nil, nil, errors.New("gfx: picture command out of range")
	}
	idx := p.indices[cmd.Index : cmd.Index+cmd.Count]
	if len(idx) == 0 {
		return nil, nil, nil
	}
	lo, hi := idx[0], idx[0]
	for _, i := range idx[1:] {
		lo = min(lo, i)
		hi = max(hi, i)
	}
	stride := p.format.Stride()
	if (int(hi)+1)*stride > len(p.vertices) {
		return nil, nil, errors.New("gfx: picture index past end of vertices")
	}
	local := make([]uint16, len(idx))
	for n, i := range idx {
		local[n] = i - lo
	}
	return p.vertices[int(lo)*stride : (int(hi)+1)*stride], local, nil
}
