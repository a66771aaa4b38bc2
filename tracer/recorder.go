package tracer

import (
	"image/color"

	"github.com/fogleman/pt/pt"
)

type LineKind int

const (
	OtherLine LineKind = iota
	IncidentLine
	NormalLine
	ReflectedLine
)

func (k LineKind) String() string {
	switch k {
	case IncidentLine:
		return "incident"
	case NormalLine:
		return "normal"
	case ReflectedLine:
		return "reflected"
	}
	return "other"
}

func kindOf(c color.Color) LineKind {
	switch c {
	case IncidentColor:
		return IncidentLine
	case NormalColor:
		return NormalLine
	case ReflectedColor:
		return ReflectedLine
	}
	return OtherLine
}

// Line is a single diagnostic ray drawn during a tick
type Line struct {
	Tick  int
	Start pt.Vector
	End   pt.Vector
	Color color.Color
	Kind  LineKind
}

// Recorder is a Drawer that keeps every ray it is given so it can be rendered later
type Recorder struct {
	Lines []Line
	// If non-zero, only the most recent MaxLines are kept
	MaxLines int
	tick     int
}

// BeginTick stamps subsequent lines with tick
func (r *Recorder) BeginTick(tick int) {
	r.tick = tick
}

func (r *Recorder) DrawRay(start, offset pt.Vector, c color.Color) {
	r.Lines = append(r.Lines, Line{
		Tick:  r.tick,
		Start: start,
		End:   start.Add(offset),
		Color: c,
		Kind:  kindOf(c),
	})
	if r.MaxLines > 0 && len(r.Lines) > r.MaxLines {
		r.Lines = r.Lines[len(r.Lines)-r.MaxLines:]
	}
}

func (r *Recorder) Reset() {
	r.Lines = nil
	r.tick = 0
}

// Path returns the start of the run followed by every point the ray touched.
//
// A terminal hit (non-reflectable) is included once, at the end.
func Path(start RayState, steps []Step) []pt.Vector {
	path := []pt.Vector{start.Origin}
	for _, s := range steps {
		if !s.HasHit {
			continue
		}
		if s.Reflected || path[len(path)-1] != s.Hit.Point {
			path = append(path, s.Hit.Point)
		}
	}
	return path
}
