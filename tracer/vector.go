package tracer

import (
	"github.com/fogleman/pt/pt"
)

// V is a shorthand constructor for a pt.Vector lying in the tracing plane (Z = 0)
func V(X, Y float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: 0}
}

// Flatten drops the Z component of v
func Flatten(v pt.Vector) pt.Vector {
	return pt.Vector{X: v.X, Y: v.Y}
}

// Reflect mirrors d about the surface with unit normal n: d - 2(d·n)n.
//
// The result has the same length as d.
func Reflect(d, n pt.Vector) pt.Vector {
	return d.Sub(n.MulScalar(2 * d.Dot(n)))
}
