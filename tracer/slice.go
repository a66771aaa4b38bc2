package tracer

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"github.com/hpinc/go3mf"
)

// Plane is a slicing plane through a 3D mesh
type Plane struct {
	Point  pt.Vector
	Normal pt.Vector
}

// HorizontalPlane is the plane Z = height
func HorizontalPlane(height float64) Plane {
	return Plane{Point: pt.Vector{Z: height}, Normal: pt.Vector{Z: 1}}
}

func (p Plane) intersectSegment(v0, v1 pt.Vector) (pt.Vector, bool) {
	u := v1.Sub(v0)
	w := v0.Sub(p.Point)
	d := p.Normal.Dot(u)
	if d > -1e-9 && d < 1e-9 {
		return pt.Vector{}, false
	}
	t := -p.Normal.Dot(w) / d
	if t < 0 || t > 1 {
		return pt.Vector{}, false
	}
	return v0.Add(u.MulScalar(t)), true
}

// IntersectTriangle returns the segment where the plane cuts t
func (p Plane) IntersectTriangle(t *pt.Triangle) (pt.Vector, pt.Vector, bool) {
	v1, ok1 := p.intersectSegment(t.V1, t.V2)
	v2, ok2 := p.intersectSegment(t.V2, t.V3)
	v3, ok3 := p.intersectSegment(t.V3, t.V1)
	var p1, p2 pt.Vector
	switch {
	case ok1 && ok2:
		p1, p2 = v1, v2
	case ok1 && ok3:
		p1, p2 = v1, v3
	case ok2 && ok3:
		p1, p2 = v2, v3
	default:
		return pt.Vector{}, pt.Vector{}, false
	}
	if p1 == p2 {
		return pt.Vector{}, pt.Vector{}, false
	}
	return p1, p2, true
}

// Slice cuts every triangle with the plane and returns the resulting 2D segments
func (p Plane) Slice(triangles []*pt.Triangle) []Segment {
	var segments []Segment
	for _, t := range triangles {
		if a, b, ok := p.IntersectTriangle(t); ok {
			segments = append(segments, Segment{Flatten(a), Flatten(b)})
		}
	}
	return segments
}

// MeshOptions control how a 3MF model becomes a World
type MeshOptions struct {
	// Height of the slicing plane, in world units
	SliceHeight float64
	// Model units per world unit. 3MF files are usually in millimeters.
	Scale float64
	// Object name -> collider tag. The "default" entry applies to unlisted objects.
	Tags map[string]string
}

// CollidersFromTriangles slices triangles belonging to a single named object
func CollidersFromTriangles(name, tag string, triangles []*pt.Triangle, sliceHeight float64) []Collider {
	var colliders []Collider
	for _, s := range HorizontalPlane(sliceHeight).Slice(triangles) {
		colliders = append(colliders, Collider{
			Name:   name,
			Tag:    tag,
			Points: []pt.Vector{s.A, s.B},
		})
	}
	return colliders
}

func tagFor(name string, tags map[string]string) string {
	if tag, ok := tags[name]; ok {
		return tag
	}
	return tags["default"]
}

// NewWorldFrom3MF loads a 3MF model and slices each object into colliders
func NewWorldFrom3MF(path string, opts MeshOptions) (*World, error) {
	var model go3mf.Model
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening 3mf: %w", err)
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("decoding 3mf: %w", err)
	}

	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	world := NewWorld()
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}
		scaled := func(x, y, z float32) pt.Vector {
			return pt.Vector{X: float64(x) / scale, Y: float64(y) / scale, Z: float64(z) / scale}
		}
		verts := obj.Mesh.Vertices.Vertex
		triangles := make([]*pt.Triangle, 0, len(obj.Mesh.Triangles.Triangle))
		for _, t := range obj.Mesh.Triangles.Triangle {
			a, b, c := verts[t.V1], verts[t.V2], verts[t.V3]
			triangles = append(triangles, pt.NewTriangle(
				scaled(a.X(), a.Y(), a.Z()),
				scaled(b.X(), b.Y(), b.Z()),
				scaled(c.X(), c.Y(), c.Z()),
				pt.Vector{}, pt.Vector{}, pt.Vector{}, pt.Material{},
			))
		}
		for _, c := range CollidersFromTriangles(obj.Name, tagFor(obj.Name, opts.Tags), triangles, opts.SliceHeight) {
			world.Add(c)
		}
	}
	return world, nil
}
