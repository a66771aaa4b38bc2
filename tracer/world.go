package tracer

import (
	"github.com/fogleman/pt/pt"
)

// Walls are extruded this far above and below the tracing plane
const wallHalfHeight = 1.0

// Collider is a tagged obstruction made of straight edges.
//
// A closed collider also joins its last point back to its first and encloses a solid region.
type Collider struct {
	Name   string
	Tag    string
	Points []pt.Vector
	Closed bool
}

// Segment is a single straight edge of a collider
type Segment struct {
	A, B pt.Vector
}

// Edges returns the edges of the collider, skipping zero-length ones
func (c Collider) Edges() []Segment {
	n := len(c.Points)
	if n < 2 {
		return nil
	}
	last := n - 1
	if c.Closed && n > 2 {
		last = n
	}
	edges := make([]Segment, 0, last)
	for i := 0; i < last; i++ {
		a := Flatten(c.Points[i])
		b := Flatten(c.Points[(i+1)%n])
		if a == b {
			continue
		}
		edges = append(edges, Segment{a, b})
	}
	return edges
}

// Box returns a closed rectangular collider spanning min to max
func Box(name, tag string, min, max pt.Vector) Collider {
	return Collider{
		Name: name,
		Tag:  tag,
		Points: []pt.Vector{
			V(min.X, min.Y),
			V(max.X, min.Y),
			V(max.X, max.Y),
			V(min.X, max.Y),
		},
		Closed: true,
	}
}

// World is a 2D scene of colliders. Queries run against a pt mesh built by
// extruding every edge into a vertical wall.
type World struct {
	Colliders []Collider

	triangles []*pt.Triangle
	owners    map[pt.Shape]int
	m         *pt.Mesh
}

func NewWorld(colliders ...Collider) *World {
	w := &World{owners: map[pt.Shape]int{}}
	for _, c := range colliders {
		w.Add(c)
	}
	return w
}

// Add places another collider into the world
func (w *World) Add(c Collider) {
	if w.owners == nil {
		w.owners = map[pt.Shape]int{}
	}
	idx := len(w.Colliders)
	w.Colliders = append(w.Colliders, c)
	for _, e := range c.Edges() {
		a0 := pt.Vector{X: e.A.X, Y: e.A.Y, Z: -wallHalfHeight}
		a1 := pt.Vector{X: e.A.X, Y: e.A.Y, Z: wallHalfHeight}
		b0 := pt.Vector{X: e.B.X, Y: e.B.Y, Z: -wallHalfHeight}
		b1 := pt.Vector{X: e.B.X, Y: e.B.Y, Z: wallHalfHeight}
		for _, tri := range []*pt.Triangle{
			pt.NewTriangle(a0, b0, b1, pt.Vector{}, pt.Vector{}, pt.Vector{}, pt.Material{}),
			pt.NewTriangle(a0, b1, a1, pt.Vector{}, pt.Vector{}, pt.Vector{}, pt.Material{}),
		} {
			tri.FixNormals()
			w.triangles = append(w.triangles, tri)
			w.owners[tri] = idx
		}
	}
	w.m = nil
}

func (w *World) mesh() *pt.Mesh {
	if len(w.triangles) == 0 {
		return nil
	}
	if w.m == nil {
		w.m = pt.NewMesh(w.triangles)
		w.m.Compile()
	}
	return w.m
}

// Raycast returns the nearest wall along the ray. The returned normal is unit
// length and faces back towards the ray origin.
func (w *World) Raycast(origin, direction pt.Vector) (Hit, bool) {
	direction = Flatten(direction)
	mesh := w.mesh()
	if mesh == nil || direction.Length() == 0 {
		return Hit{}, false
	}
	ray := pt.Ray{Origin: Flatten(origin), Direction: direction.Normalize()}
	hit := mesh.Intersect(ray)
	if !hit.Ok() {
		return Hit{}, false
	}
	info := hit.Info(ray)
	c := w.Colliders[w.owners[hit.Shape]]
	return Hit{
		Point:    Flatten(info.Position),
		Normal:   Flatten(info.Normal).Normalize(),
		Tag:      c.Tag,
		Collider: c.Name,
		Distance: hit.T,
	}, true
}

// Contains reports whether p lies inside any closed collider, returning its name
func (w *World) Contains(p pt.Vector) (string, bool) {
	for _, c := range w.Colliders {
		if c.Closed && insidePolygon(c.Points, p) {
			return c.Name, true
		}
	}
	return "", false
}

// Walls returns every edge in the world
func (w *World) Walls() []Segment {
	var walls []Segment
	for _, c := range w.Colliders {
		walls = append(walls, c.Edges()...)
	}
	return walls
}

// BoundingBox of every collider point
func (w *World) BoundingBox() (XMin, XMax, YMin, YMax float64, ok bool) {
	for _, c := range w.Colliders {
		for _, p := range c.Points {
			if !ok {
				XMin, XMax, YMin, YMax = p.X, p.X, p.Y, p.Y
				ok = true
				continue
			}
			if p.X < XMin {
				XMin = p.X
			}
			if p.X > XMax {
				XMax = p.X
			}
			if p.Y < YMin {
				YMin = p.Y
			}
			if p.Y > YMax {
				YMax = p.Y
			}
		}
	}
	return
}

// even-odd rule
func insidePolygon(poly []pt.Vector, p pt.Vector) bool {
	inside := false
	n := len(poly)
	if n < 3 {
		return false
	}
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
