package tracer

import (
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
)

func V3(x, y, z float64) pt.Vector {
	return pt.Vector{X: x, Y: y, Z: z}
}

func buildTri(v1, v2, v3 pt.Vector) *pt.Triangle {
	return pt.NewTriangle(v1, v2, v3, pt.Vector{}, pt.Vector{}, pt.Vector{}, pt.Material{})
}

func TestIntersectSegment(t *testing.T) {
	assert := assert.New(t)
	intersects := func(plane Plane, want, v1, v2 pt.Vector) {
		v, ok := plane.intersectSegment(v1, v2)
		assert.True(ok)
		assert.Less(want.Sub(v).Length(), 0.01)
	}
	doesNotIntersect := func(plane Plane, v1, v2 pt.Vector) {
		_, ok := plane.intersectSegment(v1, v2)
		assert.False(ok)
	}

	p := HorizontalPlane(0)

	intersects(p, V3(0, 0, 0), V3(0, 0, 2), V3(0, 0, -1))
	intersects(p, V3(1, 1, 0), V3(0, 0, -1), V3(2, 2, 1))
	doesNotIntersect(p, V3(0, 0, 2), V3(1, 0, 2))
	doesNotIntersect(p, V3(0, 0, 2), V3(0, 0, 1))
}

func TestIntersectTriangle(t *testing.T) {
	assert := assert.New(t)
	intersects := func(plane Plane, want1, want2 pt.Vector, tri *pt.Triangle) {
		v1, v2, ok := plane.IntersectTriangle(tri)
		assert.True(ok)
		// Endpoint order is not significant
		direct := want1.Sub(v1).Length() < 0.01 && want2.Sub(v2).Length() < 0.01
		swapped := want1.Sub(v2).Length() < 0.01 && want2.Sub(v1).Length() < 0.01
		assert.True(direct || swapped, "got %v %v, want %v %v", v1, v2, want1, want2)
	}
	doesNotIntersect := func(plane Plane, tri *pt.Triangle) {
		_, _, ok := plane.IntersectTriangle(tri)
		assert.False(ok)
	}

	p := HorizontalPlane(1)

	doesNotIntersect(p, buildTri(V3(0, 0, 2), V3(15, 0, 2), V3(-10, 7, 5)))
	intersects(p, V3(1, 0, 1), V3(-1, 0, 1), buildTri(V3(0, 0, 0), V3(2, 0, 2), V3(-2, 0, 2)))
	intersects(p, V3(1, 0, 1), V3(0, 0, 1), buildTri(V3(0, 0, 0), V3(2, 0, 0), V3(0, 0, 2)))
}

func TestSliceCube(t *testing.T) {
	assert := assert.New(t)
	cube := pt.NewCube(V3(0, 0, 0), V3(10, 10, 10), pt.Material{}).Mesh()

	colliders := CollidersFromTriangles("cube", ReflectableTag, cube.Triangles, 5)
	assert.NotEmpty(colliders)

	onBoundary := func(p pt.Vector) bool {
		near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
		return near(p.X, 0) || near(p.X, 10) || near(p.Y, 0) || near(p.Y, 10)
	}
	for _, c := range colliders {
		assert.Equal("cube", c.Name)
		assert.Equal(ReflectableTag, c.Tag)
		for _, p := range c.Points {
			assert.Zero(p.Z)
			assert.True(onBoundary(p), "%v is not on the cube wall", p)
		}
	}

	world := NewWorld(colliders...)
	hit, ok := world.Raycast(V(5, 3), V(1, 0))
	if assert.True(ok) {
		assertVector(t, V(10, 3), hit.Point, 1e-9)
		assertVector(t, V(-1, 0), hit.Normal, 1e-9)
	}

	name, inside := world.Contains(V(5, 5))
	assert.False(inside, "sliced walls are open segments, got %s", name)
}

func TestTagFor(t *testing.T) {
	tags := map[string]string{"default": "Wall", "Mirror A": ReflectableTag}
	assert.Equal(t, ReflectableTag, tagFor("Mirror A", tags))
	assert.Equal(t, "Wall", tagFor("Door", tags))
	assert.Equal(t, "", tagFor("Door", nil))
}

func TestNewWorldFrom3MFMissingFile(t *testing.T) {
	_, err := NewWorldFrom3MF("does-not-exist.3mf", MeshOptions{})
	assert.Error(t, err)
}

func TestNewWorldFrom3MF(t *testing.T) {
	assert := assert.New(t)
	world, err := NewWorldFrom3MF("../testdata/room.3mf", MeshOptions{
		SliceHeight: 1,
		Scale:       1000,
		Tags:        map[string]string{"default": "Wall", "Mirror A": ReflectableTag},
	})
	if !assert.NoError(err) {
		return
	}

	// each box has four side faces of two triangles
	assert.Len(world.Colliders, 16)
	tags := map[string]string{}
	for _, c := range world.Colliders {
		tags[c.Name] = c.Tag
	}
	assert.Equal(map[string]string{"Mirror A": ReflectableTag, "Pillar": "Wall"}, tags)

	hit, ok := world.Raycast(V(-3, 0.3), V(1, 0))
	if assert.True(ok) {
		assertVector(t, V(0, 0.3), hit.Point, 1e-6)
		assertVector(t, V(-1, 0), hit.Normal, 1e-6)
		assert.Equal("Mirror A", hit.Collider)
		assert.Equal(ReflectableTag, hit.Tag)
	}

	hit, ok = world.Raycast(V(4.2, -3), V(0, 1))
	if assert.True(ok) {
		assertVector(t, V(4.2, 0), hit.Point, 1e-6)
		assert.Equal("Pillar", hit.Collider)
		assert.Equal("Wall", hit.Tag)
	}
}
