package tracer

import (
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
)

func boxWorld(tag string) *World {
	return NewWorld(Box("room", tag, V(-10, -10), V(10, 10)))
}

func TestColliderEdges(t *testing.T) {
	assert := assert.New(t)

	open := Collider{Points: []pt.Vector{V(0, 0), V(1, 0), V(1, 0), V(1, 1)}}
	assert.Len(open.Edges(), 2)

	closed := Box("b", ReflectableTag, V(0, 0), V(1, 1))
	edges := closed.Edges()
	assert.Len(edges, 4)
	assert.Equal(V(0, 1), edges[3].A)
	assert.Equal(V(0, 0), edges[3].B)

	assert.Empty(Collider{Points: []pt.Vector{V(0, 0)}}.Edges())
}

func TestWorldRaycast(t *testing.T) {
	tests := []struct {
		name      string
		origin    pt.Vector
		direction pt.Vector
		point     pt.Vector
		normal    pt.Vector
	}{
		{"right", V(0, 0.5), V(1, 0), V(10, 0.5), V(-1, 0)},
		{"left", V(2, 3), V(-5, 0), V(-10, 3), V(1, 0)},
		{"down_diagonal", V(1, 0), V(10, -10), V(10, -9), V(-1, 0)},
		{"up", V(-4, -4), V(0, 3), V(-4, 10), V(0, -1)},
	}

	world := boxWorld(ReflectableTag)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert := assert.New(t)
			hit, ok := world.Raycast(test.origin, test.direction)
			if !assert.True(ok) {
				return
			}
			assertVector(t, test.point, hit.Point, 1e-9)
			assertVector(t, test.normal, hit.Normal, 1e-9)
			assert.Equal(ReflectableTag, hit.Tag)
			assert.Equal("room", hit.Collider)
			assert.InDelta(test.point.Sub(test.origin).Length(), hit.Distance, 1e-9)
		})
	}
}

func TestWorldRaycastMisses(t *testing.T) {
	assert := assert.New(t)

	_, ok := NewWorld().Raycast(V(0, 0), V(1, 0))
	assert.False(ok)

	wall := NewWorld(Collider{Name: "wall", Tag: "Wall", Points: []pt.Vector{V(5, -1), V(5, 1)}})
	_, ok = wall.Raycast(V(0, 0), V(-1, 0))
	assert.False(ok)
	_, ok = wall.Raycast(V(0, 0), V(0, 0))
	assert.False(ok)

	hit, ok := wall.Raycast(V(0, 0.3), V(1, 0))
	assert.True(ok)
	assert.Equal("Wall", hit.Tag)
}

func TestWorldNearestCollider(t *testing.T) {
	world := NewWorld(
		Collider{Name: "far", Tag: ReflectableTag, Points: []pt.Vector{V(8, -5), V(8, 5)}},
		Collider{Name: "near", Tag: "Wall", Points: []pt.Vector{V(3, -5), V(3, 5)}},
	)
	hit, ok := world.Raycast(V(0, 0), V(1, 0.1))
	assert.True(t, ok)
	assert.Equal(t, "near", hit.Collider)
	assert.Equal(t, "Wall", hit.Tag)
}

func TestWorldContains(t *testing.T) {
	assert := assert.New(t)
	world := NewWorld(
		Box("pillar", ReflectableTag, V(2, 2), V(4, 4)),
		Collider{Name: "line", Tag: ReflectableTag, Points: []pt.Vector{V(-5, -5), V(5, 5)}},
	)

	name, inside := world.Contains(V(3, 3))
	assert.True(inside)
	assert.Equal("pillar", name)

	_, inside = world.Contains(V(0, 0))
	assert.False(inside)
	_, inside = world.Contains(V(5, 3))
	assert.False(inside)
}

func TestTracerBouncesInsideBox(t *testing.T) {
	assert := assert.New(t)
	world := boxWorld(ReflectableTag)
	tr := NewTracer(world, nil, Options{})

	_, steps := Run(tr, FixedPlacement(V(1, 0)), 40)

	for _, s := range steps {
		assert.True(s.Reflected, "tick %d did not reflect", s.Tick)
		// The offset keeps the next cast from re-hitting the wall it just left
		assert.Greater(s.Hit.Distance, 1.0, "tick %d", s.Tick)
		assert.InDelta(DefaultDirection.Length(), s.After.Direction.Length(), 1e-9)
		o := s.After.Origin
		assert.True(o.X > -10 && o.X < 10 && o.Y > -10 && o.Y < 10, "tick %d escaped to %v", s.Tick, o)
	}
}

func TestTracerStopsAtWall(t *testing.T) {
	world := NewWorld(Collider{Name: "floor", Tag: "Wall", Points: []pt.Vector{V(-20, -5), V(20, -5)}})
	tr := NewTracer(world, nil, Options{})
	start, steps := Run(tr, FixedPlacement(V(0, 0)), 5)
	for _, s := range steps {
		assert.True(t, s.HasHit)
		assert.False(t, s.Reflected)
		assert.Equal(t, start, s.After)
	}
	assertVector(t, V(5, -5), steps[0].Hit.Point, 1e-9)
}
