package core

import (
	"github.com/adamcogen/littleman/shared/leveldata"
	"github.com/adamcogen/littleman/tags"
	"github.com/solarlune/resolv"
)

// cellSize is the resolv broadphase cell edge in pixels.
const cellSize = 16

// CollisionMap answers point queries over the current map's shapes. Shapes
// live in a resolv space for broadphase; containment is then tested exactly
// per pixel so ovals and flush edges behave.
type CollisionMap struct {
	data  *leveldata.MapData
	space *resolv.Space
	query *resolv.Object
}

func NewCollisionMap() *CollisionMap {
	return &CollisionMap{}
}

// Load replaces the active geometry. The new space is complete before any
// query can see it.
func (c *CollisionMap) Load(m *leveldata.MapData) {
	// resolv drops partial cells, so round the space up to whole cells.
	space := resolv.NewSpace(roundUp(m.Width, cellSize), roundUp(m.Height, cellSize), cellSize, cellSize)
	for i := range m.Shapes {
		s := &m.Shapes[i]
		if s.W == 0 || s.H == 0 {
			continue
		}
		var objTags []string
		if s.Class.Collides() {
			objTags = append(objTags, tags.ResolvSolid)
		}
		if s.Climb != leveldata.NoClimb {
			objTags = append(objTags, tags.ResolvClimb)
		}
		if len(objTags) == 0 {
			continue
		}
		obj := resolv.NewObject(float64(s.X), float64(s.Y), float64(s.W), float64(s.H), objTags...)
		obj.Data = s
		space.Add(obj)
	}

	query := resolv.NewObject(0, 0, 1, 1)
	space.Add(query)

	c.data, c.space, c.query = m, space, query
}

func roundUp(v, step int) int {
	return (v + step - 1) / step * step
}

// Data returns the loaded map, or nil before the first Load.
func (c *CollisionMap) Data() *leveldata.MapData { return c.data }

// IsSolidAt reports whether pixel (x, y) is inside a collidable shape.
// Pixels outside the frame are open space.
func (c *CollisionMap) IsSolidAt(x, y int) bool {
	return c.AnySolid(x, y, x, y)
}

// AnySolid reports whether any pixel of the axis-aligned segment from
// (x0, y0) to (x1, y1) inclusive is solid.
func (c *CollisionMap) AnySolid(x0, y0, x1, y1 int) bool {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	solid := false
	c.candidates(x0, y0, x1, y1, tags.ResolvSolid, func(s *leveldata.Shape) bool {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if c.inFrame(x, y) && s.Contains(x, y) {
					solid = true
					return false
				}
			}
		}
		return true
	})
	return solid
}

// ClimbCodeAt returns the climb code at pixel (x, y). Where shapes overlap
// the highest raw code wins, so any warp beats every plain code.
func (c *CollisionMap) ClimbCodeAt(x, y int) leveldata.ClimbCode {
	best := leveldata.NoClimb
	if !c.inFrame(x, y) {
		return best
	}
	c.candidates(x, y, x, y, tags.ResolvClimb, func(s *leveldata.Shape) bool {
		if s.Climb.Raw() > best.Raw() && s.Contains(x, y) {
			best = s.Climb
		}
		return true
	})
	return best
}

func (c *CollisionMap) inFrame(x, y int) bool {
	return c.data != nil && x >= 0 && y >= 0 && x < c.data.Width && y < c.data.Height
}

// candidates calls fn for shapes with tag whose broadphase cells touch the
// box, until fn returns false.
func (c *CollisionMap) candidates(x0, y0, x1, y1 int, tag string, fn func(*leveldata.Shape) bool) {
	if c.space == nil {
		return
	}
	c.query.X = float64(x0)
	c.query.Y = float64(y0)
	c.query.W = float64(x1 - x0 + 1)
	c.query.H = float64(y1 - y0 + 1)
	c.query.Update()

	check := c.query.Check(0, 0, tag)
	if check == nil {
		return
	}
	for _, obj := range check.ObjectsByTags(tag) {
		s, ok := obj.Data.(*leveldata.Shape)
		if !ok {
			continue
		}
		if !fn(s) {
			return
		}
	}
}
