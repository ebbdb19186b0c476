// Package leveldata describes map resources: frame size, spawn point, edge
// and in-map warp tables and the ordered shape list. It has no dependencies
// on ebitengine, donburi, or resolv, so the simulation and tools can share it.
package leveldata

import (
	"image/color"

	"github.com/adamcogen/littleman/shared/gamemath"
)

// Edge names one side of the frame.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeUp
	EdgeDown
	edgeCount
)

var edgeNames = [edgeCount]string{"left", "right", "up", "down"}

func (e Edge) String() string {
	if e < 0 || e >= edgeCount {
		return "edge(?)"
	}
	return edgeNames[e]
}

// RenderClass decides draw order and whether a shape collides.
type RenderClass int

const (
	ClassSolid      RenderClass = iota // rectangle behind the player, collides
	ClassBehind                        // rectangle behind the player
	ClassFront                         // rectangle in front of the player
	ClassOvalBehind                    // oval behind the player
	ClassOvalFront                     // oval in front of the player
	ClassHidden                        // never drawn; climb or warp region only
	classCount
)

func (c RenderClass) Valid() bool { return c >= 0 && c < classCount }

// Collides reports whether the class blocks movement. Only solid
// rectangles do.
func (c RenderClass) Collides() bool { return c == ClassSolid }

func (c RenderClass) Oval() bool { return c == ClassOvalBehind || c == ClassOvalFront }

func (c RenderClass) InFront() bool { return c == ClassFront || c == ClassOvalFront }

func (c RenderClass) Visible() bool { return c != ClassHidden }

// Shape is one axis-aligned map element.
type Shape struct {
	X, Y, W, H int
	Class      RenderClass
	Climb      ClimbCode
	Color      color.RGBA
}

// Contains reports whether pixel (px, py) is covered by the shape. Ovals use
// the inscribed ellipse.
func (s *Shape) Contains(px, py int) bool {
	if s.Class.Oval() {
		return gamemath.OvalContains(s.X, s.Y, s.W, s.H, px, py)
	}
	return gamemath.RectContains(s.X, s.Y, s.W, s.H, px, py)
}

// EdgeWarp is one slot of the edge-warp table. An unset slot wraps to the
// opposite edge of the same map.
type EdgeWarp struct {
	MapID int
	Set   bool
}

// Warp is an in-map warp destination.
type Warp struct {
	MapID int
	X, Y  int
}

// MapData is a fully decoded and validated map resource. It is never
// modified after loading.
type MapData struct {
	ID             int
	Width, Height  int
	SpawnX, SpawnY int
	Edges          [edgeCount]EdgeWarp
	Shapes         []Shape
	Warps          []Warp
}

// EdgeDestination returns the map entered by leaving through edge e.
func (m *MapData) EdgeDestination(e Edge) int {
	if w := m.Edges[e]; w.Set {
		return w.MapID
	}
	return m.ID
}

// Warp returns the in-map warp with the given id.
func (m *MapData) Warp(id int) (Warp, bool) {
	if id < 0 || id >= len(m.Warps) {
		return Warp{}, false
	}
	return m.Warps[id], true
}

// Neighbors lists every map id reachable from m through one warp, edge or
// in-map, without duplicates and excluding m itself.
func (m *MapData) Neighbors() []int {
	seen := map[int]bool{m.ID: true}
	var ids []int
	add := func(id int) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for e := EdgeLeft; e < edgeCount; e++ {
		add(m.EdgeDestination(e))
	}
	for _, w := range m.Warps {
		add(w.MapID)
	}
	return ids
}
