package leveldata

import (
	"fmt"
	"image/color"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Object group and property names used by Tiled maps.
const (
	groupShapes = "shapes"
	groupWarps  = "warps"
	groupSpawn  = "spawn"

	propClass = "class"
	propClimb = "climb"
	propColor = "color"
	propWarp  = "warp"
	propMap   = "map"
)

// LoadTMX decodes a map authored in Tiled. The frame size is the tile grid
// size in pixels. Layout:
//
//   - object group "spawn": one object at the spawn point whose properties
//     "left", "right", "up" and "down" hold the edge warps (map id or n).
//   - object group "shapes": one object per shape with int properties
//     "class" and "climb" and a "#rrggbb" string property "color". Shapes
//     keep their object id order.
//   - object group "warps": one object per in-map warp with int property
//     "warp" (table index) and string property "map" (id or n); the object
//     position is the destination.
//
// It takes an fs.FS so callers can pass embed.FS or os.DirFS. Any error is
// returned as a *MapLoadError.
func LoadTMX(fsys fs.FS, path string, id int) (*MapData, error) {
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, &MapLoadError{MapID: id, Path: path, Err: fmt.Errorf("load TMX: %w", err)}
	}
	m, err := decodeTiled(levelMap, id)
	if err != nil {
		return nil, &MapLoadError{MapID: id, Path: path, Err: err}
	}
	return m, nil
}

func decodeTiled(levelMap *tiled.Map, id int) (*MapData, error) {
	m := &MapData{
		ID:     id,
		Width:  levelMap.Width * levelMap.TileWidth,
		Height: levelMap.Height * levelMap.TileHeight,
	}

	var spawnFound bool
	var warpObjects []*tiled.Object
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case groupSpawn:
			if len(og.Objects) != 1 {
				return nil, fmt.Errorf("object group %q needs exactly one object, has %d", groupSpawn, len(og.Objects))
			}
			o := og.Objects[0]
			m.SpawnX, m.SpawnY = int(o.X), int(o.Y)
			for e := EdgeLeft; e < edgeCount; e++ {
				tok := o.Properties.GetString(e.String())
				if tok == "" {
					tok = SameMap
				}
				dest, set, err := parseMapToken(id, e.String()+" edge warp", tok)
				if err != nil {
					return nil, err
				}
				m.Edges[e] = EdgeWarp{MapID: dest, Set: set}
			}
			spawnFound = true
		case groupShapes:
			objects := append([]*tiled.Object(nil), og.Objects...)
			sort.Slice(objects, func(i, j int) bool { return objects[i].ID < objects[j].ID })
			for _, o := range objects {
				s, err := decodeTiledShape(o)
				if err != nil {
					return nil, fmt.Errorf("shape object %d: %w", o.ID, err)
				}
				m.Shapes = append(m.Shapes, s)
			}
		case groupWarps:
			warpObjects = append(warpObjects, og.Objects...)
		}
	}
	if !spawnFound {
		return nil, fmt.Errorf("missing %q object group", groupSpawn)
	}

	m.Warps = make([]Warp, len(warpObjects))
	filled := make([]bool, len(warpObjects))
	for _, o := range warpObjects {
		idx := o.Properties.GetInt(propWarp)
		if idx < 0 || idx >= len(warpObjects) || filled[idx] {
			return nil, fmt.Errorf("warp object %d: bad or duplicate warp index %d", o.ID, idx)
		}
		dest, _, err := parseMapToken(id, fmt.Sprintf("warp %d map", idx), o.Properties.GetString(propMap))
		if err != nil {
			return nil, err
		}
		m.Warps[idx] = Warp{MapID: dest, X: int(o.X), Y: int(o.Y)}
		filled[idx] = true
	}

	if err := validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeTiledShape(o *tiled.Object) (Shape, error) {
	climb, err := DecodeClimb(o.Properties.GetInt(propClimb))
	if err != nil {
		return Shape{}, err
	}
	clr, err := parseHexColor(o.Properties.GetString(propColor))
	if err != nil {
		return Shape{}, err
	}
	return Shape{
		X:     int(o.X),
		Y:     int(o.Y),
		W:     int(o.Width),
		H:     int(o.Height),
		Class: RenderClass(o.Properties.GetInt(propClass)),
		Climb: climb,
		Color: clr,
	}, nil
}

// parseHexColor accepts "#rrggbb" or "#aarrggbb" as Tiled writes colors.
// An empty string is black.
func parseHexColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{A: 0xff}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 8 {
		hex = hex[2:]
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
