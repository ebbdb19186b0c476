package leveldata

import (
	"fmt"
	"strconv"
)

// ClimbKind is the tag of a ClimbCode.
type ClimbKind uint8

const (
	ClimbNone ClimbKind = iota
	ClimbLadder
	ClimbWater
	ClimbJumpable
	ClimbWarp
)

// WarpCodeBase is the first raw climb code that encodes an in-map warp.
const WarpCodeBase = 10

// ClimbCode classifies the pixels a shape covers: nothing, ladder, water,
// jumpable climb, or an in-map warp with an id into the map's warp table.
// The zero value is NoClimb.
type ClimbCode struct {
	kind ClimbKind
	warp int
}

var (
	NoClimb       = ClimbCode{kind: ClimbNone}
	Ladder        = ClimbCode{kind: ClimbLadder}
	Water         = ClimbCode{kind: ClimbWater}
	JumpableClimb = ClimbCode{kind: ClimbJumpable}
)

// WarpCode returns the climb code that triggers in-map warp id.
func WarpCode(id int) ClimbCode {
	return ClimbCode{kind: ClimbWarp, warp: id}
}

// DecodeClimb converts the raw integer stored in map files. Valid values are
// 0 through 3 and anything from WarpCodeBase up.
func DecodeClimb(raw int) (ClimbCode, error) {
	switch {
	case raw >= 0 && raw <= int(ClimbJumpable):
		return ClimbCode{kind: ClimbKind(raw)}, nil
	case raw >= WarpCodeBase:
		return WarpCode(raw - WarpCodeBase), nil
	}
	return NoClimb, fmt.Errorf("invalid climb code %d", raw)
}

func (c ClimbCode) Kind() ClimbKind { return c.kind }

func (c ClimbCode) IsWarp() bool { return c.kind == ClimbWarp }

// WarpID returns the warp table index for warp codes.
func (c ClimbCode) WarpID() (int, bool) {
	if c.kind != ClimbWarp {
		return 0, false
	}
	return c.warp, true
}

// Raw returns the integer used in map files.
func (c ClimbCode) Raw() int {
	if c.kind == ClimbWarp {
		return WarpCodeBase + c.warp
	}
	return int(c.kind)
}

func (c ClimbCode) String() string {
	switch c.kind {
	case ClimbNone:
		return "none"
	case ClimbLadder:
		return "ladder"
	case ClimbWater:
		return "water"
	case ClimbJumpable:
		return "jumpable"
	case ClimbWarp:
		return "warp(" + strconv.Itoa(c.warp) + ")"
	}
	return "climb(?)"
}
