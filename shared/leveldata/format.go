package leveldata

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/adamcogen/littleman/shared/gamemath"
)

// SameMap is the warp token meaning "the map being loaded".
const SameMap = "n"

// shapeFields is the number of integers per shape record.
const shapeFields = 9

// Parse decodes a map in the text format:
//
//	width height
//	spawnX spawnY
//	left right up down          (map id or n)
//	shapeCount
//	x y w h class climb r g b   (shapeCount times)
//	warpCount
//	map x y                     (warpCount times, map may be n)
//
// Tokens are whitespace separated; line breaks carry no meaning. Any error
// is returned as a *MapLoadError.
func Parse(id int, r io.Reader) (*MapData, error) {
	m, err := decodeText(id, r)
	if err != nil {
		return nil, &MapLoadError{MapID: id, Err: err}
	}
	return m, nil
}

type tokenizer struct {
	sc *bufio.Scanner
	n  int
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next(field string) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", fmt.Errorf("%s: %w", field, err)
		}
		return "", fmt.Errorf("%s: unexpected end of map data", field)
	}
	t.n++
	return t.sc.Text(), nil
}

// done fails if any token is left after the last record.
func (t *tokenizer) done() error {
	if t.sc.Scan() {
		return fmt.Errorf("unexpected trailing token %q", t.sc.Text())
	}
	return t.sc.Err()
}

func (t *tokenizer) int(field string) (int, error) {
	tok, err := t.next(field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%s: token %d %q is not an integer", field, t.n, tok)
	}
	return v, nil
}

func (t *tokenizer) count(field string) (int, error) {
	v, err := t.int(field)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%s: negative count %d", field, v)
	}
	return v, nil
}

// mapToken reads a destination map id. It returns set=false for the SameMap
// sentinel.
func (t *tokenizer) mapToken(mapID int, field string) (id int, set bool, err error) {
	tok, err := t.next(field)
	if err != nil {
		return 0, false, err
	}
	return parseMapToken(mapID, field, tok)
}

func parseMapToken(mapID int, field, tok string) (int, bool, error) {
	if tok == SameMap {
		return mapID, false, nil
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, false, &MalformedWarpTokenError{MapID: mapID, Field: field, Token: tok}
	}
	return v, true, nil
}

func decodeText(id int, r io.Reader) (*MapData, error) {
	t := newTokenizer(r)
	m := &MapData{ID: id}

	var err error
	if m.Width, err = t.int("width"); err != nil {
		return nil, err
	}
	if m.Height, err = t.int("height"); err != nil {
		return nil, err
	}
	if m.SpawnX, err = t.int("spawn x"); err != nil {
		return nil, err
	}
	if m.SpawnY, err = t.int("spawn y"); err != nil {
		return nil, err
	}
	for e := EdgeLeft; e < edgeCount; e++ {
		dest, set, err := t.mapToken(id, e.String()+" edge warp")
		if err != nil {
			return nil, err
		}
		m.Edges[e] = EdgeWarp{MapID: dest, Set: set}
	}

	shapeCount, err := t.count("shape count")
	if err != nil {
		return nil, err
	}
	raw := make([][shapeFields]int, 0, min(shapeCount, 1024))
	for i := 0; i < shapeCount; i++ {
		var rec [shapeFields]int
		for f := range rec {
			if rec[f], err = t.int(fmt.Sprintf("shape %d field %d", i, f)); err != nil {
				return nil, err
			}
		}
		raw = append(raw, rec)
	}

	warpCount, err := t.count("warp count")
	if err != nil {
		return nil, err
	}
	for i := 0; i < warpCount; i++ {
		field := fmt.Sprintf("warp %d", i)
		dest, _, err := t.mapToken(id, field+" map")
		if err != nil {
			return nil, err
		}
		var w Warp
		w.MapID = dest
		if w.X, err = t.int(field + " x"); err != nil {
			return nil, err
		}
		if w.Y, err = t.int(field + " y"); err != nil {
			return nil, err
		}
		m.Warps = append(m.Warps, w)
	}

	if err := t.done(); err != nil {
		return nil, err
	}

	m.Shapes = make([]Shape, 0, len(raw))
	for i, rec := range raw {
		s, err := decodeShape(rec)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		m.Shapes = append(m.Shapes, s)
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeShape(rec [shapeFields]int) (Shape, error) {
	s := Shape{
		X: rec[0], Y: rec[1], W: rec[2], H: rec[3],
		Class: RenderClass(rec[4]),
		Color: color.RGBA{
			R: uint8(gamemath.ClampInt(rec[6], 0, 255)),
			G: uint8(gamemath.ClampInt(rec[7], 0, 255)),
			B: uint8(gamemath.ClampInt(rec[8], 0, 255)),
			A: 0xff,
		},
	}
	climb, err := DecodeClimb(rec[5])
	if err != nil {
		return Shape{}, err
	}
	s.Climb = climb
	return s, nil
}

// validate checks the cross-field rules shared by every map format.
func validate(m *MapData) error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("frame size %dx%d must be positive", m.Width, m.Height)
	}
	for i := range m.Shapes {
		s := &m.Shapes[i]
		if !s.Class.Valid() {
			return fmt.Errorf("shape %d: unknown render class %d", i, s.Class)
		}
		if s.W < 0 || s.H < 0 {
			return fmt.Errorf("shape %d: negative size %dx%d", i, s.W, s.H)
		}
		if id, ok := s.Climb.WarpID(); ok && id >= len(m.Warps) {
			return fmt.Errorf("shape %d: climb code %d refers to warp %d, map has %d warps",
				i, s.Climb.Raw(), id, len(m.Warps))
		}
	}
	return nil
}
