package core

import (
	"errors"
	"log"

	"github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/shared/leveldata"
)

// WarpController performs map transitions: edge warps when the player
// leaves the frame and in-map warps when it reaches a warp region.
type WarpController struct {
	w     *World
	cfg   config.PhysicsConfig
	depth int
}

func newWarpController(w *World, cfg config.PhysicsConfig) *WarpController {
	return &WarpController{w: w, cfg: cfg}
}

// enter guards against warps that land on further warps forever.
func (wc *WarpController) enter(kind string) bool {
	if wc.depth >= wc.cfg.MaxWarpChain {
		log.Printf("core: dropping %s warp on map %d: chain deeper than %d", kind, wc.w.Map.Data().ID, wc.cfg.MaxWarpChain)
		return false
	}
	wc.depth++
	return true
}

func (wc *WarpController) leave() { wc.depth-- }

// EdgeWarp moves the player through the frame edge in dir to the map
// configured for that edge, or round to the opposite edge of the same map.
// The player lands just inside the warp threshold of the opposite edge.
func (wc *WarpController) EdgeWarp(dir Direction) {
	if wc.w.failed() || !wc.enter("edge") {
		return
	}
	defer wc.leave()

	dest := wc.w.Map.Data().EdgeDestination(dir.edge())
	if err := wc.ChangeMap(dest); err != nil {
		wc.w.fail(err)
		return
	}

	p := &wc.w.Player
	m := wc.w.Map.Data()
	ins := wc.cfg.EdgeInsets
	switch dir {
	case Left:
		p.X = m.Width + ins.Right
	case Right:
		p.X = -ins.Left
	case Up:
		p.Y = m.Height + ins.Bottom
	case Down:
		p.Y = -ins.Top
	}
	if wc.cfg.EdgeWarpResetsFallSpeed {
		wc.w.Motion.ResetFallSpeed()
	}
	wc.w.Motion.CheckFall()
}

// NormWarp sends the player to entry id of the current map's warp table.
func (wc *WarpController) NormWarp(id int) {
	if wc.w.failed() || !wc.enter("in-map") {
		return
	}
	defer wc.leave()

	dest, ok := wc.w.Map.Data().Warp(id)
	if !ok {
		// Map loading rejects codes without a table entry.
		log.Printf("core: map %d has no warp %d", wc.w.Map.Data().ID, id)
		return
	}
	if err := wc.ChangeMap(dest.MapID); err != nil {
		wc.w.fail(err)
		return
	}

	p := &wc.w.Player
	p.X, p.Y = dest.X, dest.Y
	if wc.cfg.InMapWarpResetsFallSpeed {
		wc.w.Motion.ResetFallSpeed()
	}
	wc.w.Motion.CheckFall()
}

// ChangeMap loads map id into the collision map. It does not move the
// player. On error the current map stays loaded and the error is a
// *leveldata.MapLoadError.
func (wc *WarpController) ChangeMap(id int) error {
	m, err := wc.w.maps.Map(id)
	if err != nil {
		var mle *leveldata.MapLoadError
		if !errors.As(err, &mle) {
			err = &leveldata.MapLoadError{MapID: id, Err: err}
		}
		return err
	}
	if m == nil {
		return &leveldata.MapLoadError{MapID: id, Err: errors.New("map source returned no map")}
	}
	wc.w.Map.Load(m)
	log.Printf("core: map %d loaded (%dx%d, %d shapes, %d warps)", m.ID, m.Width, m.Height, len(m.Shapes), len(m.Warps))
	return nil
}
