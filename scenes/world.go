package scenes

import (
	"image/color"
	"sync"

	"github.com/adamcogen/littleman/archetypes"
	"github.com/adamcogen/littleman/components"
	cfg "github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/core"
	"github.com/adamcogen/littleman/shared/leveldata"
	"github.com/adamcogen/littleman/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// WorldScene plays the movement simulation in one window.
type WorldScene struct {
	ecs     *ecs.ECS
	world   *core.World
	store   *leveldata.Store
	watcher *leveldata.Watcher
	saved   *systems.SavedSettings
	once    sync.Once
}

// NewWorldScene wraps a spawned world. watcher and saved may be nil.
func NewWorldScene(world *core.World, store *leveldata.Store, watcher *leveldata.Watcher, saved *systems.SavedSettings) *WorldScene {
	return &WorldScene{world: world, store: store, watcher: watcher, saved: saved}
}

func (ws *WorldScene) Update() {
	ws.once.Do(ws.configure)
	ws.ecs.Update()
}

func (ws *WorldScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ws.ecs == nil {
		return
	}
	ws.ecs.Draw(screen)
}

// Size is the frame size of the current map.
func (ws *WorldScene) Size() (int, int) {
	snap := ws.world.Snapshot()
	return snap.Width, snap.Height
}

func (ws *WorldScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateControls)
	ecs.AddSystem(systems.UpdateSimulation)
	ecs.AddSystem(systems.UpdateWatch)
	ecs.AddSystem(systems.UpdateTransition)
	ecs.AddSystem(systems.UpdateFade)

	ecs.AddRenderer(cfg.Default, systems.DrawLevel)
	ecs.AddRenderer(cfg.Default, systems.DrawPlayer)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)
	ecs.AddRenderer(cfg.Default, systems.DrawForeground)
	ecs.AddRenderer(cfg.Overlay, systems.DrawFade)
	ecs.AddRenderer(cfg.Overlay, systems.DrawHUD)

	ws.ecs = ecs

	entry := archetypes.Simulation.Spawn(ecs)
	components.Simulation.SetValue(entry, components.SimulationData{
		World:    ws.world,
		Store:    ws.store,
		Watcher:  ws.watcher,
		Snapshot: ws.world.Snapshot(),
		Halted:   ws.world.Err() != nil,
	})
	components.Settings.SetValue(entry, components.SettingsData{
		ShowHitbox: cfg.Debug.ShowHitbox,
		ShowHUD:    cfg.Debug.ShowHUD,
	})
	systems.ApplySavedSettings(components.Settings.Get(entry), ws.saved)

	// Look the component up on every publish; donburi may move storage.
	ws.world.SetPublisher(core.PublisherFunc(func(s core.Snapshot) {
		components.Simulation.Get(entry).Snapshot = s
	}))
	ws.world.OnAction(func() {
		settings := components.Settings.Get(entry)
		settings.ShowHitbox = !settings.ShowHitbox
		systems.SaveCurrentSettings(settings, components.Simulation.Get(entry).Snapshot.MapID)
	})
}
