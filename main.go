package main

import (
	"flag"
	"image"
	"log"

	"github.com/adamcogen/littleman/assets"
	"github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/core"
	"github.com/adamcogen/littleman/fonts"
	"github.com/adamcogen/littleman/scenes"
	"github.com/adamcogen/littleman/shared/leveldata"
	"github.com/adamcogen/littleman/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
	Size() (int, int)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout keeps the logical screen at the current map's frame size; the
// window scales it.
func (g *Game) Layout(width, height int) (int, int) {
	w, h := g.scene.Size()
	g.bounds = image.Rect(0, 0, w, h)
	return w, h
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in configuration")
	mapDir := flag.String("maps", "", "read maps from this directory instead of the embedded set")
	start := flag.Int("start", 0, "map to start on (default: last played, then the configured start map)")
	scale := flag.Int("scale", 0, "window scale factor")
	watch := flag.Bool("watch", false, "reload maps edited on disk (needs -maps)")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadOverrides(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *mapDir != "" {
		config.C.MapDir = *mapDir
	}
	if *scale > 0 {
		config.C.Scale = *scale
	}
	if *watch {
		config.C.Watch = true
	}

	if err := fonts.LoadDefaults(config.Render.FontSize); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	saved, _ := systems.LoadSettings()

	store := leveldata.NewStore(assets.MustMaps(config.C.MapDir))
	world, err := core.NewWorld(store, config.Physics)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}

	startMap := config.C.StartMap
	switch {
	case *start > 0:
		startMap = *start
	case saved != nil && saved.LastMap > 0:
		startMap = saved.LastMap
	}
	if n, err := store.Preload(startMap); err != nil {
		log.Printf("Warning: preloaded %d maps: %v", n, err)
	}
	if err := world.Spawn(startMap); err != nil {
		if startMap == config.C.StartMap {
			log.Fatalf("Failed to start on map %d: %v", startMap, err)
		}
		log.Printf("Warning: could not resume on map %d, starting over: %v", startMap, err)
		if err := world.Spawn(config.C.StartMap); err != nil {
			log.Fatalf("Failed to start on map %d: %v", config.C.StartMap, err)
		}
	}

	var watcher *leveldata.Watcher
	if config.C.Watch {
		if config.C.MapDir == "" {
			log.Printf("Warning: -watch needs a map directory, ignoring")
		} else if watcher, err = leveldata.NewWatcher(config.C.MapDir); err != nil {
			log.Printf("Warning: could not watch %s: %v", config.C.MapDir, err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	snap := world.Snapshot()
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowSize(snap.Width*config.C.Scale, snap.Height*config.C.Scale)

	g := &Game{scene: scenes.NewWorldScene(world, store, watcher, saved)}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
