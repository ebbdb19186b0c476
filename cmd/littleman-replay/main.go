// Command littleman-replay runs a scripted input sequence through the
// movement simulation without a window and prints every state change.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/adamcogen/littleman/assets"
	"github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/core"
	"github.com/adamcogen/littleman/shared/leveldata"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in configuration")
	mapDir := flag.String("maps", "", "read maps from this directory instead of the embedded set")
	start := flag.Int("start", 0, "map to start on when the script names none")
	scriptPath := flag.String("script", "", "input script (YAML)")
	flag.Parse()

	if *scriptPath == "" {
		log.Fatal("-script is required")
	}
	if *configPath != "" {
		if err := config.LoadOverrides(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *start == 0 {
		*start = config.C.StartMap
	}

	data, err := os.ReadFile(*scriptPath)
	if err != nil {
		log.Fatalf("Failed to read script: %v", err)
	}
	script, err := ParseScript(data)
	if err != nil {
		log.Fatalf("Failed to parse script: %v", err)
	}

	dir := *mapDir
	if dir == "" {
		dir = config.C.MapDir
	}
	world, err := core.NewWorld(leveldata.NewStore(assets.MustMaps(dir)), config.Physics)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}
	if _, err := Run(world, script, *start, os.Stdout); err != nil {
		log.Fatalf("Replay stopped: %v", err)
	}
}
