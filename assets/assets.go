package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/adamcogen/littleman/shared/leveldata"
)

var (
	//go:embed all:maps
	assetFS embed.FS
)

// MustMaps returns the map file system: dir on disk when set, otherwise the
// maps compiled into the binary.
func MustMaps(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(assetFS, "maps")
	if err != nil {
		panic(fmt.Sprintf("Failed to open embedded maps: %v", err))
	}
	return sub
}

// MapIDs lists the map ids present in fsys in ascending order.
func MapIDs(fsys fs.FS) ([]int, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read map directory: %w", err)
	}
	seen := make(map[int]bool)
	var ids []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := leveldata.MapIDFromPath(entry.Name()); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}
