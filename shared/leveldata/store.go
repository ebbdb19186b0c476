package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"sync"
)

// Store resolves map ids to files in a file system and caches the decoded
// maps. A map id N is read from "N.txt", or "N.tmx" when no text file
// exists. Store is safe for concurrent use.
type Store struct {
	fsys fs.FS

	mu   sync.Mutex
	maps map[int]*MapData
}

func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys, maps: make(map[int]*MapData)}
}

// Map returns the decoded map for id, loading it on first use.
func (s *Store) Map(id int) (*MapData, error) {
	s.mu.Lock()
	m, ok := s.maps[id]
	s.mu.Unlock()
	if ok {
		return m, nil
	}

	m, err := s.load(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.maps[id] = m
	s.mu.Unlock()
	return m, nil
}

// Invalidate drops the cached copy of id so the next Map call re-reads it.
func (s *Store) Invalidate(id int) {
	s.mu.Lock()
	delete(s.maps, id)
	s.mu.Unlock()
}

// Preload loads start and every map reachable from it through edge or
// in-map warps, returning how many maps loaded. It stops at the first map
// that fails to load.
func (s *Store) Preload(start int) (int, error) {
	seen := map[int]bool{start: true}
	queue := []int{start}
	loaded := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		m, err := s.Map(id)
		if err != nil {
			return loaded, err
		}
		loaded++
		for _, next := range m.Neighbors() {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return loaded, nil
}

func (s *Store) load(id int) (*MapData, error) {
	if id < 0 {
		return nil, &MapLoadError{MapID: id, Err: errors.New("negative map id")}
	}
	txt := strconv.Itoa(id) + ".txt"
	f, err := s.fsys.Open(txt)
	switch {
	case err == nil:
		defer f.Close()
		m, err := decodeText(id, f)
		if err != nil {
			return nil, &MapLoadError{MapID: id, Path: txt, Err: err}
		}
		return m, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, &MapLoadError{MapID: id, Path: txt, Err: err}
	}

	tmx := strconv.Itoa(id) + ".tmx"
	if _, err := fs.Stat(s.fsys, tmx); err != nil {
		return nil, &MapLoadError{MapID: id, Path: txt, Err: fmt.Errorf("no %s or %s: %w", txt, tmx, err)}
	}
	return LoadTMX(s.fsys, tmx, id)
}

// MapIDFromPath returns the map id a map file name refers to.
func MapIDFromPath(name string) (int, bool) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := path.Ext(base)
	if ext != ".txt" && ext != ".tmx" {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSuffix(base, ext))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
