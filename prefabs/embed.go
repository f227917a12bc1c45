package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// dir is the on-disk override directory. Files found there shadow the
// embedded copies so prefabs can be edited without rebuilding.
var dir = "prefabs"

// SetDir changes the override directory. An empty dir disables disk lookups.
// It must be called before any loading starts.
func SetDir(d string) {
	dir = d
}

// Dir returns the override directory.
func Dir() string {
	return dir
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	data, err := ScriptsFS.ReadFile(clean)
	if err != nil {
		return nil, eris.Wrapf(err, "prefabs: script %s", clean)
	}
	return data, nil
}

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, ok := readDisk(clean); ok {
		return data, nil
	}
	data, err := PrefabsFS.ReadFile(clean)
	if err != nil {
		return nil, eris.Wrapf(err, "prefabs: prefab %s", clean)
	}
	return data, nil
}

// List returns the names of every embedded prefab.
func List() ([]string, error) {
	entries, err := PrefabsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isSpecFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func readDisk(clean string) ([]byte, bool) {
	if dir == "" || clean == "" {
		return nil, false
	}
	data, err := os.ReadFile(diskPath(clean))
	if err != nil {
		return nil, false
	}
	return data, true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join(dir, filepath.FromSlash(clean))
}
