package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned for a built-in scene name that does not exist
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a scene that can be rendered
type SceneInfo struct {
	ID          string // Name passed to -scene
	DisplayName string
	Description string
	Type        string // "builtin" or "json"
	FilePath    string // Scene file (json type only)
}

type builtinScene struct {
	info SceneInfo
	new  func() (*Scene, error)
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Random sphere field around three large spheres", Type: "builtin"}, NewDefaultScene},
	{SceneInfo{ID: "cornell", DisplayName: "Cornell Box", Description: "Cornell box with two boxes and an area light", Type: "builtin"}, NewCornellScene},
	{SceneInfo{ID: "implicit", DisplayName: "Implicit Gallery", Description: "Implicit surfaces and a glass torus", Type: "builtin"}, NewImplicitScene},
	{SceneInfo{ID: "textures", DisplayName: "Texture Showcase", Description: "Every texture on the different shapes", Type: "builtin"}, NewTextureScene},
}

// NewBuiltin creates the built-in scene with the given ID
func NewBuiltin(id string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.new()
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// ListBuiltins returns the built-in scenes in display order
func ListBuiltins() []SceneInfo {
	infos := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		infos[i] = b.info
	}
	return infos
}

// sceneFileExtensions are the scene file suffixes the loaders understand
var sceneFileExtensions = []string{".json", ".json.gz", ".json.zst"}

// IsSceneFile reports whether path has a scene file extension
func IsSceneFile(path string) bool {
	_, ok := trimSceneExt(filepath.Base(path))
	return ok
}

// ListSceneFiles scans dir for scene files. A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []SceneInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := trimSceneExt(entry.Name())
		if !ok {
			continue
		}
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Type:        "json",
			FilePath:    filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// SceneID names a scene for output paths: the file name without its scene extension
// for scene files, otherwise the built-in ID unchanged
func SceneID(nameOrPath string) string {
	if id, ok := trimSceneExt(filepath.Base(nameOrPath)); ok {
		return id
	}
	return nameOrPath
}

func trimSceneExt(filename string) (string, bool) {
	lower := strings.ToLower(filename)
	for _, ext := range sceneFileExtensions {
		if strings.HasSuffix(lower, ext) && len(filename) > len(ext) {
			return filename[:len(filename)-len(ext)], true
		}
	}
	return "", false
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
