package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name is not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a fresh built-in scene
type Builder func(cameraOverrides ...geometry.CameraConfig) *Scene

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier
	Name        string `json:"name"`               // Scene name
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the scene file (file type only)
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Scenes []SceneInfo `json:"scenes"`
}

type builtIn struct {
	build       Builder
	displayName string
	description string
}

var builtIns = map[string]builtIn{
	"default": {
		build:       NewDefaultScene,
		displayName: "Default Scene",
		description: "Diffuse sphere on a ground sphere",
	},
	"materials": {
		build:       NewMaterialsScene,
		displayName: "Materials",
		description: "Glass bubble, diffuse and fuzzy metal spheres",
	},
	"defocus": {
		build:       NewDefocusScene,
		displayName: "Defocus Blur",
		description: "Materials scene with a wide aperture",
	},
	"random": {
		build:       NewRandomScene,
		displayName: "Random Spheres",
		description: "Grid of randomly coloured small spheres around three large ones",
	},
}

// ByName builds the built-in scene registered under name
func ByName(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	entry, ok := builtIns[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return entry.build(cameraOverrides...), nil
}

// Names returns the registered built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtIns))
	for name := range builtIns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListSceneFiles scans the scenes directory and returns discovered YAML scene files
func ListSceneFiles(scenesDir string) ([]SceneInfo, error) {
	if _, err := os.Stat(scenesDir); err != nil {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	pattern := filepath.Join(scenesDir, "*.yaml")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("while scanning scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneFileMetadata(filePath)
		if err != nil {
			return nil, fmt.Errorf("while reading metadata for %s: %w", filePath, err)
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneFileMetadata extracts metadata from the header comments of a scene file
func ParseSceneFileMetadata(filePath string) (SceneInfo, error) {
	// Extract filename without extension for fallback values
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          "file:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Type:        "file",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if strings.HasPrefix(content, "Scene:") {
			sceneInfo.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
			sceneInfo.DisplayName = sceneInfo.Name
		} else if strings.HasPrefix(content, "Description:") {
			sceneInfo.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		}
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by any scene files in scenesDir
func ListAllScenes(scenesDir string) (ScenesResponse, error) {
	var response ScenesResponse

	for _, name := range Names() {
		entry := builtIns[name]
		response.Scenes = append(response.Scenes, SceneInfo{
			ID:          name,
			Name:        name,
			DisplayName: entry.displayName,
			Description: entry.description,
			Type:        "builtin",
		})
	}

	files, err := ListSceneFiles(scenesDir)
	if err != nil {
		return response, err
	}
	response.Scenes = append(response.Scenes, files...)

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
