package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type builtinScene struct {
	info SceneInfo
	new  func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		info: SceneInfo{ID: "default", DisplayName: "Default", Description: "One of every primitive, mirror and glass spheres, two lights"},
		new:  NewDefaultScene,
	},
	"sphere-light": {
		info: SceneInfo{ID: "sphere-light", DisplayName: "Sphere Light", Description: "Single red sphere lit by one white light"},
		new:  NewSphereLightScene,
	},
	"occlusion": {
		info: SceneInfo{ID: "occlusion", DisplayName: "Occlusion", Description: "Two identical spheres, one hidden behind the other"},
		new:  NewOcclusionScene,
	},
	"glass": {
		info: SceneInfo{ID: "glass", DisplayName: "Glass", Description: "Transparent pane and glass sphere over a mirror floor"},
		new:  NewGlassScene,
	},
}

// ListScenes returns the built-in scenes sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		scenes = append(scenes, s.info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes
}

// NewByID builds the built-in scene with the given ID
func NewByID(id string) (*Scene, error) {
	s, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return s.new(), nil
}
