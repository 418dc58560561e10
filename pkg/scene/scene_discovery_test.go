package scene

import (
	"testing"
)

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(builtinScenes) {
		t.Fatalf("Expected %d scenes, got %d", len(builtinScenes), len(scenes))
	}

	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].DisplayName > scenes[i].DisplayName {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].DisplayName, scenes[i].DisplayName)
		}
	}
}

func TestNewByID(t *testing.T) {
	for _, info := range ListScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewByID(info.ID)
			if err != nil {
				t.Fatalf("NewByID(%q) failed: %v", info.ID, err)
			}
			if s.Camera == nil {
				t.Error("Expected scene to have a camera")
			}
			if len(s.Shapes) == 0 {
				t.Error("Expected scene to have shapes")
			}
			if len(s.Lights) == 0 {
				t.Error("Expected scene to have lights")
			}

			// Preset render sizes must match the camera aspect ratio
			aspect := float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
			if diff := aspect - s.Camera.AspectRatio(); diff > 1e-6 || diff < -1e-6 {
				t.Errorf("Expected image aspect %v to match camera aspect %v", aspect, s.Camera.AspectRatio())
			}
			if s.SamplingConfig.SamplesPerPixel%4 != 0 {
				t.Errorf("Expected samples per pixel to be a multiple of 4, got %d", s.SamplingConfig.SamplesPerPixel)
			}
		})
	}

	if _, err := NewByID("cornell"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}
