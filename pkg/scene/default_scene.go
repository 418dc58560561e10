package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// mustCamera builds a camera from a literal configuration known to be valid
func mustCamera(config geometry.CameraConfig) *geometry.Camera {
	camera, err := geometry.NewCamera(config)
	if err != nil {
		panic(err)
	}
	return camera
}

// NewDefaultScene creates a showcase scene with one of every primitive,
// a mirror sphere, a glass sphere and two lights
func NewDefaultScene() *Scene {
	camera := mustCamera(geometry.CameraConfig{
		Position:  core.NewVec3(0, 3, 10),
		Direction: core.NewVec3(0, -2, -10),
		Up:        core.NewVec3(0, 1, 0),
		Width:     3.2,
		Height:    1.8, // 16:9 aspect ratio
		FOV:       60,
	})

	s := New(camera)
	s.SamplingConfig = SamplingConfig{
		Width:           640,
		Height:          360,
		SamplesPerPixel: 4,
		MaxDepth:        6,
	}

	// Create materials
	ground := material.NewDiffuse(core.NewColor(0.6, 0.6, 0.55))
	red := material.NewDiffuse(core.NewColor(0.8, 0.15, 0.1))
	blue := material.NewDiffuse(core.NewColor(0.1, 0.2, 0.7))

	mirror := material.NewDiffuse(core.NewColor(0.9, 0.9, 0.9))
	_ = mirror.SetMetalness(0.95)
	_ = mirror.SetRoughness(0.05)

	glass := material.NewDiffuse(core.NewColorAlpha(0.9, 0.95, 1.0, 0.2))
	_ = glass.SetTransmission(0.8)
	_ = glass.SetRefractiveIndex(1.5)
	_ = glass.SetRoughness(0)

	lamp := material.New()
	lamp.SetEmissive(core.NewColor(1.0, 0.85, 0.4))
	_ = lamp.SetEmissiveIntensity(0.8)

	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), ground)
	s.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1), red)
	s.Add(geometry.NewSphere(core.NewVec3(-2.3, 1, -1), 1), mirror)
	s.Add(geometry.NewSphere(core.NewVec3(2.2, 0.8, 0.8), 0.8), glass)
	s.Add(geometry.NewBox(core.NewVec3(3.5, 0.6, -2), core.NewVec3(0.6, 0.6, 0.6), core.NewVec3(0, math.Pi/6, 0)), blue)
	s.Add(geometry.NewCircle(core.NewVec3(-3.5, 2.5, -3), core.NewVec3(0.3, 0, 1), 0.7), lamp)
	// No material: renders in the rectangle's default color
	s.Add(geometry.NewRectangle(core.NewVec3(-1.5, 0, -4), core.NewVec3(3, 0, 0), core.NewVec3(0, 2.5, 0)), nil)

	s.AddPointLight(core.NewVec3(4, 8, 6), core.White, 1.0)
	s.AddPointLight(core.NewVec3(-6, 5, 2), core.NewColor(0.6, 0.7, 1.0), 0.6)

	return s
}

// NewSphereLightScene is a single opaque red sphere at the origin (radius 4) lit
// by one white light, seen from (-10,-10,-5)
func NewSphereLightScene() *Scene {
	position := core.NewVec3(-10, -10, -5)
	camera := mustCamera(geometry.CameraConfig{
		Position:  position,
		Direction: core.Vec3{}.Subtract(position),
		Up:        core.NewVec3(0, 0, 1),
		Width:     4,
		Height:    4,
		FOV:       60,
	})

	s := New(camera)
	s.SamplingConfig.Width = 200
	s.SamplingConfig.Height = 200

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 4), material.NewDiffuse(core.Red))
	s.AddPointLight(core.NewVec3(0, 8, -2), core.White, 2.0)

	return s
}

// NewOcclusionScene places two identical spheres on the view axis, one behind the other
func NewOcclusionScene() *Scene {
	camera := mustCamera(geometry.DefaultCameraConfig())

	s := New(camera)
	s.SamplingConfig.Width = 200
	s.SamplingConfig.Height = 200

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -10), 1.5), material.NewDiffuse(core.Blue))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -2), 1.5), material.NewDiffuse(core.Red))
	s.AddPointLight(core.NewVec3(0, 5, 8), core.White, 1.0)

	return s
}

// NewGlassScene shows a fully transparent pane and a glass sphere in front of an
// opaque sphere, standing on a mirror floor
func NewGlassScene() *Scene {
	camera := mustCamera(geometry.CameraConfig{
		Position:  core.NewVec3(0, 1.5, 6),
		Direction: core.NewVec3(0, -0.3, -1),
		Up:        core.NewVec3(0, 1, 0),
		Width:     4,
		Height:    3,
		FOV:       70,
	})

	s := New(camera)
	s.SamplingConfig = SamplingConfig{
		Width:           480,
		Height:          360,
		SamplesPerPixel: 8,
		MaxDepth:        8,
	}

	floor := material.NewDiffuse(core.NewColor(0.3, 0.3, 0.35))
	_ = floor.SetMetalness(0.8)
	_ = floor.SetRoughness(0.3)

	pane := material.NewDiffuse(core.NewColorAlpha(1, 1, 1, 0))

	glass := material.NewDiffuse(core.NewColorAlpha(0.95, 1, 0.95, 0.3))
	_ = glass.SetRefractiveIndex(1.33)

	s.Add(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), floor)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0.5, -3), 1.5), material.NewDiffuse(core.NewColor(0.9, 0.5, 0.1)))
	s.Add(geometry.NewRectangle(core.NewVec3(-2, -1, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 3, 0)), pane)
	s.Add(geometry.NewSphere(core.NewVec3(1.8, -0.3, 1), 0.7), glass)

	s.AddPointLight(core.NewVec3(3, 6, 4), core.White, 1.0)
	s.AddPointLight(core.NewVec3(-4, 3, -1), core.NewColor(1, 0.9, 0.8), 0.5)

	return s
}
