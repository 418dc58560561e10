package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position  core.Vec3 // Centre of the viewport
	Direction core.Vec3 // Viewing direction (need not be normalized)
	Up        core.Vec3 // Approximate up direction, must not be parallel to Direction
	Width     float64   // Viewport width in world units
	Height    float64   // Viewport height in world units
	FOV       float64   // Horizontal field of view in degrees, in (0, 180)
}

// DefaultCameraConfig returns a camera at (0,0,5) looking down -Z with a square viewport
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:  core.NewVec3(0, 0, 5),
		Direction: core.NewVec3(0, 0, -1),
		Up:        core.NewVec3(0, 1, 0),
		Width:     4,
		Height:    4,
		FOV:       60,
	}
}

// Camera owns a viewport rectangle and a field of view and derives rays from
// viewport-parametric coordinates. The derived state is rebuilt by every setter.
type Camera struct {
	config   CameraConfig
	forward  core.Vec3
	right    core.Vec3
	up       core.Vec3
	viewport *Rectangle
	apex     core.Vec3
}

// NewCamera creates a camera, rejecting degenerate configurations
func NewCamera(config CameraConfig) (*Camera, error) {
	c := &Camera{}
	if err := c.apply(config); err != nil {
		return nil, err
	}
	return c, nil
}

// apply validates config and rebuilds the viewport; c is untouched on error
func (c *Camera) apply(config CameraConfig) error {
	if !config.Position.IsFinite() {
		return fmt.Errorf("camera position %v: %w", config.Position, ErrDegenerate)
	}
	if config.Direction.IsZero() || !config.Direction.IsFinite() {
		return fmt.Errorf("camera direction %v: %w", config.Direction, ErrDegenerate)
	}
	if !isPositive(config.Width) || !isPositive(config.Height) {
		return fmt.Errorf("camera viewport %gx%g: %w", config.Width, config.Height, ErrDegenerate)
	}
	if !(config.FOV > 0 && config.FOV < 180) {
		return fmt.Errorf("camera field of view %g: %w", config.FOV, ErrDegenerate)
	}

	forward := config.Direction.Normalize()
	right := forward.Cross(config.Up)
	if right.Length() < 1e-12 || !right.IsFinite() {
		return fmt.Errorf("camera up %v is parallel to direction %v: %w", config.Up, config.Direction, ErrDegenerate)
	}
	right = right.Normalize()
	up := right.Cross(forward)

	horizontal := right.Multiply(config.Width)
	vertical := up.Multiply(config.Height)
	corner := config.Position.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	focalLength := (config.Width / 2) / math.Tan(config.FOV*math.Pi/360)

	c.config = config
	c.forward = forward
	c.right = right
	c.up = up
	c.viewport = NewRectangle(corner, horizontal, vertical)
	c.apex = config.Position.Subtract(forward.Multiply(focalLength))
	return nil
}

func isPositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// Config returns the current configuration
func (c *Camera) Config() CameraConfig { return c.config }

// SetPosition moves the viewport centre
func (c *Camera) SetPosition(position core.Vec3) error {
	config := c.config
	config.Position = position
	return c.apply(config)
}

// SetDirection changes the viewing direction
func (c *Camera) SetDirection(direction core.Vec3) error {
	config := c.config
	config.Direction = direction
	return c.apply(config)
}

// SetUp changes the approximate up vector
func (c *Camera) SetUp(up core.Vec3) error {
	config := c.config
	config.Up = up
	return c.apply(config)
}

// LookAt points the camera at target
func (c *Camera) LookAt(target core.Vec3) error {
	return c.SetDirection(target.Subtract(c.config.Position))
}

// SetDimensions changes the viewport size
func (c *Camera) SetDimensions(width, height float64) error {
	config := c.config
	config.Width = width
	config.Height = height
	return c.apply(config)
}

// SetFOV changes the horizontal field of view (degrees)
func (c *Camera) SetFOV(degrees float64) error {
	config := c.config
	config.FOV = degrees
	return c.apply(config)
}

// Position returns the viewport centre
func (c *Camera) Position() core.Vec3 { return c.config.Position }

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 { return c.forward }

// Right returns the unit vector along the viewport's horizontal edge
func (c *Camera) Right() core.Vec3 { return c.right }

// Up returns the unit vector along the viewport's vertical edge
func (c *Camera) Up() core.Vec3 { return c.up }

// Viewport returns the viewport rectangle (U = horizontal edge, V = vertical edge)
func (c *Camera) Viewport() *Rectangle { return c.viewport }

// Apex returns the perspective eye point behind the viewport
func (c *Camera) Apex() core.Vec3 { return c.apex }

// AspectRatio returns viewport width / height
func (c *Camera) AspectRatio() float64 {
	return c.config.Width / c.config.Height
}

// ViewportPoint maps viewport-parametric (u, v) to a world point.
// u grows to the right, v grows downward from the top edge, both in [0, 1].
func (c *Camera) ViewportPoint(u, v float64) core.Vec3 {
	return c.viewport.PointAt(u, 1-v)
}

// OrthographicRay starts on the viewport and travels along the viewing direction
func (c *Camera) OrthographicRay(u, v float64) core.Ray {
	return core.NewRay(c.ViewportPoint(u, v), c.forward)
}

// PerspectiveRay starts at the apex and passes through the viewport point
func (c *Camera) PerspectiveRay(u, v float64) core.Ray {
	return core.NewRay(c.apex, c.ViewportPoint(u, v).Subtract(c.apex))
}
