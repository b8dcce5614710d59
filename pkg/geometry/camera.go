package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// ErrDegenerateCamera is returned when the camera basis cannot be built
var ErrDegenerateCamera = errors.New("degenerate camera: direction and up must be non-zero and not parallel")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position    core.Vec3 // Eye position
	Direction   core.Vec3 // Viewing direction, need not be unit length
	Up          core.Vec3 // Approximate up direction
	VFov        float64   // Vertical field of view in degrees
	FocalLength float64   // Distance to the image plane, 1 when zero
	AspectRatio float64   // Width / height, 1 when zero
}

// Camera generates primary rays through an image plane
type Camera struct {
	config     CameraConfig
	origin     core.Vec3
	upperLeft  core.Vec3 // Image plane corner for (s, t) = (0, 0)
	horizontal core.Vec3 // Full viewport width, pointing right
	vertical   core.Vec3 // Full viewport height, pointing down
}

// NewCamera creates a pinhole camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.FocalLength == 0 {
		config.FocalLength = 1
	}
	if config.AspectRatio == 0 {
		config.AspectRatio = 1
	}

	forward := config.Direction.Normalize()
	right := forward.Cross(config.Up).Normalize()
	if forward.NearZero() || right.NearZero() {
		return nil, ErrDegenerateCamera
	}
	up := right.Cross(forward)

	viewportHeight := 2 * math.Tan(config.VFov*math.Pi/360) * config.FocalLength
	viewportWidth := viewportHeight * config.AspectRatio

	horizontal := right.Multiply(viewportWidth)
	vertical := up.Multiply(-viewportHeight)
	center := config.Position.Add(forward.Multiply(config.FocalLength))
	upperLeft := center.Subtract(horizontal.Multiply(0.5)).Subtract(vertical.Multiply(0.5))

	return &Camera{
		config:     config,
		origin:     config.Position,
		upperLeft:  upperLeft,
		horizontal: horizontal,
		vertical:   vertical,
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0, 0) is the top-left corner of the image, s grows right and t grows down.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.upperLeft.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Config returns the configuration the camera was built from, with defaults applied
func (c *Camera) Config() CameraConfig {
	return c.config
}
