package material

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// CheckerTexture is a solid 3D checker driven by the sign of a product of sines
type CheckerTexture struct {
	Odd         Texture
	Even        Texture
	Multipliers core.Vec3 // Per-axis frequency
	Scale       float64   // Overall frequency, 1 when zero
}

// NewCheckerTexture creates a checker with the given per-axis multipliers and unit scale
func NewCheckerTexture(odd, even Texture, multipliers core.Vec3) *CheckerTexture {
	return &CheckerTexture{Odd: odd, Even: even, Multipliers: multipliers, Scale: 1}
}

// Evaluate picks Odd where the sine product is negative and Even elsewhere
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	sines := math.Sin(scale*c.Multipliers.X*point.X) *
		math.Sin(scale*c.Multipliers.Y*point.Y) *
		math.Sin(scale*c.Multipliers.Z*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}

// UVChecker is a checkerboard in surface coordinates
type UVChecker struct {
	Odd   Texture
	Even  Texture
	MultU float64 // Checks along u
	MultV float64 // Checks along v
}

// NewUVChecker creates a UV checkerboard
func NewUVChecker(odd, even Texture, multU, multV float64) *UVChecker {
	return &UVChecker{Odd: odd, Even: even, MultU: multU, MultV: multV}
}

// Evaluate picks Odd when floor(u·MultU) + floor(v·MultV) is odd
func (c *UVChecker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	cell := math.Floor(uv.X*c.MultU) + math.Floor(uv.Y*c.MultV)
	if math.Mod(math.Abs(cell), 2) == 1 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}
