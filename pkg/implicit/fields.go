package implicit

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// Sphere is the field |p|² − r²
type Sphere struct {
	Radius float64
}

// Value evaluates the field at p
func (s Sphere) Value(p core.Vec3) float64 {
	return p.LengthSquared() - s.Radius*s.Radius
}

// Gradient returns the analytic gradient at p
func (s Sphere) Gradient(p core.Vec3) core.Vec3 {
	return p.Multiply(2)
}

// Bounds returns the cube of half-size Radius
func (s Sphere) Bounds() core.AABB {
	return cube(s.Radius)
}

// Torus is a ring around the local Z axis with major radius Radius and tube radius
// TubeRadius: (|p|² + R² − r²)² − 4R²(x² + y²)
type Torus struct {
	Radius     float64
	TubeRadius float64
}

// Value evaluates the field at p
func (t Torus) Value(p core.Vec3) float64 {
	r2 := t.Radius * t.Radius
	s := p.LengthSquared() + r2 - t.TubeRadius*t.TubeRadius
	return s*s - 4*r2*(p.X*p.X+p.Y*p.Y)
}

// Gradient returns the analytic gradient at p
func (t Torus) Gradient(p core.Vec3) core.Vec3 {
	r2 := t.Radius * t.Radius
	s := p.LengthSquared() + r2 - t.TubeRadius*t.TubeRadius
	return core.NewVec3(
		4*s*p.X-8*r2*p.X,
		4*s*p.Y-8*r2*p.Y,
		4*s*p.Z,
	)
}

// Bounds returns the local box enclosing the surface
func (t Torus) Bounds() core.AABB {
	a := t.Radius + t.TubeRadius
	return core.NewAABB(core.NewVec3(-a, -a, -t.TubeRadius), core.NewVec3(a, a, t.TubeRadius))
}

// UV maps the angle around the ring to u and the angle around the tube to v
func (t Torus) UV(p core.Vec3) core.Vec2 {
	ring := math.Atan2(p.Y, p.X) + math.Pi
	tube := math.Atan2(p.Z, math.Hypot(p.X, p.Y)-t.Radius) + math.Pi
	return core.NewVec2(ring/(2*math.Pi), tube/(2*math.Pi))
}

// Heart is the sextic heart surface (x² + 9/4y² + z² − 1)³ − x²z³ − 9/80y²z³
type Heart struct{}

const heartRadius = 1.45

// Value evaluates the field at p
func (Heart) Value(p core.Vec3) float64 {
	x2, y2, z2 := p.X*p.X, p.Y*p.Y, p.Z*p.Z
	z3 := z2 * p.Z
	a := x2 + 2.25*y2 + z2 - 1
	return a*a*a - x2*z3 - (9.0/80.0)*y2*z3
}

// Gradient returns the analytic gradient at p
func (Heart) Gradient(p core.Vec3) core.Vec3 {
	x2, y2, z2 := p.X*p.X, p.Y*p.Y, p.Z*p.Z
	z3 := z2 * p.Z
	a := x2 + 2.25*y2 + z2 - 1
	a3 := 3 * a * a
	return core.NewVec3(
		2*p.X*(a3-z3),
		4.5*p.Y*(a3-z3/20),
		2*p.Z*a3-3*x2*z2-(27.0/80.0)*y2*z2,
	)
}

// Bounds returns the local box enclosing the surface
func (Heart) Bounds() core.AABB {
	return core.NewAABB(
		core.NewVec3(-heartRadius, -heartRadius/2.05, -heartRadius),
		core.NewVec3(heartRadius, heartRadius/2.05, heartRadius),
	)
}

// Sine is a²(x−y−z)(x+y−z)(x−y+z)(x+y+z) + 4x²y²z²
type Sine struct {
	A            float64
	SphereRadius float64
}

// Value evaluates the field at p
func (s Sine) Value(p core.Vec3) float64 {
	return s.A*s.A*
		(p.X-p.Y-p.Z)*
		(p.X+p.Y-p.Z)*
		(p.X-p.Y+p.Z)*
		(p.X+p.Y+p.Z) +
		4*p.X*p.X*p.Y*p.Y*p.Z*p.Z
}

// Gradient returns the analytic gradient at p
func (s Sine) Gradient(p core.Vec3) core.Vec3 {
	x2, y2, z2 := p.X*p.X, p.Y*p.Y, p.Z*p.Z
	a2 := s.A * s.A
	return core.NewVec3(
		4*p.X*(a2*(x2-y2-z2)+2*y2*z2),
		8*x2*p.Y*z2-4*a2*p.Y*(x2-y2+z2),
		8*x2*y2*p.Z-4*a2*p.Z*(x2+y2-z2),
	)
}

// Bounds returns the cube of half-size SphereRadius
func (s Sine) Bounds() core.AABB {
	return cube(s.SphereRadius)
}

// Star is a(x²y² + x²z² + y²z²) + (x² + y² + z² − 1)³
type Star struct {
	A            float64
	SphereRadius float64
}

// Value evaluates the field at p
func (s Star) Value(p core.Vec3) float64 {
	x2, y2, z2 := p.X*p.X, p.Y*p.Y, p.Z*p.Z
	c := x2 + y2 + z2 - 1
	return s.A*(x2*y2+x2*z2+y2*z2) + c*c*c
}

// Gradient returns the analytic gradient at p
func (s Star) Gradient(p core.Vec3) core.Vec3 {
	x2, y2, z2 := p.X*p.X, p.Y*p.Y, p.Z*p.Z
	c := x2 + y2 + z2 - 1
	c2 := 6 * c * c
	return core.NewVec3(
		2*s.A*p.X*(y2+z2)+p.X*c2,
		2*s.A*p.Y*(x2+z2)+p.Y*c2,
		2*s.A*p.Z*(x2+y2)+p.Z*c2,
	)
}

// Bounds returns the cube of half-size SphereRadius
func (s Star) Bounds() core.AABB {
	return cube(s.SphereRadius)
}

// DupinCyclide is (|p|² + b² − d²)² − 4((ax − cd)² + b²y²)
type DupinCyclide struct {
	A, B, C, D   float64
	SphereRadius float64
}

// Value evaluates the field at p
func (d DupinCyclide) Value(p core.Vec3) float64 {
	b2 := d.B * d.B
	e := p.LengthSquared() + b2 - d.D*d.D
	f := d.A*p.X - d.C*d.D
	return e*e - 4*(f*f+b2*p.Y*p.Y)
}

// Gradient returns the analytic gradient at p
func (d DupinCyclide) Gradient(p core.Vec3) core.Vec3 {
	b2 := d.B * d.B
	e := 4 * (p.LengthSquared() + b2 - d.D*d.D)
	return core.NewVec3(
		e*p.X-8*d.A*(d.A*p.X-d.C*d.D),
		e*p.Y-8*b2*p.Y,
		e*p.Z,
	)
}

// Bounds returns the cube of half-size SphereRadius
func (d DupinCyclide) Bounds() core.AABB {
	return cube(d.SphereRadius)
}

// UV projects the local point onto the XY plane
func (d DupinCyclide) UV(p core.Vec3) core.Vec2 {
	return core.NewVec2(p.X, p.Y)
}

// HuntsSurface is 4(|p|² − 13)³ + 27(3x² + y² − 4z² − 12)²
type HuntsSurface struct {
	SphereRadius float64
}

// Value evaluates the field at p
func (h HuntsSurface) Value(p core.Vec3) float64 {
	x2, y2, z2 := p.X*p.X, p.Y*p.Y, p.Z*p.Z
	a := x2 + y2 + z2 - 13
	b := 3*x2 + y2 - 4*z2 - 12
	return 4*a*a*a + 27*b*b
}

// Gradient returns the analytic gradient at p
func (h HuntsSurface) Gradient(p core.Vec3) core.Vec3 {
	x2, y2, z2 := p.X*p.X, p.Y*p.Y, p.Z*p.Z
	a := x2 + y2 + z2 - 13
	b := 3*x2 + y2 - 4*z2 - 12
	return core.NewVec3(
		24*p.X*a*a+324*p.X*b,
		12*p.Y*(2*a*a+9*b),
		24*p.Z*(a*a-18*b),
	)
}

// Bounds returns the cube of half-size SphereRadius
func (h HuntsSurface) Bounds() core.AABB {
	return cube(h.SphereRadius)
}

// UV projects the local point onto the XY plane
func (h HuntsSurface) UV(p core.Vec3) core.Vec2 {
	return core.NewVec2(p.X, p.Y)
}

// Cushion is the quartic cushion surface
type Cushion struct {
	SphereRadius float64
}

// Value evaluates the field at p
func (c Cushion) Value(p core.Vec3) float64 {
	x2, y2, z2 := p.X*p.X, p.Y*p.Y, p.Z*p.Z
	a := x2 - p.Z
	return z2*x2 - z2*z2 - 2*p.Z*x2 + 2*p.Z*z2 + x2 - z2 - a*a -
		y2*y2 - 2*x2*y2 - y2*z2 + 2*y2*p.Z + y2
}

// Gradient returns the analytic gradient at p
func (c Cushion) Gradient(p core.Vec3) core.Vec3 {
	x2, y2, z2 := p.X*p.X, p.Y*p.Y, p.Z*p.Z
	return core.NewVec3(
		2*p.X*(-2*x2-2*y2+z2+1),
		-2*p.Y*(2*x2+2*y2+z2-2*p.Z-1),
		2*p.Z*(x2-2*z2+3*p.Z-2)-2*y2*(p.Z-1),
	)
}

// Bounds returns the cube of half-size SphereRadius
func (c Cushion) Bounds() core.AABB {
	return cube(c.SphereRadius)
}

// UV projects the local point onto the XY plane
func (c Cushion) UV(p core.Vec3) core.Vec2 {
	return core.NewVec2(p.X, p.Y)
}
