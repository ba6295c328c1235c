package willowxr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line in world space. Direction is unit length for rays built
// with NewRay or RayFromTransform, so intersection parameters are distances.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay returns a ray with a normalized direction. A zero direction yields an
// invalid ray (see Valid) rather than a NaN one.
func NewRay(origin, direction Vec3) Ray {
	l := direction.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Ray{Origin: origin}
	}
	return Ray{Origin: origin, Direction: direction.Mul(1 / l)}
}

// RayFromTransform returns the pointing ray of a pose matrix: origin at the
// matrix translation, direction along the rotated local Forward axis. Scale
// and shear do not affect the direction.
func RayFromTransform(m mgl64.Mat4) Ray {
	pos, rot, _ := decomposeTransform(m)
	return NewRay(pos, rot.Rotate(Forward))
}

// Valid reports whether the ray can be intersected: finite origin and a
// non-zero, finite direction.
func (r Ray) Valid() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(r.Origin[i]) || math.IsInf(r.Origin[i], 0) ||
			math.IsNaN(r.Direction[i]) || math.IsInf(r.Direction[i], 0) {
			return false
		}
	}
	return r.Direction.Len() > 0
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// toLocal maps the ray into the space of a node whose inverse world matrix is
// inv. The local direction stays unnormalized, so a local hit parameter equals
// the world-space distance along r.
func (r Ray) toLocal(inv mgl64.Mat4) (origin, dir Vec3) {
	origin = mgl64.TransformCoordinate(r.Origin, inv)
	dir = mgl64.TransformNormal(r.Direction, inv)
	return origin, dir
}
