package willowxr

import "math"

// HitShape is a ray-testable region in a node's local coordinates.
type HitShape interface {
	// IntersectRay returns the smallest t >= 0 at which origin + t*dir lies
	// on or inside the shape. dir need not be unit length. A ray starting
	// inside the shape reports t = 0.
	IntersectRay(origin, dir Vec3) (float64, bool)
}

// --- Built-in HitShape types ---

// HitBox is an axis-aligned box in local coordinates.
type HitBox struct {
	Min, Max Vec3
}

// NewHitCube returns a box of the given edge length centered on the origin.
func NewHitCube(size float64) HitBox {
	h := size / 2
	return HitBox{Min: Vec3{-h, -h, -h}, Max: Vec3{h, h, h}}
}

// Contains reports whether p lies inside the box. Points on a face are inside.
func (b HitBox) Contains(p Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// IntersectRay uses the slab method.
func (b HitBox) IntersectRay(origin, dir Vec3) (float64, bool) {
	tmin := 0.0
	tmax := math.Inf(1)
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			// Parallel to this slab: must already be between the planes.
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// HitSphere is a sphere in local coordinates.
type HitSphere struct {
	Center Vec3
	Radius float64
}

// Contains reports whether p lies inside or on the sphere.
func (s HitSphere) Contains(p Vec3) bool {
	d := p.Sub(s.Center)
	return d.Dot(d) <= s.Radius*s.Radius
}

// IntersectRay solves |origin + t*dir - Center|^2 = Radius^2 for the nearest
// non-negative t.
func (s HitSphere) IntersectRay(origin, dir Vec3) (float64, bool) {
	oc := origin.Sub(s.Center)
	a := dir.Dot(dir)
	if a == 0 {
		return 0, false
	}
	halfB := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	if c <= 0 {
		return 0, true
	}
	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, false
	}
	t := (-halfB - math.Sqrt(disc)) / a
	if t < 0 {
		return 0, false
	}
	return t, true
}
