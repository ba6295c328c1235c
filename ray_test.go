package willowxr

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewRayNormalizes(t *testing.T) {
	r := NewRay(Vec3{1, 2, 3}, Vec3{0, 0, -4})
	assertVec(t, "Direction", r.Direction, Vec3{0, 0, -1})
	if !r.Valid() {
		t.Error("ray should be valid")
	}
	assertVec(t, "At(2)", r.At(2), Vec3{1, 2, 1})
}

func TestRayValid(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		want bool
	}{
		{"zero direction", NewRay(Vec3{}, Vec3{}), false},
		{"nan origin", Ray{Origin: Vec3{math.NaN(), 0, 0}, Direction: Forward}, false},
		{"inf direction", Ray{Direction: Vec3{math.Inf(1), 0, 0}}, false},
		{"nan direction via NewRay", NewRay(Vec3{}, Vec3{math.NaN(), 0, 0}), false},
		{"forward", NewRay(Vec3{}, Forward), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ray.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRayFromTransform(t *testing.T) {
	n := NewNode("hand")
	n.SetPosition(0, 1.5, 0)
	n.SetRotation(mgl64.QuatRotate(math.Pi/2, Vec3{0, 1, 0}))
	n.SetUniformScale(3)

	r := RayFromTransform(n.WorldTransform())
	assertVec(t, "Origin", r.Origin, Vec3{0, 1.5, 0})
	// Forward (-Z) yawed left by 90 degrees points along -X; scale is ignored.
	assertVec(t, "Direction", r.Direction, Vec3{-1, 0, 0})
}

func TestRayToLocalKeepsWorldDistance(t *testing.T) {
	n := NewNode("box")
	n.SetPosition(0, 0, -10)
	n.SetUniformScale(4)

	r := NewRay(Vec3{}, Forward)
	o, d := r.toLocal(n.WorldTransform().Inv())
	// A local hit parameter of 6 must land 6 world units along the ray.
	local := o.Add(d.Mul(6))
	assertVec(t, "world", n.LocalToWorld(local), r.At(6))
}

func TestPoseFromDirection(t *testing.T) {
	p := PoseFromDirection(Vec3{1, 0, 0}, Vec3{0, -2, 0})
	assertVec(t, "Direction", p.Direction(), Vec3{0, -1, 0})

	p = PoseFromDirection(Vec3{}, Vec3{})
	assertNear(t, "W", p.Orientation.W, 1)
}
