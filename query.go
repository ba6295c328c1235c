package willowxr

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Intersection is one entry of a ray query: a registered candidate and the
// nearest point at which the ray meets its subtree.
type Intersection struct {
	// Object is the registered candidate the hit is attributed to.
	Object *Node
	// Hit is the node whose HitShape was intersected; Object or a descendant.
	Hit      *Node
	Distance float64
	Point    Vec3

	order int // registration index of Object, for tie-breaking
}

type walkEntry struct {
	n           *Node
	parentWorld mgl64.Mat4
}

// QueryRay intersects ray with every registered candidate, including all of
// each candidate's descendants. Each candidate appears at most once, at its
// nearest hit. Results are nearest-first; equal distances keep registration
// order. An empty registry or an invalid ray yields an empty result.
func (r *Registry) QueryRay(ray Ray) []Intersection {
	r.hits = r.queryInto(r.hits[:0], ray)
	if len(r.hits) == 0 {
		return nil
	}
	return slices.Clone(r.hits)
}

// queryInto is QueryRay appending into buf. The frame coordinator calls it
// with a reused buffer.
func (r *Registry) queryInto(buf []Intersection, ray Ray) []Intersection {
	if !ray.Valid() || r.list.Len() == 0 {
		return buf
	}
	for i, cand := range r.list.Values {
		if cand.IsDisposed() {
			continue
		}
		parentWorld := mgl64.Ident4()
		if cand.Parent != nil {
			parentWorld = cand.Parent.WorldTransform()
		}
		if best, ok := r.nearestInSubtree(cand, parentWorld, ray); ok {
			best.order = i
			buf = append(buf, best)
		}
	}
	sortIntersections(buf)
	return buf
}

// nearestInSubtree walks cand's subtree iteratively and returns the nearest
// shape hit. Nested registered candidates are skipped: their hits belong to
// them, not to cand.
func (r *Registry) nearestInSubtree(cand *Node, parentWorld mgl64.Mat4, ray Ray) (Intersection, bool) {
	best := Intersection{Distance: math.Inf(1)}
	found := false

	r.stack = append(r.stack[:0], walkEntry{cand, parentWorld})
	for len(r.stack) > 0 {
		e := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]

		n := e.n
		if !n.Visible || (n != cand && r.Contains(n)) {
			continue
		}
		world := e.parentWorld.Mul4(computeLocalTransform(n))
		n.worldTransform = world

		if n.HitShape != nil {
			if t, ok := intersectShape(n.HitShape, world, ray); ok && t < best.Distance {
				best = Intersection{Object: cand, Hit: n, Distance: t, Point: ray.At(t)}
				found = true
			}
		}
		for _, child := range n.children {
			r.stack = append(r.stack, walkEntry{child, world})
		}
	}
	return best, found
}

// IntersectScene raycasts every node under root, not only candidates, and
// attributes each hit to its registered ancestor. Hits on non-interactive
// scenery are discarded. Results follow the QueryRay ordering rules.
func (r *Registry) IntersectScene(root *Node, ray Ray) []Intersection {
	if root == nil || !ray.Valid() {
		return nil
	}
	var out []Intersection
	parentWorld := mgl64.Ident4()
	if root.Parent != nil {
		parentWorld = root.Parent.WorldTransform()
	}
	r.stack = append(r.stack[:0], walkEntry{root, parentWorld})
	for len(r.stack) > 0 {
		e := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]

		n := e.n
		if !n.Visible {
			continue
		}
		world := e.parentWorld.Mul4(computeLocalTransform(n))
		n.worldTransform = world

		if n.HitShape != nil {
			if t, ok := intersectShape(n.HitShape, world, ray); ok {
				out = mergeHit(out, r, n, t, ray)
			}
		}
		for _, child := range n.children {
			r.stack = append(r.stack, walkEntry{child, world})
		}
	}
	sortIntersections(out)
	return out
}

// mergeHit records a hit on n at distance t, keeping only the nearest hit per
// candidate.
func mergeHit(out []Intersection, r *Registry, n *Node, t float64, ray Ray) []Intersection {
	cand := r.ResolveCandidate(n)
	if cand == nil {
		return out
	}
	for i := range out {
		if out[i].Object == cand {
			if t < out[i].Distance {
				out[i].Hit = n
				out[i].Distance = t
				out[i].Point = ray.At(t)
			}
			return out
		}
	}
	return append(out, Intersection{Object: cand, Hit: n, Distance: t, Point: ray.At(t), order: r.order(cand)})
}

// intersectShape tests shape in the local space of a node with the given
// world matrix. Degenerate (zero-scale) nodes are never hit.
func intersectShape(shape HitShape, world mgl64.Mat4, ray Ray) (float64, bool) {
	det := world.Det()
	if det > -1e-12 && det < 1e-12 {
		return 0, false
	}
	o, d := ray.toLocal(world.Inv())
	return shape.IntersectRay(o, d)
}

func sortIntersections(hits []Intersection) {
	slices.SortStableFunc(hits, func(a, b Intersection) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
}
