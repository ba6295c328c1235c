package willowxr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// computeLocalTransform computes the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Scale -> Rotate -> Translate(Position)
func computeLocalTransform(n *Node) mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Rotation.Normalize().Mat4()
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// updateWorldTransform recomputes a node's cached world matrix.
// parentRecomputed indicates whether the parent was recomputed this pass,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parentTransform.Mul4(computeLocalTransform(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// RefreshTransforms recomputes the cached world matrices of root and its
// subtree. Root's own parent chain is resolved first.
func RefreshTransforms(root *Node) {
	parent := mgl64.Ident4()
	if root.Parent != nil {
		parent = root.Parent.WorldTransform()
	}
	updateWorldTransform(root, parent, true)
}

// WorldTransform returns the node's current world matrix, resolved through
// the full parent chain at call time. The result is also cached on the node.
func (n *Node) WorldTransform() mgl64.Mat4 {
	m := computeLocalTransform(n)
	for p := n.Parent; p != nil; p = p.Parent {
		m = computeLocalTransform(p).Mul4(m)
	}
	n.worldTransform = m
	return m
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() Vec3 {
	return n.WorldTransform().Col(3).Vec3()
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = Vec3{x, y, z}
	markSubtreeDirty(n)
}

// SetRotation sets the node's local rotation and marks it dirty.
func (n *Node) SetRotation(q Quat) {
	n.Rotation = q
	markSubtreeDirty(n)
}

// SetScale sets the node's local scale and marks it dirty.
func (n *Node) SetScale(sx, sy, sz float64) {
	n.Scale = Vec3{sx, sy, sz}
	markSubtreeDirty(n)
}

// SetUniformScale sets all three scale components to s.
func (n *Node) SetUniformScale(s float64) {
	n.SetScale(s, s, s)
}

// MarkDirty marks the node's transform as dirty. Useful after bulk-setting
// fields directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(p Vec3) Vec3 {
	inv := n.WorldTransform().Inv()
	return mgl64.TransformCoordinate(p, inv)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldTransform())
}

// --- Reparenting ---

// Attach makes child a child of n while keeping child's world transform
// unchanged, so nothing visibly moves at the moment of reparenting.
// Panics under the same conditions as AddChild.
func (n *Node) Attach(child *Node) {
	if child == nil {
		panic("willowxr: cannot attach nil child")
	}
	childWorld := child.WorldTransform()
	parentWorld := n.WorldTransform()
	local := childWorld
	if det := parentWorld.Det(); det > 1e-12 || det < -1e-12 {
		local = parentWorld.Inv().Mul4(childWorld)
	}
	n.AddChild(child)
	child.Position, child.Rotation, child.Scale = decomposeTransform(local)
	markSubtreeDirty(child)
}

// decomposeTransform splits an affine matrix into translation, rotation and
// scale. Shear is discarded.
func decomposeTransform(m mgl64.Mat4) (Vec3, Quat, Vec3) {
	pos := m.Col(3).Vec3()

	c0 := m.Col(0).Vec3()
	c1 := m.Col(1).Vec3()
	c2 := m.Col(2).Vec3()
	sx, sy, sz := c0.Len(), c1.Len(), c2.Len()
	if m.Mat3().Det() < 0 {
		sx = -sx
	}
	if sx == 0 || sy == 0 || sz == 0 || math.IsNaN(sx+sy+sz) {
		return pos, mgl64.QuatIdent(), Vec3{sx, sy, sz}
	}

	c0 = c0.Mul(1 / sx)
	c1 = c1.Mul(1 / sy)
	c2 = c2.Mul(1 / sz)
	rot := mgl64.Mat4FromCols(c0.Vec4(0), c1.Vec4(0), c2.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	q := mgl64.Mat4ToQuat(rot).Normalize()
	return pos, q, Vec3{sx, sy, sz}
}
