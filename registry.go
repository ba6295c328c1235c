package willowxr

import (
	"fmt"

	"cogentcore.org/core/base/keylist"
)

// Registry is the authoritative set of interactive objects. Membership is
// keyed by node identity and is independent of where a node currently sits
// in the transform hierarchy: attaching an object to a controller does not
// change its membership or its position in All.
type Registry struct {
	list   keylist.List[uint32, *Node]
	holder *Node

	// Query scratch buffers, reused across frames.
	hits  []Intersection
	stack []walkEntry
}

// NewRegistry creates an empty registry with its own neutral holding node.
// Add Holder() to the scene so that free candidates are drawn.
func NewRegistry() *Registry {
	return &Registry{holder: NewNode("candidates")}
}

// Holder returns the neutral holding node that free candidates are parented
// under when they are not attached to a controller.
func (r *Registry) Holder() *Node {
	return r.holder
}

// Register adds n to the registry. A node without a parent is placed under
// Holder; a node that already has a parent stays where it is.
// Registering a second node with an existing identity fails with
// ErrDuplicateCandidate and leaves the existing entry in place.
func (r *Registry) Register(n *Node) error {
	if n == nil {
		return ErrNilObject
	}
	if n.IsDisposed() {
		return fmt.Errorf("register %q: %w", n.Name, ErrDisposedObject)
	}
	if err := r.list.Add(n.ID, n); err != nil {
		return fmt.Errorf("register %q (id %d): %w", n.Name, n.ID, ErrDuplicateCandidate)
	}
	if n.Parent == nil {
		r.holder.AddChild(n)
	}
	return nil
}

// Unregister removes n from the registry. The node's place in the hierarchy
// is not changed. Returns false if n was not registered.
func (r *Registry) Unregister(n *Node) bool {
	if n == nil {
		return false
	}
	if v, ok := r.list.AtTry(n.ID); ok && v == n {
		return r.list.DeleteByKey(n.ID)
	}
	// Disposed nodes lose their ID; fall back to a pointer scan.
	for i, v := range r.list.Values {
		if v == n {
			r.list.DeleteByIndex(i, i+1)
			return true
		}
	}
	return false
}

// Contains reports whether n is registered.
func (r *Registry) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	v, ok := r.list.AtTry(n.ID)
	return ok && v == n
}

// All returns the registered nodes in registration order. The returned slice
// MUST NOT be mutated by the caller.
func (r *Registry) All() []*Node {
	return r.list.Values
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return r.list.Len()
}

// order returns n's registration index, or -1.
func (r *Registry) order(n *Node) int {
	if n == nil {
		return -1
	}
	return r.list.IndexByKey(n.ID)
}

// ResolveCandidate walks the parent chain from hit (inclusive) to the first
// registered node. Returns nil when hit belongs to non-interactive scenery.
func (r *Registry) ResolveCandidate(hit *Node) *Node {
	for p := hit; p != nil; p = p.Parent {
		if r.Contains(p) {
			return p
		}
	}
	return nil
}
