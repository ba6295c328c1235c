package willowxr

import (
	"errors"
	"testing"
)

func TestRegisterPlacesOrphanUnderHolder(t *testing.T) {
	r := NewRegistry()
	n := NewNode("cube")
	if err := r.Register(n); err != nil {
		t.Fatal(err)
	}
	if n.Parent != r.Holder() {
		t.Error("parentless candidate should be placed under the holder")
	}
	if !r.Contains(n) || r.Len() != 1 {
		t.Errorf("Contains = %v, Len = %d", r.Contains(n), r.Len())
	}
}

func TestRegisterKeepsExistingParent(t *testing.T) {
	r := NewRegistry()
	shelf := NewNode("shelf")
	n := NewNode("cube")
	shelf.AddChild(n)
	if err := r.Register(n); err != nil {
		t.Fatal(err)
	}
	if n.Parent != shelf {
		t.Error("candidate with a parent should stay where it is")
	}
}

func TestRegisterErrors(t *testing.T) {
	r := NewRegistry()
	n := NewNode("cube")
	if err := r.Register(n); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		node *Node
		want error
	}{
		{"nil", nil, ErrNilObject},
		{"duplicate", n, ErrDuplicateCandidate},
		{"disposed", func() *Node { d := NewNode("gone"); d.Dispose(); return d }(), ErrDisposedObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Register(tt.node); !errors.Is(err, tt.want) {
				t.Errorf("Register error = %v, want %v", err, tt.want)
			}
		})
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1 after rejected registrations", r.Len())
	}
}

func TestRegistryOrderStableAcrossReparent(t *testing.T) {
	r := NewRegistry()
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	for _, n := range []*Node{a, b, c} {
		if err := r.Register(n); err != nil {
			t.Fatal(err)
		}
	}

	hand := NewNode("hand")
	hand.Attach(a)
	r.Holder().Attach(a)

	all := r.All()
	want := []*Node{a, b, c}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, all[i].Name, want[i].Name)
		}
	}
	if !r.Contains(a) {
		t.Error("reparenting must not change membership")
	}
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	a, b := NewNode("a"), NewNode("b")
	_ = r.Register(a)
	_ = r.Register(b)

	if !r.Unregister(a) {
		t.Fatal("Unregister(a) = false")
	}
	if r.Contains(a) || r.Len() != 1 || r.All()[0] != b {
		t.Error("a should be gone, b kept")
	}
	if a.Parent != r.Holder() {
		t.Error("Unregister must not move the node")
	}
	if r.Unregister(a) {
		t.Error("second Unregister should report false")
	}
	if r.Unregister(nil) {
		t.Error("Unregister(nil) should report false")
	}
}

func TestUnregisterDisposed(t *testing.T) {
	r := NewRegistry()
	a := NewNode("a")
	_ = r.Register(a)
	a.Dispose()

	if !r.Unregister(a) {
		t.Error("disposed candidate should still be removable")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestResolveCandidate(t *testing.T) {
	r := NewRegistry()
	teddy := NewNode("teddy")
	body := NewNode("body")
	ear := NewNode("ear")
	teddy.AddChild(body)
	body.AddChild(ear)
	_ = r.Register(teddy)

	if got := r.ResolveCandidate(ear); got != teddy {
		t.Errorf("ResolveCandidate(ear) = %v, want teddy", got)
	}
	if got := r.ResolveCandidate(teddy); got != teddy {
		t.Errorf("ResolveCandidate(teddy) = %v, want teddy", got)
	}
	if got := r.ResolveCandidate(NewNode("wall")); got != nil {
		t.Errorf("ResolveCandidate(scenery) = %v, want nil", got)
	}
}
