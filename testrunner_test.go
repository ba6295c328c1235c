package willowxr

import (
	"testing"
)

const grabScript = `{
	"steps": [
		{"action": "pose", "controller": 0, "position": [0, 1.2, 0], "direction": [0, 0, -1]},
		{"action": "wait", "frames": 1},
		{"action": "selectStart", "controller": 0},
		{"action": "wait", "frames": 2},
		{"action": "pose", "controller": 0, "position": [1, 1.2, 0], "direction": [0, 0, -1]},
		{"action": "selectEnd", "controller": 0}
	]
}`

func TestLoadTestScript(t *testing.T) {
	r, err := LoadTestScript([]byte(grabScript))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 6 {
		t.Errorf("steps = %d, want 6", len(r.steps))
	}
	if r.steps[0].Position != [3]float64{0, 1.2, 0} {
		t.Errorf("position = %v", r.steps[0].Position)
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "squeeze"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunnerDrivesGrab(t *testing.T) {
	ic := newTestContext(t, 1)
	cube := cubeAt("cube", 0.25, 0, 1.2, -1.2)
	_ = ic.Register(cube)

	r, err := LoadTestScript([]byte(grabScript))
	if err != nil {
		t.Fatal(err)
	}
	ic.SetTestRunner(r)

	// Frame 1: pose applied, hover pass sees the cube.
	ic.Update(0)
	assertHighlights(t, ic, cube, true, false)

	// Frame 2: select start queued and applied before hover.
	ic.Update(0)
	if ic.Ownership(cube) != HeldBy(0) {
		t.Fatal("cube should be held after frame 2")
	}

	// Frame 3: waiting.
	ic.Update(0)
	if r.Done() {
		t.Error("runner should still be waiting")
	}

	// Frame 4: move and release.
	ic.Update(0)
	if !r.Done() {
		t.Error("runner should be done")
	}
	if ic.Ownership(cube) != Free {
		t.Error("cube should be released")
	}
	assertVec(t, "cube", cube.WorldPosition(), Vec3{1, 1.2, -1.2})

	// Further frames are no-ops.
	ic.Update(0)
}

func TestRunnerUnknownControllerIgnored(t *testing.T) {
	ic := newTestContext(t, 1)
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "pose", "controller": 4, "position": [0, 0, 0], "direction": [1, 0, 0]},
		{"action": "selectStart", "controller": 4}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	ic.SetTestRunner(r)
	ic.Update(0)
	if !r.Done() {
		t.Error("runner should finish")
	}
}
