package willowxr

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action     string     `json:"action"`
	Controller int        `json:"controller,omitempty"`
	Position   [3]float64 `json:"position,omitempty"`
	Direction  [3]float64 `json:"direction,omitempty"`
	Frames     int        `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner replays scripted controller input across frames, for automated
// interaction tests and demos. Attach to a context via SetTestRunner.
//
// Actions:
//
//	{"action": "pose", "controller": 0, "position": [x,y,z], "direction": [x,y,z]}
//	{"action": "selectStart", "controller": 0}
//	{"action": "selectEnd", "controller": 0}
//	{"action": "wait", "frames": n}
//
// Poses apply immediately; select actions are queued and applied in the same
// frame, before the hover pass.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "pose", "selectStart", "selectEnd", "wait":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner. Its step method is called at the start
// of every Update.
func (ic *InteractionContext) SetTestRunner(runner *TestRunner) {
	ic.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame: consecutive pose and select steps
// run together, a wait step ends the frame.
func (r *TestRunner) step(ic *InteractionContext) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++

		id := ControllerID(st.Controller)
		switch st.Action {
		case "pose":
			if c := ic.controller(id); c != nil {
				c.SetPose(PoseFromDirection(Vec3(st.Position), Vec3(st.Direction)))
			}
		case "selectStart":
			ic.queue.TrySend(InputMessage{Kind: InputSelectStart, Controller: id})
		case "selectEnd":
			ic.queue.TrySend(InputMessage{Kind: InputSelectEnd, Controller: id})
		case "wait":
			if st.Frames > 0 {
				r.waitCount = st.Frames - 1 // this frame counts as one
			}
			return
		}
	}
	if r.waitCount == 0 {
		r.done = true
	}
}
