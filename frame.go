package willowxr

import (
	"log/slog"
	"time"
)

// Update runs one frame of the interaction loop. Call it once per rendered
// frame, before drawing, from the goroutine that owns the scene:
//
//  1. advance the test runner, apply queued input messages and poll poses
//  2. start a hover pass, dropping last frame's hover set
//  3. find the hover target of every controller not holding an object
//  4. un-highlight objects no longer hovered, highlight the new hover set
//     and advance highlight fades
//
// dt is the frame time in seconds. Input delivered by direct SelectStart /
// SelectEnd calls between frames is already applied when Update runs.
func (ic *InteractionContext) Update(dt float64) {
	var stats debugStats
	var t0 time.Time
	if ic.debug {
		t0 = time.Now()
	}

	if ic.testRunner != nil {
		ic.testRunner.step(ic)
	}
	stats.messages = ic.queue.drain(ic.applyInput)
	ic.pollPoses()

	if ic.debug {
		stats.drainTime = time.Since(t0)
		t0 = time.Now()
	}

	ic.beginHoverPass()
	for _, c := range ic.controllers {
		if c.selected != nil {
			continue
		}
		ic.hoverUpdate(c)
	}
	ic.endHoverPass()

	if u, ok := ic.sink.(updater); ok {
		u.Update(dt)
	}

	if ic.debug {
		stats.hoverTime = time.Since(t0)
		stats.candidates = ic.registry.Len()
		stats.hovered = len(ic.hoverSet)
		stats.controllers = len(ic.controllers)
		ic.debugLog(stats)
	}
}

// applyInput applies one queued message.
func (ic *InteractionContext) applyInput(msg InputMessage) {
	switch msg.Kind {
	case InputSelectStart:
		ic.SelectStart(msg.Controller)
	case InputSelectEnd:
		ic.SelectEnd(msg.Controller)
	case InputRegister:
		ic.Register(msg.Object)
	case InputUnregister:
		ic.Unregister(msg.Object)
	default:
		ic.logger.Warn("unknown input message", slog.Int("kind", int(msg.Kind)))
	}
}

// pollPoses copies the provider's latest poses onto the controllers.
// Untracked controllers keep their previous pose.
func (ic *InteractionContext) pollPoses() {
	if ic.poses == nil {
		return
	}
	for _, c := range ic.controllers {
		if p, ok := ic.poses.Pose(c.ID); ok {
			c.SetPose(p)
		}
	}
}
