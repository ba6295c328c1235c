// Package willowxr is the object picking and grab-interaction core for VR
// scenes built on a retained-mode 3D scene graph.
//
// Every frame it casts each hand controller's pointing ray against a set of
// interactive candidates, highlights the nearest one, and lets a controller
// attach an object to itself on select-start and put it back on select-end.
//
// # Quick start
//
//	ic := willowxr.NewInteractionContext(willowxr.DefaultConfig())
//	scene.AddChild(ic.Registry().Holder())
//	for _, c := range ic.Controllers() {
//		scene.AddChild(c.Node)
//	}
//
//	cube := willowxr.NewMeshNode("cube", willowxr.NewHitCube(0.25), willowxr.ColorWhite)
//	cube.SetPosition(0, 1.2, -1.2)
//	ic.Register(cube)
//
// Then, from the frame loop:
//
//	ic.SelectStart(id) // on trigger press, whenever it arrives
//	ic.SelectEnd(id)   // on trigger release
//	ic.Update(dt)      // once per frame, before drawing
//
// # Candidates
//
// The [Registry] is the authoritative set of interactive objects. Membership
// is keyed by node identity and does not depend on where a node sits in the
// hierarchy, so grabbing (which reparents the object under the controller)
// never changes what is interactive. A ray hit on any descendant of a
// candidate counts as a hit on the candidate.
//
// # Threading
//
// The core is single-threaded: all methods run on the frame goroutine.
// Devices, network bridges and asset loaders running elsewhere deliver input
// through [InputQueue] and poses through [PoseBuffer]; both are drained by
// [InteractionContext.Update] before the hover pass.
//
// # Feedback
//
// Highlights go through a [HighlightSink]. [EmissiveHighlighter] switches the
// emissive term of every lit [Material] in the object's subtree;
// [FadeHighlighter] eases it with tweens (via [gween]). Scene-level callbacks
// ([InteractionContext.OnGrab] and friends) and an optional [EntityStore]
// (Donburi adapter in willowxr/ecs) report transitions to game code.
//
// [gween]: https://github.com/tanema/gween
package willowxr
