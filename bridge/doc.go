// Package bridge feeds controller input from a remote WebXR client into a
// willowxr interaction context over WebSocket.
//
// The browser running the immersive session sends one JSON message per
// controller pose update and per select event:
//
//	{"type": "pose", "controller": 0, "position": [x, y, z], "orientation": [x, y, z, w]}
//	{"type": "selectstart", "controller": 0}
//	{"type": "selectend", "controller": 0}
//
// Poses land in a [willowxr.PoseBuffer]; select events are queued on a
// [willowxr.InputQueue]. Both are drained by the frame loop, so the bridge
// never touches interaction state directly. When a connection drops, every
// controller it pressed is released.
package bridge
