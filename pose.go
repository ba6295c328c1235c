package willowxr

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a world-space controller pose.
type Pose struct {
	Position    Vec3
	Orientation Quat
}

// PoseFromDirection builds a pose at origin whose Forward axis points along
// dir. A zero dir yields the identity orientation.
func PoseFromDirection(origin, dir Vec3) Pose {
	if dir.Len() == 0 {
		return Pose{Position: origin, Orientation: mgl64.QuatIdent()}
	}
	return Pose{Position: origin, Orientation: mgl64.QuatBetweenVectors(Forward, dir.Normalize())}
}

// Direction returns the pose's pointing direction.
func (p Pose) Direction() Vec3 {
	return p.Orientation.Normalize().Rotate(Forward)
}

// PoseProvider returns the live pose of a controller. The frame coordinator
// polls it once per frame for every controller; ok is false when the device
// is not currently tracked, in which case the previous pose is kept.
type PoseProvider interface {
	Pose(id ControllerID) (p Pose, ok bool)
}

// PoseBuffer is a PoseProvider written from other goroutines (device
// threads, network bridges) and read by the frame. Safe for concurrent use.
type PoseBuffer struct {
	mu    sync.RWMutex
	poses map[ControllerID]Pose
}

// NewPoseBuffer returns an empty buffer.
func NewPoseBuffer() *PoseBuffer {
	return &PoseBuffer{poses: make(map[ControllerID]Pose)}
}

// Set stores the latest pose for id.
func (b *PoseBuffer) Set(id ControllerID, p Pose) {
	b.mu.Lock()
	b.poses[id] = p
	b.mu.Unlock()
}

// Forget drops the pose for id, e.g. when the device stops being tracked.
func (b *PoseBuffer) Forget(id ControllerID) {
	b.mu.Lock()
	delete(b.poses, id)
	b.mu.Unlock()
}

// Pose implements PoseProvider.
func (b *PoseBuffer) Pose(id ControllerID) (Pose, bool) {
	b.mu.RLock()
	p, ok := b.poses[id]
	b.mu.RUnlock()
	return p, ok
}
