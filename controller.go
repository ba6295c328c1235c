package willowxr

import "fmt"

// Controller is one tracked input device. Its Node carries the live pose;
// a held object is attached under that node so it follows the hand.
type Controller struct {
	ID   ControllerID
	Node *Node

	// RayLength is the visible length of the pointing ray: the distance to
	// the nearest candidate this frame, or the configured default.
	RayLength float64

	selected *Node
	hover    *Node
}

func newController(id ControllerID, rayLength float64) *Controller {
	return &Controller{
		ID:        id,
		Node:      NewNode(fmt.Sprintf("controller%d", id)),
		RayLength: rayLength,
	}
}

// Selected returns the object this controller holds, or nil.
func (c *Controller) Selected() *Node {
	return c.selected
}

// Holding reports whether the controller holds an object.
func (c *Controller) Holding() bool {
	return c.selected != nil
}

// HoverTarget returns the candidate the controller's ray rested on during
// the last hover pass, or nil.
func (c *Controller) HoverTarget() *Node {
	return c.hover
}

// SetPose moves the controller node. The pose is interpreted in the space of
// the node's parent, which is world space for controllers added directly to
// the scene root.
func (c *Controller) SetPose(p Pose) {
	c.Node.Position = p.Position
	c.Node.Rotation = p.Orientation
	markSubtreeDirty(c.Node)
}

// Ray returns the pointing ray derived from the controller's world transform
// at call time.
func (c *Controller) Ray() Ray {
	return RayFromTransform(c.Node.WorldTransform())
}
