package willowxr

// GrabContext carries grab and release event data.
type GrabContext struct {
	Node       *Node
	EntityID   uint32
	UserData   any
	Controller ControllerID
	// Distance and Point describe the hit that started the grab. Zero for
	// release events.
	Distance float64
	Point    Vec3
}

// HoverContext carries hover enter/leave event data.
type HoverContext struct {
	Node       *Node
	EntityID   uint32
	UserData   any
	Controller ControllerID
	Distance   float64
	Point      Vec3
}

// EntityStore is the interface for optional ECS integration.
// When set on an InteractionContext, interaction events are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type       EventType
	EntityID   uint32
	Controller ControllerID
	Distance   float64
	PointX     float64
	PointY     float64
	PointZ     float64
}

// --- Handler registry ---

type grabHandler struct {
	id uint32
	fn func(GrabContext)
}

type hoverHandler struct {
	id uint32
	fn func(HoverContext)
}

type handlerRegistry struct {
	grab       []grabHandler
	release    []grabHandler
	hoverEnter []hoverHandler
	hoverLeave []hoverHandler
	nextID     uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventGrab:
		h.reg.grab = removeGrabHandler(h.reg.grab, h.id)
	case EventRelease:
		h.reg.release = removeGrabHandler(h.reg.release, h.id)
	case EventHoverEnter:
		h.reg.hoverEnter = removeHoverHandler(h.reg.hoverEnter, h.id)
	case EventHoverLeave:
		h.reg.hoverLeave = removeHoverHandler(h.reg.hoverLeave, h.id)
	}
}

func removeGrabHandler(s []grabHandler, id uint32) []grabHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = grabHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeHoverHandler(s []hoverHandler, id uint32) []hoverHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = hoverHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Registration ---

// OnGrab registers a callback fired after a controller attaches an object.
func (ic *InteractionContext) OnGrab(fn func(GrabContext)) CallbackHandle {
	ic.handlers.nextID++
	id := ic.handlers.nextID
	ic.handlers.grab = append(ic.handlers.grab, grabHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &ic.handlers, event: EventGrab}
}

// OnRelease registers a callback fired after a controller detaches its object.
func (ic *InteractionContext) OnRelease(fn func(GrabContext)) CallbackHandle {
	ic.handlers.nextID++
	id := ic.handlers.nextID
	ic.handlers.release = append(ic.handlers.release, grabHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &ic.handlers, event: EventRelease}
}

// OnHoverEnter registers a callback fired when an object becomes a
// controller's hover target.
func (ic *InteractionContext) OnHoverEnter(fn func(HoverContext)) CallbackHandle {
	ic.handlers.nextID++
	id := ic.handlers.nextID
	ic.handlers.hoverEnter = append(ic.handlers.hoverEnter, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &ic.handlers, event: EventHoverEnter}
}

// OnHoverLeave registers a callback fired when an object stops being a
// controller's hover target (ray moved away, object grabbed, or unregistered).
func (ic *InteractionContext) OnHoverLeave(fn func(HoverContext)) CallbackHandle {
	ic.handlers.nextID++
	id := ic.handlers.nextID
	ic.handlers.hoverLeave = append(ic.handlers.hoverLeave, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &ic.handlers, event: EventHoverLeave}
}

// SetEntityStore sets the optional ECS bridge.
func (ic *InteractionContext) SetEntityStore(store EntityStore) {
	ic.store = store
}

// --- Event dispatch ---

func (ic *InteractionContext) fireGrab(event EventType, node *Node, id ControllerID, hit Intersection) {
	ctx := GrabContext{
		Node: node, EntityID: node.EntityID, UserData: node.UserData,
		Controller: id, Distance: hit.Distance, Point: hit.Point,
	}
	handlers := ic.handlers.grab
	if event == EventRelease {
		handlers = ic.handlers.release
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
	ic.emitInteractionEvent(event, node, id, hit)
}

func (ic *InteractionContext) fireHover(event EventType, node *Node, id ControllerID, hit Intersection) {
	ctx := HoverContext{
		Node: node, EntityID: node.EntityID, UserData: node.UserData,
		Controller: id, Distance: hit.Distance, Point: hit.Point,
	}
	handlers := ic.handlers.hoverEnter
	if event == EventHoverLeave {
		handlers = ic.handlers.hoverLeave
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
	ic.emitInteractionEvent(event, node, id, hit)
}

// --- ECS bridge ---

func (ic *InteractionContext) emitInteractionEvent(eventType EventType, node *Node, id ControllerID, hit Intersection) {
	if ic.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	ic.store.EmitEvent(InteractionEvent{
		Type:       eventType,
		EntityID:   node.EntityID,
		Controller: id,
		Distance:   hit.Distance,
		PointX:     hit.Point[0],
		PointY:     hit.Point[1],
		PointZ:     hit.Point[2],
	})
}
