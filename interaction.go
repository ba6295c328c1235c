package willowxr

import (
	"io"
	"log/slog"
	"slices"
)

// InteractionContext owns everything the pick-and-grab loop needs: the
// candidate registry, the controllers, per-object hold and highlight state,
// and the hover set. All methods must be called from the frame goroutine;
// other goroutines deliver input through Queue and PoseBuffer.
type InteractionContext struct {
	registry    *Registry
	controllers []*Controller

	held       map[*Node]ControllerID
	highlights map[*Node][numHighlightChannels]bool
	hoverSet   []*Node
	prevHover  []*Node

	sink      HighlightSink
	poses     PoseProvider
	queue     *InputQueue
	rayLength float64

	handlers handlerRegistry
	store    EntityStore

	logger     *slog.Logger
	debug      bool
	testRunner *TestRunner

	hitBuf []Intersection
}

// NewInteractionContext creates a context with cfg.Controllers controllers
// (ids 0..n-1), an empty registry and the highlight sink cfg selects.
func NewInteractionContext(cfg Config) *InteractionContext {
	if cfg.RayLength <= 0 {
		cfg.RayLength = DefaultRayLength
	}
	ic := &InteractionContext{
		registry:   NewRegistry(),
		held:       make(map[*Node]ControllerID),
		highlights: make(map[*Node][numHighlightChannels]bool),
		sink:       cfg.newSink(),
		queue:      NewInputQueue(cfg.InputQueueSize),
		rayLength:  cfg.RayLength,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for i := 0; i < cfg.Controllers; i++ {
		ic.AddController(ControllerID(i))
	}
	if cfg.Debug {
		ic.SetDebugMode(true)
	}
	return ic
}

// --- Accessors and collaborators ---

// Registry returns the candidate registry.
func (ic *InteractionContext) Registry() *Registry {
	return ic.registry
}

// Queue returns the cross-goroutine input queue drained by Update.
func (ic *InteractionContext) Queue() *InputQueue {
	return ic.queue
}

// SetLogger replaces the logger. Nil restores the discarding logger.
func (ic *InteractionContext) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ic.logger = l
	if ic.debug {
		debugLogger = l
	}
}

// SetHighlightSink replaces the highlight sink. Nil disables visual feedback;
// highlight state is still tracked.
func (ic *InteractionContext) SetHighlightSink(sink HighlightSink) {
	ic.sink = sink
}

// SetPoseProvider sets the provider polled for controller poses each frame.
func (ic *InteractionContext) SetPoseProvider(p PoseProvider) {
	ic.poses = p
}

// AddController returns the controller with the given id, creating it if
// needed. Add its Node to the scene so attached objects are drawn.
func (ic *InteractionContext) AddController(id ControllerID) *Controller {
	if c := ic.controller(id); c != nil {
		return c
	}
	c := newController(id, ic.rayLength)
	ic.controllers = append(ic.controllers, c)
	return c
}

// Controller returns the controller with the given id.
func (ic *InteractionContext) Controller(id ControllerID) (*Controller, bool) {
	c := ic.controller(id)
	return c, c != nil
}

// Controllers returns all controllers in creation order. The returned slice
// MUST NOT be mutated.
func (ic *InteractionContext) Controllers() []*Controller {
	return ic.controllers
}

func (ic *InteractionContext) controller(id ControllerID) *Controller {
	for _, c := range ic.controllers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// --- Candidate registration ---

// Register makes n interactive. See Registry.Register.
func (ic *InteractionContext) Register(n *Node) error {
	if err := ic.registry.Register(n); err != nil {
		ic.logger.Warn("register rejected", slog.Any("error", err))
		return err
	}
	ic.logger.Debug("registered", slog.String("object", n.Name), slog.Int("candidates", ic.registry.Len()))
	return nil
}

// Unregister removes n from interaction. A controller holding n releases it
// and any highlight on n is cleared. Disposed nodes can be unregistered too.
func (ic *InteractionContext) Unregister(n *Node) bool {
	if !ic.registry.Unregister(n) {
		return false
	}
	if id, ok := ic.held[n]; ok {
		ic.SelectEnd(id)
	}
	for _, c := range ic.controllers {
		if c.hover == n {
			ic.setHoverTarget(c, nil, Intersection{})
		}
	}
	ic.setHighlight(n, HighlightHover, false)
	ic.hoverSet = removeNode(ic.hoverSet, n)
	delete(ic.highlights, n)
	return true
}

// --- State queries ---

// Ownership returns the hold state of n.
func (ic *InteractionContext) Ownership(n *Node) Ownership {
	if id, ok := ic.held[n]; ok {
		return HeldBy(id)
	}
	return Free
}

// Highlighted reports whether n currently carries the given highlight.
func (ic *InteractionContext) Highlighted(n *Node, ch HighlightChannel) bool {
	if ch >= numHighlightChannels {
		return false
	}
	return ic.highlights[n][ch]
}

// HoverSet returns the objects hover-highlighted by the last hover pass.
// The returned slice MUST NOT be mutated.
func (ic *InteractionContext) HoverSet() []*Node {
	return ic.hoverSet
}

// Intersections queries the registry with the controller's current ray,
// derived from its world transform at call time.
func (ic *InteractionContext) Intersections(id ControllerID) []Intersection {
	c := ic.controller(id)
	if c == nil {
		return nil
	}
	return ic.registry.QueryRay(c.Ray())
}

// --- Grab transitions ---

// SelectStart handles a controller's select-start input: the nearest free
// candidate under its ray is attached to the controller. No-op when the
// controller is unknown, already holding, or pointing at nothing grabbable.
func (ic *InteractionContext) SelectStart(id ControllerID) {
	c := ic.controller(id)
	if c == nil {
		ic.logger.Debug("select start ignored", slog.Int("controller", int(id)), slog.Any("reason", ErrUnknownController))
		return
	}
	if c.selected != nil {
		ic.logger.Debug("select start ignored: already holding",
			slog.Int("controller", int(id)), slog.String("object", c.selected.Name))
		return
	}

	ic.hitBuf = ic.registry.queryInto(ic.hitBuf[:0], c.Ray())
	if len(ic.hitBuf) == 0 {
		ic.logger.Debug("select start: nothing under ray", slog.Int("controller", int(id)))
		return
	}
	hit := ic.hitBuf[0]
	obj := hit.Object
	if holder, ok := ic.held[obj]; ok {
		ic.logger.Debug("select start ignored: object held",
			slog.Int("controller", int(id)), slog.String("object", obj.Name), slog.Int("holder", int(holder)))
		return
	}

	ic.held[obj] = id
	c.selected = obj
	if c.hover != nil {
		ic.setHoverTarget(c, nil, Intersection{})
	}
	ic.setHighlight(obj, HighlightHover, false)
	ic.hoverSet = removeNode(ic.hoverSet, obj)
	ic.setHighlight(obj, HighlightGrab, true)
	c.Node.Attach(obj)

	ic.logger.Debug("grab", slog.Int("controller", int(id)), slog.String("object", obj.Name),
		slog.Float64("distance", hit.Distance))
	ic.fireGrab(EventGrab, obj, id, hit)
}

// SelectEnd handles a controller's select-end input: its held object is
// returned to the registry holder, keeping its world pose. No-op when the
// controller holds nothing.
func (ic *InteractionContext) SelectEnd(id ControllerID) {
	c := ic.controller(id)
	if c == nil || c.selected == nil {
		return
	}
	obj := c.selected

	ic.setHighlight(obj, HighlightGrab, false)
	delete(ic.held, obj)
	if !obj.IsDisposed() {
		ic.registry.Holder().Attach(obj)
	}
	c.selected = nil

	ic.logger.Debug("release", slog.Int("controller", int(id)), slog.String("object", obj.Name))
	ic.fireGrab(EventRelease, obj, id, Intersection{})
}

// ReleaseAll ends every hold, e.g. at session teardown.
func (ic *InteractionContext) ReleaseAll() {
	for _, c := range ic.controllers {
		ic.SelectEnd(c.ID)
	}
}

// --- Hover ---

// beginHoverPass starts a new hover pass. The previous hover set is kept
// aside for endHoverPass.
func (ic *InteractionContext) beginHoverPass() {
	ic.prevHover = append(ic.prevHover[:0], ic.hoverSet...)
	ic.hoverSet = ic.hoverSet[:0]
}

// endHoverPass un-highlights objects that left the hover set, then
// highlights the current set. Sinks apply a highlight to a whole subtree, so
// once anything was cleared every still-hovered object is sent again.
func (ic *InteractionContext) endHoverPass() {
	cleared := false
	for _, n := range ic.prevHover {
		if !slices.Contains(ic.hoverSet, n) {
			ic.setHighlight(n, HighlightHover, false)
			cleared = true
		}
	}
	for _, n := range ic.hoverSet {
		if cleared && ic.Highlighted(n, HighlightHover) {
			if ic.sink != nil {
				ic.sink.SetHighlight(n, HighlightHover, true)
			}
			continue
		}
		ic.setHighlight(n, HighlightHover, true)
	}
	clear(ic.prevHover)
	ic.prevHover = ic.prevHover[:0]
}

// hoverUpdate records the nearest candidate under c's ray as hovered. Held
// objects, whoever holds them, are never hovered.
func (ic *InteractionContext) hoverUpdate(c *Controller) {
	ic.hitBuf = ic.registry.queryInto(ic.hitBuf[:0], c.Ray())
	if len(ic.hitBuf) == 0 {
		c.RayLength = ic.rayLength
		ic.setHoverTarget(c, nil, Intersection{})
		return
	}
	hit := ic.hitBuf[0]
	c.RayLength = hit.Distance

	obj := hit.Object
	if _, held := ic.held[obj]; held {
		ic.setHoverTarget(c, nil, Intersection{})
		return
	}
	ic.setHoverTarget(c, obj, hit)
	if !slices.Contains(ic.hoverSet, obj) {
		ic.hoverSet = append(ic.hoverSet, obj)
	}
}

// setHoverTarget fires leave/enter callbacks when c's hover target changes.
func (ic *InteractionContext) setHoverTarget(c *Controller, target *Node, hit Intersection) {
	if target == c.hover {
		return
	}
	if c.hover != nil {
		prev := c.hover
		c.hover = nil
		ic.fireHover(EventHoverLeave, prev, c.ID, Intersection{})
	}
	if target != nil {
		c.hover = target
		ic.fireHover(EventHoverEnter, target, c.ID, hit)
	}
}

// --- Highlight bookkeeping ---

// setHighlight records the channel state and forwards real changes to the
// sink.
func (ic *InteractionContext) setHighlight(n *Node, ch HighlightChannel, on bool) {
	state := ic.highlights[n]
	if state[ch] == on {
		return
	}
	state[ch] = on
	if state == ([numHighlightChannels]bool{}) {
		delete(ic.highlights, n)
	} else {
		ic.highlights[n] = state
	}
	if ic.sink != nil {
		ic.sink.SetHighlight(n, ch, on)
	}
}

func removeNode(s []*Node, n *Node) []*Node {
	for i, v := range s {
		if v == n {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			return s[:len(s)-1]
		}
	}
	return s
}
