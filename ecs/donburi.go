package ecs

import (
	"github.com/phanxgames/willowxr"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for willowxr interaction
// events. Each willowxr.InteractionEvent carries the transition (grab,
// release, hover enter or hover leave), the controller, the object's
// EntityID and, for grab and hover enter, the hit point and distance.
var InteractionEventType = events.NewEventType[willowxr.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) willowxr.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event willowxr.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
