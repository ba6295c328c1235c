// Package ecs provides ECS adapters for willowxr's interaction event system.
//
// The primary adapter is [NewDonburiStore], which bridges grab, release and
// hover transitions into a [Donburi] world as typed events. Only nodes with a
// non-zero EntityID produce events. Subscribe to [InteractionEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	ic.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
