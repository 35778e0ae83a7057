// Package ecs provides ECS adapters for starvine's scene events.
//
// The primary adapter is [NewDonburiStore], which bridges starvine scene
// events (pop, ripple, spawn, reset) into a [Donburi] world as typed events.
// Subscribe to [SceneEventType] in your ECS systems to receive them, or call
// [TrackTally] for a ready-made counter component.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
