// Package ecs provides ECS adapters for scrollfx progress events.
//
// The primary adapter is [NewDonburiObserver], which bridges every engine
// recomputation into a [Donburi] world as a typed event. Subscribe to
// [ProgressEventType] in your ECS systems to receive them.
//
// Usage:
//
//	obs := ecs.NewDonburiObserver(world)
//	scrollfx.New(doc, "banner", scrollfx.WithObserver(obs))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
