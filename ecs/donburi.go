package ecs

import (
	"github.com/phanxgames/scrollfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ProgressEventType is the Donburi event type for scrollfx progress events.
var ProgressEventType = events.NewEventType[scrollfx.ProgressEvent]()

type donburiObserver struct {
	world donburi.World
}

// NewDonburiObserver creates an Observer backed by a Donburi world.
// Progress events are published to ProgressEventType and delivered by
// events.ProcessEvents or ProcessAllEvents.
func NewDonburiObserver(world donburi.World) scrollfx.Observer {
	return &donburiObserver{world: world}
}

func (o *donburiObserver) ObserveProgress(ev scrollfx.ProgressEvent) {
	ProgressEventType.Publish(o.world, ev)
}
