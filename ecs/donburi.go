// Package ecs provides ECS adapters for starvine.
package ecs

import (
	"github.com/phanxgames/starvine"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for starvine scene events.
// Subscribe to this in your ECS systems to receive pop, ripple, spawn and
// reset events.
var SceneEventType = events.NewEventType[starvine.SceneEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) starvine.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event starvine.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}

// TallyData counts scene activity since the last reset.
type TallyData struct {
	Pops    int
	Ripples int
	Spawns  int
	Resets  int
	Effects [4]int // pops per starvine.EffectKind
}

// Tally is the component holding a TallyData.
var Tally = donburi.NewComponentType[TallyData]()

// TrackTally creates an entity holding a Tally and subscribes it to
// SceneEventType. The counters update whenever ProcessEvents runs.
func TrackTally(world donburi.World) donburi.Entity {
	e := world.Create(Tally)
	SceneEventType.Subscribe(world, func(w donburi.World, ev starvine.SceneEvent) {
		if !w.Valid(e) {
			return
		}
		t := Tally.Get(w.Entry(e))
		switch ev.Type {
		case starvine.EventPop:
			t.Pops++
			if int(ev.Effect) < len(t.Effects) {
				t.Effects[ev.Effect]++
			}
		case starvine.EventRipple:
			t.Ripples++
		case starvine.EventSpawn:
			t.Spawns++
		case starvine.EventReset:
			t.Resets++
		}
	})
	return e
}
