// Package events implements single-pass event dispatch. The engine records
// events while a turn runs and dispatches them once the turn is over;
// handlers observe but never feed events back into the same pass.
package events

import "github.com/nathoo/temple/types"

// Event types emitted by the engine.
const (
	MonsterDied   = "monster_died"
	PlayerDied    = "player_died"
	LevelChanged  = "level_changed"
	GameCompleted = "game_completed"
	ItemPicked    = "item_picked"
	TrapTriggered = "trap_triggered"
	DoorUnlocked  = "door_unlocked"
)

// Handler reacts to one event.
type Handler func(types.Event)

// Bus routes events to subscribed handlers in subscription order.
type Bus struct {
	handlers []subscription
}

type subscription struct {
	eventType string // empty matches every event
	handle    Handler
}

// Subscribe registers h for eventType. An empty eventType receives every
// event.
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.handlers = append(b.handlers, subscription{eventType: eventType, handle: h})
}

// Dispatch runs matching handlers for each event, in event order. Single
// pass, no recursion. Returns the number of handler calls made.
func (b *Bus) Dispatch(evts []types.Event) int {
	if b == nil {
		return 0
	}
	calls := 0
	for _, event := range evts {
		for _, sub := range b.handlers {
			if sub.eventType != "" && sub.eventType != event.Type {
				continue
			}
			sub.handle(event)
			calls++
		}
	}
	return calls
}
