package event

import "slices"

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id uint64
	fn Handler
}

// Bus delivers events synchronously to its subscribers in subscription order.
//
// Publish iterates over a snapshot of the subscriber list, so handlers may
// subscribe or unsubscribe while an event is being delivered. Changes take
// effect with the next Publish. The bus is owned by the tick loop and is not
// safe for concurrent use.
type Bus struct {
	subs   []subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it again.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	return func() {
		b.subs = slices.DeleteFunc(slices.Clone(b.subs), func(s subscription) bool { return s.id == id })
	}
}

// SubscribeKinds registers fn for the listed kinds only.
func (b *Bus) SubscribeKinds(fn Handler, kinds ...Kind) (unsubscribe func()) {
	return b.Subscribe(func(e Event) {
		if slices.Contains(kinds, e.Kind()) {
			fn(e)
		}
	})
}

// Publish delivers e to every current subscriber.
func (b *Bus) Publish(e Event) {
	for _, s := range b.subs {
		s.fn(e)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	return len(b.subs)
}
