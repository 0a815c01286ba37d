// Package events implements the state-changed notification bus. Dispatch is
// synchronous and runs listeners in subscription order.
package events

// Handle identifies a subscription. The zero Handle is never issued.
type Handle int

type subscription struct {
	handle   Handle
	listener func()
}

// Bus holds the registered listeners. The zero value is ready to use.
type Bus struct {
	subs []subscription
	next Handle
}

// Subscribe registers a listener and returns its handle. A nil listener is
// ignored and yields the zero Handle.
func (b *Bus) Subscribe(listener func()) Handle {
	if listener == nil {
		return 0
	}
	b.next++
	b.subs = append(b.subs, subscription{handle: b.next, listener: listener})
	return b.next
}

// Unsubscribe removes the listener with the given handle. Returns false if
// no such subscription exists.
func (b *Bus) Unsubscribe(h Handle) bool {
	for i, s := range b.subs {
		if s.handle != h {
			continue
		}
		// Copy rather than shift in place: a Publish in progress may still
		// be iterating the old slice.
		subs := make([]subscription, 0, len(b.subs)-1)
		subs = append(subs, b.subs[:i]...)
		b.subs = append(subs, b.subs[i+1:]...)
		return true
	}
	return false
}

// Publish calls every listener once, in subscription order. Listeners
// added or removed during dispatch take effect from the next Publish.
func (b *Bus) Publish() {
	subs := b.subs
	for _, s := range subs {
		s.listener()
	}
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	return len(b.subs)
}
