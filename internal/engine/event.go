package engine

// ListenerID identifies a listener added to an Event.
type ListenerID uint64

type listener[T any] struct {
	id       ListenerID
	callback func(T)
}

// Event is a multi-cast event with one argument. Listeners run in the order
// they were added. The zero value is ready to use.
type Event[T any] struct {
	listeners []listener[T]
	nextID    ListenerID
}

// AddListener subscribes callback. A nil callback is ignored and gets the
// zero ID.
func (e *Event[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, callback: callback})
	return e.nextID
}

// RemoveListener unsubscribes the listener with the given ID. It reports
// whether the listener was found.
func (e *Event[T]) RemoveListener(id ListenerID) bool {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (e *Event[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls every listener with arg. Listeners added or removed during
// the call take effect from the next Invoke.
func (e *Event[T]) Invoke(arg T) {
	listeners := e.listeners
	for _, l := range listeners {
		l.callback(arg)
	}
}

func (e *Event[T]) ListenerCount() int {
	return len(e.listeners)
}
