package engine

// ListenerID identifies a subscription so it can be removed later.
type ListenerID uint64

// Event is a multi-cast notification with no payload.
type Event struct {
	inner EventWithArg[struct{}]
}

func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	return e.inner.AddListener(func(struct{}) { callback() })
}

func (e *Event) RemoveListener(id ListenerID) bool { return e.inner.RemoveListener(id) }
func (e *Event) RemoveAllListeners()               { e.inner.RemoveAllListeners() }
func (e *Event) Invoke()                           { e.inner.Invoke(struct{}{}) }
func (e *Event) GetListenerCount() int             { return e.inner.GetListenerCount() }

// EventWithArg is a multi-cast notification carrying one value. Listeners run
// in subscription order on the invoking goroutine.
type EventWithArg[T any] struct {
	next      ListenerID
	listeners []listener[T]
}

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// AddListener subscribes callback. A nil callback is ignored and gets id 0.
func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listener[T]{id: e.next, fn: callback})
	return e.next
}

func (e *EventWithArg[T]) RemoveListener(id ListenerID) bool {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}
