package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventWithArgOrderAndRemove(t *testing.T) {
	var e EventWithArg[int]
	var got []int

	a := e.AddListener(func(v int) { got = append(got, v) })
	e.AddListener(func(v int) { got = append(got, v*10) })
	assert.Equal(t, ListenerID(0), e.AddListener(nil))
	assert.Equal(t, 2, e.GetListenerCount())

	e.Invoke(1)
	assert.Equal(t, []int{1, 10}, got)

	assert.True(t, e.RemoveListener(a))
	assert.False(t, e.RemoveListener(a))
	e.Invoke(2)
	assert.Equal(t, []int{1, 10, 20}, got)

	e.RemoveAllListeners()
	e.Invoke(3)
	assert.Equal(t, 0, e.GetListenerCount())
	assert.Len(t, got, 3)
}

func TestEvent(t *testing.T) {
	var e Event
	calls := 0
	id := e.AddListener(func() { calls++ })
	e.Invoke()
	e.Invoke()
	assert.Equal(t, 2, calls)
	assert.True(t, e.RemoveListener(id))
	e.Invoke()
	assert.Equal(t, 2, calls)
}
