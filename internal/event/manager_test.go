package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndConsume(t *testing.T) {
	m := NewManager()
	var calls []string
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "first:"+e.Data.(BufferSavedData).FilePath)
		return false
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "second")
		return true
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		calls = append(calls, "third")
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "a.txt"})
	assert.Equal(t, []string{"first:a.txt", "second"}, calls)

	m.Dispatch(TypeBufferLoaded, BufferLoadedData{FilePath: "b.txt"})
	assert.Len(t, calls, 2)
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	count := 0
	m.Subscribe(TypeAppReady, func(Event) bool {
		count++
		m.Subscribe(TypeAppReady, func(Event) bool { count += 10; return false })
		return false
	})

	m.Dispatch(TypeAppReady, AppReadyData{})
	assert.Equal(t, 1, count)
	m.Dispatch(TypeAppReady, AppReadyData{})
	assert.Equal(t, 12, count)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "HistoryChanged", TypeHistoryChanged.String())
	assert.Equal(t, "Unknown", Type(999).String())
}
