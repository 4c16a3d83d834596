package audit

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memorySink) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("boom")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcher_DeliversEventsBeforeClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop())

	d.Dispatch(Event{Action: "appointment_created", Entity: "appointment", EntityID: "a"})
	d.Dispatch(Event{Action: "appointment_deleted", Entity: "appointment", EntityID: "a"})
	d.Close()

	assert.Len(t, sink.events, 2)
	assert.Equal(t, "appointment_created", sink.events[0].Action)
}

func TestDispatcher_SinkErrorsDoNotStopWorker(t *testing.T) {
	sink := &memorySink{fail: true}
	d := NewDispatcher(sink, zap.NewNop())

	d.Dispatch(Event{Action: "x"})
	d.Dispatch(Event{Action: "y"})
	d.Close()

	assert.Empty(t, sink.events)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop())

	d.Dispatch(Event{Action: "appointment_created"})
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "appointment_cancelled"})
		d.Close()
	})
	assert.Len(t, sink.events, 1)
}

func TestDispatcher_ConcurrentDispatchDuringClose(t *testing.T) {
	d := NewDispatcher(&memorySink{}, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(Event{Action: "appointment_updated"})
			}
		}()
	}

	assert.NotPanics(t, d.Close)
	wg.Wait()
}
