package reminder

import (
	"context"
	"net/http"
	"sync"
)

type TestDispatcher struct {
	Dispatched []Instruction
	RejectKeys map[string]bool
	lock       sync.Mutex
}

func NewTestDispatcher() *TestDispatcher {
	return &TestDispatcher{RejectKeys: make(map[string]bool)}
}

func (d *TestDispatcher) Dispatch(ctx context.Context, instruction Instruction) Outcome {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.Dispatched = append(d.Dispatched, instruction)

	outcome := NewOutcome(instruction)
	if d.RejectKeys[instruction.Key] {
		outcome.StatusCode = http.StatusBadRequest
		outcome.Err = ErrDispatchRejected
		return outcome
	}
	outcome.StatusCode = http.StatusOK
	outcome.Success = true
	return outcome
}

func (d *TestDispatcher) DispatchedKeys() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	keys := make([]string, 0, len(d.Dispatched))
	for _, i := range d.Dispatched {
		keys = append(keys, i.Key)
	}
	return keys
}
