package event

import (
	"context"
	"sync"
)

type TestSource struct {
	Agenda    Agenda
	Error     error
	LoadCalls int
	lock      sync.Mutex
}

func NewTestSource(agenda Agenda) *TestSource {
	return &TestSource{Agenda: agenda}
}

func (s *TestSource) Load(ctx context.Context) (Agenda, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.LoadCalls++
	if s.Error != nil {
		return Agenda{}, s.Error
	}
	return s.Agenda, nil
}
