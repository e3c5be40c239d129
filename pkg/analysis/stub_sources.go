package analysis

import (
	"context"
	"sync"

	"github.com/klokku/meeting-fatigue/pkg/meeting"
)

// StubCalendar returns fixed events and records the requested windows.
type StubCalendar struct {
	Events []meeting.RawEvent
	Err    error

	mu   sync.Mutex
	Days []int
}

func (s *StubCalendar) GetEvents(_ context.Context, _ string, days int) ([]meeting.RawEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Days = append(s.Days, days)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Events, nil
}

type StubIdentity struct {
	Info meeting.UserInfo
	Err  error
}

func (s *StubIdentity) GetUserInfo(context.Context, string) (meeting.UserInfo, error) {
	if s.Err != nil {
		return meeting.UserInfo{}, s.Err
	}
	return s.Info, nil
}
