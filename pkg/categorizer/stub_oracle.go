package categorizer

import (
	"context"
	"errors"
	"sync"
)

var ErrStubOracleUnavailable = errors.New("stub oracle unavailable")

// StubOracle replays canned responses in order. Once responses run out it
// returns Err, or ErrStubOracleUnavailable when Err is nil.
type StubOracle struct {
	mu        sync.Mutex
	responses []StubResponse
	Err       error
	Prompts   []string
}

type StubResponse struct {
	Text string
	Err  error
}

func NewStubOracle(responses ...StubResponse) *StubOracle {
	return &StubOracle{responses: responses}
}

// NewFailingStubOracle returns an oracle whose every call fails.
func NewFailingStubOracle() *StubOracle {
	return &StubOracle{Err: ErrStubOracleUnavailable}
}

func (s *StubOracle) Complete(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if len(s.responses) == 0 {
		if s.Err != nil {
			return "", s.Err
		}
		return "", ErrStubOracleUnavailable
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	return r.Text, r.Err
}

func (s *StubOracle) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}
