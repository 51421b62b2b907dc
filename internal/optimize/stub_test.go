package optimize

import (
	"context"

	"github.com/Veraticus/financeflow/internal/llm"
)

type stubClient struct {
	err      error
	response string
	requests []llm.Request
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}
