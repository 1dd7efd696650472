package companieshouse

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"auth", &AuthError{StatusCode: 401, Message: "bad key"}, IsAuth},
		{"rate limit", &RateLimitError{Message: "slow down"}, IsRateLimit},
		{"not found", &NotFoundError{Resource: "company 123"}, IsNotFound},
		{"transport", &TransportError{Op: "GET /x", Err: errors.New("refused")}, IsTransport},
		{"malformed", &MalformedResponseError{Endpoint: "/x", Err: errors.New("bad json")}, IsMalformed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.pred(tc.err) {
				t.Errorf("predicate should match %v", tc.err)
			}
			// Predicates see through wrapping.
			wrapped := fmt.Errorf("fetching seed: %w", tc.err)
			if !tc.pred(wrapped) {
				t.Errorf("predicate should match wrapped %v", wrapped)
			}
			if tc.pred(errors.New("unrelated")) {
				t.Error("predicate should not match unrelated error")
			}
		})
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &TransportError{Op: "GET /company/1", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("TransportError should unwrap to the inner error")
	}
}
