package retry

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "rate limited", err: &statusErr{code: 429}, want: true},
		{name: "server error", err: &statusErr{code: 500}, want: true},
		{name: "bad gateway", err: &statusErr{code: 502}, want: true},
		{name: "unavailable", err: &statusErr{code: 503}, want: true},
		{name: "resource exhausted name", err: &statusErr{name: "RESOURCE_EXHAUSTED"}, want: true},
		{name: "lower case internal", err: &statusErr{name: "internal"}, want: true},
		{name: "unknown status", err: &statusErr{name: "Unknown"}, want: true},
		{name: "grpc style name", err: &statusErr{name: "ResourceExhausted"}, want: true},
		{name: "bad request", err: &statusErr{code: 400, name: "INVALID_ARGUMENT"}, want: false},
		{name: "permission denied", err: &statusErr{code: 403, name: "PERMISSION_DENIED"}, want: false},
		{name: "not found", err: &statusErr{code: 404}, want: false},
		{name: "wrapped status", err: fmt.Errorf("generate: %w", &statusErr{code: 429}), want: true},
		{name: "rpc failure message", err: errors.New("Rpc failed due to xhr error"), want: true},
		{name: "internal error message", err: errors.New("An INTERNAL ERROR has occurred"), want: true},
		{name: "plain error", err: errors.New("prompt blocked"), want: false},
		{name: "status 400 with rpc message", err: &statusErr{code: 400, msg: "rpc failed"}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Fatalf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
