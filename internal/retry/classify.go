package retry

import (
	"errors"
	"net/http"
	"strings"
)

// StatusCarrier is implemented by errors that carry a transport status: an
// HTTP-like numeric code and/or a service status name such as
// "RESOURCE_EXHAUSTED".
type StatusCarrier interface {
	error
	StatusCode() int
	StatusName() string
}

var retryableStatusNames = map[string]struct{}{
	"RESOURCE_EXHAUSTED": {},
	"INTERNAL":           {},
	"UNKNOWN":            {},
}

var retryableMessageFragments = []string{
	"rpc failed",
	"internal error",
	"internalerror",
}

// IsRetryable reports whether err looks transient: rate limiting, a 5xx or
// internal/unknown service status, or an internal RPC failure message.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var sc StatusCarrier
	if errors.As(err, &sc) {
		code := sc.StatusCode()
		if code == http.StatusTooManyRequests || (code >= 500 && code <= 599) {
			return true
		}
		if _, ok := retryableStatusNames[normalizeStatusName(sc.StatusName())]; ok {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range retryableMessageFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

func normalizeStatusName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	switch name {
	case "RESOURCEEXHAUSTED":
		return "RESOURCE_EXHAUSTED"
	}
	return name
}
