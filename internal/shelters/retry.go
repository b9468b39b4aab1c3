package shelters

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MaxAttempts is how many times Fetch asks the API before giving up.
const MaxAttempts = 3

// maxRetryAfter caps how long a Retry-After header may stall a fetch.
const maxRetryAfter = time.Minute

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int // 0 for transport failures
	Message    string

	// RetryAfter is the delay the server asked for. It only applies when
	// HasRetryAfter is set, since "Retry-After: 0" is a valid request.
	RetryAfter    time.Duration
	HasRetryAfter bool
}

func (e *RetryableError) Error() string {
	if e.StatusCode == 0 {
		return "retryable error: " + truncate(e.Message, 200)
	}
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// Backoff is the default wait before retry attempt n (0-indexed): 500ms
// doubling up to 8s, plus up to half again as jitter.
func Backoff(attempt int) time.Duration {
	base := 500 * time.Millisecond << uint(attempt)
	if base <= 0 || base > 8*time.Second {
		base = 8 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// retryDelay picks the wait before the next attempt. A Retry-After sent
// with a 429 or 503 wins over the computed backoff.
func retryDelay(err error, attempt int, backoff func(int) time.Duration) time.Duration {
	var retryErr *RetryableError
	if errors.As(err, &retryErr) && retryErr.HasRetryAfter {
		return retryErr.RetryAfter
	}
	return backoff(attempt)
}

// retryableStatus reports whether the API may succeed on a later attempt.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// parseRetryAfter reads a Retry-After header in either delay-seconds or
// HTTP-date form. A date in the past means retry now. ok is false when the
// header is missing or unparseable.
func parseRetryAfter(v string, now time.Time) (d time.Duration, ok bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		d = time.Duration(secs) * time.Second
	} else if t, err := http.ParseTime(v); err == nil {
		d = t.Sub(now)
	} else {
		return 0, false
	}
	return min(max(d, 0), maxRetryAfter), true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
