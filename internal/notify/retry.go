package notify

import (
	"math/rand"
	"time"
)

// Retry delays for in-process delivery. The whole schedule must fit
// inside deliveryTimeout, so delays stay short.
var retryDelays = []time.Duration{
	2 * time.Second,
	10 * time.Second,
	30 * time.Second,
}

const (
	maxAttempts = 4

	// jitterFactor is the ±percentage of jitter applied to delays.
	jitterFactor = 0.2
)

// nextRetryDelay calculates the next retry delay with jitter.
// attemptCount is 0-indexed (after the first failed attempt, attemptCount = 0).
func nextRetryDelay(attemptCount int) time.Duration {
	if attemptCount < 0 {
		attemptCount = 0
	}
	if attemptCount >= len(retryDelays) {
		attemptCount = len(retryDelays) - 1
	}

	base := retryDelays[attemptCount]

	jitterRange := float64(base) * jitterFactor
	jitter := (rand.Float64()*2 - 1) * jitterRange

	return time.Duration(float64(base) + jitter)
}
