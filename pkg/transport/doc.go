// Package transport delivers a submitted contact form to its destination.
// Every implementation honours the same contract: one Send call per submit
// attempt, no retries, and failures reported as *SubmissionError so the
// controller can surface a single generic notice.
package transport
