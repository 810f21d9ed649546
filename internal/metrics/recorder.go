// Package metrics provides build observability through a Recorder interface.
//
// Components receive a Recorder by injection and default to NoopRecorder, so
// metrics collection never requires nil checks and costs nothing when
// disabled. The serve command swaps in the Prometheus implementation.
package metrics

import "time"

// Recorder receives build lifecycle events.
type Recorder interface {
	BuildStarted()
	BuildCompleted(duration time.Duration, documents, failures, brokenLinks int)
	BuildFailed()
}

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

func (NoopRecorder) BuildStarted()                               {}
func (NoopRecorder) BuildCompleted(time.Duration, int, int, int) {}
func (NoopRecorder) BuildFailed()                                {}
