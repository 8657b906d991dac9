// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start begins the worker's execution and must not block; implementations
// spawn goroutines internally and observe ctx for cancellation. Stop
// terminates the worker and blocks until its goroutines have finished.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    // spawn background processing
//	}
//
//	func (w *MyWorker) Stop() {
//	    // terminate and wait
//	}
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
