package notify

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

// Failures that happen off the request path (background tasks, queueing,
// recovered handler panics) are reported here so a deployment can forward
// them to error monitoring.

type Source string

const (
	SourceTask    Source = "task"
	SourceQueue   Source = "queue"
	SourceHandler Source = "handler"
)

type Failure struct {
	Source Source
	// task name or request path
	Name  string
	Err   error
	Panic bool
}

func (f Failure) Error() string {
	if f.Panic {
		return fmt.Sprintf("panic in %s %s: %v", f.Source, f.Name, f.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", f.Source, f.Name, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

var reporter func(f Failure)

func RegisterReporter(fn func(f Failure)) {
	reporter = fn
}

// Report hands f to the registered reporter. A panicking reporter is logged
// and swallowed.
func Report(f Failure) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("panic in failure reporter", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
	}()

	if reporter != nil {
		reporter(f)
	}
}

// Recovered wraps a recover() value as an error.
func Recovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
