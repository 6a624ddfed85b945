package llm

import (
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single completion-API invocation.
// Success means the upstream accepted the call and began streaming;
// latency covers the time to first response, not the whole stream.
type CallEvent struct {
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about completion-API calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] completion_call latency_ms=%d status=%s\n",
		ts, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
