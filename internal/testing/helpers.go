package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/imamik/nfsensor/internal/config"
	"github.com/imamik/nfsensor/internal/platform/prism"
	"github.com/imamik/nfsensor/internal/provisioning"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// RecordingObserver is a provisioning.Observer that keeps every event and
// message in memory.
type RecordingObserver struct {
	Events   []provisioning.Event
	Messages []string
}

// Printf implements provisioning.Logger.
func (o *RecordingObserver) Printf(format string, v ...any) {
	o.Messages = append(o.Messages, fmt.Sprintf(format, v...))
}

// Event implements provisioning.Observer.
func (o *RecordingObserver) Event(event provisioning.Event) {
	o.Events = append(o.Events, event)
}

// Progress implements provisioning.Observer.
func (o *RecordingObserver) Progress(string, int, int) {}

// WithFields implements provisioning.Observer. Fields are dropped so that
// child observers record into the same slices.
func (o *RecordingObserver) WithFields(map[string]string) provisioning.Observer {
	return o
}

// EventsOf returns the recorded events of the given type.
func (o *RecordingObserver) EventsOf(typ provisioning.EventType) []provisioning.Event {
	var events []provisioning.Event
	for _, e := range o.Events {
		if e.Type == typ {
			events = append(events, e)
		}
	}
	return events
}

// NewStageContext builds a provisioning context around client with a
// recording observer and a fresh report for stage.
func NewStageContext(t *testing.T, cfg *config.Config, client prism.PrismManager, stage string, dryRun bool) (*provisioning.Context, *RecordingObserver) {
	t.Helper()
	observer := &RecordingObserver{}
	ctx := provisioning.NewContext(TestContext(t), cfg, client, provisioning.NewReport(stage, dryRun, nil))
	ctx.Observer = observer
	return ctx, observer
}
