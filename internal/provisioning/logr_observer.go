package provisioning

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/go-logr/logr"
)

// LogrObserver implements Observer on top of a logr.Logger. Context fields
// and event fields become key/value pairs.
type LogrObserver struct {
	logger logr.Logger
	fields map[string]string
}

// NewLogrObserver creates an observer writing to logger.
func NewLogrObserver(logger logr.Logger) *LogrObserver {
	return &LogrObserver{
		logger: logger,
		fields: make(map[string]string),
	}
}

// Printf implements Logger.
func (o *LogrObserver) Printf(format string, v ...any) {
	o.logger.Info(fmt.Sprintf(format, v...), o.keysAndValues(nil)...)
}

// Event implements Observer. Failure events are logged at error level.
func (o *LogrObserver) Event(event Event) {
	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "stage", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	kv = append(kv, o.keysAndValues(event.Fields)...)

	switch event.Type {
	case EventPhaseFailed, EventResourceFailed:
		o.logger.Error(errors.New(event.Message), "operation failed", kv...)
	default:
		o.logger.Info(event.Message, kv...)
	}
}

// Progress implements Observer.
func (o *LogrObserver) Progress(stage string, current, total int) {
	o.logger.V(1).Info("progress", "stage", stage, "current", current, "total", total)
}

// WithFields implements Observer.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	return &LogrObserver{
		logger: o.logger,
		fields: withFields(o.fields, fields),
	}
}

// keysAndValues flattens context fields and extra into sorted key/value pairs.
// Keys in extra win.
func (o *LogrObserver) keysAndValues(extra map[string]string) []any {
	merged := withFields(o.fields, extra)
	kv := make([]any, 0, 2*len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		kv = append(kv, k, merged[k])
	}
	return kv
}
