package provisioning

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...any)
}

// Observer defines the interface for structured observability during a stage.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a stage
	Progress(stage string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Stage name (e.g., "provider", "network")
	Message   string            // Human-readable message
	Resource  string            // Resource name if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a stage has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a stage completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a stage failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created or updated.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceUpdated indicates a resource was updated successfully.
	EventResourceUpdated EventType = "resource.updated"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceSkipped indicates a resource needed no change.
	EventResourceSkipped EventType = "resource.skipped"
	// EventResourcePlanned indicates a change a dry run would have made.
	EventResourcePlanned EventType = "resource.planned"
	// EventResourceFailed indicates a resource operation failed.
	EventResourceFailed EventType = "resource.failed"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// ConsoleObserver implements Observer using standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// Event implements Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	event = mergeFields(event, o.contextFields)
	log.Print(formatEvent(event))
}

// Progress implements Observer interface.
func (o *ConsoleObserver) Progress(stage string, current, total int) {
	if total == 0 {
		log.Printf("[%s] Progress: %d/%d", stage, current, total)
		return
	}
	percentage := (current * 100) / total
	log.Printf("[%s] Progress: %d/%d (%d%%)", stage, current, total, percentage)
}

// WithFields implements Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	return &ConsoleObserver{
		contextFields: withFields(o.contextFields, fields),
	}
}

// mergeFields stamps the event and adds context fields it does not set itself.
func mergeFields(event Event, contextFields map[string]string) Event {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}
	return event
}

func withFields(parent, fields map[string]string) map[string]string {
	merged := make(map[string]string, len(parent)+len(fields))
	maps.Copy(merged, parent)
	maps.Copy(merged, fields)
	return merged
}

// formatEvent formats an event for console output. Fields are sorted so
// output is stable.
func formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}

	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, event.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// Helper functions for common events

// LogPhaseStart logs a stage start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a stage completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a stage failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs the start of a create or update.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceUpdated logs a successful resource update event.
func LogResourceUpdated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceUpdated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s updated", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields: map[string]string{
			"type": resourceType,
			"id":   resourceID,
		},
	})
}

// LogResourceSkipped logs a resource that needed no change.
func LogResourceSkipped(observer Observer, phase, resourceType, resourceName, reason string) {
	observer.Event(Event{
		Type:     EventResourceSkipped,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s skipped: %s", resourceType, reason),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourcePlanned logs a change that a dry run did not make.
func LogResourcePlanned(observer Observer, phase, resourceType, resourceName, detail string) {
	observer.Event(Event{
		Type:     EventResourcePlanned,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s: %s", resourceType, detail),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogResourceFailed logs a failed resource operation.
func LogResourceFailed(observer Observer, phase, resourceType, resourceName string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s failed: %v", resourceType, err),
		Fields: map[string]string{
			"type": resourceType,
		},
	})
}

// LogWarning logs a validation warning.
func LogWarning(observer Observer, phase, resourceName, message string) {
	observer.Event(Event{
		Type:     EventValidationWarning,
		Phase:    phase,
		Resource: resourceName,
		Message:  message,
	})
}
