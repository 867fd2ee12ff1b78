package validation

import (
	"sort"
	"sync"
	"time"
)

// Event names dispatched by the Validator.
const (
	EventStarted = "validation.started"
	EventPassed  = "validation.passed"
	EventFailed  = "validation.failed"
)

// Event describes one Validate call. Result and Duration are set on
// EventPassed and EventFailed; Err is set when the call aborted.
type Event struct {
	Name     string
	Context  string
	Strategy string
	Data     map[string]any
	Rules    *CompiledRules
	Result   *Result
	Err      error
	Duration time.Duration
}

// Listener handles a dispatched event.
type Listener func(*Event)

// ListenerID identifies a registered listener for RemoveListener.
type ListenerID uint64

type listenerEntry struct {
	id       ListenerID
	priority int
	fn       Listener
}

// Dispatcher is a small pub/sub list. Higher priorities run first; equal
// priorities run in registration order. It is safe for concurrent use.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]listenerEntry
	nextID    ListenerID
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[string][]listenerEntry)}
}

// AddListener registers fn for event name.
func (d *Dispatcher) AddListener(name string, fn Listener, priority int) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	entries := make([]listenerEntry, 0, len(d.listeners[name])+1)
	entries = append(entries, d.listeners[name]...)
	entries = append(entries, listenerEntry{id: d.nextID, priority: priority, fn: fn})
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].priority > entries[j].priority })
	d.listeners[name] = entries
	return d.nextID
}

// RemoveListener unregisters a listener. It reports whether one was removed.
func (d *Dispatcher) RemoveListener(name string, id ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries := d.listeners[name]
	for i, e := range entries {
		if e.id != id {
			continue
		}
		entries = append(entries[:i:i], entries[i+1:]...)
		if len(entries) == 0 {
			delete(d.listeners, name)
		} else {
			d.listeners[name] = entries
		}
		return true
	}
	return false
}

// HasListeners reports whether any listener is registered for name.
func (d *Dispatcher) HasListeners(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[name]) > 0
}

// Dispatch runs the listeners of ev.Name and returns ev.
func (d *Dispatcher) Dispatch(ev *Event) *Event {
	d.mu.RLock()
	entries := d.listeners[ev.Name]
	d.mu.RUnlock()

	for _, e := range entries {
		e.fn(ev)
	}
	return ev
}
