package game

import "fmt"

const eventLogCap = 60

// EventEntry is a single line in the event log.
type EventEntry struct {
	Frame    int
	Category string // e.g. "camera", "marker", "menu"
	Message  string
}

func (e EventEntry) String() string {
	return fmt.Sprintf("%4d [%s] %s", e.Frame, e.Category, e.Message)
}

// EventLog is a ring buffer of user-visible events rendered as a UI scene.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
	added   int // total adds; lets the renderer skip unchanged frames
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, eventLogCap),
	}
}

// Add appends an entry to the log.
func (el *EventLog) Add(frame int, category, msg string) {
	el.entries[el.head] = EventEntry{
		Frame:    frame,
		Category: category,
		Message:  msg,
	}
	el.head = (el.head + 1) % eventLogCap
	if el.count < eventLogCap {
		el.count++
	}
	el.added++
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + eventLogCap) % eventLogCap
		result[i] = el.entries[idx]
	}
	return result
}

// Last returns up to n of the newest entries, oldest first.
func (el *EventLog) Last(n int) []EventEntry {
	all := el.Recent()
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}

// Len returns the number of retained entries.
func (el *EventLog) Len() int { return el.count }
