package game

import (
	"fmt"
	"strings"
)

// FrameLogEntry is one recorded event of a headless run.
type FrameLogEntry struct {
	Frame    int
	Category string  // camera, input, world, agent, marker, menu, draw
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[F=0042] camera   follow         on
func (e FrameLogEntry) String() string {
	return fmt.Sprintf("[F=%04d] %-8s %-14s %s", e.Frame, e.Category, e.Key, e.Value)
}

// FrameLog collects structured events frame by frame.
// Unlike EventLog (UI ring-buffer), FrameLog is unbounded and machine-readable.
// A nil *FrameLog discards everything.
type FrameLog struct {
	entries []FrameLogEntry
	verbose bool
}

// NewFrameLog creates a FrameLog. If verbose is true, per-frame draw entries
// are also recorded.
func NewFrameLog(verbose bool) *FrameLog {
	return &FrameLog{verbose: verbose}
}

// Add records a new entry.
func (fl *FrameLog) Add(frame int, category, key, value string, numVal float64) {
	if fl == nil {
		return
	}
	fl.entries = append(fl.entries, FrameLogEntry{
		Frame:    frame,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (fl *FrameLog) AddVerbose(frame int, category, key, value string, numVal float64) {
	if fl == nil || !fl.verbose {
		return
	}
	fl.Add(frame, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (fl *FrameLog) Entries() []FrameLogEntry {
	if fl == nil {
		return nil
	}
	return fl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (fl *FrameLog) Filter(category, key string) []FrameLogEntry {
	var out []FrameLogEntry
	for _, e := range fl.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterFrameRange returns entries within [from, to] inclusive.
func (fl *FrameLog) FilterFrameRange(from, to int) []FrameLogEntry {
	var out []FrameLogEntry
	for _, e := range fl.Entries() {
		if e.Frame >= from && e.Frame <= to {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (fl *FrameLog) CountCategory(category, key string) int {
	return len(fl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (fl *FrameLog) LastOf(category, key string) (FrameLogEntry, bool) {
	entries := fl.Filter(category, key)
	if len(entries) == 0 {
		return FrameLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (fl *FrameLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range fl.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (fl *FrameLog) Format() string {
	var sb strings.Builder
	for _, e := range fl.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
