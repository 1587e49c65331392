package game

import (
	"fmt"
	"image"
	"strings"
)

// MarkerSet is the set of marked tile coordinates in insertion order.
type MarkerSet struct {
	order []image.Point
	index map[image.Point]struct{}
}

func NewMarkerSet() *MarkerSet {
	return &MarkerSet{index: make(map[image.Point]struct{})}
}

// Toggle adds p if absent or removes it if present. It reports whether p is
// marked afterwards.
func (m *MarkerSet) Toggle(p image.Point) bool {
	if _, ok := m.index[p]; ok {
		delete(m.index, p)
		for i, q := range m.order {
			if q == p {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		return false
	}
	m.index[p] = struct{}{}
	m.order = append(m.order, p)
	return true
}

func (m *MarkerSet) Has(p image.Point) bool {
	_, ok := m.index[p]
	return ok
}

// All returns a copy of the marked coordinates, oldest first.
func (m *MarkerSet) All() []image.Point {
	out := make([]image.Point, len(m.order))
	copy(out, m.order)
	return out
}

// Retain drops every marker keep rejects, preserving the order of the rest,
// and returns how many were dropped.
func (m *MarkerSet) Retain(keep func(image.Point) bool) int {
	kept := m.order[:0]
	for _, p := range m.order {
		if keep(p) {
			kept = append(kept, p)
			continue
		}
		delete(m.index, p)
	}
	dropped := len(m.order) - len(kept)
	m.order = kept
	return dropped
}

func (m *MarkerSet) Len() int { return len(m.order) }

// String lists the markers one "(col, row)" per line, the format the copy
// action puts on the clipboard.
func (m *MarkerSet) String() string {
	var sb strings.Builder
	for _, p := range m.order {
		fmt.Fprintf(&sb, "(%d, %d)\n", p.X, p.Y)
	}
	return sb.String()
}
