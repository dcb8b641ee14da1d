package app

import "github.com/irfansharif/polyfan/internal/geom"

// ClickEvent is a left mouse button press at a window pixel position.
type ClickEvent struct {
	Position geom.Point
}

// EventQueue buffers input captured by window callbacks until the frame loop
// drains it. Events are delivered in the order they were pushed.
type EventQueue struct {
	events []ClickEvent
}

// Push enqueues a click.
func (q *EventQueue) Push(ev ClickEvent) {
	q.events = append(q.events, ev)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int { return len(q.events) }

// Drain hands every queued event to fn in order and empties the queue. It
// returns the number of events processed.
func (q *EventQueue) Drain(fn func(ClickEvent)) int {
	n := len(q.events)
	for _, ev := range q.events {
		fn(ev)
	}
	q.events = q.events[:0]
	return n
}
