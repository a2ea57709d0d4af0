package schedule

import "inferoute/pkg/dispatch"

// Queue is a FIFO over pending requests exposing only the head.
//
// Peek and Pop are the whole surface on purpose: the scheduler's design
// assumes no lookahead, so random access is not offered even internally.
type Queue struct {
	items []dispatch.Request
}

// NewQueue builds a queue preserving the order of the provided requests.
func NewQueue(requests []dispatch.Request) *Queue {
	return &Queue{items: append([]dispatch.Request(nil), requests...)}
}

// Peek returns the head request without removing it.
func (q *Queue) Peek() (dispatch.Request, bool) {
	if len(q.items) == 0 {
		return dispatch.Request{}, false
	}
	return q.items[0], true
}

// Pop removes and returns the head request.
func (q *Queue) Pop() (dispatch.Request, bool) {
	if len(q.items) == 0 {
		return dispatch.Request{}, false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	return len(q.items)
}
