// Package pqueue implements a binary min-heap keyed by a floating-point
// priority, with contains/remove/update in addition to enqueue/dequeue.
// It is a hand-rolled array-backed heap in the style of
// navigation.minHeap in the teacher repo, rather than container/heap,
// generalized to carry an arbitrary payload and support removal/update by
// identity.
package pqueue

// Item is a single (value, priority) entry tracked by Queue.
type Item struct {
	Value    any
	Priority float64
	index    int // current slot, -1 when not queued
}

// Queue is a binary min-heap ordered by ascending Priority.
type Queue struct {
	items []*Item
	index map[any]*Item // payload identity -> item, for Contains/Remove/Update
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{index: make(map[any]*Item)}
}

// Len returns the number of queued items.
func (q *Queue) Len() int { return len(q.items) }

// Enqueue inserts value with the given priority. Behavior is undefined if
// value is already queued; use Update instead.
func (q *Queue) Enqueue(value any, priority float64) *Item {
	it := &Item{Value: value, Priority: priority, index: len(q.items)}
	q.items = append(q.items, it)
	q.index[value] = it
	q.siftUp(it.index)
	return it
}

// Dequeue removes and returns the minimum-priority item's value and
// priority. ok is false if the queue is empty.
func (q *Queue) Dequeue() (value any, priority float64, ok bool) {
	if len(q.items) == 0 {
		return nil, 0, false
	}
	top := q.items[0]
	q.removeAt(0)
	delete(q.index, top.Value)
	return top.Value, top.Priority, true
}

// Contains reports whether value is currently queued.
func (q *Queue) Contains(value any) bool {
	_, ok := q.index[value]
	return ok
}

// Priority returns the current priority of value and true, or (0, false)
// if it is not queued.
func (q *Queue) Priority(value any) (float64, bool) {
	it, ok := q.index[value]
	if !ok {
		return 0, false
	}
	return it.Priority, true
}

// Remove removes value from the queue if present.
func (q *Queue) Remove(value any) {
	it, ok := q.index[value]
	if !ok {
		return
	}
	q.removeAt(it.index)
	delete(q.index, value)
}

// Update changes the priority of an already-queued value, re-heapifying as
// needed. It is a no-op if value is not queued.
func (q *Queue) Update(value any, priority float64) {
	it, ok := q.index[value]
	if !ok {
		return
	}
	old := it.Priority
	it.Priority = priority
	if priority < old {
		q.siftUp(it.index)
	} else if priority > old {
		q.siftDown(it.index)
	}
}

func (q *Queue) removeAt(i int) {
	n := len(q.items) - 1
	q.items[i] = q.items[n]
	q.items[i].index = i
	q.items = q.items[:n]
	if i < n {
		q.siftUp(i)
		q.siftDown(i)
	}
}

func (q *Queue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if q.items[parent].Priority <= q.items[i].Priority {
			break
		}
		q.swap(parent, i)
		i = parent
	}
}

func (q *Queue) siftDown(i int) {
	n := len(q.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && q.items[right].Priority < q.items[left].Priority {
			smallest = right
		}
		if q.items[i].Priority <= q.items[smallest].Priority {
			break
		}
		q.swap(i, smallest)
		i = smallest
	}
}

func (q *Queue) swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}
