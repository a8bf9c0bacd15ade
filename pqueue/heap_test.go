package pqueue

import "testing"

func TestEnqueueDequeueOrder(t *testing.T) {
	q := New()
	q.Enqueue("c", 3)
	q.Enqueue("a", 1)
	q.Enqueue("b", 2)

	want := []string{"a", "b", "c"}
	for _, w := range want {
		v, _, ok := q.Dequeue()
		if !ok {
			t.Fatalf("expected dequeue ok")
		}
		if v.(string) != w {
			t.Errorf("got %v, want %v", v, w)
		}
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue, got len %d", q.Len())
	}
}

func TestContainsAndRemove(t *testing.T) {
	q := New()
	q.Enqueue("x", 5)
	if !q.Contains("x") {
		t.Fatalf("expected x to be queued")
	}
	q.Remove("x")
	if q.Contains("x") {
		t.Errorf("expected x to be removed")
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue after remove, got %d", q.Len())
	}
}

func TestUpdateReordersHeap(t *testing.T) {
	q := New()
	q.Enqueue("a", 1)
	q.Enqueue("b", 2)
	q.Enqueue("c", 3)

	q.Update("c", 0) // c should now dequeue first

	v, p, ok := q.Dequeue()
	if !ok || v.(string) != "c" || p != 0 {
		t.Errorf("got (%v, %v, %v), want (c, 0, true)", v, p, ok)
	}
}

func TestDequeueEmpty(t *testing.T) {
	q := New()
	if _, _, ok := q.Dequeue(); ok {
		t.Errorf("expected ok=false on empty dequeue")
	}
}
