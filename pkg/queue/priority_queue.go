package queue

import "container/heap"

// MinHeap is a binary min-heap ordered by a caller supplied less function.
type MinHeap[T any] struct {
	items itemHeap[T]
}

func NewMinHeap[T any](less func(a, b T) bool, items ...T) *MinHeap[T] {
	h := &MinHeap[T]{items: itemHeap[T]{less: less, items: make([]T, len(items))}}
	copy(h.items.items, items)
	heap.Init(&h.items)
	return h
}

// Implements heap.Interface
type itemHeap[T any] struct {
	less  func(a, b T) bool
	items []T
}

func (q itemHeap[T]) Len() int           { return len(q.items) }
func (q itemHeap[T]) Less(i, j int) bool { return q.less(q.items[i], q.items[j]) }
func (q itemHeap[T]) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *itemHeap[T]) Push(item any)     { q.items = append(q.items, item.(T)) }
func (q *itemHeap[T]) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero // for safety
	q.items = old[:n-1]
	return item
}

func (h *MinHeap[T]) Len() int    { return h.items.Len() }
func (h *MinHeap[T]) Push(item T) { heap.Push(&h.items, item) }
func (h *MinHeap[T]) Pop() T      { return heap.Pop(&h.items).(T) }
