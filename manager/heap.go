package manager

import "github.com/rsim-go/rsim"

// taskHeap is a container/heap min-heap of *rsim.Task, ordered by
// rsim.Task.Less: earliest ScheduledTime first, ties broken by EventID.
type taskHeap []*rsim.Task

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return h[i].Less(h[j]) }
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x interface{}) { *h = append(*h, x.(*rsim.Task)) }

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
