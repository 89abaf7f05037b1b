package mux

// readyHeap orders tracks that currently hold a cached block by
// ascending absolute timestamp, breaking ties in favor of video so a
// keyframe due at the same moment as an audio sample opens the cluster.
// It implements container/heap.Interface over *Track.
type readyHeap []*Track

func (h readyHeap) Len() int { return len(h) }

func (h readyHeap) Less(i, j int) bool {
	a, b := h[i].cached, h[j].cached
	if a.absoluteMs != b.absoluteMs {
		return a.absoluteMs < b.absoluteMs
	}
	return h[i].Caps.Kind == Video && h[j].Caps.Kind != Video
}

func (h readyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *readyHeap) Push(x any) {
	*h = append(*h, x.(*Track))
}

func (h *readyHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}
