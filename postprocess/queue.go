package postprocess

import (
	"container/heap"

	bodypix "github.com/swdee/go-bodypix"
)

// localMaximumRadius is the window radius a heatmap cell must be the part
// score maximum within to become a root candidate
const localMaximumRadius = 1

// PartCandidate is a heatmap cell that is a local score maximum for one
// part channel
type PartCandidate struct {
	// Part id
	Part int
	// CellY and CellX are the heatmap cell coordinates
	CellY int
	CellX int
	// Score is the heatmap score at the cell
	Score float32
}

type queuedCandidate struct {
	cand PartCandidate
	seq  int
}

// candidateQueue is a binary max-heap of part candidates keyed by score.
// Insertion order breaks score ties so dequeue order is deterministic.
type candidateQueue struct {
	items []queuedCandidate
}

func (q *candidateQueue) Len() int { return len(q.items) }

func (q *candidateQueue) Less(i, j int) bool {

	if q.items[i].cand.Score != q.items[j].cand.Score {
		return q.items[i].cand.Score > q.items[j].cand.Score
	}

	return q.items[i].seq < q.items[j].seq
}

func (q *candidateQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *candidateQueue) Push(x any) {
	q.items = append(q.items, x.(queuedCandidate))
}

func (q *candidateQueue) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	q.items = old[:n-1]
	return it
}

// empty reports queue exhaustion
func (q *candidateQueue) empty() bool {
	return len(q.items) == 0
}

// dequeue removes and returns the current highest scored candidate
func (q *candidateQueue) dequeue() PartCandidate {
	return heap.Pop(q).(queuedCandidate).cand
}

// buildPartCandidateQueue scans the heatmap for cells scoring at or above
// the threshold that are also the score maximum of their part channel
// within the local window.  All part channels are considered independently
// so one cell can queue as a candidate for several parts at once.
func buildPartCandidateQueue(heatmap bodypix.Tensor, threshold float32) *candidateQueue {

	q := &candidateQueue{}

	for y := 0; y < heatmap.Height; y++ {
		for x := 0; x < heatmap.Width; x++ {
			for part := 0; part < heatmap.Channels; part++ {

				score := heatmap.At(y, x, part)

				if score < threshold {
					continue
				}

				if scoreIsLocalMaximum(heatmap, y, x, part, score) {
					q.items = append(q.items, queuedCandidate{
						cand: PartCandidate{
							Part:  part,
							CellY: y,
							CellX: x,
							Score: score,
						},
						seq: len(q.items),
					})
				}
			}
		}
	}

	heap.Init(q)

	return q
}

// scoreIsLocalMaximum reports whether no cell of the same part channel in
// the surrounding window scores strictly higher.  Equal scoring neighbours
// both qualify.
func scoreIsLocalMaximum(heatmap bodypix.Tensor, y, x, part int, score float32) bool {

	yStart := clampInt(y-localMaximumRadius, 0, heatmap.Height-1)
	yEnd := clampInt(y+localMaximumRadius, 0, heatmap.Height-1)
	xStart := clampInt(x-localMaximumRadius, 0, heatmap.Width-1)
	xEnd := clampInt(x+localMaximumRadius, 0, heatmap.Width-1)

	for yc := yStart; yc <= yEnd; yc++ {
		for xc := xStart; xc <= xEnd; xc++ {
			if heatmap.At(yc, xc, part) > score {
				return false
			}
		}
	}

	return true
}
