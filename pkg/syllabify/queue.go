package syllabify

import "github.com/bastiangx/syllabix/pkg/spelling"

// vertex is a position waiting to be visited with the spelling type that
// reached it.
type vertex struct {
	pos int
	typ spelling.Type
}

// vertexQueue is a min-heap on (pos, typ) for container/heap.
type vertexQueue []vertex

func (q vertexQueue) Len() int { return len(q) }

func (q vertexQueue) Less(i, j int) bool {
	if q[i].pos != q[j].pos {
		return q[i].pos < q[j].pos
	}
	return q[i].typ < q[j].typ
}

func (q vertexQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *vertexQueue) Push(x any) { *q = append(*q, x.(vertex)) }

func (q *vertexQueue) Pop() any {
	old := *q
	n := len(old)
	v := old[n-1]
	*q = old[:n-1]
	return v
}
