// 2026 Craig Tomkow

package backup

// MaxKeep is the upper bound on kept snapshots, regardless of what the caller asks for.
// It keeps a forgotten scheduler from filling the disk.
const MaxKeep = 31

// Queue is a circular queue of snapshot filenames. Once full, every enqueue evicts the oldest.
type Queue struct {
	// size of the queue, the number of snapshots to keep
	size int

	queue [MaxKeep]string

	// next slot to write, and the number of slots in use
	head  int
	count int
}

// instantiate a queue keeping size names, clamped to 1..MaxKeep
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	if size > MaxKeep {
		size = MaxKeep
	}
	return &Queue{size: size}
}

// Populate enqueues names, oldest first, and returns the ones that did not fit
func (q *Queue) Populate(names []string) []string {
	var evicted []string
	for _, name := range names {
		if old := q.Enqueue(name); old != "" {
			evicted = append(evicted, old)
		}
	}
	return evicted
}

// Enqueue adds name and returns the evicted name, or "" while the queue has room
func (q *Queue) Enqueue(name string) string {
	var evicted string
	if q.count == q.size {
		evicted = q.queue[q.head]
	} else {
		q.count++
	}

	q.queue[q.head] = name
	q.head = mod(q.head+1, q.size)

	return evicted
}

// Names returns the queued names, oldest first
func (q *Queue) Names() []string {
	names := make([]string, 0, q.count)
	start := mod(q.head-q.count, q.size)
	for i := 0; i < q.count; i++ {
		names = append(names, q.queue[mod(start+i, q.size)])
	}
	return names
}

func (q *Queue) Len() int {
	return q.count
}

// integer modulo that stays positive for a negative dividend
func mod(a int, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
