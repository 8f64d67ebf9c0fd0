package duet

// Queue is an unbounded FIFO of received values.
type Queue struct {
	Data []int64
}

// Push appends a value to the back of the queue.
func (q *Queue) Push(value int64) {
	q.Data = append(q.Data, value)
}

// Pop removes the value at the front of the queue.
func (q *Queue) Pop() (value int64, ok bool) {
	if len(q.Data) > 0 {
		ok = true
		value = q.Data[0]
		q.Data = q.Data[1:]
	}
	return
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	return len(q.Data)
}

// Empty returns true if nothing is queued.
func (q *Queue) Empty() bool {
	return len(q.Data) == 0
}

// Reset drops all queued values.
func (q *Queue) Reset() {
	if len(q.Data) > 0 {
		q.Data = q.Data[:0]
	}
}
