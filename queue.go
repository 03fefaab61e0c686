package vcfld

// variantQueue is a FIFO of variants backed by a slice. Popped slots are
// cleared so retired variants can be collected, and the live region is moved
// back to the start of the slice once the dead prefix dominates.
type variantQueue struct {
	items []*Variant
	head  int
}

func (q *variantQueue) Len() int {
	return len(q.items) - q.head
}

// At returns the i-th live variant, 0 being the oldest.
func (q *variantQueue) At(i int) *Variant {
	return q.items[q.head+i]
}

func (q *variantQueue) Push(v *Variant) {
	q.items = append(q.items, v)
}

func (q *variantQueue) Pop() *Variant {
	v := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head >= 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		for i := n; i < len(q.items); i++ {
			q.items[i] = nil
		}
		q.items = q.items[:n]
		q.head = 0
	}

	return v
}
